package data

import "errors"

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderFinalized = errors.New("order is already in a terminal status")
)
