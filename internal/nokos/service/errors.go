package service

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOrderNotPending   = errors.New("order is not pending")
)
