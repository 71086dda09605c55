package data

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	NullStatus    = Status("")
	PendingStatus = Status("pending")
	SuccessStatus = Status("success")
	FailedStatus  = Status("failed")
)

// IsTerminal reports whether no further status transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == SuccessStatus || s == FailedStatus
}

type Order struct {
	CreatedAt time.Time
	OrderID   string
	UserID    string
	Negara    string
	Layanan   string
	Operator  string
	Aplikasi  string
	Nomor     string
	Price     decimal.Decimal
	Status    Status
	OTP       *string
	Raw       string
}

// OrderPatch is a partial update applied to an existing order.
// Nil fields are left untouched.
type OrderPatch struct {
	Status *Status
	OTP    *string
	Raw    *string
}
