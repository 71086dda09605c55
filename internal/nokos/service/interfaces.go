package service

import (
	"context"
	"encoding/json"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/atlanticprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/jasaotpprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/otppoller"
	"github.com/shopspring/decimal"
)

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}

type WalletRepository interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	SetBalance(ctx context.Context, userID string, value decimal.Decimal) error
	EnsureUser(ctx context.Context, userID string) error
}

type OrderRepository interface {
	InsertOrder(ctx context.Context, order *data.Order) error
	GetOrder(ctx context.Context, orderID string) (data.Order, error)
	GetAllUserOrders(ctx context.Context, userID string) ([]data.Order, error)
	UpdateOrder(ctx context.Context, orderID string, patch data.OrderPatch) (data.Order, error)
}

// WalletLedger is what the orchestrator needs from the wallet side.
// Implemented by Wallet.
type WalletLedger interface {
	GetBalance(ctx context.Context, userID string) (decimal.Decimal, error)
	Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
	Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error)
}

type OrderProvider interface {
	Services(ctx context.Context, negara string) (map[string]jasaotpprotocol.ServiceItem, error)
	PlaceOrder(ctx context.Context, negara, layanan, operator string) (jasaotpprotocol.PlacedOrder, error)
	CancelOrder(ctx context.Context, orderID string) error
}

type CatalogProvider interface {
	Countries(ctx context.Context) (json.RawMessage, error)
	Services(ctx context.Context, negara string) (map[string]jasaotpprotocol.ServiceItem, error)
}

type PollerRegistry interface {
	Start(orderID string, onUpdate func(otppoller.Update))
	Cancel(orderID string) bool
}

type DepositGateway interface {
	CreateDeposit(ctx context.Context, reffID string, nominal int64) (atlanticprotocol.Deposit, error)
	DepositStatus(ctx context.Context, paymentID string) (string, error)
}
