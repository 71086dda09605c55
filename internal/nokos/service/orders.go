package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/otppoller"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const cancelledRaw = "cancelled"

type Quote struct {
	Price     decimal.Decimal
	Balance   decimal.Decimal
	NeedTopup bool
}

// Orders drives the purchase lifecycle: quote, debit-place-persist with
// compensation on every failure boundary, background OTP polling, and
// cancel-with-refund.
type Orders struct {
	transactionManager TransactionManager
	orderRepository    OrderRepository
	wallet             WalletLedger
	provider           OrderProvider
	registry           PollerRegistry
	margin             decimal.Decimal
	logger             *logging.ZapLogger
}

func NewOrders(
	transactionManager TransactionManager,
	orderRepository OrderRepository,
	wallet WalletLedger,
	provider OrderProvider,
	registry PollerRegistry,
	margin decimal.Decimal,
	logger *logging.ZapLogger,
) *Orders {
	return &Orders{
		transactionManager: transactionManager,
		orderRepository:    orderRepository,
		wallet:             wallet,
		provider:           provider,
		registry:           registry,
		margin:             margin,
		logger:             logger,
	}
}

// price looks up the current catalog price and applies the margin. An
// unknown service prices at margin only, mirroring the storefront's
// forgiving catalog handling; the upstream order call rejects it later.
func (o *Orders) price(ctx context.Context, negara, layanan string) (decimal.Decimal, error) {
	services, err := o.provider.Services(ctx, negara)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching services failed: %w", err)
	}
	price := decimal.Zero
	if item, ok := services[layanan]; ok {
		price = item.Harga()
	}
	return price.Add(o.margin), nil
}

func (o *Orders) Quote(ctx context.Context, userID, negara, layanan string) (Quote, error) {
	price, err := o.price(ctx, negara, layanan)
	if err != nil {
		return Quote{}, err
	}
	balance, err := o.wallet.GetBalance(ctx, userID)
	if err != nil {
		return Quote{}, fmt.Errorf("getting balance failed: %w", err)
	}
	return Quote{
		Price:     price,
		Balance:   balance,
		NeedTopup: balance.LessThan(price),
	}, nil
}

func (o *Orders) Commit(ctx context.Context, userID, negara, layanan, operator string) (data.Order, error) {
	// Never trust a client-side quote; the price is always re-fetched.
	price, err := o.price(ctx, negara, layanan)
	if err != nil {
		return data.Order{}, err
	}

	if _, err := o.wallet.Debit(ctx, userID, price); err != nil {
		return data.Order{}, err //nolint:wrapcheck // ErrInsufficientFunds must reach the handler
	}

	placed, err := o.provider.PlaceOrder(ctx, negara, layanan, operator)
	if err != nil {
		if refundErr := o.refund(ctx, userID, price); refundErr != nil {
			return data.Order{}, errors.Join(err, refundErr)
		}
		return data.Order{}, err //nolint:wrapcheck // provider message must reach the handler
	}

	aplikasi := placed.App
	if aplikasi == "" {
		aplikasi = layanan
	}
	order := data.Order{
		OrderID:   placed.OrderID,
		UserID:    userID,
		Negara:    negara,
		Layanan:   layanan,
		Operator:  operator,
		Aplikasi:  aplikasi,
		Nomor:     placed.Number,
		Price:     price,
		Status:    data.PendingStatus,
		CreatedAt: time.Now(),
	}
	if err := o.orderRepository.InsertOrder(ctx, &order); err != nil {
		// The number is already rented upstream; release it and give the
		// money back rather than charging for an order we cannot track.
		if cancelErr := o.provider.CancelOrder(ctx, order.OrderID); cancelErr != nil {
			o.logger.ErrorCtx(ctx, "failed to release upstream order",
				zap.String("orderID", order.OrderID),
				zap.Error(cancelErr),
			)
		}
		if refundErr := o.refund(ctx, userID, price); refundErr != nil {
			return data.Order{}, errors.Join(err, refundErr)
		}
		return data.Order{}, fmt.Errorf("persisting order failed: %w", err)
	}

	o.logger.InfoCtx(ctx, "order committed",
		zap.String("orderID", order.OrderID),
		zap.String("userID", userID),
		zap.String("price", price.String()),
	)
	o.registry.Start(order.OrderID, o.applyPollerUpdate(order.OrderID))
	return order, nil
}

func (o *Orders) refund(ctx context.Context, userID string, amount decimal.Decimal) error {
	if _, err := o.wallet.Credit(ctx, userID, amount); err != nil {
		o.logger.ErrorCtx(ctx, "compensating credit failed",
			zap.String("userID", userID),
			zap.String("amount", amount.String()),
			zap.Error(err),
		)
		return fmt.Errorf("compensating credit failed: %w", err)
	}
	return nil
}

// applyPollerUpdate persists the poller's terminal result. A cancelled
// order is already terminal by then, so a late success is dropped by the
// repository instead of resurrecting the order.
func (o *Orders) applyPollerUpdate(orderID string) func(otppoller.Update) {
	return func(update otppoller.Update) {
		ctx := context.Background()
		err := o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
			_, err := o.orderRepository.UpdateOrder(ctx, orderID, data.OrderPatch{
				Status: &update.Status,
				OTP:    update.OTP,
				Raw:    &update.Raw,
			})
			return err //nolint:wrapcheck // unnecessary
		})
		switch {
		case err == nil:
		case errors.Is(err, data.ErrOrderFinalized):
			o.logger.DebugCtx(ctx, "dropping late poller update", zap.String("orderID", orderID))
		default:
			o.logger.ErrorCtx(ctx, "failed to apply poller update",
				zap.String("orderID", orderID),
				zap.Error(err),
			)
		}
	}
}

func (o *Orders) Cancel(ctx context.Context, userID, orderID string) error {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return err //nolint:wrapcheck // ErrOrderNotFound must reach the handler
	}
	if order.UserID != userID {
		return data.ErrOrderNotFound
	}
	if order.Status != data.PendingStatus {
		return ErrOrderNotPending
	}

	if err := o.provider.CancelOrder(ctx, orderID); err != nil {
		return err //nolint:wrapcheck // provider message must reach the handler
	}

	// Stop the in-flight poller before writing the terminal status so it
	// cannot race us with a success callback.
	o.registry.Cancel(orderID)

	status := data.FailedStatus
	raw := cancelledRaw
	err = o.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		_, err := o.orderRepository.UpdateOrder(ctx, orderID, data.OrderPatch{
			Status: &status,
			Raw:    &raw,
		})
		return err //nolint:wrapcheck // unnecessary
	})
	if err != nil {
		return fmt.Errorf("marking order cancelled failed: %w", err)
	}

	if _, err := o.wallet.Credit(ctx, userID, order.Price); err != nil {
		return fmt.Errorf("refund failed: %w", err)
	}
	o.logger.InfoCtx(ctx, "order cancelled and refunded",
		zap.String("orderID", orderID),
		zap.String("userID", userID),
	)
	return nil
}

func (o *Orders) List(ctx context.Context, userID string) ([]data.Order, error) {
	orders, err := o.orderRepository.GetAllUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing orders failed: %w", err)
	}
	return orders, nil
}

func (o *Orders) Get(ctx context.Context, userID, orderID string) (data.Order, error) {
	order, err := o.orderRepository.GetOrder(ctx, orderID)
	if err != nil {
		return data.Order{}, err //nolint:wrapcheck // ErrOrderNotFound must reach the handler
	}
	if order.UserID != userID {
		return data.Order{}, data.ErrOrderNotFound
	}
	return order, nil
}
