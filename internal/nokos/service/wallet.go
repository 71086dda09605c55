package service

import (
	"context"
	"fmt"

	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Wallet owns per-user balances. All mutations run under the transaction
// manager so a concurrent debit and credit of the same user cannot lose
// an update, and a balance can never go negative.
type Wallet struct {
	transactionManager TransactionManager
	repository         WalletRepository
	logger             *logging.ZapLogger
}

func NewWallet(
	transactionManager TransactionManager,
	repository WalletRepository,
	logger *logging.ZapLogger,
) *Wallet {
	return &Wallet{
		transactionManager: transactionManager,
		repository:         repository,
		logger:             logger,
	}
}

func (w *Wallet) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	balance, err := w.repository.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting user balance failed: %w", err)
	}
	return balance, nil
}

func (w *Wallet) EnsureUser(ctx context.Context, userID string) error {
	if err := w.repository.EnsureUser(ctx, userID); err != nil {
		return fmt.Errorf("ensuring user wallet failed: %w", err)
	}
	return nil
}

func (w *Wallet) Credit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	w.logger.DebugCtx(
		ctx,
		"credit",
		zap.String("userID", userID),
		zap.String("amount", amount.String()),
	)
	var newBalance decimal.Decimal
	err := w.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		balance, err := w.repository.GetBalance(ctx, userID)
		if err != nil {
			return fmt.Errorf("getting user balance failed: %w", err)
		}
		newBalance = balance.Add(amount)
		return w.repository.SetBalance(ctx, userID, newBalance)
	})
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck // unnecessary
	}
	return newBalance, nil
}

func (w *Wallet) Debit(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	w.logger.DebugCtx(
		ctx,
		"debit",
		zap.String("userID", userID),
		zap.String("amount", amount.String()),
	)
	var newBalance decimal.Decimal
	err := w.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		balance, err := w.repository.GetBalance(ctx, userID)
		if err != nil {
			return fmt.Errorf("getting user balance failed: %w", err)
		}
		if balance.LessThan(amount) {
			return ErrInsufficientFunds
		}
		newBalance = balance.Sub(amount)
		return w.repository.SetBalance(ctx, userID, newBalance)
	})
	if err != nil {
		return decimal.Zero, err //nolint:wrapcheck // unnecessary
	}
	return newBalance, nil
}
