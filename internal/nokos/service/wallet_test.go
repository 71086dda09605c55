package service

import (
	"context"
	"testing"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data/memrepository"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet() *Wallet {
	return NewWallet(
		memrepository.NewTransactionsManager(),
		memrepository.New(),
		logging.NewNopLogger(),
	)
}

func TestWalletUnknownUserHasZeroBalance(t *testing.T) {
	wallet := newTestWallet()

	balance, err := wallet.GetBalance(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestWalletCreditAndDebit(t *testing.T) {
	wallet := newTestWallet()
	ctx := context.Background()

	balance, err := wallet.Credit(ctx, "user-1", decimal.NewFromInt(20000))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(20000)))

	balance, err = wallet.Debit(ctx, "user-1", decimal.NewFromInt(15000))
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(5000)))
}

func TestWalletDebitInsufficientFunds(t *testing.T) {
	wallet := newTestWallet()
	ctx := context.Background()

	_, err := wallet.Credit(ctx, "user-1", decimal.NewFromInt(100))
	require.NoError(t, err)

	_, err = wallet.Debit(ctx, "user-1", decimal.NewFromInt(101))
	require.ErrorIs(t, err, ErrInsufficientFunds)

	balance, err := wallet.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(100)), "failed debit must not change the balance")
}

func TestWalletEnsureUserIsIdempotent(t *testing.T) {
	wallet := newTestWallet()
	ctx := context.Background()

	require.NoError(t, wallet.EnsureUser(ctx, "user-1"))

	_, err := wallet.Credit(ctx, "user-1", decimal.NewFromInt(500))
	require.NoError(t, err)

	require.NoError(t, wallet.EnsureUser(ctx, "user-1"))

	balance, err := wallet.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(500)), "EnsureUser must not reset an existing balance")
}

func TestWalletBalanceNeverNegative(t *testing.T) {
	wallet := newTestWallet()
	ctx := context.Background()

	amounts := []int64{300, -100, 250, -500, -40, 90}
	for _, amount := range amounts {
		if amount > 0 {
			_, err := wallet.Credit(ctx, "user-1", decimal.NewFromInt(amount))
			require.NoError(t, err)
		} else {
			_, _ = wallet.Debit(ctx, "user-1", decimal.NewFromInt(-amount))
		}
		balance, err := wallet.GetBalance(ctx, "user-1")
		require.NoError(t, err)
		assert.False(t, balance.IsNegative())
	}
}
