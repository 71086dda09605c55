package memrepository

import (
	"context"
	"testing"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceDefaultsToZero(t *testing.T) {
	repo := New()

	balance, err := repo.GetBalance(context.Background(), "unknown")
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestEnsureUserKeepsExistingBalance(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.SetBalance(ctx, "user-1", decimal.NewFromInt(700)))
	require.NoError(t, repo.EnsureUser(ctx, "user-1"))

	balance, err := repo.GetBalance(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(700)))
}

func TestGetOrderNotFound(t *testing.T) {
	repo := New()

	_, err := repo.GetOrder(context.Background(), "missing")
	require.ErrorIs(t, err, data.ErrOrderNotFound)
}

func TestGetAllUserOrdersFiltersAndSortsDescending(t *testing.T) {
	repo := New()
	ctx := context.Background()
	base := time.Now()

	tests := []struct {
		orderID   string
		userID    string
		createdAt time.Time
	}{
		{orderID: "a", userID: "user-1", createdAt: base},
		{orderID: "b", userID: "user-1", createdAt: base.Add(2 * time.Minute)},
		{orderID: "c", userID: "user-2", createdAt: base.Add(3 * time.Minute)},
		{orderID: "d", userID: "user-1", createdAt: base.Add(time.Minute)},
	}
	for _, test := range tests {
		require.NoError(t, repo.InsertOrder(ctx, &data.Order{
			OrderID:   test.orderID,
			UserID:    test.userID,
			Status:    data.PendingStatus,
			CreatedAt: test.createdAt,
		}))
	}

	orders, err := repo.GetAllUserOrders(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "b", orders[0].OrderID)
	assert.Equal(t, "d", orders[1].OrderID)
	assert.Equal(t, "a", orders[2].OrderID)
}

func TestUpdateOrderAppliesPartialPatch(t *testing.T) {
	repo := New()
	ctx := context.Background()

	require.NoError(t, repo.InsertOrder(ctx, &data.Order{
		OrderID:   "order-1",
		UserID:    "user-1",
		Status:    data.PendingStatus,
		CreatedAt: time.Now(),
	}))

	otp := "4821"
	status := data.SuccessStatus
	raw := "Kode OTP: 4821"
	updated, err := repo.UpdateOrder(ctx, "order-1", data.OrderPatch{
		Status: &status,
		OTP:    &otp,
		Raw:    &raw,
	})
	require.NoError(t, err)
	assert.Equal(t, data.SuccessStatus, updated.Status)
	require.NotNil(t, updated.OTP)
	assert.Equal(t, "4821", *updated.OTP)
	assert.Equal(t, "user-1", updated.UserID, "patch must not clobber untouched fields")
}

func TestUpdateOrderUnknownOrderFails(t *testing.T) {
	repo := New()

	status := data.FailedStatus
	_, err := repo.UpdateOrder(context.Background(), "missing", data.OrderPatch{Status: &status})
	require.ErrorIs(t, err, data.ErrOrderNotFound)
}

func TestUpdateOrderRejectsTerminalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		status data.Status
	}{
		{name: "failed order", status: data.FailedStatus},
		{name: "successful order", status: data.SuccessStatus},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := New()
			ctx := context.Background()
			require.NoError(t, repo.InsertOrder(ctx, &data.Order{
				OrderID:   "order-1",
				UserID:    "user-1",
				Status:    test.status,
				CreatedAt: time.Now(),
			}))

			next := data.SuccessStatus
			_, err := repo.UpdateOrder(ctx, "order-1", data.OrderPatch{Status: &next})
			require.ErrorIs(t, err, data.ErrOrderFinalized)

			stored, err := repo.GetOrder(ctx, "order-1")
			require.NoError(t, err)
			assert.Equal(t, test.status, stored.Status)
		})
	}
}
