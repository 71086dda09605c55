package memrepository

import (
	"context"
	"sort"
	"sync"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/shopspring/decimal"
)

// MemRepository keeps wallets and orders in process-wide maps. It is the
// default backing store; the pgx-backed repository replaces it when a
// DATABASE_URI is configured.
type MemRepository struct {
	wallets map[string]decimal.Decimal
	orders  map[string]data.Order
	mux     *sync.Mutex
}

func New() *MemRepository {
	return &MemRepository{
		wallets: make(map[string]decimal.Decimal),
		orders:  make(map[string]data.Order),
		mux:     &sync.Mutex{},
	}
}

func (r *MemRepository) GetBalance(_ context.Context, userID string) (decimal.Decimal, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	balance, ok := r.wallets[userID]
	if !ok {
		return decimal.Zero, nil
	}
	return balance, nil
}

func (r *MemRepository) SetBalance(_ context.Context, userID string, value decimal.Decimal) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.wallets[userID] = value
	return nil
}

func (r *MemRepository) EnsureUser(_ context.Context, userID string) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	if _, ok := r.wallets[userID]; !ok {
		r.wallets[userID] = decimal.Zero
	}
	return nil
}

func (r *MemRepository) InsertOrder(_ context.Context, order *data.Order) error {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.orders[order.OrderID] = *order
	return nil
}

func (r *MemRepository) GetOrder(_ context.Context, orderID string) (data.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	return order, nil
}

func (r *MemRepository) GetAllUserOrders(_ context.Context, userID string) ([]data.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	result := make([]data.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, order)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemRepository) UpdateOrder(_ context.Context, orderID string, patch data.OrderPatch) (data.Order, error) {
	r.mux.Lock()
	defer r.mux.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	if order.Status.IsTerminal() {
		return data.Order{}, data.ErrOrderFinalized
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.OTP != nil {
		order.OTP = patch.OTP
	}
	if patch.Raw != nil {
		order.Raw = *patch.Raw
	}
	r.orders[orderID] = order
	return order, nil
}
