package memrepository

import (
	"context"
	"sync"
)

// TransactionsManager serializes read-modify-write sections over the
// in-memory maps. There is no rollback; f either finishes or it doesn't.
type TransactionsManager struct {
	mux *sync.Mutex
}

func NewTransactionsManager() *TransactionsManager {
	return &TransactionsManager{
		mux: &sync.Mutex{},
	}
}

func (tm *TransactionsManager) DoWithTransaction(
	ctx context.Context,
	f func(ctx context.Context) error,
) error {
	tm.mux.Lock()
	defer tm.mux.Unlock()
	return f(ctx)
}
