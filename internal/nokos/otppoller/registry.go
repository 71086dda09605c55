package otppoller

import (
	"context"
	"sync"

	"github.com/RyuuXiaoo/nokoslagii/pkg/threadsafe"
)

// Registry supervises one polling goroutine per order. A manual order
// cancel uses Cancel to stop the in-flight poller before its next
// callback; Stop tears everything down on shutdown.
type Registry struct {
	poller  *Poller
	tasks   *threadsafe.Map[string, context.CancelFunc]
	rootCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewRegistry(poller *Poller) *Registry {
	rootCtx, cancel := context.WithCancel(context.Background())
	return &Registry{
		poller:  poller,
		tasks:   threadsafe.NewMap[string, context.CancelFunc](),
		rootCtx: rootCtx,
		cancel:  cancel,
	}
}

func (r *Registry) Start(orderID string, onUpdate func(Update)) {
	ctx, cancelTask := context.WithCancel(r.rootCtx)
	r.tasks.Set(orderID, cancelTask)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.tasks.Delete(orderID)
		defer cancelTask()
		r.poller.Run(ctx, orderID, onUpdate)
	}()
}

// Cancel signals the order's poller to stop. Returns false when no poller
// is running for the order (already terminal, or never started).
func (r *Registry) Cancel(orderID string) bool {
	cancelTask, ok := r.tasks.Pop(orderID)
	if !ok {
		return false
	}
	cancelTask()
	return true
}

// Stop cancels every running poller and waits for the goroutines to exit.
func (r *Registry) Stop() {
	r.cancel()
	r.wg.Wait()
}
