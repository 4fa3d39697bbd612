package navigation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alanyang/dogs/internal/domain/route"
	portnav "github.com/alanyang/dogs/internal/port/navigator"
)

// Listener receives navigation requests; typically the host of the visible screen.
type Listener func(ctx context.Context, r route.Route)

var _ portnav.Navigator = (*Dispatcher)(nil)

// Dispatcher holds at most one listener. Requests made while nobody listens are
// dropped, never queued.
type Dispatcher struct {
	mu       sync.RWMutex
	listener Listener
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// NavigateTo implements port/navigator.Navigator.
func (d *Dispatcher) NavigateTo(ctx context.Context, r route.Route) {
	d.mu.RLock()
	listener := d.listener
	d.mu.RUnlock()

	if listener == nil {
		slog.DebugContext(ctx, "navigation dropped, no listener", "route", r.ID())
		return
	}
	listener(ctx, r)
}

// SetListener replaces the current listener.
func (d *Dispatcher) SetListener(l Listener) {
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()
}

func (d *Dispatcher) ClearListener() {
	d.mu.Lock()
	d.listener = nil
	d.mu.Unlock()
}
