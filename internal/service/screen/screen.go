package screen

import (
	"context"
	"errors"
	"sync"

	"github.com/alanyang/dogs/internal/domain/result"
	"github.com/alanyang/dogs/internal/domain/route"
	domainscreen "github.com/alanyang/dogs/internal/domain/screen"
	"github.com/alanyang/dogs/internal/metrics"
	"github.com/alanyang/dogs/internal/stream"
)

var (
	ErrUnknownEvent    = errors.New("unknown screen event")
	ErrInvalidEvent    = errors.New("invalid screen event")
	ErrRefreshInFlight = errors.New("refresh ignored: a fetch is already in flight")
	ErrClosed          = errors.New("screen closed")
)

// Event type names accepted by HandleRaw.
const (
	EventRefresh       = "refresh"
	EventBreedSelected = "breed_selected"
)

// RawEvent is a UI event as it arrives from a transport.
type RawEvent struct {
	Type    string `json:"type" binding:"required"`
	BreedID string `json:"breed_id,omitempty"`
}

// Screen is the type-erased face of a controller, used by the session host.
type Screen interface {
	Route() route.Route
	CurrentView() any
	WatchViews(ctx context.Context, fn func(view any))
	HandleRaw(ctx context.Context, e RawEvent) error
	Close()
}

// ErrorView is the display form of domainscreen.ErrorState.
type ErrorView struct {
	Kind domainscreen.ErrorKind `json:"kind"`
	Code string                 `json:"code,omitempty"`
}

func ToErrorView(e *domainscreen.ErrorState) *ErrorView {
	if e == nil {
		return nil
	}
	return &ErrorView{Kind: e.Kind, Code: e.Code}
}

// Fetcher loads the items of one screen.
type Fetcher[T any] func(ctx context.Context) result.Result[[]T]

// Controller owns the state of one screen. All fetches run on a single worker
// goroutine, so the initial load and refreshes never interleave. A refresh asked
// for while a fetch is in flight or queued is dropped (ErrRefreshInFlight).
type Controller[T, V any] struct {
	name    string
	fetch   Fetcher[T]
	project func(domainscreen.State[T]) V
	views   *stream.Subject[V]

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	state    domainscreen.State[T]
	fetching bool
	closed   bool
}

// NewController publishes the Loading view immediately and queues the initial
// fetch. Cancelling ctx or calling Close aborts the in-flight fetch.
func NewController[T, V any](ctx context.Context, name string, fetch Fetcher[T], project func(domainscreen.State[T]) V) *Controller[T, V] {
	state := domainscreen.Initial[T]()
	ctrlCtx, cancel := context.WithCancel(ctx)

	c := &Controller[T, V]{
		name:     name,
		fetch:    fetch,
		project:  project,
		views:    stream.NewSubject(project(state)),
		ctx:      ctrlCtx,
		cancel:   cancel,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		state:    state,
		fetching: true,
	}
	c.wake <- struct{}{}
	go c.run()
	return c
}

func (c *Controller[T, V]) run() {
	defer close(c.done)
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.wake:
			c.load()
		}
	}
}

func (c *Controller[T, V]) load() {
	res := c.fetch(c.ctx)
	if c.ctx.Err() != nil {
		return
	}
	metrics.ScreenFetched(c.name, string(res.Kind))

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.state = c.state.Apply(res)
	c.fetching = false
	c.views.Publish(c.project(c.state))
}

// Refresh marks the loaded state as refreshing and queues a new fetch.
func (c *Controller[T, V]) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// A cancelled parent stops the worker just like Close.
	if c.closed || c.ctx.Err() != nil {
		return ErrClosed
	}
	if c.fetching || !c.state.Loaded() {
		metrics.RefreshDropped(c.name)
		return ErrRefreshInFlight
	}

	c.state = c.state.BeginRefresh()
	c.fetching = true
	c.views.Publish(c.project(c.state))
	// The worker consumed the previous token before clearing fetching.
	c.wake <- struct{}{}
	return nil
}

// State returns a snapshot of the internal state.
func (c *Controller[T, V]) State() domainscreen.State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller[T, V]) View() V { return c.views.Value() }

// Subscribe replays the current view and then every update until Close.
func (c *Controller[T, V]) Subscribe() *stream.Subscription[V] { return c.views.Subscribe() }

func (c *Controller[T, V]) CurrentView() any { return c.views.Value() }

func (c *Controller[T, V]) WatchViews(ctx context.Context, fn func(view any)) {
	c.views.Watch(ctx, func(v V) { fn(v) })
}

// Close cancels any in-flight fetch and completes all view subscriptions. Nothing
// is published afterwards. It does not wait for the worker; see Done.
func (c *Controller[T, V]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.views.Close()
}

// Done is closed once the worker goroutine has exited.
func (c *Controller[T, V]) Done() <-chan struct{} { return c.done }
