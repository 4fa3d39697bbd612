package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/alanyang/dogs/internal/domain/event"
	"github.com/alanyang/dogs/internal/domain/route"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
	portbus "github.com/alanyang/dogs/internal/port/eventbus"
	"github.com/alanyang/dogs/internal/service/breedphotos"
	"github.com/alanyang/dogs/internal/service/breedslist"
	"github.com/alanyang/dogs/internal/service/navigation"
	"github.com/alanyang/dogs/internal/service/screen"
	"github.com/alanyang/dogs/internal/stream"
)

// EventBack asks the session to leave the current screen. It is handled by the
// session itself, not by a screen.
const EventBack = "back"

// Frame is the visible screen and its latest view state.
type Frame struct {
	Route string `json:"route"`
	View  any    `json:"view"`
}

// Session is one UI host: a navigation dispatcher plus a back stack of screens.
// The breed list is always at the bottom of the stack.
type Session struct {
	id         uuid.UUID
	repo       portdogs.Repository
	bus        portbus.EventBus
	dispatcher *navigation.Dispatcher
	routes     *stream.Subject[route.Route]

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	stack  []screen.Screen
	hosts  int
	closed bool
}

func newSession(ctx context.Context, id uuid.UUID, repo portdogs.Repository, bus portbus.EventBus) *Session {
	sessCtx, cancel := context.WithCancel(ctx)
	dispatcher := navigation.NewDispatcher()

	s := &Session{
		id:         id,
		repo:       repo,
		bus:        bus,
		dispatcher: dispatcher,
		routes:     stream.NewSubject(route.BreedsList()),
		ctx:        sessCtx,
		cancel:     cancel,
	}
	s.stack = []screen.Screen{breedslist.New(sessCtx, repo, dispatcher)}
	dispatcher.SetListener(s.navigate)
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Route returns the route of the visible screen.
func (s *Session) Route() route.Route { return s.routes.Value() }

// Frame returns the visible screen and its current view.
func (s *Session) Frame() Frame {
	top := s.top()
	if top == nil {
		return Frame{Route: s.Route().ID()}
	}
	return Frame{Route: top.Route().ID(), View: top.CurrentView()}
}

func (s *Session) Depth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.stack)
}

func (s *Session) top() screen.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// Send delivers a UI event to the visible screen. Screens may navigate while
// handling it, so no session lock is held during the call.
func (s *Session) Send(ctx context.Context, e screen.RawEvent) error {
	if e.Type == EventBack {
		s.dispatcher.NavigateTo(ctx, route.Back())
		return nil
	}
	top := s.top()
	if top == nil {
		return fmt.Errorf("send event: %w", screen.ErrClosed)
	}
	if err := top.HandleRaw(ctx, e); err != nil {
		return fmt.Errorf("send event: %w", err)
	}
	return nil
}

// Navigate asks the session's dispatcher for r, exactly as a screen would.
func (s *Session) Navigate(ctx context.Context, r route.Route) {
	s.dispatcher.NavigateTo(ctx, r)
}

func (s *Session) navigate(ctx context.Context, r route.Route) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}

	var opened, closed []route.Route
	switch r.Kind {
	case route.KindBreedPhotos:
		photos := breedphotos.New(s.ctx, s.repo, r.BreedID)
		s.stack = append(s.stack, photos)
		opened = append(opened, photos.Route())
	case route.KindBack:
		if len(s.stack) > 1 {
			closed = append(closed, s.popLocked())
		}
	case route.KindBreedsList:
		for len(s.stack) > 1 {
			closed = append(closed, s.popLocked())
		}
	}
	current := s.stack[len(s.stack)-1].Route()
	if len(opened)+len(closed) > 0 {
		s.routes.Publish(current)
	}
	s.mu.Unlock()

	if len(opened)+len(closed) == 0 {
		slog.DebugContext(ctx, "navigation dropped", "session_id", s.id, "route", r.ID())
		s.publish(ctx, event.TypeNavigationDrop, r.ID())
		return
	}
	s.publish(ctx, event.TypeNavigation, r.ID())
	for _, c := range closed {
		s.publish(ctx, event.TypeScreenClosed, c.ID())
	}
	for _, o := range opened {
		s.publish(ctx, event.TypeScreenOpened, o.ID())
	}
}

func (s *Session) popLocked() route.Route {
	top := s.stack[len(s.stack)-1]
	s.stack[len(s.stack)-1] = nil
	s.stack = s.stack[:len(s.stack)-1]
	top.Close()
	return top.Route()
}

// Follow calls fn with a frame for every view published by whichever screen is
// visible, switching screens as the route changes. Calls to fn are sequential.
// It returns when ctx is done or the session closes.
func (s *Session) Follow(ctx context.Context, fn func(Frame)) {
	routes := s.routes.Subscribe()
	defer routes.Close()

	type tagged struct {
		gen   int
		frame Frame
	}
	frames := make(chan tagged)

	var (
		gen  int
		stop context.CancelFunc = func() {}
	)
	defer func() { stop() }()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-routes.C():
			if !ok {
				return
			}
			stop()
			gen++
			top := s.top()
			if top == nil {
				continue
			}
			watchCtx, cancel := context.WithCancel(ctx)
			stop = cancel
			g, id := gen, top.Route().ID()
			go top.WatchViews(watchCtx, func(v any) {
				select {
				case frames <- tagged{gen: g, frame: Frame{Route: id, View: v}}:
				case <-watchCtx.Done():
				}
			})
		case f := <-frames:
			if f.gen == gen {
				fn(f.frame)
			}
		}
	}
}

// attach records a connected UI host and reports whether it is the first one.
func (s *Session) attach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hosts++
	return s.hosts == 1
}

// detach reports whether the last UI host is gone.
func (s *Session) detach() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hosts == 0 {
		return false
	}
	s.hosts--
	return s.hosts == 0
}

func (s *Session) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hosts > 0
}

// close tears down every screen and completes all streams. Idempotent.
func (s *Session) close() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.closed = true
	for len(s.stack) > 0 {
		s.popLocked()
	}
	s.mu.Unlock()

	s.dispatcher.ClearListener()
	s.routes.Close()
	s.cancel()
	return true
}

func (s *Session) publish(ctx context.Context, t event.Type, routeID string) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event.New(t, s.id, routeID)); err != nil {
		slog.ErrorContext(ctx, "failed to publish session event", "type", t, "session_id", s.id, "error", err)
	}
}
