package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/alanyang/dogs/internal/domain/event"
	"github.com/alanyang/dogs/internal/domain/route"
	"github.com/alanyang/dogs/internal/metrics"
	portdogs "github.com/alanyang/dogs/internal/port/dogs"
	portbus "github.com/alanyang/dogs/internal/port/eventbus"
)

var ErrNotFound = errors.New("session not found")

// Manager tracks live sessions by id.
type Manager struct {
	ctx  context.Context
	repo portdogs.Repository
	bus  portbus.EventBus

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager returns a manager whose sessions live until closed or until ctx is
// done. bus may be nil.
func NewManager(ctx context.Context, repo portdogs.Repository, bus portbus.EventBus) *Manager {
	return &Manager{
		ctx:      ctx,
		repo:     repo,
		bus:      bus,
		sessions: make(map[uuid.UUID]*Session),
	}
}

// Create opens a session on the breed list screen.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	if err := m.ctx.Err(); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s := newSession(m.ctx, uuid.New(), m.repo, m.bus)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	metrics.SessionOpened()
	slog.InfoContext(ctx, "session opened", "session_id", s.id)
	s.publish(ctx, event.TypeSessionOpened, route.BreedsList().ID())
	return s, nil
}

func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, ErrNotFound)
	}
	return s, nil
}

// List returns the ids of all live sessions.
func (m *Manager) List() []uuid.UUID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

// Close removes the session and cancels all of its fetches.
func (m *Manager) Close(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("close session %s: %w", id, ErrNotFound)
	}

	if s.close() {
		metrics.SessionClosed()
		slog.InfoContext(ctx, "session closed", "session_id", id)
		s.publish(ctx, event.TypeSessionClosed, "")
	}
	return nil
}

func (m *Manager) CloseAll(ctx context.Context) {
	for _, id := range m.List() {
		if err := m.Close(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
			slog.ErrorContext(ctx, "failed to close session", "session_id", id, "error", err)
		}
	}
}

// Attach records that a UI host connected to the session.
func (m *Manager) Attach(ctx context.Context, id uuid.UUID) error {
	s, err := m.Get(id)
	if err != nil {
		return fmt.Errorf("attach host: %w", err)
	}
	if s.attach() {
		s.publish(ctx, event.TypeHostAttached, s.Route().ID())
	}
	return nil
}

// Detach records that a UI host went away. Once the last one is gone the session
// becomes a candidate for the idle reaper.
func (m *Manager) Detach(ctx context.Context, id uuid.UUID) error {
	s, err := m.Get(id)
	if err != nil {
		return fmt.Errorf("detach host: %w", err)
	}
	if s.detach() {
		s.publish(ctx, event.TypeHostDetached, s.Route().ID())
	}
	return nil
}
