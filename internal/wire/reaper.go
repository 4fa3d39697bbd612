package wire

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/dogs/internal/domain/event"
	porteventbus "github.com/alanyang/dogs/internal/port/eventbus"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"
)

// startReaper subscribes to the session channel and schedules a grace-period
// timer whenever a session has no UI host: right after it opens and whenever its
// last host detaches. If a host attaches within the grace period the timer is
// cancelled; if it expires the session is closed and its fetches cancelled.
//
// Sessions live in memory only, so there is nothing to rescan after a restart.
func startReaper(ctx context.Context, sessions *sessionsvc.Manager, bus porteventbus.EventBus, grace time.Duration) (porteventbus.Subscription, error) {
	var (
		mu     sync.Mutex
		timers = make(map[uuid.UUID]*time.Timer)
	)

	cancel := func(id uuid.UUID) {
		mu.Lock()
		if t, ok := timers[id]; ok {
			t.Stop()
			delete(timers, id)
		}
		mu.Unlock()
	}

	scheduleReap := func(id uuid.UUID) {
		t := time.AfterFunc(grace, func() {
			mu.Lock()
			delete(timers, id)
			mu.Unlock()

			s, err := sessions.Get(id)
			if err != nil {
				return
			}
			// A host may have attached after the event was published.
			if s.Attached() {
				return
			}
			if err := sessions.Close(context.Background(), id); err != nil && !errors.Is(err, sessionsvc.ErrNotFound) {
				slog.Error("reaper: close session failed", "session_id", id, "error", err)
				return
			}
			slog.Info("reaper: closed idle session", "session_id", id, "grace", grace)
		})
		mu.Lock()
		if old, ok := timers[id]; ok {
			old.Stop()
		}
		timers[id] = t
		mu.Unlock()
	}

	// Schedule on open or detach, cancel on attach or close.
	return bus.Subscribe(ctx, event.ChannelSession, func(_ context.Context, e event.Event) {
		switch e.Type {
		case event.TypeSessionOpened, event.TypeHostDetached:
			scheduleReap(e.SessionID)
		case event.TypeHostAttached, event.TypeSessionClosed:
			cancel(e.SessionID)
		}
	})
}
