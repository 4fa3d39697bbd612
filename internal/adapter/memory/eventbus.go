package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/alanyang/dogs/internal/domain/event"
	porteventbus "github.com/alanyang/dogs/internal/port/eventbus"
)

const subscriptionBuffer = 256

var _ porteventbus.EventBus = (*EventBus)(nil)

// EventBus delivers events within one process. Each subscription has its own
// goroutine, so a slow handler never blocks Publish; when its buffer is full
// events for that subscription are dropped.
type EventBus struct {
	mu   sync.RWMutex
	subs map[event.Channel]map[*subscription]struct{}
}

func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[event.Channel]map[*subscription]struct{}),
	}
}

func (eb *EventBus) Publish(ctx context.Context, e event.Event) error {
	ch := event.ChannelFor(e.Type)

	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for sub := range eb.subs[ch] {
		select {
		case sub.events <- e:
		default:
			slog.WarnContext(ctx, "event dropped, subscriber is behind", "channel", ch, "type", e.Type)
		}
	}
	return nil
}

// Subscribe invokes handler for every event published on ch until the
// subscription is cancelled or ctx is done.
func (eb *EventBus) Subscribe(ctx context.Context, ch event.Channel, handler porteventbus.Handler) (porteventbus.Subscription, error) {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{
		events: make(chan event.Event, subscriptionBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}

	eb.mu.Lock()
	if eb.subs[ch] == nil {
		eb.subs[ch] = make(map[*subscription]struct{})
	}
	eb.subs[ch][sub] = struct{}{}
	eb.mu.Unlock()

	go func() {
		defer func() {
			eb.mu.Lock()
			delete(eb.subs[ch], sub)
			eb.mu.Unlock()
			close(sub.done)
		}()

		for {
			select {
			case <-subCtx.Done():
				return
			case e := <-sub.events:
				handler(subCtx, e)
			}
		}
	}()

	return sub, nil
}

type subscription struct {
	events chan event.Event
	cancel context.CancelFunc
	done   chan struct{}
}

func (s *subscription) Unsubscribe() {
	s.cancel()
	<-s.done
}
