// Package stream provides a replay-latest subject: it holds one current value,
// pushes every update to all active subscribers and hands the current value to
// late subscribers immediately.
package stream

import (
	"context"
	"sync"
)

// Subject delivery is conflated: a slow subscriber only ever sees the latest value,
// never a backlog, and Publish never blocks on a subscriber.
type Subject[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[*Subscription[T]]struct{}
	closed bool
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{
		value: initial,
		subs:  make(map[*Subscription[T]]struct{}),
	}
}

// Value returns the current value.
func (s *Subject[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Publish replaces the current value and offers it to every subscriber.
// It is a no-op once the subject is closed.
func (s *Subject[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.value = v
	for sub := range s.subs {
		sub.offer(v)
	}
}

// Subscribe returns a subscription whose channel already holds the current value.
// Subscribing to a closed subject yields the final value followed by a closed channel.
func (s *Subject[T]) Subscribe() *Subscription[T] {
	sub := &Subscription[T]{ch: make(chan T, 1), subject: s}

	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ch <- s.value
	if s.closed {
		sub.once.Do(func() { close(sub.ch) })
		return sub
	}
	s.subs[sub] = struct{}{}
	return sub
}

// Watch calls fn with the current value and every later one until ctx is done or
// the subject is closed.
func (s *Subject[T]) Watch(ctx context.Context, fn func(T)) {
	sub := s.Subscribe()
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-sub.C():
			if !ok {
				return
			}
			fn(v)
		}
	}
}

// Close completes all subscriptions. Further publishes are ignored.
func (s *Subject[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for sub := range s.subs {
		sub.once.Do(func() { close(sub.ch) })
	}
	clear(s.subs)
}

type Subscription[T any] struct {
	ch      chan T
	subject *Subject[T]
	once    sync.Once
}

func (sub *Subscription[T]) C() <-chan T { return sub.ch }

// Close detaches the subscription and closes its channel.
func (sub *Subscription[T]) Close() {
	sub.subject.mu.Lock()
	defer sub.subject.mu.Unlock()

	delete(sub.subject.subs, sub)
	sub.once.Do(func() { close(sub.ch) })
}

// offer must be called with the subject lock held; it is the only sender, so after
// draining a stale value the buffered send cannot block.
func (sub *Subscription[T]) offer(v T) {
	select {
	case <-sub.ch:
	default:
	}
	sub.ch <- v
}
