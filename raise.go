package scopelog

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"
)

// The raise bus is process-wide.
// Subscribers are held copy-on-write, so a dispatch runs without the lock held.
var bus struct {
	mu   sync.RWMutex
	next uint64
	subs []subscriber
}

type subscriber struct {
	id uint64
	fn func(context.Context, error)
}

// A Subscription is a registration made with [Subscribe].
type Subscription struct {
	id   uint64
	once sync.Once
}

// Subscribe registers fn to be called by every [Raise], in subscription order.
func Subscribe(fn func(context.Context, error)) *Subscription {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	bus.next++
	s := &Subscription{id: bus.next}
	bus.subs = append(slices.Clip(bus.subs), subscriber{s.id, fn})

	return s
}

// Close deregisters the subscription.
// Calls after the first do nothing.
func (s *Subscription) Close() error {
	s.once.Do(func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()

		bus.subs = slices.DeleteFunc(slices.Clone(bus.subs), func(sub subscriber) bool {
			return sub.id == s.id
		})
	})
	return nil
}

// Raise reports err as raised on the flow carried by ctx, and returns err.
// It should be called where an error originates, before any handling:
//
//	if n < 0 {
//		return scopelog.Raise(ctx, ErrNegative)
//	}
//
// Subscribers run synchronously, on the calling goroutine.
// Raising an error again as it propagates is harmless: only the first sighting on a flow is recorded.
// A new error wrapping the watched one (see [errors.Unwrap]) counts as the same sighting,
// since Go errors propagate by wrapping; logging it replays the scopes of the error it wraps.
// A nil err is returned without notifying anyone.
func Raise(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	bus.mu.RLock()
	subs := bus.subs
	bus.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(ctx, err)
	}
	return err
}

// Errorf raises the result of [fmt.Errorf].
func Errorf(ctx context.Context, format string, args ...any) error {
	return Raise(ctx, fmt.Errorf(format, args...))
}

// Wrap raises an error prefixing err with msg.
// The result matches err under [errors.Is] and [errors.As].
// Since it wraps err, raising it does not replace a scope snapshot already held for err.
// Given a nil err, Wrap returns nil.
func Wrap(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}
	return Raise(ctx, fmt.Errorf("%s: %w", msg, err))
}
