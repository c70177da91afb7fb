package scopelog

import (
	"context"

	"golang.org/x/exp/slices"
)

type flowKey struct{}

// A flow is the scope state of one logical sequence of calls.
// It travels in a context, so it follows the sequence across goroutines;
// only code running in that sequence touches it, and it is not locked.
type flow struct {
	// scope values, oldest first
	stack []any

	// the error last seen first on this flow while stack was non-empty,
	// and a copy of stack taken at that moment
	watched  error
	snapshot []any
}

func flowFrom(ctx context.Context) *flow {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(flowKey{}).(*flow)
	return f
}

// NewFlow returns a context carrying a new, empty flow.
//
// A flow is otherwise created on the first [Logger.BeginScope] of a context lacking one,
// and only contexts derived from that scope see it.
// Calling NewFlow on a root context (e.g. one per request) lets logging calls made after every scope has ended still replay scopes.
func NewFlow(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, flowKey{}, new(flow))
}

// Fork returns a context carrying a child flow, for handing to a new goroutine.
// The child starts with a copy of the live scopes of the flow in ctx, and no watched error.
// Scopes entered or errors raised on the child are invisible to the parent, and vice versa.
//
// Sharing one flow between concurrently running goroutines is not supported.
func Fork(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	child := new(flow)
	if f := flowFrom(ctx); f != nil {
		child.stack = slices.Clone(f.stack)
	}
	return context.WithValue(ctx, flowKey{}, child)
}

func (f *flow) push(state any) {
	f.stack = append(f.stack, state)
}

// pop assumes LIFO discipline; popping an empty stack is ignored.
func (f *flow) pop() {
	n := len(f.stack)
	if n == 0 {
		return
	}
	f.stack[n-1] = nil
	f.stack = f.stack[:n-1]
}

// observe records the first sighting of err on f.
func (f *flow) observe(err error) {
	if f.watched != nil && wraps(err, f.watched) {
		return
	}

	if len(f.stack) == 0 {
		f.watched = nil
		f.snapshot = nil
		return
	}

	f.watched = err
	f.snapshot = slices.Clone(f.stack)
}

// missing returns the scopes live when err was first seen that have since ended, oldest first.
func (f *flow) missing(err error) []any {
	if f.watched == nil || !wraps(err, f.watched) {
		return nil
	}

	live := len(f.stack)
	if len(f.snapshot) <= live {
		return nil
	}
	return f.snapshot[live:]
}
