package testlog

import (
	"context"
	"fmt"
	"sync"

	"github.com/AndrewHarrisSPU/scopelog"
	"golang.org/x/exp/slices"
)

type recorderScopes struct{}

// A Recorder is a [scopelog.Sink] that records what it is asked to do as a trace of lines:
//
//	enter <state>
//	exit <state>
//	log <message> [<scopes of the context, oldest first>]
//
// The zero Recorder is ready to use, and safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	trace []string

	// Fail, if set, is returned from every Log.
	Fail error

	// Panic, if non-nil, is panicked with from every Log.
	Panic any

	// Level is the least level enabled.
	Level scopelog.Level
}

func (r *Recorder) add(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.trace = append(r.trace, fmt.Sprintf(format, args...))
}

// Take returns the trace recorded so far, and clears it.
func (r *Recorder) Take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	trace := r.trace
	r.trace = nil
	return trace
}

func (r *Recorder) Enabled(_ context.Context, level scopelog.Level) bool {
	return level >= r.Level
}

func (r *Recorder) BeginScope(ctx context.Context, state any) (context.Context, func()) {
	r.add("enter %v", state)
	scopes := append(slices.Clip(Scopes(ctx)), state)
	return context.WithValue(ctx, recorderScopes{}, scopes), func() {
		r.add("exit %v", state)
	}
}

func (r *Recorder) Log(ctx context.Context, e scopelog.Entry) error {
	r.add("log %s %v", e.Message, Scopes(ctx))
	if r.Panic != nil {
		panic(r.Panic)
	}
	return r.Fail
}

// Scopes returns the states a Recorder has entered on ctx, oldest first.
func Scopes(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	scopes, _ := ctx.Value(recorderScopes{}).([]any)
	return scopes
}
