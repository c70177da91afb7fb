package scopelog

import (
	"context"
	"runtime"
)

// A Sink is the logging contract a [Logger] consumes and provides.
//
// BeginScope returns a context derived from ctx in which state is an active scope,
// and a func releasing the scope.
type Sink interface {
	Enabled(ctx context.Context, level Level) bool
	Log(ctx context.Context, e Entry) error
	BeginScope(ctx context.Context, state any) (context.Context, func())
}

// An Entry is one logging call.
type Entry struct {
	Level   Level
	Message string
	Err     error
	Attrs   []Attr

	// PC is the program counter of the logging call site, or zero.
	PC uintptr
}

// Logger decorates a [Sink], remembering scopes that were active when an error was raised.
//
// Scopes are tracked per flow (see [NewFlow]), and errors are observed with [Raise].
// When an entry carries an error that was raised under scopes that have since ended,
// the Logger re-enters those scopes on the sink around that one entry.
//
// A Logger is itself a Sink.
type Logger struct {
	sink Sink
	sub  *Subscription
}

// New returns a Logger based on a [SlogSink], configured by the given options.
// See [Using].
func New(options ...Option) *Logger {
	cfg := makeConfig(options...)
	return Decorate(cfg.sink)
}

// Decorate returns a Logger wrapping sink.
// The Logger subscribes to [Raise] until [Logger.Close] is called.
func Decorate(sink Sink) *Logger {
	return &Logger{
		sink: sink,
		sub:  Subscribe(observe),
	}
}

// Close deregisters the Logger from [Raise].
// It is safe to call more than once.
func (l *Logger) Close() error {
	return l.sub.Close()
}

// Sink returns the decorated [Sink].
func (l *Logger) Sink() Sink {
	return l.sink
}

// Enabled reports whether the sink handles entries at the given level.
func (l *Logger) Enabled(ctx context.Context, level Level) bool {
	return l.sink.Enabled(ctx, level)
}

// BeginScope pushes state onto the flow of ctx, creating the flow if ctx has none,
// and delegates to the sink.
//
// The returned func ends the scope; calls after the first do nothing.
// Scopes must be ended in reverse order of entry.
func (l *Logger) BeginScope(ctx context.Context, state any) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}

	f := flowFrom(ctx)
	if f == nil {
		f = new(flow)
		ctx = context.WithValue(ctx, flowKey{}, f)
	}

	f.push(state)
	ctx, release := l.sink.BeginScope(ctx, state)

	var done bool
	end := func() {
		if done {
			return
		}
		done = true
		release()
		f.pop()
	}

	return ctx, end
}

// Log delegates e to the sink.
//
// If e.Err was raised on the flow of ctx while scopes now ended were active,
// those scopes are entered on the sink, oldest first, the entry is logged inside them,
// and they are released again, newest first.
// Replayed scopes are never pushed onto the flow.
// The sink's error is returned unchanged.
func (l *Logger) Log(ctx context.Context, e Entry) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.Err == nil {
		return l.sink.Log(ctx, e)
	}

	f := flowFrom(ctx)
	if f == nil {
		return l.sink.Log(ctx, e)
	}

	missing := f.missing(e.Err)
	if len(missing) == 0 {
		return l.sink.Log(ctx, e)
	}

	releases := make([]func(), 0, len(missing))
	defer func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}()

	for _, state := range missing {
		var release func()
		ctx, release = l.sink.BeginScope(ctx, state)
		releases = append(releases, release)
	}

	return l.sink.Log(ctx, e)
}

// Debug logs at DEBUG.
// Arguments are munged as with [Attrs].
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.log(ctx, DEBUG, msg, nil, args)
}

// Info logs at INFO.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, INFO, msg, nil, args)
}

// Warn logs at WARN.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, WARN, msg, nil, args)
}

// Error logs at ERROR, and specifically asks for an error.
// Sink errors are dropped, as with [slog.Logger]; use [Logger.Log] to see them.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	l.log(ctx, ERROR, msg, err, args)
}

func (l *Logger) log(ctx context.Context, level Level, msg string, err error, args []any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.sink.Enabled(ctx, level) {
		return
	}

	// skip Callers, log, and the leveled method
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	_ = l.Log(ctx, Entry{
		Level:   level,
		Message: msg,
		Err:     err,
		Attrs:   Attrs(args...),
		PC:      pcs[0],
	})
}
