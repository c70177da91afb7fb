/*
Package scopelog is a logging decorator that remembers where errors came from.

Log scopes are entered and ended as code runs, so by the time an error is logged,
the scopes active where it was raised have often already ended.
A [Logger] snapshots a flow's scopes when an error is first raised,
and when that error is logged, it replays the scopes that have since ended around that one entry.

# Hello, world

	log := scopelog.New()
	defer log.Close()

	ctx, end := log.BeginScope(context.Background(), "request")
	defer end()

	log.Info(ctx, "Hello, Roswell")

# Raising

Go has no notification for raised errors, so errors are reported with [Raise] where they originate:

	func lookup(ctx context.Context, id string) error {
		ctx, end := log.BeginScope(ctx, slog.String("id", id))
		defer end()

		return scopelog.Raise(ctx, ErrNotFound)
	}

An error may be raised again as it propagates, or wrapped with [Wrap];
only the first sighting on a flow is remembered.
Logging the error, or any error wrapping it, with a [Logger] replays the "id" scope:

	if err := lookup(ctx, "ufo"); err != nil {
		log.Error(ctx, "lookup failed", err)
	}

Errors are matched by identity, not by value: a fresh errors.New("not found") replays nothing.

# Flows

Scope state belongs to a flow, which travels in a [context.Context] rather than with a goroutine.
A flow is created by the first scope entered on a context without one, or explicitly with [NewFlow].
Contexts handed to new goroutines should be passed through [Fork]; a flow is not safe for concurrent use.

Scopes must end in reverse order of entry.

# Sinks

A [Logger] decorates a [Sink], and is one. [New] builds a [SlogSink] over a [slog.Handler]; see [Using].
*/
package scopelog
