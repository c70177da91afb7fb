package scopelog

import (
	"context"
	"time"

	"golang.org/x/exp/slices"
	"golang.org/x/exp/slog"
)

type scopesKey struct{}

// DefaultScopeKey is the key listing scope values that are not Attrs.
const DefaultScopeKey = "scope"

// SlogSink is a [Sink] encapsulating a [slog.Handler].
//
// Scopes travel in the context, and are rendered when an entry is handled:
//   - an [Attr] or []Attr scope is added to the record as is
//   - a [slog.LogValuer] resolving to a group adds the group's Attrs
//   - any other scope value is listed, oldest first, under the scope key
type SlogSink struct {
	h        slog.Handler
	scopeKey string
}

// NewSlogSink returns a SlogSink handling records with h.
func NewSlogSink(h slog.Handler) *SlogSink {
	return &SlogSink{
		h:        h,
		scopeKey: DefaultScopeKey,
	}
}

// WithScopeKey returns a copy of the SlogSink listing scope values under key.
func (s *SlogSink) WithScopeKey(key string) *SlogSink {
	return &SlogSink{
		h:        s.h,
		scopeKey: key,
	}
}

// Handler returns the [slog.Handler] encapsulated by a SlogSink.
func (s *SlogSink) Handler() slog.Handler {
	return s.h
}

// See [slog.Handler.Enabled].
func (s *SlogSink) Enabled(ctx context.Context, level Level) bool {
	return s.h.Enabled(ctx, level)
}

// BeginScope returns a context carrying state as its innermost scope.
// The scope ends when the context is no longer used, so the release func does nothing.
func (s *SlogSink) BeginScope(ctx context.Context, state any) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	scopes := append(slices.Clip(scopesFrom(ctx)), state)
	return context.WithValue(ctx, scopesKey{}, scopes), func() {}
}

// Log builds a record from e and the scopes of ctx, and handles it.
// The error, if any, is added under the key "err".
func (s *SlogSink) Log(ctx context.Context, e Entry) error {
	r := slog.NewRecord(time.Now(), e.Level, e.Message, e.PC)

	flat, listed := scopeAttrs(scopesFrom(ctx))
	r.AddAttrs(flat...)
	if len(listed) > 0 {
		r.AddAttrs(slog.Any(s.scopeKey, listed))
	}

	r.AddAttrs(e.Attrs...)
	if e.Err != nil {
		r.AddAttrs(slog.Any("err", e.Err))
	}

	if ctx == nil {
		ctx = context.Background()
	}
	return s.h.Handle(ctx, r)
}

func scopesFrom(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	scopes, _ := ctx.Value(scopesKey{}).([]any)
	return scopes
}
