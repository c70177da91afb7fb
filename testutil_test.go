package scopelog

import (
	"context"
)

// DISCARD

type discardSink struct{}

func (discardSink) Enabled(context.Context, Level) bool {
	return true
}

func (discardSink) Log(context.Context, Entry) error {
	return nil
}

func (discardSink) BeginScope(ctx context.Context, _ any) (context.Context, func()) {
	return ctx, func() {}
}
