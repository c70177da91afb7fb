package testlog

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/exp/slog"
)

// Substrings returns a [slog.Handler] and a "want" function.
//
// When a logging call is made using the handler, log lines are written to a buffer.
// Calling "want" tests whether the buffer contains the given string.
// If it does not, t.Errorf is called.
// Calling want clears the buffer.
//
// The handler encodes to JSON, omits time, and adds source/line information.
func Substrings(t testing.TB) (h slog.Handler, want func(string)) {
	var b bytes.Buffer

	want = func(wantString string) {
		t.Helper()
		if !strings.Contains(b.String(), wantString) {
			t.Errorf("\n\texpected %s\n\tin %s", wantString, b.String())
		}
		b.Reset()
	}

	h = slog.NewJSONHandler(&b, &slog.HandlerOptions{
		ReplaceAttr: NoTime,
		AddSource:   true,
		Level:       slog.LevelDebug,
	})

	return h, want
}

// NoTime is a ReplaceAttr function dropping the record time, for stable output.
func NoTime(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && len(groups) == 0 {
		return slog.Attr{}
	}
	return a
}
