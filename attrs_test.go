package scopelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestAttrs(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []any
		want []Attr
	}{
		{"empty", nil, nil},
		{"pairs", []any{"a", 1, "b", "x"}, []Attr{slog.Int("a", 1), slog.String("b", "x")}},
		{"attr", []any{slog.Bool("ok", true)}, []Attr{slog.Bool("ok", true)}},
		{"attrs", []any{[]Attr{slog.Int("a", 1), slog.Int("b", 2)}, "c", 3}, []Attr{slog.Int("a", 1), slog.Int("b", 2), slog.Int("c", 3)}},
		{"lone key", []any{"a", 1, "dangling"}, []Attr{slog.Int("a", 1), slog.String("dangling", missingArg)}},
		{"no key", []any{42, "a", 1}, []Attr{slog.Int(missingKey, 42), slog.Int("a", 1)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := Attrs(tc.args...)
			if assert.Len(t, got, len(tc.want)) {
				for i := range tc.want {
					assert.True(t, tc.want[i].Equal(got[i]), "attr %d: want %v, got %v", i, tc.want[i], got[i])
				}
			}
		})
	}
}

func TestKVGroup(t *testing.T) {
	kv := KV("n", 2)
	assert.True(t, kv.Equal(slog.Int("n", 2)), "KV: %v", kv)

	g := Group("agent", slog.String("first", "Dana"), slog.String("last", "Scully"))
	assert.Equal(t, "agent", g.Key)
	assert.Equal(t, slog.KindGroup, g.Value.Kind())
	assert.Len(t, g.Value.Group(), 2)
}
