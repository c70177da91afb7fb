package scopelog

import (
	"golang.org/x/exp/slog"
)

// KV is shorthand for [slog.Any].
func KV(key string, value any) Attr {
	return slog.Any(key, value)
}

// Group returns an Attr holding a group of the given Attrs.
func Group(key string, as ...Attr) Attr {
	return slog.Attr{Key: key, Value: slog.GroupValue(as...)}
}

// Attrs munges arguments to Attrs.
//   - Pairs of (string, any) result in an Attr.
//   - Attrs and []Attrs are appended as they are.
//   - A lone trailing string is paired with a "!missing-arg" value.
//   - Anything else is keyed "!missing-key".
func Attrs(args ...any) (as []Attr) {
	for len(args) > 0 {
		switch arg := args[0].(type) {
		case string:
			if len(args) == 1 {
				as = append(as, slog.String(arg, missingArg))
				return
			}
			as = append(as, slog.Any(arg, args[1]))
			args = args[2:]
		case Attr:
			as = append(as, arg)
			args = args[1:]
		case []Attr:
			as = append(as, arg...)
			args = args[1:]
		default:
			as = append(as, slog.Any(missingKey, arg))
			args = args[1:]
		}
	}
	return
}

// scopeAttrs splits scope states into Attrs that flatten into a record,
// and the remaining states, which are listed under a single key.
func scopeAttrs(states []any) (flat []Attr, listed []any) {
	for _, state := range states {
		switch state := state.(type) {
		case Attr:
			flat = append(flat, state)
		case []Attr:
			flat = append(flat, state...)
		case slog.LogValuer:
			v := state.LogValue().Resolve()
			if v.Kind() == slog.KindGroup {
				flat = append(flat, v.Group()...)
				continue
			}
			listed = append(listed, v.Any())
		default:
			listed = append(listed, state)
		}
	}
	return
}
