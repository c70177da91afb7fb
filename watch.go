package scopelog

import (
	"context"
	"reflect"
)

// observe is the raise hook each [Logger] subscribes.
// Raising on a context without a flow is a no-op.
func observe(ctx context.Context, err error) {
	if f := flowFrom(ctx); f != nil {
		f.observe(err)
	}
}

// wraps reports whether target is err, or is found in the tree of errors err wraps.
// Matching is by identity, see [sameError].
func wraps(err, target error) bool {
	for err != nil {
		if sameError(err, target) {
			return true
		}

		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, err := range u.Unwrap() {
				if wraps(err, target) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}

// sameError compares errors by identity rather than value.
// Errors with a pointer-shaped dynamic type are the same if they share type and address.
// Other errors have no identity to compare, and fall back to == when comparable.
func sameError(a, b error) bool {
	if a == nil || b == nil {
		return false
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Chan:
		return va.Pointer() == vb.Pointer()
	}

	if !va.Comparable() {
		return false
	}
	return a == b
}
