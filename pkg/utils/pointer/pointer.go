// Package pointer converts between values and optional fields of API payloads.
package pointer

// Ref returns a pointer to a copy of t.
func Ref[T any](t T) *T {
	return &t
}

// Or returns *p, or d if p is nil.
func Or[T any](p *T, d T) T {
	if p == nil {
		return d
	}
	return *p
}

// NonZero returns a pointer to a copy of t, or nil if t is the zero value.
//
// It is for optional fields where zero means unset.
func NonZero[T comparable](t T) *T {
	if t == *new(T) {
		return nil
	}
	return &t
}
