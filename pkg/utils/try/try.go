// Package try shortens handling of (value, error) pairs where any error is fatal.
//
//	resp := try.To(http.Get(url)).OrFatal(t)
package try

// Fataler is *testing.T, *log.Logger and so on.
type Fataler interface {
	Fatal(...any)
}

// Result holds a pair of a value and an error, as returned by a function call.
type Result[T any] struct {
	value T
	err   error
}

func To[T any](value T, err error) Result[T] {
	return Result[T]{value: value, err: err}
}

// Err returns the error of the call.
func (r Result[T]) Err() error {
	return r.err
}

// OrFatal returns the value if the call succeeded.
//
// Otherwise, it calls ftl.Fatal with the error and returns zero value.
// Helper() of ftl is called in advance, if there is.
func (r Result[T]) OrFatal(ftl Fataler) T {
	if r.err == nil {
		return r.value
	}
	if h, ok := ftl.(interface{ Helper() }); ok {
		h.Helper()
	}
	ftl.Fatal(r.err)
	return *new(T)
}

func (r Result[T]) OrDefault(d T) T {
	if r.err != nil {
		return d
	}
	return r.value
}
