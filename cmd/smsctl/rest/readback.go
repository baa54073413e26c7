package rest

import (
	"fmt"

	"github.com/opst/smsctl/pkg/api/types/paginated"
)

// partial is a resource which a create/update response may carry only in part.
type partial interface {
	Partial() bool
}

// readBack completes a response of create/update.
//
// Whole v is checked with its schema and returned. Otherwise, the resource is
// fetched again with lookup.
// Errors of lookup match ErrNotReadBack, since the write itself has succeeded.
func readBack[T partial](v T, where string, lookup func() (T, error)) (T, error) {
	var zero T
	if !v.Partial() {
		if err := checkSchema(v, where); err != nil {
			return zero, err
		}
		return v, nil
	}

	got, err := lookup()
	if err != nil {
		return zero, fmt.Errorf("%w (%s): %w", ErrNotReadBack, where, err)
	}
	return got, nil
}

// latest walks pages from the first, and returns the item of the largest id among matching ones.
func latest[T any](fetch func(page int) (paginated.Page[T], error), match func(T) bool, idOf func(T) int) (T, error) {
	var found T
	ok := false
	page := 1
	for {
		p, err := fetch(page)
		if err != nil {
			return found, err
		}
		for _, item := range p.Results {
			if match(item) && (!ok || idOf(found) < idOf(item)) {
				found, ok = item, true
			}
		}
		next, more := p.NextPage()
		if !more || next <= page {
			break
		}
		page = next
	}
	if !ok {
		return found, ErrNotFound
	}
	return found, nil
}
