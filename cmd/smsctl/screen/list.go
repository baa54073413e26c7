// Package screen holds the lifecycle shared by list and form screens.
package screen

import (
	"context"
	"errors"
	"log"
	"sync"
)

// ErrSuperseded is returned by Load when a newer Load has started before it completes.
var ErrSuperseded = errors.New("superseded by a newer request")

// Fetcher fetches items matching query q.
type Fetcher[Q any, T any] func(ctx context.Context, q Q) ([]T, error)

// View is a snapshot of a list screen.
type View[T any] struct {
	Items   []T
	Loading bool

	// Generation is the number of the latest Load.
	Generation uint64

	// Err is the failure of the latest completed Load. Items are left as before then.
	Err error
}

// List is a controller of a list screen.
//
// Only the result of the latest Load is applied to the view.
// A new Load cancels the request of the former one.
type List[Q any, T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[Q, T]
	logger   *log.Logger
	gen      uint64
	cancel   context.CancelFunc
	view     View[T]
	onChange func(View[T])
}

func NewList[Q any, T any](fetch Fetcher[Q, T], logger *log.Logger) *List[Q, T] {
	return &List[Q, T]{fetch: fetch, logger: logger}
}

// OnChange registers fn to be called after each transition of the view.
//
// fn is called while the List is locked. It must not call methods of the List.
func (l *List[Q, T]) OnChange(fn func(View[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

func (l *List[Q, T]) View() View[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *List[Q, T]) snapshot() View[T] {
	v := l.view
	v.Items = append([]T{}, l.view.Items...)
	return v
}

func (l *List[Q, T]) changed() {
	if l.onChange != nil {
		l.onChange(l.snapshot())
	}
}

// Load fetches items for q and applies them to the view.
//
// It returns the view after this Load. If a newer Load has started meanwhile,
// the result is discarded and ErrSuperseded is returned.
// A failure of fetch is logged and returned. Items are kept as before.
func (l *List[Q, T]) Load(ctx context.Context, q Q) (View[T], error) {
	gen, fctx := l.begin(ctx)
	return l.complete(gen, fctx, q)
}

// Go is Load in background. The returned channel receives the error of Load and is closed.
//
// Loads are ordered when Go returns, so the last call of Go is the latest one.
func (l *List[Q, T]) Go(ctx context.Context, q Q) <-chan error {
	gen, fctx := l.begin(ctx)
	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		_, err := l.complete(gen, fctx, q)
		ch <- err
	}()
	return ch
}

func (l *List[Q, T]) begin(ctx context.Context) (uint64, context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.gen += 1
	fctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.view.Loading = true
	l.view.Generation = l.gen
	l.changed()
	return l.gen, fctx
}

func (l *List[Q, T]) complete(gen uint64, fctx context.Context, q Q) (View[T], error) {
	items, err := l.fetch(fctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen {
		return l.snapshot(), ErrSuperseded
	}
	l.cancel()
	l.cancel = nil
	l.view.Loading = false

	if err != nil {
		if l.logger != nil {
			l.logger.Printf("failed to load: %s", err)
		}
		l.view.Err = err
		l.changed()
		return l.snapshot(), err
	}

	l.view.Items = items
	l.view.Err = nil
	l.changed()
	return l.snapshot(), nil
}
