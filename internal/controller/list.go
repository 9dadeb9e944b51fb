// Package controller holds the page-side state: one in-memory snapshot
// per resource list, local filtering, and the reload-after-mutation
// policy that keeps displayed state reconciled to server truth within
// one round trip.
package controller

import (
	"context"
	"sync"
)

// Loader fetches the full current list for the controller's scope.
type Loader[T any] func(ctx context.Context) ([]T, error)

// List owns one resource list. Load replaces the snapshot wholesale:
// there is no incremental merge and no optimistic local mutation, so a
// failed call always leaves the previous snapshot intact.
type List[T any] struct {
	mu     sync.Mutex
	loader Loader[T]
	items  []T
	pred   func(T) bool
	loaded bool
}

func NewList[T any](loader Loader[T]) *List[T] {
	return &List[T]{loader: loader}
}

// Load fetches and replaces the snapshot. On error the prior snapshot
// is untouched and the normalized message propagates to the caller.
func (l *List[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	loader := l.loader
	l.mu.Unlock()

	items, err := loader(ctx)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.items = items
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Mutate runs fn and, on success, reloads the list. This is the single
// place the mutate-then-reload contract lives; typed controllers route
// every create/update/delete through it.
func (l *List[T]) Mutate(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return l.Load(ctx)
}

// SetLoader swaps the scope (e.g. the tickets controller moving to a
// different project) and drops the now-unrelated snapshot.
func (l *List[T]) SetLoader(loader Loader[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loader = loader
	l.items = nil
	l.loaded = false
}

// SetFilter installs a purely local predicate. nil shows everything.
func (l *List[T]) SetFilter(pred func(T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pred = pred
}

// Items returns the filtered view of the snapshot. Filtering is
// synchronous and repeatable: the same predicate over the same
// snapshot yields the same slice.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pred == nil {
		out := make([]T, len(l.items))
		copy(out, l.items)
		return out
	}
	var out []T
	for _, it := range l.items {
		if l.pred(it) {
			out = append(out, it)
		}
	}
	return out
}

// All returns the unfiltered snapshot.
func (l *List[T]) All() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Loaded reports whether at least one Load has succeeded.
func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}
