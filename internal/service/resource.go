package service

import (
	"context"
	"sync"
)

// State is the renderable snapshot of a Resource.
type State[T any] struct {
	Data      T
	IsLoading bool
	// Error is a display string; it is empty when the last fetch succeeded.
	Error string
}

// FetchFunc loads a resource's data.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Resource wraps one fetch function with loading/error state for a view.
//
// Mount fetches exactly once per lifetime. Refetch may run any number of
// times; when fetches overlap, only the most recently started one may
// update state. After Unmount no fetch updates state.
type Resource[T any] struct {
	fetch FetchFunc[T]

	mu        sync.Mutex
	state     State[T]
	gen       uint64
	mounted   bool
	unmounted bool
}

// NewResource returns a resource in the loading state.
func NewResource[T any](fetch FetchFunc[T]) *Resource[T] {
	return &Resource[T]{
		fetch: fetch,
		state: State[T]{IsLoading: true},
	}
}

// Snapshot returns the current state.
func (r *Resource[T]) Snapshot() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Mount runs the initial fetch and returns the resulting state. Calls after
// the first, or after Unmount, return the current state without fetching.
func (r *Resource[T]) Mount(ctx context.Context) State[T] {
	r.mu.Lock()
	if r.mounted || r.unmounted {
		s := r.state
		r.mu.Unlock()
		return s
	}
	r.mounted = true
	r.mu.Unlock()
	return r.run(ctx)
}

// Refetch fetches again and returns the resulting state.
func (r *Resource[T]) Refetch(ctx context.Context) State[T] {
	return r.run(ctx)
}

// Unmount stops every pending and future fetch from touching state.
func (r *Resource[T]) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmounted = true
}

func (r *Resource[T]) run(ctx context.Context) State[T] {
	r.mu.Lock()
	if r.unmounted {
		s := r.state
		r.mu.Unlock()
		return s
	}
	r.gen++
	gen := r.gen
	r.state.IsLoading = true
	r.mu.Unlock()

	data, err := r.fetch(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.unmounted || gen != r.gen {
		return r.state
	}
	if err != nil {
		r.state = State[T]{Data: r.state.Data, Error: err.Error()}
	} else {
		r.state = State[T]{Data: data}
	}
	return r.state
}
