package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_StartsLoading(t *testing.T) {
	r := NewResource(func(context.Context) (int, error) { return 1, nil })
	s := r.Snapshot()
	assert.True(t, s.IsLoading)
	assert.Zero(t, s.Data)
	assert.Empty(t, s.Error)
}

func TestResource_MountFetchesOnce(t *testing.T) {
	var calls atomic.Int32
	r := NewResource(func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	})
	ctx := context.Background()

	s := r.Mount(ctx)
	assert.Equal(t, State[int]{Data: 1}, s)

	s = r.Mount(ctx)
	assert.Equal(t, 1, s.Data)
	assert.Equal(t, int32(1), calls.Load())

	s = r.Refetch(ctx)
	assert.Equal(t, 2, s.Data)
}

func TestResource_ErrorKeepsPreviousData(t *testing.T) {
	fail := false
	r := NewResource(func(context.Context) ([]string, error) {
		if fail {
			return nil, errors.New("backend down")
		}
		return []string{"a"}, nil
	})
	ctx := context.Background()
	r.Mount(ctx)

	fail = true
	s := r.Refetch(ctx)
	assert.False(t, s.IsLoading)
	assert.Equal(t, "backend down", s.Error)
	assert.Equal(t, []string{"a"}, s.Data)

	fail = false
	s = r.Refetch(ctx)
	assert.Empty(t, s.Error)
}

func TestResource_UnmountIgnoresPendingResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := NewResource(func(context.Context) (string, error) {
		close(started)
		<-release
		return "late", nil
	})

	done := make(chan State[string])
	go func() { done <- r.Mount(context.Background()) }()
	<-started
	r.Unmount()
	close(release)
	<-done

	s := r.Snapshot()
	assert.Empty(t, s.Data)
	assert.True(t, s.IsLoading)
}

func TestResource_MountAfterUnmountDoesNotFetch(t *testing.T) {
	var calls atomic.Int32
	r := NewResource(func(context.Context) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	r.Unmount()
	r.Mount(context.Background())
	r.Refetch(context.Background())
	assert.Zero(t, calls.Load())
}

func TestResource_OlderFetchNeverOverwritesNewer(t *testing.T) {
	var calls atomic.Int32
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	r := NewResource(func(context.Context) (string, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
			return "old", nil
		}
		return "new", nil
	})
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		r.Mount(ctx)
		close(done)
	}()
	<-firstStarted

	s := r.Refetch(ctx)
	require.Equal(t, "new", s.Data)

	close(releaseFirst)
	<-done
	assert.Equal(t, "new", r.Snapshot().Data)
}
