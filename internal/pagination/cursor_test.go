package pagination

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedSource serves items in pages keyed by a numeric offset cursor.
func pagedSource(items []int, calls *[]string) CursorFetch[int] {
	return func(_ context.Context, cursor string, size int) (CursorPage[int], error) {
		*calls = append(*calls, cursor)
		start := 0
		if cursor != "" {
			n, err := strconv.Atoi(cursor)
			if err != nil {
				return CursorPage[int]{}, err
			}
			start = n
		}
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		page := CursorPage[int]{Items: items[start:end]}
		if end < len(items) {
			page.HasNext = true
			page.NextCursor = strconv.Itoa(end)
		}
		return page, nil
	}
}

func TestCollectCursor_ConcatenatesAllPages(t *testing.T) {
	var calls []string
	items := seq(120)

	got, err := CollectCursor(context.Background(), pagedSource(items, &calls), CollectOptions{PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, items, got)
	assert.Equal(t, []string{"", "50", "100"}, calls)
}

func TestCollectCursor_SinglePage(t *testing.T) {
	var calls []string
	got, err := CollectCursor(context.Background(), pagedSource(seq(3), &calls), CollectOptions{PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Len(t, calls, 1)
}

func TestCollectCursor_RepeatedCursorStops(t *testing.T) {
	fetch := func(_ context.Context, cursor string, _ int) (CursorPage[int], error) {
		return CursorPage[int]{Items: []int{1}, NextCursor: "same", HasNext: true}, nil
	}

	got, err := CollectCursor(context.Background(), fetch, CollectOptions{PageSize: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCursorLoop)
	assert.Equal(t, []int{1, 1}, got, "items fetched before the loop are kept")
}

func TestCollectCursor_EmptyNextCursorWithHasNext(t *testing.T) {
	fetch := func(_ context.Context, _ string, _ int) (CursorPage[int], error) {
		return CursorPage[int]{Items: []int{1}, HasNext: true}, nil
	}
	_, err := CollectCursor(context.Background(), fetch, CollectOptions{PageSize: 1})
	assert.ErrorIs(t, err, ErrCursorLoop)
}

func TestCollectCursor_PageCap(t *testing.T) {
	n := 0
	fetch := func(_ context.Context, _ string, _ int) (CursorPage[int], error) {
		n++
		return CursorPage[int]{Items: []int{n}, NextCursor: fmt.Sprintf("c%d", n), HasNext: true}, nil
	}

	got, err := CollectCursor(context.Background(), fetch, CollectOptions{PageSize: 1, MaxPages: 4})
	assert.ErrorIs(t, err, ErrTooManyPages)
	assert.Len(t, got, 4)
}

func TestCollectCursor_FetchErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	fetch := func(_ context.Context, _ string, _ int) (CursorPage[int], error) {
		return CursorPage[int]{}, boom
	}
	_, err := CollectCursor(context.Background(), fetch, CollectOptions{PageSize: 10})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "fetching page 1")
}

func TestCollectCursor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var calls []string
	_, err := CollectCursor(ctx, pagedSource(seq(10), &calls), CollectOptions{PageSize: 5})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, calls)
}
