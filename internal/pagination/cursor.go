package pagination

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrCursorLoop indicates the server handed back a cursor it already
	// returned earlier in the same walk.
	ErrCursorLoop = errors.New("cursor pagination returned a repeated cursor")

	// ErrTooManyPages indicates the walk hit its page cap while the server
	// still reported more pages.
	ErrTooManyPages = errors.New("cursor pagination exceeded page limit")
)

// DefaultMaxPages bounds a cursor walk when the caller does not set a limit.
const DefaultMaxPages = 1000

// CursorPage is one response of a cursor-paginated endpoint.
type CursorPage[T any] struct {
	Items      []T
	NextCursor string
	HasNext    bool
}

// CursorFetch requests the page starting at cursor ("" for the first page).
type CursorFetch[T any] func(ctx context.Context, cursor string, size int) (CursorPage[T], error)

// CollectOptions tunes CollectCursor.
type CollectOptions struct {
	PageSize int
	MaxPages int // <= 0 uses DefaultMaxPages
}

// CollectCursor follows nextCursor/hasNext until the server reports no more
// pages and returns every item in server order.
func CollectCursor[T any](ctx context.Context, fetch CursorFetch[T], opts CollectOptions) ([]T, error) {
	size := opts.PageSize
	if size < 1 {
		size = 1
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	var all []T
	seen := make(map[string]bool)
	cursor := ""
	for pages := 0; ; pages++ {
		if pages >= maxPages {
			return all, fmt.Errorf("%w (%d pages)", ErrTooManyPages, maxPages)
		}
		if err := ctx.Err(); err != nil {
			return all, err
		}

		page, err := fetch(ctx, cursor, size)
		if err != nil {
			return all, fmt.Errorf("fetching page %d: %w", pages+1, err)
		}
		all = append(all, page.Items...)

		if !page.HasNext {
			return all, nil
		}
		if page.NextCursor == "" || seen[page.NextCursor] {
			return all, fmt.Errorf("%w: %q", ErrCursorLoop, page.NextCursor)
		}
		seen[page.NextCursor] = true
		cursor = page.NextCursor
	}
}
