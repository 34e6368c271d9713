// Package pagination holds the page arithmetic shared by every list view and
// the cursor aggregation used when a view needs the whole collection.
//
// Page numbers are 1-based. Out-of-range input is clamped, never rejected.
package pagination

import "fmt"

// CalculateTotalPages returns the number of pages needed to show totalItems
// with pageSize items per page. Negative totals count as zero. Without a
// positive page size there is nothing to divide by, so everything is one page.
// An empty list still has one page.
func CalculateTotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage bounds page into [1, totalPages]. totalPages itself is floored to 1.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate returns the slice of items shown on the given page. A page size
// below one is treated as one. A page past the end yields the last page; the
// result is empty only when items is.
func Paginate[T any](items []T, page, pageSize int) []T {
	if pageSize < 1 {
		pageSize = 1
	}
	total := CalculateTotalPages(len(items), pageSize)
	page = ClampPage(page, total)

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	if start >= end {
		return items[:0]
	}
	return items[start:end]
}

// State tracks the current page of a list view. The zero value is not ready
// for use; construct with New.
type State struct {
	page       int
	pageSize   int
	totalItems int
}

// New returns a State positioned on page 1.
func New(totalItems, pageSize int) State {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	return State{page: 1, pageSize: pageSize, totalItems: totalItems}
}

func (s State) Page() int       { return s.page }
func (s State) PageSize() int   { return s.pageSize }
func (s State) TotalItems() int { return s.totalItems }

// TotalPages returns the derived page count (always >= 1).
func (s State) TotalPages() int {
	return CalculateTotalPages(s.totalItems, s.pageSize)
}

// SetPage moves to page, clamped into range.
func (s *State) SetPage(page int) {
	s.page = ClampPage(page, s.TotalPages())
}

// SetTotal updates the item count and re-clamps the current page, e.g. after
// a refetch shrank the list.
func (s *State) SetTotal(totalItems int) {
	if totalItems < 0 {
		totalItems = 0
	}
	s.totalItems = totalItems
	s.page = ClampPage(s.page, s.TotalPages())
}

// Next advances one page. It reports whether the page changed.
func (s *State) Next() bool {
	prev := s.page
	s.SetPage(s.page + 1)
	return s.page != prev
}

// Prev goes back one page. It reports whether the page changed.
func (s *State) Prev() bool {
	prev := s.page
	s.SetPage(s.page - 1)
	return s.page != prev
}

// Bounds returns the half-open [start, end) item window of the current page.
func (s State) Bounds() (int, int) {
	start := (s.page - 1) * s.pageSize
	end := start + s.pageSize
	if end > s.totalItems {
		end = s.totalItems
	}
	if start > end {
		start = end
	}
	return start, end
}

// Label renders "Page 2 of 5".
func (s State) Label() string {
	return fmt.Sprintf("Page %d of %d", s.page, s.TotalPages())
}
