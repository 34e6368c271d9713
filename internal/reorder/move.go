// Package reorder implements manual node reordering: pure list moves and a
// board that applies moves optimistically and syncs them to the backend.
package reorder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alexanderramin/workhub/internal/domain"
)

var (
	// ErrIndexOutOfRange is returned when a move references a position
	// outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotContiguous is returned by Validate when node orders are not a
	// permutation of 1..N.
	ErrNotContiguous = errors.New("node order is not contiguous")
)

// Move returns a copy of nodes with the element at from removed and
// re-inserted at to. Indexes are zero-based. NodeOrder is left untouched;
// call Renumber afterwards.
func Move(nodes []domain.Node, from, to int) ([]domain.Node, error) {
	n := len(nodes)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("moving %d to %d in %d nodes: %w", from, to, n, ErrIndexOutOfRange)
	}
	out := slices.Clone(nodes)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out, nil
}

// Renumber sets NodeOrder to index+1 on every node, in place, and returns
// nodes for chaining.
func Renumber(nodes []domain.Node) []domain.Node {
	for i := range nodes {
		nodes[i].NodeOrder = i + 1
	}
	return nodes
}

// Orders builds the order update payload for nodes in their current order.
func Orders(nodes []domain.Node) []domain.NodeOrder {
	out := make([]domain.NodeOrder, len(nodes))
	for i, n := range nodes {
		out[i] = domain.NodeOrder{ProjectNodeID: n.ProjectNodeID, NodeOrder: n.NodeOrder}
	}
	return out
}

// Validate checks that NodeOrder values are unique and cover 1..N.
func Validate(nodes []domain.Node) error {
	seen := make([]bool, len(nodes)+1)
	for _, n := range nodes {
		if n.NodeOrder < 1 || n.NodeOrder > len(nodes) {
			return fmt.Errorf("node %q has order %d of %d: %w", n.Title, n.NodeOrder, len(nodes), ErrNotContiguous)
		}
		if seen[n.NodeOrder] {
			return fmt.Errorf("order %d used twice: %w", n.NodeOrder, ErrNotContiguous)
		}
		seen[n.NodeOrder] = true
	}
	return nil
}

// SortByOrder returns a copy of nodes sorted by NodeOrder.
func SortByOrder(nodes []domain.Node) []domain.Node {
	out := slices.Clone(nodes)
	slices.SortStableFunc(out, func(a, b domain.Node) int { return a.NodeOrder - b.NodeOrder })
	return out
}
