package reorder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
)

// ErrNotReordering is returned by Drop while the board is in view mode.
var ErrNotReordering = errors.New("board is not in reorder mode")

// Mode is the board's interaction mode.
type Mode int

const (
	ModeView Mode = iota
	ModeReorder
)

func (m Mode) String() string {
	if m == ModeReorder {
		return "reorder"
	}
	return "view"
}

// NodeStore is the subset of repository.NodeRepo the board needs.
type NodeStore interface {
	ListByProject(ctx context.Context, projectID int64) ([]domain.Node, error)
	UpdateOrder(ctx context.Context, projectID int64, orders []domain.NodeOrder) error
}

// SyncResult reports how the backend sync for one drop ended.
type SyncResult struct {
	Seq uint64
	Err error
	// Superseded is set when a newer drop made this sync unnecessary; it
	// was never sent.
	Superseded bool
	// Reconciled is set when the sync failed and local state was replaced
	// by a fresh fetch from the backend.
	Reconciled bool
}

type BoardOptions struct {
	// Timeout bounds each backend call. Zero means 10s.
	Timeout time.Duration
	Logger  *slog.Logger
	// OnSettled is called from the sync goroutine once per drop.
	OnSettled func(SyncResult)
}

// Board holds the local node order of one project. Drops update local state
// immediately and sync the full order in the background. Syncs are sent one
// at a time; a sync whose drop has been followed by a newer one is skipped.
// When the newest sync fails the board reloads the order from the backend.
type Board struct {
	projectID int64
	store     NodeStore
	opts      BoardOptions

	mu    sync.Mutex
	nodes []domain.Node
	mode  Mode
	seq   uint64

	sendMu sync.Mutex
	wg     sync.WaitGroup
}

// NewBoard creates a board in view mode holding nodes sorted by NodeOrder.
func NewBoard(projectID int64, nodes []domain.Node, store NodeStore, opts BoardOptions) *Board {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Board{
		projectID: projectID,
		store:     store,
		opts:      opts,
		nodes:     SortByOrder(nodes),
	}
}

// Load replaces local state with the backend's current order.
func (b *Board) Load(ctx context.Context) error {
	nodes, err := b.store.ListByProject(ctx, b.projectID)
	if err != nil {
		return fmt.Errorf("loading nodes of project %d: %w", b.projectID, err)
	}
	b.mu.Lock()
	b.nodes = SortByOrder(nodes)
	b.mu.Unlock()
	return nil
}

func (b *Board) ProjectID() int64 { return b.projectID }

// Nodes returns a copy of the current local order.
func (b *Board) Nodes() []domain.Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.nodes)
}

func (b *Board) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

// ToggleMode switches between view and reorder mode and returns the new mode.
func (b *Board) ToggleMode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mode == ModeView {
		b.mode = ModeReorder
	} else {
		b.mode = ModeView
	}
	return b.mode
}

// Drop moves the node at from to to (zero-based), publishes the renumbered
// order and starts an async sync of the full order. It returns the new local
// order. A drop onto the same position changes nothing and sends nothing.
func (b *Board) Drop(ctx context.Context, from, to int) ([]domain.Node, error) {
	b.mu.Lock()
	if b.mode != ModeReorder {
		b.mu.Unlock()
		return nil, ErrNotReordering
	}
	moved, err := Move(b.nodes, from, to)
	if err != nil {
		b.mu.Unlock()
		return nil, err
	}
	if from == to {
		out := slices.Clone(b.nodes)
		b.mu.Unlock()
		return out, nil
	}
	Renumber(moved)
	b.nodes = moved
	b.seq++
	seq := b.seq
	orders := Orders(moved)
	out := slices.Clone(moved)
	b.mu.Unlock()

	b.wg.Add(1)
	go b.sync(context.WithoutCancel(ctx), seq, orders)
	return out, nil
}

// Wait blocks until every started sync has settled.
func (b *Board) Wait() {
	b.wg.Wait()
}

func (b *Board) latest() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

func (b *Board) sync(ctx context.Context, seq uint64, orders []domain.NodeOrder) {
	defer b.wg.Done()
	b.sendMu.Lock()
	defer b.sendMu.Unlock()

	if seq < b.latest() {
		b.settle(SyncResult{Seq: seq, Superseded: true})
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	err := b.store.UpdateOrder(callCtx, b.projectID, orders)
	cancel()
	result := SyncResult{Seq: seq, Err: err}
	if err == nil {
		b.opts.Logger.DebugContext(ctx, "node order synced", "project_id", b.projectID, "seq", seq)
		b.settle(result)
		return
	}

	b.opts.Logger.WarnContext(ctx, "node order sync failed",
		"project_id", b.projectID, "seq", seq, "error", err)

	if seq == b.latest() {
		result.Reconciled = b.reconcile(ctx, seq)
	}
	b.settle(result)
}

// reconcile reloads the backend order after the newest sync failed. State
// is only replaced if no newer drop happened during the fetch.
func (b *Board) reconcile(ctx context.Context, seq uint64) bool {
	callCtx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()
	nodes, err := b.store.ListByProject(callCtx, b.projectID)
	if err != nil {
		b.opts.Logger.WarnContext(ctx, "node order refetch failed",
			"project_id", b.projectID, "seq", seq, "error", err)
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		return false
	}
	b.nodes = SortByOrder(nodes)
	return true
}

func (b *Board) settle(r SyncResult) {
	if b.opts.OnSettled != nil {
		b.opts.OnSettled(r)
	}
}
