package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/domain"
)

// ErrInvalidOrder is returned when an order update does not describe a
// permutation of the project's nodes.
var ErrInvalidOrder = errors.New("invalid node order")

const nodeColumns = `id, project_id, title, description, status, confirm_status, node_order,
		deadline, created_at, updated_at`

// SQLiteNodeRepo implements NodeRepo using a SQLite database.
type SQLiteNodeRepo struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

// NewSQLiteNodeRepo creates a node repository. uow may be nil when conn is
// already a transaction.
func NewSQLiteNodeRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteNodeRepo {
	return &SQLiteNodeRepo{conn: conn, uow: uow}
}

func (r *SQLiteNodeRepo) ListByProject(ctx context.Context, projectID int64) ([]domain.Node, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+nodeColumns+` FROM nodes WHERE project_id = ? ORDER BY node_order, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing nodes of project %d: %w", projectID, err)
	}
	defer rows.Close()

	var out []domain.Node
	for rows.Next() {
		n, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating nodes: %w", err)
	}
	return out, nil
}

// Create appends n after the project's last node and records a NODE_CREATED
// event in the same transaction.
func (r *SQLiteNodeRepo) Create(ctx context.Context, n *domain.Node) error {
	if n.Status == "" {
		n.Status = domain.NodeNotStarted
	}
	now := nowUTC()
	n.CreatedAt, n.UpdatedAt = now, now

	return db.Run(ctx, r.conn, r.uow, func(ctx context.Context, tx db.DBTX) error {
		var next int
		if err := tx.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(node_order), 0) + 1 FROM nodes WHERE project_id = ?`, n.ProjectID,
		).Scan(&next); err != nil {
			return fmt.Errorf("computing next node order: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO nodes (project_id, title, description, status, confirm_status, node_order, deadline, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ProjectID, n.Title, n.Description, string(n.Status), nullableString(n.ConfirmStatus), next,
			nullableTimeToString(n.Deadline, dateLayout), now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting node: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading node id: %w", err)
		}
		n.ProjectNodeID = id
		n.NodeOrder = next
		if n.ID == "" {
			n.ID = uuid.NewString()
		}

		return NewSQLiteHistoryRepo(tx).Append(ctx, &domain.HistoryEvent{
			ProjectID: n.ProjectID,
			NodeID:    &id,
			Type:      domain.EventNodeCreated,
			Message:   fmt.Sprintf("Node %q added at position %d", n.Title, next),
		})
	})
}

// UpdateOrder applies orders, which must cover every node of the project
// exactly once with positions 1..N, and records a NODE_REORDERED event.
func (r *SQLiteNodeRepo) UpdateOrder(ctx context.Context, projectID int64, orders []domain.NodeOrder) error {
	return db.Run(ctx, r.conn, r.uow, func(ctx context.Context, tx db.DBTX) error {
		existing, err := NewSQLiteNodeRepo(tx, nil).ListByProject(ctx, projectID)
		if err != nil {
			return err
		}
		if err := checkPermutation(existing, orders); err != nil {
			return err
		}

		now := nowUTC().Format(time.RFC3339)
		for _, o := range orders {
			if _, err := tx.ExecContext(ctx,
				`UPDATE nodes SET node_order = ?, updated_at = ? WHERE id = ? AND project_id = ?`,
				o.NodeOrder, now, o.ProjectNodeID, projectID); err != nil {
				return fmt.Errorf("updating order of node %d: %w", o.ProjectNodeID, err)
			}
		}

		return NewSQLiteHistoryRepo(tx).Append(ctx, &domain.HistoryEvent{
			ProjectID: projectID,
			Type:      domain.EventNodeReordered,
			Message:   fmt.Sprintf("%d nodes reordered", len(orders)),
		})
	})
}

func checkPermutation(existing []domain.Node, orders []domain.NodeOrder) error {
	if len(orders) != len(existing) {
		return fmt.Errorf("%w: got %d entries for %d nodes", ErrInvalidOrder, len(orders), len(existing))
	}
	known := make(map[int64]bool, len(existing))
	for _, n := range existing {
		known[n.ProjectNodeID] = true
	}
	seenNode := make(map[int64]bool, len(orders))
	seenPos := make(map[int]bool, len(orders))
	for _, o := range orders {
		if !known[o.ProjectNodeID] {
			return fmt.Errorf("node %d: %w", o.ProjectNodeID, ErrNotFound)
		}
		if seenNode[o.ProjectNodeID] {
			return fmt.Errorf("%w: node %d listed twice", ErrInvalidOrder, o.ProjectNodeID)
		}
		if o.NodeOrder < 1 || o.NodeOrder > len(orders) || seenPos[o.NodeOrder] {
			return fmt.Errorf("%w: position %d", ErrInvalidOrder, o.NodeOrder)
		}
		seenNode[o.ProjectNodeID] = true
		seenPos[o.NodeOrder] = true
	}
	return nil
}

func scanNode(s rowScanner) (domain.Node, error) {
	var n domain.Node
	var status, createdAt, updatedAt string
	var confirm, deadline sql.NullString
	if err := s.Scan(&n.ProjectNodeID, &n.ProjectID, &n.Title, &n.Description, &status, &confirm,
		&n.NodeOrder, &deadline, &createdAt, &updatedAt); err != nil {
		return domain.Node{}, fmt.Errorf("scanning node: %w", err)
	}
	n.ID = uuid.NewString()
	n.Status = domain.NodeStatus(status)
	n.ConfirmStatus = stringFromNull(confirm)
	n.Deadline = parseNullableTime(deadline, dateLayout)
	n.CreatedAt = parseTime(createdAt, time.RFC3339)
	n.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return n, nil
}
