package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/domain"
)

// LocalActorName is recorded on history events written by the local backend.
const LocalActorName = "workhub-cli"

// historyTimeLayout is fixed-width so created_at sorts lexically.
const historyTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
type SQLiteHistoryRepo struct {
	conn db.DBTX
}

func NewSQLiteHistoryRepo(conn db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{conn: conn}
}

func (r *SQLiteHistoryRepo) List(ctx context.Context, projectID int64) ([]domain.HistoryEvent, error) {
	query := `SELECT h.id, h.project_id, p.name, h.node_id, COALESCE(n.title, ''), h.type,
			h.actor_id, h.actor_name, h.message, h.created_at
		FROM history_events h
		JOIN projects p ON p.id = h.project_id
		LEFT JOIN nodes n ON n.id = h.node_id`
	args := []any{}
	if projectID != 0 {
		query += ` WHERE h.project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY h.created_at DESC, h.id DESC`

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEvent
	for rows.Next() {
		var e domain.HistoryEvent
		var nodeID sql.NullInt64
		var typ, createdAt string
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.ProjectName, &nodeID, &e.NodeTitle, &typ,
			&e.ActorID, &e.ActorName, &e.Message, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history event: %w", err)
		}
		e.NodeID = int64FromNull(nodeID)
		e.Type = domain.HistoryEventType(typ)
		e.CreatedAt = parseTime(createdAt, historyTimeLayout)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return out, nil
}

// Append records e. CreatedAt defaults to now and ActorName to the local
// actor.
func (r *SQLiteHistoryRepo) Append(ctx context.Context, e *domain.HistoryEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.ActorName == "" {
		e.ActorName = LocalActorName
	}
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO history_events (project_id, node_id, type, actor_id, actor_name, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ProjectID, nullableInt64(e.NodeID), string(e.Type), e.ActorID, e.ActorName, e.Message,
		e.CreatedAt.UTC().Format(historyTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting history event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading history event id: %w", err)
	}
	e.ID = id
	return nil
}
