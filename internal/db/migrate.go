package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		name            TEXT NOT NULL,
		business_number TEXT NOT NULL DEFAULT '',
		ceo_name        TEXT NOT NULL DEFAULT '',
		address         TEXT NOT NULL DEFAULT '',
		phone           TEXT NOT NULL DEFAULT '',
		email           TEXT NOT NULL DEFAULT '',
		status          TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at      TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'CLIENT',
		company_id    INTEGER REFERENCES companies(id) ON DELETE SET NULL,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		company_id  INTEGER NOT NULL REFERENCES companies(id),
		status      TEXT NOT NULL DEFAULT 'CONTRACT',
		start_date  TEXT NOT NULL,
		end_date    TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		member_role TEXT NOT NULL CHECK(member_role IN ('DEVELOPER','CLIENT')),
		PRIMARY KEY (project_id, user_id, member_role)
	)`,

	`CREATE TABLE IF NOT EXISTS nodes (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id     INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title          TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'NOT_STARTED',
		confirm_status TEXT,
		node_order     INTEGER NOT NULL,
		deadline       TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_nodes_project ON nodes(project_id, node_order)`,

	`CREATE TABLE IF NOT EXISTS history_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		node_id    INTEGER REFERENCES nodes(id) ON DELETE SET NULL,
		type       TEXT NOT NULL,
		actor_id   INTEGER NOT NULL DEFAULT 0,
		actor_name TEXT NOT NULL DEFAULT '',
		message    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_project ON history_events(project_id, created_at)`,
}
