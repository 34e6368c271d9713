package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/domain"
)

const projectSelect = `SELECT p.id, p.name, p.description, p.company_id, COALESCE(c.name, ''),
		p.status, p.start_date, p.end_date, p.created_at, p.updated_at
	FROM projects p LEFT JOIN companies c ON c.id = p.company_id`

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
// Cursors are the decimal id of the last project on the previous page.
type SQLiteProjectRepo struct {
	conn db.DBTX
	uow  db.UnitOfWork
}

// NewSQLiteProjectRepo creates a project repository. uow may be nil when conn
// is already a transaction.
func NewSQLiteProjectRepo(conn db.DBTX, uow db.UnitOfWork) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{conn: conn, uow: uow}
}

func (r *SQLiteProjectRepo) ListPage(ctx context.Context, cursor string, size int) (domain.ProjectPage, error) {
	if size < 1 {
		size = 1
	}
	var after int64
	if cursor != "" {
		v, err := strconv.ParseInt(cursor, 10, 64)
		if err != nil {
			return domain.ProjectPage{}, fmt.Errorf("invalid project cursor %q: %w", cursor, err)
		}
		after = v
	}

	rows, err := r.conn.QueryContext(ctx, projectSelect+` WHERE p.id > ? ORDER BY p.id LIMIT ?`, after, size+1)
	if err != nil {
		return domain.ProjectPage{}, fmt.Errorf("listing projects: %w", err)
	}
	var projects []domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return domain.ProjectPage{}, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return domain.ProjectPage{}, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	page := domain.ProjectPage{}
	if len(projects) > size {
		projects = projects[:size]
		page.HasNext = true
		page.NextCursor = strconv.FormatInt(projects[size-1].ID, 10)
	}
	for i := range projects {
		if err := r.loadMembers(ctx, &projects[i]); err != nil {
			return domain.ProjectPage{}, err
		}
	}
	page.Projects = projects
	return page, nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	row := r.conn.QueryRowContext(ctx, projectSelect+` WHERE p.id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts the project, its member links and a PROJECT_CREATED event
// in one transaction.
func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	if p.Status == "" {
		p.Status = domain.ProjectContract
	}
	now := nowUTC()
	p.CreatedAt, p.UpdatedAt = now, now

	return db.Run(ctx, r.conn, r.uow, func(ctx context.Context, tx db.DBTX) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO projects (name, description, company_id, status, start_date, end_date, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Description, p.CompanyID, string(p.Status),
			p.StartDate.Format(dateLayout), nullableTimeToString(p.EndDate, dateLayout),
			now.Format(time.RFC3339), now.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("inserting project: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading project id: %w", err)
		}
		p.ID = id

		if err := insertMembers(ctx, tx, id, "DEVELOPER", p.Developers); err != nil {
			return err
		}
		if err := insertMembers(ctx, tx, id, "CLIENT", p.Clients); err != nil {
			return err
		}

		return NewSQLiteHistoryRepo(tx).Append(ctx, &domain.HistoryEvent{
			ProjectID: id,
			Type:      domain.EventProjectCreated,
			Message:   fmt.Sprintf("Project %q created", p.Name),
		})
	})
}

// AddMember links an existing user to a project.
func (r *SQLiteProjectRepo) AddMember(ctx context.Context, projectID, userID int64, role domain.UserRole) error {
	_, err := r.conn.ExecContext(ctx,
		`INSERT OR IGNORE INTO project_members (project_id, user_id, member_role) VALUES (?, ?, ?)`,
		projectID, userID, string(role))
	if err != nil {
		return fmt.Errorf("adding project member: %w", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx db.DBTX, projectID int64, role string, members []domain.Member) error {
	for _, m := range members {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO project_members (project_id, user_id, member_role) VALUES (?, ?, ?)`,
			projectID, m.UserID, role); err != nil {
			return fmt.Errorf("inserting %s member %d: %w", role, m.UserID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadMembers(ctx context.Context, p *domain.Project) error {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT m.user_id, u.name, m.member_role
		FROM project_members m JOIN users u ON u.id = m.user_id
		WHERE m.project_id = ? ORDER BY u.name, m.user_id`, p.ID)
	if err != nil {
		return fmt.Errorf("listing members of project %d: %w", p.ID, err)
	}
	defer rows.Close()

	p.Developers, p.Clients = nil, nil
	for rows.Next() {
		var m domain.Member
		var role string
		if err := rows.Scan(&m.UserID, &m.Name, &role); err != nil {
			return fmt.Errorf("scanning member: %w", err)
		}
		if role == "DEVELOPER" {
			p.Developers = append(p.Developers, m)
		} else {
			p.Clients = append(p.Clients, m)
		}
	}
	return rows.Err()
}

func scanProject(s rowScanner) (*domain.Project, error) {
	var p domain.Project
	var status, startDate, createdAt, updatedAt string
	var endDate sql.NullString
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.CompanyID, &p.CompanyName,
		&status, &startDate, &endDate, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	p.Status = domain.ProjectStatus(status)
	p.StartDate = parseTime(startDate, dateLayout)
	p.EndDate = parseNullableTime(endDate, dateLayout)
	p.CreatedAt = parseTime(createdAt, time.RFC3339)
	p.UpdatedAt = parseTime(updatedAt, time.RFC3339)
	return &p, nil
}
