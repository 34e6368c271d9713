package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/domain"
)

const adminUserSelect = `SELECT u.id, u.name, u.email, u.phone, u.role, u.company_id,
		COALESCE(c.name, ''), u.created_at
	FROM users u LEFT JOIN companies c ON c.id = u.company_id`

// SQLiteUserRepo implements UserRepo using a SQLite database. Passwords are
// stored as bcrypt hashes.
type SQLiteUserRepo struct {
	conn db.DBTX
}

func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{conn: conn}
}

func (r *SQLiteUserRepo) ListAdmin(ctx context.Context) ([]domain.AdminUser, error) {
	rows, err := r.conn.QueryContext(ctx, adminUserSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []domain.AdminUser
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return out, nil
}

func (r *SQLiteUserRepo) GetAdmin(ctx context.Context, id int64) (*domain.AdminUser, error) {
	row := r.conn.QueryRowContext(ctx, adminUserSelect+` WHERE u.id = ?`, id)
	u, err := scanAdminUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return u, err
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.AdminUser, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if u.Role == "" {
		u.Role = domain.RoleClient
	}
	u.CreatedAt = nowUTC()
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO users (name, email, phone, role, company_id, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Phone, string(u.Role), nullableInt64(u.CompanyID),
		string(hash), u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	u.ID = id
	return nil
}

// CheckPassword reports whether password matches the stored hash for email.
func (r *SQLiteUserRepo) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	var hash string
	err := r.conn.QueryRowContext(ctx, `SELECT password_hash FROM users WHERE email = ?`, email).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return false, fmt.Errorf("loading password hash: %w", err)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAdminUser(s rowScanner) (*domain.AdminUser, error) {
	var u domain.AdminUser
	var role, createdAt string
	var companyID sql.NullInt64
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &role, &companyID, &u.CompanyName, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.UserRole(role)
	u.CompanyID = int64FromNull(companyID)
	u.CreatedAt = parseTime(createdAt, time.RFC3339)
	return &u, nil
}
