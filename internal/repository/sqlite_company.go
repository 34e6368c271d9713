package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/domain"
)

const companyColumns = `id, name, business_number, ceo_name, address, phone, email, status, created_at`

// SQLiteCompanyRepo implements CompanyRepo using a SQLite database.
type SQLiteCompanyRepo struct {
	conn db.DBTX
}

func NewSQLiteCompanyRepo(conn db.DBTX) *SQLiteCompanyRepo {
	return &SQLiteCompanyRepo{conn: conn}
}

func (r *SQLiteCompanyRepo) List(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.conn.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		var c domain.Company
		var status, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.BusinessNumber, &c.CEOName, &c.Address,
			&c.Phone, &c.Email, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}
		c.Status = domain.CompanyStatus(status)
		c.CreatedAt = parseTime(createdAt, time.RFC3339)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating companies: %w", err)
	}
	return out, nil
}

func (r *SQLiteCompanyRepo) Create(ctx context.Context, c *domain.Company) error {
	if c.Status == "" {
		c.Status = domain.CompanyActive
	}
	c.CreatedAt = nowUTC()
	res, err := r.conn.ExecContext(ctx,
		`INSERT INTO companies (name, business_number, ceo_name, address, phone, email, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.BusinessNumber, c.CEOName, c.Address, c.Phone, c.Email,
		string(c.Status), c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting company: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading company id: %w", err)
	}
	c.ID = id
	return nil
}
