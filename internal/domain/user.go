package domain

import "time"

type AdminUser struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	Role        UserRole
	CompanyID   *int64
	CompanyName string
	CreatedAt   time.Time
}
