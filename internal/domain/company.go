package domain

import "time"

type Company struct {
	ID             int64
	Name           string
	BusinessNumber string
	CEOName        string
	Address        string
	Phone          string
	Email          string
	Status         CompanyStatus
	CreatedAt      time.Time
}
