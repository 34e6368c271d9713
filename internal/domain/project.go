package domain

import (
	"fmt"
	"time"
)

// Member is a lightweight user reference embedded in project payloads.
type Member struct {
	UserID int64
	Name   string
}

type Project struct {
	ID          int64
	Name        string
	Description string // markdown produced by the web editor
	CompanyID   int64
	CompanyName string
	Status      ProjectStatus
	StartDate   time.Time
	EndDate     *time.Time
	Developers  []Member
	Clients     []Member
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasDeveloper reports whether userID is listed among the project's developers.
func (p *Project) HasDeveloper(userID int64) bool {
	for _, m := range p.Developers {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

// DisplayID returns the identifier shown in tables, e.g. "#42".
func (p *Project) DisplayID() string {
	return fmt.Sprintf("#%d", p.ID)
}

// ProjectPage is one page of a cursor-paginated project listing.
type ProjectPage struct {
	Projects   []Project
	NextCursor string
	HasNext    bool
}
