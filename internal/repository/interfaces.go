// Package repository declares the data access contracts used by the services
// and provides the SQLite implementations behind the local backend. The
// remote backend implements the same interfaces in package api.
package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/workhub/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	// ListPage returns one cursor page. An empty cursor starts at the
	// beginning.
	ListPage(ctx context.Context, cursor string, size int) (domain.ProjectPage, error)
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	// Create persists p and fills in its server-assigned fields.
	Create(ctx context.Context, p *domain.Project) error
}

type NodeRepo interface {
	// ListByProject returns the project's nodes ordered by NodeOrder.
	ListByProject(ctx context.Context, projectID int64) ([]domain.Node, error)
	// Create appends n to the end of the project's order.
	Create(ctx context.Context, n *domain.Node) error
	// UpdateOrder replaces the order of the project's nodes.
	UpdateOrder(ctx context.Context, projectID int64, orders []domain.NodeOrder) error
}

type UserRepo interface {
	ListAdmin(ctx context.Context) ([]domain.AdminUser, error)
	GetAdmin(ctx context.Context, id int64) (*domain.AdminUser, error)
	Create(ctx context.Context, u *domain.AdminUser, password string) error
}

type CompanyRepo interface {
	List(ctx context.Context) ([]domain.Company, error)
	Create(ctx context.Context, c *domain.Company) error
}

type HistoryRepo interface {
	// List returns events for one project, or for all projects when
	// projectID is zero.
	List(ctx context.Context, projectID int64) ([]domain.HistoryEvent, error)
}

// Repos bundles one implementation of every repository.
type Repos struct {
	Projects  ProjectRepo
	Nodes     NodeRepo
	Users     UserRepo
	Companies CompanyRepo
	History   HistoryRepo
}
