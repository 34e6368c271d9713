package service

import (
	"context"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/reorder"
)

// ListResult is one client-side page of a fully fetched list.
type ListResult[T any] struct {
	Items []T
	Page  pagination.State
	// Matched holds every item that passed the query, across all pages.
	Matched []T
}

func pageOf[T any](items []T, page, size int) ListResult[T] {
	st := pagination.New(len(items), size)
	st.SetPage(page)
	return ListResult[T]{
		Items:   pagination.Paginate(items, st.Page(), st.PageSize()),
		Page:    st,
		Matched: items,
	}
}

// ProjectQuery selects a page of the project list.
type ProjectQuery struct {
	Page int
	Size int
	// Status keeps projects whose mapped status equals it; empty keeps all.
	Status domain.ProjectStatus
}

type ProjectService interface {
	List(ctx context.Context, q ProjectQuery) (ListResult[domain.Project], error)
	All(ctx context.Context) ([]domain.Project, error)
	Summary(ctx context.Context, id int64) (*ProjectSummary, error)
	Mine(ctx context.Context, userID int64, page, size int) (ListResult[domain.Project], error)
	Create(ctx context.Context, form *CreateProjectForm) (*domain.Project, error)
}

// MoveResult is the outcome of a one-shot node move.
type MoveResult struct {
	Nodes []domain.Node
	Sync  reorder.SyncResult
	// Sent is false when the move did not change the order.
	Sent bool
}

type NodeService interface {
	List(ctx context.Context, projectID int64) ([]domain.Node, error)
	Add(ctx context.Context, form *CreateNodeForm) (*domain.Node, error)
	Board(ctx context.Context, projectID int64, opts reorder.BoardOptions) (*reorder.Board, error)
	Move(ctx context.Context, projectID int64, from, to int) (*MoveResult, error)
}

type UserService interface {
	List(ctx context.Context, q UserQuery, page, size int) (ListResult[AdminUserRow], error)
	Get(ctx context.Context, id int64) (*AdminUserRow, error)
	Create(ctx context.Context, form *CreateUserForm) (*domain.AdminUser, error)
}

type CompanyService interface {
	List(ctx context.Context) ([]domain.Company, error)
	Create(ctx context.Context, form *CreateCompanyForm) (*domain.Company, error)
}

type HistoryService interface {
	List(ctx context.Context, f HistoryFilter) ([]HistoryRow, error)
}
