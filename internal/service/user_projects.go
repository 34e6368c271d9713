package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/repository"
)

// UserProjectsPageSize is the page size used when aggregating a user's
// projects.
const UserProjectsPageSize = 50

// FetchAllProjects follows the project cursor until the backend reports no
// further pages and returns every project, in backend order.
func FetchAllProjects(ctx context.Context, projects repository.ProjectRepo, maxPages int) ([]domain.Project, error) {
	var fetch pagination.CursorFetch[domain.Project] = func(ctx context.Context, cursor string, size int) (pagination.CursorPage[domain.Project], error) {
		page, err := projects.ListPage(ctx, cursor, size)
		if err != nil {
			return pagination.CursorPage[domain.Project]{}, err
		}
		return pagination.CursorPage[domain.Project]{
			Items:      page.Projects,
			NextCursor: page.NextCursor,
			HasNext:    page.HasNext,
		}, nil
	}
	all, err := pagination.CollectCursor(ctx, fetch, pagination.CollectOptions{
		PageSize: UserProjectsPageSize,
		MaxPages: maxPages,
	})
	if err != nil {
		return nil, fmt.Errorf("aggregating projects: %w", err)
	}
	return all, nil
}

// FilterByDeveloper keeps projects that list userID as a developer.
func FilterByDeveloper(projects []domain.Project, userID int64) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for i := range projects {
		if projects[i].HasDeveloper(userID) {
			out = append(out, projects[i])
		}
	}
	return out
}

// NewUserProjectsResource aggregates every project page and keeps the ones
// userID develops on.
func NewUserProjectsResource(projects repository.ProjectRepo, userID int64) *Resource[[]domain.Project] {
	return NewResource(func(ctx context.Context) ([]domain.Project, error) {
		all, err := FetchAllProjects(ctx, projects, pagination.DefaultMaxPages)
		if err != nil {
			return nil, err
		}
		return FilterByDeveloper(all, userID), nil
	})
}
