package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/repository"
)

type projectService struct {
	projects repository.ProjectRepo
	nodes    repository.NodeRepo
	maxPages int
	observer UseCaseObserver
}

func NewProjectService(projects repository.ProjectRepo, nodes repository.NodeRepo, observers ...UseCaseObserver) ProjectService {
	return &projectService{
		projects: projects,
		nodes:    nodes,
		maxPages: pagination.DefaultMaxPages,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *projectService) All(ctx context.Context) ([]domain.Project, error) {
	return FetchAllProjects(ctx, s.projects, s.maxPages)
}

func (s *projectService) List(ctx context.Context, q ProjectQuery) (res ListResult[domain.Project], err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"page": q.Page, "size": q.Size}
	defer func() { observe(ctx, s.observer, "list-projects", startedAt, fields, &err) }()

	all, err := s.All(ctx)
	if err != nil {
		return res, err
	}
	if q.Status != "" {
		want := mapper.ProjectStatus(q.Status).Key
		kept := all[:0]
		for _, p := range all {
			if mapper.ProjectStatus(p.Status).Key == want {
				kept = append(kept, p)
			}
		}
		all = kept
	}
	fields["total"] = len(all)
	return pageOf(all, q.Page, q.Size), nil
}

func (s *projectService) Summary(ctx context.Context, id int64) (sum *ProjectSummary, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "project-summary", startedAt, map[string]any{"project_id": id}, &err)
	}()
	return NewProjectSummaryResource(s.projects, s.nodes, id).fetch(ctx)
}

func (s *projectService) Mine(ctx context.Context, userID int64, page, size int) (res ListResult[domain.Project], err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user_id": userID}
	defer func() { observe(ctx, s.observer, "user-projects", startedAt, fields, &err) }()

	all, err := s.All(ctx)
	if err != nil {
		return res, err
	}
	mine := FilterByDeveloper(all, userID)
	fields["total"] = len(mine)
	return pageOf(mine, page, size), nil
}

func (s *projectService) Create(ctx context.Context, form *CreateProjectForm) (p *domain.Project, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "create-project", startedAt, fields, &err) }()

	if err := form.Validate(); err != nil {
		return nil, err
	}
	p = form.ToDomain()
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating project %q: %w", p.Name, err)
	}
	fields["project_id"] = p.ID
	return p, nil
}
