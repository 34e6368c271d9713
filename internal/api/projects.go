package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/workhub/internal/domain"
)

// ProjectsAPI implements repository.ProjectRepo over REST.
type ProjectsAPI struct {
	c *Client
}

type createProjectRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	CompanyID    int64   `json:"companyId"`
	Status       string  `json:"status,omitempty"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate,omitempty"`
	DeveloperIDs []int64 `json:"developerIds,omitempty"`
	ClientIDs    []int64 `json:"clientIds,omitempty"`
}

func (a *ProjectsAPI) ListPage(ctx context.Context, cursor string, size int) (domain.ProjectPage, error) {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	q.Set("size", strconv.Itoa(size))

	var dto projectPageDTO
	if err := a.c.do(ctx, http.MethodGet, "/projects", q, nil, &dto); err != nil {
		return domain.ProjectPage{}, err
	}
	page := domain.ProjectPage{
		Projects:   make([]domain.Project, 0, len(dto.Projects)),
		NextCursor: cursorString(dto.NextCursor),
		HasNext:    dto.HasNext,
	}
	for _, p := range dto.Projects {
		page.Projects = append(page.Projects, p.toDomain())
	}
	return page, nil
}

func (a *ProjectsAPI) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var dto projectDTO
	if err := a.c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil, nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toDomain()
	return &p, nil
}

func (a *ProjectsAPI) Create(ctx context.Context, p *domain.Project) error {
	req := createProjectRequest{
		Name:        p.Name,
		Description: p.Description,
		CompanyID:   p.CompanyID,
		Status:      string(p.Status),
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDatePtr(p.EndDate),
	}
	for _, m := range p.Developers {
		req.DeveloperIDs = append(req.DeveloperIDs, m.UserID)
	}
	for _, m := range p.Clients {
		req.ClientIDs = append(req.ClientIDs, m.UserID)
	}

	var dto projectDTO
	if err := a.c.do(ctx, http.MethodPost, "/projects", nil, req, &dto); err != nil {
		return err
	}
	*p = dto.toDomain()
	return nil
}
