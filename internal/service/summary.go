package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/repository"
)

// ProjectSummary is the detail-view projection of one project.
type ProjectSummary struct {
	Project    domain.Project
	Status     mapper.StatusView
	Nodes      []domain.Node
	TotalNodes int
	// ByStatus counts nodes per mapped status key, so unknown raw values are
	// counted under the mapper's default.
	ByStatus    map[string]int
	Approved    int
	Rejected    int
	Pending     int
	Overdue     int
	ProgressPct float64
}

// SummarizeProject computes node counts and progress for p. A node is
// overdue when its deadline is before now and it is not completed.
func SummarizeProject(p domain.Project, nodes []domain.Node, now time.Time) ProjectSummary {
	s := ProjectSummary{
		Project:    p,
		Status:     mapper.ProjectStatus(p.Status),
		Nodes:      nodes,
		TotalNodes: len(nodes),
		ByStatus:   make(map[string]int),
	}
	completedKey := mapper.NodeStatus(domain.NodeCompleted).Key
	completed := 0
	for _, n := range nodes {
		view := mapper.NodeStatus(n.Status)
		s.ByStatus[view.Key]++
		if view.Key == completedKey {
			completed++
		} else if n.Deadline != nil && n.Deadline.Before(now) {
			s.Overdue++
		}
		if c := mapper.ConfirmStatus(n.ConfirmStatus); c != nil {
			switch c.Status {
			case domain.ConfirmApproved:
				s.Approved++
			case domain.ConfirmRejected:
				s.Rejected++
			case domain.ConfirmPending:
				s.Pending++
			}
		}
	}
	if len(nodes) > 0 {
		s.ProgressPct = math.Round(float64(completed)/float64(len(nodes))*1000) / 10
	}
	return s
}

// NewProjectSummaryResource loads a project and its nodes.
func NewProjectSummaryResource(projects repository.ProjectRepo, nodes repository.NodeRepo, id int64) *Resource[*ProjectSummary] {
	return NewResource(func(ctx context.Context) (*ProjectSummary, error) {
		p, err := projects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		list, err := nodes.ListByProject(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading nodes: %w", err)
		}
		s := SummarizeProject(*p, list, time.Now())
		return &s, nil
	})
}

// CompanySummary aggregates one company's projects and members.
type CompanySummary struct {
	Company      domain.Company
	StatusLabel  string
	ProjectCount int
	ByStatus     map[string]int
	Members      int
}

// SummarizeCompanies builds one summary per company, sorted by name.
func SummarizeCompanies(companies []domain.Company, projects []domain.Project, users []domain.AdminUser) []CompanySummary {
	byID := make(map[int64]*CompanySummary, len(companies))
	out := make([]CompanySummary, len(companies))
	for i, c := range companies {
		out[i] = CompanySummary{
			Company:     c,
			StatusLabel: mapper.CompanyStatusLabel(c.Status),
			ByStatus:    make(map[string]int),
		}
		byID[c.ID] = &out[i]
	}
	for _, p := range projects {
		if s, ok := byID[p.CompanyID]; ok {
			s.ProjectCount++
			s.ByStatus[mapper.ProjectStatus(p.Status).Key]++
		}
	}
	for _, u := range users {
		if u.CompanyID == nil {
			continue
		}
		if s, ok := byID[*u.CompanyID]; ok {
			s.Members++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Company.Name < out[j].Company.Name })
	return out
}

// Dashboard sections, used as keys of DashboardData.Errors.
const (
	SectionCompanies = "companies"
	SectionProjects  = "projects"
	SectionUsers     = "users"
)

// DashboardData is the landing-view projection. A failed section leaves its
// data empty and records a message in Errors; other sections still load.
type DashboardData struct {
	Companies        []CompanySummary
	ProjectsByStatus map[string]int
	UsersByRole      map[domain.UserRole]int
	TotalProjects    int
	TotalUsers       int
	Errors           map[string]string
}

// DashboardService loads the three dashboard sections in parallel.
type DashboardService struct {
	repos    repository.Repos
	observer UseCaseObserver
}

func NewDashboardService(repos repository.Repos, observers ...UseCaseObserver) *DashboardService {
	return &DashboardService{repos: repos, observer: useCaseObserverOrNoop(observers)}
}

func (s *DashboardService) Load(ctx context.Context) (data DashboardData, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["failed_sections"] = len(data.Errors)
		observe(ctx, s.observer, "load-dashboard", startedAt, fields, &err)
	}()

	var (
		companies []domain.Company
		projects  []domain.Project
		users     []domain.AdminUser
		errs      [3]error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		companies, errs[0] = s.repos.Companies.List(gctx)
		return nil
	})
	g.Go(func() error {
		projects, errs[1] = FetchAllProjects(gctx, s.repos.Projects, pagination.DefaultMaxPages)
		return nil
	})
	g.Go(func() error {
		users, errs[2] = s.repos.Users.ListAdmin(gctx)
		return nil
	})
	_ = g.Wait()

	data = DashboardData{
		ProjectsByStatus: make(map[string]int),
		UsersByRole:      make(map[domain.UserRole]int),
		Errors:           make(map[string]string),
	}
	for i, section := range []string{SectionCompanies, SectionProjects, SectionUsers} {
		if errs[i] != nil {
			data.Errors[section] = errs[i].Error()
		}
	}

	for _, p := range projects {
		data.ProjectsByStatus[mapper.ProjectStatus(p.Status).Key]++
	}
	data.TotalProjects = len(projects)
	for _, u := range users {
		data.UsersByRole[mapper.AdminUserRole(u.Role).Role]++
	}
	data.TotalUsers = len(users)
	if errs[0] == nil {
		data.Companies = SummarizeCompanies(companies, projects, users)
	}

	fields["projects"] = data.TotalProjects
	fields["users"] = data.TotalUsers
	if len(data.Errors) == 3 {
		err = fmt.Errorf("loading dashboard: every section failed: %s", data.Errors[SectionProjects])
	}
	return data, err
}

// NewDashboardResource wraps Load for the dashboard view.
func NewDashboardResource(s *DashboardService) *Resource[DashboardData] {
	return NewResource(s.Load)
}
