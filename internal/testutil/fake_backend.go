package testutil

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/repository"
)

// FakeBackend is an in-memory implementation of every repository, with
// failure injection and call recording for service and TUI tests.
type FakeBackend struct {
	mu        sync.Mutex
	projects  []domain.Project
	nodes     map[int64][]domain.Node
	users     []domain.AdminUser
	companies []domain.Company
	events    []domain.HistoryEvent
	errs      map[string]error
	calls     map[string]int
	orders    [][]domain.NodeOrder

	// OrderHook, when set, runs before UpdateOrder applies its payload. call
	// is 1-based. A non-nil return fails the call without applying it.
	OrderHook func(ctx context.Context, call int, orders []domain.NodeOrder) error
}

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		nodes: make(map[int64][]domain.Node),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// Repos exposes the fake through the repository bundle.
func (f *FakeBackend) Repos() repository.Repos {
	return repository.Repos{
		Projects:  fakeProjects{f},
		Nodes:     fakeNodes{f},
		Users:     fakeUsers{f},
		Companies: fakeCompanies{f},
		History:   fakeHistory{f},
	}
}

// FailOn makes the named operation (e.g. "projects.ListPage") return err.
// A nil err clears the failure.
func (f *FakeBackend) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errs, op)
		return
	}
	f.errs[op] = err
}

// Calls returns how many times op was invoked.
func (f *FakeBackend) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// OrderCalls returns every payload received by UpdateOrder, in call order.
func (f *FakeBackend) OrderCalls() [][]domain.NodeOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.orders)
}

func (f *FakeBackend) AddProject(p domain.Project) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects = append(f.projects, p)
}

func (f *FakeBackend) SetNodes(projectID int64, nodes []domain.Node) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[projectID] = slices.Clone(nodes)
}

func (f *FakeBackend) AddUser(u domain.AdminUser) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, u)
}

func (f *FakeBackend) AddCompany(c domain.Company) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.companies = append(f.companies, c)
}

func (f *FakeBackend) AddEvent(e domain.HistoryEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, e)
}

// begin records a call and returns the injected error, if any. Callers hold
// no lock.
func (f *FakeBackend) begin(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

type fakeProjects struct{ f *FakeBackend }

func (r fakeProjects) ListPage(ctx context.Context, cursor string, size int) (domain.ProjectPage, error) {
	if err := r.f.begin("projects.ListPage"); err != nil {
		return domain.ProjectPage{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.ProjectPage{}, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	start := 0
	if cursor != "" {
		v, err := strconv.Atoi(cursor)
		if err != nil {
			return domain.ProjectPage{}, fmt.Errorf("bad cursor %q", cursor)
		}
		start = v
	}
	if size < 1 {
		size = 1
	}
	end := min(start+size, len(r.f.projects))
	if start > end {
		start = end
	}
	page := domain.ProjectPage{Projects: slices.Clone(r.f.projects[start:end])}
	if end < len(r.f.projects) {
		page.HasNext = true
		page.NextCursor = strconv.Itoa(end)
	}
	return page, nil
}

func (r fakeProjects) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if err := r.f.begin("projects.GetByID"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, p := range r.f.projects {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, fmt.Errorf("project %d: %w", id, repository.ErrNotFound)
}

func (r fakeProjects) Create(ctx context.Context, p *domain.Project) error {
	if err := r.f.begin("projects.Create"); err != nil {
		return err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	p.ID = nextID()
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	r.f.projects = append(r.f.projects, *p)
	return nil
}

type fakeNodes struct{ f *FakeBackend }

func (r fakeNodes) ListByProject(ctx context.Context, projectID int64) ([]domain.Node, error) {
	if err := r.f.begin("nodes.ListByProject"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	out := slices.Clone(r.f.nodes[projectID])
	slices.SortStableFunc(out, func(a, b domain.Node) int { return a.NodeOrder - b.NodeOrder })
	return out, nil
}

func (r fakeNodes) Create(ctx context.Context, n *domain.Node) error {
	if err := r.f.begin("nodes.Create"); err != nil {
		return err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	n.ProjectNodeID = nextID()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.NodeOrder = len(r.f.nodes[n.ProjectID]) + 1
	r.f.nodes[n.ProjectID] = append(r.f.nodes[n.ProjectID], *n)
	return nil
}

func (r fakeNodes) UpdateOrder(ctx context.Context, projectID int64, orders []domain.NodeOrder) error {
	f := r.f
	f.mu.Lock()
	f.calls["nodes.UpdateOrder"]++
	call := f.calls["nodes.UpdateOrder"]
	f.orders = append(f.orders, slices.Clone(orders))
	injected := f.errs["nodes.UpdateOrder"]
	hook := f.OrderHook
	f.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, call, orders); err != nil {
			return err
		}
	}
	if injected != nil {
		return injected
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	pos := make(map[int64]int, len(orders))
	for _, o := range orders {
		pos[o.ProjectNodeID] = o.NodeOrder
	}
	nodes := f.nodes[projectID]
	for i := range nodes {
		if p, ok := pos[nodes[i].ProjectNodeID]; ok {
			nodes[i].NodeOrder = p
		}
	}
	return nil
}

type fakeUsers struct{ f *FakeBackend }

func (r fakeUsers) ListAdmin(ctx context.Context) ([]domain.AdminUser, error) {
	if err := r.f.begin("users.ListAdmin"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return slices.Clone(r.f.users), nil
}

func (r fakeUsers) GetAdmin(ctx context.Context, id int64) (*domain.AdminUser, error) {
	if err := r.f.begin("users.GetAdmin"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	for _, u := range r.f.users {
		if u.ID == id {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %d: %w", id, repository.ErrNotFound)
}

func (r fakeUsers) Create(ctx context.Context, u *domain.AdminUser, password string) error {
	if err := r.f.begin("users.Create"); err != nil {
		return err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	u.ID = nextID()
	u.CreatedAt = time.Now().UTC()
	r.f.users = append(r.f.users, *u)
	return nil
}

type fakeCompanies struct{ f *FakeBackend }

func (r fakeCompanies) List(ctx context.Context) ([]domain.Company, error) {
	if err := r.f.begin("companies.List"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	return slices.Clone(r.f.companies), nil
}

func (r fakeCompanies) Create(ctx context.Context, c *domain.Company) error {
	if err := r.f.begin("companies.Create"); err != nil {
		return err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	c.ID = nextID()
	c.CreatedAt = time.Now().UTC()
	r.f.companies = append(r.f.companies, *c)
	return nil
}

type fakeHistory struct{ f *FakeBackend }

func (r fakeHistory) List(ctx context.Context, projectID int64) ([]domain.HistoryEvent, error) {
	if err := r.f.begin("history.List"); err != nil {
		return nil, err
	}
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []domain.HistoryEvent
	for _, e := range r.f.events {
		if projectID == 0 || e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}
