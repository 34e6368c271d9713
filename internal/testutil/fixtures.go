package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/workhub/internal/domain"
)

var fixtureSeq atomic.Int64

func nextID() int64 { return fixtureSeq.Add(1) }

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(p *domain.Project) { p.Status = s }
}

func WithCompany(id int64, name string) ProjectOption {
	return func(p *domain.Project) {
		p.CompanyID = id
		p.CompanyName = name
	}
}

func WithDevelopers(ids ...int64) ProjectOption {
	return func(p *domain.Project) {
		for _, id := range ids {
			p.Developers = append(p.Developers, domain.Member{UserID: id, Name: fmt.Sprintf("dev-%d", id)})
		}
	}
}

func WithClients(ids ...int64) ProjectOption {
	return func(p *domain.Project) {
		for _, id := range ids {
			p.Clients = append(p.Clients, domain.Member{UserID: id, Name: fmt.Sprintf("client-%d", id)})
		}
	}
}

func WithEndDate(d time.Time) ProjectOption {
	return func(p *domain.Project) { p.EndDate = &d }
}

// NewTestProject builds a project with a unique ID. Persisting repositories
// overwrite the ID.
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC().Truncate(time.Second)
	p := &domain.Project{
		ID:        nextID(),
		Name:      name,
		Status:    domain.ProjectInProgress,
		StartDate: now.AddDate(0, -1, 0).Truncate(24 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Node options
type NodeOption func(*domain.Node)

func WithNodeStatus(s domain.NodeStatus) NodeOption {
	return func(n *domain.Node) { n.Status = s }
}

func WithConfirmStatus(s domain.ConfirmStatus) NodeOption {
	return func(n *domain.Node) { n.ConfirmStatus = domain.StrPtr(string(s)) }
}

func WithDeadline(d time.Time) NodeOption {
	return func(n *domain.Node) { n.Deadline = &d }
}

// NewTestNode builds a node at position order.
func NewTestNode(projectID int64, title string, order int, opts ...NodeOption) domain.Node {
	now := time.Now().UTC().Truncate(time.Second)
	n := domain.Node{
		ID:            uuid.NewString(),
		ProjectNodeID: nextID(),
		ProjectID:     projectID,
		Title:         title,
		Status:        domain.NodeNotStarted,
		NodeOrder:     order,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

// NewTestNodes builds len(titles) nodes numbered 1..N.
func NewTestNodes(projectID int64, titles ...string) []domain.Node {
	out := make([]domain.Node, len(titles))
	for i, title := range titles {
		out[i] = NewTestNode(projectID, title, i+1)
	}
	return out
}

// User options
type UserOption func(*domain.AdminUser)

func WithRole(r domain.UserRole) UserOption {
	return func(u *domain.AdminUser) { u.Role = r }
}

func WithUserCompany(id int64, name string) UserOption {
	return func(u *domain.AdminUser) {
		u.CompanyID = &id
		u.CompanyName = name
	}
}

func NewTestUser(name, email string, opts ...UserOption) domain.AdminUser {
	u := domain.AdminUser{
		ID:        nextID(),
		Name:      name,
		Email:     email,
		Role:      domain.RoleDeveloper,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(&u)
	}
	return u
}

func NewTestCompany(name string, status domain.CompanyStatus) domain.Company {
	return domain.Company{
		ID:        nextID(),
		Name:      name,
		Status:    status,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
