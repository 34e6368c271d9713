package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/repository"
	"github.com/alexanderramin/workhub/internal/testutil"
)

type fixture struct {
	db    *sql.DB
	repos repository.Repos
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return fixture{db: database, repos: repository.NewSQLiteRepos(database)}
}

func (f fixture) company(t *testing.T, name string) *domain.Company {
	t.Helper()
	c := &domain.Company{Name: name}
	require.NoError(t, f.repos.Companies.Create(context.Background(), c))
	return c
}

func (f fixture) user(t *testing.T, name, email string, role domain.UserRole) *domain.AdminUser {
	t.Helper()
	u := &domain.AdminUser{Name: name, Email: email, Role: role}
	require.NoError(t, f.repos.Users.Create(context.Background(), u, "password123"))
	return u
}

func (f fixture) project(t *testing.T, name string, companyID int64, devs ...int64) *domain.Project {
	t.Helper()
	p := testutil.NewTestProject(name, testutil.WithCompany(companyID, ""), testutil.WithDevelopers(devs...))
	require.NoError(t, f.repos.Projects.Create(context.Background(), p))
	return p
}

func TestCompanyRepo_CreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := f.company(t, "Zeta")
	f.company(t, "Alpha")

	assert.NotZero(t, c.ID)
	assert.Equal(t, domain.CompanyActive, c.Status, "status defaults to active")

	list, err := f.repos.Companies.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Zeta", list[1].Name)
}

func TestUserRepo_CreateGetAndPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Acme")

	u := &domain.AdminUser{Name: "Ada", Email: "ada@acme.test", Role: domain.RoleDeveloper, CompanyID: &c.ID}
	require.NoError(t, f.repos.Users.Create(ctx, u, "s3cret-pass"))

	got, err := f.repos.Users.GetAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	require.NotNil(t, got.CompanyID)
	assert.Equal(t, c.ID, *got.CompanyID)

	users := repository.NewSQLiteUserRepo(f.db)
	ok, err := users.CheckPassword(ctx, "ada@acme.test", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = users.CheckPassword(ctx, "ada@acme.test", "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	var stored string
	require.NoError(t, f.db.QueryRow(`SELECT password_hash FROM users WHERE id = ?`, u.ID).Scan(&stored))
	assert.NotEqual(t, "s3cret-pass", stored)
}

func TestUserRepo_GetAdmin_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Users.GetAdmin(context.Background(), 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.user(t, "A", "dup@x.test", domain.RoleClient)
	err := f.repos.Users.Create(context.Background(), &domain.AdminUser{Name: "B", Email: "dup@x.test"}, "password123")
	assert.Error(t, err)
}

func TestProjectRepo_CreateLoadsMembersAndHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Acme")
	dev := f.user(t, "Dev", "dev@x.test", domain.RoleDeveloper)
	end := time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC)

	p := testutil.NewTestProject("Portal",
		testutil.WithCompany(c.ID, ""),
		testutil.WithDevelopers(dev.ID),
		testutil.WithEndDate(end),
	)
	require.NoError(t, f.repos.Projects.Create(ctx, p))

	got, err := f.repos.Projects.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.CompanyName)
	require.NotNil(t, got.EndDate)
	assert.True(t, end.Equal(*got.EndDate))
	require.Len(t, got.Developers, 1)
	assert.Equal(t, "Dev", got.Developers[0].Name)
	assert.True(t, got.HasDeveloper(dev.ID))

	events, err := f.repos.History.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventProjectCreated, events[0].Type)
	assert.Equal(t, "Portal", events[0].ProjectName)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Projects.GetByID(context.Background(), 12345)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectRepo_ListPage_FollowsCursor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Acme")
	for _, name := range []string{"P1", "P2", "P3", "P4", "P5"} {
		f.project(t, name, c.ID)
	}

	var names []string
	cursor := ""
	pages := 0
	for {
		page, err := f.repos.Projects.ListPage(ctx, cursor, 2)
		require.NoError(t, err)
		pages++
		for _, p := range page.Projects {
			names = append(names, p.Name)
		}
		if !page.HasNext {
			assert.Empty(t, page.NextCursor)
			break
		}
		cursor = page.NextCursor
	}
	assert.Equal(t, 3, pages)
	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "P5"}, names)
}

func TestProjectRepo_ListPage_InvalidCursor(t *testing.T) {
	f := newFixture(t)
	_, err := f.repos.Projects.ListPage(context.Background(), "not-a-number", 10)
	assert.ErrorContains(t, err, "invalid project cursor")
}

func TestNodeRepo_CreateAppends(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Portal", f.company(t, "Acme").ID)

	for _, title := range []string{"Plan", "Build", "Ship"} {
		n := &domain.Node{ProjectID: p.ID, Title: title}
		require.NoError(t, f.repos.Nodes.Create(ctx, n))
		assert.NotEmpty(t, n.ID)
	}

	nodes, err := f.repos.Nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	for i, n := range nodes {
		assert.Equal(t, i+1, n.NodeOrder)
		assert.Equal(t, domain.NodeNotStarted, n.Status)
	}
	assert.Equal(t, "Ship", nodes[2].Title)

	events, err := f.repos.History.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, events, 4, "project created + three node events")
	assert.Equal(t, domain.EventNodeCreated, events[0].Type, "newest first")
	assert.Equal(t, "Ship", events[0].NodeTitle)
}

func TestNodeRepo_UpdateOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Portal", f.company(t, "Acme").ID)
	for _, title := range []string{"A", "B", "C"} {
		require.NoError(t, f.repos.Nodes.Create(ctx, &domain.Node{ProjectID: p.ID, Title: title}))
	}
	nodes, err := f.repos.Nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)

	orders := []domain.NodeOrder{
		{ProjectNodeID: nodes[2].ProjectNodeID, NodeOrder: 1},
		{ProjectNodeID: nodes[0].ProjectNodeID, NodeOrder: 2},
		{ProjectNodeID: nodes[1].ProjectNodeID, NodeOrder: 3},
	}
	require.NoError(t, f.repos.Nodes.UpdateOrder(ctx, p.ID, orders))

	reordered, err := f.repos.Nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	titles := []string{reordered[0].Title, reordered[1].Title, reordered[2].Title}
	assert.Equal(t, []string{"C", "A", "B"}, titles)

	events, err := f.repos.History.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EventNodeReordered, events[0].Type)
}

func TestNodeRepo_UpdateOrder_RejectsBadPayloads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "Portal", f.company(t, "Acme").ID)
	for _, title := range []string{"A", "B"} {
		require.NoError(t, f.repos.Nodes.Create(ctx, &domain.Node{ProjectID: p.ID, Title: title}))
	}
	nodes, err := f.repos.Nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	a, b := nodes[0].ProjectNodeID, nodes[1].ProjectNodeID

	tests := []struct {
		name   string
		orders []domain.NodeOrder
		want   error
	}{
		{"missing node", []domain.NodeOrder{{ProjectNodeID: a, NodeOrder: 1}}, repository.ErrInvalidOrder},
		{"duplicate position", []domain.NodeOrder{{ProjectNodeID: a, NodeOrder: 1}, {ProjectNodeID: b, NodeOrder: 1}}, repository.ErrInvalidOrder},
		{"position out of range", []domain.NodeOrder{{ProjectNodeID: a, NodeOrder: 1}, {ProjectNodeID: b, NodeOrder: 3}}, repository.ErrInvalidOrder},
		{"foreign node", []domain.NodeOrder{{ProjectNodeID: a, NodeOrder: 1}, {ProjectNodeID: 999999, NodeOrder: 2}}, repository.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.repos.Nodes.UpdateOrder(ctx, p.ID, tt.orders)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	after, err := f.repos.Nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", after[0].Title)
	assert.Equal(t, 1, after[0].NodeOrder)
}

func TestNodeRepo_Create_RollsBackWhenHistoryWriteFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	repos := repository.NewSQLiteRepos(database)
	c := &domain.Company{Name: "Acme"}
	require.NoError(t, repos.Companies.Create(ctx, c))
	p := testutil.NewTestProject("Portal", testutil.WithCompany(c.ID, ""))
	require.NoError(t, repos.Projects.Create(ctx, p))

	boom := errors.New("history insert failed")
	uow := &testutil.FailingExecUoW{DB: database, Match: "INSERT INTO history_events", Err: boom}
	nodes := repository.NewSQLiteNodeRepo(database, uow)

	err := nodes.Create(ctx, &domain.Node{ProjectID: p.ID, Title: "Doomed"})
	require.ErrorIs(t, err, boom)

	list, err := nodes.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list, "node insert rolled back with the failed event")
}

func TestHistoryRepo_ListAllProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.company(t, "Acme")
	f.project(t, "One", c.ID)
	f.project(t, "Two", c.ID)

	all, err := f.repos.History.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSeed_PopulatesOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seeded, err := repository.Seed(ctx, database)
	require.NoError(t, err)
	assert.True(t, seeded)

	again, err := repository.Seed(ctx, database)
	require.NoError(t, err)
	assert.False(t, again)

	repos := repository.NewSQLiteRepos(database)
	page, err := repos.Projects.ListPage(ctx, "", 50)
	require.NoError(t, err)
	assert.Len(t, page.Projects, 3)
	nodes, err := repos.Nodes.ListByProject(ctx, page.Projects[0].ID)
	require.NoError(t, err)
	assert.Len(t, nodes, 5)
}
