package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/testutil"
)

func seedProjects(fake *testutil.FakeBackend, n int, devEvery int, devID int64) {
	for i := 0; i < n; i++ {
		var opts []testutil.ProjectOption
		if devEvery > 0 && i%devEvery == 0 {
			opts = append(opts, testutil.WithDevelopers(devID))
		}
		fake.AddProject(*testutil.NewTestProject(fmt.Sprintf("p-%03d", i), opts...))
	}
}

func TestFetchAllProjects_FollowsCursorInPagesOf50(t *testing.T) {
	fake := testutil.NewFakeBackend()
	seedProjects(fake, 120, 0, 0)

	all, err := FetchAllProjects(context.Background(), fake.Repos().Projects, pagination.DefaultMaxPages)
	require.NoError(t, err)
	require.Len(t, all, 120)
	assert.Equal(t, "p-000", all[0].Name)
	assert.Equal(t, "p-119", all[119].Name)
	assert.Equal(t, 3, fake.Calls("projects.ListPage"))
}

func TestFetchAllProjects_EmptyBackend(t *testing.T) {
	fake := testutil.NewFakeBackend()
	all, err := FetchAllProjects(context.Background(), fake.Repos().Projects, pagination.DefaultMaxPages)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, 1, fake.Calls("projects.ListPage"))
}

type loopingProjects struct {
	calls int
}

func (l *loopingProjects) ListPage(ctx context.Context, cursor string, size int) (domain.ProjectPage, error) {
	l.calls++
	return domain.ProjectPage{
		Projects:   []domain.Project{{ID: int64(l.calls)}},
		NextCursor: "same",
		HasNext:    true,
	}, nil
}

func (l *loopingProjects) GetByID(context.Context, int64) (*domain.Project, error) { return nil, nil }
func (l *loopingProjects) Create(context.Context, *domain.Project) error        { return nil }

func TestFetchAllProjects_RepeatedCursorStops(t *testing.T) {
	repo := &loopingProjects{}
	_, err := FetchAllProjects(context.Background(), repo, pagination.DefaultMaxPages)
	require.ErrorIs(t, err, pagination.ErrCursorLoop)
	assert.Equal(t, 2, repo.calls)
}

func TestUserProjectsResource_FiltersByDeveloper(t *testing.T) {
	fake := testutil.NewFakeBackend()
	seedProjects(fake, 75, 10, 42)
	fake.AddProject(*testutil.NewTestProject("client only", testutil.WithClients(42)))

	s := NewUserProjectsResource(fake.Repos().Projects, 42).Mount(context.Background())
	require.Empty(t, s.Error)
	require.Len(t, s.Data, 8)
	for _, p := range s.Data {
		assert.True(t, p.HasDeveloper(42), p.Name)
	}
}

func TestUserProjectsResource_ErrorMidway(t *testing.T) {
	fake := testutil.NewFakeBackend()
	fake.FailOn("projects.ListPage", fmt.Errorf("boom"))

	s := NewUserProjectsResource(fake.Repos().Projects, 1).Mount(context.Background())
	assert.Contains(t, s.Error, "aggregating projects")
	assert.Contains(t, s.Error, "boom")
}
