package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/export"
	"github.com/alexanderramin/workhub/internal/repository"
	"github.com/alexanderramin/workhub/internal/service"
	"github.com/alexanderramin/workhub/internal/testutil"
)

var testNow = time.Date(2026, 5, 12, 9, 0, 0, 0, time.UTC)

// testApp wires a full App over an in-memory fake backend.
func testApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	fb := testutil.NewFakeBackend()
	app := NewApp(service.New(fb.Repos()))
	app.PageSize = 5
	app.Now = func() time.Time { return testNow }
	return app, fb
}

// seedProjects adds n projects named "Project 1".."Project n".
func seedProjects(t *testing.T, fb *testutil.FakeBackend, n int, opts ...testutil.ProjectOption) []*domain.Project {
	t.Helper()
	out := make([]*domain.Project, n)
	for i := range n {
		p := testutil.NewTestProject(fmt.Sprintf("Project %d", i+1), opts...)
		fb.AddProject(*p)
		out[i] = p
	}
	return out
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- project ---

func TestProjectList_FirstPage(t *testing.T) {
	app, fb := testApp(t)
	seedProjects(t, fb, 7)

	out, err := executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Project 1")
	assert.Contains(t, out, "Project 5")
	assert.NotContains(t, out, "Project 6")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "7 items")
}

func TestProjectList_PageBeyondEndClamps(t *testing.T) {
	app, fb := testApp(t)
	seedProjects(t, fb, 7)

	out, err := executeCmd(t, app, "project", "list", "--page", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Project 7")
	assert.NotContains(t, out, "Project 5")
	assert.Contains(t, out, "Page 2 of 2")
}

func TestProjectList_StatusFilter(t *testing.T) {
	app, fb := testApp(t)
	seedProjects(t, fb, 2)
	fb.AddProject(*testutil.NewTestProject("Frozen", testutil.WithProjectStatus(domain.ProjectOnHold)))

	out, err := executeCmd(t, app, "project", "list", "--status", "on_hold")
	require.NoError(t, err)
	assert.Contains(t, out, "Frozen")
	assert.NotContains(t, out, "Project 1")
	assert.Contains(t, out, "1 item")
}

func TestProjectList_RejectsUnknownStatus(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "list", "--status", "ARCHIVED")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of CONTRACT")
}

func TestProjectList_BackendErrorIsWrapped(t *testing.T) {
	app, fb := testApp(t)
	fb.FailOn("projects.ListPage", errors.New("503 unavailable"))

	_, err := executeCmd(t, app, "project", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing projects")
	assert.Contains(t, err.Error(), "503 unavailable")
}

func TestProjectList_ExportWritesEveryMatch(t *testing.T) {
	app, fb := testApp(t)
	seedProjects(t, fb, 7)
	path := filepath.Join(t.TempDir(), "projects.xlsx")

	out, err := executeCmd(t, app, "project", "list", "--export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 7 projects")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.ProjectsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 8, "header plus one row per project")
}

func TestProjectShow(t *testing.T) {
	app, fb := testApp(t)
	p := seedProjects(t, fb, 1)[0]
	fb.SetNodes(p.ID, []domain.Node{
		testutil.NewTestNode(p.ID, "Design", 1, testutil.WithNodeStatus(domain.NodeCompleted)),
		testutil.NewTestNode(p.ID, "Build", 2),
	})

	out, err := executeCmd(t, app, "project", "show", fmt.Sprintf("#%d", p.ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Project 1")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
}

func TestProjectShow_InvalidID(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid project ID "abc"`)
}

func TestProjectShow_NotFound(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "show", "999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectMine_FiltersByDeveloper(t *testing.T) {
	app, fb := testApp(t)
	seedProjects(t, fb, 3)
	fb.AddProject(*testutil.NewTestProject("Assigned", testutil.WithDevelopers(42)))

	out, err := executeCmd(t, app, "project", "mine", "--user", "42")
	require.NoError(t, err)
	assert.Contains(t, strings.ToUpper(out), "PROJECTS OF USER 42")
	assert.Contains(t, out, "Assigned")
	assert.NotContains(t, out, "Project 1")
}

func TestProjectMine_RequiresUser(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "mine")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"user" not set`)
}

func TestProjectCreate(t *testing.T) {
	app, fb := testApp(t)

	out, err := executeCmd(t, app, "project", "create",
		"--name", "Harbor Site", "--company", "3", "--start", "2026-06-01",
		"--end", "2026-09-30", "--developer", "4,5")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project #")
	assert.Contains(t, out, "Harbor Site")
	assert.Equal(t, 1, fb.Calls("projects.Create"))
}

func TestProjectCreate_EndBeforeStart(t *testing.T) {
	app, fb := testApp(t)

	_, err := executeCmd(t, app, "project", "create",
		"--name", "Harbor Site", "--company", "3", "--start", "2026-06-01", "--end", "2026-05-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "endDate must not be before the start date")
	assert.Zero(t, fb.Calls("projects.Create"))
}

func TestProjectCreate_BadDate(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "project", "create",
		"--name", "Harbor Site", "--company", "3", "--start", "06/01/2026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use YYYY-MM-DD format")
}

// --- node ---

func seedBoard(t *testing.T, fb *testutil.FakeBackend) *domain.Project {
	t.Helper()
	p := seedProjects(t, fb, 1)[0]
	fb.SetNodes(p.ID, testutil.NewTestNodes(p.ID, "Kickoff", "Design", "Build"))
	return p
}

func TestNodeList(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	out, err := executeCmd(t, app, "node", "list", "--project", fmt.Sprint(p.ID))
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Kickoff"), strings.Index(out, "Design"))
	assert.Less(t, strings.Index(out, "Design"), strings.Index(out, "Build"))
}

func TestNodeAdd(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	out, err := executeCmd(t, app, "node", "add", "--project", fmt.Sprint(p.ID), "--title", "Launch", "--deadline", "2026-07-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Added step 4. Launch")
}

func TestNodeMove_SendsFullOrder(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	out, err := executeCmd(t, app, "node", "move", "--project", fmt.Sprint(p.ID), "3", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Order saved.")
	assert.Less(t, strings.Index(out, "Build"), strings.Index(out, "Kickoff"))

	calls := fb.OrderCalls()
	require.Len(t, calls, 1)
	require.Len(t, calls[0], 3)
	for i, o := range calls[0] {
		assert.Equal(t, i+1, o.NodeOrder)
	}
}

func TestNodeMove_SamePositionSendsNothing(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	out, err := executeCmd(t, app, "node", "move", "--project", fmt.Sprint(p.ID), "2", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Order unchanged.")
	assert.Empty(t, fb.OrderCalls())
}

func TestNodeMove_FailureReloadsOrder(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)
	fb.FailOn("nodes.UpdateOrder", errors.New("409 conflict"))

	out, err := executeCmd(t, app, "node", "move", "--project", fmt.Sprint(p.ID), "1", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409 conflict")
	assert.Contains(t, out, "Order reloaded from the server.")
	// The reloaded order is the backend's unchanged one.
	assert.Less(t, strings.Index(out, "Kickoff"), strings.Index(out, "Build"))
}

func TestNodeMove_OutOfRange(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	_, err := executeCmd(t, app, "node", "move", "--project", fmt.Sprint(p.ID), "1", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "moving step 1 to 9")
	assert.Empty(t, fb.OrderCalls())
}

func TestNodeMove_InvalidPosition(t *testing.T) {
	app, fb := testApp(t)
	p := seedBoard(t, fb)

	_, err := executeCmd(t, app, "node", "move", "--project", fmt.Sprint(p.ID), "first", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid position "first"`)
}

// --- user ---

func seedUsers(fb *testutil.FakeBackend) {
	fb.AddUser(testutil.NewTestUser("Ana Lima", "ana@example.com", testutil.WithRole(domain.RoleAdmin)))
	fb.AddUser(testutil.NewTestUser("Bruno Costa", "bruno@example.com"))
	fb.AddUser(testutil.NewTestUser("Carla Dias", "carla@client.io", testutil.WithRole(domain.RoleClient)))
}

func TestUserList_FuzzySearch(t *testing.T) {
	app, fb := testApp(t)
	seedUsers(fb)

	out, err := executeCmd(t, app, "user", "list", "-q", "brn")
	require.NoError(t, err)
	assert.Contains(t, out, "Bruno Costa")
	assert.NotContains(t, out, "Ana Lima")
}

func TestUserList_RoleFilter(t *testing.T) {
	app, fb := testApp(t)
	seedUsers(fb)

	out, err := executeCmd(t, app, "user", "list", "--role", "client")
	require.NoError(t, err)
	assert.Contains(t, out, "Carla Dias")
	assert.NotContains(t, out, "Bruno Costa")
}

func TestUserCreate_PasswordMismatch(t *testing.T) {
	app, fb := testApp(t)

	_, err := executeCmd(t, app, "user", "create",
		"--name", "Dora", "--email", "dora@example.com",
		"--password", "longenough1", "--password-confirm", "longenough2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "passwordConfirm does not match")
	assert.Zero(t, fb.Calls("users.Create"))
}

func TestUserCreate(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "user", "create",
		"--name", "Dora", "--email", "Dora@Example.com", "--role", "client",
		"--password", "longenough1", "--password-confirm", "longenough1")
	require.NoError(t, err)
	assert.Contains(t, out, "Dora <dora@example.com>")
}

// --- company ---

func TestCompanyCreateAndList(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "company", "create", "--name", "Acme", "--business-number", "123-45-67890")
	require.NoError(t, err)
	assert.Contains(t, out, "Created company #")

	out, err = executeCmd(t, app, "company", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "123-45-67890")
}

func TestCompanyCreate_MissingBusinessNumber(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "company", "create", "--name", "Acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "businessNumber is required")
}

func TestCompanyFieldValidator(t *testing.T) {
	check := companyFieldValidator("email", func(f *service.CreateCompanyForm, s string) { f.Email = s })
	assert.EqualError(t, check("nope"), "must be a valid email address")
	assert.NoError(t, check("ops@acme.io"))
	assert.NoError(t, check(""))
}

func TestFieldError_IgnoresOtherErrors(t *testing.T) {
	assert.NoError(t, fieldError(errors.New("boom"), "name"))
	assert.NoError(t, fieldError(nil, "name"))
}

// --- history ---

func seedHistory(fb *testutil.FakeBackend) {
	base := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	fb.AddEvent(domain.HistoryEvent{ID: 1, ProjectID: 1, ProjectName: "Harbor", Type: domain.EventProjectCreated,
		ActorName: "Ana", Message: "project opened", CreatedAt: base})
	fb.AddEvent(domain.HistoryEvent{ID: 2, ProjectID: 1, ProjectName: "Harbor", Type: domain.EventCommentAdded,
		ActorName: "Bruno", Message: "looks good", NodeTitle: "Design", CreatedAt: base.AddDate(0, 0, 3)})
	fb.AddEvent(domain.HistoryEvent{ID: 3, ProjectID: 2, ProjectName: "Tower", Type: domain.EventNodeReordered,
		ActorName: "Ana", Message: "steps reordered", CreatedAt: base.AddDate(0, 0, 5)})
}

func TestHistory_NewestFirst(t *testing.T) {
	app, fb := testApp(t)
	seedHistory(fb)

	out, err := executeCmd(t, app, "history")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "steps reordered"), strings.Index(out, "project opened"))
}

func TestHistory_Filters(t *testing.T) {
	app, fb := testApp(t)
	seedHistory(fb)

	out, err := executeCmd(t, app, "history", "--project", "1", "--actor", "bru")
	require.NoError(t, err)
	assert.Contains(t, out, "looks good")
	assert.NotContains(t, out, "project opened")
	assert.NotContains(t, out, "steps reordered")

	out, err = executeCmd(t, app, "history", "--from", "2026-05-01", "--to", "2026-05-04")
	require.NoError(t, err)
	assert.Contains(t, out, "looks good")
	assert.NotContains(t, out, "steps reordered")
}

func TestHistory_ToBeforeFromRejected(t *testing.T) {
	app, fb := testApp(t)
	seedHistory(fb)

	_, err := executeCmd(t, app, "history", "--from", "2026-05-04", "--to", "2026-05-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to must not be before from")
}

func TestHistory_Export(t *testing.T) {
	app, fb := testApp(t)
	seedHistory(fb)
	path := filepath.Join(t.TempDir(), "history.xlsx")

	out, err := executeCmd(t, app, "history", "--type", "COMMENT_ADDED", "--export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 events")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

// --- seed ---

func TestSeed_UnavailableOnRemoteBackend(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only available with the local backend")
}

func TestSeed_LocalBackendOnce(t *testing.T) {
	database := testutil.NewTestDB(t)
	app := NewApp(service.New(repository.NewSQLiteRepos(database)))
	app.Seed = func(ctx context.Context) (bool, error) { return repository.Seed(ctx, database) }

	out, err := executeCmd(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Demo data loaded.")

	out, err = executeCmd(t, app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "nothing seeded")

	out, err = executeCmd(t, app, "project", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "No projects")
}

// --- root ---

func TestRootCmd_NonInteractiveShowsHelp(t *testing.T) {
	app, _ := testApp(t)
	app.IsInteractive = func() bool { return false }

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "dashboard")
}

// --- command bar capture ---

func TestCaptureCobraOutput_SuggestsOnTypo(t *testing.T) {
	app, _ := testApp(t)

	out := captureCobraOutput(app, []string{"projct"})
	assert.Contains(t, out, "unknown command")
	assert.Contains(t, out, "Did you mean:")
	assert.Contains(t, out, "project")
}

func TestCaptureCobraOutput_BlocksInteractiveForms(t *testing.T) {
	app, fb := testApp(t)

	out := captureCobraOutput(app, []string{"company", "create", "-i"})
	assert.Contains(t, out, "interactive forms are not available")
	assert.Zero(t, fb.Calls("companies.Create"))
}

func TestCommandPaths(t *testing.T) {
	app, _ := testApp(t)

	paths := commandPaths(NewRootCmd(app))
	assert.Contains(t, paths, "node move")
	assert.Contains(t, paths, "project list")
	assert.NotContains(t, paths, "help")
}
