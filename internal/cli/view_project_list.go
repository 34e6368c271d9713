package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

// projectListView shows every project, one client-side page at a time,
// with a status filter cycled by s.
type projectListView struct {
	state  *SharedState
	res    *service.Resource[service.ListResult[domain.Project]]
	status domain.ProjectStatus
	pager  pager
	cursor int
}

func newProjectListView(state *SharedState) *projectListView {
	v := &projectListView{
		state: state,
		pager: newPager(state.App.pageSize()),
	}
	v.res = v.newResource()
	return v
}

func (v *projectListView) newResource() *service.Resource[service.ListResult[domain.Project]] {
	app, status := v.state.App, v.status
	return service.NewResource(func(ctx context.Context) (service.ListResult[domain.Project], error) {
		return app.Projects.List(ctx, service.ProjectQuery{Page: 1, Size: app.pageSize(), Status: status})
	})
}

func (v *projectListView) ID() ViewID    { return ViewProjectList }
func (v *projectListView) Title() string { return "Projects" }

func (v *projectListView) ShortHelp() []key.Binding {
	return append([]key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),
	}, v.pager.bindings()...)
}

func (v *projectListView) Init() tea.Cmd {
	return mountResource(v.res)
}

func (v *projectListView) Unmount() { v.res.Unmount() }

func (v *projectListView) matched() []domain.Project {
	return v.res.Snapshot().Data.Matched
}

func (v *projectListView) visible() []domain.Project {
	return pageItems(v.pager, v.matched())
}

func (v *projectListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceMsg[service.ListResult[domain.Project]]:
		if msg.res == v.res {
			v.pager.SetTotal(len(v.matched()))
			v.clampCursor()
		}
		return v, nil

	case refreshViewMsg:
		return v, refetchResource(v.res)

	case tea.KeyMsg:
		if v.pager.Update(msg) {
			v.cursor = 0
			return v, nil
		}
		visible := v.visible()
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(visible)-1 {
				v.cursor++
			}
		case "s":
			return v, v.cycleStatus()
		case "enter":
			if v.cursor < len(visible) {
				p := visible[v.cursor]
				v.state.SetActiveProject(p.ID, p.Name)
				return v, pushView(newProjectDetailView(v.state, p.ID, p.Name))
			}
		}
	}
	return v, nil
}

// cycleStatus moves the filter to the next known status, then back to all.
func (v *projectListView) cycleStatus() tea.Cmd {
	next := domain.ProjectStatus("")
	if v.status == "" {
		next = domain.ProjectStatuses[0]
	} else {
		for i, s := range domain.ProjectStatuses {
			if s == v.status && i+1 < len(domain.ProjectStatuses) {
				next = domain.ProjectStatuses[i+1]
			}
		}
	}
	v.status = next
	v.res.Unmount()
	v.res = v.newResource()
	v.pager.SetTotal(0)
	v.cursor = 0
	return mountResource(v.res)
}

func (v *projectListView) clampCursor() {
	if n := len(v.visible()); v.cursor >= n {
		v.cursor = max(n-1, 0)
	}
}

func (v *projectListView) View() string {
	st := v.res.Snapshot()

	var b strings.Builder
	filter := "all"
	if v.status != "" {
		filter = mapper.ProjectStatus(v.status).Label
	}
	b.WriteString("\n  " + formatter.Dim("Status: ") + formatter.Bold(filter) + "\n")

	switch {
	case st.IsLoading && st.Data.Matched == nil:
		b.WriteString("\n  " + formatter.Dim("Loading..."))
		return b.String()
	case st.Error != "":
		b.WriteString("\n  " + formatter.ErrorLine(st.Error) + "\n")
	}

	visible := v.visible()
	if len(visible) == 0 {
		b.WriteString("\n  " + formatter.Dim("No projects"))
		return b.String()
	}
	table := formatter.RenderSelectableTable(formatter.ProjectHeaders, formatter.ProjectRows(visible), v.cursor)
	b.WriteString("\n" + formatter.RenderBox("Projects", table+"\n"+v.pager.View()))
	return b.String()
}
