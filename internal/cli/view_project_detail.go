package cli

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
)

// projectDetailView shows one project's metadata, step flow and description
// in a scrollable viewport.
type projectDetailView struct {
	state     *SharedState
	projectID int64
	name      string
	res       *service.Resource[*service.ProjectSummary]
	vp        viewport.Model
}

func newProjectDetailView(state *SharedState, projectID int64, name string) *projectDetailView {
	app := state.App
	return &projectDetailView{
		state:     state,
		projectID: projectID,
		name:      name,
		res: service.NewResource(func(ctx context.Context) (*service.ProjectSummary, error) {
			return app.Projects.Summary(ctx, projectID)
		}),
		vp: viewport.New(state.ContentWidth(), state.ContentHeight()),
	}
}

func (v *projectDetailView) ID() ViewID { return ViewProjectDetail }

func (v *projectDetailView) Title() string {
	if v.name != "" {
		return v.name
	}
	return "Project"
}

func (v *projectDetailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "steps")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *projectDetailView) Init() tea.Cmd {
	return mountResource(v.res)
}

func (v *projectDetailView) Unmount() { v.res.Unmount() }

func (v *projectDetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceMsg[*service.ProjectSummary]:
		if msg.res == v.res {
			v.render()
		}
		return v, nil

	case refreshViewMsg:
		return v, refetchResource(v.res)

	case tea.WindowSizeMsg:
		v.vp.Width = v.state.ContentWidth()
		v.vp.Height = v.state.ContentHeight()
		v.render()
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "o", "enter":
			return v, pushView(newNodeBoardView(v.state, v.projectID, v.Title()))
		case "h":
			return v, pushView(newHistoryView(v.state, v.projectID))
		case "r":
			return v, refetchResource(v.res)
		}
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *projectDetailView) render() {
	st := v.res.Snapshot()
	if st.Data == nil {
		return
	}
	if st.Data.Project.Name != "" {
		v.name = st.Data.Project.Name
	}
	v.vp.SetContent(formatter.FormatProjectDetail(st.Data, v.state.ContentWidth()))
}

func (v *projectDetailView) View() string {
	st := v.res.Snapshot()
	switch {
	case st.Data == nil && st.Error != "":
		return "\n  " + formatter.ErrorLine(st.Error)
	case st.Data == nil:
		return "\n  " + formatter.Dim("Loading...")
	}
	out := v.vp.View()
	if st.Error != "" {
		out = formatter.ErrorLine(st.Error) + "\n" + out
	}
	return out
}
