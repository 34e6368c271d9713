package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
)

// dashboardView is the home screen of the TUI: project, user and company
// summaries loaded in parallel.
type dashboardView struct {
	state *SharedState
	res   *service.Resource[service.DashboardData]
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state: state,
		res:   service.NewDashboardResource(state.App.Dashboard),
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projects")),
		key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "users")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return mountResource(v.res)
}

func (v *dashboardView) Unmount() { v.res.Unmount() }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		return v, refetchResource(v.res)

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			return v, pushView(newProjectListView(v.state))
		case "u":
			return v, pushView(newUserListView(v.state))
		case "h":
			return v, pushView(newHistoryView(v.state, 0))
		case "r":
			return v, refetchResource(v.res)
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	st := v.res.Snapshot()
	if st.IsLoading && st.Data.Errors == nil {
		return "\n  " + formatter.Dim("Loading...")
	}

	var b strings.Builder
	if st.Error != "" {
		b.WriteString("\n  " + formatter.ErrorLine(st.Error) + "\n")
	}
	if st.Data.Errors != nil {
		b.WriteString("\n" + formatter.FormatDashboard(st.Data))
	}
	return b.String()
}
