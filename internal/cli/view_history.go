package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

var historyCategoryCycle = []mapper.EventCategory{
	"", mapper.CategoryProject, mapper.CategoryNode, mapper.CategoryApproval, mapper.CategoryComment, mapper.CategoryOther,
}

// historyView shows the activity log, optionally scoped to one project, with
// a text search and category chips applied locally.
type historyView struct {
	state     *SharedState
	projectID int64
	res       *service.Resource[[]service.HistoryRow]
	search    textinput.Model
	typing    bool
	category  mapper.EventCategory
	pager     pager
}

func newHistoryView(state *SharedState, projectID int64) *historyView {
	app := state.App
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "message, step or project"
	ti.CharLimit = 80

	return &historyView{
		state:     state,
		projectID: projectID,
		res: service.NewResource(func(ctx context.Context) ([]service.HistoryRow, error) {
			return app.History.List(ctx, service.HistoryFilter{ProjectID: projectID})
		}),
		search: ti,
		pager:  newPager(app.pageSize()),
	}
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }

func (v *historyView) CapturesInput() bool { return v.typing }

func (v *historyView) ShortHelp() []key.Binding {
	if v.typing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return append([]key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	}, v.pager.bindings()...)
}

func (v *historyView) Init() tea.Cmd {
	return mountResource(v.res)
}

func (v *historyView) Unmount() { v.res.Unmount() }

func (v *historyView) matches() []service.HistoryRow {
	f := service.HistoryFilter{Query: v.search.Value()}
	var out []service.HistoryRow
	for _, r := range v.res.Snapshot().Data {
		if v.category != "" && r.View.Category != v.category {
			continue
		}
		if f.Match(r.Event) {
			out = append(out, r)
		}
	}
	return out
}

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceMsg[[]service.HistoryRow]:
		if msg.res == v.res {
			v.pager.SetTotal(len(v.matches()))
		}
		return v, nil

	case refreshViewMsg:
		return v, refetchResource(v.res)

	case tea.KeyMsg:
		if v.typing {
			return v.updateSearch(msg)
		}
		if v.pager.Update(msg) {
			return v, nil
		}
		switch msg.String() {
		case "/":
			v.typing = true
			return v, v.search.Focus()
		case "c":
			for i, c := range historyCategoryCycle {
				if c == v.category {
					v.category = historyCategoryCycle[(i+1)%len(historyCategoryCycle)]
					break
				}
			}
			v.pager.Reset(len(v.matches()))
		}
		return v, nil
	}

	if v.typing {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *historyView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.typing = false
		v.search.Blur()
		v.search.SetValue("")
		v.pager.Reset(len(v.matches()))
		return v, nil
	case tea.KeyEnter:
		v.typing = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.pager.Reset(len(v.matches()))
	return v, cmd
}

func (v *historyView) View() string {
	st := v.res.Snapshot()

	var b strings.Builder
	category := "all"
	if v.category != "" {
		category = string(v.category)
	}
	b.WriteString("\n  " + formatter.Dim("Category: ") + formatter.Bold(category))
	if v.typing || v.search.Value() != "" {
		b.WriteString("   " + v.search.View())
	}
	b.WriteString("\n")

	switch {
	case st.IsLoading && st.Data == nil:
		b.WriteString("\n  " + formatter.Dim("Loading..."))
		return b.String()
	case st.Error != "":
		b.WriteString("\n  " + formatter.ErrorLine(st.Error) + "\n")
	}

	rows := pageItems(v.pager, v.matches())
	b.WriteString("\n" + formatter.FormatHistory(rows, v.pager.State()))
	if v.pager.State().TotalPages() > 1 {
		b.WriteString("\n  " + v.pager.dots.View())
	}
	return b.String()
}
