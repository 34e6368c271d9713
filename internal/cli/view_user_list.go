package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

// userListView lists admin users with live fuzzy search and a role filter.
// Users are fetched once; searching and paging happen locally.
type userListView struct {
	state  *SharedState
	res    *service.Resource[service.ListResult[service.AdminUserRow]]
	search textinput.Model
	typing bool
	role   domain.UserRole
	pager  pager
	cursor int
}

var userRoleCycle = []domain.UserRole{"", domain.RoleAdmin, domain.RoleDeveloper, domain.RoleClient}

func newUserListView(state *SharedState) *userListView {
	app := state.App
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "name or email"
	ti.CharLimit = 80

	return &userListView{
		state: state,
		res: service.NewResource(func(ctx context.Context) (service.ListResult[service.AdminUserRow], error) {
			return app.Users.List(ctx, service.UserQuery{}, 1, app.pageSize())
		}),
		search: ti,
		pager:  newPager(app.pageSize()),
	}
}

func (v *userListView) ID() ViewID    { return ViewUserList }
func (v *userListView) Title() string { return "Users" }

func (v *userListView) CapturesInput() bool { return v.typing }

func (v *userListView) ShortHelp() []key.Binding {
	if v.typing {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		}
	}
	return append([]key.Binding{
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "role")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	}, v.pager.bindings()...)
}

func (v *userListView) Init() tea.Cmd {
	return mountResource(v.res)
}

func (v *userListView) Unmount() { v.res.Unmount() }

// matches applies the current search and role filter to the loaded users.
func (v *userListView) matches() []service.AdminUserRow {
	rows := v.res.Snapshot().Data.Matched
	return service.SearchAdminUsers(rows, service.UserQuery{Text: v.search.Value(), Role: v.role})
}

func (v *userListView) refilter() {
	v.pager.Reset(len(v.matches()))
	v.cursor = 0
}

func (v *userListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resourceMsg[service.ListResult[service.AdminUserRow]]:
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
		return v.updateNormal(msg)
	}

	if v.typing {
		var cmd tea.Cmd
		v.search, cmd = v.search.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *userListView) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.typing = false
		v.search.Blur()
		v.search.SetValue("")
		v.refilter()
		return v, nil
	case tea.KeyEnter:
		v.typing = false
		v.search.Blur()
		return v, nil
	}
	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.refilter()
	return v, cmd
}

func (v *userListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.pager.Update(msg) {
		v.cursor = 0
		return v, nil
	}
	visible := pageItems(v.pager, v.matches())
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "/":
		v.typing = true
		return v, v.search.Focus()
	case "f":
		for i, r := range userRoleCycle {
			if r == v.role {
				v.role = userRoleCycle[(i+1)%len(userRoleCycle)]
				break
			}
		}
		v.refilter()
	case "enter":
		if v.cursor < len(visible) {
			u := visible[v.cursor]
			return v, outputCmd(formatter.FormatUserDetail(&u))
		}
	}
	return v, nil
}

func (v *userListView) View() string {
	st := v.res.Snapshot()

	var b strings.Builder
	role := "all"
	if v.role != "" {
		role = mapper.AdminUserRole(v.role).Label
	}
	b.WriteString("\n  " + formatter.Dim("Role: ") + formatter.Bold(role))
	if v.typing || v.search.Value() != "" {
		b.WriteString("   " + v.search.View())
	}
	b.WriteString("\n")

	switch {
	case st.IsLoading && st.Data.Matched == nil:
		b.WriteString("\n  " + formatter.Dim("Loading..."))
		return b.String()
	case st.Error != "":
		b.WriteString("\n  " + formatter.ErrorLine(st.Error) + "\n")
	}

	visible := pageItems(v.pager, v.matches())
	if len(visible) == 0 {
		b.WriteString("\n  " + formatter.Dim("No users match"))
		return b.String()
	}
	table := formatter.RenderSelectableTable(formatter.UserHeaders, formatter.UserRows(visible), v.cursor)
	b.WriteString("\n" + formatter.RenderBox("Users", table+"\n"+v.pager.View()))
	return b.String()
}
