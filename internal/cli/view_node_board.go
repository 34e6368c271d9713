package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/reorder"
)

// boardLoadedMsg carries a freshly loaded board.
type boardLoadedMsg struct {
	owner chan reorder.SyncResult
	board *reorder.Board
	err   error
}

// syncSettledMsg reports the outcome of one background order sync.
type syncSettledMsg struct {
	owner  chan reorder.SyncResult
	result reorder.SyncResult
}

// nodeBoardView lists a project's steps and lets the user reorder them.
// Moves apply locally at once; the full order is synced in the background
// and the outcome shows in the status line.
type nodeBoardView struct {
	state     *SharedState
	projectID int64
	name      string

	board   *reorder.Board
	settled chan reorder.SyncResult
	loading bool
	err     error

	nodes   []domain.Node
	cursor  int
	pending int
	status  string
}

func newNodeBoardView(state *SharedState, projectID int64, name string) *nodeBoardView {
	return &nodeBoardView{
		state:     state,
		projectID: projectID,
		name:      name,
		settled:   make(chan reorder.SyncResult, 32),
		loading:   true,
	}
}

func (v *nodeBoardView) ID() ViewID    { return ViewNodeBoard }
func (v *nodeBoardView) Title() string { return "Steps" }

var (
	keyToggleReorder = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reorder"))
	keyMoveUp        = key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up"))
	keyMoveDown      = key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down"))
)

func (v *nodeBoardView) ShortHelp() []key.Binding {
	if v.reordering() {
		return []key.Binding{keyMoveUp, keyMoveDown, key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "done"))}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "select")),
		keyToggleReorder,
		key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
	}
}

func (v *nodeBoardView) Init() tea.Cmd {
	return v.load()
}

func (v *nodeBoardView) load() tea.Cmd {
	app, id, ch := v.state.App, v.projectID, v.settled
	opts := reorder.BoardOptions{
		Logger: app.logger(),
		OnSettled: func(r reorder.SyncResult) {
			// The view may be gone; never block the sync goroutine.
			select {
			case ch <- r:
			default:
			}
		},
	}
	return func() tea.Msg {
		b, err := app.Nodes.Board(context.Background(), id, opts)
		return boardLoadedMsg{owner: ch, board: b, err: err}
	}
}

// waitForSync delivers the next settled sync as a message.
func (v *nodeBoardView) waitForSync() tea.Cmd {
	ch := v.settled
	return func() tea.Msg {
		return syncSettledMsg{owner: ch, result: <-ch}
	}
}

func (v *nodeBoardView) reordering() bool {
	return v.board != nil && v.board.Mode() == reorder.ModeReorder
}

func (v *nodeBoardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		if msg.owner != v.settled {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.board = msg.board
			v.nodes = msg.board.Nodes()
			v.clampCursor()
		}
		return v, nil

	case syncSettledMsg:
		if msg.owner != v.settled {
			return v, nil
		}
		v.pending--
		// A superseded sync was never sent; the newer one reports.
		if !msg.result.Superseded {
			v.status = syncStatusLine(msg.result)
		}
		if v.board != nil {
			v.nodes = v.board.Nodes()
			v.clampCursor()
		}
		return v, nil

	case refreshViewMsg:
		if v.pending > 0 {
			return v, nil
		}
		return v, v.load()

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *nodeBoardView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.board == nil {
		return v, nil
	}
	switch {
	case key.Matches(msg, keyToggleReorder):
		v.board.ToggleMode()
		return v, nil
	case msg.String() == "R":
		if v.pending > 0 {
			return v, nil
		}
		v.status = ""
		return v, v.load()
	case key.Matches(msg, keyMoveUp):
		return v, v.move(-1)
	case key.Matches(msg, keyMoveDown):
		return v, v.move(1)
	}

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.nodes)-1 {
			v.cursor++
		}
	}
	return v, nil
}

// move drops the selected step delta positions away and keeps it selected.
func (v *nodeBoardView) move(delta int) tea.Cmd {
	if !v.reordering() {
		v.status = formatter.Dim("Press r to start reordering")
		return nil
	}
	to := v.cursor + delta
	if to < 0 || to >= len(v.nodes) {
		return nil
	}
	nodes, err := v.board.Drop(context.Background(), v.cursor, to)
	if err != nil {
		v.status = formatter.ErrorLine(err.Error())
		return nil
	}
	v.nodes = nodes
	v.cursor = to
	v.pending++
	v.status = formatter.Dim("Saving order...")
	return v.waitForSync()
}

func (v *nodeBoardView) clampCursor() {
	if v.cursor >= len(v.nodes) {
		v.cursor = max(len(v.nodes)-1, 0)
	}
}

func syncStatusLine(r reorder.SyncResult) string {
	switch {
	case r.Err != nil && r.Reconciled:
		return formatter.ErrorLine("Saving order failed; reloaded from server: " + r.Err.Error())
	case r.Err != nil:
		return formatter.ErrorLine("Saving order failed: " + r.Err.Error())
	default:
		return formatter.StyleGreen.Render("✔ Order saved.")
	}
}

func (v *nodeBoardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.ErrorLine(v.err.Error())
	}

	var b strings.Builder
	mode := formatter.Dim("view")
	if v.reordering() {
		mode = formatter.StyleYellowBold.Render("reorder")
	}
	b.WriteString(fmt.Sprintf("\n  %s  %s %s\n\n", formatter.Bold(v.name), formatter.Dim("mode:"), mode))
	steps := formatter.RenderSteps(v.nodes, formatter.StepsOptions{
		Cursor:     v.cursor,
		Reordering: v.reordering(),
		Now:        v.state.App.now(),
	})
	for _, line := range strings.Split(steps, "\n") {
		b.WriteString("  " + line + "\n")
	}
	if v.status != "" {
		b.WriteString("\n  " + v.status)
	}
	return b.String()
}
