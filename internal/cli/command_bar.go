package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
)

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, autocomplete suggestions, and history navigation.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	// names offered as completions: navigation words plus CLI commands
	names []string

	history    []string
	historyIdx int
}

// navigationWords are handled by the bar itself instead of the CLI tree.
var navigationWords = []string{"home", "projects", "users", "history", "open", "steps", "back", "help", "quit"}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 500
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	names := append([]string{}, navigationWords...)
	names = append(names, commandPaths(NewRootCmd(state.App))...)

	return commandBar{
		input: ti,
		state: state,
		names: names,
	}
}

// Focus gives focus to the command bar.
func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

// Blur removes focus from the command bar.
func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

// Focused returns whether the command bar has focus.
func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = w - len("workhub > ") - 1
}

// Update handles key messages when the command bar is focused.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		if input == "" {
			return nil
		}
		c.addHistory(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		c.historyUp()
		return nil

	case tea.KeyDown:
		c.historyDown()
		return nil

	case tea.KeyEsc:
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

// View renders the command bar.
func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("workhub") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command")
	}
	return prompt + c.input.View()
}

// executeCommand dispatches one line. Navigation words move between views;
// anything else runs through the CLI and its output is shown.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	word := strings.ToLower(parts[0])
	args := parts[1:]

	switch word {
	case "quit", "exit", "q":
		return func() tea.Msg { return quitMsg{} }
	case "back":
		return popView()
	case "home", "dashboard", "ui":
		return func() tea.Msg { return homeMsg{} }
	case "projects":
		return pushView(newProjectListView(c.state))
	case "users":
		return pushView(newUserListView(c.state))
	case "history":
		if len(args) == 0 {
			return pushView(newHistoryView(c.state, c.state.ActiveProjectID))
		}
	case "open", "steps":
		id, err := c.projectArg(args)
		if err != nil {
			return outputCmd(formatter.ErrorLine(err.Error()))
		}
		if word == "open" {
			return pushView(newProjectDetailView(c.state, id, ""))
		}
		return pushView(newNodeBoardView(c.state, id, fmt.Sprintf("Project #%d", id)))
	case "help":
		return outputCmd(c.helpText())
	}

	out := captureCobraOutput(c.state.App, parts)
	return tea.Batch(outputCmd(out), refreshViews())
}

// projectArg resolves an optional project ID argument, falling back to the
// active project.
func (c *commandBar) projectArg(args []string) (int64, error) {
	if len(args) > 0 {
		return parseID("project", args[0])
	}
	if c.state.ActiveProjectID != 0 {
		return c.state.ActiveProjectID, nil
	}
	return 0, fmt.Errorf("no project given and none is open")
}

func (c *commandBar) helpText() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Navigation") + "\n")
	rows := [][]string{
		{"home", "back to the dashboard"},
		{"projects", "project list"},
		{"users", "user list"},
		{"history", "activity log (of the open project, if any)"},
		{"open [ID]", "project details"},
		{"steps [ID]", "reorder project steps"},
		{"back", "previous view"},
		{"quit", "leave"},
	}
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-12s %s\n", formatter.StyleGreen.Render(r[0]), formatter.Dim(r[1])))
	}
	b.WriteString("\n" + formatter.Dim("Any CLI command also works here, e.g. ") + "node add --project 1 --title Review")
	return b.String()
}

// ── history ──────────────────────────────────────────────────────────────────

func (c *commandBar) addHistory(line string) {
	c.history = append(c.history, line)
	c.historyIdx = len(c.history)
}

func (c *commandBar) historyUp() {
	if c.historyIdx > 0 {
		c.historyIdx--
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	}
}

func (c *commandBar) historyDown() {
	if c.historyIdx < len(c.history)-1 {
		c.historyIdx++
		c.input.SetValue(c.history[c.historyIdx])
		c.input.CursorEnd()
	} else {
		c.historyIdx = len(c.history)
		c.input.SetValue("")
	}
}

// ── suggestions ──────────────────────────────────────────────────────────────

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" {
		c.input.SetSuggestions(nil)
		return
	}
	var out []string
	for _, n := range c.names {
		if strings.HasPrefix(n, strings.ToLower(text)) {
			out = append(out, n)
		}
	}
	c.input.SetSuggestions(out)
}
