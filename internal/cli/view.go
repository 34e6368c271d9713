package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewProjectList
	ViewProjectDetail
	ViewNodeBoard
	ViewUserList
	ViewHistory
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that own a text input while it is
// active. Keys then bypass the global bindings.
type inputCapturer interface {
	CapturesInput() bool
}

// unmounter is implemented by views holding resources that must stop
// updating once the view leaves the stack.
type unmounter interface {
	Unmount()
}

// viewCapturesInput returns true if the active view should receive all key
// events, including q, : and esc.
func viewCapturesInput(v View) bool {
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}

func unmountView(v View) {
	if u, ok := v.(unmounter); ok {
		u.Unmount()
	}
}
