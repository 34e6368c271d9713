package cli

import (
	"testing"

	"github.com/alexanderramin/workhub/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state, command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel over app, sizes the terminal and drains
// Init so the dashboard has loaded.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar with ':', types the command, and presses
// Enter. Commands that only print leave the bar focused; it is blurred so
// following keys reach the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ActiveViewTitle() string {
	m := d.appModel()
	if v := m.activeView(); v != nil {
		return v.Title()
	}
	return ""
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// ViewStackIDs returns the ViewIDs of all views on the stack, bottom to top.
func (d *TestDriver) ViewStackIDs() []ViewID {
	m := d.appModel()
	ids := make([]ViewID, len(m.viewStack))
	for i, v := range m.viewStack {
		ids[i] = v.ID()
	}
	return ids
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports a quit requested by key, by quitMsg or by tea.Quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the command output shown in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}

// nodeBoard returns the active view as a node board, failing the test
// otherwise.
func (d *TestDriver) nodeBoard() *nodeBoardView {
	d.T.Helper()
	m := d.appModel()
	v, ok := m.activeView().(*nodeBoardView)
	if !ok {
		d.T.Fatalf("active view is %v, not the node board", d.ActiveViewID())
	}
	return v
}
