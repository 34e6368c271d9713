package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Project opened last from the project list.
	ActiveProjectID   int64
	ActiveProjectName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveProject records the project the user is working in.
func (s *SharedState) SetActiveProject(id int64, name string) {
	s.ActiveProjectID = id
	s.ActiveProjectName = name
}

// ClearProjectContext resets the active project.
func (s *SharedState) ClearProjectContext() {
	s.ActiveProjectID = 0
	s.ActiveProjectName = ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// ContentWidth is the terminal width with a floor for narrow or unknown
// terminals.
func (s *SharedState) ContentWidth() int {
	if s.Width < 40 {
		return 80
	}
	return s.Width
}
