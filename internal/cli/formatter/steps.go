package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
)

const (
	stepBranch = "├─ "
	stepCorner = "└─ "
	stepCursor = "▸ "
)

// StepsOptions controls how a node flow is drawn.
type StepsOptions struct {
	// Cursor is the zero-based highlighted row; -1 highlights nothing.
	Cursor int
	// Reordering marks the highlighted row as grabbed.
	Reordering bool
	Now        time.Time
}

// RenderSteps draws a project's nodes as an ordered flow. Completed steps
// get a green check, steps in progress an amber marker. Confirm and
// deadline badges are right-aligned.
func RenderSteps(nodes []domain.Node, opts StepsOptions) string {
	if len(nodes) == 0 {
		return Dim("No steps yet")
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	type line struct {
		content string
		badge   string
	}
	lines := make([]line, len(nodes))
	maxWidth := 0

	for i, n := range nodes {
		connector := stepBranch
		if i == len(nodes)-1 {
			connector = stepCorner
		}
		prefix := "  "
		if i == opts.Cursor {
			prefix = StylePurple.Render(stepCursor)
			if opts.Reordering {
				prefix = StyleYellowBold.Render("↕ ")
			}
		}

		status := mapper.NodeStatus(n.Status)
		title := fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%d.", n.NodeOrder)), n.Title)
		marker := ""
		switch status.Key {
		case "completed":
			marker = StyleGreen.Render("✔ ")
			title = Dim(title)
		case "inProgress", "review":
			marker = StyleYellowBold.Render("▶ ")
		}
		if i == opts.Cursor && opts.Reordering {
			title = StyleYellowBold.Render(title)
		}

		content := prefix + StyleDim.Render(connector) + marker + title
		lines[i].content = content

		var badges []string
		if c := mapper.ConfirmStatus(n.ConfirmStatus); c != nil {
			badges = append(badges, ConfirmPill(c))
		}
		if n.Deadline != nil {
			badges = append(badges, DeadlineFrom(n.Deadline, opts.Now, status.Key == "completed"))
		}
		if len(badges) > 0 {
			lines[i].badge = StyleBlue.Render("[ ") + strings.Join(badges, Dim(" · ")) + StyleBlue.Render(" ]")
		}
		if w := lipgloss.Width(content); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.content)
		if l.badge != "" {
			pad := maxWidth - lipgloss.Width(l.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad) + "  " + l.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}
