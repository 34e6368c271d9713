package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/pagination"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDate returns a human-friendly relative date string.
func RelativeDate(t time.Time) string {
	return RelativeDateFrom(t, time.Now())
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineFrom renders a deadline relative to now, red when overdue or due
// within two days and yellow within a week. Completed steps are dim.
func DeadlineFrom(deadline *time.Time, now time.Time, completed bool) string {
	if deadline == nil {
		return Dim("--")
	}
	text := RelativeDateFrom(*deadline, now)
	if completed {
		return Dim(text)
	}
	days := int(math.Round(deadline.Sub(now).Hours() / 24))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	if t.IsZero() {
		return "--"
	}
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < 0:
		return HumanDate(t)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDate(t)
	}
}

// StatusPill renders a mapped project or node status.
func StatusPill(v mapper.StatusView) string {
	return ToneStyle(v.Tone).Render("● " + v.Label)
}

// ConfirmPill renders a confirm status; nil renders as a dim dash.
func ConfirmPill(v *mapper.ConfirmView) string {
	if v == nil {
		return Dim("--")
	}
	return ToneStyle(v.Tone).Render(v.Label)
}

// RolePill renders a mapped user role.
func RolePill(v mapper.RoleView) string {
	return StylePurple.Render(v.Label)
}

// CompanyPill renders a company status label.
func CompanyPill(label string) string {
	switch label {
	case "Active":
		return StyleGreen.Render("● " + label)
	case "Suspended":
		return StyleRed.Render("● " + label)
	default:
		return StyleDim.Render("○ " + label)
	}
}

// EventBadge renders a history event as icon plus label.
func EventBadge(v mapper.EventView) string {
	style := StyleFg
	switch v.Category {
	case mapper.CategoryProject:
		style = StyleHeader
	case mapper.CategoryNode:
		style = StyleBlue
	case mapper.CategoryApproval:
		style = StyleYellow
	case mapper.CategoryComment:
		style = StylePurple
	}
	return style.Render(v.Icon + " " + v.Label)
}

// PageLabel renders "Page 2 of 5 · 42 items".
func PageLabel(s pagination.State) string {
	items := "items"
	if s.TotalItems() == 1 {
		items = "item"
	}
	return Dim(fmt.Sprintf("%s · %d %s", s.Label(), s.TotalItems(), items))
}

// Truncate shortens s to at most max visible runes, ending with "…".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max < 1 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// OrDash returns s, or a dim "--" when it is empty.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dim("--")
	}
	return s
}
