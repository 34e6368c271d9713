package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/pagination"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripANSI removes escape codes so assertions are terminal-independent.
func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestDeadlineFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "--", stripANSI(DeadlineFrom(nil, now, false)))

	past := now.AddDate(0, 0, -3)
	assert.Equal(t, "3d ago", stripANSI(DeadlineFrom(&past, now, false)))
	assert.Equal(t, "3d ago", stripANSI(DeadlineFrom(&past, now, true)))
}

func TestHumanDate(t *testing.T) {
	assert.Equal(t, "Sep 30, 2022", HumanDate(time.Date(2022, 9, 30, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Today", HumanDate(time.Now()))
	assert.Equal(t, "Yesterday", HumanDate(time.Now().AddDate(0, 0, -1)))
	assert.Equal(t, "--", HumanDate(time.Time{}))
}

func TestHumanTimestamp(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "Just now", HumanTimestamp(now))
	assert.Equal(t, "5m ago", HumanTimestamp(now.Add(-5*time.Minute)))
	assert.Equal(t, "2h ago", HumanTimestamp(now.Add(-2*time.Hour)))
	assert.NotEmpty(t, HumanTimestamp(now.Add(-48*time.Hour)))
}

func TestStatusPill(t *testing.T) {
	tests := []struct {
		status   domain.ProjectStatus
		contains string
	}{
		{domain.ProjectContract, "Contract"},
		{domain.ProjectOnHold, "On Hold"},
		{domain.ProjectCancelled, "Cancelled"},
		{"NOPE", "In Progress"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Contains(t, StatusPill(mapper.ProjectStatus(tt.status)), tt.contains)
		})
	}
}

func TestConfirmPill(t *testing.T) {
	assert.Equal(t, "--", stripANSI(ConfirmPill(nil)))
	approved := "approved"
	assert.Contains(t, ConfirmPill(mapper.ConfirmStatus(&approved)), "Approved")
}

func TestPageLabel(t *testing.T) {
	s := pagination.New(42, 10)
	s.SetPage(2)
	assert.Equal(t, "Page 2 of 5 · 42 items", stripANSI(PageLabel(s)))
	assert.Equal(t, "Page 1 of 1 · 1 item", stripANSI(PageLabel(pagination.New(1, 10))))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 5))
	assert.Equal(t, "hell…", Truncate("hello!", 5))
	assert.Equal(t, "…", Truncate("hello", 1))
	assert.Equal(t, "스프린…", Truncate("스프린트 계획", 4))
}

func TestRenderBox(t *testing.T) {
	result := RenderBox("TEST", "content here")
	assert.Contains(t, result, "TEST")
	assert.Contains(t, result, "content here")
	assert.Contains(t, result, "╭")
	assert.Contains(t, result, "╰")
}

func TestRenderBoxWithoutTitle(t *testing.T) {
	result := RenderBox("", "just content")
	assert.Contains(t, result, "just content")
	assert.Contains(t, result, "╭")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "LONGER"}, [][]string{{"xyz", "1"}, {"q"}}))
	lines := regexp.MustCompile("\n").Split(out, -1)
	assert.Equal(t, "A    LONGER", lines[0])
	assert.Equal(t, "xyz  1", lines[2])
	assert.Equal(t, "q    ", lines[3])
}

func TestRenderSelectableTable_MarksCursorRow(t *testing.T) {
	out := stripANSI(RenderSelectableTable([]string{"A"}, [][]string{{"one"}, {"two"}}, 1))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.False(t, strings.HasPrefix(lines[2], "▸"))
	assert.True(t, strings.HasPrefix(lines[3], "▸ "))
}
