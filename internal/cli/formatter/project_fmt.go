package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/service"
)

// ProjectRows builds table rows for a project list.
func ProjectRows(projects []domain.Project) [][]string {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		end := Dim("--")
		if p.EndDate != nil {
			end = RelativeDate(*p.EndDate)
		}
		rows = append(rows, []string{
			Dim(p.DisplayID()),
			Bold(Truncate(p.Name, 36)),
			OrDash(p.CompanyName),
			StatusPill(mapper.ProjectStatus(p.Status)),
			fmt.Sprintf("%d", len(p.Developers)),
			end,
		})
	}
	return rows
}

var ProjectHeaders = []string{"ID", "NAME", "COMPANY", "STATUS", "DEVS", "ENDS"}

// FormatProjectList renders one page of projects inside a box.
func FormatProjectList(title string, projects []domain.Project, page pagination.State) string {
	if len(projects) == 0 {
		return RenderBox(title, Dim("No projects"))
	}
	return RenderBox(title, RenderTable(ProjectHeaders, ProjectRows(projects))+"\n"+PageLabel(page))
}

// FormatProjectDetail renders a project summary: metadata on the left, the
// step flow on the right and the description below.
func FormatProjectDetail(s *service.ProjectSummary, width int) string {
	left := projectMetaPanel(s)
	right := projectStepsPanel(s)
	combined := lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)

	descWidth := width - 8
	if descWidth < 40 {
		descWidth = 40
	}
	desc := Header("Description") + "\n" + RenderMarkdown(s.Project.Description, descWidth)
	return RenderBox("", combined+"\n\n"+desc)
}

func projectMetaPanel(s *service.ProjectSummary) string {
	p := s.Project
	var b strings.Builder
	b.WriteString(StyleBold.Render(p.Name) + "  " + Dim(p.DisplayID()) + "\n")
	b.WriteString(OrDash(p.CompanyName) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-8s", label)), value))
	}
	field("STATUS", StatusPill(s.Status))
	field("START", StyleFg.Render(HumanDate(p.StartDate)))
	if p.EndDate != nil {
		field("END", fmt.Sprintf("%s %s", RelativeDate(*p.EndDate), Dim("("+p.EndDate.Format("Jan 2, 2006")+")")))
	}
	field("DEVS", memberNames(p.Developers))
	field("CLIENTS", memberNames(p.Clients))
	if !p.UpdatedAt.IsZero() {
		field("UPDATED", HumanTimestamp(p.UpdatedAt))
	}
	b.WriteString("\n")
	field("APPROVED", StyleGreen.Render(fmt.Sprint(s.Approved)))
	field("PENDING", StyleYellow.Render(fmt.Sprint(s.Pending)))
	field("REJECTED", StyleRed.Render(fmt.Sprint(s.Rejected)))
	if s.Overdue > 0 {
		field("OVERDUE", StyleRed.Render(fmt.Sprint(s.Overdue)))
	}
	return lipgloss.NewStyle().Width(45).Render(b.String())
}

func projectStepsPanel(s *service.ProjectSummary) string {
	head := StyleHeader.Render("STEPS")
	if s.TotalNodes > 0 {
		head += "  " + RenderProgress(s.ProgressPct, 12)
	}
	return head + "\n" + StyleDim.Render(strings.Repeat("─", 5)) + "\n" +
		RenderSteps(s.Nodes, StepsOptions{Cursor: -1, Now: time.Now()})
}

func memberNames(members []domain.Member) string {
	if len(members) == 0 {
		return Dim("--")
	}
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = domain.CoalesceStr(m.Name, fmt.Sprintf("#%d", m.UserID))
	}
	return strings.Join(names, ", ")
}
