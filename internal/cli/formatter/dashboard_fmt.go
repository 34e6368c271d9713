package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

// FormatDashboard renders the landing summary. Sections that failed to load
// show their error line in place of data.
func FormatDashboard(d service.DashboardData) string {
	var b strings.Builder

	b.WriteString(Header("Projects") + "\n")
	if msg, ok := d.Errors[service.SectionProjects]; ok {
		b.WriteString(ErrorLine(msg) + "\n")
	} else {
		b.WriteString(projectStatusBars(d.ProjectsByStatus, d.TotalProjects))
	}

	b.WriteString("\n" + Header("Users") + "\n")
	if msg, ok := d.Errors[service.SectionUsers]; ok {
		b.WriteString(ErrorLine(msg) + "\n")
	} else {
		b.WriteString(userRoleLine(d.UsersByRole, d.TotalUsers) + "\n")
	}

	b.WriteString("\n" + Header("Companies") + "\n")
	if msg, ok := d.Errors[service.SectionCompanies]; ok {
		b.WriteString(ErrorLine(msg) + "\n")
	} else {
		b.WriteString(CompanySummaryTable(d.Companies))
	}
	return RenderBox("WorkHub", strings.TrimRight(b.String(), "\n"))
}

func projectStatusBars(byKey map[string]int, total int) string {
	var b strings.Builder
	for _, st := range domain.ProjectStatuses {
		v := mapper.ProjectStatus(st)
		n := byKey[v.Key]
		frac := 0.0
		if total > 0 {
			frac = float64(n) / float64(total)
		}
		label := lipgloss.NewStyle().Width(12).Render(v.Label)
		b.WriteString(fmt.Sprintf("%s %s %s\n", ToneStyle(v.Tone).Render(label), RenderCompactBar(frac, 20, true), fmt.Sprintf("%3d", n)))
	}
	b.WriteString(Dim(fmt.Sprintf("%d projects", total)) + "\n")
	return b.String()
}

func userRoleLine(byRole map[domain.UserRole]int, total int) string {
	roles := make([]domain.UserRole, 0, len(byRole))
	for r := range byRole {
		roles = append(roles, r)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	parts := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		parts = append(parts, fmt.Sprintf("%s %d", RolePill(mapper.AdminUserRole(r)), byRole[r]))
	}
	parts = append(parts, Dim(fmt.Sprintf("%d total", total)))
	return strings.Join(parts, Dim("  ·  "))
}
