package formatter

import (
	"fmt"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

var companyHeaders = []string{"ID", "NAME", "BUSINESS NO.", "CEO", "STATUS", "EMAIL"}

// FormatCompanyList renders companies in a box.
func FormatCompanyList(companies []domain.Company) string {
	if len(companies) == 0 {
		return RenderBox("Companies", Dim("No companies"))
	}
	rows := make([][]string, len(companies))
	for i, c := range companies {
		rows[i] = []string{
			Dim(fmt.Sprintf("#%d", c.ID)),
			Bold(c.Name),
			OrDash(c.BusinessNumber),
			OrDash(c.CEOName),
			CompanyPill(mapper.CompanyStatusLabel(c.Status)),
			OrDash(c.Email),
		}
	}
	return RenderBox("Companies", RenderTable(companyHeaders, rows))
}

var companySummaryHeaders = []string{"COMPANY", "STATUS", "PROJECTS", "ACTIVE", "MEMBERS"}

// CompanySummaryTable renders the dashboard's per-company table.
func CompanySummaryTable(summaries []service.CompanySummary) string {
	if len(summaries) == 0 {
		return Dim("No companies")
	}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			Bold(s.Company.Name),
			CompanyPill(s.StatusLabel),
			fmt.Sprint(s.ProjectCount),
			fmt.Sprint(s.ByStatus["inProgress"]),
			fmt.Sprint(s.Members),
		}
	}
	return RenderTable(companySummaryHeaders, rows)
}
