package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/service"
)

var UserHeaders = []string{"ID", "NAME", "EMAIL", "ROLE", "COMPANY", "JOINED"}

// UserRows builds table rows for admin users.
func UserRows(users []service.AdminUserRow) [][]string {
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{
			Dim(fmt.Sprintf("#%d", u.ID)),
			Bold(u.Name),
			u.Email,
			RolePill(u.RoleView),
			OrDash(u.CompanyName),
			HumanDate(u.CreatedAt),
		}
	}
	return rows
}

// FormatUserList renders one page of users inside a box.
func FormatUserList(users []service.AdminUserRow, page pagination.State) string {
	if len(users) == 0 {
		return RenderBox("Users", Dim("No users match"))
	}
	return RenderBox("Users", RenderTable(UserHeaders, UserRows(users))+"\n"+PageLabel(page))
}

// FormatUserDetail renders a single user card.
func FormatUserDetail(u *service.AdminUserRow) string {
	var b strings.Builder
	b.WriteString(StyleBold.Render(u.Name) + "  " + RolePill(u.RoleView) + "\n\n")
	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render(fmt.Sprintf("%-7s", label)), value))
	}
	field("ID", fmt.Sprintf("#%d", u.ID))
	field("EMAIL", u.Email)
	field("PHONE", OrDash(u.Phone))
	field("COMPANY", OrDash(u.CompanyName))
	field("JOINED", HumanDate(u.CreatedAt))
	return RenderBox("", lipgloss.NewStyle().Width(50).Render(strings.TrimRight(b.String(), "\n")))
}
