package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
)

var nodeHeaders = []string{"#", "STEP", "STATUS", "CONFIRM", "DEADLINE"}

// FormatNodeTable renders a project's steps as a plain table.
func FormatNodeTable(nodes []domain.Node, now time.Time) string {
	if len(nodes) == 0 {
		return Dim("No steps yet")
	}
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		status := mapper.NodeStatus(n.Status)
		rows[i] = []string{
			Dim(fmt.Sprint(n.NodeOrder)),
			Truncate(n.Title, 40),
			StatusPill(status),
			ConfirmPill(mapper.ConfirmStatus(n.ConfirmStatus)),
			DeadlineFrom(n.Deadline, now, status.Key == "completed"),
		}
	}
	return RenderTable(nodeHeaders, rows)
}
