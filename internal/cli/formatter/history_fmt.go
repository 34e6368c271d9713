package formatter

import (
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/service"
)

var historyHeaders = []string{"WHEN", "EVENT", "PROJECT", "STEP", "BY", "MESSAGE"}

// FormatHistory renders one page of history rows inside a box.
func FormatHistory(rows []service.HistoryRow, page pagination.State) string {
	if len(rows) == 0 {
		return RenderBox("History", Dim("No activity"))
	}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		e := r.Event
		cells[i] = []string{
			Dim(HumanTimestamp(e.CreatedAt)),
			EventBadge(r.View),
			e.ProjectName,
			OrDash(e.NodeTitle),
			e.ActorName,
			Truncate(e.Message, 48),
		}
	}
	return RenderBox("History", RenderTable(historyHeaders, cells)+"\n"+PageLabel(page))
}
