// Package export writes list views to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/mapper"
	"github.com/alexanderramin/workhub/internal/service"
)

const (
	HistorySheet  = "History"
	ProjectsSheet = "Projects"

	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var (
	historyHeader  = []string{"Time", "Project", "Step", "Event", "Actor", "Message"}
	projectsHeader = []string{"ID", "Name", "Company", "Status", "Start", "End", "Developers", "Clients"}
)

// WriteHistoryXLSX writes one row per history entry in the given order.
func WriteHistoryXLSX(w io.Writer, rows []service.HistoryRow) error {
	cells := make([][]any, len(rows))
	for i, r := range rows {
		e := r.Event
		cells[i] = []any{
			e.CreatedAt.Local().Format(dateTimeLayout),
			e.ProjectName,
			e.NodeTitle,
			r.View.Label,
			e.ActorName,
			e.Message,
		}
	}
	return writeSheet(w, HistorySheet, historyHeader, cells)
}

// WriteProjectsXLSX writes one row per project with its mapped status label.
func WriteProjectsXLSX(w io.Writer, projects []domain.Project) error {
	cells := make([][]any, len(projects))
	for i, p := range projects {
		end := ""
		if p.EndDate != nil {
			end = p.EndDate.Format(dateLayout)
		}
		cells[i] = []any{
			p.ID,
			p.Name,
			p.CompanyName,
			mapper.ProjectStatus(p.Status).Label,
			formatDate(p.StartDate),
			end,
			len(p.Developers),
			len(p.Clients),
		}
	}
	return writeSheet(w, ProjectsSheet, projectsHeader, cells)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func writeSheet(w io.Writer, sheet string, header []string, rows [][]any) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	headerCells := make([]any, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
