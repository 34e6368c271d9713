package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/export"
	"github.com/alexanderramin/workhub/internal/pagination"
	"github.com/alexanderramin/workhub/internal/service"
)

func newHistoryCmd(app *App) *cobra.Command {
	var (
		pf         pageFlags
		filter     service.HistoryFilter
		types      []string
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the activity log, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range types {
				filter.Types = append(filter.Types, domain.HistoryEventType(t))
			}
			stop := app.spin(cmd.ErrOrStderr(), "Fetching history...")
			rows, err := app.History.List(cmd.Context(), filter)
			stop()
			if err != nil {
				return err
			}

			if exportPath != "" {
				if err := exportHistory(exportPath, rows); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d events to %s\n", len(rows), exportPath)
				return nil
			}

			st := pagination.New(len(rows), pf.size)
			st.SetPage(pf.page)
			page := pagination.Paginate(rows, st.Page(), st.PageSize())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHistory(page, st))
			return nil
		},
	}

	pf.register(cmd.Flags(), app.pageSize())
	cmd.Flags().Int64Var(&filter.ProjectID, "project", 0, "Only events of this project")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Event types to keep (repeatable)")
	cmd.Flags().StringVar(&filter.ActorQuery, "actor", "", "Actor name contains")
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Message, step or project contains")
	cmd.Flags().Var(newDateValue(&filter.From), "from", "Earliest day (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&filter.To), "to", "Latest day, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write every matching event to an XLSX file")

	return cmd
}

func exportHistory(path string, rows []service.HistoryRow) error {
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	if err := export.WriteHistoryXLSX(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
