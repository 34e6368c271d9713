package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/export"
	"github.com/alexanderramin/workhub/internal/service"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Browse and create projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectMineCmd(app),
		newProjectCreateCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var (
		pf         pageFlags
		status     string
		exportPath string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := func() {}
			if exportPath != "" {
				stop = app.spin(cmd.ErrOrStderr(), "Fetching projects...")
			}
			res, err := app.Projects.List(ctx, service.ProjectQuery{
				Page:   pf.page,
				Size:   pf.size,
				Status: domain.ProjectStatus(status),
			})
			stop()
			if err != nil {
				return fmt.Errorf("listing projects: %w", err)
			}

			if exportPath != "" {
				if err := exportProjects(exportPath, res.Matched); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(res.Matched), exportPath)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList("Projects", res.Items, res.Page))
			return nil
		},
	}

	pf.register(cmd.Flags(), app.pageSize())
	cmd.Flags().Var(newEnumValue(&status, projectStatusNames()...), "status", "Only projects with this status")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write every matching project to an XLSX file")

	return cmd
}

func exportProjects(path string, projects []domain.Project) error {
	f, err := createExportFile(path)
	if err != nil {
		return err
	}
	if err := export.WriteProjectsXLSX(f, projects); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a project with its workflow steps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("project", args[0])
			if err != nil {
				return err
			}
			sum, err := app.Projects.Summary(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectDetail(sum, 100))
			return nil
		},
	}
}

func newProjectMineCmd(app *App) *cobra.Command {
	var (
		pf     pageFlags
		userID int64
	)

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List projects a developer is assigned to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return fmt.Errorf("--user must be a positive user ID")
			}
			res, err := app.Projects.Mine(cmd.Context(), userID, pf.page, pf.size)
			if err != nil {
				return fmt.Errorf("listing projects of user %d: %w", userID, err)
			}
			title := fmt.Sprintf("Projects of user %d", userID)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(title, res.Items, res.Page))
			return nil
		},
	}

	pf.register(cmd.Flags(), app.pageSize())
	cmd.Flags().Int64Var(&userID, "user", 0, "Developer user ID")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var (
		form       service.CreateProjectForm
		start, end *time.Time
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != nil {
				form.StartDate = *start
			}
			form.EndDate = end
			p, err := app.Projects.Create(cmd.Context(), &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %s\n", p.DisplayID(), p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Project name")
	cmd.Flags().StringVar(&form.Description, "description", "", "Markdown description")
	cmd.Flags().Int64Var(&form.CompanyID, "company", 0, "Client company ID")
	cmd.Flags().Var(newEnumValue(&form.Status, projectStatusNames()...), "status", "Initial status (default CONTRACT)")
	cmd.Flags().Var(newDateValue(&start), "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(newDateValue(&end), "end", "End date (YYYY-MM-DD)")
	cmd.Flags().Int64SliceVar(&form.DeveloperIDs, "developer", nil, "Developer user IDs")
	cmd.Flags().Int64SliceVar(&form.ClientIDs, "client", nil, "Client user IDs")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}
