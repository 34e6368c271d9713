package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Projects  service.ProjectService
	Nodes     service.NodeService
	Users     service.UserService
	Companies service.CompanyService
	History   service.HistoryService
	Dashboard *service.DashboardService

	// Seed loads demo data into the local backend. Nil on the remote backend.
	Seed func(ctx context.Context) (bool, error)

	// PageSize is the default --size of list commands.
	PageSize int

	// IsInteractive reports whether stdin is a terminal. When it does, the
	// bare root command opens the dashboard.
	IsInteractive func() bool

	Logger *slog.Logger
	Now    func() time.Time
}

// NewApp exposes svcs to the CLI with default settings.
func NewApp(svcs *service.Services) *App {
	return &App{
		Projects:  svcs.Projects,
		Nodes:     svcs.Nodes,
		Users:     svcs.Users,
		Companies: svcs.Companies,
		History:   svcs.History,
		Dashboard: svcs.Dashboard,
		PageSize:  10,
	}
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// spin shows a spinner on w while a full fetch runs. Off a terminal it
// does nothing.
func (a *App) spin(w io.Writer, message string) func() {
	if a.IsInteractive == nil || !a.IsInteractive() {
		return func() {}
	}
	return formatter.StartSpinner(w, message)
}

func (a *App) pageSize() int {
	if a.PageSize > 0 {
		return a.PageSize
	}
	return 10
}

// NewRootCmd creates the top-level "workhub" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "workhub",
		Short:         "WorkHub project dashboard client",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newProjectCmd(app),
		newNodeCmd(app),
		newUserCmd(app),
		newCompanyCmd(app),
		newHistoryCmd(app),
		newSeedCmd(app),
		newDashboardCmd(app),
	)

	return root
}
