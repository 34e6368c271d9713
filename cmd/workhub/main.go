package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/workhub/internal/api"
	"github.com/alexanderramin/workhub/internal/cli"
	"github.com/alexanderramin/workhub/internal/config"
	"github.com/alexanderramin/workhub/internal/db"
	"github.com/alexanderramin/workhub/internal/logging"
	"github.com/alexanderramin/workhub/internal/repository"
	"github.com/alexanderramin/workhub/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.LoadOptions{})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.Init(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	var (
		repos    repository.Repos
		database *sql.DB
	)
	switch cfg.Backend {
	case config.BackendLocal:
		database, err = db.OpenDB(cfg.Local.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		repos = repository.NewSQLiteRepos(database)
	default:
		var observer api.CallObserver = api.NoopObserver{}
		if cfg.API.LogCalls {
			observer = api.NewLogObserver(logger)
		}
		repos = api.NewFromConfig(cfg.API, observer).Repos()
	}
	logger.Debug("backend selected", slog.String("backend", string(cfg.Backend)))

	app := cli.NewApp(service.New(repos, service.NewLogUseCaseObserver(logger)))
	app.PageSize = cfg.PageSize
	app.Logger = logger
	if database != nil {
		app.Seed = func(ctx context.Context) (bool, error) {
			return repository.Seed(ctx, database)
		}
	}

	// Detect interactive terminal for the dashboard-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
