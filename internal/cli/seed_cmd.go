package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty local database with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Seed == nil {
				return fmt.Errorf("seed is only available with the local backend (WORKHUB_BACKEND=local)")
			}
			seeded, err := app.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seeding: %w", err)
			}
			if !seeded {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Database already has data; nothing seeded."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Demo data loaded."))
			return nil
		},
	}
}
