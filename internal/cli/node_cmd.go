package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
)

func newNodeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Manage the workflow steps of a project",
	}

	cmd.AddCommand(
		newNodeListCmd(app),
		newNodeAddCmd(app),
		newNodeMoveCmd(app),
	)

	return cmd
}

func newNodeListCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List steps in workflow order",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := app.Nodes.List(cmd.Context(), projectID)
			if err != nil {
				return fmt.Errorf("listing steps: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNodeTable(nodes, app.now()))
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newNodeAddCmd(app *App) *cobra.Command {
	var (
		form     service.CreateNodeForm
		deadline *time.Time
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a step to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Deadline = deadline
			n, err := app.Nodes.Add(cmd.Context(), &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added step %d. %s\n", n.NodeOrder, n.Title)
			return nil
		},
	}

	cmd.Flags().Int64Var(&form.ProjectID, "project", 0, "Project ID")
	cmd.Flags().StringVar(&form.Title, "title", "", "Step title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Step description")
	cmd.Flags().Var(newDateValue(&deadline), "deadline", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newNodeMoveCmd(app *App) *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move a step to a new position (1-based) and save the order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}

			res, err := app.Nodes.Move(cmd.Context(), projectID, from, to)
			if res != nil {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNodeTable(res.Nodes, app.now()))
			}
			if err != nil {
				if res != nil && res.Sync.Reconciled {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Order reloaded from the server."))
				}
				return err
			}

			if !res.Sent {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Order unchanged."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Order saved."))
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "Project ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}
