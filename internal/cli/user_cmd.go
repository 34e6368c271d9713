package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/domain"
	"github.com/alexanderramin/workhub/internal/service"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Administer user accounts",
	}

	cmd.AddCommand(
		newUserListCmd(app),
		newUserShowCmd(app),
		newUserCreateCmd(app),
	)

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	var (
		pf    pageFlags
		query string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, optionally fuzzy-searched by name or email",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := service.UserQuery{Text: query, Role: domain.UserRole(role)}
			res, err := app.Users.List(cmd.Context(), q, pf.page, pf.size)
			if err != nil {
				return fmt.Errorf("listing users: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(res.Items, res.Page))
			return nil
		},
	}

	pf.register(cmd.Flags(), app.pageSize())
	cmd.Flags().StringVarP(&query, "query", "q", "", "Fuzzy search text")
	cmd.Flags().Var(newEnumValue(&role, userRoleNames()...), "role", "Only users with this role")

	return cmd
}

func newUserShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			u, err := app.Users.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserDetail(u))
			return nil
		},
	}
}

func newUserCreateCmd(app *App) *cobra.Command {
	form := service.CreateUserForm{Role: string(domain.RoleDeveloper)}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Users.Create(cmd.Context(), &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user #%d %s <%s>\n", u.ID, u.Name, u.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Password, "password", "", "Initial password (min 8 characters)")
	cmd.Flags().StringVar(&form.PasswordConfirm, "password-confirm", "", "Repeat the password")
	cmd.Flags().StringVar(&form.Role, "role", form.Role, "ADMIN, DEVELOPER or CLIENT")
	cmd.Flags().Int64Var(&form.CompanyID, "company", 0, "Company ID for client users")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("password-confirm")

	return cmd
}
