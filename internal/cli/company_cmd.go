package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
)

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Manage client companies",
	}

	cmd.AddCommand(
		newCompanyListCmd(app),
		newCompanyCreateCmd(app),
	)

	return cmd
}

func newCompanyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies",
		RunE: func(cmd *cobra.Command, args []string) error {
			companies, err := app.Companies.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing companies: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCompanyList(companies))
			return nil
		},
	}
}

func newCompanyCreateCmd(app *App) *cobra.Command {
	var (
		form        service.CreateCompanyForm
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a company",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				err := companyForm(&form).
					WithInput(cmd.InOrStdin()).
					WithOutput(cmd.OutOrStdout()).
					RunWithContext(cmd.Context())
				if errors.Is(err, huh.ErrUserAborted) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
				if err != nil {
					return err
				}
			}

			c, err := app.Companies.Create(cmd.Context(), &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created company #%d %s\n", c.ID, c.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the form interactively")
	cmd.Flags().StringVar(&form.Name, "name", "", "Company name")
	cmd.Flags().StringVar(&form.BusinessNumber, "business-number", "", "Business registration number")
	cmd.Flags().StringVar(&form.CEOName, "ceo", "", "CEO name")
	cmd.Flags().StringVar(&form.Address, "address", "", "Postal address")
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Email, "email", "", "Contact email")
	cmd.Flags().Var(newEnumValue(&form.Status, companyStatusNames()...), "status", "ACTIVE, INACTIVE or SUSPENDED")

	return cmd
}
