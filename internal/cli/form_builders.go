package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/workhub/internal/cli/formatter"
	"github.com/alexanderramin/workhub/internal/service"
)

// workhubHuhTheme returns a huh theme using the Gruvbox palette.
func workhubHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// companyFieldValidator checks one field of the company form using the same
// rules the service applies on submit.
func companyFieldValidator(field string, set func(*service.CreateCompanyForm, string)) func(string) error {
	return func(s string) error {
		var probe service.CreateCompanyForm
		set(&probe, s)
		return fieldError(probe.Validate(), field)
	}
}

// fieldError extracts the message for field from a *service.FormError.
func fieldError(err error, field string) error {
	var fe *service.FormError
	if !errors.As(err, &fe) {
		return nil
	}
	if msg, ok := fe.Fields[field]; ok {
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// companyForm builds the interactive company form bound to f.
func companyForm(f *service.CreateCompanyForm) *huh.Form {
	if f.Status == "" {
		f.Status = companyStatusNames()[0]
	}
	statusOpts := make([]huh.Option[string], 0, 3)
	for _, s := range companyStatusNames() {
		statusOpts = append(statusOpts, huh.NewOption(s, s))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company name").
				Value(&f.Name).
				Validate(companyFieldValidator("name", func(p *service.CreateCompanyForm, s string) { p.Name = s })),
			huh.NewInput().
				Title("Business number").
				Placeholder("123-45-67890").
				Value(&f.BusinessNumber).
				Validate(companyFieldValidator("businessNumber", func(p *service.CreateCompanyForm, s string) { p.BusinessNumber = s })),
			huh.NewInput().
				Title("CEO").
				Value(&f.CEOName),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&f.Email).
				Validate(companyFieldValidator("email", func(p *service.CreateCompanyForm, s string) { p.Email = s })),
			huh.NewInput().
				Title("Phone").
				Value(&f.Phone),
			huh.NewInput().
				Title("Address").
				Value(&f.Address),
			huh.NewSelect[string]().
				Title("Status").
				Options(statusOpts...).
				Value(&f.Status),
		),
	).WithTheme(workhubHuhTheme()).WithShowHelp(false)
}
