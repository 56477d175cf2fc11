package cli

import (
	"strings"

	"github.com/alexanderramin/roadmap/internal/cli/formatter"
	"github.com/alexanderramin/roadmap/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// roadmapHuhTheme returns a huh theme matching the formatter palette.
func roadmapHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// statusForm asks for a status, preselecting current.
func statusForm(day int, current domain.Status, value *domain.Status) *huh.Form {
	*value = current
	opts := make([]huh.Option[domain.Status], 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		opts = append(opts, huh.NewOption(string(s), s))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[domain.Status]().
				Title(formatter.DayLabel(day) + " status").
				Options(opts...).
				Value(value),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}

// credentialForm collects an API key without echoing it.
func credentialForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				Description("Stored in the local roadmap database.").
				EchoMode(huh.EchoModePassword).
				Value(value).
				Validate(validateNonBlank),
		),
	).WithTheme(roadmapHuhTheme()).WithShowHelp(false)
}

func validateNonBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return errBlankInput
	}
	return nil
}
