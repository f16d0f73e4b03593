package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/domain"
)

// glidepathHuhTheme returns a huh theme using the formatter palette.
func glidepathHuhTheme() *huh.Theme {
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
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// programValues holds the raw text bound to the start wizard.
type programValues struct {
	start  string
	target string
	weeks  string
}

// validateWeightText accepts what domain.ParseWeight accepts within the
// allowed range.
func validateWeightText(s string) error {
	kg, err := domain.ParseWeight(s)
	if err != nil {
		return err
	}
	if !domain.InWeightRange(kg) {
		return fmt.Errorf("enter a weight between %.0f and %.0f kg", domain.MinWeightKg, domain.MaxWeightKg)
	}
	return nil
}

func weekOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.AllowedProgramWeeks))
	for _, n := range domain.AllowedProgramWeeks {
		label := fmt.Sprintf("%d weeks", n)
		if n == 1 {
			label = "1 week"
		}
		opts = append(opts, huh.NewOption(label, strconv.Itoa(n)))
	}
	return opts
}

// wizardStartProgram asks for start weight, goal weight and duration. The
// whole program is validated before the form completes.
func wizardStartProgram(v *programValues) *huh.Form {
	if v.weeks == "" {
		v.weeks = "12"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Current weight (kg)").
				Placeholder("85.0").
				Value(&v.start).
				Validate(validateWeightText),
			huh.NewInput().
				Title("Goal weight (kg)").
				Placeholder("78.0").
				Value(&v.target).
				Validate(validateWeightText),
			huh.NewSelect[string]().
				Title("Duration").
				Options(weekOptions()...).
				Value(&v.weeks).
				Validate(func(string) error {
					_, _, _, err := domain.ParseProgramInput(v.start, v.target, v.weeks)
					return err
				}),
		),
	).WithTheme(glidepathHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(glidepathHuhTheme()).WithShowHelp(false)
}
