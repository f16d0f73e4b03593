package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "entry",
		Short: "Record weeks on an interactive screen with live feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			if !app.interactive() {
				return errors.New("entry needs a terminal; use `glidepath log WEEK WEIGHT` instead")
			}
			prog := tea.NewProgram(newEntryModel(cmd.Context(), app.Plan),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
			_, err := prog.Run()
			return err
		},
	}
}
