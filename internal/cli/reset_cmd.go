package cli

import "github.com/spf13/cobra"

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the active program and all recorded weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			if err := confirmDestructive(cmd, app, yes, "Delete the active program and every recorded week?"); err != nil {
				return err
			}
			if err := app.Plan.ResetProgram(cmd.Context()); err != nil {
				return warnNotPersisted(cmd.ErrOrStderr(), err)
			}
			success(cmd.OutOrStdout(), "Program deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
