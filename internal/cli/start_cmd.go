package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glidepath/internal/domain"
)

func newStartCmd(app *App) *cobra.Command {
	var v programValues
	var yes bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Create a new program",
		Long: "Create a program from a start weight, a goal weight and a duration in weeks.\n" +
			"Without flags on a terminal an interactive form is shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if v.start == "" && v.target == "" && v.weeks == "" {
				if !app.interactive() {
					return errors.New("--start, --target and --weeks are required")
				}
				if err := wizardStartProgram(&v).Run(); err != nil {
					return err
				}
			}

			if app.Plan.State() == domain.StateActive {
				if err := confirmReplace(cmd, app, yes); err != nil {
					return err
				}
			}

			p, err := app.Plan.CreateProgramFromText(cmd.Context(), v.start, v.target, v.weeks)
			if p == nil {
				return err
			}
			success(out, "Created a %d week %s program: %.1f kg → %.1f kg",
				p.TotalWeeks, p.Direction(), p.StartWeight, p.TargetWeight)
			if perr := printPlan(out, app); perr != nil {
				return perr
			}
			return warnNotPersisted(cmd.ErrOrStderr(), err)
		},
	}

	cmd.Flags().StringVar(&v.start, "start", "", "Start weight in kg")
	cmd.Flags().StringVar(&v.target, "target", "", "Goal weight in kg")
	cmd.Flags().StringVar(&v.weeks, "weeks", "", "Program duration in weeks")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace an active program without asking")

	return cmd
}

func confirmReplace(cmd *cobra.Command, app *App, yes bool) error {
	const msg = "A program is already active. Replace it?"
	if yes || !app.interactive() {
		return confirmDestructive(cmd, app, yes, msg)
	}
	var ok bool
	if err := wizardConfirm(msg, &ok).Run(); err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}
