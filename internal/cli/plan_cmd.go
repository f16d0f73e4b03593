package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/service"
)

func newPlanCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the weekly glide path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			return printPlan(cmd.OutOrStdout(), app)
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:   "log WEEK WEIGHT",
		Short: "Record the weight measured in a week",
		Example: "  glidepath log 3 84.6\n" +
			"  glidepath log 3 84,2 --edit",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			week, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid week %q: %w", args[0], err)
			}
			out := cmd.OutOrStdout()

			if edit {
				if err := app.Plan.BeginEdit(week); err != nil {
					return err
				}
				defer app.Plan.CancelEdit(week)
			}
			feedback, err := app.Plan.SetPendingWeight(week, args[1])
			if err != nil {
				return err
			}
			if !feedback.Blocking() {
				if line := formatter.FormatFeedback(feedback); line != "" {
					fmt.Fprintln(out, line)
				}
			}

			entry, err := app.Plan.CommitWeek(cmd.Context(), week)
			if errors.Is(err, service.ErrWeekAlreadyRecorded) {
				return fmt.Errorf("%w; pass --edit to overwrite it", err)
			}
			if entry.Week == 0 {
				return err
			}
			p := app.Plan.Program()
			fmt.Fprintln(out, formatter.FormatWeekResult(entry, p.Direction()))
			return warnNotPersisted(cmd.ErrOrStderr(), err)
		},
	}

	cmd.Flags().BoolVar(&edit, "edit", false, "Overwrite a week that is already recorded")

	return cmd
}
