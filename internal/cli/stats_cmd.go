package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/plan"
)

type statsJSON struct {
	Summary      plan.Summary       `json:"summary"`
	Achievements []plan.Achievement `json:"achievements"`
}

func newStatsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show progress, motivation score and achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			summary := app.Plan.Summary()
			achievements := app.Plan.Achievements()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(statsJSON{Summary: summary, Achievements: achievements})
			}
			fmt.Fprint(out, formatter.FormatStats(app.Plan.Program(), summary, achievements))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the summary as JSON")

	return cmd
}

func newTrendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Compare the last weeks with the planned pace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrend(app.Plan.Trend()))
			return nil
		},
	}
}
