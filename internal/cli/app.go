package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/domain"
	"github.com/alexanderramin/glidepath/internal/service"
)

var errCancelled = errors.New("cancelled")

// App holds the services used by CLI commands.
type App struct {
	Plan    *service.PlanController
	Backups *service.BackupService

	// IsInteractive reports whether stdin is a terminal. Wizards and the
	// entry screen only run when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "glidepath" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "glidepath",
		Short:         "Weekly weight goal planner and tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Plan.State() == domain.StateNoProgram {
				fmt.Fprintln(cmd.OutOrStdout(), noProgramHint)
				return nil
			}
			return printPlan(cmd.OutOrStdout(), app)
		},
	}
	AddGlobalFlags(root.PersistentFlags(), new(string))

	root.AddCommand(
		newStartCmd(app),
		newPlanCmd(app),
		newLogCmd(app),
		newEntryCmd(app),
		newStatsCmd(app),
		newTrendCmd(app),
		newResetCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newBackupCmd(app),
	)
	return root
}

// AddGlobalFlags registers flags that main reads before the command tree
// is built.
func AddGlobalFlags(fs *pflag.FlagSet, configPath *string) {
	if fs.Lookup("config") == nil {
		fs.StringVar(configPath, "config", "", "path to the TOML config file")
	}
}

const noProgramHint = "No active program. Run `glidepath start` to create one."

func requireProgram(app *App) error {
	if app.Plan.State() == domain.StateNoProgram {
		return errors.New(noProgramHint)
	}
	return nil
}

func printPlan(w io.Writer, app *App) error {
	p := app.Plan.Program()
	if p == nil {
		return errors.New(noProgramHint)
	}
	fmt.Fprintln(w, formatter.FormatPlan(p, app.Plan.Weeks(), app.Plan.Summary().CurrentWeek))
	return nil
}

func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", formatter.StyleGreen.Render("✔"), fmt.Sprintf(format, args...))
}

// warnNotPersisted reports a state change that is in memory but could not
// be stored; the error is still returned to set the exit code.
func warnNotPersisted(w io.Writer, err error) error {
	if errors.Is(err, service.ErrNotPersisted) {
		fmt.Fprintf(w, "%s %s\n", formatter.StyleYellow.Render("!"), "changes could not be saved")
	}
	return err
}
