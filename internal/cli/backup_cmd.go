package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/glidepath/internal/cli/formatter"
	"github.com/alexanderramin/glidepath/internal/domain"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the active program to a JSON file (- for stdout)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireProgram(app); err != nil {
				return err
			}
			if args[0] == "-" {
				return app.Backups.Export(cmd.OutOrStdout())
			}
			if err := app.Backups.ExportFile(args[0]); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Exported to %s", args[0])
			return nil
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the active program with one from a JSON file (- for stdin)",
		Long: "Replace the active program with one from a JSON file.\n" +
			"The current program is backed up first.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			p, err := app.Backups.Import(cmd.Context(), in)
			return reportReplaced(cmd, app, p, err, "Imported")
		},
	}
}

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage dated backups",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List backups, newest first",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				backups, err := app.Backups.ListBackups()
				if err != nil {
					return err
				}
				if len(backups) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No backups found.")
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBackupList(backups))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create",
			Short: "Back up the active program",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireProgram(app); err != nil {
					return err
				}
				info, err := app.Backups.CreateBackup()
				if err != nil {
					return err
				}
				success(cmd.OutOrStdout(), "Created backup %s", info.Name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "restore NAME",
			Short: "Replace the active program with a backup",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := app.Backups.Restore(cmd.Context(), args[0])
				return reportReplaced(cmd, app, p, err, "Restored")
			},
		},
	)

	return cmd
}

// reportReplaced prints the outcome of an import or restore. A program is
// returned even when it could not be stored.
func reportReplaced(cmd *cobra.Command, app *App, p *domain.Program, err error, verb string) error {
	if p == nil {
		return err
	}
	out := cmd.OutOrStdout()
	success(out, "%s a %d week program (%.1f kg → %.1f kg)", verb, p.TotalWeeks, p.StartWeight, p.TargetWeight)
	if perr := printPlan(out, app); perr != nil {
		return perr
	}
	return warnNotPersisted(cmd.ErrOrStderr(), err)
}
