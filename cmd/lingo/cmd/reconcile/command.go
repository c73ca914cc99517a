// Package reconcile provides the reconcile command, which prints one
// reconciled document without touching any file.
package reconcile

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agentstation/lingo"
	"github.com/agentstation/lingo/internal/cmd/application"
	"github.com/agentstation/lingo/pkg/logging"
)

// NewCommand creates the reconcile command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		strict bool
		stats  bool
	)

	cmd := &cobra.Command{
		Use:     "reconcile <reference> <target>",
		GroupID: "core",
		Short:   "Print a target reconciled against a reference",
		Args:    cobra.ExactArgs(2),
		Long: `Reconcile reads a reference and a target file and prints the target
rebuilt in the reference's shape to stdout, in the target's format.

No file is renamed or written, so the output can be reviewed or redirected.`,
		Example: `  lingo reconcile locales/en.json locales/fr.json
  lingo reconcile en.yaml fr.yaml --stats > fr.new.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := logging.WithLogger(cmd.Context(), app.Logger())

			client, err := app.Client(lingo.WithStrict(strict))
			if err != nil {
				return err
			}

			rec, err := client.ReconcileFiles(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			if _, err := cmd.OutOrStdout().Write(rec.Content); err != nil {
				return err
			}

			if stats {
				line := rec.Result.Stats.Summary()
				if !rec.Changed {
					line += ", unchanged"
				}
				fmt.Fprintln(cmd.ErrOrStderr(), color.CyanString(line))
				for _, m := range rec.Result.Mismatches {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s %s\n", color.RedString("!"), m)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on keys where target and reference disagree about nesting")
	cmd.Flags().BoolVar(&stats, "stats", false, "print reconciliation statistics to stderr")

	return cmd
}
