// Package sync provides the sync command implementation.
package sync

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/lingo/internal/cmd/application"
)

// NewCommand creates the sync command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Reconcile translation files against the reference",
		Args:    cobra.NoArgs,
		Long: `Sync rebuilds every target file in the shape of the reference file.

For each target the command will:
  1. Read the reference and every target (nothing is touched if one fails)
  2. Keep translated values, fill missing or empty ones from the reference
     and drop keys the reference does not have
  3. Rename the target to its backup path (fr.json -> fr_old.json)
  4. Write the reconciled content to the target path

Targets can be given as paths (--target), as language codes resolved
against a locale directory (--languages), or as a targets list in
.lingo.yaml. Every flag can also be set through LINGO_ environment
variables, for example LINGO_REFERENCE=locales/en.json.`,
		Example: `  lingo sync -r locales/en.json -l fr,de,es     # locales/fr.json, locales/de.json, ...
  lingo sync -r en.yaml -t fr.yaml -t de.yaml     # explicit targets
  lingo sync -r en.json -t fr.json:backup/fr.json # explicit backup path
  lingo sync --dry-run -o json                    # preview as JSON
  lingo sync --strict                             # fail on nesting mismatches`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ExecuteSync(cmd.Context(), app, flags, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags = addSyncFlags(cmd, app.Viper())

	return cmd
}
