package sync

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/lingo/internal/config"
	"github.com/agentstation/lingo/pkg/constants"
)

// Flags holds the sync flags that are not plan settings. Plan settings are
// bound to viper so a .lingo.yaml file or LINGO_ variables can supply them.
type Flags struct {
	Timeout time.Duration
}

// addSyncFlags adds sync-specific flags to the command and binds the plan
// flags to v.
func addSyncFlags(cmd *cobra.Command, v *viper.Viper) *Flags {
	flags := &Flags{}

	cmd.Flags().StringP("reference", "r", "", "reference file every target is reconciled against")
	cmd.Flags().StringSliceP("target", "t", nil, "target file as path or path:backup (repeatable)")
	cmd.Flags().StringSliceP("languages", "l", nil, "language codes resolved to <dir>/<lang>.<ext>, e.g. fr,de,pt-BR")
	cmd.Flags().String("dir", "", "locale directory for --languages (default: the reference's directory)")
	cmd.Flags().String("locale-format", "", "file format for --languages targets: json or yaml (default: the reference's)")
	cmd.Flags().String("backup-suffix", constants.DefaultBackupSuffix, "suffix added to a target's name to form its backup path")
	cmd.Flags().Bool("dry-run", false, "reconcile and report without renaming or writing files")
	cmd.Flags().Bool("strict", false, "fail on keys where target and reference disagree about nesting")
	cmd.Flags().Int("concurrency", constants.DefaultConcurrency, "number of files handled at once")
	cmd.Flags().DurationVar(&flags.Timeout, "timeout", constants.CommandTimeout, "timeout for the whole batch")

	bind(v, config.KeyReference, cmd, "reference")
	bind(v, config.KeyTarget, cmd, "target")
	bind(v, config.KeyLanguages, cmd, "languages")
	bind(v, config.KeyDir, cmd, "dir")
	bind(v, config.KeyFormat, cmd, "locale-format")
	bind(v, config.KeyBackupSuffix, cmd, "backup-suffix")
	bind(v, config.KeyDryRun, cmd, "dry-run")
	bind(v, config.KeyStrict, cmd, "strict")
	bind(v, config.KeyConcurrency, cmd, "concurrency")

	return flags
}

func bind(v *viper.Viper, key string, cmd *cobra.Command, flag string) {
	if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic("programming error: failed to bind flag " + flag + ": " + err.Error())
	}
}
