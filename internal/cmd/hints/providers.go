package hints

import (
	"github.com/agentstation/lingo/pkg/errors"
)

const syncCommand = "sync"

// RegisterLingoProviders registers all standard lingo hint providers.
func RegisterLingoProviders(registry *Registry) {
	registry.RegisterFunc("sync", syncHintProvider)
	registry.RegisterFunc("errors", errorRecoveryHintProvider)
}

// Default returns a registry with the standard providers registered.
func Default() *Registry {
	r := NewRegistry()
	RegisterLingoProviders(r)
	return r
}

// syncHintProvider suggests next steps after a successful sync.
func syncHintProvider(ctx Context) []*Hint {
	if ctx.Command != syncCommand || !ctx.Succeeded {
		return nil
	}

	var hints []*Hint

	if ctx.DryRun && ctx.Changed > 0 {
		hints = append(hints, NewCommand(
			"Apply these changes by running the same command without --dry-run",
			"lingo sync",
		).WithTags("next-step"))
	}

	if ctx.FellBack > 0 {
		hints = append(hints, New(
			"Keys that fell back still hold reference text and need translating",
		).WithTags("translation"))
	}

	if ctx.Mismatches > 0 && !ctx.Strict {
		hints = append(hints, NewCommand(
			"Nesting mismatches were replaced with reference values; fail on them instead with --strict",
			"lingo sync --strict --dry-run",
		).WithTags("mismatch"))
	}

	return hints
}

// errorRecoveryHintProvider explains the state files are left in after a
// failed batch.
func errorRecoveryHintProvider(ctx Context) []*Hint {
	if ctx.Succeeded || ctx.Err == nil {
		return nil
	}

	var configErr *errors.ConfigError
	switch {
	case errors.As(ctx.Err, &configErr):
		return []*Hint{NewCommand(
			"Name a reference and targets with flags, LINGO_ variables or a .lingo.yaml file",
			"lingo sync -r locales/en.json -l fr,de",
		).WithTags("setup")}
	case errors.IsReadFailure(ctx.Err):
		return []*Hint{New(
			"No file was changed; check that every path exists and holds valid JSON or YAML",
		).WithTags("troubleshooting")}
	case errors.IsShapeMismatch(ctx.Err):
		return []*Hint{NewCommand(
			"No file was changed; preview how the mismatches would fall back without --strict",
			"lingo sync --dry-run",
		).WithTags("troubleshooting", "mismatch")}
	case errors.IsRenameFailure(ctx.Err):
		return []*Hint{New(
			"No new content was written, but some targets may already be at their backup paths",
		).WithTags("recovery")}
	case errors.IsWriteFailure(ctx.Err):
		return []*Hint{New(
			"Targets that were not written still have their previous content at the backup path",
		).WithTags("recovery")}
	default:
		return nil
	}
}
