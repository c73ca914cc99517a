package sync

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/agentstation/lingo"
	"github.com/agentstation/lingo/internal/cmd/application"
	"github.com/agentstation/lingo/internal/cmd/hints"
	"github.com/agentstation/lingo/internal/config"
	"github.com/agentstation/lingo/pkg/batch"
	"github.com/agentstation/lingo/pkg/logging"
)

// ExecuteSync loads the plan, runs the batch and prints the report.
func ExecuteSync(ctx context.Context, app application.Application, flags *Flags, stdout, stderr io.Writer) error {
	logger := app.Logger()
	if app.NoColor() {
		color.NoColor = true
	}

	hintCtx := hints.Context{Command: "sync"}
	fail := func(err error) error {
		hintCtx.Err = err
		printHints(stderr, hintCtx)
		return err
	}

	// Step 1: Load settings from flags, environment and config file
	settings, err := config.Load(app.Viper())
	if err != nil {
		return fail(err)
	}
	hintCtx.DryRun = settings.DryRun
	hintCtx.Strict = settings.Strict

	logger.Debug().
		Str("reference", settings.Plan.Reference).
		Int("targets", len(settings.Plan.Targets)).
		Bool("dry_run", settings.DryRun).
		Bool("strict", settings.Strict).
		Msg("Sync plan loaded")

	// Step 2: Create a client for these settings
	client, err := app.Client(
		lingo.WithStrict(settings.Strict),
		lingo.WithConcurrency(settings.Concurrency),
	)
	if err != nil {
		return fail(err)
	}
	client.OnTargetReconciled(func(rec batch.Record) {
		logger.Debug().
			Str("target", rec.Target.Path).
			Str("stats", rec.Result.Stats.Summary()).
			Msg("Target reconciled")
	})

	// Step 3: Run the batch
	opts := []lingo.SyncOption{lingo.WithDryRun(settings.DryRun)}
	if flags != nil && flags.Timeout > 0 {
		opts = append(opts, lingo.WithTimeout(flags.Timeout))
	}
	report, err := client.Sync(logging.WithLogger(ctx, logger), settings.Plan, opts...)
	if err != nil {
		return fail(err)
	}

	// Step 4: Print the report
	if err := printReport(stdout, stderr, app.OutputFormat(), report); err != nil {
		return err
	}

	totals := report.Totals()
	hintCtx.Succeeded = true
	hintCtx.Changed = report.ChangedCount()
	hintCtx.FellBack = totals.FellBack
	hintCtx.Mismatches = totals.Mismatches
	printHints(stderr, hintCtx)
	return nil
}

func printHints(w io.Writer, ctx hints.Context) {
	for _, h := range hints.Default().GetHints(ctx) {
		fmt.Fprintf(w, "\n%s\n", h)
	}
}
