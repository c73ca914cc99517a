package batch

import (
	"bytes"
	"context"
	"fmt"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/lingo/pkg/codec"
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/logging"
	"github.com/agentstation/lingo/pkg/reconciler"
	"github.com/agentstation/lingo/pkg/storage"
)

// Runner executes plans against a storage.
type Runner struct {
	storage storage.Storage
	options *Options
}

// NewRunner creates a Runner over s.
func NewRunner(s storage.Storage, opts ...Option) (*Runner, error) {
	if s == nil {
		return nil, &errors.ValidationError{Field: "storage", Message: "cannot be nil"}
	}
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if options.Reconciler == nil {
		r, err := reconciler.New()
		if err != nil {
			return nil, err
		}
		options.Reconciler = r
	}
	return &Runner{storage: s, options: options}, nil
}

// Run executes plan. The stages run strictly in order: every file is read
// before anything is reconciled, and every target is renamed to its backup
// before any new content is written. The first failure ends the batch:
//
//   - a *errors.ReadError means nothing was touched;
//   - a *errors.RenameError means no new content was written, though other
//     targets may already have been moved to their backups;
//   - a *errors.WriteError means backups are in place but some targets may
//     be missing. Nothing is rolled back.
func (r *Runner) Run(ctx context.Context, plan Plan) (*Report, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: Validate the plan upfront
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if r.options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
	} else {
		cancel = func() {} // No-op cancel if no timeout
	}
	defer cancel()

	logger := r.logger(ctx)
	ctx = logging.WithLogger(ctx, logger)
	report := &Report{
		Reference: plan.Reference,
		DryRun:    r.options.DryRun,
		StartedAt: utc.Now(),
	}

	// Step 3: Read and decode the reference and every target
	reference, targets, err := r.load(logging.WithStage(ctx, "read"), plan)
	if err != nil {
		return nil, err
	}

	// Step 4: Reconcile and encode every target
	records, err := r.reconcile(logging.WithStage(ctx, "reconcile"), reference, plan.Targets, targets)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		report.Targets = append(report.Targets, newTargetReport(rec))
	}

	// Step 5: Stop before touching any file on a dry run
	if r.options.DryRun {
		report.FinishedAt = utc.Now()
		logger.Info().Bool("dry_run", true).Int("targets", len(records)).Msg("Dry run completed - no files changed")
		return report, nil
	}

	// Step 6: Move every target to its backup
	if err := r.backup(logging.WithStage(ctx, "rename"), records); err != nil {
		return nil, err
	}

	// Step 7: Write the reconciled content
	if err := r.write(logging.WithStage(ctx, "write"), records); err != nil {
		return nil, err
	}
	for i := range report.Targets {
		report.Targets[i].Written = true
	}

	report.FinishedAt = utc.Now()
	totals := report.Totals()
	logger.Info().
		Int("targets", len(records)).
		Int("changed", report.ChangedCount()).
		Int("fell_back", totals.FellBack).
		Dur("duration", report.Duration()).
		Msg("Batch completed")

	return report, nil
}

func (r *Runner) logger(ctx context.Context) *zerolog.Logger {
	if r.options.Logger != nil {
		return r.options.Logger
	}
	return logging.FromContext(ctx)
}

// load reads and decodes the reference and the targets concurrently.
func (r *Runner) load(ctx context.Context, plan Plan) (*document, []*document, error) {
	paths := make([]string, 0, len(plan.Targets)+1)
	paths = append(paths, plan.Reference)
	for _, t := range plan.Targets {
		paths = append(paths, t.Path)
	}

	docs := make([]*document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Concurrency)
	for i, path := range paths {
		g.Go(func() error {
			doc, err := r.read(gctx, path)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logging.FromContext(ctx).Debug().Int("files", len(docs)).Msg("Loaded documents")
	return docs[0], docs[1:], nil
}

func (r *Runner) read(ctx context.Context, path string) (*document, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}
	data, err := r.storage.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}
	n, err := c.Decode(data)
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return nil, errors.NewReadError(path, err)
	}
	return &document{path: path, format: c.Format(), raw: data, tree: n}, nil
}

// reconcile builds one record per target, in plan order.
func (r *Runner) reconcile(ctx context.Context, reference *document, targets []Target, docs []*document) ([]Record, error) {
	records := make([]Record, len(targets))
	for i, t := range targets {
		tctx := logging.WithLanguage(logging.WithTarget(ctx, t.Path), t.Language)

		res, err := r.options.Reconciler.Tree(tctx, docs[i].tree, reference.tree)
		if err != nil {
			return nil, fmt.Errorf("reconciling %s: %w", t.Path, err)
		}

		c, err := codec.ForFormat(docs[i].format)
		if err != nil {
			return nil, err
		}
		content, err := c.Encode(res.Tree)
		if err != nil {
			return nil, errors.WrapParse(c.Format().String(), t.Path, err)
		}

		records[i] = Record{
			Target:  t,
			Format:  c.Format(),
			Content: content,
			Result:  res,
			Changed: !bytes.Equal(content, docs[i].raw),
		}

		logging.FromContext(tctx).Debug().
			Int("translated", res.Stats.Translated).
			Int("fell_back", res.Stats.FellBack).
			Bool("changed", records[i].Changed).
			Msg("Reconciled target")

		if r.options.Observer != nil {
			r.options.Observer.OnReconciled(records[i])
		}
	}
	return records, nil
}

// backup renames every target to its backup path. Every rename is attempted
// even after one fails; the first failure is returned.
func (r *Runner) backup(ctx context.Context, records []Record) error {
	var g errgroup.Group
	g.SetLimit(r.options.Concurrency)
	for _, rec := range records {
		g.Go(func() error {
			if err := r.storage.Rename(ctx, rec.Target.Path, rec.Target.Backup); err != nil {
				logging.FromContext(ctx).Debug().Err(err).Str("target", rec.Target.Path).Msg("Backup failed")
				return errors.NewRenameError(rec.Target.Path, rec.Target.Backup, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Int("files", len(records)).Msg("Backed up targets")
	return nil
}

// write writes every record's content. Every write is attempted even after
// one fails; the first failure is returned.
func (r *Runner) write(ctx context.Context, records []Record) error {
	var g errgroup.Group
	g.SetLimit(r.options.Concurrency)
	for _, rec := range records {
		g.Go(func() error {
			if err := r.storage.WriteFile(ctx, rec.Target.Path, rec.Content); err != nil {
				return errors.NewWriteError(rec.Target.Path, err)
			}
			if r.options.Observer != nil {
				r.options.Observer.OnWritten(rec)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().Int("files", len(records)).Msg("Wrote targets")
	return nil
}
