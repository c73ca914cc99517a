// Package reconciler rebuilds localized document trees in the shape of a
// reference tree.
//
// The reference decides which keys exist and in which order. Each reference
// leaf takes the target's value when the target has a truthy leaf at the
// same path, and otherwise keeps the reference's own value. Keys that only
// the target has are dropped.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/logging"
	"github.com/agentstation/lingo/pkg/tree"
)

// Reconciler reconciles target trees against a reference tree.
type Reconciler interface {
	// Tree reconciles an already parsed target against the reference.
	Tree(ctx context.Context, target, reference *tree.Node) (*Result, error)

	// Value converts a raw nested structure with tree.FromValue and
	// reconciles it against the reference.
	Value(ctx context.Context, target any, reference *tree.Node) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	strict bool
	logger *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &reconciler{
		strict: options.strict,
		logger: options.logger,
	}, nil
}

// Reconcile returns target rebuilt in the shape of reference using the
// default fallback policy. Neither input is modified and the result shares
// no nodes with them.
func Reconcile(target, reference *tree.Node) *tree.Node {
	w := &walker{result: &Result{}}
	// Errors only come from strict mode.
	out, _ := w.value(target, reference, "")
	return out
}

// Tree implements Reconciler.
func (r *reconciler) Tree(ctx context.Context, target, reference *tree.Node) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapValidation("context", err)
	}
	if reference == nil {
		return nil, &errors.ValidationError{
			Field:   "reference",
			Message: "cannot be nil",
		}
	}

	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	w := &walker{strict: r.strict, result: &Result{}}
	out, err := w.value(target, reference, "")
	if err != nil {
		return nil, err
	}
	w.result.Tree = out

	for _, m := range w.result.Mismatches {
		logger.Warn().
			Str("path", m.Path).
			Stringer("expected", m.Expected).
			Stringer("got", m.Got).
			Msg("Shape mismatch, keeping reference value")
	}
	logger.Debug().
		Int("keys", w.result.Stats.Keys).
		Int("translated", w.result.Stats.Translated).
		Int("fell_back", w.result.Stats.FellBack).
		Msg("Reconciled tree")

	return w.result, nil
}

// Value implements Reconciler.
func (r *reconciler) Value(ctx context.Context, target any, reference *tree.Node) (*Result, error) {
	t, err := tree.FromValue(target)
	if err != nil {
		return nil, err
	}
	return r.Tree(ctx, t, reference)
}

// walker carries the policy and the running result through one reconciliation.
type walker struct {
	strict bool
	result *Result
}

// value reconciles one position. A nil target means the key is absent.
func (w *walker) value(target, ref *tree.Node, path string) (*tree.Node, error) {
	if ref.IsObject() {
		if target != nil && !target.IsObject() && target.Truthy() {
			if err := w.mismatch(path, ref, target); err != nil {
				return nil, err
			}
			target = nil
		}
		out := tree.NewObject()
		for key, child := range ref.Entries() {
			// Get on a nil or leaf target reports the key as absent.
			tv, ok := target.Get(key)
			if !ok {
				tv = nil
			}
			v, err := w.value(tv, child, tree.Join(path, key))
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
		}
		return out, nil
	}

	w.result.Stats.Keys++
	switch {
	case target == nil || !target.Truthy():
		w.result.Stats.FellBack++
		return ref.Clone(), nil
	case target.IsObject(), (ref.Kind == tree.Array) != (target.Kind == tree.Array):
		// Objects never replace leaves, and arrays only replace arrays.
		if err := w.mismatch(path, ref, target); err != nil {
			return nil, err
		}
		w.result.Stats.FellBack++
		return ref.Clone(), nil
	default:
		w.result.Stats.Translated++
		return target.Clone(), nil
	}
}

func (w *walker) mismatch(path string, ref, target *tree.Node) error {
	if path == "" {
		path = "$"
	}
	if w.strict {
		return errors.NewShapeMismatchError(path, ref.Kind.String(), target.Kind.String())
	}
	w.result.Mismatches = append(w.result.Mismatches, Mismatch{
		Path:     path,
		Expected: ref.Kind,
		Got:      target.Kind,
	})
	w.result.Stats.Mismatches++
	return nil
}
