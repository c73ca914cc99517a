package reconciler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/logging"
	"github.com/agentstation/lingo/pkg/tree"
)

func TestReconcileScenarios(t *testing.T) {
	tests := []struct {
		name      string
		reference *tree.Node
		target    *tree.Node
		want      *tree.Node
	}{
		{
			name:      "extra key dropped, missing key falls back, nested key overridden",
			reference: tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", "C")),
			target:    tree.ObjectOf("b", tree.ObjectOf("c", "X"), "d", "D"),
			want:      tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", "X")),
		},
		{
			name:      "empty string falls back",
			reference: tree.ObjectOf("a", "A"),
			target:    tree.ObjectOf("a", ""),
			want:      tree.ObjectOf("a", "A"),
		},
		{
			name:      "missing subtree falls back verbatim",
			reference: tree.ObjectOf("a", tree.ObjectOf("b", "B")),
			target:    tree.NewObject(),
			want:      tree.ObjectOf("a", tree.ObjectOf("b", "B")),
		},
		{
			name:      "nil target falls back everywhere",
			reference: tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", "C")),
			target:    nil,
			want:      tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", "C")),
		},
		{
			name:      "empty reference gives empty result",
			reference: tree.NewObject(),
			target:    tree.ObjectOf("a", "A"),
			want:      tree.NewObject(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.target, tt.reference)
			assert.True(t, tree.Equal(tt.want, got), "got %v", tree.ToValue(got))
		})
	}
}

func TestReconcileTruthiness(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		useTgt bool
	}{
		{"null", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"zero", 0, false},
		{"zero float", 0.0, false},
		{"non-zero", 7, true},
		{"empty string", "", false},
		{"string", "Bonjour", true},
	}

	reference := tree.ObjectOf("k", "Hello")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := tree.ObjectOf("k", tt.value)
			got, ok := Reconcile(target, reference).Get("k")
			require.True(t, ok)

			want, _ := reference.Get("k")
			if tt.useTgt {
				want, _ = target.Get("k")
			}
			assert.True(t, tree.Equal(want, got))
		})
	}
}

func TestReconcileOrderPreservation(t *testing.T) {
	reference := tree.ObjectOf(
		"zeta", "Z",
		"alpha", tree.ObjectOf("two", "2", "one", "1"),
		"mid", "M",
	)
	target := tree.ObjectOf(
		"mid", "m",
		"alpha", tree.ObjectOf("one", "un", "extra", "x", "two", "deux"),
		"zeta", "z",
		"omega", "o",
	)

	got := Reconcile(target, reference)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, got.Keys())

	alpha, ok := got.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"two", "one"}, alpha.Keys())

	want := tree.ObjectOf(
		"zeta", "z",
		"alpha", tree.ObjectOf("two", "deux", "one", "un"),
		"mid", "m",
	)
	assert.True(t, tree.Equal(want, got))
}

func TestReconcileIdempotent(t *testing.T) {
	reference := tree.ObjectOf(
		"title", "Title",
		"menu", tree.ObjectOf("open", "Open", "close", "Close"),
		"count", 3,
	)
	target := tree.ObjectOf(
		"menu", tree.ObjectOf("close", "Fermer", "stale", "x"),
		"title", "",
	)

	once := Reconcile(target, reference)
	again := Reconcile(tree.MustFromValue(tree.ToValue(once)), reference)
	assert.True(t, tree.Equal(once, again))
}

func TestReconcileDoesNotAliasOrMutate(t *testing.T) {
	reference := tree.ObjectOf("a", tree.ObjectOf("b", "B"), "list", []any{"x"})
	target := tree.ObjectOf("c", tree.ObjectOf("d", "D"), "list", []any{"y"})
	refBefore := reference.Clone()
	tgtBefore := target.Clone()

	got := Reconcile(target, reference)
	require.True(t, tree.Equal(refBefore, reference))
	require.True(t, tree.Equal(tgtBefore, target))

	// Mutating the result must not reach either input.
	sub, ok := got.Get("a")
	require.True(t, ok)
	sub.Set("b", tree.NewString("changed"))
	sub.Set("new", tree.NewString("N"))
	list, ok := got.Get("list")
	require.True(t, ok)
	list.Items[0].String = "changed"

	assert.True(t, tree.Equal(refBefore, reference))
	assert.True(t, tree.Equal(tgtBefore, target))
}

func TestTreeShapeMismatch(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		reference *tree.Node
		target    *tree.Node
		path      string
		expected  tree.Kind
		got       tree.Kind
	}{
		{
			name:      "reference subtree, target scalar",
			reference: tree.ObjectOf("menu", tree.ObjectOf("open", "Open")),
			target:    tree.ObjectOf("menu", "Menu"),
			path:      "menu",
			expected:  tree.Object,
			got:       tree.String,
		},
		{
			name:      "reference scalar, target subtree",
			reference: tree.ObjectOf("menu", tree.ObjectOf("title", "Title")),
			target:    tree.ObjectOf("menu", tree.ObjectOf("title", tree.ObjectOf("x", "y"))),
			path:      "menu.title",
			expected:  tree.String,
			got:       tree.Object,
		},
		{
			name:      "reference scalar, target array",
			reference: tree.ObjectOf("title", "Title"),
			target:    tree.ObjectOf("title", []any{"Titre"}),
			path:      "title",
			expected:  tree.String,
			got:       tree.Array,
		},
		{
			name:      "reference array, target scalar",
			reference: tree.ObjectOf("list", []any{"a", "b"}),
			target:    tree.ObjectOf("list", "liste"),
			path:      "list",
			expected:  tree.Array,
			got:       tree.String,
		},
		{
			name:      "non-object target root",
			reference: tree.ObjectOf("a", "A"),
			target:    tree.NewString("oops"),
			path:      "$",
			expected:  tree.Object,
			got:       tree.String,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name+" falls back", func(t *testing.T) {
			r, err := New()
			require.NoError(t, err)

			res, err := r.Tree(ctx, tt.target, tt.reference)
			require.NoError(t, err)
			assert.True(t, tree.Equal(tt.reference, res.Tree))
			require.Len(t, res.Mismatches, 1)
			assert.Equal(t, Mismatch{Path: tt.path, Expected: tt.expected, Got: tt.got}, res.Mismatches[0])
			assert.Equal(t, 1, res.Stats.Mismatches)
		})

		t.Run(tt.name+" strict", func(t *testing.T) {
			r, err := New(WithStrict(true))
			require.NoError(t, err)

			res, err := r.Tree(ctx, tt.target, tt.reference)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, errors.IsShapeMismatch(err))

			var sm *errors.ShapeMismatchError
			require.True(t, errors.As(err, &sm))
			assert.Equal(t, tt.path, sm.Path)
		})
	}
}

func TestTreeArrayReplacesArray(t *testing.T) {
	r, err := New(WithStrict(true))
	require.NoError(t, err)

	reference := tree.ObjectOf("days", []any{"Mon", "Tue", "Wed"})
	target := tree.ObjectOf("days", []any{"lun."})

	res, err := r.Tree(context.Background(), target, reference)
	require.NoError(t, err)
	assert.True(t, tree.Equal(target, res.Tree))
	assert.Empty(t, res.Mismatches)
	assert.Equal(t, 1, res.Stats.Translated)

	// An empty array is truthy, so it is kept too.
	empty := tree.ObjectOf("days", []any{})
	res, err = r.Tree(context.Background(), empty, reference)
	require.NoError(t, err)
	assert.True(t, tree.Equal(empty, res.Tree))
}

func TestTreeFalsyLeafIsNotAMismatch(t *testing.T) {
	r, err := New(WithStrict(true))
	require.NoError(t, err)

	reference := tree.ObjectOf("menu", tree.ObjectOf("open", "Open"))
	res, err := r.Tree(context.Background(), tree.ObjectOf("menu", ""), reference)
	require.NoError(t, err)
	assert.Empty(t, res.Mismatches)
	assert.True(t, tree.Equal(reference, res.Tree))
}

func TestTreeStats(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	reference := tree.ObjectOf(
		"a", "A",
		"b", tree.ObjectOf("c", "C", "d", "D"),
		"e", "E",
	)
	target := tree.ObjectOf("a", "Ah", "b", tree.ObjectOf("d", "Dé"))

	res, err := r.Tree(context.Background(), target, reference)
	require.NoError(t, err)
	assert.Equal(t, Stats{Keys: 4, Translated: 2, FellBack: 2}, res.Stats)
	assert.InDelta(t, 0.5, res.Stats.Coverage(), 1e-9)
	assert.Equal(t, "2/4 translated, 2 fell back", res.Stats.Summary())
}

func TestTreeLogsMismatches(t *testing.T) {
	logger := logging.NewTestLogger(t)
	r, err := New(WithLogger(logger.Logger))
	require.NoError(t, err)

	_, err = r.Tree(context.Background(),
		tree.ObjectOf("menu", "Menu"),
		tree.ObjectOf("menu", tree.ObjectOf("open", "Open")))
	require.NoError(t, err)
	logger.AssertContains(t, "Shape mismatch")
	logger.AssertContains(t, `"path":"menu"`)
}

func TestTreeValidation(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	_, err = r.Tree(context.Background(), tree.NewObject(), nil)
	assert.True(t, errors.IsValidationError(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Tree(ctx, tree.NewObject(), tree.NewObject())
	assert.Error(t, err)

	_, err = New(WithLogger(nil))
	assert.True(t, errors.IsValidationError(err))
}

func TestValueConvertsRawTarget(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	reference := tree.ObjectOf("b", "B", "a", tree.ObjectOf("c", "C"))
	raw := map[string]any{
		"a":     map[string]any{"c": "Cé"},
		"stale": "x",
	}

	res, err := r.Value(context.Background(), raw, reference)
	require.NoError(t, err)
	assert.True(t, tree.Equal(tree.ObjectOf("b", "B", "a", tree.ObjectOf("c", "Cé")), res.Tree))

	_, err = r.Value(context.Background(), map[string]any{"bad": struct{}{}}, reference)
	assert.True(t, errors.IsValidationError(err))
}
