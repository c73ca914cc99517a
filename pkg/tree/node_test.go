package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/lingo/pkg/tree"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	obj := tree.NewObject()
	obj.Set("zeta", tree.NewString("z"))
	obj.Set("alpha", tree.NewString("a"))
	obj.Set("mid", tree.NewString("m"))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	// Replacing a value keeps its position.
	obj.Set("zeta", tree.NewString("Z"))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	v, ok := obj.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, "Z", v.String)
	assert.Equal(t, 3, obj.Len())
}

func TestEntriesStopsEarly(t *testing.T) {
	obj := tree.ObjectOf("a", "1", "b", "2", "c", "3")

	var seen []string
	for k := range obj.Entries() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestKeysReturnsCopy(t *testing.T) {
	obj := tree.ObjectOf("a", "1", "b", "2")
	keys := obj.Keys()
	keys[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
}

func TestLeafAccessors(t *testing.T) {
	leaf := tree.NewString("x")
	_, ok := leaf.Get("x")
	assert.False(t, ok)
	assert.Nil(t, leaf.Keys())
	assert.Zero(t, leaf.Len())
	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.IsObject())
	assert.Panics(t, func() { leaf.Set("k", tree.NewNull()) })

	assert.Equal(t, 2, tree.NewArray(tree.NewInt(1), tree.NewInt(2)).Len())
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want bool
	}{
		{"nil", nil, false},
		{"null", tree.NewNull(), false},
		{"false", tree.NewBool(false), false},
		{"true", tree.NewBool(true), true},
		{"empty string", tree.NewString(""), false},
		{"space", tree.NewString(" "), true},
		{"text", tree.NewString("Bonjour"), true},
		{"zero", tree.NewInt(0), false},
		{"float zero", tree.NewNumber("0.0"), false},
		{"negative zero", tree.NewNumber("-0"), false},
		{"exponent zero", tree.NewNumber("0e10"), false},
		{"one", tree.NewInt(1), true},
		{"negative", tree.NewNumber("-2.5"), true},
		{"huge", tree.NewNumber("1e999"), true},
		{"empty array", tree.NewArray(), true},
		{"empty object", tree.NewObject(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.node.Truthy())
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := tree.ObjectOf(
		"menu", tree.ObjectOf("open", "Open"),
		"list", []any{"a", "b"},
	)
	clone := orig.Clone()
	require.True(t, tree.Equal(orig, clone))

	menu, _ := clone.Get("menu")
	menu.Set("open", tree.NewString("Ouvrir"))
	menu.Set("close", tree.NewString("Fermer"))
	list, _ := clone.Get("list")
	list.Items[0].String = "z"

	origMenu, _ := orig.Get("menu")
	open, _ := origMenu.Get("open")
	assert.Equal(t, "Open", open.String)
	assert.Equal(t, []string{"open"}, origMenu.Keys())
	origList, _ := orig.Get("list")
	assert.Equal(t, "a", origList.Items[0].String)
}

func TestEqual(t *testing.T) {
	a := tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", 1))
	assert.True(t, tree.Equal(a, tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", 1))))
	assert.False(t, tree.Equal(a, tree.ObjectOf("b", tree.ObjectOf("c", 1), "a", "A")), "order matters")
	assert.False(t, tree.Equal(a, tree.ObjectOf("a", "A", "b", tree.ObjectOf("c", 2))))
	assert.False(t, tree.Equal(tree.NewNumber("1"), tree.NewNumber("1.0")))
	assert.False(t, tree.Equal(tree.NewString("1"), tree.NewNumber("1")))
	assert.True(t, tree.Equal(nil, nil))
	assert.False(t, tree.Equal(nil, tree.NewNull()))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "object", tree.Object.String())
	assert.Equal(t, "string", tree.String.String())
	assert.Equal(t, "kind(42)", tree.Kind(42).String())
}

func TestJoinAndLeaves(t *testing.T) {
	assert.Equal(t, "a", tree.Join("", "a"))
	assert.Equal(t, "a.b", tree.Join("a", "b"))
	assert.Equal(t, "a.[b.c]", tree.Join("a", "b.c"))

	doc := tree.ObjectOf(
		"a", "A",
		"b", tree.ObjectOf("c", "C", "d", tree.ObjectOf()),
		"e", []any{"x", "y"},
	)
	assert.Equal(t, 3, tree.Leaves(doc))
	assert.Equal(t, 0, tree.Leaves(nil))
}
