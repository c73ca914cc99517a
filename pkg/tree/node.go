// Package tree provides the ordered document tree that lingo reconciles.
//
// A Node is tagged once, when it is built, as one of six kinds. Objects are
// internal nodes: ordered mappings from key to child where insertion order is
// the display order of the document. Every other kind is a leaf. Arrays are
// leaves too; reconciliation treats them as opaque values.
package tree

import (
	"iter"
	"math"
	"slices"
	"strconv"
)

// Kind tags the variant held by a Node.
type Kind uint8

// Node kinds.
const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// MarshalText renders the kind by name in JSON and YAML reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Node is a single value in an ordered document tree.
//
// Only the field matching Kind is meaningful. Number holds the literal text
// of the number so that "2.50" or "1e3" survive a round trip unchanged.
type Node struct {
	Kind   Kind
	Bool   bool
	Number string
	String string
	Items  []*Node

	keys   []string
	fields map[string]*Node
}

// NewNull returns a null leaf.
func NewNull() *Node { return &Node{Kind: Null} }

// NewBool returns a boolean leaf.
func NewBool(b bool) *Node { return &Node{Kind: Bool, Bool: b} }

// NewString returns a string leaf.
func NewString(s string) *Node { return &Node{Kind: String, String: s} }

// NewNumber returns a number leaf holding the given literal. The literal is
// not validated; codecs only pass literals they parsed themselves.
func NewNumber(literal string) *Node { return &Node{Kind: Number, Number: literal} }

// NewInt returns a number leaf for an integer.
func NewInt(i int64) *Node { return NewNumber(strconv.FormatInt(i, 10)) }

// NewUint returns a number leaf for an unsigned integer.
func NewUint(u uint64) *Node { return NewNumber(strconv.FormatUint(u, 10)) }

// NewFloat returns a number leaf for a float, using the shortest literal
// that parses back to the same value.
func NewFloat(f float64) *Node { return NewNumber(strconv.FormatFloat(f, 'g', -1, 64)) }

// NewArray returns an array leaf holding items in order.
func NewArray(items ...*Node) *Node {
	return &Node{Kind: Array, Items: items}
}

// NewObject returns an empty object.
func NewObject() *Node {
	return &Node{Kind: Object, fields: make(map[string]*Node)}
}

// IsObject reports whether n is an internal node.
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == Object
}

// IsLeaf reports whether n is a leaf.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Kind != Object
}

// Set stores value under key. A new key is appended after the existing ones;
// an existing key keeps its position and has its value replaced.
// Set panics when n is not an object.
func (n *Node) Set(key string, value *Node) {
	if n.Kind != Object {
		panic("tree: Set on " + n.Kind.String())
	}
	if n.fields == nil {
		n.fields = make(map[string]*Node)
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	n.fields[key] = value
}

// Get returns the value stored under key. It returns false for missing keys
// and for nodes that are not objects.
func (n *Node) Get(key string) (*Node, bool) {
	if !n.IsObject() {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns a copy of the object's keys in order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return slices.Clone(n.keys)
}

// Len returns the number of keys of an object or items of an array.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	switch n.Kind {
	case Object:
		return len(n.keys)
	case Array:
		return len(n.Items)
	default:
		return 0
	}
}

// Entries iterates over an object's key/value pairs in order.
func (n *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if !n.IsObject() {
			return
		}
		for _, k := range n.keys {
			if !yield(k, n.fields[k]) {
				return
			}
		}
	}
}

// Truthy applies the source data model's truthiness rule: null, false,
// numeric zero and the empty string are falsy; every other value, including
// empty arrays and objects, is truthy.
func (n *Node) Truthy() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case Null:
		return false
	case Bool:
		return n.Bool
	case Number:
		f, err := strconv.ParseFloat(n.Number, 64)
		if err != nil {
			// Out of range literals are huge, not zero.
			return n.Number != ""
		}
		return f != 0 && !math.IsNaN(f)
	case String:
		return n.String != ""
	default:
		return true
	}
}

// Clone returns a deep copy of n sharing no nodes with it.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Kind:   n.Kind,
		Bool:   n.Bool,
		Number: n.Number,
		String: n.String,
	}
	if n.Items != nil {
		c.Items = make([]*Node, len(n.Items))
		for i, item := range n.Items {
			c.Items[i] = item.Clone()
		}
	}
	if n.Kind == Object {
		c.keys = make([]string, len(n.keys))
		copy(c.keys, n.keys)
		c.fields = make(map[string]*Node, len(n.fields))
		for k, v := range n.fields {
			c.fields[k] = v.Clone()
		}
	}
	return c
}

// Equal reports whether a and b are structurally equal. Object key order is
// significant; number literals are compared textually.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Null:
		return true
	case Bool:
		return a.Bool == b.Bool
	case Number:
		return a.Number == b.Number
	case String:
		return a.String == b.String
	case Array:
		return slices.EqualFunc(a.Items, b.Items, Equal)
	case Object:
		if !slices.Equal(a.keys, b.keys) {
			return false
		}
		for _, k := range a.keys {
			if !Equal(a.fields[k], b.fields[k]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
