package tree

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/lingo/pkg/errors"
)

// FromValue wraps a plain nested keyed structure into a tree.
//
// Ordered mappings (yaml.MapSlice) keep their order. Go maps have no order
// of their own, so their keys are sorted to keep the result deterministic.
// Slices become arrays and every Go numeric type becomes a number leaf.
func FromValue(v any) (*Node, error) {
	return fromValue(v, "")
}

func fromValue(v any, path string) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return x.Clone(), nil
	case bool:
		return NewBool(x), nil
	case string:
		return NewString(x), nil
	case json.Number:
		return NewNumber(x.String()), nil
	case int:
		return NewInt(int64(x)), nil
	case int8:
		return NewInt(int64(x)), nil
	case int16:
		return NewInt(int64(x)), nil
	case int32:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case uint:
		return NewUint(uint64(x)), nil
	case uint8:
		return NewUint(uint64(x)), nil
	case uint16:
		return NewUint(uint64(x)), nil
	case uint32:
		return NewUint(uint64(x)), nil
	case uint64:
		return NewUint(x), nil
	case float32:
		return floatNode(float64(x), path)
	case float64:
		return floatNode(x, path)
	case yaml.MapSlice:
		obj := NewObject()
		for _, item := range x {
			key := keyString(item.Key)
			child, err := fromValue(item.Value, Join(path, key))
			if err != nil {
				return nil, err
			}
			obj.Set(key, child)
		}
		return obj, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			child, err := fromValue(x[k], Join(path, k))
			if err != nil {
				return nil, err
			}
			obj.Set(k, child)
		}
		return obj, nil
	case map[any]any:
		byKey := make(map[string]any, len(x))
		for k, val := range x {
			byKey[keyString(k)] = val
		}
		return fromValue(byKey, path)
	case []any:
		items := make([]*Node, len(x))
		for i, item := range x {
			child, err := fromValue(item, Join(path, fmt.Sprint(i)))
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return NewArray(items...), nil
	case []string:
		items := make([]*Node, len(x))
		for i, s := range x {
			items[i] = NewString(s)
		}
		return NewArray(items...), nil
	default:
		return nil, &errors.ValidationError{
			Field:   pathOrRoot(path),
			Value:   v,
			Message: fmt.Sprintf("unsupported value type %T", v),
		}
	}
}

// ToValue unwraps a tree into a plain nested keyed structure: objects
// become yaml.MapSlice (ordered), arrays []any, numbers json.Number.
func ToValue(n *Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case Bool:
		return n.Bool
	case Number:
		return json.Number(n.Number)
	case String:
		return n.String
	case Array:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = ToValue(item)
		}
		return items
	case Object:
		out := make(yaml.MapSlice, 0, len(n.keys))
		for _, k := range n.keys {
			out = append(out, yaml.MapItem{Key: k, Value: ToValue(n.fields[k])})
		}
		return out
	default:
		return nil
	}
}

// MustFromValue is like FromValue but panics on unsupported input.
// It is meant for literals in tests and examples.
func MustFromValue(v any) *Node {
	n, err := FromValue(v)
	if err != nil {
		panic(err)
	}
	return n
}

// ObjectOf builds an object from alternating key/value arguments, converting
// each value with FromValue. It panics on odd argument counts, non-string
// keys and unsupported values.
func ObjectOf(kv ...any) *Node {
	if len(kv)%2 != 0 {
		panic("tree: ObjectOf needs key/value pairs")
	}
	obj := NewObject()
	for pair := range slices.Chunk(kv, 2) {
		key, ok := pair[0].(string)
		if !ok {
			panic(fmt.Sprintf("tree: ObjectOf key %v is %T, not string", pair[0], pair[0]))
		}
		obj.Set(key, MustFromValue(pair[1]))
	}
	return obj
}

func floatNode(f float64, path string) (*Node, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, &errors.ValidationError{
			Field:   pathOrRoot(path),
			Value:   f,
			Message: "non-finite numbers have no JSON representation",
		}
	}
	return NewFloat(f), nil
}

func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

func pathOrRoot(path string) string {
	if path == "" {
		return "$"
	}
	return path
}
