package codec

import (
	"bytes"
	"strconv"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/tree"
)

// YAML is the YAML codec.
type YAML struct{}

// Format implements Codec.
func (YAML) Format() Format { return FormatYAML }

// Decode implements Codec. An empty document decodes to an empty object.
func (YAML) Decode(data []byte) (*tree.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return tree.NewObject(), nil
	}

	var v any
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil {
		return nil, errors.NewParseError(string(FormatYAML), "", yaml.FormatError(err, false, false), err)
	}
	n, err := fromYAML(v)
	if err != nil {
		return nil, errors.WrapParse(string(FormatYAML), "", err)
	}
	return n, nil
}

// fromYAML converts decoded YAML values. Timestamps keep their RFC 3339
// text since the tree has no time kind.
func fromYAML(v any) (*tree.Node, error) {
	switch x := v.(type) {
	case time.Time:
		return tree.NewString(x.Format(time.RFC3339Nano)), nil
	case yaml.MapSlice:
		obj := tree.NewObject()
		for _, item := range x {
			child, err := fromYAML(item.Value)
			if err != nil {
				return nil, err
			}
			key, ok := item.Key.(string)
			if !ok {
				keyNode, err := tree.FromValue(item.Key)
				if err != nil || keyNode.IsObject() {
					return nil, &errors.ValidationError{
						Field:   "key",
						Value:   item.Key,
						Message: "mapping keys must be scalars",
					}
				}
				key = scalarText(keyNode)
			}
			obj.Set(key, child)
		}
		return obj, nil
	case []any:
		items := make([]*tree.Node, len(x))
		for i, item := range x {
			child, err := fromYAML(item)
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return tree.NewArray(items...), nil
	default:
		return tree.FromValue(v)
	}
}

func scalarText(n *tree.Node) string {
	switch n.Kind {
	case tree.Bool:
		return strconv.FormatBool(n.Bool)
	case tree.Number:
		return n.Number
	case tree.String:
		return n.String
	default:
		return "null"
	}
}

// Encode implements Codec.
func (YAML) Encode(n *tree.Node) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(toYAML(n), yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return nil, errors.WrapParse(string(FormatYAML), "", err)
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

// toYAML is tree.ToValue with numbers kept as their literal text, so they
// are neither quoted nor reformatted.
func toYAML(n *tree.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case tree.Number:
		if _, err := strconv.ParseFloat(n.Number, 64); err != nil {
			return n.Number
		}
		return numberLiteral(n.Number)
	case tree.Array:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = toYAML(item)
		}
		return items
	case tree.Object:
		out := make(yaml.MapSlice, 0, n.Len())
		for k, v := range n.Entries() {
			out = append(out, yaml.MapItem{Key: k, Value: toYAML(v)})
		}
		return out
	default:
		return tree.ToValue(n)
	}
}

// numberLiteral is written as its literal text, so 2.50 stays 2.50.
type numberLiteral string

// MarshalYAML implements yaml.BytesMarshaler.
func (n numberLiteral) MarshalYAML() ([]byte, error) {
	return []byte(n), nil
}
