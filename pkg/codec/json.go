package codec

import (
	"bytes"
	"encoding/json"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/agentstation/lingo/pkg/constants"
	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/tree"
)

var prettyOptions = &pretty.Options{
	// Zero width keeps every array element on its own line.
	Width:    0,
	Indent:   constants.DefaultIndent,
	SortKeys: false,
}

// JSON is the JSON codec.
type JSON struct{}

// Format implements Codec.
func (JSON) Format() Format { return FormatJSON }

// Decode implements Codec. When an object repeats a key, the key keeps its
// first position and takes its last value.
func (JSON) Decode(data []byte) (*tree.Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.NewParseError(string(FormatJSON), "", "invalid JSON document", nil)
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) *tree.Node {
	switch r.Type {
	case gjson.Null:
		return tree.NewNull()
	case gjson.False:
		return tree.NewBool(false)
	case gjson.True:
		return tree.NewBool(true)
	case gjson.Number:
		return tree.NewNumber(r.Raw)
	case gjson.String:
		return tree.NewString(r.Str)
	}

	if r.IsArray() {
		items := make([]*tree.Node, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			items = append(items, fromResult(v))
			return true
		})
		return tree.NewArray(items...)
	}

	obj := tree.NewObject()
	r.ForEach(func(k, v gjson.Result) bool {
		obj.Set(k.Str, fromResult(v))
		return true
	})
	return obj
}

// Encode implements Codec.
func (JSON) Encode(n *tree.Node) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, n); err != nil {
		return nil, err
	}
	return pretty.PrettyOptions(buf.Bytes(), prettyOptions), nil
}

func writeJSON(buf *bytes.Buffer, n *tree.Node) error {
	if n == nil {
		buf.WriteString("null")
		return nil
	}
	switch n.Kind {
	case tree.Null:
		buf.WriteString("null")
	case tree.Bool:
		if n.Bool {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case tree.Number:
		if !json.Valid([]byte(n.Number)) {
			return &errors.ValidationError{
				Field:   "number",
				Value:   n.Number,
				Message: "not a valid JSON number",
			}
		}
		buf.WriteString(n.Number)
	case tree.String:
		return writeString(buf, n.String)
	case tree.Array:
		buf.WriteByte('[')
		for i, item := range n.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case tree.Object:
		buf.WriteByte('{')
		first := true
		for k, v := range n.Entries() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeJSON(buf, v); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return &errors.ValidationError{
			Field:   "kind",
			Value:   n.Kind,
			Message: "unknown node kind " + n.Kind.String(),
		}
	}
	return nil
}

// writeString quotes s without escaping <, > and &, which are common in
// translated text.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
