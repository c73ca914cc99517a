// Package codec serializes document trees to and from JSON and YAML while
// keeping object key order intact.
package codec

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/lingo/pkg/errors"
	"github.com/agentstation/lingo/pkg/tree"
)

// Format identifies a serialization format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// Extension returns the canonical file extension for the format.
func (f Format) Extension() string {
	return "." + string(f)
}

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML}
}

// Codec converts between serialized documents and trees.
type Codec interface {
	Format() Format

	// Decode parses data into a tree. Object keys keep document order.
	Decode(data []byte) (*tree.Node, error)

	// Encode renders a tree with two-space indentation and a trailing
	// newline, keeping object key order.
	Encode(n *tree.Node) ([]byte, error)
}

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", &errors.ValidationError{
			Field:   "format",
			Value:   s,
			Message: "unsupported format (use json or yaml)",
		}
	}
}

// ForFormat returns the codec for a format.
func ForFormat(f Format) (Codec, error) {
	switch f {
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML:
		return YAML{}, nil
	default:
		return nil, &errors.ValidationError{
			Field:   "format",
			Value:   string(f),
			Message: "unsupported format (use json or yaml)",
		}
	}
}

// ForPath returns the codec matching a file's extension.
func ForPath(path string) (Codec, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, &errors.ValidationError{
			Field:   "path",
			Value:   path,
			Message: "no file extension to pick a format from",
		}
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return nil, &errors.ValidationError{
			Field:   "path",
			Value:   path,
			Message: "unsupported file extension " + ext,
		}
	}
	return ForFormat(f)
}
