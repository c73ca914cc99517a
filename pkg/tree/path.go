package tree

import (
	"strings"

	"github.com/agentstation/lingo/pkg/constants"
)

// Join appends key to a dotted key path. Keys that contain the separator
// are bracketed so the path stays unambiguous.
func Join(path, key string) string {
	if strings.Contains(key, constants.KeyPathSeparator) {
		key = "[" + key + "]"
	}
	if path == "" {
		return key
	}
	return path + constants.KeyPathSeparator + key
}

// Leaves counts the leaves below n. An object with no keys counts as zero.
func Leaves(n *Node) int {
	if !n.IsObject() {
		if n == nil {
			return 0
		}
		return 1
	}
	total := 0
	for _, child := range n.Entries() {
		total += Leaves(child)
	}
	return total
}
