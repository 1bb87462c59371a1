package jsondoc

import (
	"strconv"
	"strings"
)

// DefaultSeparator joins compound key segments in flat documents.
const DefaultSeparator = "."

type flattenFrame struct {
	node   any
	prefix string
}

// Flatten collapses a nested document into a single-level map from
// separator-joined compound key to scalar.
//
// A list element at index i under prefix P gets the key "P<sep>i". A scalar
// at the document root gets the empty-string key. Empty maps and lists
// contribute no entries. An empty sep defaults to [DefaultSeparator].
//
// Traversal uses an explicit work list, so depth is bounded by memory, not
// the call stack.
func Flatten(doc any, sep string) map[string]any {
	if sep == "" {
		sep = DefaultSeparator
	}

	flat := make(map[string]any)
	stack := []flattenFrame{{node: doc}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := frame.node.(type) {
		case map[string]any:
			for k, v := range node {
				stack = append(stack, flattenFrame{node: v, prefix: joinKey(frame.prefix, k, sep)})
			}
		case []any:
			for i, v := range node {
				stack = append(stack, flattenFrame{node: v, prefix: joinKey(frame.prefix, strconv.Itoa(i), sep)})
			}
		default:
			flat[frame.prefix] = node
		}
	}

	return flat
}

func joinKey(prefix, key, sep string) string {
	if prefix == "" {
		return key
	}

	return prefix + sep + key
}

// Unflatten rebuilds a nested document from a flat map by splitting each
// compound key on sep and creating intermediate maps on demand.
//
// Sequences are never reconstructed: a segment that originated from a list
// index becomes a string key in a nested map, so Unflatten(Flatten(doc)) is
// not a round trip once doc contains a list. Compound keys that disagree on
// whether a segment is a leaf or a container keep whichever value lands
// last.
func Unflatten(flat map[string]any, sep string) map[string]any {
	if sep == "" {
		sep = DefaultSeparator
	}

	nested := make(map[string]any)

	for compound, value := range flat {
		segments := strings.Split(compound, sep)

		node := nested
		for _, seg := range segments[:len(segments)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}

			node = child
		}

		node[segments[len(segments)-1]] = value
	}

	return nested
}
