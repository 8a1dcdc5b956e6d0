// Package typedval works with the tagged value trees carried by report
// payloads. A typed node is a two-key map {"type": <tag>, "value": <v>};
// containers (maps, slices) recurse. Strip removes the tags to produce
// the raw tree generic consumers want.
package typedval

// Well-known type tags produced by the report API.
const (
	KindTimestamp = "timestamp"
	KindDuration  = "duration"
	KindCount     = "count"
	KindLabel     = "label"
)

// Tagged wraps v in a typed node.
func Tagged(kind string, v any) map[string]any {
	return map[string]any{"type": kind, "value": v}
}

// Strip maps a typed tree to its raw equivalent. It is pure and total:
// unrecognized nodes pass through unchanged and the input is never
// mutated.
func Strip(v any) any {
	switch node := v.(type) {
	case map[string]any:
		if inner, ok := typedNode(node); ok {
			return Strip(inner)
		}
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = Strip(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = Strip(child)
		}
		return out
	default:
		return v
	}
}

// typedNode reports whether m is a typed node and returns its value.
// Only exact {"type", "value"} maps qualify; anything else is treated as
// a plain container so user data with a "type" key survives intact.
func typedNode(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, ok := m["type"].(string); !ok {
		return nil, false
	}
	inner, ok := m["value"]
	return inner, ok
}
