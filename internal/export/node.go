package export

import (
	"sort"

	"github.com/elliotchance/orderedmap/v2"
)

// Object is an order-preserving key→value mapping, the decoded form of
// a JSON object. DecodePayload produces these so that header discovery
// and traversal follow document order.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return orderedmap.NewOrderedMap[string, any]()
}

// Payload object nodes come in two shapes: *Object (document order
// preserved, from DecodePayload) and map[string]any (order-free, from
// encoding/json or hand-built values). Plain map keys are visited in
// sorted order so every traversal stays deterministic.

// objectKeys returns the visit-ordered keys of an object node.
func objectKeys(v any) ([]string, bool) {
	switch m := v.(type) {
	case *Object:
		return m.Keys(), true
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, true
	}
	return nil, false
}

// objectValue looks up one key in an object node.
func objectValue(v any, key string) (any, bool) {
	switch m := v.(type) {
	case *Object:
		return m.Get(key)
	case map[string]any:
		val, ok := m[key]
		return val, ok
	}
	return nil, false
}

// objectLen returns the number of keys in an object node, or -1 when v
// is not an object.
func objectLen(v any) int {
	switch m := v.(type) {
	case *Object:
		return m.Len()
	case map[string]any:
		return len(m)
	}
	return -1
}
