package export

// maxFlattenDepth caps recursion through nested objects. JSON-derived
// payloads are acyclic, so the cap only guards against degenerate
// hand-built inputs.
const maxFlattenDepth = 32

// Flatten inlines nested plain-object values using dotted-path keys
// ("address.city"), preserving key order. Arrays and time values stay
// atomic for the cell serializer to handle. Empty nested objects are
// kept as-is so their presence survives into the output. Non-object
// input yields an empty row.
func Flatten(row any) *Object {
	out := NewObject()
	flattenInto(out, "", row, 0)
	return out
}

func flattenInto(out *Object, prefix string, node any, depth int) {
	keys, ok := objectKeys(node)
	if !ok {
		return
	}
	for _, k := range keys {
		v, _ := objectValue(node, k)
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if objectLen(v) > 0 && depth < maxFlattenDepth {
			flattenInto(out, key, v, depth+1)
			continue
		}
		out.Set(key, v)
	}
}
