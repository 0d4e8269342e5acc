package export

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ConvertToJSON pretty-prints any payload node with 2-space
// indentation, preserving object key order.
func ConvertToJSON(v any) (string, error) {
	compact, err := marshalOrdered(v)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ConvertToJSONL renders discovered rows as JSON Lines: one compact
// object per line.
func ConvertToJSONL(rows []any) (string, error) {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		data, err := marshalOrdered(row)
		if err != nil {
			return "", err
		}
		lines = append(lines, string(data))
	}
	return strings.Join(lines, "\n"), nil
}

// marshalOrdered is json.Marshal extended to *Object nodes, whose keys
// are written in insertion order.
func marshalOrdered(v any) ([]byte, error) {
	switch node := v.(type) {
	case *Object:
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range node.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			val, _ := node.Get(k)
			valData, err := marshalOrdered(val)
			if err != nil {
				return nil, err
			}
			buf.Write(valData)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, el := range node {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := marshalOrdered(el)
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		var buf bytes.Buffer
		buf.WriteByte('{')
		keys, _ := objectKeys(node)
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyData, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(keyData)
			buf.WriteByte(':')
			valData, err := marshalOrdered(node[k])
			if err != nil {
				return nil, err
			}
			buf.Write(valData)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return json.Marshal(v)
	}
}
