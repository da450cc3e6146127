package resource

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// decodeOrderedYAML decodes raw as a YAML document into an order-
// preserving value tree: objects become *OrderedMap, arrays []any,
// scalars bool/float64/string/nil. Grounded on the same "walk the parse
// tree instead of the decoded value" technique yaml.v3's own Node API is
// built around.
func decodeOrderedYAML(raw []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return yamlNodeToOrdered(doc.Content[0])
}

func yamlNodeToOrdered(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlNodeToOrdered(n.Content[0])
	case yaml.AliasNode:
		return yamlNodeToOrdered(n.Alias)
	case yaml.MappingNode:
		m := NewOrderedMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			val, err := yamlNodeToOrdered(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, val)
		}
		return m, nil
	case yaml.SequenceNode:
		arr := make([]any, len(n.Content))
		for i, item := range n.Content {
			val, err := yamlNodeToOrdered(item)
			if err != nil {
				return nil, err
			}
			arr[i] = val
		}
		return arr, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return normalizeScalar(v), nil
	default:
		return nil, nil
	}
}

// normalizeScalar brings yaml.v3's decoded scalar types (which include
// int/int64/uint64) in line with encoding/json's convention of decoding
// every number as float64, so downstream code (blob.FromJSON et al.)
// sees the same scalar types regardless of source format.
func normalizeScalar(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return v
	}
}

// decodeOrderedJSON decodes raw as a JSON document into an order-
// preserving value tree, using json.Decoder's token stream instead of
// Unmarshal into interface{} (which, like yaml.v3, collapses objects
// into an unordered map[string]interface{}).
func decodeOrderedJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewOrderedMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return m, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("unexpected JSON delimiter %v", t)
		}
	case json.Number:
		return t.Float64()
	default:
		return t, nil // nil, bool, string all pass through as-is
	}
}
