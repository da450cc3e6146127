package blob

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// OrderedObject is a string-keyed map that remembers insertion order,
// needed because preset compilation (§4.8) and line property bags must
// preserve source ordering ("later entries overwrite earlier on
// collision" requires a stable concept of "later"). It is generic so
// both RouteBlob and SafeRouteBlob trees can share the implementation.
type OrderedObject[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedObject[V any]() *OrderedObject[V] {
	return &OrderedObject[V]{values: make(map[string]V)}
}

// NewObject constructs an empty ordered object, exported for callers
// building blob trees by hand (tests, Pack's `use:` substitution).
func NewObject[V any]() *OrderedObject[V] {
	return newOrderedObject[V]()
}

// Set inserts or overwrites a key, preserving first-insertion order for
// the key's position.
func (o *OrderedObject[V]) Set(key string, v V) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get looks up a key.
func (o *OrderedObject[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of keys.
func (o *OrderedObject[V]) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order.
func (o *OrderedObject[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Each calls f for every entry in insertion order.
func (o *OrderedObject[V]) Each(f func(key string, v V)) {
	for _, k := range o.keys {
		f(k, o.values[k])
	}
}

// MarshalJSON emits the object's entries in insertion order (encoding/json
// alone would see only unexported fields and emit `{}`), so
// `celerc compile --output json` preserves source ordering (spec §4.8).
func (o *OrderedObject[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML emits an explicit yaml.Node mapping so key order survives
// --output yaml the same way MarshalJSON preserves it for JSON.
func (o *OrderedObject[V]) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range o.keys {
		keyNode := &yaml.Node{}
		keyNode.SetString(k)
		valNode := &yaml.Node{}
		if err := valNode.Encode(o.values[k]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
