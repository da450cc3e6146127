package resource

// OrderedMap is a JSON/YAML object decoded with its source key order
// preserved (spec §4.8 "Ordering preserves input object ordering"). Plain
// Go maps can't carry this — encoding/json and yaml.v3 both decode
// objects into map[string]interface{}, whose range order is randomized
// per process. Arrays and scalars already preserve their own order/value
// by nature and stay plain []any/bool/float64/string/nil; only objects
// need a dedicated type.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]any)}
}

// Set inserts or overwrites a key, preserving first-insertion order.
func (m *OrderedMap) Set(key string, v any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get looks up a key.
func (m *OrderedMap) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *OrderedMap) Len() int { return len(m.keys) }

// Each calls f for every entry in insertion order.
func (m *OrderedMap) Each(f func(key string, v any)) {
	for _, k := range m.keys {
		f(k, m.values[k])
	}
}

// ShallowMap returns a plain map[string]any view of v's top-level keys,
// for callers (mergo, mapstructure, plain map type assertions) that only
// need to look a value up by name and don't care about order at that
// level. Nested values are passed through untouched — if a nested value
// is itself an *OrderedMap, it stays one, so deeper order is preserved
// for whoever reads it next (pack.Packer, blob.FromJSON, preset.Compile).
func ShallowMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case *OrderedMap:
		out := make(map[string]any, x.Len())
		x.Each(func(k string, val any) { out[k] = val })
		return out, true
	case map[string]any:
		return x, true
	default:
		return nil, false
	}
}

// ToPlainAny recursively converts v (an *OrderedMap/[]any/scalar tree, as
// decoded by LoadStructured) into the plain map[string]any/[]any/scalar
// shape mapstructure and encoding/json expect, discarding key order.
// Callers use this right before handing a value to a decoder that
// reflects over native Go maps/structs and can't see into OrderedMap's
// unexported fields — it's only safe where order genuinely doesn't
// matter (DTOs with named fields), never on a value that still needs to
// become a RouteBlob/PresetBlob object node.
func ToPlainAny(v any) any {
	switch x := v.(type) {
	case *OrderedMap:
		out := make(map[string]any, x.Len())
		x.Each(func(k string, val any) { out[k] = ToPlainAny(val) })
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = ToPlainAny(item)
		}
		return out
	default:
		return v
	}
}
