package comp

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/celer-dev/celerc/blob"
)

// PropMap is a line's property bag (spec §4.11 "line properties"),
// grounded on `comp/line/prop_map.rs`'s LinePropMap: Insert desugars
// shorthand properties into their long-hand form on the way in, so every
// later reader only ever sees the canonical keys.
type PropMap struct {
	order []string
	vals  map[string]blob.SafeRouteBlob
}

// NewPropMap returns an empty PropMap.
func NewPropMap() *PropMap {
	return &PropMap{vals: make(map[string]blob.SafeRouteBlob)}
}

// Insert sets key to value, desugaring `coord` into `movements: [value]`
// and `icon` into both `icon-doc` and `icon-map` (spec §4.11), matching
// LinePropMap::insert exactly.
func (m *PropMap) Insert(key string, value blob.SafeRouteBlob) {
	switch key {
	case PropCoord:
		m.Insert(PropMovements, blob.SafeArray([]blob.SafeRouteBlob{value}))
	case PropIcon:
		m.Insert(PropIconDoc, value)
		m.Insert(PropIconMap, value)
	default:
		m.set(key, value)
	}
}

func (m *PropMap) set(key string, value blob.SafeRouteBlob) {
	if _, exists := m.vals[key]; !exists {
		m.order = append(m.order, key)
	}
	m.vals[key] = value
}

// Get returns the value stored under key, if any.
func (m *PropMap) Get(key string) (blob.SafeRouteBlob, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Take removes and returns the value stored under key, if any, marking
// it as consumed so it won't be reported as an unused property.
func (m *PropMap) Take(key string) (blob.SafeRouteBlob, bool) {
	v, ok := m.vals[key]
	if ok {
		delete(m.vals, key)
	}
	return v, ok
}

// Remaining returns the keys still present, in insertion order, that
// have not been Taken — used to build the UnusedProperty warning list.
func (m *PropMap) Remaining() []string {
	out := make([]string, 0, len(m.order))
	for _, k := range m.order {
		if _, ok := m.vals[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// MarshalJSON renders the still-present properties (Taken keys omitted)
// in insertion order, so `celerc compile --output json` carries the
// residual property bag rather than the empty object produced by ranging
// over PropMap's unexported fields by reflection.
func (m *PropMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range m.order {
		v, ok := m.vals[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML mirrors MarshalJSON for yaml.v3.
func (m *PropMap) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range m.order {
		v, ok := m.vals[k]
		if !ok {
			continue
		}
		keyNode := &yaml.Node{}
		keyNode.SetString(k)
		valNode := &yaml.Node{}
		if err := valNode.Encode(v); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}
