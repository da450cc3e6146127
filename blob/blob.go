// Package blob implements celer's two-tier JSON value model (spec §3/§4.3):
// RouteBlob, produced by Pack, can embed errors in situ; SafeRouteBlob,
// produced by Comp walking a RouteBlob, is error-free with errors already
// extracted into diagnostics.
package blob

import "github.com/celer-dev/celerc/resource"

// Kind discriminates a RouteBlob/SafeRouteBlob node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindErr // RouteBlob only
)

// PackErr is the minimal interface a Pack-phase error embedded in a
// RouteBlob::Err node must satisfy; it is deliberately narrow so blob does
// not import the pack package (which imports blob).
type PackErr interface {
	error
	Source() string
}

// RouteBlob is the recursive value produced by Pack (spec §3): a JSON
// scalar, array, object, or an embedded error node.
type RouteBlob struct {
	kind   Kind
	scalar any // bool | float64 | string, for KindBool/KindNumber/KindString
	array  []RouteBlob
	object *OrderedObject[RouteBlob]
	err    PackErr
}

// Null returns the null RouteBlob.
func Null() RouteBlob { return RouteBlob{kind: KindNull} }

// Bool wraps a boolean scalar.
func Bool(b bool) RouteBlob { return RouteBlob{kind: KindBool, scalar: b} }

// Number wraps a numeric scalar.
func Number(n float64) RouteBlob { return RouteBlob{kind: KindNumber, scalar: n} }

// String wraps a string scalar.
func String(s string) RouteBlob { return RouteBlob{kind: KindString, scalar: s} }

// Array wraps an array of RouteBlob.
func Array(items []RouteBlob) RouteBlob { return RouteBlob{kind: KindArray, array: items} }

// Object wraps an ordered object of RouteBlob.
func Object(obj *OrderedObject[RouteBlob]) RouteBlob { return RouteBlob{kind: KindObject, object: obj} }

// Err wraps a Pack-phase error in situ.
func Err(err PackErr) RouteBlob { return RouteBlob{kind: KindErr, err: err} }

func (b RouteBlob) Kind() Kind { return b.kind }

func (b RouteBlob) AsBool() (bool, bool) {
	v, ok := b.scalar.(bool)
	return v, ok && b.kind == KindBool
}

func (b RouteBlob) AsNumber() (float64, bool) {
	v, ok := b.scalar.(float64)
	return v, ok && b.kind == KindNumber
}

func (b RouteBlob) AsString() (string, bool) {
	v, ok := b.scalar.(string)
	return v, ok && b.kind == KindString
}

func (b RouteBlob) AsArray() ([]RouteBlob, bool) {
	if b.kind != KindArray {
		return nil, false
	}
	return b.array, true
}

func (b RouteBlob) AsObject() (*OrderedObject[RouteBlob], bool) {
	if b.kind != KindObject {
		return nil, false
	}
	return b.object, true
}

func (b RouteBlob) AsErr() (PackErr, bool) {
	if b.kind != KindErr {
		return nil, false
	}
	return b.err, true
}

// FromJSON converts a generic decoded value (map[string]any / []any /
// scalars, as produced by encoding/json or yaml.v3) into a RouteBlob tree
// with no Err nodes. It is the entry point Pack uses after resolving every
// `use:` clause in a subtree.
func FromJSON(v any) RouteBlob {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case int:
		return Number(float64(x))
	case string:
		return String(x)
	case []any:
		items := make([]RouteBlob, len(x))
		for i, item := range x {
			items[i] = FromJSON(item)
		}
		return Array(items)
	case *resource.OrderedMap:
		obj := newOrderedObject[RouteBlob]()
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			obj.Set(k, FromJSON(val))
		}
		return Object(obj)
	case map[string]any:
		// Not produced by resource.LoadStructured (which preserves order
		// via *resource.OrderedMap) — kept for callers building a
		// RouteBlob from a hand-constructed Go value (tests, plugins
		// synthesising data with no source ordering to preserve).
		obj := newOrderedObject[RouteBlob]()
		for k, v := range x {
			obj.Set(k, FromJSON(v))
		}
		return Object(obj)
	default:
		return Null()
	}
}
