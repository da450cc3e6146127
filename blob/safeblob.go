package blob

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SafeRouteBlob is the error-free value produced by walking a RouteBlob
// (spec §3/§4.3): it carries the same Kind set minus KindErr. Because Go
// has no lifetimes, the Rust borrowed/owned distinction collapses into an
// `owned` flag: a "borrowed" SafeRouteBlob simply aliases the arrays/
// objects of the RouteBlob it was walked from (Go maps and slices are
// reference types, so this aliasing is free), while an "owned" one holds
// a value built fresh by a caller (e.g. a plugin synthesising data with
// no backing RouteBlob).
type SafeRouteBlob struct {
	kind   Kind
	scalar any
	array  []SafeRouteBlob
	object *OrderedObject[SafeRouteBlob]
	owned  bool
}

// SafeNull returns the owned null SafeRouteBlob.
func SafeNull() SafeRouteBlob { return SafeRouteBlob{kind: KindNull, owned: true} }

// SafeBool wraps an owned boolean scalar.
func SafeBool(b bool) SafeRouteBlob { return SafeRouteBlob{kind: KindBool, scalar: b, owned: true} }

// SafeNumber wraps an owned numeric scalar.
func SafeNumber(n float64) SafeRouteBlob {
	return SafeRouteBlob{kind: KindNumber, scalar: n, owned: true}
}

// SafeString wraps an owned string scalar.
func SafeString(s string) SafeRouteBlob {
	return SafeRouteBlob{kind: KindString, scalar: s, owned: true}
}

// SafeArray wraps an owned array.
func SafeArray(items []SafeRouteBlob) SafeRouteBlob {
	return SafeRouteBlob{kind: KindArray, array: items, owned: true}
}

// SafeObj wraps an owned ordered object.
func SafeObj(obj *OrderedObject[SafeRouteBlob]) SafeRouteBlob {
	return SafeRouteBlob{kind: KindObject, object: obj, owned: true}
}

func (b SafeRouteBlob) Kind() Kind { return b.kind }

// Owned reports whether this value was built directly (true) rather than
// borrowed by walking a RouteBlob (false).
func (b SafeRouteBlob) Owned() bool { return b.owned }

func (b SafeRouteBlob) AsBool() (bool, bool) {
	v, ok := b.scalar.(bool)
	return v, ok && b.kind == KindBool
}

func (b SafeRouteBlob) AsNumber() (float64, bool) {
	v, ok := b.scalar.(float64)
	return v, ok && b.kind == KindNumber
}

func (b SafeRouteBlob) AsString() (string, bool) {
	v, ok := b.scalar.(string)
	return v, ok && b.kind == KindString
}

func (b SafeRouteBlob) AsArray() ([]SafeRouteBlob, bool) {
	if b.kind != KindArray {
		return nil, false
	}
	return b.array, true
}

func (b SafeRouteBlob) AsObject() (*OrderedObject[SafeRouteBlob], bool) {
	if b.kind != KindObject {
		return nil, false
	}
	return b.object, true
}

// TryIntoArray mirrors the teacher domain's Cast::try_into_array: on
// success it returns the array; on failure it returns the original value
// unchanged so the caller can fall back to another interpretation
// without losing the value.
func (b SafeRouteBlob) TryIntoArray() ([]SafeRouteBlob, SafeRouteBlob, bool) {
	if b.kind != KindArray {
		return nil, b, false
	}
	return b.array, SafeRouteBlob{}, true
}

// TryIntoString mirrors Cast::try_into_string.
func (b SafeRouteBlob) TryIntoString() (string, SafeRouteBlob, bool) {
	if b.kind != KindString {
		return "", b, false
	}
	s, _ := b.scalar.(string)
	return s, SafeRouteBlob{}, true
}

// CoerceToString is CoerceToString for SafeRouteBlob, identical rules to
// RouteBlob.CoerceToString (spec §4.4).
func (b SafeRouteBlob) CoerceToString() string {
	switch b.kind {
	case KindNull:
		return ""
	case KindBool:
		if v, _ := b.AsBool(); v {
			return "true"
		}
		return "false"
	case KindNumber:
		v, _ := b.AsNumber()
		return formatNumber(v)
	case KindString:
		s, _ := b.AsString()
		return s
	case KindArray:
		return "[object array]"
	case KindObject:
		return "[object object]"
	default:
		return ""
	}
}

// CoerceToRepl is CoerceToString with null rendered as "null".
func (b SafeRouteBlob) CoerceToRepl() string {
	if b.kind == KindNull {
		return "null"
	}
	return b.CoerceToString()
}

// CoerceTruthy is JS-style truthiness, identical to RouteBlob.CoerceTruthy.
func (b SafeRouteBlob) CoerceTruthy() bool {
	switch b.kind {
	case KindNull:
		return false
	case KindBool:
		v, _ := b.AsBool()
		return v
	case KindNumber:
		v, _ := b.AsNumber()
		return v != 0
	case KindString:
		s, _ := b.AsString()
		return s != ""
	case KindArray, KindObject:
		return true
	default:
		return false
	}
}

// TryCoerceToF64 is TryCoerceToF64 for SafeRouteBlob: a number passes
// through, a string is trimmed and parsed (spec §4.4), used by Comp's
// coordinate/movement-value parsing (comp/coord.go).
func (b SafeRouteBlob) TryCoerceToF64() (float64, bool) {
	switch b.kind {
	case KindNumber:
		return b.AsNumber()
	case KindString:
		s, _ := b.AsString()
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// TryCoerceToI64 is TryCoerceToI64 for SafeRouteBlob.
func (b SafeRouteBlob) TryCoerceToI64() (int64, bool) {
	switch b.kind {
	case KindNumber:
		v, _ := b.AsNumber()
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case KindString:
		s, _ := b.AsString()
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// TryCoerceToBool is TryCoerceToBool for SafeRouteBlob.
func (b SafeRouteBlob) TryCoerceToBool() (bool, bool) {
	switch b.kind {
	case KindNull:
		return false, true
	case KindBool:
		return b.AsBool()
	case KindNumber:
		v, _ := b.AsNumber()
		switch v {
		case 0:
			return false, true
		case 1:
			return true, true
		default:
			return false, false
		}
	case KindString:
		s, _ := b.AsString()
		switch strings.TrimSpace(s) {
		case "true":
			return true, true
		case "false":
			return false, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// MarshalJSON renders a SafeRouteBlob as the plain JSON value it
// represents, dispatching to its object's own ordered encoding rather
// than exposing the unexported kind/scalar/array/object fields.
func (b SafeRouteBlob) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		v, _ := b.AsBool()
		return json.Marshal(v)
	case KindNumber:
		v, _ := b.AsNumber()
		return json.Marshal(v)
	case KindString:
		v, _ := b.AsString()
		return json.Marshal(v)
	case KindArray:
		v, _ := b.AsArray()
		return json.Marshal(v)
	case KindObject:
		v, _ := b.AsObject()
		if v == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(v)
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML mirrors MarshalJSON for yaml.v3, returning a plain Go value
// (or the nested *OrderedObject, whose own MarshalYAML takes over) for
// yaml.Node.Encode to render.
func (b SafeRouteBlob) MarshalYAML() (interface{}, error) {
	switch b.kind {
	case KindNull:
		return nil, nil
	case KindBool:
		v, _ := b.AsBool()
		return v, nil
	case KindNumber:
		v, _ := b.AsNumber()
		return v, nil
	case KindString:
		v, _ := b.AsString()
		return v, nil
	case KindArray:
		v, _ := b.AsArray()
		return v, nil
	case KindObject:
		v, _ := b.AsObject()
		if v == nil {
			return map[string]any{}, nil
		}
		return v, nil
	default:
		return nil, nil
	}
}

// DiagKind distinguishes the severity/origin of a Diagnostic produced
// while walking a RouteBlob (spec §6 "Exported document shapes").
type DiagKind string

const (
	DiagError   DiagKind = "error"
	DiagWarning DiagKind = "warning"
)

// Diagnostic is the per-line, non-fatal record attached when Comp/Exec
// encounter an embedded RouteBlob Err node, or when a plugin reports a
// problem under its own id as Type.
type Diagnostic struct {
	Source string
	Type   string // "error" | "warning" | "<plugin-id>"
	Msg    string
}

// Walk converts a RouteBlob into a SafeRouteBlob, extracting any embedded
// Err node it finds (at any depth) into a Diagnostic and substituting
// null in its place (spec §4.3: "when an Err node is encountered the
// walker surfaces the contained error as a diagnostic at the current
// location and substitutes a null"). Arrays and objects are walked
// recursively; the resulting tree borrows the source RouteBlob's scalar
// values directly (Owned() is false for anything but a substituted null).
func Walk(b RouteBlob, diags *[]Diagnostic) SafeRouteBlob {
	switch b.kind {
	case KindNull:
		return SafeRouteBlob{kind: KindNull}
	case KindBool:
		v, _ := b.AsBool()
		return SafeRouteBlob{kind: KindBool, scalar: v}
	case KindNumber:
		v, _ := b.AsNumber()
		return SafeRouteBlob{kind: KindNumber, scalar: v}
	case KindString:
		v, _ := b.AsString()
		return SafeRouteBlob{kind: KindString, scalar: v}
	case KindArray:
		items, _ := b.AsArray()
		out := make([]SafeRouteBlob, len(items))
		for i, item := range items {
			out[i] = Walk(item, diags)
		}
		return SafeRouteBlob{kind: KindArray, array: out}
	case KindObject:
		obj, _ := b.AsObject()
		out := newOrderedObject[SafeRouteBlob]()
		if obj != nil {
			obj.Each(func(k string, v RouteBlob) {
				out.Set(k, Walk(v, diags))
			})
		}
		return SafeRouteBlob{kind: KindObject, object: out}
	case KindErr:
		err, _ := b.AsErr()
		if err != nil && diags != nil {
			*diags = append(*diags, Diagnostic{
				Source: err.Source(),
				Type:   string(DiagError),
				Msg:    err.Error(),
			})
		}
		return SafeNull()
	default:
		return SafeRouteBlob{kind: KindNull}
	}
}
