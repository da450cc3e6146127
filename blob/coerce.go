package blob

import (
	"strconv"
	"strings"
)

// CoerceToString loosely interprets a RouteBlob as a string without
// recursively expanding array/object contents (spec §4.4):
//
//	Null   -> ""
//	Bool   -> "true" or "false"
//	Number -> string representation of the number
//	String -> the string itself
//	Array  -> "[object array]"
//	Object -> "[object object]"
func (b RouteBlob) CoerceToString() string {
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

// CoerceToRepl is CoerceToString, except null coerces to the literal
// "null" rather than the empty string (spec §4.4, used by template-string
// and rich-text substitution so a missing value is visible in output).
func (b RouteBlob) CoerceToRepl() string {
	if b.kind == KindNull {
		return "null"
	}
	return b.CoerceToString()
}

// CoerceTruthy interprets a RouteBlob as a boolean based on JS-style
// truthiness (spec §4.4): true for true, non-zero numbers, non-empty
// strings, arrays, and objects.
func (b RouteBlob) CoerceTruthy() bool {
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

// TryCoerceToF64 interprets a number or a trimmed numeric string as f64.
func (b RouteBlob) TryCoerceToF64() (float64, bool) {
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

// TryCoerceToU64 interprets a non-negative number or trimmed numeric
// string as u64.
func (b RouteBlob) TryCoerceToU64() (uint64, bool) {
	switch b.kind {
	case KindNumber:
		v, _ := b.AsNumber()
		if v < 0 || v != float64(uint64(v)) {
			return 0, false
		}
		return uint64(v), true
	case KindString:
		s, _ := b.AsString()
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// TryCoerceToU32 is TryCoerceToU64 narrowed to u32, failing if the value
// overflows.
func (b RouteBlob) TryCoerceToU32() (uint32, bool) {
	v, ok := b.TryCoerceToU64()
	if !ok || v > ^uint32(0) {
		return 0, false
	}
	return uint32(v), true
}

// TryCoerceToI64 interprets a number or trimmed numeric string as i64.
func (b RouteBlob) TryCoerceToI64() (int64, bool) {
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

// TryCoerceToBool interprets null, 0/1, a bool, or the strings "true"/
// "false" as a bool; anything else fails (spec §4.4 — stricter than
// CoerceTruthy, used where an explicit boolean property is expected).
func (b RouteBlob) TryCoerceToBool() (bool, bool) {
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

// formatNumber mirrors serde_json::Number::to_string: integral values
// print without a trailing ".0", everything else uses the shortest
// round-tripping decimal representation.
func formatNumber(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
