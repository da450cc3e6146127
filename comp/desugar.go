package comp

import "github.com/celer-dev/celerc/blob"

// DesugarLine splits a raw line value into its display text and its
// property object (spec §4.11), grounded exactly on `comp/line/desugar.rs`:
//
//   - an object with exactly one key, whose value is itself an object,
//     desugars to (key, that object);
//   - any other value (string/null/bool/number) desugars to its coerced
//     string form with an empty property object;
//   - an array can never be a line;
//   - an object with zero or more-than-one key can never be a line;
//   - an object with one key whose value is not an object is invalid.
func DesugarLine(value blob.SafeRouteBlob) (string, *PropMap, *Error) {
	if _, ok := value.AsArray(); ok {
		return value.CoerceToString(), NewPropMap(), newErr(ErrArrayCannotBeLine)
	}
	obj, ok := value.AsObject()
	if !ok {
		return value.CoerceToString(), NewPropMap(), nil
	}
	keys := obj.Keys()
	if len(keys) == 0 {
		return "[object object]", NewPropMap(), newErr(ErrEmptyObjectCannotBeLine)
	}
	if len(keys) > 1 {
		return "[object object]", NewPropMap(), newErr(ErrTooManyKeysInObjectLine)
	}
	key := keys[0]
	propsVal, _ := obj.Get(key)
	propsObj, ok := propsVal.AsObject()
	if !ok {
		return propsVal.CoerceToString(), NewPropMap(), newErr(ErrLinePropertiesMustBeObject)
	}
	props := NewPropMap()
	propsObj.Each(func(k string, v blob.SafeRouteBlob) {
		props.Insert(k, v)
	})
	return key, props, nil
}
