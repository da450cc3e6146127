package comp

import "fmt"

// ErrorKind enumerates the Comp-phase failure modes (spec §7 CompError):
// all of these attach to the offending line's diagnostics and never abort
// the rest of the document.
type ErrorKind int

const (
	ErrArrayCannotBeLine ErrorKind = iota
	ErrEmptyObjectCannotBeLine
	ErrTooManyKeysInObjectLine
	ErrLinePropertiesMustBeObject
	ErrInvalidLinePropertyType
	ErrInvalidPresetString
	ErrPresetNotFound
	ErrMaxPresetDepthExceeded
	ErrUnusedProperty
	ErrTooManyTagsInCounter
	ErrInvalidMovementType
	ErrInvalidCoordinateType
	ErrInvalidCoordinateArray
	ErrInvalidCoordinateValue
	ErrInvalidMovementPreset
	ErrInvalidMarkerType
	ErrIsPreface
	ErrInvalidSectionType
	ErrInvalidRouteType
	ErrPluginBeforeCompile
	ErrPluginAfterCompile
)

// isWarning reports whether kind is a warning-severity diagnostic rather
// than an error (spec §7: `UnusedProperty`, `TooManyTagsInCounter`).
func (k ErrorKind) isWarning() bool {
	return k == ErrUnusedProperty || k == ErrTooManyTagsInCounter
}

// Error is a Comp-phase error carrying an optional argument used to
// render its message (spec §7 CompError, each variant's `{0}`).
type Error struct {
	Kind ErrorKind
	Arg  string
}

func newErr(kind ErrorKind) *Error { return &Error{Kind: kind} }

func newErrArg(kind ErrorKind, arg string) *Error { return &Error{Kind: kind, Arg: arg} }

func (e *Error) Error() string {
	switch e.Kind {
	case ErrArrayCannotBeLine:
		return "A line cannot be an array. Check the formatting of your route."
	case ErrEmptyObjectCannotBeLine:
		return "A line cannot be an empty object."
	case ErrTooManyKeysInObjectLine:
		return "Multiple keys for a line found. Did you forget to indent the properties?"
	case ErrLinePropertiesMustBeObject:
		return "Line properties must be a mapping. Did you accidentally put a property in the wrong place?"
	case ErrInvalidLinePropertyType:
		return fmt.Sprintf("Line property `%s` has invalid type", e.Arg)
	case ErrInvalidPresetString:
		return fmt.Sprintf("Preset string `%s` is malformed", e.Arg)
	case ErrPresetNotFound:
		return fmt.Sprintf("Preset `%s` is not found", e.Arg)
	case ErrMaxPresetDepthExceeded:
		return fmt.Sprintf("Maximum preset depth exceeded when processing the preset `%s`. Did you have circular references in your presets?", e.Arg)
	case ErrUnusedProperty:
		return fmt.Sprintf("Property `%s` is unused. Did you misspell it?", e.Arg)
	case ErrTooManyTagsInCounter:
		return "Counter property can only have 1 tag."
	case ErrInvalidMovementType:
		return "Some of the movements specified cannot be processed."
	case ErrInvalidCoordinateType:
		return fmt.Sprintf("The coordinate specified by `%s` is not an array.", e.Arg)
	case ErrInvalidCoordinateArray:
		return "Some of the coordinates specified may not be valid. Coordinates must have either 2 or 3 components."
	case ErrInvalidCoordinateValue:
		return fmt.Sprintf("`%s` is not a valid coordinate value.", e.Arg)
	case ErrInvalidMovementPreset:
		return fmt.Sprintf("Preset `%s` cannot be used inside the `movements` property because it does not contain any movement.", e.Arg)
	case ErrInvalidMarkerType:
		return "Some of the markers specified cannot be processed."
	case ErrIsPreface:
		return "Preface can only be in the beginning of the route."
	case ErrInvalidSectionType:
		return "Section data is not the correct type."
	case ErrInvalidRouteType:
		return "Route data is not the correct type."
	case ErrPluginBeforeCompile:
		return fmt.Sprintf("Failed to run plugins before compile: %s", e.Arg)
	case ErrPluginAfterCompile:
		return fmt.Sprintf("Failed to run plugins after compile: %s", e.Arg)
	default:
		return "comp error"
	}
}

// Source identifies the diagnostic-source prefix per spec §7.
func (e *Error) Source() string { return "celerc/comp" }

// diagnosticType renders "error" or "warning" for blob.Diagnostic.Type.
func (e *Error) diagnosticType() string {
	if e.Kind.isWarning() {
		return "warning"
	}
	return "error"
}
