package pack

import (
	"fmt"

	celerpath "github.com/celer-dev/celerc/path"
)

// ErrorKind enumerates the fatal/embeddable failure modes of the Pack
// phase (spec §7 PackError kinds relevant to `use:` expansion).
type ErrorKind int

const (
	ErrInvalidUse ErrorKind = iota
	ErrInvalidPath
	ErrMaxUseDepthExceeded
	ErrMaxRefDepthExceeded
	ErrFailToLoadFile
	ErrFailToLoadURL
	ErrUnknownFormat
	ErrInvalidFormat
)

// Error is embedded in situ as a blob.RouteBlob Err node wherever a `use:`
// directive fails to expand (spec §4.10): siblings of the offending
// subtree are unaffected (invariant 5, "Pack error locality").
type Error struct {
	Kind ErrorKind
	Path celerpath.ResPath
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.kindText(), e.Err.Error())
	}
	return e.kindText()
}

// Source identifies the diagnostic-source prefix per spec §7.
func (e *Error) Source() string { return "celerc/pack" }

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) kindText() string {
	switch e.Kind {
	case ErrInvalidUse:
		return fmt.Sprintf("invalid use reference at %s", e.Path.String())
	case ErrInvalidPath:
		return fmt.Sprintf("invalid path resolving use at %s", e.Path.String())
	case ErrMaxUseDepthExceeded:
		return fmt.Sprintf("max use depth exceeded at %s", e.Path.String())
	case ErrMaxRefDepthExceeded:
		return fmt.Sprintf("max reference depth exceeded at %s", e.Path.String())
	case ErrFailToLoadFile:
		return fmt.Sprintf("failed to load file %s", e.Path.String())
	case ErrFailToLoadURL:
		return fmt.Sprintf("failed to load url %s", e.Path.String())
	case ErrUnknownFormat:
		return fmt.Sprintf("unknown format for %s", e.Path.String())
	case ErrInvalidFormat:
		return fmt.Sprintf("invalid format for %s", e.Path.String())
	default:
		return fmt.Sprintf("pack error at %s", e.Path.String())
	}
}

func newError(kind ErrorKind, rp celerpath.ResPath, err error) *Error {
	return &Error{Kind: kind, Path: rp, Err: err}
}
