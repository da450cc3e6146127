// Package resource implements the pluggable resource loading abstraction
// (spec §4.1/§4.2): a Loader fetches raw bytes for a path.ResPath, and a
// Resource pairs a ResPath with the Loader that can fetch it.
package resource

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	celerpath "github.com/celer-dev/celerc/path"
)

// Format identifies the structured-decode dialect dispatched by file
// extension (spec §4.2).
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
)

// FormatFromPath dispatches on the final path segment's suffix.
func FormatFromPath(p celerpath.Path) Format {
	segs := p.Segments()
	if len(segs) == 0 {
		return FormatUnknown
	}
	last := segs[len(segs)-1]
	switch {
	case strings.HasSuffix(last, ".yaml"), strings.HasSuffix(last, ".yml"):
		return FormatYAML
	case strings.HasSuffix(last, ".json"):
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// ChangeStatus is the result of a loader's check-changed probe (spec §4.2,
// used by the context cache in §4.14).
type ChangeStatus int

const (
	StatusLoaded ChangeStatus = iota
	StatusNotModified
)

// Loader is the minimal fetch primitive every resource backend implements.
// Implementations MAY cache by ResPath and MAY support CheckChanged.
type Loader interface {
	LoadRaw(ctx context.Context, rp celerpath.ResPath) ([]byte, error)
}

// ChangeProbe is optionally implemented by a Loader to support the
// cache-invalidation protocol of §4.14.
type ChangeProbe interface {
	CheckChanged(ctx context.Context, rp celerpath.ResPath, fingerprint string) (ChangeStatus, string, error)
}

// Error kinds for loader failures (spec §7: FailToLoadFile/FailToLoadUrl,
// InvalidUtf8, UnknownFormat).
type ErrorKind int

const (
	ErrFailToLoadFile ErrorKind = iota
	ErrFailToLoadURL
	ErrInvalidUTF8
	ErrUnknownFormat
	ErrInvalidFormat
)

type Error struct {
	Kind ErrorKind
	Path celerpath.ResPath
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Path.String(), e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, rp celerpath.ResPath, err error) error {
	return &Error{Kind: kind, Path: rp, Err: err}
}

var errNotFound = fmt.Errorf("resource not found")

// BaseLoader derives the higher-level load operations (UTF-8, structured,
// image URL) from any Loader's LoadRaw, the way the teacher's
// provisioners/loader factors suffix dispatch out of scheme-specific
// parsers.
type BaseLoader struct {
	Loader
}

// LoadUTF8 loads and decodes the resource as a UTF-8 string.
func (b BaseLoader) LoadUTF8(ctx context.Context, rp celerpath.ResPath) (string, error) {
	raw, err := b.LoadRaw(ctx, rp)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(raw) {
		return "", newError(ErrInvalidUTF8, rp, fmt.Errorf("invalid UTF-8"))
	}
	return string(raw), nil
}

// LoadStructured decodes the resource as YAML or JSON depending on its
// file extension, preserving source object-key order (spec §4.8):
// objects decode to *OrderedMap rather than Go's order-randomizing
// map[string]any.
func (b BaseLoader) LoadStructured(ctx context.Context, rp celerpath.ResPath) (any, error) {
	raw, err := b.LoadRaw(ctx, rp)
	if err != nil {
		return nil, err
	}
	var out any
	switch FormatFromPath(rp.Path()) {
	case FormatYAML:
		out, err = decodeOrderedYAML(raw)
	case FormatJSON:
		out, err = decodeOrderedJSON(raw)
	default:
		return nil, newError(ErrUnknownFormat, rp, fmt.Errorf("unknown format"))
	}
	if err != nil {
		return nil, newError(ErrInvalidFormat, rp, err)
	}
	return out, nil
}

// LoadImageURL returns a reference to the resource usable by the viewer:
// local resources are embedded as base64 data: URLs, remote resources are
// passed through as-is (spec §3 "Resource" / §4.1).
func (b BaseLoader) LoadImageURL(ctx context.Context, rp celerpath.ResPath) (string, error) {
	if rp.IsRemote() {
		return rp.String(), nil
	}
	raw, err := b.LoadRaw(ctx, rp)
	if err != nil {
		return "", err
	}
	return toDataURL(rp.Path(), raw), nil
}
