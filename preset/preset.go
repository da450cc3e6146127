// Package preset implements celer's preset expansion engine (spec §4.8):
// compiling a raw JSON preset definition into a template tree, parsing
// `Name::Sub<args>` instantiation strings, and hydrating a preset
// against concrete arguments into a SafeRouteBlob.
package preset

import (
	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/lang/tempstr"
	"github.com/celer-dev/celerc/resource"
)

// BlobKind discriminates a compiled PresetBlob node.
type BlobKind int

const (
	KindNonTemplate BlobKind = iota
	KindTemplate
	KindArray
	KindObject
)

// objectEntry is one (key, value) pair of a compiled preset object; the
// key is itself template-compiled because preset args may parameterise
// property names, not just values (spec §4.8).
type objectEntry struct {
	key tempstr.TempStr
	val Blob
}

// Blob is a compiled preset node (spec §4.8's PresetBlob): a scalar with
// no `$(n)` references becomes NonTemplate, a templated scalar becomes
// Template, and arrays/objects recurse.
type Blob struct {
	kind   BlobKind
	scalar blob.SafeRouteBlob // NonTemplate
	tmpl   tempstr.TempStr    // Template
	array  []Blob             // Array
	object []objectEntry      // Object, insertion order preserved
}

// Compile builds a Blob from a generic decoded value (as produced by
// encoding/json/yaml.v3) — the entry point for turning a raw preset
// definition (or any sub-value of one) into the template tree.
func Compile(v any) Blob {
	switch x := v.(type) {
	case nil:
		return Blob{kind: KindNonTemplate, scalar: blob.SafeNull()}
	case bool:
		return Blob{kind: KindNonTemplate, scalar: blob.SafeBool(x)}
	case float64:
		return Blob{kind: KindNonTemplate, scalar: blob.SafeNumber(x)}
	case int:
		return Blob{kind: KindNonTemplate, scalar: blob.SafeNumber(float64(x))}
	case string:
		ts := tempstr.Compile(x)
		if ts.IsLiteral() {
			return Blob{kind: KindNonTemplate, scalar: blob.SafeString(ts.Hydrate(nil))}
		}
		return Blob{kind: KindTemplate, tmpl: ts}
	case []any:
		items := make([]Blob, len(x))
		for i, item := range x {
			items[i] = Compile(item)
		}
		return Blob{kind: KindArray, array: items}
	case *resource.OrderedMap:
		entries := make([]objectEntry, 0, x.Len())
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			entries = append(entries, objectEntry{key: tempstr.Compile(k), val: Compile(val)})
		}
		return Blob{kind: KindObject, object: entries}
	case map[string]any:
		// Not produced by resource.LoadStructured — kept for
		// hand-constructed presets (tests).
		entries := make([]objectEntry, 0, len(x))
		for k, v := range x {
			entries = append(entries, objectEntry{key: tempstr.Compile(k), val: Compile(v)})
		}
		return Blob{kind: KindObject, object: entries}
	default:
		return Blob{kind: KindNonTemplate, scalar: blob.SafeNull()}
	}
}

// AsArray reports whether b is an Array node, returning its elements.
func (b Blob) AsArray() ([]Blob, bool) {
	if b.kind != KindArray {
		return nil, false
	}
	return b.array, true
}

// AsLiteralString reports whether b is a NonTemplate string scalar,
// returning its value. Used by Registry.optimize to recognise statically
// resolvable `presets: [...]` list entries.
func (b Blob) AsLiteralString() (string, bool) {
	if b.kind != KindNonTemplate {
		return "", false
	}
	return b.scalar.AsString()
}

// Hydrate substitutes args into every Template node, recursing into
// arrays/objects, and returns the error-free result (spec §4.8):
// NonTemplate values pass through unchanged, Template scalars are
// rendered via tempstr.Hydrate, and Object hydration uses an ordered
// map keyed by hydrated key where later entries overwrite earlier ones.
func (b Blob) Hydrate(args []string) blob.SafeRouteBlob {
	switch b.kind {
	case KindNonTemplate:
		return b.scalar
	case KindTemplate:
		return blob.SafeString(b.tmpl.Hydrate(args))
	case KindArray:
		items := make([]blob.SafeRouteBlob, len(b.array))
		for i, item := range b.array {
			items[i] = item.Hydrate(args)
		}
		return blob.SafeArray(items)
	case KindObject:
		out := blob.NewObject[blob.SafeRouteBlob]()
		for _, e := range b.object {
			out.Set(e.key.Hydrate(args), e.val.Hydrate(args))
		}
		return blob.SafeObj(out)
	default:
		return blob.SafeNull()
	}
}

// Preset is a compiled preset definition: the top-level object of a
// preset compiles to an ordered list of (TempStr key, Blob value) pairs
// (spec §4.8 requires the compile input to be an object).
type Preset struct {
	entries []objectEntry
}

// CompilePreset compiles v (which must be an object — *resource.OrderedMap
// as decoded, or a hand-built map[string]any) into a Preset, or reports
// false if v isn't an object.
func CompilePreset(v any) (Preset, bool) {
	switch v.(type) {
	case *resource.OrderedMap, map[string]any:
	default:
		return Preset{}, false
	}
	b := Compile(v)
	return Preset{entries: b.object}, true
}

// Hydrate renders every entry of the preset against args into an ordered
// SafeRouteBlob object, ready to be merged into a line's property bag
// during Comp.
func (p Preset) Hydrate(args []string) *blob.OrderedObject[blob.SafeRouteBlob] {
	out := blob.NewObject[blob.SafeRouteBlob]()
	for _, e := range p.entries {
		out.Set(e.key.Hydrate(args), e.val.Hydrate(args))
	}
	return out
}
