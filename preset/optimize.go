package preset

import (
	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/lang/tempstr"
)

// maxOptimizeDepth bounds the recursive descent through `presets: [...]`
// references during static pre-expansion; it is the same value as
// setting.Default().MaxPresetNamespaceDepth, while hydration-time depth in
// Comp is bounded separately by MaxPresetRefDepth (spec §4.8 Open Question).
const maxOptimizeDepth = 16

type nodeState int

const (
	stateWhite nodeState = iota // not yet visited
	stateGrey                   // optimization in progress (cycle guard)
	stateBlack                  // optimization complete
)

// Registry holds every preset known to a project by name and memoizes
// their optimization pass, the way `kraklabs-cie`'s dependency-graph
// walker marks in-progress/done nodes to detect and safely skip cycles.
type Registry struct {
	presets map[string]*Preset
	state   map[string]nodeState
}

// NewRegistry builds a Registry over presets, which OptimizeAll mutates
// in place.
func NewRegistry(presets map[string]*Preset) *Registry {
	return &Registry{presets: presets, state: make(map[string]nodeState, len(presets))}
}

// Lookup returns the (possibly already optimized) preset registered
// under name.
func (r *Registry) Lookup(name string) (*Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// OptimizeAll runs optimize on every preset in the registry. Order does
// not matter: each preset optimizes its own `presets:` references
// on demand and memoizes the result.
func (r *Registry) OptimizeAll() {
	for name := range r.presets {
		r.optimize(name, 0)
	}
}

// optimize statically pre-expands p's `presets: [...]` list, if p has
// one, by inlining the referenced presets' hydrated entries in place of
// the list (spec §4.8 last paragraph): if the top level has ANY
// templated key the whole object is left untouched (the key could be
// "presets" at hydration time); otherwise a static "presets" key's
// array is walked front-to-back, inlining each literal, resolvable,
// acyclic reference until the first entry that can't be resolved
// statically (a templated array element, a missing preset, or a cycle),
// at which point the walk stops: whatever was inlined so far is kept, and
// the unresolved rest of the list stays as the "presets" entry for
// runtime hydration.
func (r *Registry) optimize(name string, depth int) {
	if depth > maxOptimizeDepth {
		return
	}
	p := r.presets[name]
	if p == nil {
		return
	}
	switch r.state[name] {
	case stateBlack, stateGrey:
		return
	}
	r.state[name] = stateGrey
	defer func() { r.state[name] = stateBlack }()

	presetsIdx := -1
	for i, e := range p.entries {
		lit, ok := e.key.AsLiteral()
		if !ok {
			return // dynamic key at top level: not optimizable
		}
		if lit == "presets" {
			presetsIdx = i
		}
	}
	if presetsIdx < 0 {
		return // nothing to inline
	}

	refs, ok := p.entries[presetsIdx].val.AsArray()
	if !ok {
		return
	}

	var base []objectEntry
	resolved := 0
	for _, ref := range refs {
		str, ok := ref.AsLiteralString()
		if !ok {
			break // first non-static entry stops the static chain
		}
		inst, ok := ParseInst(str)
		if !ok {
			break
		}
		r.optimize(inst.Name, depth+1)
		if r.state[inst.Name] == stateGrey {
			break // cycle: leave the remainder to runtime hydration
		}
		target, ok := r.presets[inst.Name]
		if !ok {
			break
		}
		hydrated := target.Hydrate(inst.Args)
		mergeHydrated(&base, hydrated)
		resolved++
	}

	merged := make([]objectEntry, 0, len(p.entries)+len(base))
	merged = append(merged, p.entries[:presetsIdx]...)
	merged = append(merged, base...)
	if resolved < len(refs) {
		rest := Blob{kind: KindArray, array: refs[resolved:]}
		merged = append(merged, objectEntry{key: p.entries[presetsIdx].key, val: rest})
	}
	merged = append(merged, p.entries[presetsIdx+1:]...)
	p.entries = merged
}

// mergeHydrated appends each entry of an already-hydrated object into
// base as a NonTemplate entry, keyed by its literal (now-resolved) key,
// overwriting any existing entry of the same key in place (later
// inlined preset wins, same "later entries overwrite earlier" rule as
// Blob.Hydrate's Object case).
func mergeHydrated(base *[]objectEntry, obj *blob.OrderedObject[blob.SafeRouteBlob]) {
	obj.Each(func(k string, v blob.SafeRouteBlob) {
		val := Blob{kind: KindNonTemplate, scalar: v}
		for i := range *base {
			if lit, ok := (*base)[i].key.AsLiteral(); ok && lit == k {
				(*base)[i].val = val
				return
			}
		}
		*base = append(*base, objectEntry{key: tempstr.Literal(k), val: val})
	})
}
