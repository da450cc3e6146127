// Package setting holds the depth-bound knobs that every phase of the
// pipeline reads (spec §4.10/§4.11/§6): it is split out of prep/pack/comp
// so those packages can share one definition without an import cycle
// (prep builds a route via pack, pack's Packer needs the same Setting
// comp later reads off PrepCtx).
package setting

// Setting carries the user-overridable depth limits of the compilation
// (spec §6 "Use depth"/"Preset depth").
type Setting struct {
	// MaxUseDepth bounds a chain of directly-nested `use:` indirections
	// (spec §4.10). Default 8.
	MaxUseDepth int
	// MaxRefDepth bounds overall array/object nesting seen by Pack
	// (spec §4.10). Default 32.
	MaxRefDepth int
	// MaxPresetRefDepth bounds recursive preset-string instantiation
	// during Comp (spec §4.11). Default 8.
	MaxPresetRefDepth int
	// MaxPresetNamespaceDepth is the `Name::Sub::Sub...` namespace chain
	// depth bound (spec §4.8, §6 "preset namespace depth"). Default 16.
	// No phase reads it; the preset optimizer uses its own fixed bound
	// of the same value.
	MaxPresetNamespaceDepth int
}

// Default returns the spec's documented defaults (spec §6).
func Default() Setting {
	return Setting{
		MaxUseDepth:             8,
		MaxRefDepth:             32,
		MaxPresetRefDepth:       8,
		MaxPresetNamespaceDepth: 16,
	}
}
