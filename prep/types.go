// Package prep implements the Prep phase (spec §4.9): resolving the
// project manifest and any entry-point overlay, interpreting the
// `title`/`version`/`map`/`icons`/`tags`/`presets`/`plugins`/`config`
// properties into a PrepCtx, and registering plugins ahead of Pack/Comp.
package prep

import (
	"time"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/preset"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/setting"
)

// Axis identifies which signed game-world axis a route coordinate
// component maps to (spec §3 MapCoordMap).
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisNegX
	AxisNegY
	AxisNegZ
)

// ParseAxis decodes the short axis tokens accepted in project.yaml
// (`x`,`y`,`z`,`-x`,`-y`,`-z`, case-insensitively).
func ParseAxis(s string) (Axis, bool) {
	switch s {
	case "x", "X":
		return AxisX, true
	case "y", "Y":
		return AxisY, true
	case "z", "Z":
		return AxisZ, true
	case "-x", "-X":
		return AxisNegX, true
	case "-y", "-Y":
		return AxisNegY, true
	case "-z", "-Z":
		return AxisNegZ, true
	default:
		return 0, false
	}
}

// GameCoord is a 3-component game-world coordinate (spec §3); the zero
// value is the documented default (0,0,0).
type GameCoord struct {
	X, Y, Z float64
}

// MapCoordMap holds the axis tuples used to translate a route's 2-or-3
// element coordinate arrays into GameCoord (spec §3/§4.11).
type MapCoordMap struct {
	Mapping2D [2]Axis
	Mapping3D [3]Axis
}

// MapMetadata is the `map:` section of the project manifest (spec §3).
type MapMetadata struct {
	InitialCoord GameCoord
	InitialColor string
	CoordMap     MapCoordMap
	// Layers is kept as a raw blob: viewer-only tile layer definitions
	// the core never interprets beyond passing them through to ExecDoc.
	Layers []blob.SafeRouteBlob
}

// TagMetadata is one entry of the `tags:` section (spec §4.13 split-format,
// export-livesplit — both dispatch off a line's tag, which carries a
// split_type used to decide which counter maps to a split).
type TagMetadata struct {
	SplitType string
}

// RouteConfig is the merged, already use:-resolved project configuration
// (spec §4.9 PrepCtx.config): the top-level scalar/struct properties a
// route depends on throughout Comp/Exec.
type RouteConfig struct {
	Title   string
	Version string
	Map     *MapMetadata
	Icons   map[string]string
	Tags    map[string]TagMetadata
}

// PluginSourceKind discriminates where a PluginInstance's behaviour comes
// from (spec §4.13, mirroring the original's `Plugin::BuiltIn`/`Script`).
type PluginSourceKind int

const (
	PluginBuiltIn PluginSourceKind = iota
	PluginScript
)

// PluginInstance is one configured plugin: its source (a built-in id or a
// script resource id) and the settings blob passed to it verbatim (spec
// §4.13 "a settings blob").
type PluginInstance struct {
	ID       string
	Source   PluginSourceKind
	Props    blob.SafeRouteBlob
	FromUser bool
	Enabled  bool
}

// PluginOptions lets the caller add/remove plugins declared by the route
// (spec §4.9 step 5, §4.13 option.rs).
type PluginOptions struct {
	Remove []string
	Add    []PluginInstance
}

// CompilerMetadata is the presets/plugins/default-priority bundle Prep
// hands to Comp (spec §4.9 PrepCtx.meta).
type CompilerMetadata struct {
	Presets             *preset.Registry
	Plugins             []PluginInstance
	DefaultIconPriority int
}

// Setting re-exports the shared depth-bound configuration so callers can
// write prep.Setting without importing the setting package directly.
type Setting = setting.Setting

// PrepCtx is the complete output of the Prep phase (spec §4.9): every
// later phase reads from it but never mutates it.
type PrepCtx struct {
	StartTime time.Time
	Config    RouteConfig
	Meta      CompilerMetadata
	Plugins   []PluginInstance
	EntryPath string
	// RouteBlob, when non-nil, is an already-packed route that the
	// pipeline uses in place of expanding RawRoute (spec §4.9 step 6,
	// "with_route_built"); Load never sets it.
	RouteBlob *blob.RouteBlob
	// RawRoute is the project's `route:` value exactly as decoded,
	// deferred for Pack to expand with its own depth counters.
	RawRoute   any
	Setting    Setting
	ProjectRes resource.Resource
}
