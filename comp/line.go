package comp

import (
	"github.com/celer-dev/celerc/lang/richtext"
	"github.com/celer-dev/celerc/prep"
)

// RichText is an alias for the rich-text block sequence every text-typed
// line property compiles to (spec §4.7/§4.11).
type RichText = richtext.RichText

// NoteKind discriminates a note block's content type (spec §4.11 "notes").
type NoteKind int

const (
	NoteText NoteKind = iota
	NoteImage
	NoteVideo
)

// Note is one entry of a line's `notes` property.
type Note struct {
	Kind    NoteKind
	Content RichText
	Link    string
}

// Movement is one entry of a line's `movements` property (spec §4.11): a
// bare coord array implies `to` with no warp/exclude/colour-override; an
// object form may set any of the four fields.
type Movement struct {
	To      prep.GameCoord
	Warp    bool
	Exclude bool
	Color   *string
}

// Marker is one entry of a line's `markers` property; Color is nil when
// the marker inherits the line's current colour.
type Marker struct {
	At    prep.GameCoord
	Color *string
}

// CompLine is one compiled route line (spec §3 CompLine / §4.11).
type CompLine struct {
	Text            RichText
	Color           string
	Movements       []Movement
	Diagnostics     []Diagnostic
	IconDoc         string
	IconMap         string
	Coord           prep.GameCoord
	MapIconPriority int
	Markers         []Marker
	SecondaryText   RichText
	Counter         RichText
	Notes           []Note
	SplitName       *RichText
	// Properties holds whatever of the original property bag survived
	// desugaring/interpretation, for plugins to consume (spec §4.11
	// "residual property bag preserved for plugins").
	Properties *PropMap
}

// CompSection is one compiled route section (spec §3 CompSection).
type CompSection struct {
	Name  string
	Lines []CompLine
}

// CompDoc is the complete output of the Comp phase (spec §3 CompDoc).
type CompDoc struct {
	Config      prep.RouteConfig
	Preface     []CompLine
	Route       []CompSection
	Diagnostics []Diagnostic
}

// Diagnostic is a Comp-phase diagnostic record (spec §6 "Exported document
// shapes"): Type is "error" or "warning", or a plugin id when the plugin
// host reports its own diagnostics (spec §4.13 get_diagnostics_source()).
type Diagnostic struct {
	Source string
	Type   string
	Msg    string
}
