// Package exec implements the Exec phase (spec §4.12): walking a CompDoc's
// sections/lines in order to split out map features (lines/icons/markers)
// from the document features (text/notes/counters), producing an ExecDoc.
package exec

import (
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/prep"
)

// RichText/Note/Diagnostic are reused verbatim from comp — Exec doesn't
// reinterpret document content, only splits out map geometry.
type (
	RichText   = comp.RichText
	Note       = comp.Note
	Diagnostic = comp.Diagnostic
)

// ExecLine is one executed route line (spec §3 ExecLine).
type ExecLine struct {
	Section       int
	Index         int
	Text          RichText
	SecondaryText RichText
	Notes         []Note
	Counter       RichText
	SplitName     *RichText
	IconDoc       string
	MapCoords     []prep.GameCoord
	Color         string
}

// MapLine is one connected, single-colour point sequence on the map
// (spec §4.12): a new MapLine starts on a colour change or a warp.
type MapLine struct {
	Color  string
	Points []prep.GameCoord
}

// MapIcon places a line's map-icon id at its coordinate (spec §4.12).
type MapIcon struct {
	ID       string
	Coord    prep.GameCoord
	Priority int
}

// MapMarker places a line's marker at its coordinate (spec §4.12); Color
// is always resolved (inherits the line's colour if the marker didn't
// override it).
type MapMarker struct {
	Coord prep.GameCoord
	Color string
}

// ExecMapSection is the per-section map overlay (spec §3 ExecSection).
type ExecMapSection struct {
	Lines   []MapLine
	Icons   []MapIcon
	Markers []MapMarker
}

// ExecSection is one executed route section (spec §3 ExecSection).
type ExecSection struct {
	Name  string
	Lines []ExecLine
	Map   ExecMapSection
}

// ExecDoc is the complete output of the Exec phase (spec §3 ExecDoc).
type ExecDoc struct {
	Project     prep.RouteConfig
	Preface     []ExecLine
	Route       []ExecSection
	Diagnostics []Diagnostic
}

// Executor runs the Exec phase; it holds no state across calls, unlike
// comp.Compiler, because CompDoc already carries every line's resolved
// colour and coordinate — Exec only needs the starting coordinate seeded
// from the project's map metadata; each line's colour is taken from the
// CompLine itself (spec §4.12 "Walks sections/lines in
// order, maintaining: current coord ...; current colour ...").
type Executor struct{}

// NewExecutor returns an Executor.
func NewExecutor() *Executor { return &Executor{} }

// Execute converts doc into an ExecDoc (spec §4.12).
func (e *Executor) Execute(doc comp.CompDoc) ExecDoc {
	var current prep.GameCoord
	if doc.Config.Map != nil {
		current = doc.Config.Map.InitialCoord
	}

	out := ExecDoc{
		Project:     doc.Config,
		Diagnostics: append([]Diagnostic{}, doc.Diagnostics...),
	}
	for _, pl := range doc.Preface {
		out.Preface = append(out.Preface, execLine(pl, -1, len(out.Preface)))
	}

	for secIdx, sec := range doc.Route {
		execSec, next, secDiags := execSection(sec, secIdx, current, doc.Config.Icons)
		out.Route = append(out.Route, execSec)
		out.Diagnostics = append(out.Diagnostics, secDiags...)
		current = next
	}
	return out
}

func checkIcon(id string, icons map[string]string, diags *[]Diagnostic) {
	if id == "" {
		return
	}
	if _, ok := icons[id]; !ok {
		*diags = append(*diags, newExecDiag(newErr(ErrIconNotFound, id)))
	}
}

func execLine(cl comp.CompLine, secIdx, lineIdx int) ExecLine {
	mapCoords := make([]prep.GameCoord, 0, len(cl.Movements))
	for _, mv := range cl.Movements {
		mapCoords = append(mapCoords, mv.To)
	}
	return ExecLine{
		Section:       secIdx,
		Index:         lineIdx,
		Text:          cl.Text,
		SecondaryText: cl.SecondaryText,
		Notes:         cl.Notes,
		Counter:       cl.Counter,
		SplitName:     cl.SplitName,
		IconDoc:       cl.IconDoc,
		MapCoords:     mapCoords,
		Color:         cl.Color,
	}
}

// execSection executes one section, threading the running map coordinate
// in from the previous section (spec §4.12's MapBuilder-equivalent state)
// and returning it updated for the next section. Map-line grouping itself
// never spans a section boundary: each ExecMapSection.Lines starts fresh,
// seeded at the incoming coordinate (matching the original's per-section
// ExecMapSection construction, `exec/exec_doc.rs`'s test_sections).
func execSection(sec comp.CompSection, secIdx int, startCoord prep.GameCoord, registeredIcons map[string]string) (ExecSection, prep.GameCoord, []Diagnostic) {
	current := startCoord
	var mapLines []MapLine
	var cur *MapLine
	var icons []MapIcon
	var markers []MapMarker
	var diags []Diagnostic
	lines := make([]ExecLine, 0, len(sec.Lines))

	flush := func() {
		if cur != nil && len(cur.Points) > 1 {
			mapLines = append(mapLines, *cur)
		}
		cur = nil
	}

	for lineIdx, cl := range sec.Lines {
		mapCoords := make([]prep.GameCoord, 0, len(cl.Movements))
		for _, mv := range cl.Movements {
			if mv.Warp {
				flush()
				cur = &MapLine{Color: cl.Color, Points: []prep.GameCoord{mv.To}}
				current = mv.To
				mapCoords = append(mapCoords, mv.To)
				continue
			}
			if cur == nil || cur.Color != cl.Color {
				flush()
				cur = &MapLine{Color: cl.Color, Points: []prep.GameCoord{current}}
			}
			if !mv.Exclude {
				current = mv.To
			}
			cur.Points = append(cur.Points, mv.To)
			mapCoords = append(mapCoords, mv.To)
		}

		checkIcon(cl.IconDoc, registeredIcons, &diags)
		if cl.IconMap != "" {
			checkIcon(cl.IconMap, registeredIcons, &diags)
			icons = append(icons, MapIcon{ID: cl.IconMap, Coord: cl.Coord, Priority: cl.MapIconPriority})
		}
		for _, mk := range cl.Markers {
			color := cl.Color
			if mk.Color != nil {
				color = *mk.Color
			}
			markers = append(markers, MapMarker{Coord: mk.At, Color: color})
		}

		lines = append(lines, ExecLine{
			Section:       secIdx,
			Index:         lineIdx,
			Text:          cl.Text,
			SecondaryText: cl.SecondaryText,
			Notes:         cl.Notes,
			Counter:       cl.Counter,
			SplitName:     cl.SplitName,
			IconDoc:       cl.IconDoc,
			MapCoords:     mapCoords,
			Color:         cl.Color,
		})
	}
	flush()

	return ExecSection{
		Name:  sec.Name,
		Lines: lines,
		Map:   ExecMapSection{Lines: mapLines, Icons: icons, Markers: markers},
	}, current, diags
}
