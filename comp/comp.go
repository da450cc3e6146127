package comp

import (
	"strings"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/lang/richtext"
	"github.com/celer-dev/celerc/prep"
	"github.com/celer-dev/celerc/preset"
)

// Compiler drives the Comp phase (spec §4.11): a single instance compiles
// one route, tracking the current line colour and map coordinate as it
// walks sections/lines in document order.
type Compiler struct {
	Setting prep.Setting
	Meta    prep.CompilerMetadata
	Config  prep.RouteConfig

	color string
	coord prep.GameCoord
}

// NewCompiler builds a Compiler seeded from the map's initial colour/coord
// (spec §4.11 "Color & coord continuity").
func NewCompiler(st prep.Setting, meta prep.CompilerMetadata, cfg prep.RouteConfig) *Compiler {
	c := &Compiler{Setting: st, Meta: meta, Config: cfg}
	if cfg.Map != nil {
		c.color = cfg.Map.InitialColor
		c.coord = cfg.Map.InitialCoord
	}
	return c
}

// Compile converts a Pack-produced RouteBlob into a CompDoc (spec §4.11).
func (c *Compiler) Compile(route blob.RouteBlob) CompDoc {
	doc := CompDoc{Config: c.Config}

	items, ok := route.AsArray()
	if !ok {
		doc.Diagnostics = append(doc.Diagnostics, newCompDiag(newErr(ErrInvalidRouteType)))
		return doc
	}

	started := false
	for _, item := range items {
		name, lineItems, isSection, matched := trySection(item)
		if !matched {
			doc.Diagnostics = append(doc.Diagnostics, newCompDiag(newErr(ErrInvalidSectionType)))
			continue
		}
		if isSection {
			started = true
			doc.Route = append(doc.Route, c.compileSection(name, lineItems))
			continue
		}
		if started {
			doc.Diagnostics = append(doc.Diagnostics, newCompDiag(newErr(ErrIsPreface)))
			continue
		}
		doc.Preface = append(doc.Preface, c.compileLine(item))
	}
	return doc
}

// trySection classifies a top-level route entry (spec §4.10 "top-level
// array of sections"): a single-key object is a section if its value is
// an array of lines; a single-key object whose value is not an array is
// malformed (InvalidSectionType); any other shape is a preface/stray line
// left for compileLine to desugar (and, if genuinely malformed, to report
// its own CompError).
func trySection(item blob.RouteBlob) (name string, lines []blob.RouteBlob, isSection bool, matched bool) {
	obj, ok := item.AsObject()
	if !ok {
		return "", nil, false, true
	}
	keys := obj.Keys()
	if len(keys) != 1 {
		return "", nil, false, true
	}
	key := keys[0]
	val, _ := obj.Get(key)
	body, ok := val.AsArray()
	if !ok {
		return "", nil, false, false
	}
	return key, body, true, true
}

func (c *Compiler) compileSection(name string, lineItems []blob.RouteBlob) CompSection {
	sec := CompSection{Name: name}
	for _, li := range lineItems {
		sec.Lines = append(sec.Lines, c.compileLine(li))
	}
	return sec
}

func (c *Compiler) compileLine(item blob.RouteBlob) CompLine {
	var diags []Diagnostic
	var rawDiags []blob.Diagnostic
	safe := blob.Walk(item, &rawDiags)
	for _, d := range rawDiags {
		diags = append(diags, Diagnostic{Source: d.Source, Type: string(d.Type), Msg: d.Msg})
	}

	text, props, derr := DesugarLine(safe)
	if derr != nil {
		diags = append(diags, newCompDiag(derr))
	}

	c.instantiateText(text, props, &diags)
	c.instantiatePresetsProp(props, &diags, 1)

	line := CompLine{
		Text:            richtext.Parse(text),
		MapIconPriority: c.Meta.DefaultIconPriority,
	}

	if v, ok := props.Take(PropText); ok {
		if s, ok2 := v.AsString(); ok2 {
			line.Text = richtext.Parse(s)
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropText)))
		}
	}
	if v, ok := props.Take(PropComment); ok {
		if s, ok2 := v.AsString(); ok2 {
			line.SecondaryText = richtext.Parse(s)
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropComment)))
		}
	}
	if v, ok := props.Take(PropNotes); ok {
		notes, nerr := parseNotes(v)
		if nerr != nil {
			diags = append(diags, newCompDiag(nerr))
		} else {
			line.Notes = notes
		}
	}
	if v, ok := props.Take(PropSplitName); ok {
		switch {
		case v.Kind() == blob.KindNull:
			line.SplitName = nil
		default:
			if s, ok2 := v.AsString(); ok2 {
				rt := richtext.Parse(s)
				line.SplitName = &rt
			} else {
				diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropSplitName)))
			}
		}
	}
	if v, ok := props.Take(PropIconDoc); ok {
		if s, ok2 := v.AsString(); ok2 {
			line.IconDoc = s
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropIconDoc)))
		}
	}
	if v, ok := props.Take(PropIconMap); ok {
		if s, ok2 := v.AsString(); ok2 {
			line.IconMap = s
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropIconMap)))
		}
	}
	if v, ok := props.Take(PropCounter); ok {
		if s, ok2 := v.AsString(); ok2 {
			rt := richtext.Parse(s)
			if countTags(rt) > 1 {
				diags = append(diags, newCompDiag(newErr(ErrTooManyTagsInCounter)))
			}
			line.Counter = rt
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropCounter)))
		}
	}
	// color: an explicit override takes effect starting at this line, so
	// the line's own recorded colour reflects it (spec §4.11 "each line
	// records the colour active at its start").
	if v, ok := props.Take(PropColor); ok {
		if s, ok2 := v.AsString(); ok2 {
			c.color = s
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropColor)))
		}
	}
	line.Color = c.color

	if v, ok := props.Take(PropMovements); ok {
		items, ok2 := v.AsArray()
		if !ok2 {
			diags = append(diags, newCompDiag(newErr(ErrInvalidMovementType)))
		} else {
			for _, m := range items {
				mv, merr := c.parseMovement(m)
				if merr != nil {
					diags = append(diags, newCompDiag(merr))
					continue
				}
				if mv.Color != nil {
					c.color = *mv.Color
				}
				if !mv.Exclude {
					c.coord = mv.To
				}
				line.Movements = append(line.Movements, mv)
			}
		}
	}
	line.Coord = c.coord

	if v, ok := props.Take(PropMarkers); ok {
		items, ok2 := v.AsArray()
		if !ok2 {
			diags = append(diags, newCompDiag(newErr(ErrInvalidMarkerType)))
		} else {
			for _, m := range items {
				mk, merr := c.parseMarker(m)
				if merr != nil {
					diags = append(diags, newCompDiag(merr))
					continue
				}
				line.Markers = append(line.Markers, mk)
			}
		}
	}

	if v, ok := props.Take(PropMapIconPriority); ok {
		if n, ok2 := v.TryCoerceToI64(); ok2 {
			line.MapIconPriority = int(n)
		} else {
			diags = append(diags, newCompDiag(newErrArg(ErrInvalidLinePropertyType, PropMapIconPriority)))
		}
	}

	for _, k := range props.Remaining() {
		diags = append(diags, newCompDiag(newErrArg(ErrUnusedProperty, k)))
	}

	line.Properties = props
	line.Diagnostics = diags
	return line
}

// instantiateText instantiates text when it is a preset string
// (spec §4.11 "Preset string handling in text"): a leading `_` marks the
// preset, which is looked up by the name after the `_`. A text without
// the `_` or that doesn't parse as PresetInst is left as literal display
// text, not an error.
func (c *Compiler) instantiateText(text string, props *PropMap, diags *[]Diagnostic) {
	name, isPreset := strings.CutPrefix(text, "_")
	if !isPreset {
		return
	}
	inst, ok := preset.ParseInst(name)
	if !ok {
		return
	}
	c.mergePreset(inst, props, diags, 1)
}

// instantiatePresetsProp expands the `presets` property (spec §4.11
// table): each entry must itself be a valid preset string.
func (c *Compiler) instantiatePresetsProp(props *PropMap, diags *[]Diagnostic, depth int) {
	val, ok := props.Take(PropPresets)
	if !ok {
		return
	}
	items, ok := val.AsArray()
	if !ok {
		*diags = append(*diags, newCompDiag(newErrArg(ErrInvalidPresetString, val.CoerceToRepl())))
		return
	}
	for _, item := range items {
		s, ok := item.AsString()
		if !ok {
			*diags = append(*diags, newCompDiag(newErrArg(ErrInvalidPresetString, item.CoerceToRepl())))
			continue
		}
		inst, ok := preset.ParseInst(s)
		if !ok {
			*diags = append(*diags, newCompDiag(newErrArg(ErrInvalidPresetString, s)))
			continue
		}
		c.mergePreset(inst, props, diags, depth)
	}
}

// mergePreset hydrates inst and merges its entries into props wherever a
// key isn't already present (explicit line properties always win, spec
// §4.11), then chases any `presets` key the hydration itself introduced,
// bounded by max_preset_ref_depth.
func (c *Compiler) mergePreset(inst preset.Inst, props *PropMap, diags *[]Diagnostic, depth int) {
	if depth > c.Setting.MaxPresetRefDepth {
		*diags = append(*diags, newCompDiag(newErrArg(ErrMaxPresetDepthExceeded, inst.Name)))
		return
	}
	if c.Meta.Presets == nil {
		*diags = append(*diags, newCompDiag(newErrArg(ErrPresetNotFound, inst.Name)))
		return
	}
	p, ok := c.Meta.Presets.Lookup(inst.Name)
	if !ok {
		*diags = append(*diags, newCompDiag(newErrArg(ErrPresetNotFound, inst.Name)))
		return
	}
	hydrated := p.Hydrate(inst.Args)
	hydrated.Each(func(k string, v blob.SafeRouteBlob) {
		if _, exists := props.Get(k); !exists {
			props.Insert(k, v)
		}
	})
	c.instantiatePresetsProp(props, diags, depth+1)
}

func (c *Compiler) parseMovement(m blob.SafeRouteBlob) (Movement, *Error) {
	if arr, ok := m.AsArray(); ok {
		coord, err := ParseCoordArray(c.Config.Map, arr)
		if err != nil {
			return Movement{}, err
		}
		return Movement{To: coord}, nil
	}
	obj, ok := m.AsObject()
	if !ok {
		return Movement{}, newErr(ErrInvalidMovementType)
	}
	toVal, ok := obj.Get("to")
	if !ok {
		return Movement{}, newErr(ErrInvalidMovementType)
	}
	coord, err := ParseCoord(c.Config.Map, toVal)
	if err != nil {
		return Movement{}, err
	}
	mv := Movement{To: coord}
	if warpVal, ok := obj.Get("warp"); ok {
		mv.Warp = warpVal.CoerceTruthy()
	}
	if exVal, ok := obj.Get("exclude"); ok {
		mv.Exclude = exVal.CoerceTruthy()
	}
	if colVal, ok := obj.Get("color"); ok {
		if s, ok2 := colVal.AsString(); ok2 {
			mv.Color = &s
		}
	}
	return mv, nil
}

func (c *Compiler) parseMarker(m blob.SafeRouteBlob) (Marker, *Error) {
	if arr, ok := m.AsArray(); ok {
		coord, err := ParseCoordArray(c.Config.Map, arr)
		if err != nil {
			return Marker{}, err
		}
		return Marker{At: coord}, nil
	}
	obj, ok := m.AsObject()
	if !ok {
		return Marker{}, newErr(ErrInvalidMarkerType)
	}
	atVal, ok := obj.Get("at")
	if !ok {
		return Marker{}, newErr(ErrInvalidMarkerType)
	}
	coord, err := ParseCoord(c.Config.Map, atVal)
	if err != nil {
		return Marker{}, err
	}
	mk := Marker{At: coord}
	if colVal, ok := obj.Get("color"); ok {
		if s, ok2 := colVal.AsString(); ok2 {
			mk.Color = &s
		}
	}
	return mk, nil
}

func parseNotes(v blob.SafeRouteBlob) ([]Note, *Error) {
	items, ok := v.AsArray()
	if !ok {
		return nil, newErrArg(ErrInvalidLinePropertyType, PropNotes)
	}
	notes := make([]Note, 0, len(items))
	for _, item := range items {
		obj, ok := item.AsObject()
		if !ok {
			return nil, newErrArg(ErrInvalidLinePropertyType, PropNotes)
		}
		link := ""
		if lv, ok := obj.Get("link"); ok {
			link, _ = lv.AsString()
		}
		switch {
		case setNote(obj, "text"):
			v, _ := obj.Get("text")
			s, _ := v.AsString()
			notes = append(notes, Note{Kind: NoteText, Content: richtext.Parse(s), Link: link})
		case setNote(obj, "image"):
			v, _ := obj.Get("image")
			s, _ := v.AsString()
			notes = append(notes, Note{Kind: NoteImage, Content: richtext.Parse(s), Link: link})
		case setNote(obj, "video"):
			v, _ := obj.Get("video")
			s, _ := v.AsString()
			notes = append(notes, Note{Kind: NoteVideo, Content: richtext.Parse(s), Link: link})
		default:
			return nil, newErrArg(ErrInvalidLinePropertyType, PropNotes)
		}
	}
	return notes, nil
}

func setNote(obj *blob.OrderedObject[blob.SafeRouteBlob], key string) bool {
	_, ok := obj.Get(key)
	return ok
}

func countTags(rt richtext.RichText) int {
	n := 0
	for _, b := range rt {
		if b.Tag != nil {
			n++
		}
	}
	return n
}

func newCompDiag(e *Error) Diagnostic {
	return Diagnostic{Source: e.Source(), Type: e.diagnosticType(), Msg: e.Error()}
}
