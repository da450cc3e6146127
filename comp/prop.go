package comp

// Property name constants recognised on a line (spec §4.11), grounded on
// the original `compiler-core/src/comp/prop.rs` constants registry.
const (
	PropText            = "text"
	PropComment         = "comment"
	PropNotes           = "notes"
	PropSplitName       = "split-name"
	PropIcon            = "icon"
	PropIconDoc         = "icon-doc"
	PropIconMap         = "icon-map"
	PropCounter         = "counter"
	PropColor           = "color"
	PropPresets         = "presets"
	PropCoord           = "coord"
	PropMovements       = "movements"
	PropMarkers         = "markers"
	PropMapIconPriority = "map-icon-priority"
)
