package plugin

import (
	"github.com/tidwall/sjson"

	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/expo"
)

// ExportMistPlugin exports a compiled document's splits as a mist split
// file (JSON), built incrementally with sjson the same way the teacher's
// `internal/patching` builds JSON patches (spec §4.13 "export-mist",
// grounded on `plugin/native/export_mist.rs`).
type ExportMistPlugin struct{ NopRuntime }

// NewExportMistPlugin returns the `export-mist` built-in.
func NewExportMistPlugin() *ExportMistPlugin {
	return &ExportMistPlugin{NopRuntime{id: "export-mist"}}
}

func (p *ExportMistPlugin) OnPrepareExport() ([]expo.ExportMetadata, error) {
	return []expo.ExportMetadata{{
		PluginID:    p.Source(),
		Target:      expo.TargetCompDoc,
		Name:        "mist",
		Description: "Export to a mist split file",
		Icon:        expo.IconData,
		Extension:   "msf",
		LearnMore:   "/docs/plugin/export-mist#export-mist",
	}}, nil
}

func (p *ExportMistPlugin) OnExportCompDoc(_ string, payload map[string]any, doc *comp.CompDoc) (*expo.ExpoDoc, error) {
	names, ok := payloadStrings(payload, "split-types")
	if !ok {
		return nil, &Error{Kind: ErrInvalidPayload, Arg: "split-types"}
	}
	tags := resolveSplitTags(doc.Config.Tags, stringSet(names))
	if len(tags) == 0 {
		return nil, &Error{Kind: ErrInvalidPayload, Arg: "no splits selected"}
	}

	out := `{"splits":[]}`
	var err error
	idx := 0
	for _, sec := range doc.Route {
		for i := range sec.Lines {
			line := &sec.Lines[i]
			if !shouldSplitOn(line, tags) {
				continue
			}
			out, err = sjson.Set(out, "splits.-1", map[string]any{"name": splitNameOf(line)})
			if err != nil {
				return nil, &Error{Kind: ErrInvalidPayload, Arg: err.Error()}
			}
			idx++
		}
	}
	if idx == 0 {
		return nil, &Error{Kind: ErrInvalidPayload, Arg: "no lines matched the selected split types"}
	}

	return &expo.ExpoDoc{FileName: "splits.msf", Blob: expo.BlobFromText(out)}, nil
}
