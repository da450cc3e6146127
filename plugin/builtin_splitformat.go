package plugin

import (
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/lang/richtext"
)

// SplitFormatPlugin sets a line's split-name from a rich-text template
// keyed by its counter tag's split type (spec §4.13 "split-format",
// grounded on `plugin/builtin/split_format.rs`).
type SplitFormatPlugin struct {
	NopRuntime
	formats map[string]richtext.RichText
}

// NewSplitFormatPlugin returns the `split-format` built-in, keyed by
// split-type name (e.g. "main", "subsplit") to its rich-text template.
func NewSplitFormatPlugin(formats map[string]richtext.RichText) *SplitFormatPlugin {
	return &SplitFormatPlugin{NopRuntime: NopRuntime{id: "split-format"}, formats: formats}
}

func (p *SplitFormatPlugin) OnAfterCompile(doc *comp.CompDoc) error {
	tagToFormat := make(map[string]richtext.RichText)
	for tagName, tag := range doc.Config.Tags {
		if tag.SplitType == "" {
			continue
		}
		if format, ok := p.formats[tag.SplitType]; ok {
			tagToFormat[tagName] = format
		}
	}

	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			line := &doc.Route[si].Lines[li]
			format, ok := lookupFormat(line, tagToFormat)
			if !ok {
				continue
			}
			transformed := transformFormat(format, line)
			line.SplitName = &transformed
		}
	}
	return nil
}

func lookupFormat(line *comp.CompLine, tagToFormat map[string]richtext.RichText) (richtext.RichText, bool) {
	for _, block := range line.Counter {
		if block.Tag != nil {
			if f, ok := tagToFormat[*block.Tag]; ok {
				return f, true
			}
		}
		// `.var(type)` support: the counter's own text doubles as the tag
		// when the block carries no explicit tag operator.
		if f, ok := tagToFormat[block.Text]; ok {
			return f, true
		}
	}
	return nil, false
}

// transformFormat substitutes `.prop(text|comment|counter)` placeholders
// in format with the matching field of line (grounded on
// `split_format.rs`'s transform_format).
func transformFormat(format richtext.RichText, line *comp.CompLine) richtext.RichText {
	out := make(richtext.RichText, len(format))
	copy(out, format)
	for i, block := range out {
		if block.Tag == nil || *block.Tag != "prop" {
			continue
		}
		switch block.Text {
		case "text":
			out[i].Text = line.Text.String()
		case "comment":
			out[i].Text = line.SecondaryText.String()
		case "counter":
			out[i].Text = line.Counter.String()
		}
	}
	return out
}
