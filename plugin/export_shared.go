package plugin

import (
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/internal/util"
	"github.com/celer-dev/celerc/prep"
)

// resolveSplitTags maps requested split-type display names (as picked in
// an exporter's settings payload) to the underlying tag names that carry
// them (grounded on `native/export_mist.rs` / `builtin/livesplit.rs`'s
// identical tag-resolution loop).
func resolveSplitTags(tags map[string]prep.TagMetadata, names map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for tagName, tag := range tags {
		if tag.SplitType != "" && names[tag.SplitType] {
			out[tagName] = true
		}
	}
	return out
}

// shouldSplitOn reports whether line's counter carries one of the
// resolved split tags.
func shouldSplitOn(line *comp.CompLine, tags map[string]bool) bool {
	for _, block := range line.Counter {
		if block.Tag != nil && tags[*block.Tag] {
			return true
		}
	}
	return false
}

// splitNameOf returns the line's split-name if set, else its own text.
func splitNameOf(line *comp.CompLine) string {
	return util.DerefOr(line.SplitName, line.Text).String()
}

func stringSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func payloadStrings(payload map[string]any, key string) ([]string, bool) {
	raw, ok := payload[key]
	if !ok {
		return nil, true
	}
	arr, ok := raw.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func payloadBool(payload map[string]any, key string) bool {
	v, ok := payload[key].(bool)
	return ok && v
}
