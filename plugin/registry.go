package plugin

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/lang/richtext"
	"github.com/celer-dev/celerc/prep"
)

// BuiltIns lists the ids Prep's `plugins:` interpretation (spec §4.9 step
// 2) and `PluginOptions` recognise as built-in (spec §4.13).
var BuiltIns = []string{
	"link", "variables", "split-format", "metrics", "botw-ability-unstable",
	"export-livesplit", "export-mist",
}

// IsBuiltIn reports whether id names one of the built-ins NewBuiltIn can
// instantiate.
func IsBuiltIn(id string) bool {
	for _, b := range BuiltIns {
		if b == id {
			return true
		}
	}
	return false
}

// NewBuiltIn instantiates the built-in plugin inst.ID names, decoding its
// settings from inst.Props (spec §4.13's "settings blob passed to it
// verbatim"). promRegistry is infra-level, not settings-authored: passed
// by the caller when Prometheus wiring is desired (spec §4.13 "metrics").
func NewBuiltIn(inst prep.PluginInstance, startTime time.Time, promRegistry *prometheus.Registry) (Instance, bool) {
	props, _ := inst.Props.AsObject()

	var runtime Runtime
	switch inst.ID {
	case "link":
		runtime = NewLinkPlugin()
	case "variables":
		runtime = NewVariablesPlugin(decodeInitialCounters(props), decodeStep(props))
	case "split-format":
		runtime = NewSplitFormatPlugin(decodeFormats(props))
	case "metrics":
		runtime = NewMetricsPlugin(decodeBool(props, "detailed"), startTime, promRegistry)
	case "botw-ability-unstable":
		runtime = NewBotwAbilityUnstablePlugin(decodeBool(props, "annotate-combos"))
	case "export-livesplit":
		runtime = NewExportLiveSplitPlugin()
	case "export-mist":
		runtime = NewExportMistPlugin()
	default:
		return Instance{}, false
	}
	return Instance{ID: inst.ID, Runtime: runtime}, true
}

func decodeBool(props *blob.OrderedObject[blob.SafeRouteBlob], key string) bool {
	if props == nil {
		return false
	}
	v, ok := props.Get(key)
	if !ok {
		return false
	}
	return v.CoerceTruthy()
}

func decodeInitialCounters(props *blob.OrderedObject[blob.SafeRouteBlob]) map[string]float64 {
	out := map[string]float64{}
	if props == nil {
		return out
	}
	v, ok := props.Get("initial")
	if !ok {
		return out
	}
	obj, ok := v.AsObject()
	if !ok {
		return out
	}
	obj.Each(func(k string, v blob.SafeRouteBlob) {
		if n, ok := v.TryCoerceToF64(); ok {
			out[k] = n
		}
	})
	return out
}

func decodeStep(props *blob.OrderedObject[blob.SafeRouteBlob]) float64 {
	if props == nil {
		return 0
	}
	v, ok := props.Get("step")
	if !ok {
		return 0
	}
	n, _ := v.TryCoerceToF64()
	return n
}

// decodeFormats builds the split-format plugin's tag->template map
// directly from props (every settings key is itself a split-type name,
// grounded on `split_format.rs`'s from_props, which iterates props as an
// object with no intermediate key like "initial"/"step" above).
func decodeFormats(props *blob.OrderedObject[blob.SafeRouteBlob]) map[string]richtext.RichText {
	out := map[string]richtext.RichText{}
	if props == nil {
		return out
	}
	props.Each(func(k string, v blob.SafeRouteBlob) {
		out[k] = richtext.Parse(v.CoerceToString())
	})
	return out
}
