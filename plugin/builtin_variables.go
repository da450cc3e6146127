package plugin

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/celer-dev/celerc/comp"
)

// counterFuncs is a dedicated template.FuncMap used only for counter
// formatting: sprig's FuncMap plus the two operators spec §4.13 names
// (`pad<ch><n>`, `last<n>`), grounded on the teacher's `patching.go`
// pairing of `sprig.FuncMap()` with `text/template`.
var counterFuncs = buildCounterFuncs()

func buildCounterFuncs() template.FuncMap {
	fm := sprig.FuncMap()
	fm["pad"] = func(ch string, width int, v float64) string {
		s := floatToString(v)
		fill := "0"
		if len(ch) > 0 {
			fill = ch[:1]
		}
		for len(s) < width {
			s = fill + s
		}
		return s
	}
	fm["last"] = func(n int, v float64) string {
		s := floatToString(v)
		if len(s) > n {
			s = s[len(s)-n:]
		}
		return s
	}
	return fm
}

// VariablesPlugin maintains named counters and formats a line's `counter`
// rich-text block using them (spec §4.13 "variables"): the block's Text
// names the counter, its Tag (if any) names a format operator, and the
// block is rewritten in place with the counter's current formatted value
// after incrementing it by Step.
type VariablesPlugin struct {
	NopRuntime
	counters map[string]float64
	step     float64
}

// NewVariablesPlugin returns the `variables` built-in, seeded with initial
// counter values and an increment step (default 1 when step == 0).
func NewVariablesPlugin(initial map[string]float64, step float64) *VariablesPlugin {
	counters := make(map[string]float64, len(initial))
	for k, v := range initial {
		counters[k] = v
	}
	if step == 0 {
		step = 1
	}
	return &VariablesPlugin{NopRuntime: NopRuntime{id: "variables"}, counters: counters, step: step}
}

func (p *VariablesPlugin) OnAfterCompile(doc *comp.CompDoc) error {
	for i := range doc.Preface {
		p.formatCounter(&doc.Preface[i].Counter)
	}
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			p.formatCounter(&doc.Route[si].Lines[li].Counter)
		}
	}
	return nil
}

func (p *VariablesPlugin) formatCounter(rt *comp.RichText) {
	for i, block := range *rt {
		name := block.Text
		if name == "" {
			continue
		}
		val := p.counters[name] + p.step
		p.counters[name] = val
		(*rt)[i].Text = applyOperator(block.Tag, val)
	}
}

// applyOperator formats val per the tag's operator template, defaulting
// to plain numeric formatting when tag is nil or unrecognised.
func applyOperator(tag *string, val float64) string {
	if tag == nil {
		return floatToString(val)
	}
	tmplSrc, ok := operatorTemplate(*tag)
	if !ok {
		return floatToString(val)
	}
	tmpl, err := template.New("counter").Funcs(counterFuncs).Parse(tmplSrc)
	if err != nil {
		return floatToString(val)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, val); err != nil {
		return floatToString(val)
	}
	return buf.String()
}

// operatorTemplate translates a counter operator tag (e.g. "pad03",
// "last2") into the tiny template invocation that implements it.
func operatorTemplate(tag string) (string, bool) {
	switch {
	case strings.HasPrefix(tag, "pad"):
		rest := tag[len("pad"):]
		if len(rest) < 2 {
			return "", false
		}
		ch, width := rest[:1], rest[1:]
		if _, err := strconv.Atoi(width); err != nil {
			return "", false
		}
		return fmt.Sprintf(`{{pad %q %s .}}`, ch, width), true
	case strings.HasPrefix(tag, "last"):
		n := tag[len("last"):]
		if _, err := strconv.Atoi(n); err != nil {
			return "", false
		}
		return fmt.Sprintf(`{{last %s .}}`, n), true
	default:
		return "", false
	}
}

// floatToString renders a number without a trailing decimal point when it
// is (nearly) an integer (grounded on
// `plugin/native/variables/convert.rs`'s `float_to_string`).
func floatToString(v float64) string {
	rounded := math.Round(v)
	if math.Abs(v-rounded) < 1e-9 {
		return strconv.FormatInt(int64(rounded), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
