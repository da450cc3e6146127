package plugin

import "github.com/celer-dev/celerc/comp"

// BotwAbilityUnstablePlugin is a domain-specific placeholder (spec §4.13
// "botw-ability-unstable"): no-op unless AnnotateCombos is set, in which
// case it tags lines whose text contains more than one `.ability(...)`
// block with a warning diagnostic, mirroring the stub-pattern described
// for not-yet-implemented plugins in the original (`NotImplemented`).
type BotwAbilityUnstablePlugin struct {
	NopRuntime
	AnnotateCombos bool
}

// NewBotwAbilityUnstablePlugin returns the `botw-ability-unstable`
// built-in.
func NewBotwAbilityUnstablePlugin(annotateCombos bool) *BotwAbilityUnstablePlugin {
	return &BotwAbilityUnstablePlugin{NopRuntime: NopRuntime{id: "botw-ability-unstable"}, AnnotateCombos: annotateCombos}
}

func (p *BotwAbilityUnstablePlugin) OnAfterCompile(doc *comp.CompDoc) error {
	if !p.AnnotateCombos {
		return nil
	}
	for si := range doc.Route {
		for li := range doc.Route[si].Lines {
			line := &doc.Route[si].Lines[li]
			if countAbilityBlocks(line.Text) > 1 {
				line.Diagnostics = append(line.Diagnostics, comp.Diagnostic{
					Source: p.Source(),
					Type:   p.Source(),
					Msg:    "line combines multiple unstable abilities; combo timing may not be accurate",
				})
			}
		}
	}
	return nil
}

func countAbilityBlocks(rt comp.RichText) int {
	n := 0
	for _, block := range rt {
		if block.Tag != nil && *block.Tag == "ability" {
			n++
		}
	}
	return n
}
