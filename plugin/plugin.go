// Package plugin implements the plugin host (spec §4.13): a lifecycle a
// compilation run dispatches to, and the seven named built-ins. Every
// built-in implements Runtime directly — there is no embedded script
// engine in this build, matching the "built-in" half of the original's
// BuiltInPlugin/ScriptPlugin split (spec's Non-goals exclude untrusted
// script plugins).
package plugin

import (
	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/exec"
	"github.com/celer-dev/celerc/expo"
)

// Runtime is one instantiated plugin's hook set for a single compilation
// (spec §4.13's PluginRuntime trait). Every hook defaults to a no-op via
// the embedded NopRuntime, so a plugin only implements the hooks it cares
// about (grounded on the original's default trait-method bodies).
type Runtime interface {
	// Source identifies the plugin for diagnostics (spec §4.11's
	// "plugin id" diagnostic Type).
	Source() string
	OnBeforeCompile() error
	OnAfterCompile(doc *comp.CompDoc) error
	OnAfterExecute(doc *exec.ExecDoc) error
	OnPrepareExport() ([]expo.ExportMetadata, error)
	OnExportCompDoc(exportID string, payload map[string]any, doc *comp.CompDoc) (*expo.ExpoDoc, error)
	OnExportExecDoc(exportID string, payload map[string]any, doc *exec.ExecDoc) (*expo.ExpoDoc, error)
}

// NopRuntime gives every Runtime method a default no-op body; built-ins
// embed it and override only the hooks they implement.
type NopRuntime struct{ id string }

func (n NopRuntime) Source() string                          { return n.id }
func (n NopRuntime) OnBeforeCompile() error                   { return nil }
func (n NopRuntime) OnAfterCompile(*comp.CompDoc) error       { return nil }
func (n NopRuntime) OnAfterExecute(*exec.ExecDoc) error       { return nil }
func (n NopRuntime) OnPrepareExport() ([]expo.ExportMetadata, error) { return nil, nil }
func (n NopRuntime) OnExportCompDoc(string, map[string]any, *comp.CompDoc) (*expo.ExpoDoc, error) {
	return nil, nil
}
func (n NopRuntime) OnExportExecDoc(string, map[string]any, *exec.ExecDoc) (*expo.ExpoDoc, error) {
	return nil, nil
}

// Instance pairs an id with its Runtime, as registered by Prep (spec
// §4.9 step 2's PluginOptions.Add/Remove).
type Instance struct {
	ID      string
	Runtime Runtime
}

// Host dispatches the compilation lifecycle to every registered plugin
// instance in registration order (spec §4.13 "plugin host").
type Host struct {
	instances []Instance
}

// NewHost returns a Host running the given instances in order.
func NewHost(instances []Instance) *Host { return &Host{instances: instances} }

// BeforeCompile runs OnBeforeCompile on every plugin, collecting
// diagnostics for any that fail rather than aborting (spec §4.13 "plugin
// errors are reported as diagnostics tagged with the plugin's id, never
// fatal to the run").
func (h *Host) BeforeCompile() []Diagnostic {
	var diags []Diagnostic
	for _, inst := range h.instances {
		if err := inst.Runtime.OnBeforeCompile(); err != nil {
			diags = append(diags, Diagnostic{Source: inst.ID, Type: inst.ID, Msg: err.Error()})
		}
	}
	return diags
}

// AfterCompile runs OnAfterCompile on every plugin in order, letting each
// mutate doc before the next sees it.
func (h *Host) AfterCompile(doc *comp.CompDoc) []Diagnostic {
	var diags []Diagnostic
	for _, inst := range h.instances {
		if err := inst.Runtime.OnAfterCompile(doc); err != nil {
			diags = append(diags, Diagnostic{Source: inst.ID, Type: inst.ID, Msg: err.Error()})
		}
	}
	return diags
}

// AfterExecute runs OnAfterExecute on every plugin in order.
func (h *Host) AfterExecute(doc *exec.ExecDoc) []Diagnostic {
	var diags []Diagnostic
	for _, inst := range h.instances {
		if err := inst.Runtime.OnAfterExecute(doc); err != nil {
			diags = append(diags, Diagnostic{Source: inst.ID, Type: inst.ID, Msg: err.Error()})
		}
	}
	return diags
}

// PrepareExport collects every plugin's exportable formats (spec §4.13
// / §6's export registry).
func (h *Host) PrepareExport() []expo.ExportMetadata {
	var metas []expo.ExportMetadata
	for _, inst := range h.instances {
		m, err := inst.Runtime.OnPrepareExport()
		if err != nil || m == nil {
			continue
		}
		metas = append(metas, m...)
	}
	return metas
}

// ExportCompDoc dispatches an export request to the plugin matching id.
func (h *Host) ExportCompDoc(id, exportID string, payload map[string]any, doc *comp.CompDoc) (*expo.ExpoDoc, error) {
	inst, ok := h.find(id)
	if !ok {
		return nil, &Error{Kind: ErrUnknownPlugin, Arg: id}
	}
	return inst.Runtime.OnExportCompDoc(exportID, payload, doc)
}

// ExportExecDoc dispatches an export request to the plugin matching id.
func (h *Host) ExportExecDoc(id, exportID string, payload map[string]any, doc *exec.ExecDoc) (*expo.ExpoDoc, error) {
	inst, ok := h.find(id)
	if !ok {
		return nil, &Error{Kind: ErrUnknownPlugin, Arg: id}
	}
	return inst.Runtime.OnExportExecDoc(exportID, payload, doc)
}

func (h *Host) find(id string) (Instance, bool) {
	for _, inst := range h.instances {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instance{}, false
}

// Diagnostic mirrors comp.Diagnostic's shape (spec §6): plugin-sourced
// diagnostics use the plugin's id as both Source and Type.
type Diagnostic struct {
	Source string
	Type   string
	Msg    string
}
