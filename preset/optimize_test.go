package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/lang/tempstr"
)

func compilePreset(t *testing.T, v map[string]any) *Preset {
	t.Helper()
	p, ok := CompilePreset(v)
	require.True(t, ok)
	return &p
}

func TestOptimizeInlinesStaticPresetsList(t *testing.T) {
	base := compilePreset(t, map[string]any{
		"color": "red",
	})
	derived := compilePreset(t, map[string]any{
		"presets": []any{"Base"},
		"text":    "hi",
	})
	reg := NewRegistry(map[string]*Preset{"Base": base, "Derived": derived})
	reg.OptimizeAll()

	out := derived.Hydrate(nil)
	color, ok := out.Get("color")
	require.True(t, ok)
	assert.Equal(t, "red", color.CoerceToString())
	text, ok := out.Get("text")
	require.True(t, ok)
	assert.Equal(t, "hi", text.CoerceToString())
}

func TestOptimizeSkipsWhenTopLevelKeyIsDynamic(t *testing.T) {
	base := compilePreset(t, map[string]any{"color": "red"})
	dynamic := Preset{entries: []objectEntry{
		{key: mustCompileKey(t, "$(0)"), val: Compile("x")},
		{key: mustCompileKey(t, "presets"), val: Compile([]any{"Base"})},
	}}
	reg := NewRegistry(map[string]*Preset{"Base": base, "Dyn": &dynamic})
	reg.OptimizeAll()

	// unoptimizable: entries must be untouched (still contains "presets" key)
	found := false
	for _, e := range dynamic.entries {
		if lit, ok := e.key.AsLiteral(); ok && lit == "presets" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestOptimizeStopsAtCycle(t *testing.T) {
	a := &Preset{entries: []objectEntry{
		{key: mustCompileKey(t, "presets"), val: Compile([]any{"B"})},
		{key: mustCompileKey(t, "from_a"), val: Compile("a")},
	}}
	b := &Preset{entries: []objectEntry{
		{key: mustCompileKey(t, "presets"), val: Compile([]any{"A"})},
		{key: mustCompileKey(t, "from_b"), val: Compile("b")},
	}}
	reg := NewRegistry(map[string]*Preset{"A": a, "B": b})
	reg.OptimizeAll()

	// Neither should crash/hang; each should retain its own direct entry.
	outA := a.Hydrate(nil)
	v, ok := outA.Get("from_a")
	require.True(t, ok)
	assert.Equal(t, "a", v.CoerceToString())
}

func mustCompileKey(t *testing.T, s string) tempstr.TempStr {
	t.Helper()
	return tempstr.Compile(s)
}
