package preset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/lang/tempstr"
)

func TestCompileNonTemplateScalars(t *testing.T) {
	assert.Equal(t, KindNonTemplate, Compile(nil).kind)
	assert.Equal(t, KindNonTemplate, Compile(true).kind)
	assert.Equal(t, KindNonTemplate, Compile(3.5).kind)
	assert.Equal(t, KindNonTemplate, Compile("plain text").kind)
}

func TestCompileTemplateScalar(t *testing.T) {
	b := Compile("hi $(0)")
	assert.Equal(t, KindTemplate, b.kind)
	assert.Equal(t, "hi world", b.Hydrate([]string{"world"}).CoerceToString())
}

func TestCompileArray(t *testing.T) {
	b := Compile([]any{"a", "$(0)"})
	require.Equal(t, KindArray, b.kind)
	require.Len(t, b.array, 2)
	assert.Equal(t, KindNonTemplate, b.array[0].kind)
	assert.Equal(t, KindTemplate, b.array[1].kind)
}

func TestPresetHydrateTextAndColor(t *testing.T) {
	// E3 scenario: {Foo: {"text":"hi $(0)","color":"red"}}
	p, ok := CompilePreset(map[string]any{
		"text":  "hi $(0)",
		"color": "red",
	})
	require.True(t, ok)

	out := p.Hydrate([]string{"world"})
	text, ok := out.Get("text")
	require.True(t, ok)
	assert.Equal(t, "hi world", text.CoerceToString())

	color, ok := out.Get("color")
	require.True(t, ok)
	assert.Equal(t, "red", color.CoerceToString())
}

func TestPresetHydrateObjectCollisionLaterWins(t *testing.T) {
	// Simulate a key collision after hydration: two templated keys that
	// render to the same literal string; later entry's value should win,
	// keeping the earlier entry's position.
	p := Preset{entries: []objectEntry{
		{key: tempstr.Compile("a"), val: Compile("first")},
		{key: tempstr.Compile("a"), val: Compile("second")},
	}}
	out := p.Hydrate(nil)
	assert.Equal(t, 1, out.Len())
	v, ok := out.Get("a")
	require.True(t, ok)
	assert.Equal(t, "second", v.CoerceToString())
}

func TestAsLiteralString(t *testing.T) {
	s, ok := Compile("plain").AsLiteralString()
	assert.True(t, ok)
	assert.Equal(t, "plain", s)

	_, ok = Compile("has $(0)").AsLiteralString()
	assert.False(t, ok)

	_, ok = Compile(42.0).AsLiteralString()
	assert.False(t, ok)
}
