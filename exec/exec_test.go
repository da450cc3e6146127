package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/comp"
	"github.com/celer-dev/celerc/exec"
	"github.com/celer-dev/celerc/lang/richtext"
	"github.com/celer-dev/celerc/prep"
)

func TestExecuteSeedsCoordFromInitialAndSplitsOnWarp(t *testing.T) {
	cfg := prep.RouteConfig{Map: &prep.MapMetadata{InitialCoord: prep.GameCoord{X: 1, Y: 2, Z: 3}}}
	doc := comp.CompDoc{
		Config: cfg,
		Route: []comp.CompSection{
			{
				Name: "s",
				Lines: []comp.CompLine{
					{
						Text:  richtext.Parse("l1"),
						Color: "red",
						Movements: []comp.Movement{
							{To: prep.GameCoord{X: 1, Y: 2, Z: 4}},
							{To: prep.GameCoord{X: 9, Y: 9, Z: 9}, Warp: true},
							{To: prep.GameCoord{X: 9, Y: 9, Z: 10}},
						},
					},
				},
			},
		},
	}

	out := exec.NewExecutor().Execute(doc)
	require.Len(t, out.Route, 1)
	lines := out.Route[0].Map.Lines
	// one connected run up to the warp, one fresh run starting at the warp target
	require.Len(t, lines, 2)
	assert.Equal(t, []prep.GameCoord{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 4}}, lines[0].Points)
	assert.Equal(t, []prep.GameCoord{{X: 9, Y: 9, Z: 9}, {X: 9, Y: 9, Z: 10}}, lines[1].Points)
}

func TestExecuteSplitsMapLineOnColorChange(t *testing.T) {
	doc := comp.CompDoc{
		Route: []comp.CompSection{
			{
				Name: "s",
				Lines: []comp.CompLine{
					{Text: richtext.Parse("a"), Color: "red", Movements: []comp.Movement{{To: prep.GameCoord{X: 1}}}},
					{Text: richtext.Parse("b"), Color: "blue", Movements: []comp.Movement{{To: prep.GameCoord{X: 2}}}},
				},
			},
		},
	}

	out := exec.NewExecutor().Execute(doc)
	lines := out.Route[0].Map.Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "red", lines[0].Color)
	assert.Equal(t, "blue", lines[1].Color)
	assert.Equal(t, []prep.GameCoord{{}, {X: 1}}, lines[0].Points)
	assert.Equal(t, []prep.GameCoord{{X: 1}, {X: 2}}, lines[1].Points)
}

func TestExecuteThreadsCoordAcrossSections(t *testing.T) {
	doc := comp.CompDoc{
		Route: []comp.CompSection{
			{Name: "s1", Lines: []comp.CompLine{
				{Text: richtext.Parse("a"), Color: "c", Movements: []comp.Movement{{To: prep.GameCoord{X: 1}}}},
			}},
			{Name: "s2", Lines: []comp.CompLine{
				{Text: richtext.Parse("b"), Color: "c", Movements: []comp.Movement{{To: prep.GameCoord{X: 2}}}},
			}},
		},
	}

	out := exec.NewExecutor().Execute(doc)
	require.Len(t, out.Route, 2)
	// each section gets its own MapLine list even though the colour didn't change
	require.Len(t, out.Route[0].Map.Lines, 1)
	require.Len(t, out.Route[1].Map.Lines, 1)
	assert.Equal(t, []prep.GameCoord{{}, {X: 1}}, out.Route[0].Map.Lines[0].Points)
	assert.Equal(t, []prep.GameCoord{{X: 1}, {X: 2}}, out.Route[1].Map.Lines[0].Points)
}

func TestExecuteMarkerInheritsLineColor(t *testing.T) {
	overrideColor := "green"
	doc := comp.CompDoc{
		Route: []comp.CompSection{
			{Name: "s", Lines: []comp.CompLine{
				{
					Text:  richtext.Parse("a"),
					Color: "red",
					Markers: []comp.Marker{
						{At: prep.GameCoord{X: 1}},
						{At: prep.GameCoord{X: 2}, Color: &overrideColor},
					},
				},
			}},
		},
	}

	out := exec.NewExecutor().Execute(doc)
	markers := out.Route[0].Map.Markers
	require.Len(t, markers, 2)
	assert.Equal(t, "red", markers[0].Color)
	assert.Equal(t, "green", markers[1].Color)
}

func TestExecuteFlagsUnresolvedIcon(t *testing.T) {
	cfg := prep.RouteConfig{Icons: map[string]string{"known": "data:..."}}
	doc := comp.CompDoc{
		Config: cfg,
		Route: []comp.CompSection{
			{Name: "s", Lines: []comp.CompLine{
				{Text: richtext.Parse("a"), IconDoc: "missing"},
			}},
		},
	}

	out := exec.NewExecutor().Execute(doc)
	require.Len(t, out.Diagnostics, 1)
	assert.Equal(t, "warning", out.Diagnostics[0].Type)
	assert.Contains(t, out.Diagnostics[0].Msg, "missing")
}
