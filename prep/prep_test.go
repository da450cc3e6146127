package prep_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/prep"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/setting"
)

func projectRes(files map[string]string) resource.Resource {
	loader := resource.NewMemLoader(files)
	root, _ := celerpath.New().Join("project.yaml")
	return resource.New(celerpath.Local(root), loader)
}

func TestLoadIdentityProject(t *testing.T) {
	files := map[string]string{
		"/project.yaml": `
title: T
version: "1"
route:
  - s:
      - l: {}
`,
	}
	ctx, err := prep.Load(context.Background(), projectRes(files), "", setting.Default(), prep.PluginOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "T", ctx.Config.Title)
	assert.Equal(t, "1", ctx.Config.Version)
	require.NotNil(t, ctx.RawRoute)
}

func TestLoadMissingTitleFails(t *testing.T) {
	files := map[string]string{
		"/project.yaml": `version: "1"` + "\n",
	}
	_, err := prep.Load(context.Background(), projectRes(files), "", setting.Default(), prep.PluginOptions{}, nil)
	require.Error(t, err)
}

func TestLoadMapMetadataAxisMapping(t *testing.T) {
	files := map[string]string{
		"/project.yaml": `
title: T
version: "1"
map:
  initial-color: red
  coord-map:
    mapping-3d: [z, z, y]
route: []
`,
	}
	ctx, err := prep.Load(context.Background(), projectRes(files), "", setting.Default(), prep.PluginOptions{}, nil)
	require.NoError(t, err)
	require.NotNil(t, ctx.Config.Map)
	assert.Equal(t, "red", ctx.Config.Map.InitialColor)
	assert.Equal(t, prep.AxisZ, ctx.Config.Map.CoordMap.Mapping3D[0])
	assert.Equal(t, prep.AxisY, ctx.Config.Map.CoordMap.Mapping3D[2])
}

func TestLoadPluginOptionsAddRemove(t *testing.T) {
	files := map[string]string{
		"/project.yaml": `
title: T
version: "1"
plugins:
  - id: link
route: []
`,
	}
	opts := prep.PluginOptions{
		Remove: []string{"link"},
		Add:    []prep.PluginInstance{{ID: "metrics"}},
	}
	ctx, err := prep.Load(context.Background(), projectRes(files), "", setting.Default(), opts, nil)
	require.NoError(t, err)
	require.Len(t, ctx.Plugins, 1)
	assert.Equal(t, "metrics", ctx.Plugins[0].ID)
	assert.True(t, ctx.Plugins[0].FromUser)
}

func TestLoadPresetsRegistered(t *testing.T) {
	files := map[string]string{
		"/project.yaml": `
title: T
version: "1"
presets:
  Foo:
    text: "hi $(0)"
    color: red
route: []
`,
	}
	ctx, err := prep.Load(context.Background(), projectRes(files), "", setting.Default(), prep.PluginOptions{}, nil)
	require.NoError(t, err)
	p, ok := ctx.Meta.Presets.Lookup("Foo")
	require.True(t, ok)
	out := p.Hydrate([]string{"world"})
	text, ok := out.Get("text")
	require.True(t, ok)
	assert.Equal(t, "hi world", text.CoerceToString())
}
