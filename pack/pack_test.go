package pack_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celer-dev/celerc/blob"
	"github.com/celer-dev/celerc/pack"
	celerpath "github.com/celer-dev/celerc/path"
	"github.com/celer-dev/celerc/resource"
	"github.com/celer-dev/celerc/setting"
)

func rootRes(files map[string]string) resource.Resource {
	loader := resource.NewMemLoader(files)
	return resource.New(celerpath.Local(celerpath.New()), loader)
}

func TestExpandPassesThroughPlainValues(t *testing.T) {
	p := pack.New(setting.Default())
	res := rootRes(nil)
	b := p.Expand(context.Background(), res, map[string]any{
		"title": "hello",
		"n":     float64(3),
	})
	require.Equal(t, blob.KindObject, b.Kind())
	obj, _ := b.AsObject()
	title, ok := obj.Get("title")
	require.True(t, ok)
	s, _ := title.AsString()
	assert.Equal(t, "hello", s)
}

func TestExpandResolvesRelativeUse(t *testing.T) {
	files := map[string]string{
		"/project.yaml": "title: T\n",
		"/other.yaml":   "color: red\n",
	}
	p := pack.New(setting.Default())
	root, ok := celerpath.New().Join("project.yaml")
	require.True(t, ok)
	res := resource.New(celerpath.Local(root), resource.NewMemLoader(files))

	b := p.Expand(context.Background(), res, map[string]any{
		"section": map[string]any{"use": "./other.yaml"},
	})
	obj, _ := b.AsObject()
	section, ok := obj.Get("section")
	require.True(t, ok)
	require.Equal(t, blob.KindObject, section.Kind())
	inner, _ := section.AsObject()
	color, ok := inner.Get("color")
	require.True(t, ok)
	s, _ := color.AsString()
	assert.Equal(t, "red", s)
}

func TestExpandEmbedsErrOnInvalidUse(t *testing.T) {
	p := pack.New(setting.Default())
	res := rootRes(nil)
	b := p.Expand(context.Background(), res, map[string]any{
		"use": "/trailing/",
	})
	assert.Equal(t, blob.KindErr, b.Kind())
}

func TestExpandEmbedsErrOnMaxUseDepth(t *testing.T) {
	files := map[string]string{
		"/project.yaml": "use: ./a.yaml\n",
		"/a.yaml":       "use: ./b.yaml\n",
		"/b.yaml":       "use: ./a.yaml\n",
	}
	s := setting.Default()
	s.MaxUseDepth = 1
	p := pack.New(s)
	root, ok := celerpath.New().Join("project.yaml")
	require.True(t, ok)
	res := resource.New(celerpath.Local(root), resource.NewMemLoader(files))

	b := p.Expand(context.Background(), res, map[string]any{"use": "./a.yaml"})
	assert.Equal(t, blob.KindErr, b.Kind())
}

func TestExpandSiblingUnaffectedByMalformedUse(t *testing.T) {
	p := pack.New(setting.Default())
	res := rootRes(nil)
	b := p.Expand(context.Background(), res, map[string]any{
		"bad":  map[string]any{"use": "/trailing/"},
		"good": "fine",
	})
	obj, _ := b.AsObject()
	good, ok := obj.Get("good")
	require.True(t, ok)
	s, _ := good.AsString()
	assert.Equal(t, "fine", s)
	bad, ok := obj.Get("bad")
	require.True(t, ok)
	assert.Equal(t, blob.KindErr, bad.Kind())
}
