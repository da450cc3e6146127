package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	celerpath "github.com/celer-dev/celerc/path"
)

func mustPath(t *testing.T, s string) celerpath.Path {
	t.Helper()
	p, ok := celerpath.New().Join(s)
	require.True(t, ok)
	return p
}

func TestLoadStructuredDispatchesByExtension(t *testing.T) {
	loader := NewMemLoader(map[string]string{
		"/a.yaml": "key: value\n",
		"/a.json": `{"key": "value"}`,
		"/a.txt":  "nope",
	})
	ctx := context.Background()

	r := New(celerpath.Local(mustPath(t, "a.yaml")), loader)
	v, err := r.LoadStructured(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "value"}, ToPlainAny(v))

	r = New(celerpath.Local(mustPath(t, "a.json")), loader)
	v, err = r.LoadStructured(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "value"}, ToPlainAny(v))

	r = New(celerpath.Local(mustPath(t, "a.txt")), loader)
	_, err = r.LoadStructured(ctx)
	require.Error(t, err)
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, ErrUnknownFormat, lerr.Kind)
}

// TestLoadStructuredPreservesObjectOrder guards against the decode-path
// regression FromJSON/preset.Compile/pack.Packer.Expand all depend on:
// LoadStructured must hand back the source document's own key order, not
// whatever order Go's map implementation happens to range in.
func TestLoadStructuredPreservesObjectOrder(t *testing.T) {
	want := []string{"zeta", "alpha", "middle", "beta"}

	loader := NewMemLoader(map[string]string{
		"/a.yaml": "zeta: 1\nalpha: 2\nmiddle:\n  inner-z: 1\n  inner-a: 2\nbeta: 4\n",
		"/a.json": `{"zeta": 1, "alpha": 2, "middle": {"inner-z": 1, "inner-a": 2}, "beta": 4}`,
	})
	ctx := context.Background()

	for _, name := range []string{"a.yaml", "a.json"} {
		r := New(celerpath.Local(mustPath(t, name)), loader)
		v, err := r.LoadStructured(ctx)
		require.NoError(t, err)

		m, ok := v.(*OrderedMap)
		require.True(t, ok, "%s: expected *OrderedMap, got %T", name, v)
		assert.Equal(t, want, m.Keys(), "%s: top-level key order", name)

		middle, ok := m.Get("middle")
		require.True(t, ok)
		mm, ok := middle.(*OrderedMap)
		require.True(t, ok, "%s: expected nested *OrderedMap, got %T", name, middle)
		assert.Equal(t, []string{"inner-z", "inner-a"}, mm.Keys(), "%s: nested key order", name)
	}
}

func TestResolveRelative(t *testing.T) {
	loader := NewMemLoader(nil)
	r := New(celerpath.Local(mustPath(t, "a/b/c.yaml")), loader)

	sibling, err := r.Resolve(celerpath.ParseRef("./d.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a/b/d.yaml", sibling.Path().Path().String())

	up, err := r.Resolve(celerpath.ParseRef("../e.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "a/e.yaml", up.Path().Path().String())
}

func TestResolveAbsolute(t *testing.T) {
	loader := NewMemLoader(nil)
	r := New(celerpath.Local(mustPath(t, "a/b/c.yaml")), loader)
	abs, err := r.Resolve(celerpath.ParseRef("/x/y.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "x/y.yaml", abs.Path().Path().String())
}

func TestResolveRemote(t *testing.T) {
	loader := NewMemLoader(nil)
	r := New(celerpath.Local(mustPath(t, "a.yaml")), loader)
	remote, err := r.Resolve(celerpath.ParseRef("owner/repo/sub/file.yaml:v2"))
	require.NoError(t, err)
	assert.True(t, remote.Path().IsRemote())
	assert.Equal(t, "sub/file.yaml", remote.Path().Path().String())
	assert.Equal(t, "https://raw.githubusercontent.com/owner/repo/v2/", remote.Path().Prefix())
}

func TestLoadImageURLLocalBecomesDataURL(t *testing.T) {
	loader := NewMemLoader(map[string]string{"/icon.png": "fake-bytes"})
	r := New(celerpath.Local(mustPath(t, "icon.png")), loader)
	url, err := r.LoadImageURL(context.Background())
	require.NoError(t, err)
	assert.Contains(t, url, "data:image/png;base64,")
}

func TestLoadImageURLRemotePassesThrough(t *testing.T) {
	loader := NewMemLoader(nil)
	r := New(celerpath.Remote("https://example.com/", mustPath(t, "icon.png")), loader)
	url, err := r.LoadImageURL(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/icon.png", url)
}

func TestBytesFromDataURL(t *testing.T) {
	b, err := BytesFromDataURL("data:text/plain;base64,aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	b, err = BytesFromDataURL("data:text/plain,hello%20world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(b))
}
