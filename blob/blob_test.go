package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePackErr struct {
	source string
	msg    string
}

func (e *fakePackErr) Error() string  { return e.msg }
func (e *fakePackErr) Source() string { return e.source }

func TestFromJSONScalarsAndContainers(t *testing.T) {
	assert.Equal(t, KindNull, FromJSON(nil).Kind())

	b := FromJSON(true)
	v, ok := b.AsBool()
	require.True(t, ok)
	assert.True(t, v)

	b = FromJSON(3.5)
	n, ok := b.AsNumber()
	require.True(t, ok)
	assert.Equal(t, 3.5, n)

	b = FromJSON("hi")
	s, ok := b.AsString()
	require.True(t, ok)
	assert.Equal(t, "hi", s)

	b = FromJSON([]any{"a", 1.0, nil})
	arr, ok := b.AsArray()
	require.True(t, ok)
	require.Len(t, arr, 3)
	s0, _ := arr[0].AsString()
	assert.Equal(t, "a", s0)

	b = FromJSON(map[string]any{"k": "v"})
	obj, ok := b.AsObject()
	require.True(t, ok)
	val, ok := obj.Get("k")
	require.True(t, ok)
	s, _ = val.AsString()
	assert.Equal(t, "v", s)
}

func TestErrNodeRoundTrip(t *testing.T) {
	perr := &fakePackErr{source: "manifest.yaml", msg: "bad use ref"}
	b := Err(perr)
	assert.Equal(t, KindErr, b.Kind())
	got, ok := b.AsErr()
	require.True(t, ok)
	assert.Equal(t, perr, got)
}

func TestOrderedObjectPreservesInsertionOrder(t *testing.T) {
	obj := NewObject[RouteBlob]()
	obj.Set("z", String("1"))
	obj.Set("a", String("2"))
	obj.Set("z", String("3")) // overwrite keeps original position

	assert.Equal(t, []string{"z", "a"}, obj.Keys())
	assert.Equal(t, 2, obj.Len())

	v, ok := obj.Get("z")
	require.True(t, ok)
	s, _ := v.AsString()
	assert.Equal(t, "3", s)

	var visited []string
	obj.Each(func(k string, _ RouteBlob) { visited = append(visited, k) })
	assert.Equal(t, []string{"z", "a"}, visited)
}
