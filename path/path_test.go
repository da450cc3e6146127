package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinNormalisesBackslashes(t *testing.T) {
	a, ok := New().Join("a\\b\\c")
	require.True(t, ok)
	b, ok := New().Join("a/b/c")
	require.True(t, ok)
	assert.True(t, a.Equal(b))
	assert.Equal(t, "a/b/c", a.String())
}

func TestJoinDropsEmptyAndDotSegments(t *testing.T) {
	p, ok := New().Join("a//./b/.//c")
	require.True(t, ok)
	assert.Equal(t, "a/b/c", p.String())
}

func TestJoinPopsOnDotDot(t *testing.T) {
	p, ok := New().Join("a/b/c")
	require.True(t, ok)
	p, ok = p.Join("..")
	require.True(t, ok)
	assert.Equal(t, "a/b", p.String())
}

func TestJoinEscapingRootFails(t *testing.T) {
	_, ok := New().Join("..")
	assert.False(t, ok)

	p, ok := New().Join("a")
	require.True(t, ok)
	_, ok = p.Join("../..")
	assert.False(t, ok)
}

func TestParent(t *testing.T) {
	p, _ := New().Join("a/b")
	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, "a", parent.String())

	_, ok = New().Parent()
	assert.False(t, ok)
}
