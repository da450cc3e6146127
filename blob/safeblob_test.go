package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkSubstitutesErrWithDiagnostic(t *testing.T) {
	perr := &fakePackErr{source: "routes/a.yaml", msg: "use cycle detected"}
	obj := NewObject[RouteBlob]()
	obj.Set("ok", String("fine"))
	obj.Set("bad", Err(perr))
	tree := Object(obj)

	var diags []Diagnostic
	safe := Walk(tree, &diags)

	require.Len(t, diags, 1)
	assert.Equal(t, "routes/a.yaml", diags[0].Source)
	assert.Equal(t, "error", diags[0].Type)
	assert.Equal(t, "use cycle detected", diags[0].Msg)

	safeObj, ok := safe.AsObject()
	require.True(t, ok)

	okVal, ok := safeObj.Get("ok")
	require.True(t, ok)
	s, _ := okVal.AsString()
	assert.Equal(t, "fine", s)

	badVal, ok := safeObj.Get("bad")
	require.True(t, ok)
	assert.Equal(t, KindNull, badVal.Kind())
}

func TestWalkArrayRecurses(t *testing.T) {
	tree := Array([]RouteBlob{String("a"), Number(2), Err(&fakePackErr{source: "x", msg: "boom"})})
	var diags []Diagnostic
	safe := Walk(tree, &diags)

	arr, ok := safe.AsArray()
	require.True(t, ok)
	require.Len(t, arr, 3)
	assert.Equal(t, KindNull, arr[2].Kind())
	require.Len(t, diags, 1)
}

func TestSafeOwnedConstructors(t *testing.T) {
	assert.True(t, SafeNull().Owned())
	assert.True(t, SafeBool(true).Owned())
	assert.True(t, SafeNumber(1).Owned())
	assert.True(t, SafeString("x").Owned())

	var diags []Diagnostic
	borrowed := Walk(String("x"), &diags)
	assert.False(t, borrowed.Owned())
}

func TestSafeTryIntoArrayAndString(t *testing.T) {
	arrBlob := SafeArray([]SafeRouteBlob{SafeString("a")})
	items, _, ok := arrBlob.TryIntoArray()
	require.True(t, ok)
	assert.Len(t, items, 1)

	_, orig, ok := SafeString("x").TryIntoArray()
	assert.False(t, ok)
	s, _ := orig.AsString()
	assert.Equal(t, "x", s)

	str, _, ok := SafeString("hi").TryIntoString()
	require.True(t, ok)
	assert.Equal(t, "hi", str)
}
