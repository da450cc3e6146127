package blob

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceToStringRules(t *testing.T) {
	assert.Equal(t, "", Null().CoerceToString())
	assert.Equal(t, "true", Bool(true).CoerceToString())
	assert.Equal(t, "false", Bool(false).CoerceToString())
	assert.Equal(t, "13", Number(13).CoerceToString())
	assert.Equal(t, "13.5", Number(13.5).CoerceToString())
	assert.Equal(t, "hi", String("hi").CoerceToString())
	assert.Equal(t, "[object array]", Array(nil).CoerceToString())
	assert.Equal(t, "[object object]", Object(NewObject[RouteBlob]()).CoerceToString())
}

func TestCoerceToRepl(t *testing.T) {
	assert.Equal(t, "null", Null().CoerceToRepl())
	assert.Equal(t, "hi", String("hi").CoerceToRepl())
}

func TestCoerceTruthy(t *testing.T) {
	assert.False(t, Null().CoerceTruthy())
	assert.False(t, Bool(false).CoerceTruthy())
	assert.True(t, Bool(true).CoerceTruthy())
	assert.False(t, Number(0).CoerceTruthy())
	assert.True(t, Number(1).CoerceTruthy())
	assert.False(t, String("").CoerceTruthy())
	assert.True(t, String("hello").CoerceTruthy())
	assert.True(t, Array(nil).CoerceTruthy())
	assert.True(t, Object(NewObject[RouteBlob]()).CoerceTruthy())
}

func TestTryCoerceToF64(t *testing.T) {
	cases := []struct {
		b    RouteBlob
		want float64
		ok   bool
	}{
		{String("1.0"), 1.0, true},
		{String("13"), 13.0, true},
		{String(" 13 "), 13.0, true},
		{String(""), 0, false},
		{Null(), 0, false},
		{Bool(true), 0, false},
		{Bool(false), 0, false},
		{Number(13), 13.0, true},
		{Array(nil), 0, false},
		{Object(NewObject[RouteBlob]()), 0, false},
	}
	for _, c := range cases {
		got, ok := c.b.TryCoerceToF64()
		assert.Equal(t, c.ok, ok)
		if ok {
			assert.Equal(t, c.want, got)
		}
	}
}

func TestTryCoerceToBool(t *testing.T) {
	cases := []struct {
		b    RouteBlob
		want bool
		ok   bool
	}{
		{String("1.0"), false, false},
		{String("0"), false, false},
		{String(""), false, false},
		{String("true"), true, true},
		{String(" true "), true, true},
		{String("false"), false, true},
		{Null(), false, true},
		{Bool(true), true, true},
		{Bool(false), false, true},
		{Number(13), false, false},
		{Number(0), false, true},
		{Number(1), true, true},
		{Array(nil), false, false},
		{Object(NewObject[RouteBlob]()), false, false},
	}
	for _, c := range cases {
		got, ok := c.b.TryCoerceToBool()
		assert.Equal(t, c.ok, ok, "input %#v", c.b)
		if ok {
			assert.Equal(t, c.want, got)
		}
	}
}

func TestTryCoerceToU32Overflow(t *testing.T) {
	_, ok := Number(1 << 40).TryCoerceToU32()
	assert.False(t, ok)

	v, ok := Number(42).TryCoerceToU32()
	assert.True(t, ok)
	assert.Equal(t, uint32(42), v)
}

func TestTryCoerceToI64Negative(t *testing.T) {
	v, ok := String("-7").TryCoerceToI64()
	assert.True(t, ok)
	assert.Equal(t, int64(-7), v)
}
