package tempstr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func render(t *testing.T, ts TempStr) []block {
	t.Helper()
	return ts.blocks
}

func lit(s string) block { return block{kind: blockLit, lit: s} }
func vr(n int) block     { return block{kind: blockVar, idx: n} }

func TestCompileEmpty(t *testing.T) {
	assert.Equal(t, []block(nil), render(t, Compile("")))
}

func TestCompileSingleLiteral(t *testing.T) {
	assert.Equal(t, []block{lit("abcd")}, render(t, Compile("abcd")))
	assert.Equal(t, []block{lit("12")}, render(t, Compile("12")))
}

func TestCompileDollarEscaping(t *testing.T) {
	assert.Equal(t, []block{lit("$")}, render(t, Compile("$")))
	assert.Equal(t, []block{lit("$")}, render(t, Compile("$$")))
	assert.Equal(t, []block{lit("$$")}, render(t, Compile("$$$")))
	assert.Equal(t, []block{lit("$$")}, render(t, Compile("$$$$")))
}

func TestCompileVariable(t *testing.T) {
	assert.Equal(t, []block{vr(0)}, render(t, Compile("$(0)")))
	assert.Equal(t, []block{vr(123)}, render(t, Compile("$(123)")))
	assert.Equal(t, []block{vr(123)}, render(t, Compile("$(0123)")))
}

func TestCompileOneVarWithOther(t *testing.T) {
	assert.Equal(t, []block{lit("abc"), vr(0)}, render(t, Compile("abc$(0)")))
	assert.Equal(t, []block{vr(1), lit("asdfa")}, render(t, Compile("$(1)asdfa")))
	assert.Equal(t, []block{lit("xxyz"), vr(4), lit("asdfa")}, render(t, Compile("xxyz$(4)asdfa")))
}

func TestCompileEscapeVariable(t *testing.T) {
	assert.Equal(t, []block{lit("$(1)")}, render(t, Compile("$$(1)")))
	assert.Equal(t, []block{lit("$"), vr(1)}, render(t, Compile("$$$(1)")))
}

func TestCompileNoNested(t *testing.T) {
	assert.Equal(t, []block{lit("$("), vr(1), lit(")")}, render(t, Compile("$($(1))")))
}

func TestCompileVariableNotNumber(t *testing.T) {
	assert.Equal(t, []block{lit("$(a)")}, render(t, Compile("$(a)")))
}

func TestCompileMultipleVar(t *testing.T) {
	assert.Equal(t, []block{vr(0), vr(1)}, render(t, Compile("$(0)$(1)")))
	assert.Equal(t, []block{lit("abc"), vr(0), lit("def"), vr(1), lit("de")},
		render(t, Compile("abc$(0)def$(1)de")))
}

func TestCompileComplicated(t *testing.T) {
	assert.Equal(t, []block{lit("ad)($)af$$()he"), vr(0)},
		render(t, Compile("ad)($)af$$$()he$(0)")))
}

func TestIsLiteral(t *testing.T) {
	assert.True(t, Compile("abcd").IsLiteral())
	assert.True(t, Compile("$$").IsLiteral())
	assert.False(t, Compile("$(0)").IsLiteral())
}

func TestHydrateOnlyLiteral(t *testing.T) {
	assert.Equal(t, "abcd", Compile("abcd").Hydrate(nil))
	assert.Equal(t, "abcd", Compile("abcd").Hydrate([]string{"hello"}))
	assert.Equal(t, "abcd", Compile("abcd").Hydrate([]string{"hello", "world"}))
}

func TestHydrateOnlyVariable(t *testing.T) {
	args := []string{"hello", "world", "temp"}
	assert.Equal(t, "hello", Compile("$(0)").Hydrate(args))
	assert.Equal(t, "world", Compile("$(1)").Hydrate(args))
	assert.Equal(t, "temp", Compile("$(2)").Hydrate(args))
	assert.Equal(t, "", Compile("$(3)").Hydrate(args))
}

func TestHydrateMixed(t *testing.T) {
	args := []string{"hello", "world", "temp"}
	assert.Equal(t, "foohello", Compile("foo$(0)").Hydrate(args))
	assert.Equal(t, "worldbar", Compile("$(1)bar").Hydrate(args))
	assert.Equal(t, "bartempfooworld", Compile("bar$(2)foo$(1)").Hydrate(args))
	assert.Equal(t, "bar tempworldtemp", Compile("bar$(3)$(3) $(2)$(1)$(2)").Hydrate(args))
}
