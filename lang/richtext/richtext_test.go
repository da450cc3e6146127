package richtext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func startsWith(a, b string) bool {
	return Parse(a).StartsWith(b)
}

func TestStartsWithEmpty(t *testing.T) {
	assert.True(t, startsWith("", ""))
	assert.True(t, startsWith("hello", ""))
	assert.True(t, startsWith(".tag(hello)", ""))
	assert.False(t, startsWith("", "x"))
}

func TestStartsWithFirstBlockMatch(t *testing.T) {
	assert.True(t, startsWith("hello", "hel"))
	assert.True(t, startsWith("hello", "hello"))
	assert.True(t, startsWith(".tag(hello)", "h"))

	assert.False(t, startsWith("hello", "x"))
	assert.False(t, startsWith("hello", "xyzws"))
	assert.False(t, startsWith(".tag(hello)", "xxx"))
}

func TestStartsWithManyBlocksMatch(t *testing.T) {
	assert.True(t, startsWith("hello .tag(xxx)", "hello x"))
	assert.True(t, startsWith("hello .tag(xxx)", "hello xxx"))
	assert.True(t, startsWith(".tag(hello) xxx", "hello xxx"))

	assert.False(t, startsWith("hello .tag(yyy)", "hello x"))
	assert.False(t, startsWith("hello. tag(yyy)", "hello yyya"))
	assert.False(t, startsWith(".tag(hello) yyy", "hello x"))
}

func TestParsePlainText(t *testing.T) {
	rt := Parse("hello world")
	assert.Equal(t, RichText{Text("hello world")}, rt)
	assert.Equal(t, "hello world", rt.String())
}

func TestParseSingleTag(t *testing.T) {
	rt := Parse(".tag(hello)")
	assert.Equal(t, RichText{WithTag("tag", "hello")}, rt)
	assert.Equal(t, "hello", rt.String())
}

func TestParseTagAmongPlainText(t *testing.T) {
	rt := Parse("say .word(hi) now")
	assert.Equal(t, RichText{
		Text("say "),
		WithTag("word", "hi"),
		Text(" now"),
	}, rt)
}

func TestParseEscapes(t *testing.T) {
	assert.Equal(t, RichText{Text(".")}, Parse(`\.`))
	assert.Equal(t, RichText{Text("(")}, Parse(`\(`))
	assert.Equal(t, RichText{Text(")")}, Parse(`\)`))
	assert.Equal(t, RichText{Text(`\`)}, Parse(`\\`))
	assert.Equal(t, RichText{Text(`\x`)}, Parse(`\x`))
}

func TestParseEscapesInsideTag(t *testing.T) {
	rt := Parse(`.tag(a\)b)`)
	assert.Equal(t, RichText{WithTag("tag", "a)b")}, rt)
}

func TestParseDotWithoutValidTagIsLiteral(t *testing.T) {
	assert.Equal(t, RichText{Text(".5 apples")}, Parse(".5 apples"))
	assert.Equal(t, RichText{Text(".tag no paren")}, Parse(".tag no paren"))
	assert.Equal(t, RichText{Text(".tag(unterminated")}, Parse(".tag(unterminated"))
}

func TestParseEmpty(t *testing.T) {
	assert.Equal(t, RichText(nil), Parse(""))
}
