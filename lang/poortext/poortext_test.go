package poortext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func text(s string) Block { return Block{Kind: KindText, Text: s} }
func link(s string) Block { return Block{Kind: KindLink, Text: s} }

func TestParseEmpty(t *testing.T) {
	assert.Equal(t, []Block(nil), Parse(""))
}

func TestParseTextOnly(t *testing.T) {
	assert.Equal(t, []Block{text("hello world")}, Parse("hello world"))
	assert.Equal(t, []Block{text("hello world https")}, Parse("hello world https"))
}

func TestParseTextEndsWithLink(t *testing.T) {
	assert.Equal(t,
		[]Block{text("hello world "), link("https://www.example.com")},
		Parse("hello world https://www.example.com"))
}

func TestParseTextStartsWithLink(t *testing.T) {
	assert.Equal(t,
		[]Block{link("https://www.example.com"), text(" boo")},
		Parse("https://www.example.com boo"))
}

func TestParseMultipleLinks(t *testing.T) {
	assert.Equal(t, []Block{
		text("hello world "),
		link("https://www.example.com"),
		text(" and "),
		link("http://example2.com"),
		text(" and more"),
	}, Parse("hello world https://www.example.com and http://example2.com and more"))
}

func TestParseEndsWithDot(t *testing.T) {
	assert.Equal(t, []Block{
		text("hello world "),
		link("https://www.example.com"),
		text("."),
	}, Parse("hello world https://www.example.com."))

	assert.Equal(t, []Block{
		text("hello  world "),
		link("https://www.example.com"),
		text(". boo"),
	}, Parse("hello  world https://www.example.com. boo"))
}

func TestParseJustHTTP(t *testing.T) {
	assert.Equal(t, []Block{text("hello world https://")}, Parse("hello world https://"))
}
