// Package richtext implements celer's rich-text micro-language (spec
// §4.7): a sequence of blocks, each carrying at most one `.tag(content)`
// markup run, plain text, or escape sequences.
package richtext

import "strings"

// Block is one run of rich text: an untagged plain-text run has Tag ==
// nil; a `.tag(...)` run has Tag pointing at the tag name. Link is set
// later by plugins (e.g. the `link` built-in), never by Parse itself.
type Block struct {
	Tag  *string
	Text string
	Link *string
}

// Text builds an untagged block, the rich-text equivalent of a bare
// string.
func Text(s string) Block { return Block{Text: s} }

// WithTag builds a tagged block.
func WithTag(tag, s string) Block { return Block{Tag: &tag, Text: s} }

// RichText is the parsed, ordered block sequence.
type RichText []Block

// String concatenates block texts, ignoring tags — the same projection
// StartsWith compares against.
func (r RichText) String() string {
	var sb strings.Builder
	for _, b := range r {
		sb.WriteString(b.Text)
	}
	return sb.String()
}

// StartsWith reports whether the concatenation of all block texts
// starts with prefix, ignoring tags entirely. Walks blocks consecutively
// comparing against the running prefix (spec §4.7, §8 invariant 4),
// grounded on the exact algorithm in original
// `compiler-core/src/lang/rich/ext.rs`.
func (r RichText) StartsWith(prefix string) bool {
	if prefix == "" {
		return true
	}
	for _, b := range r {
		t := b.Text
		l := len(t)
		if len(prefix) < l {
			return strings.HasPrefix(t, prefix)
		}
		if strings.HasPrefix(prefix, t) {
			prefix = prefix[l:]
		} else {
			return false
		}
	}
	return prefix == ""
}

// Parse parses s per the recursive-descent grammar in spec §4.7:
//
//	Rich   ← (Tagged | Plain | Escape)*
//	Tagged ← '.' Ident '(' Inner ')'
//	Inner  ← (Escape | Plain-no-paren)*
//	Escape ← '\\' | '\.' | '\(' | '\)'
//
// A `.` not followed by a valid `Ident(` degrades to a literal `.`; a
// `\` not followed by one of the four escaped characters is literal
// `\` plus that character. Nesting of tags is not permitted — an
// unterminated `.tag(...)` (missing the closing paren) also degrades to
// literal text from the `.` onward.
func Parse(s string) RichText {
	runes := []rune(s)
	i := 0
	var out RichText
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			out = append(out, Text(plain.String()))
			plain.Reset()
		}
	}

	for i < len(runes) {
		c := runes[i]
		switch {
		case c == '\\':
			lit, consumed := escapeAt(runes, i)
			plain.WriteRune(lit)
			i += consumed
		case c == '.':
			if tag, inner, next, ok := parseTagged(runes, i); ok {
				flush()
				out = append(out, WithTag(tag, inner))
				i = next
				continue
			}
			plain.WriteRune('.')
			i++
		default:
			plain.WriteRune(c)
			i++
		}
	}
	flush()
	return out
}

// escapeAt consumes a `\` at runes[i] per the Escape rule, returning the
// literal rune it produces and how many input runes were consumed (1 or
// 2).
func escapeAt(runes []rune, i int) (rune, int) {
	if i+1 >= len(runes) {
		return '\\', 1
	}
	switch runes[i+1] {
	case '\\', '.', '(', ')':
		return runes[i+1], 2
	default:
		// Not one of the four escapes: "literal `\` plus the character"
		// — callers want a single rune back, so emit '\' here and let
		// the next loop iteration handle the character normally.
		return '\\', 1
	}
}

// parseTagged attempts to parse a Tagged run starting at the '.' found
// at runes[start]. Returns the tag name, the unescaped inner text, the
// index just past the closing ')', and whether the parse succeeded.
func parseTagged(runes []rune, start int) (string, string, int, bool) {
	j := start + 1
	identStart := j
	for j < len(runes) && isIdentRune(runes[j]) {
		j++
	}
	if j == identStart || j >= len(runes) || runes[j] != '(' {
		return "", "", 0, false
	}
	ident := string(runes[identStart:j])

	k := j + 1
	var inner strings.Builder
	for k < len(runes) {
		ic := runes[k]
		switch {
		case ic == '\\':
			if k+1 < len(runes) {
				switch runes[k+1] {
				case '\\', '.', '(', ')':
					inner.WriteRune(runes[k+1])
					k += 2
					continue
				}
			}
			inner.WriteRune('\\')
			k++
		case ic == ')':
			return ident, inner.String(), k + 1, true
		default:
			inner.WriteRune(ic)
			k++
		}
	}
	return "", "", 0, false
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
