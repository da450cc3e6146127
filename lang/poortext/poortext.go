// Package poortext implements celer's "poor text" parser (spec §4.6):
// plain strings with bare http(s):// URLs auto-linkified, used for
// property values that don't support rich-text markup.
package poortext

import "strings"

// Kind discriminates a Block between plain text and an auto-detected
// link.
type Kind int

const (
	KindText Kind = iota
	KindLink
)

// Block is one segment of parsed poor text.
type Block struct {
	Kind Kind
	Text string
}

// Parse splits s on spaces and promotes any space-delimited token that
// looks like a bare URL into a Link block, re-joining runs of plain
// words with single spaces exactly as score-compose's upstream reference
// does it (original `compiler-core/src/lang/poor.rs`). A trailing '.'
// on a link is split off into the following text run so sentence-ending
// punctuation doesn't become part of the URL.
func Parse(s string) []Block {
	var out []Block
	if s == "" {
		return out
	}
	var current strings.Builder
	for _, part := range strings.Split(s, " ") {
		if isLink(part) {
			if current.Len() > 0 {
				out = append(out, Block{Kind: KindText, Text: current.String()})
				current.Reset()
			}
			if strings.HasSuffix(part, ".") {
				out = append(out, Block{Kind: KindLink, Text: part[:len(part)-1]})
				current.WriteString(". ")
			} else {
				out = append(out, Block{Kind: KindLink, Text: part})
				current.WriteByte(' ')
			}
			continue
		}
		current.WriteString(part)
		current.WriteByte(' ')
	}
	rest := strings.TrimRight(current.String(), " ")
	if rest != "" {
		out = append(out, Block{Kind: KindText, Text: rest})
	}
	return out
}

func isLink(part string) bool {
	switch {
	case strings.HasPrefix(part, "http://"):
		return len(part) > len("http://")
	case strings.HasPrefix(part, "https://"):
		return len(part) > len("https://")
	default:
		return false
	}
}
