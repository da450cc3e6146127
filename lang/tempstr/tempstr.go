// Package tempstr implements celer's template-string micro-language
// (spec §4.5): a `$(n)` positional placeholder syntax used by preset
// argument substitution, with `$` itself escaped by doubling.
package tempstr

import (
	"strconv"
	"strings"
)

// blockKind discriminates a compiled TempStr segment.
type blockKind int

const (
	blockLit blockKind = iota
	blockVar
)

type block struct {
	kind blockKind
	lit  string
	idx  int
}

// TempStr is a compiled template string: a sequence of literal runs and
// positional variable references, ready for repeated Hydrate calls
// against different argument sets (spec §4.5, §4.8 preset args).
type TempStr struct {
	blocks []block
}

type tokKind int

const (
	tokSymbol tokKind = iota
	tokText
	tokNumber
)

type token struct {
	kind tokKind
	text string
}

// Compile parses s into a TempStr. Grounded exactly on the test table in
// original `compiler-core/src/lang/tempstr/mod.rs`: `$` alone is literal,
// `$$` escapes to a literal `$`, `$(N)` is a variable reference (leading
// zeros in N are insignificant), and any `$(` that isn't followed by a
// decimal number and a closing `)` is left as literal text.
func Compile(s string) TempStr {
	toks := tokenize(s)
	var blocks []block
	i := 0
	for i < len(toks) {
		t := toks[i]
		if t.kind == tokSymbol && t.text == "$" {
			i++
			switch {
			case i < len(toks) && toks[i].kind == tokSymbol && toks[i].text == "$":
				blocks = append(blocks, block{kind: blockLit, lit: "$"})
				i++
			case i+2 < len(toks) && toks[i].kind == tokSymbol && toks[i].text == "(" &&
				toks[i+1].kind == tokNumber &&
				toks[i+2].kind == tokSymbol && toks[i+2].text == ")":
				n, _ := strconv.Atoi(toks[i+1].text)
				blocks = append(blocks, block{kind: blockVar, idx: n})
				i += 3
			default:
				blocks = append(blocks, block{kind: blockLit, lit: "$"})
			}
			continue
		}
		blocks = append(blocks, block{kind: blockLit, lit: t.text})
		i++
	}
	return TempStr{blocks: mergeLiterals(blocks)}
}

// IsLiteral reports whether s contains no `$(n)` variable references, so
// callers (e.g. preset compilation) can skip hydration entirely for
// constant strings.
func (t TempStr) IsLiteral() bool {
	for _, b := range t.blocks {
		if b.kind == blockVar {
			return false
		}
	}
	return true
}

// AsLiteral returns t's literal text if it IsLiteral, else ("", false).
func (t TempStr) AsLiteral() (string, bool) {
	if !t.IsLiteral() {
		return "", false
	}
	return t.Hydrate(nil), true
}

// Literal builds a TempStr that always hydrates to s verbatim regardless
// of s's content — used when a string is already fully resolved (e.g. a
// preset key produced by static pre-expansion) and must never be
// re-interpreted as containing `$(n)` syntax.
func Literal(s string) TempStr {
	if s == "" {
		return TempStr{}
	}
	return TempStr{blocks: []block{{kind: blockLit, lit: s}}}
}

// Hydrate substitutes each `$(n)` reference with args[n], or the empty
// string if n is out of range (spec §4.5).
func (t TempStr) Hydrate(args []string) string {
	var sb strings.Builder
	for _, b := range t.blocks {
		switch b.kind {
		case blockLit:
			sb.WriteString(b.lit)
		case blockVar:
			if b.idx >= 0 && b.idx < len(args) {
				sb.WriteString(args[b.idx])
			}
		}
	}
	return sb.String()
}

func mergeLiterals(blocks []block) []block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]block, 0, len(blocks))
	for _, b := range blocks {
		if b.kind == blockLit && len(out) > 0 && out[len(out)-1].kind == blockLit {
			out[len(out)-1].lit += b.lit
			continue
		}
		out = append(out, b)
	}
	return out
}

// tokenize splits s into Symbol ('$','(',')'), Number (digit runs), and
// Text (everything else, a run starting with a non-special/non-digit
// character and continuing through any characters except '$').
func tokenize(s string) []token {
	var toks []token
	r := []rune(s)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case c == '$' || c == '(' || c == ')':
			toks = append(toks, token{kind: tokSymbol, text: string(c)})
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(r) && r[j] >= '0' && r[j] <= '9' {
				j++
			}
			toks = append(toks, token{kind: tokNumber, text: string(r[i:j])})
			i = j
		default:
			j := i + 1
			for j < len(r) && r[j] != '$' {
				j++
			}
			toks = append(toks, token{kind: tokText, text: string(r[i:j])})
			i = j
		}
	}
	return toks
}
