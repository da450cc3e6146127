package preset

import "strings"

// Inst is a parsed preset instantiation reference, e.g. `_Foo::Bar<a,b>`
// (spec §4.8's PresetInst): a namespace with optional `::sub` segments
// and optional comma-separated `<args>`.
type Inst struct {
	Name string
	Args []string
}

// ParseInst parses s into an Inst, grounded exactly on the test table in
// original `compiler-core/src/lang/preset/parse.rs`: a non-empty
// namespace, optional `::sub` segments (letters/digits/underscore), and
// optional `<args>` with `\`-escaped `\\`, `\,`, `\>`. Trailing colons,
// empty `<>`, unmatched `<`/`>`, escapes inside the namespace, or
// trailing junk after the closing `>` all reject the parse.
func ParseInst(s string) (Inst, bool) {
	if s == "" {
		return Inst{}, false
	}
	runes := []rune(s)
	i := 0

	name, ok := scanIdent(runes, &i)
	if !ok {
		return Inst{}, false
	}
	for i < len(runes) && runes[i] == ':' {
		if i+1 >= len(runes) || runes[i+1] != ':' {
			return Inst{}, false
		}
		i += 2
		sub, ok := scanIdent(runes, &i)
		if !ok {
			return Inst{}, false
		}
		name += "::" + sub
	}

	var args []string
	if i < len(runes) && runes[i] == '<' {
		i++
		var ok bool
		args, ok = scanArgs(runes, &i)
		if !ok {
			return Inst{}, false
		}
	}

	if i != len(runes) {
		return Inst{}, false
	}
	return Inst{Name: name, Args: args}, true
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func scanIdent(runes []rune, i *int) (string, bool) {
	start := *i
	for *i < len(runes) && isIdentRune(runes[*i]) {
		*i++
	}
	if *i == start {
		return "", false
	}
	return string(runes[start:*i]), true
}

// scanArgs parses the comma-separated argument list starting just past
// the opening `<`, consuming through (and past) the closing `>`.
func scanArgs(runes []rune, i *int) ([]string, bool) {
	if *i < len(runes) && runes[*i] == '>' {
		return nil, false // "<>" is explicitly disallowed
	}
	var args []string
	var cur strings.Builder
	for {
		if *i >= len(runes) {
			return nil, false // unterminated "<..."
		}
		c := runes[*i]
		switch c {
		case '\\':
			if *i+1 < len(runes) {
				switch runes[*i+1] {
				case '\\', ',', '>':
					cur.WriteRune(runes[*i+1])
					*i += 2
					continue
				}
			}
			cur.WriteRune('\\')
			*i++
		case ',':
			args = append(args, cur.String())
			cur.Reset()
			*i++
		case '>':
			args = append(args, cur.String())
			*i++
			return args, true
		default:
			cur.WriteRune(c)
			*i++
		}
	}
}
