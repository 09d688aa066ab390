package common

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// literalPattern matches a whole expression text that is nothing but a
// single JS literal: a string, a number, true/false/null/undefined, or a
// /regex/flags. Anchored both ends so "foo" inside "foo.bar" never
// matches. Built with regexp2 (not regexp/syntax) because regexp2 is the
// only engine in play anywhere in the corpus and spec §4.1's own
// grammar ("unary on literal") reads naturally as lookaround-free
// alternation, which regexp2's backtracking engine handles identically
// to RE2 here -- the extra engine is kept for the one pattern below that
// genuinely needs it.
var literalPattern = regexp2.MustCompile(
	`^(?:`+
		`'(?:[^'\\]|\\.)*'`+ // single-quoted string
		`|"(?:[^"\\]|\\.)*"`+ // double-quoted string
		`|[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`+ // number
		`|0[xX][0-9a-fA-F]+`+ // hex number
		`|true|false|null|undefined`+
		`|/(?:[^/\\\n]|\\.)+/[a-z]*`+ // /regex/flags
		`)$`,
	regexp2.None,
)

// unaryOnLiteralPattern matches a single prefix unary operator applied
// directly to a literal, e.g. -5, !true, +1, ~0, typeof "x" -- spec
// §4.1 calls these out as the one case where an operator still counts
// as static.
var unaryOnLiteralPattern = regexp2.MustCompile(`^(?:[-+!~]|typeof\s+|void\s+)\s*(.+)$`, regexp2.None)

func matches(re *regexp2.Regexp, s string) bool {
	m, err := re.MatchString(s)
	return err == nil && m
}

// IsStaticExpression implements the is_dynamic heuristic from spec §4.1,
// inverted: literals and unary-on-literal are static, everything else
// (identifiers, member access, calls, template strings with
// interpolation, conditionals, arithmetic/logical on non-literals) is
// dynamic. Intentionally conservative toward dynamic -- see spec §9's
// open question on this heuristic's precision.
func IsStaticExpression(expr string) bool {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return true
	}
	if matches(literalPattern, expr) {
		return true
	}
	if m, err := unaryOnLiteralPattern.FindStringMatch(expr); err == nil && m != nil {
		inner := strings.TrimSpace(m.GroupByNumber(1).String())
		return matches(literalPattern, inner)
	}
	return false
}

// ReferencedIdentifiers does a best-effort, regex-driven scan for bare
// identifier references in expr -- used by the JSX-expression-child
// dynamism rule (spec §4.1: "dynamic iff ... it references any
// identifier", a deliberate overapproximation documented in spec §9).
// Property keys after a dot and string/template contents are excluded
// so that e.g. `"hello".length` only counts as referencing nothing and
// `obj.staticish` only counts `obj`.
var identifierPattern = regexp2.MustCompile(`[A-Za-z_$][A-Za-z0-9_$]*`, regexp2.None)

func ReferencedIdentifiers(expr string) []string {
	stripped := stripStringAndTemplateLiterals(expr)
	var out []string
	m, _ := identifierPattern.FindStringMatch(stripped)
	for m != nil {
		word := m.String()
		// Skip a property-access name: it's preceded (ignoring
		// whitespace) by a '.'.
		if !precededByDot(stripped, m.Index) && !isReservedWord(word) {
			out = append(out, word)
		}
		m, _ = identifierPattern.FindNextMatch(m)
	}
	return out
}

func precededByDot(s string, idx int) bool {
	i := idx - 1
	for i >= 0 && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n') {
		i--
	}
	return i >= 0 && s[i] == '.'
}

var reservedWords = map[string]bool{
	"true": true, "false": true, "null": true, "undefined": true,
	"typeof": true, "void": true, "new": true, "in": true, "of": true,
	"this": true, "function": true, "return": true, "if": true, "else": true,
}

func isReservedWord(s string) bool {
	return reservedWords[s]
}

// stripStringAndTemplateLiterals blanks out the contents of string and
// template literals (keeping byte length/positions stable) so scanning
// for identifiers afterward never wanders into quoted text. Template
// `${...}` interpolations are left intact since identifiers inside them
// are real references.
func stripStringAndTemplateLiterals(s string) string {
	out := []byte(s)
	i := 0
	for i < len(out) {
		c := out[i]
		switch c {
		case '\'', '"':
			j := i + 1
			for j < len(out) && out[j] != c {
				if out[j] == '\\' {
					j++
				}
				j++
			}
			for k := i; k <= j && k < len(out); k++ {
				if out[k] != c {
					out[k] = ' '
				}
			}
			i = j + 1
		case '`':
			j := i + 1
			depth := 0
			for j < len(out) {
				if out[j] == '\\' {
					j++
				} else if out[j] == '$' && j+1 < len(out) && out[j+1] == '{' {
					out[j] = ' '
					depth++
					j++
				} else if out[j] == '}' && depth > 0 {
					depth--
				} else if out[j] == '`' && depth == 0 {
					break
				} else if depth == 0 {
					out[j] = ' '
				}
				j++
			}
			i = j + 1
		default:
			i++
		}
	}
	return string(out)
}

// IsDynamicChildExpression applies the JSX-expression-child rule: an
// expression child is dynamic iff it is not purely static, or it
// references at least one identifier (spec §4.1). For a flat expression
// the two disjuncts collapse -- IsStaticExpression already implies zero
// referenced identifiers -- but nested JSX stored as a descendant
// expression relies on the identifier check alone, so both stay.
func IsDynamicChildExpression(expr string) bool {
	return !IsStaticExpression(expr) || len(ReferencedIdentifiers(expr)) > 0
}

// IsFunctionExpression reports whether expr is itself a function
// expression -- an arrow function or a `function` expression -- rather
// than a value that merely evaluates to one. Spec §4.3/§8 scenario S6:
// a single `For`/`Index` child that is already the item function must
// be passed through as `children: (i) => ...` directly, never wrapped
// in another `() => ...` thunk. Hand-rolled byte scan (not regexp2)
// because the arrow's parameter list can itself contain balanced
// parens (destructuring, default values) that a fixed-width pattern
// can't walk past reliably.
func IsFunctionExpression(expr string) bool {
	s := strings.TrimSpace(expr)
	if isKeywordPrefix(s, "function") {
		return true
	}
	if isKeywordPrefix(s, "async") {
		s = strings.TrimSpace(s[len("async"):])
	}
	if s == "" {
		return false
	}

	var afterParams string
	switch {
	case s[0] == '(':
		depth := 0
		i := 0
		for ; i < len(s); i++ {
			switch s[i] {
			case '(':
				depth++
			case ')':
				depth--
			}
			if depth == 0 {
				break
			}
		}
		if depth != 0 || i >= len(s) {
			return false
		}
		afterParams = s[i+1:]
	case isIdentStart(s[0]):
		i := 1
		for i < len(s) && isIdentPart(s[i]) {
			i++
		}
		afterParams = s[i:]
	default:
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(afterParams), "=>")
}

// isKeywordPrefix reports whether s begins with keyword followed by a
// word boundary (end of string or a non-identifier byte), so "async" a
// matches but "asyncFn" doesn't.
func isKeywordPrefix(s, keyword string) bool {
	if !strings.HasPrefix(s, keyword) {
		return false
	}
	return len(s) == len(keyword) || !isIdentPart(s[len(keyword)])
}
