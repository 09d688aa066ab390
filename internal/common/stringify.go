package common

import "strings"

// QuoteJSString renders s as a double-quoted JS string literal, escaping
// the characters that would otherwise break out of it. Used whenever a
// lowering pass needs to emit a literal string operand (template chunks,
// static attribute values) rather than splice in raw source text.
func QuoteJSString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ParenthesizeIfNeeded wraps expr in parens when splicing it as the
// left-hand side of a member/call expression would otherwise change its
// meaning -- conservative: anything that isn't already a bare
// identifier, member chain, call, or parenthesized group gets wrapped.
// Used when a lowering pass needs to write `(expr)()` or `(expr).prop`.
func ParenthesizeIfNeeded(expr string) string {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return trimmed
	}
	if isBareReferenceChain(trimmed) {
		return trimmed
	}
	return "(" + trimmed + ")"
}

// isBareReferenceChain reports whether expr is already safe to append a
// `.prop` or `(...)` suffix to without parenthesizing: an identifier
// optionally followed by `.ident`, `[expr]`, or `(args)` segments.
func isBareReferenceChain(expr string) bool {
	i := 0
	n := len(expr)
	if i >= n || !isIdentStart(expr[i]) {
		return false
	}
	for i < n && isIdentPart(expr[i]) {
		i++
	}
	for i < n {
		switch expr[i] {
		case '.':
			i++
			if i >= n || !isIdentStart(expr[i]) {
				return false
			}
			for i < n && isIdentPart(expr[i]) {
				i++
			}
		case '[':
			depth := 1
			i++
			for i < n && depth > 0 {
				switch expr[i] {
				case '[':
					depth++
				case ']':
					depth--
				}
				i++
			}
			if depth != 0 {
				return false
			}
		case '(':
			depth := 1
			i++
			for i < n && depth > 0 {
				switch expr[i] {
				case '(':
					depth++
				case ')':
					depth--
				}
				i++
			}
			if depth != 0 {
				return false
			}
		default:
			return i == n
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// JoinNonEmpty joins the non-empty strings in parts with sep, the way
// attribute and prop-key lowering join an optional namespace to its key
// ("on:click", or just "click") without leaving a stray separator.
func JoinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
