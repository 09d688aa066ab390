package jsxparser

// lex.go is the byte-level scanner shared by the top-level root finder
// and the in-JSX expression-container parser. It does not build tokens;
// it only needs to skip strings/templates/comments/regexes correctly
// and track whether the scanner sits in an "expression expected"
// position, which is what resolves the classic `<` ambiguity (less-than
// operator vs JSX open tag) and the `/` ambiguity (division vs regex
// literal). Grounded on the teacher's internal/js_scanner, which solves
// the same class of problem (finding import/export boundaries in raw
// JS text) with a hand-rolled byte scanner rather than a full parser.

// exprKeywords lists the keywords after which an expression is
// expected next, so `return <div/>`, `typeof x`, `case <Foo/>:` resolve
// `<` as JSX rather than less-than.
var exprKeywords = map[string]bool{
	"return": true, "typeof": true, "instanceof": true, "in": true,
	"of": true, "new": true, "delete": true, "void": true, "yield": true,
	"throw": true, "else": true, "case": true, "do": true, "await": true,
}

func isIdentStartByte(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentPartByte(c byte) bool {
	return isIdentStartByte(c) || (c >= '0' && c <= '9')
}

// step consumes exactly one token (or run of whitespace) starting at i
// and returns the position just past it along with the updated
// "expression expected" state for whatever comes next.
func step(src string, i int, exprExpected bool) (next int, nextExprExpected bool) {
	c := src[i]
	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		return i + 1, exprExpected
	case c == '/' && i+1 < len(src) && src[i+1] == '/':
		j := i + 2
		for j < len(src) && src[j] != '\n' {
			j++
		}
		return j, exprExpected
	case c == '/' && i+1 < len(src) && src[i+1] == '*':
		j := i + 2
		for j+1 < len(src) && !(src[j] == '*' && src[j+1] == '/') {
			j++
		}
		if j+1 < len(src) {
			j += 2
		} else {
			j = len(src)
		}
		return j, exprExpected
	case c == '\'' || c == '"':
		return skipQuoted(src, i, c), false
	case c == '`':
		return skipTemplate(src, i), false
	case c == '/' && exprExpected:
		return skipRegex(src, i), false
	case isIdentStartByte(c):
		j := i + 1
		for j < len(src) && isIdentPartByte(src[j]) {
			j++
		}
		return j, exprKeywords[src[i:j]]
	case c >= '0' && c <= '9':
		j := i + 1
		for j < len(src) && (isIdentPartByte(src[j]) || src[j] == '.') {
			j++
		}
		return j, false
	case c == ')' || c == ']':
		return i + 1, false
	default:
		return i + 1, true
	}
}

// skipQuoted advances past a '...' or "..." string starting at i
// (src[i] == quote), honoring backslash escapes.
func skipQuoted(src string, i int, quote byte) int {
	j := i + 1
	for j < len(src) {
		if src[j] == '\\' {
			j += 2
			continue
		}
		if src[j] == quote {
			return j + 1
		}
		j++
	}
	return len(src)
}

// skipTemplate advances past a `...` template literal starting at i,
// recursing through ${...} interpolations via step so nested
// strings/templates/braces inside them don't break out early.
func skipTemplate(src string, i int) int {
	j := i + 1
	for j < len(src) {
		switch {
		case src[j] == '\\':
			j += 2
		case src[j] == '`':
			return j + 1
		case src[j] == '$' && j+1 < len(src) && src[j+1] == '{':
			j += 2
			depth := 1
			exprExpected := true
			for j < len(src) && depth > 0 {
				if src[j] == '{' {
					depth++
					j++
					continue
				}
				if src[j] == '}' {
					depth--
					j++
					continue
				}
				j, exprExpected = step(src, j, exprExpected)
			}
		default:
			j++
		}
	}
	return len(src)
}

// skipRegex advances past a /pattern/flags literal starting at i,
// honoring character classes (where an unescaped '/' doesn't end the
// literal) and backslash escapes.
func skipRegex(src string, i int) int {
	j := i + 1
	inClass := false
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				j++
				for j < len(src) && isIdentPartByte(src[j]) {
					j++
				}
				return j
			}
		case '\n':
			return j
		}
		j++
	}
	return len(src)
}
