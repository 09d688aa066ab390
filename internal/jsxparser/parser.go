// Package jsxparser locates and parses JSX roots embedded in a larger
// JS/TS source file. It is the one package allowed to understand JSX
// grammar; every other package downstream walks jsxast.Node trees.
//
// Grounded on the teacher's internal/ts_parser: a real production
// compiler leans on a real external grammar (there acorn/typescript via
// NAPI, here nothing comparable exists in the pack's Go ecosystem), so
// the teacher's shape -- a settable function-valued singleton, defaulted
// at package init -- is kept verbatim and pointed at a built-in scanner
// instead of a vendored parser. A host embedding this compiler alongside
// a real JS parser can call SetParser to delegate root-finding to it and
// keep only the JSX-subtree grammar (ParseJSXFragment) from this package.
package jsxparser

import (
	"github.com/jsxgen/compiler/internal/jsxast"
	"github.com/jsxgen/compiler/internal/loc"
)

// RootParser locates every top-level JSX expression in source and
// parses each into a jsxast.Root.
type RootParser func(source string) ([]jsxast.Root, []error)

type parserSingleton struct {
	parse RootParser
}

var instance = &parserSingleton{parse: scanRoots}

// Get returns the process-wide parser singleton, defaulting to the
// built-in scanner.
func Get() *parserSingleton {
	return instance
}

// SetParser overrides the root-finding strategy, e.g. to delegate to a
// real JS/TS grammar embedded alongside this compiler.
func (s *parserSingleton) SetParser(p RootParser) {
	if p != nil {
		s.parse = p
	}
}

// Parse runs the current singleton's parser over source.
func Parse(source string) ([]jsxast.Root, []error) {
	return instance.parse(source)
}

// ParseJSXFragment parses a single JSX element or fragment starting at
// byte offset pos in source (src[pos] must be '<'). Exposed so a host
// supplying its own RootParser only needs to find candidate offsets
// and can still reuse this package's JSX-subtree grammar.
func ParseJSXFragment(source string, pos int) (*jsxast.Node, int, error) {
	return parseElementOrFragment(source, pos)
}

// scanRoots is the default RootParser: a single pass over source that
// tracks "expression expected" state (see lex.go) and attempts a JSX
// parse every time a '<' appears in a position where a JSX element or
// a less-than comparison are both grammatically possible.
func scanRoots(source string) ([]jsxast.Root, []error) {
	var roots []jsxast.Root
	var errs []error
	exprExpected := true
	i := 0
	for i < len(source) {
		c := source[i]
		if c == '<' && exprExpected && i+1 < len(source) && (isIdentStartByte(source[i+1]) || source[i+1] == '>') {
			node, newPos, err := parseElementOrFragment(source, i)
			if err == nil {
				roots = append(roots, jsxast.Root{
					Node:       node,
					SourceSpan: loc.Range{Loc: loc.Loc{Start: i}, Len: newPos - i},
				})
				i = newPos
				exprExpected = false
				continue
			}
			// Candidate didn't parse as JSX (most likely a genuine
			// less-than comparison); report it only if the shape was
			// unambiguous enough to be worth a diagnostic, then resync
			// by treating '<' as an ordinary operator.
			if looksLikeIntendedJSX(source, i) {
				errs = append(errs, toRangeError(err, source, i))
			}
		}
		i, exprExpected = step(source, i, exprExpected)
	}
	return roots, errs
}

// looksLikeIntendedJSX filters scan failures down to the ones worth
// surfacing as diagnostics: a '<' immediately followed by an uppercase
// letter (component-looking) is essentially never a real comparison in
// practice, whereas lowercase-letter or '>' candidates are ambiguous
// enough that silently falling back avoids a flood of false positives
// on ordinary arithmetic.
func looksLikeIntendedJSX(source string, pos int) bool {
	if pos+1 >= len(source) {
		return false
	}
	c := source[pos+1]
	return c >= 'A' && c <= 'Z'
}

func toRangeError(err error, source string, pos int) error {
	if pe, ok := err.(*parseError); ok {
		return &loc.ErrorWithRange{
			Code:  loc.ErrParse,
			Text:  pe.msg,
			Range: loc.Range{Loc: loc.Loc{Start: pe.pos}, Len: 1},
		}
	}
	return &loc.ErrorWithRange{
		Code:  loc.ErrParse,
		Text:  err.Error(),
		Range: loc.Range{Loc: loc.Loc{Start: pos}, Len: 1},
	}
}
