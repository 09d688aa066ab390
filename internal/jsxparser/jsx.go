package jsxparser

import (
	"fmt"
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
	"github.com/jsxgen/compiler/internal/loc"
)

// parseError is a plain error carrying a position, converted to a
// *loc.ErrorWithRange by the caller that has the diagnostic code to
// attach (scan-time vs. element-time errors use different codes).
type parseError struct {
	pos int
	msg string
}

func (e *parseError) Error() string { return e.msg }

func errAt(pos int, format string, args ...interface{}) error {
	return &parseError{pos: pos, msg: fmt.Sprintf(format, args...)}
}

// parseElementOrFragment parses a JSX element or fragment starting at
// src[pos] == '<'. Returns the node and the position just past its
// closing tag (or self-closing slash).
func parseElementOrFragment(src string, pos int) (*jsxast.Node, int, error) {
	start := pos
	if pos+1 >= len(src) {
		return nil, pos, errAt(pos, "unexpected end of input after '<'")
	}
	pos++ // consume '<'

	if src[pos] == '>' {
		return parseFragment(src, start, pos+1)
	}

	nameStart := pos
	for pos < len(src) && isTagNameByte(src[pos]) {
		pos++
	}
	if pos == nameStart {
		return nil, start, errAt(start, "expected tag name after '<'")
	}
	tagName := src[nameStart:pos]

	node := &jsxast.Node{Data: tagName}
	switch {
	case common.IsComponentTagName(tagName):
		node.Type = jsxast.ComponentNode
	case common.IsCustomElementName(tagName) && !common.IsSVGElement(tagName) && !common.IsKnownHTMLElement(tagName):
		// A dashed, all-lowercase name is only a custom element if it
		// isn't one of the SVG tags (font-face, color-profile,
		// missing-glyph) or an HTML element atom.Lookup recognizes.
		node.Type = jsxast.ElementNode
		node.CustomElement = true
	default:
		node.Type = jsxast.ElementNode
	}

	attrs, newPos, err := parseAttributes(src, pos)
	if err != nil {
		return nil, pos, err
	}
	node.Attr = attrs
	pos = newPos

	pos = skipJSXSpace(src, pos)
	if pos < len(src) && src[pos] == '/' && pos+1 < len(src) && src[pos+1] == '>' {
		node.Loc = loc.Range{Loc: loc.Loc{Start: start}, Len: pos + 2 - start}
		return node, pos + 2, nil
	}
	if pos >= len(src) || src[pos] != '>' {
		return nil, pos, errAt(pos, "expected '>' or '/>' to close <%s", tagName)
	}
	pos++ // consume '>'

	pos, err = parseChildren(src, pos, node)
	if err != nil {
		return nil, pos, err
	}

	closeEnd, err := expectClosingTag(src, pos, tagName)
	if err != nil {
		return nil, pos, err
	}
	node.Loc = loc.Range{Loc: loc.Loc{Start: start}, Len: closeEnd - start}
	return node, closeEnd, nil
}

func parseFragment(src string, start, pos int) (*jsxast.Node, int, error) {
	node := &jsxast.Node{Type: jsxast.FragmentNode}
	pos, err := parseChildren(src, pos, node)
	if err != nil {
		return nil, pos, err
	}
	if !strings.HasPrefix(src[pos:], "</>") {
		return nil, pos, errAt(pos, "expected closing '</>' for fragment")
	}
	pos += 3
	node.Loc = loc.Range{Loc: loc.Loc{Start: start}, Len: pos - start}
	return node, pos, nil
}

func expectClosingTag(src string, pos int, tagName string) (int, error) {
	if pos >= len(src) || src[pos] != '<' || pos+1 >= len(src) || src[pos+1] != '/' {
		return pos, errAt(pos, "expected closing tag </%s>", tagName)
	}
	pos += 2
	pos = skipJSXSpace(src, pos)
	nameStart := pos
	for pos < len(src) && isTagNameByte(src[pos]) {
		pos++
	}
	if src[nameStart:pos] != tagName {
		return pos, errAt(pos, "mismatched closing tag: expected </%s>, found </%s>", tagName, src[nameStart:pos])
	}
	pos = skipJSXSpace(src, pos)
	if pos >= len(src) || src[pos] != '>' {
		return pos, errAt(pos, "expected '>' to close </%s>", tagName)
	}
	return pos + 1, nil
}

func isTagNameByte(c byte) bool {
	return isIdentPartByte(c) || c == '-' || c == '.' || c == ':'
}

func skipJSXSpace(src string, pos int) int {
	for pos < len(src) {
		switch src[pos] {
		case ' ', '\t', '\n', '\r':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// parseAttributes parses the attribute list up to (but not consuming)
// the closing '/' or '>' of the opening tag.
func parseAttributes(src string, pos int) ([]jsxast.Attribute, int, error) {
	var attrs []jsxast.Attribute
	for {
		pos = skipJSXSpace(src, pos)
		if pos >= len(src) {
			return nil, pos, errAt(pos, "unterminated opening tag")
		}
		if src[pos] == '/' || src[pos] == '>' {
			return attrs, pos, nil
		}
		if src[pos] == '{' {
			attr, newPos, err := parseSpreadAttribute(src, pos)
			if err != nil {
				return nil, pos, err
			}
			attrs = append(attrs, attr)
			pos = newPos
			continue
		}
		attr, newPos, err := parsePlainAttribute(src, pos)
		if err != nil {
			return nil, pos, err
		}
		attrs = append(attrs, attr)
		pos = newPos
	}
}

func parseSpreadAttribute(src string, pos int) (jsxast.Attribute, int, error) {
	start := pos
	end, err := skipBalancedBraces(src, pos)
	if err != nil {
		return jsxast.Attribute{}, pos, err
	}
	inner := strings.TrimSpace(src[pos+1 : end-1])
	if !strings.HasPrefix(inner, "...") {
		return jsxast.Attribute{}, pos, errAt(pos, "expected spread expression {...expr}")
	}
	return jsxast.Attribute{
		Type:   jsxast.SpreadAttribute,
		Val:    strings.TrimSpace(inner[3:]),
		ValLoc: loc.Loc{Start: start},
	}, end, nil
}

func parsePlainAttribute(src string, pos int) (jsxast.Attribute, int, error) {
	keyStart := pos
	for pos < len(src) && isAttrNameByte(src[pos]) {
		pos++
	}
	if pos == keyStart {
		return jsxast.Attribute{}, pos, errAt(pos, "expected attribute name")
	}
	raw := src[keyStart:pos]
	namespace, key, modifiers := splitAttributeName(raw)

	attr := jsxast.Attribute{
		Namespace: namespace,
		Key:       key,
		Modifiers: modifiers,
		KeyLoc:    loc.Loc{Start: keyStart},
	}

	afterName := pos
	skipPos := skipJSXSpace(src, pos)
	if skipPos < len(src) && src[skipPos] == '=' {
		pos = skipJSXSpace(src, skipPos+1)
		if pos >= len(src) {
			return jsxast.Attribute{}, pos, errAt(pos, "expected attribute value after '='")
		}
		switch src[pos] {
		case '"', '\'':
			quote := src[pos]
			end := skipQuoted(src, pos, quote)
			attr.Type = jsxast.QuotedAttribute
			attr.Val = src[pos+1 : end-1]
			attr.ValLoc = loc.Loc{Start: pos}
			return attr, end, nil
		case '{':
			end, err := skipBalancedBraces(src, pos)
			if err != nil {
				return jsxast.Attribute{}, pos, err
			}
			attr.Type = jsxast.ExpressionAttribute
			attr.Val = strings.TrimSpace(src[pos+1 : end-1])
			attr.ValLoc = loc.Loc{Start: pos}
			return attr, end, nil
		default:
			return jsxast.Attribute{}, pos, errAt(pos, "expected '\"' or '{' after '=' in attribute %q", key)
		}
	}
	attr.Type = jsxast.BooleanShorthandAttribute
	attr.Val = "true"
	return attr, afterName, nil
}

func isAttrNameByte(c byte) bool {
	return isIdentPartByte(c) || c == '-' || c == ':' || c == '|'
}

// splitAttributeName separates `on:click|capture` into namespace
// "on", key "click", modifiers ["capture"].
func splitAttributeName(raw string) (namespace, key string, modifiers []string) {
	parts := strings.Split(raw, "|")
	head := parts[0]
	modifiers = parts[1:]
	if idx := strings.Index(head, ":"); idx >= 0 {
		return head[:idx], head[idx+1:], modifiers
	}
	return "", head, modifiers
}

// skipBalancedBraces returns the position just past the '}' matching
// the '{' at src[pos], honoring nested strings/templates/comments and
// nested brace depth.
func skipBalancedBraces(src string, pos int) (int, error) {
	if pos >= len(src) || src[pos] != '{' {
		return pos, errAt(pos, "expected '{'")
	}
	j := pos + 1
	depth := 1
	exprExpected := true
	for j < len(src) && depth > 0 {
		switch src[j] {
		case '{':
			depth++
			j++
		case '}':
			depth--
			j++
		default:
			j, exprExpected = step(src, j, exprExpected)
		}
	}
	if depth != 0 {
		return j, errAt(pos, "unterminated '{' starting here")
	}
	return j, nil
}

// parseChildren parses JSX children into parent until it encounters a
// closing tag `</...>` (for an element) or `</>` (for a fragment),
// returning the position of that closing marker without consuming it.
func parseChildren(src string, pos int, parent *jsxast.Node) (int, error) {
	textStart := pos
	flushText := func(end int) {
		if end > textStart {
			text := src[textStart:end]
			if strings.TrimSpace(text) != "" || strings.Contains(text, "\n") {
				parent.AppendChild(&jsxast.Node{
					Type: jsxast.TextNode,
					Data: text,
					Loc:  loc.Range{Loc: loc.Loc{Start: textStart}, Len: end - textStart},
				})
			}
		}
	}
	for pos < len(src) {
		if src[pos] == '<' {
			if pos+1 < len(src) && src[pos+1] == '/' {
				flushText(pos)
				return pos, nil
			}
			flushText(pos)
			child, newPos, err := parseElementOrFragment(src, pos)
			if err != nil {
				return pos, err
			}
			parent.AppendChild(child)
			pos = newPos
			textStart = pos
			continue
		}
		if src[pos] == '{' {
			flushText(pos)
			if strings.HasPrefix(src[pos:], "{/*") {
				child, newPos, err := parseJSXComment(src, pos)
				if err != nil {
					return pos, err
				}
				parent.AppendChild(child)
				pos = newPos
				textStart = pos
				continue
			}
			child, newPos, err := parseExpressionContainer(src, pos)
			if err != nil {
				return pos, err
			}
			parent.AppendChild(child)
			pos = newPos
			textStart = pos
			continue
		}
		pos++
	}
	return pos, errAt(pos, "unterminated JSX children: missing closing tag")
}

func parseJSXComment(src string, pos int) (*jsxast.Node, int, error) {
	start := pos
	end := strings.Index(src[pos:], "*/}")
	if end < 0 {
		return nil, pos, errAt(pos, "unterminated JSX comment")
	}
	end = pos + end + 3
	return &jsxast.Node{
		Type: jsxast.CommentNode,
		Data: strings.TrimSpace(src[pos+3 : end-3]),
		Loc:  loc.Range{Loc: loc.Loc{Start: start}, Len: end - start},
	}, end, nil
}

// parseExpressionContainer parses a `{expr}` child. When expr contains
// one or more nested JSX elements/fragments at an expression-position
// point (e.g. `cond && <Child/>`), those are parsed recursively and
// kept as children so the lowering passes can recompile them; the raw
// JS text around them is kept as sibling RawJSNode children so the
// expression can be reassembled around the lowered JSX. Without nested
// JSX the node has no children and Data alone holds the expression.
func parseExpressionContainer(src string, pos int) (*jsxast.Node, int, error) {
	start := pos
	node := &jsxast.Node{Type: jsxast.ExpressionNode}
	contentStart := pos + 1
	j := contentStart
	depth := 0
	exprExpected := true
	fragStart := contentStart
	flushRaw := func(end int) {
		if end > fragStart {
			node.AppendChild(&jsxast.Node{
				Type: jsxast.RawJSNode,
				Data: src[fragStart:end],
				Loc:  loc.Range{Loc: loc.Loc{Start: fragStart}, Len: end - fragStart},
			})
		}
	}
	for j < len(src) {
		c := src[j]
		if c == '{' {
			depth++
			j++
			exprExpected = true
			continue
		}
		if c == '}' {
			if depth == 0 {
				if len(node.Children()) > 0 {
					flushRaw(j)
				}
				node.Data = src[contentStart:j]
				node.Loc = loc.Range{Loc: loc.Loc{Start: start}, Len: j + 1 - start}
				return node, j + 1, nil
			}
			depth--
			j++
			exprExpected = false
			continue
		}
		if c == '<' && exprExpected && j+1 < len(src) && (isIdentStartByte(src[j+1]) || src[j+1] == '>') {
			flushRaw(j)
			child, newPos, err := parseElementOrFragment(src, j)
			if err == nil {
				node.AppendChild(child)
				j = newPos
				fragStart = j
				exprExpected = false
				continue
			}
			// Not actually JSX (e.g. a real less-than comparison that
			// happens to be followed by an identifier); fall through
			// and let the ordinary scanner consume '<' as a punctuator.
		}
		j, exprExpected = step(src, j, exprExpected)
	}
	return nil, j, errAt(start, "unterminated expression container")
}
