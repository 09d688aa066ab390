// Package jsxast is the node-variant façade the lowering passes walk. It
// does not implement a full ECMAScript grammar; that's the external
// parser's job (see internal/jsxparser, which wraps an injectable parser
// function the same way the teacher's internal/ts_parser wraps a
// vendored TypeScript parser behind a settable singleton). jsxast only
// needs to represent the one shape spec.md actually rewrites: a JSX
// tree, plus enough of its surrounding expression text (kept as opaque
// source spans) to splice a replacement back in.
package jsxast

import "github.com/jsxgen/compiler/internal/loc"

type NodeType int

const (
	// ElementNode is a JSX tag whose name begins lowercase and contains
	// no dot -- a DOM element or a custom element (Data contains a
	// hyphen) per spec §4.3.
	ElementNode NodeType = iota
	// ComponentNode is a JSX tag treated as a component call: Data holds
	// the tag/member-expression text (e.g. "Foo" or "Ctx.Provider").
	ComponentNode
	// FragmentNode is a <>...</> shorthand.
	FragmentNode
	// TextNode is literal JSX text between tags.
	TextNode
	// ExpressionNode is a `{expr}` child or attribute value; Data holds
	// the raw expression source, unparsed beyond classification.
	ExpressionNode
	// CommentNode is a JSX comment written as {/* ... */}.
	CommentNode
	// RawJSNode appears only as a child of an ExpressionNode: a raw JS
	// source span sitting between nested JSX elements inside that
	// expression (e.g. the "cond && " in `{cond && <Child/>}`). Data
	// holds the literal source text, spliced back in verbatim once any
	// sibling JSX children have been lowered.
	RawJSNode
)

func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case ComponentNode:
		return "Component"
	case FragmentNode:
		return "Fragment"
	case TextNode:
		return "Text"
	case ExpressionNode:
		return "Expression"
	case CommentNode:
		return "Comment"
	case RawJSNode:
		return "RawJS"
	default:
		return "Unknown"
	}
}

// AttributeType distinguishes how an attribute's value was written in
// source, driving the lowering table in spec §4.2.
type AttributeType int

const (
	QuotedAttribute AttributeType = iota
	ExpressionAttribute
	BooleanShorthandAttribute
	SpreadAttribute
)

// Attribute is one JSX attribute or a `{...expr}` spread. Namespace holds
// the prefix before the first `:` (on, use, prop, attr, style, class) or
// "" for a plain/aliased attribute; Modifiers holds the `|capture` style
// suffixes on `on:` attributes.
type Attribute struct {
	Namespace string
	Key       string
	Modifiers []string
	Type      AttributeType
	Val       string // raw expression text, or the literal string value
	KeyLoc    loc.Loc
	ValLoc    loc.Loc
}

// Node is one JSX tree node. Children form a doubly linked sibling list,
// mirroring the teacher's astro.Node shape so the walk/lowering style
// (walk via FirstChild/NextSibling) transfers directly.
type Node struct {
	Type NodeType
	// Data holds the tag name (Element/Component/Fragment == ""), the
	// text content (TextNode/CommentNode), or the raw expression source
	// (ExpressionNode).
	Data string
	Attr []Attribute
	Loc  loc.Range

	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	// CustomElement is true when Type == ElementNode and Data contains a
	// hyphen (spec §4.3).
	CustomElement bool
}

func (n *Node) AppendChild(c *Node) {
	c.Parent = n
	if n.LastChild == nil {
		n.FirstChild = c
	} else {
		n.LastChild.NextSibling = c
		c.PrevSibling = n.LastChild
	}
	n.LastChild = c
}

// Children returns the node's children as a slice, for callers that
// prefer range-over-slice to manual FirstChild/NextSibling walks.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

func (n *Node) IsComponentLike() bool {
	return n.Type == ComponentNode || n.Type == FragmentNode
}

// HasJSXChildren reports whether an ExpressionNode captured nested JSX
// (as opposed to being a single opaque expression), i.e. it has at
// least one child that isn't a RawJSNode.
func (n *Node) HasJSXChildren() bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != RawJSNode {
			return true
		}
	}
	return false
}

// GetAttr returns the first attribute named key, or nil.
func (n *Node) GetAttr(key string) *Attribute {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			return &n.Attr[i]
		}
	}
	return nil
}

func (n *Node) HasAttr(key string) bool {
	return n.GetAttr(key) != nil
}

// RemoveAttr drops the first attribute named key.
func (n *Node) RemoveAttr(key string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// Root is the façade's output: one parsed JSX tree plus the source spans
// immediately before and after it, so the emitter can splice the
// lowering's result expression back into the enclosing JS untouched.
type Root struct {
	Node       *Node
	SourceSpan loc.Range // the full `<...>...</...>` or `<.../>` text
}
