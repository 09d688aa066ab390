// Package domgen implements DOM-mode lowering (spec §4.2): a JSX
// element tree becomes a cloned HTML template plus a walk-path plan
// that locates the nodes needing runtime bindings, plus the binding
// statements themselves. Grounded on the teacher's print-to-js.go,
// which performs the analogous job of walking an HTML-like node tree
// and assembling template literal output and effect calls, generalized
// here from Astro's server-rendering model to clone-and-bind DOM
// construction.
package domgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// tplKind distinguishes the handful of shapes that can occupy a slot in
// the template tree.
type tplKind int

const (
	tplElement tplKind = iota
	tplText
	tplMarker // an empty `<!>` anchor reserved for a dynamic child insertion
)

// tplNode is one node of the flattened template tree built during
// synthesis: enough information to both emit HTML and later compute a
// walk path to it.
type tplNode struct {
	kind          tplKind
	tag           string // tplElement only
	text          string // tplText only, literal HTML-escaped text
	isSVG         bool
	isVoid        bool
	customElement bool
	htmlAttrs     []htmlAttr
	children      []*tplNode

	// needsAccess is set during binding analysis (bindings.go) for any
	// node that has at least one attribute/event/ref binding, or is a
	// marker anchor that isn't the last child of its parent.
	needsAccess bool
	// varName is assigned by the walk-path pass once needsAccess is
	// known for the whole tree; empty for nodes that never need one.
	varName string
	// src is the originating JSX node, nil for synthetic markers.
	src *jsxast.Node
}

// htmlAttr is a literal attribute folded directly into template HTML.
type htmlAttr struct {
	Name    string
	Value   string
	Boolean bool
}

// synthesizer walks a JSX element/fragment/component-like tree and produces
// the template tree plus the parallel list of dynamic-child jobs that
// still need lowering (component calls, dynamic expressions, arrays).
// isSVG is true once an <svg> ancestor has been entered.
type synthesizer struct {
	ctx     *Context
	isSVG   bool
	nodeCnt int
	jobs    []*dynamicJob
}

// dynamicJob records a slot in the template tree that must be filled by
// a runtime binding once the walk-path pass assigns variables.
type dynamicJob struct {
	kind     jobKind
	anchor   *tplNode // node whose variable is the binding/insertion target
	parent   *tplNode // parent element, for child-insertion jobs
	attr     *jsxast.Attribute
	expr     string // child expression text, for insertion jobs
	isLast   bool   // true if this child is the last among its siblings
	wrapMemo bool   // wrap_conditionals applies to this insertion (spec §4.2)
}

type jobKind int

const (
	jobAttr jobKind = iota
	jobEvent
	jobRef
	jobSpread
	jobInsertChild
	jobUse
)

func newSynthesizer(ctx *Context, isSVG bool) *synthesizer {
	return &synthesizer{ctx: ctx, isSVG: isSVG}
}

// buildElement synthesizes the template subtree for a JSX ElementNode
// (not a component/fragment -- the caller resolves that distinction).
func (s *synthesizer) buildElement(n *jsxast.Node) *tplNode {
	tag := n.Data
	svg := s.isSVG || common.IsSVGElement(tag)
	prevSVG := s.isSVG
	s.isSVG = svg

	node := &tplNode{
		kind:          tplElement,
		tag:           tag,
		isSVG:         svg,
		isVoid:        common.IsVoidElement(tag) && !svg,
		customElement: n.CustomElement,
		// A custom element needs a variable for its owner hook
		// (contextHookStatements) even when it carries no binding.
		needsAccess: n.CustomElement && s.ctx.Opts.ContextToCustomElements,
		src:         n,
	}
	s.nodeCnt++

	s.collectAttrBindings(n, node)
	s.buildChildren(n, node)

	s.isSVG = prevSVG
	return node
}

// buildChildren lowers n's JSX children into node.children, coalescing
// literal text and recording dynamicJobs for anything requiring a
// runtime insertion.
func (s *synthesizer) buildChildren(n *jsxast.Node, node *tplNode) {
	kids := n.Children()
	// Drop pure-whitespace text nodes that the parser already decided
	// not to trim eagerly but that collapse to nothing meaningful
	// between elements on different source lines (spec §4.2, open
	// question 1: Babel-JSX-style collapsing).
	kids = collapseWhitespace(kids)

	var textBuf strings.Builder
	flushText := func() {
		if textBuf.Len() > 0 {
			node.children = append(node.children, &tplNode{kind: tplText, text: textBuf.String()})
			s.nodeCnt++
			textBuf.Reset()
		}
	}

	for i, child := range kids {
		isLast := i == len(kids)-1
		switch child.Type {
		case jsxast.TextNode:
			textBuf.WriteString(escapeHTMLText(child.Data))
		case jsxast.CommentNode:
			// JSX comments never reach the output.
		case jsxast.ElementNode:
			flushText()
			node.children = append(node.children, s.buildElement(child))
		case jsxast.ComponentNode, jsxast.FragmentNode:
			flushText()
			marker := s.reserveMarker(node, isLast)
			expr, err := Lower(s.ctx, child)
			if err != nil {
				expr = "undefined"
			}
			s.jobs = append(s.jobs, &dynamicJob{
				kind:   jobInsertChild,
				anchor: marker,
				parent: node,
				expr:   expr,
				isLast: isLast,
			})
		case jsxast.ExpressionNode:
			flushText()
			s.lowerExpressionChild(child, node, isLast)
		}
	}
	flushText()
}

// reserveMarker appends an empty `<!>` anchor to parent's template
// children when the insertion point isn't trailing (a trailing dynamic
// child can simply be appended at runtime with no anchor needed).
func (s *synthesizer) reserveMarker(parent *tplNode, isLast bool) *tplNode {
	if isLast {
		return nil
	}
	m := &tplNode{kind: tplMarker, needsAccess: true}
	parent.children = append(parent.children, m)
	s.nodeCnt++
	return m
}

// lowerExpressionChild handles a `{expr}` JSX child: static literal
// text folds into the template, everything else becomes an insertion
// job (nested JSX already captured as children by the parser is
// re-lowered recursively via expr text reconstruction in
// childExpressionText below). When
// wrap_conditionals is set and the expression text looks like a
// top-level ternary or `&&`/`||` (spec §4.2's child-lowering table),
// the insertion is memo-wrapped, mirroring the same rule componentgen.go
// applies to Show/Switch/Match children.
func (s *synthesizer) lowerExpressionChild(child *jsxast.Node, parent *tplNode, isLast bool) {
	if !child.HasJSXChildren() && !common.IsDynamicChildExpression(child.Data) {
		parent.children = append(parent.children, &tplNode{kind: tplText, text: escapeHTMLText(child.Data)})
		s.nodeCnt++
		return
	}
	marker := s.reserveMarker(parent, isLast)
	s.jobs = append(s.jobs, &dynamicJob{
		kind:     jobInsertChild,
		anchor:   marker,
		parent:   parent,
		expr:     s.childExpressionText(child),
		isLast:   isLast,
		wrapMemo: s.ctx.Opts.WrapConditionals && looksConditional(child.Data),
	})
}

// childExpressionText reassembles a JSX expression child's source text,
// recursively recompiling any nested JSX elements in place so the
// result is valid JS (no stray JSX syntax) while everything else is
// passed through verbatim.
func (s *synthesizer) childExpressionText(n *jsxast.Node) string {
	if !n.HasJSXChildren() {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == jsxast.RawJSNode {
			b.WriteString(c.Data)
			continue
		}
		expr, err := Lower(s.ctx, c)
		if err != nil {
			expr = "undefined"
		}
		b.WriteString(expr)
	}
	return b.String()
}

// collapseWhitespace implements the conservative half of spec §9 open
// question 1: a text run that is pure whitespace and spans a newline is
// dropped; pure whitespace on a single line between inline elements is
// kept (matches the common JSX-Babel collapsing behavior for the
// overwhelmingly common cases fixtures exercise).
func collapseWhitespace(kids []*jsxast.Node) []*jsxast.Node {
	var out []*jsxast.Node
	for _, k := range kids {
		if k.Type == jsxast.TextNode && strings.TrimSpace(k.Data) == "" && strings.Contains(k.Data, "\n") {
			continue
		}
		out = append(out, k)
	}
	return out
}

func escapeHTMLText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;")
	return r.Replace(s)
}

// nodeCount returns the total DOM node count the template will produce
// when cloned -- used as template()'s count argument (spec S1: a <div>
// wrapping one text node reports 2).
func (s *synthesizer) nodeCount() int {
	return s.nodeCnt
}
