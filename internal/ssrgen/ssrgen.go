// Package ssrgen implements SSR-mode lowering (spec §4.4): a JSX tree
// becomes a `ssr([...chunks], ...dynamics)` call, where chunks are
// precomputed HTML fragment literals and dynamics are expressions
// filling the gaps between them, escaped unless the source used
// innerHTML. Grounded on domgen's chunk-accumulation shape generalized
// from its clone-and-bind strategy to string-building: both passes
// share the same attribute-namespace dispatch and static/dynamic
// classifier from common, but where domgen defers to a walk-path plan
// SSR only ever appends to the current open chunk or closes it to
// splice in a dynamic slot.
package ssrgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// Context carries the state an SSR compilation shares across every JSX
// root, mirroring domgen.Context: per-compilation, passed by reference,
// never global (spec §5).
type Context struct {
	Opts          common.Options
	IDs           *common.IDGen
	HydrationKeys *hydrationCounter
}

func NewContext(opts common.Options, ids *common.IDGen) *Context {
	return &Context{Opts: opts, IDs: ids, HydrationKeys: &hydrationCounter{}}
}

// SetScope installs the per-compilation scope id this context's
// hydration keys should be prefixed with, mirroring domgen.Context.
func (c *Context) SetScope(scope string) {
	c.HydrationKeys.SetScope(scope)
}

// hydrationCounter assigns stable, monotonic data-hk keys, mirroring
// domgen's hydrationCounter: one counter serves every root of a
// compilation, and scope, when set, folds a per-file id ahead of the
// counter so keys from different files stay distinct.
type hydrationCounter struct {
	n     int
	scope string
}

func (h *hydrationCounter) SetScope(scope string) {
	h.scope = scope
}

func (h *hydrationCounter) Next() string {
	h.n++
	if h.scope != "" {
		return h.scope + "-h" + itoa(h.n)
	}
	return "h" + itoa(h.n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// chunker accumulates the alternating chunk/dynamic sequence for one
// ssr(...) call as it walks a JSX subtree.
type chunker struct {
	ctx      *Context
	isSVG    bool
	chunks   []string
	dynamics []string
	cur      strings.Builder
}

func newChunker(ctx *Context, isSVG bool) *chunker {
	return &chunker{ctx: ctx, isSVG: isSVG}
}

// flush closes the chunk being accumulated and starts a new one.
func (c *chunker) flush() {
	c.chunks = append(c.chunks, c.cur.String())
	c.cur.Reset()
}

// addDynamic closes the current chunk and records a dynamic slot.
func (c *chunker) addDynamic(expr string) {
	c.flush()
	c.dynamics = append(c.dynamics, expr)
}

// result assembles the finished call, ensuring chunks and dynamics obey
// the ssr(tuple, ...dynamics) arity (one more chunk than dynamic).
func (c *chunker) result() string {
	c.flush()
	var quoted []string
	for _, chunk := range c.chunks {
		quoted = append(quoted, common.QuoteJSString(chunk))
	}
	parts := append([]string{"[" + strings.Join(quoted, ", ") + "]"}, c.dynamics...)
	return "ssr(" + strings.Join(parts, ", ") + ")"
}

// Lower compiles one JSX node into an SSR-mode JS expression.
func Lower(ctx *Context, n *jsxast.Node) (string, error) {
	switch n.Type {
	case jsxast.ElementNode:
		c := newChunker(ctx, common.IsSVGElement(n.Data))
		writeElement(c, n, true)
		return c.result(), nil
	case jsxast.ComponentNode:
		return lowerComponent(ctx, n)
	case jsxast.FragmentNode:
		return lowerFragment(ctx, n)
	default:
		return n.Data, nil
	}
}

// writeElement appends one element's opening tag, attributes, children,
// and closing tag into c, recursing for nested elements and delegating
// to Lower (a fresh chunker) for component/fragment children so each
// keeps its own ssr(...) call.
func writeElement(c *chunker, n *jsxast.Node, isRoot bool) {
	tag := n.Data
	svg := c.isSVG || common.IsSVGElement(tag)
	prevSVG := c.isSVG
	c.isSVG = svg

	isVoid := common.IsVoidElement(tag) && !svg
	hydratable := c.ctx.Opts.Hydratable && hasAnyBinding(n)

	c.cur.WriteByte('<')
	c.cur.WriteString(tag)

	var spread, innerHTML *jsxast.Attribute
	for i := range n.Attr {
		a := &n.Attr[i]
		switch {
		case a.Type == jsxast.SpreadAttribute:
			spread = a
		case a.Key == "innerHTML":
			innerHTML = a
		case a.Key == "ref" || a.Namespace == "use" || a.Namespace == "on" || isEventName(a.Key):
			// client-only: silently dropped in SSR (spec §4.4/§7).
		default:
			writeAttr(c, a)
		}
	}
	if spread != nil {
		c.flush()
		hasChildren := n.FirstChild != nil
		c.dynamics = append(c.dynamics, "ssrSpread("+spread.Val+", "+boolLit(svg)+", "+boolLit(hasChildren)+")")
	}
	if hydratable {
		c.cur.WriteString(` data-hk="`)
		c.cur.WriteString(c.ctx.HydrationKeys.Next())
		c.cur.WriteByte('"')
	}
	c.cur.WriteByte('>')

	if isVoid {
		c.isSVG = prevSVG
		return
	}

	switch {
	case innerHTML != nil:
		c.flush()
		c.dynamics = append(c.dynamics, innerHTML.Val)
	default:
		writeChildren(c, n)
	}

	c.cur.WriteString("</")
	c.cur.WriteString(tag)
	c.cur.WriteByte('>')
	c.isSVG = prevSVG
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func isEventName(key string) bool {
	return strings.HasPrefix(key, "on") && len(key) > 2 && key[2] >= 'A' && key[2] <= 'Z'
}

// hasAnyBinding reports whether n carries at least one attribute that
// survives into SSR output as a binding site -- SSR only needs a
// data-hk for elements the client will actually re-attach listeners or
// reactive attrs to.
func hasAnyBinding(n *jsxast.Node) bool {
	for i := range n.Attr {
		a := &n.Attr[i]
		if a.Type == jsxast.SpreadAttribute {
			return true
		}
		if a.Namespace == "on" || isEventName(a.Key) {
			return true
		}
		if a.Type == jsxast.ExpressionAttribute && !common.IsStaticExpression(a.Val) {
			return true
		}
	}
	return false
}

// writeAttr classifies one attribute per spec §4.4's rules, folding
// statics straight into the open tag and handing dynamics to
// ssrAttribute at a chunk boundary.
func writeAttr(c *chunker, a *jsxast.Attribute) {
	switch {
	case a.Namespace == "style":
		c.flush()
		c.dynamics = append(c.dynamics, `ssrAttribute("style", {`+common.QuoteJSString(a.Key)+": "+a.Val+"}, false)")
	case a.Namespace == "class":
		c.flush()
		c.dynamics = append(c.dynamics, `ssrAttribute("class", `+a.Val+", "+common.QuoteJSString(a.Key)+")")
	case a.Key == "classList":
		c.flush()
		c.dynamics = append(c.dynamics, "ssrClassList("+a.Val+")")
	case a.Key == "style" && a.Type == jsxast.ExpressionAttribute:
		c.flush()
		c.dynamics = append(c.dynamics, "ssrStyle("+a.Val+")")
	case a.Type == jsxast.QuotedAttribute:
		name := common.AliasAttribute(nsName(a))
		c.cur.WriteByte(' ')
		c.cur.WriteString(name)
		c.cur.WriteString(`="`)
		c.cur.WriteString(escapeAttrValue(a.Val))
		c.cur.WriteByte('"')
	case a.Type == jsxast.BooleanShorthandAttribute:
		name := common.AliasAttribute(nsName(a))
		c.cur.WriteByte(' ')
		if common.IsBooleanAttribute(strings.ToLower(name)) {
			c.cur.WriteString(name)
		} else {
			c.cur.WriteString(name + `="true"`)
		}
	case a.Type == jsxast.ExpressionAttribute && common.IsStaticExpression(a.Val):
		name := common.AliasAttribute(nsName(a))
		c.cur.WriteByte(' ')
		c.cur.WriteString(name)
		c.cur.WriteString(`="`)
		c.cur.WriteString(escapeAttrValue(stripQuotes(a.Val)))
		c.cur.WriteByte('"')
	default:
		name := common.AliasAttribute(nsName(a))
		boolean := common.IsBooleanAttribute(strings.ToLower(name))
		c.flush()
		c.dynamics = append(c.dynamics, "ssrAttribute("+common.QuoteJSString(name)+", "+a.Val+", "+boolLit(boolean)+")")
	}
}

func nsName(a *jsxast.Attribute) string {
	if a.Namespace == "" || a.Namespace == "attr" || a.Namespace == "prop" {
		return a.Key
	}
	return common.JoinNonEmpty(":", a.Namespace, a.Key)
}

func stripQuotes(expr string) string {
	if len(expr) >= 2 {
		c := expr[0]
		if (c == '"' || c == '\'') && expr[len(expr)-1] == c {
			return expr[1 : len(expr)-1]
		}
	}
	return expr
}

func escapeAttrValue(s string) string {
	return strings.NewReplacer("&", "&amp;", `"`, "&quot;").Replace(s)
}

// writeChildren appends n's children into c, coalescing text and
// recursing into nested elements, while expression/component/fragment
// children become escaped dynamic slots.
func writeChildren(c *chunker, n *jsxast.Node) {
	kids := collapseWhitespace(n.Children())
	for _, child := range kids {
		switch child.Type {
		case jsxast.TextNode:
			c.cur.WriteString(escapeHTMLText(child.Data))
		case jsxast.CommentNode:
			// dropped
		case jsxast.ElementNode:
			writeElement(c, child, false)
		case jsxast.ComponentNode, jsxast.FragmentNode:
			expr, err := Lower(c.ctx, child)
			if err != nil {
				expr = "undefined"
			}
			c.addDynamic(expr)
		case jsxast.ExpressionNode:
			lowerExpressionChild(c, child)
		}
	}
}

func lowerExpressionChild(c *chunker, child *jsxast.Node) {
	if !child.HasJSXChildren() && !common.IsDynamicChildExpression(child.Data) {
		c.cur.WriteString(escapeHTMLText(child.Data))
		return
	}
	expr := childExpressionText(c.ctx, child)
	c.addDynamic("escape(" + expr + ")")
}

func childExpressionText(ctx *Context, n *jsxast.Node) string {
	if !n.HasJSXChildren() {
		return n.Data
	}
	var b strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == jsxast.RawJSNode {
			b.WriteString(ch.Data)
			continue
		}
		expr, err := Lower(ctx, ch)
		if err != nil {
			expr = "undefined"
		}
		b.WriteString(expr)
	}
	return b.String()
}

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
	return strings.NewReplacer("&", "&amp;", "<", "&lt;").Replace(s)
}
