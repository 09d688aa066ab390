package domgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// lowerComponent implements spec §4.3: a JSX tag beginning uppercase or
// containing a dot becomes a `Tag(props, children)` call via the
// runtime's createComponent, regardless of whether it's one of the
// recognized built-ins (For, Show, Dynamic, ...) -- none of them change
// the call shape itself (spec: "receive no special transform beyond
// normal component lowering unless..." and even the exceptions listed
// only affect how their own children lower, not this call).
func lowerComponent(ctx *Context, n *jsxast.Node) (string, error) {
	kind := common.LookupBuiltin(n.Data, ctx.Opts.BuiltIns)

	var entries []common.PropEntry
	var spreads []string

	for i := range n.Attr {
		a := &n.Attr[i]
		if a.Type == jsxast.SpreadAttribute {
			spreads = append(spreads, a.Val)
			continue
		}
		key := common.JoinNonEmpty(":", a.Namespace, a.Key)
		switch a.Type {
		case jsxast.QuotedAttribute:
			entries = append(entries, common.PropEntry{Key: key, Value: common.QuoteJSString(a.Val)})
		case jsxast.BooleanShorthandAttribute:
			entries = append(entries, common.PropEntry{Key: key, Value: "true"})
		case jsxast.ExpressionAttribute:
			entries = append(entries, common.PropEntry{
				Key:     key,
				Value:   a.Val,
				Dynamic: !common.IsStaticExpression(a.Val),
			})
		}
	}

	var childExprs []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		expr, err := lowerChildValue(ctx, c, kind)
		if err != nil {
			return "", err
		}
		if expr != "" {
			childExprs = append(childExprs, expr)
		}
	}

	propsExpr, usesMergeProps := common.LowerPropsObject(entries, spreads)
	if entry, ok := common.LowerChildrenThunk(childExprs); ok {
		propsExpr = injectChildrenEntry(propsExpr, entry, usesMergeProps)
	}

	return "createComponent(" + n.Data + ", " + propsExpr + ")", nil
}

// injectChildrenEntry splices a `children: ...` entry into an already
// assembled props expression, handling both the plain object-literal
// case and the mergeProps(...) wrapper case.
func injectChildrenEntry(propsExpr, childrenEntry string, usesMergeProps bool) string {
	if !usesMergeProps {
		if propsExpr == "{}" {
			return "{" + childrenEntry + "}"
		}
		return propsExpr[:len(propsExpr)-1] + ", " + childrenEntry + "}"
	}
	return "mergeProps(" + propsExpr[len("mergeProps(") : len(propsExpr)-1] + ", {" + childrenEntry + "})"
}

// lowerFragment implements the `<>...</>` rule: an array expression of
// lowered children, no template generated for the fragment node itself.
func lowerFragment(ctx *Context, n *jsxast.Node) (string, error) {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		expr, err := lowerChildValue(ctx, c, common.NotBuiltin)
		if err != nil {
			return "", err
		}
		if expr != "" {
			parts = append(parts, expr)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// lowerChildValue lowers one child of a component or fragment into a
// plain JS expression, applying wrap_conditionals (spec §4.3: Show/
// Switch/Match rely on this at the children level) and the static/
// dynamic distinction for plain expression children. parentKind carries
// the enclosing component's recognized built-in, if any, so
// lowerStandaloneExpression can withhold wrap_conditionals from a
// For/Index child function.
func lowerChildValue(ctx *Context, c *jsxast.Node, parentKind common.BuiltinKind) (string, error) {
	switch c.Type {
	case jsxast.TextNode:
		if strings.TrimSpace(c.Data) == "" {
			return "", nil
		}
		return common.QuoteJSString(c.Data), nil
	case jsxast.CommentNode:
		return "", nil
	case jsxast.ElementNode, jsxast.ComponentNode, jsxast.FragmentNode:
		return Lower(ctx, c)
	case jsxast.ExpressionNode:
		return lowerStandaloneExpression(ctx, c, parentKind), nil
	default:
		return "", nil
	}
}

// lowerStandaloneExpression applies wrap_conditionals (spec §4.3: Show/
// Switch/Match children containing a ternary or `&&`/`||` get memo-
// wrapped), but never to For/Index's child function -- spec §4.3
// requires that child to stay a plain function of item, and a ternary
// inside its body would otherwise trip the same textual heuristic.
func lowerStandaloneExpression(ctx *Context, n *jsxast.Node, parentKind common.BuiltinKind) string {
	expr := reassembleExpression(ctx, n)
	isFunctionChildren := parentKind == common.BuiltinFor || parentKind == common.BuiltinIndex
	if ctx.Opts.WrapConditionals && !isFunctionChildren && looksConditional(n.Data) {
		return "memo(() => " + expr + ")"
	}
	return expr
}

// reassembleExpression splices any nested JSX the parser captured as
// children back into raw-text order, same rule as domgen's
// childExpressionText but usable outside a template-bearing parent.
func reassembleExpression(ctx *Context, n *jsxast.Node) string {
	if !n.HasJSXChildren() {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == jsxast.RawJSNode {
			b.WriteString(c.Data)
			continue
		}
		expr, err := Lower(ctx, c)
		if err != nil {
			expr = "undefined"
		}
		b.WriteString(expr)
	}
	return b.String()
}

// looksConditional is a conservative textual check: it reports whether
// expr contains `?`, `&&` or `||` anywhere, enough to decide whether
// wrap_conditionals applies without re-implementing expression
// precedence. It does not check that the operator is at top level.
func looksConditional(expr string) bool {
	return strings.Contains(expr, "?") || strings.Contains(expr, "&&") || strings.Contains(expr, "||")
}
