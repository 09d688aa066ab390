package ssrgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// lowerComponent mirrors domgen's component lowering: SSR components
// use the same createComponent(Tag, props) call shape, only the
// runtime import set differs (spec §4.4: "like DOM, but with SSR
// runtime imports").
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

func injectChildrenEntry(propsExpr, childrenEntry string, usesMergeProps bool) string {
	if !usesMergeProps {
		if propsExpr == "{}" {
			return "{" + childrenEntry + "}"
		}
		return propsExpr[:len(propsExpr)-1] + ", " + childrenEntry + "}"
	}
	return "mergeProps(" + propsExpr[len("mergeProps(") : len(propsExpr)-1] + ", {" + childrenEntry + "})"
}

// lowerFragment emits an array expression of lowered children, same as
// domgen's fragment rule; SSR never templates the fragment itself.
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

// lowerChildValue lowers one child of a component or fragment, same
// rule as domgen's. parentKind lets lowerStandaloneExpression withhold
// wrap_conditionals from a For/Index child function.
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

func lowerStandaloneExpression(ctx *Context, n *jsxast.Node, parentKind common.BuiltinKind) string {
	expr := childExpressionText(ctx, n)
	isFunctionChildren := parentKind == common.BuiltinFor || parentKind == common.BuiltinIndex
	if ctx.Opts.WrapConditionals && !isFunctionChildren && looksConditional(n.Data) {
		return "memo(() => " + expr + ")"
	}
	return expr
}

func looksConditional(expr string) bool {
	return strings.Contains(expr, "?") || strings.Contains(expr, "&&") || strings.Contains(expr, "||")
}
