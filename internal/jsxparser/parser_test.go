package jsxparser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jsxgen/compiler/internal/jsxast"
	"gotest.tools/v3/assert"
)

// describe renders a node tree into a compact, deterministic string so
// tests can assert on shape without comparing pointers.
func describe(n *jsxast.Node) string {
	var b strings.Builder
	var walk func(n *jsxast.Node)
	walk = func(n *jsxast.Node) {
		switch n.Type {
		case jsxast.TextNode:
			fmt.Fprintf(&b, "Text(%q)", n.Data)
		case jsxast.CommentNode:
			fmt.Fprintf(&b, "Comment(%q)", n.Data)
		case jsxast.RawJSNode:
			fmt.Fprintf(&b, "Raw(%q)", n.Data)
		case jsxast.ExpressionNode:
			fmt.Fprintf(&b, "Expr(%q", n.Data)
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				b.WriteString(" ")
				walk(c)
			}
			b.WriteString(")")
		case jsxast.FragmentNode:
			b.WriteString("Fragment[")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			b.WriteString("]")
		default:
			kind := "El"
			if n.Type == jsxast.ComponentNode {
				kind = "Comp"
			}
			fmt.Fprintf(&b, "%s(%s", kind, n.Data)
			for _, a := range n.Attr {
				fmt.Fprintf(&b, " %s=%v", a.Key, a.Val)
			}
			b.WriteString(")[")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			b.WriteString("]")
		}
	}
	walk(n)
	return b.String()
}

func TestParseJSXFragment(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "self closing element",
			source: `<br/>`,
			want:   `El(br)[]`,
		},
		{
			name:   "element with text child",
			source: `<div>hello</div>`,
			want:   `El(div)[Text("hello")]`,
		},
		{
			name:   "component tag",
			source: `<Foo/>`,
			want:   `Comp(Foo)[]`,
		},
		{
			name:   "custom element",
			source: `<my-widget></my-widget>`,
			want:   `El(my-widget)[]`,
		},
		{
			name:   "quoted and expression attributes",
			source: `<div id="a" title={b}/>`,
			want:   `El(div id=a title=b)[]`,
		},
		{
			name:   "boolean shorthand attribute",
			source: `<input disabled/>`,
			want:   `El(input disabled=true)[]`,
		},
		{
			name:   "fragment",
			source: `<>a<br/>b</>`,
			want:   `Fragment[Text("a")El(br)[]Text("b")]`,
		},
		{
			name:   "plain expression child",
			source: `<div>{count}</div>`,
			want:   `El(div)[Expr("count")]`,
		},
		{
			name:   "nested JSX inside expression child",
			source: `<div>{cond && <span/>}</div>`,
			want:   `El(div)[Expr("cond && <span/>" Raw("cond && ") El(span)[])]`,
		},
		{
			name:   "comment child",
			source: `<div>{/* note */}</div>`,
			want:   `El(div)[Comment("note")]`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			node, end, err := ParseJSXFragment(tc.source, 0)
			assert.NilError(t, err)
			assert.Equal(t, end, len(tc.source))
			assert.Equal(t, describe(node), tc.want)
		})
	}
}

func TestParseSpreadAttribute(t *testing.T) {
	node, end, err := ParseJSXFragment(`<div {...props}/>`, 0)
	assert.NilError(t, err)
	assert.Equal(t, end, len(`<div {...props}/>`))
	assert.Equal(t, len(node.Attr), 1)
	assert.Equal(t, node.Attr[0].Type, jsxast.SpreadAttribute)
	assert.Equal(t, node.Attr[0].Val, "props")
}

func TestScanRootsFindsEmbeddedJSX(t *testing.T) {
	source := `
function App() {
  const flag = a < b;
  return <div class="app">{flag ? <span/> : null}</div>;
}
`
	roots, errs := scanRoots(source)
	assert.Equal(t, len(errs), 0)
	assert.Equal(t, len(roots), 1)
	assert.Equal(t, roots[0].Node.Data, "div")
}
