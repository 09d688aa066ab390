package domgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// collectAttrBindings classifies each of n's attributes per the
// lowering table in spec §4.2: string literals fold straight into the
// template; everything else becomes a dynamicJob against node once the
// walk pass gives it a variable.
func (s *synthesizer) collectAttrBindings(n *jsxast.Node, node *tplNode) {
	for i := range n.Attr {
		a := &n.Attr[i]
		switch {
		case a.Type == jsxast.SpreadAttribute:
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobSpread, anchor: node, attr: a})

		case a.Namespace == "on":
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobEvent, anchor: node, attr: a})

		case a.Namespace == "use":
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobUse, anchor: node, attr: a})

		case a.Namespace == "prop" || a.Namespace == "attr" || a.Namespace == "style" || a.Namespace == "class":
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobAttr, anchor: node, attr: a})

		case a.Key == "ref":
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobRef, anchor: node, attr: a})

		case a.Key == "classList" || a.Key == "style" || a.Key == "innerHTML" || a.Key == "textContent":
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobAttr, anchor: node, attr: a})

		case isEventName(a.Key):
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobEvent, anchor: node, attr: a})

		case a.Type == jsxast.QuotedAttribute:
			name := common.AliasAttribute(a.Key)
			node.htmlAttrs = append(node.htmlAttrs, htmlAttr{Name: name, Value: a.Val})

		case a.Type == jsxast.BooleanShorthandAttribute:
			name := common.AliasAttribute(a.Key)
			if common.IsBooleanAttribute(strings.ToLower(name)) {
				node.htmlAttrs = append(node.htmlAttrs, htmlAttr{Name: name, Boolean: true})
			} else {
				node.htmlAttrs = append(node.htmlAttrs, htmlAttr{Name: name, Value: "true"})
			}

		case a.Type == jsxast.ExpressionAttribute && common.IsStaticExpression(a.Val):
			name := common.AliasAttribute(a.Key)
			node.htmlAttrs = append(node.htmlAttrs, htmlAttr{Name: name, Value: stripQuotes(a.Val)})

		default: // ExpressionAttribute, dynamic
			node.needsAccess = true
			s.jobs = append(s.jobs, &dynamicJob{kind: jobAttr, anchor: node, attr: a})
		}
	}
}

// isEventName reports whether key looks like an "onClick"-style handler
// prop: "on" followed by an uppercase letter.
func isEventName(key string) bool {
	return strings.HasPrefix(key, "on") && len(key) > 2 && key[2] >= 'A' && key[2] <= 'Z'
}

// stripQuotes removes a wrapping quote pair from a static string-literal
// expression so it can be inlined as bare attribute text.
func stripQuotes(expr string) string {
	if len(expr) >= 2 {
		c := expr[0]
		if (c == '"' || c == '\'') && expr[len(expr)-1] == c {
			return expr[1 : len(expr)-1]
		}
	}
	return expr
}

