package domgen

import "strings"

// renderHTML serializes a template tree to the canonical HTML form
// spec §3 requires: double-quoted attributes, no self-closing syntax
// for non-void elements, and a genuine omitted closing tag for void
// elements (invariant #4).
func renderHTML(n *tplNode) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func escapeAttrValue(s string) string {
	return strings.NewReplacer("&", "&amp;", `"`, "&quot;").Replace(s)
}

func writeNode(b *strings.Builder, n *tplNode) {
	switch n.kind {
	case tplText:
		b.WriteString(n.text)
	case tplMarker:
		b.WriteString("<!>")
	case tplElement:
		b.WriteByte('<')
		b.WriteString(n.tag)
		for _, a := range n.htmlAttrs {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			if !a.Boolean {
				b.WriteString(`="`)
				b.WriteString(escapeAttrValue(a.Value))
				b.WriteByte('"')
			}
		}
		b.WriteByte('>')
		if n.isVoid {
			return
		}
		for _, c := range n.children {
			writeNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteByte('>')
	}
}
