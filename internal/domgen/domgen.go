package domgen

import (
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxast"
)

// Lower compiles one JSX node into a DOM-mode JS expression (spec
// §4.2-4.3). It recurses into itself for nested JSX, sharing ctx's
// template interner, id generator, and delegated-event set across the
// whole compilation.
func Lower(ctx *Context, n *jsxast.Node) (string, error) {
	switch n.Type {
	case jsxast.ElementNode:
		return lowerElement(ctx, n)
	case jsxast.ComponentNode:
		return lowerComponent(ctx, n)
	case jsxast.FragmentNode:
		return lowerFragment(ctx, n)
	default:
		return n.Data, nil
	}
}

// lowerElement runs the three-pass DOM lowering spec §4.2 describes:
// template synthesis, walk-path planning, binding emission -- then
// assembles the result IIFE.
func lowerElement(ctx *Context, n *jsxast.Node) (string, error) {
	isSVG := common.IsSVGElement(n.Data)
	s := newSynthesizer(ctx, isSVG)
	root := s.buildElement(n)

	if ctx.Opts.Hydratable {
		injectHydrationKeys(ctx, root, true)
	}

	html := renderHTML(root)
	tmplID := ctx.Templates.intern(html, s.nodeCount(), root.isSVG)

	decls := assignVars(ctx, root)

	var stmts []string
	stmts = append(stmts, decls...)
	for _, job := range s.jobs {
		if stmt := emitBinding(ctx, job, root.isSVG); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	if ctx.Opts.ContextToCustomElements {
		stmts = append(stmts, contextHookStatements(root)...)
	}

	clone := tmplID + ".cloneNode(true)"
	if ctx.Opts.Hydratable {
		clone = "getNextElement(" + tmplID + ")"
	}

	var b strings.Builder
	b.WriteString("(() => {\n  const _el$ = " + clone + ";\n")
	for _, stmt := range stmts {
		b.WriteString("  " + stmt + "\n")
	}
	b.WriteString("  return _el$;\n})()")
	return b.String(), nil
}

// injectHydrationKeys assigns a stable data-hk to the root element and
// every descendant carrying at least one binding (spec §4.2/§6: the
// hydratable output contract), in pre-order so reruns of the same tree
// produce identical keys.
func injectHydrationKeys(ctx *Context, n *tplNode, isRoot bool) {
	if n.kind == tplElement && (isRoot || n.needsAccess) {
		n.htmlAttrs = append(n.htmlAttrs, htmlAttr{Name: "data-hk", Value: ctx.HydrationKeys.Next()})
	}
	for _, c := range n.children {
		injectHydrationKeys(ctx, c, false)
	}
}

// contextHookStatements emits the owner-propagation hook spec §4.3
// calls out for custom elements when context_to_custom_elements is set.
func contextHookStatements(root *tplNode) []string {
	var out []string
	var walk func(n *tplNode)
	walk = func(n *tplNode) {
		if n.kind == tplElement && n.customElement && n.varName != "" {
			out = append(out, n.varName+"._$owner = getOwner();")
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(root)
	return out
}

// emitBinding renders one dynamicJob into its DOM-mode statement,
// following the attribute/event lowering table in spec §4.2. Handled
// first and separately: jobInsertChild's anchor is nil for a trailing
// child (reserveMarker skips the marker when none is needed), so it
// cannot share the other kinds' job.anchor.varName lookup below.
func emitBinding(ctx *Context, job *dynamicJob, isSVGRoot bool) string {
	if job.kind == jobInsertChild {
		accessor := "() => " + job.expr
		if job.wrapMemo {
			accessor = "memo(() => " + job.expr + ")"
		}
		if job.anchor == nil {
			return "insert(" + job.parent.varName + ", " + accessor + ");"
		}
		return "insert(" + job.parent.varName + ", " + accessor + ", " + job.anchor.varName + ");"
	}

	el := job.anchor.varName

	switch job.kind {
	case jobRef:
		ref := common.ParenthesizeIfNeeded(job.attr.Val)
		return "(typeof " + ref + " === \"function\" ? " + ref + "(" + el + ") : (" + job.attr.Val + " = " + el + "));"

	case jobSpread:
		hasChildren := len(job.anchor.children) > 0
		return "spread(" + el + ", " + job.attr.Val + ", " + boolLit(isSVGRoot) + ", " + boolLit(hasChildren) + ");"

	case jobUse:
		arg := job.attr.Val
		if job.attr.Type == jsxast.BooleanShorthandAttribute {
			arg = "undefined"
		}
		return "use(" + job.attr.Key + ", " + el + ", () => " + arg + ");"

	case jobEvent:
		return emitEventBinding(ctx, job, el)

	case jobAttr:
		return emitAttrBinding(job, el)
	}
	return ""
}

func boolLit(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// wrapIfDynamic wraps stmt in an effect when the source expression was
// classified dynamic; static expressions execute once, inline.
func wrapIfDynamic(dynamic bool, stmt string) string {
	if dynamic {
		return "effect(() => " + stmt + ");"
	}
	return stmt + ";"
}

func emitAttrBinding(job *dynamicJob, el string) string {
	a := job.attr
	dynamic := a.Type != jsxast.BooleanShorthandAttribute && !common.IsStaticExpression(a.Val)

	switch {
	case a.Namespace == "prop":
		return wrapIfDynamic(dynamic, el+"."+a.Key+" = "+a.Val)
	case a.Namespace == "attr":
		return wrapIfDynamic(dynamic, "setAttribute("+el+", "+common.QuoteJSString(a.Key)+", "+a.Val+")")
	case a.Namespace == "style":
		return wrapIfDynamic(dynamic, el+".style.setProperty("+common.QuoteJSString(a.Key)+", "+a.Val+")")
	case a.Namespace == "class":
		return wrapIfDynamic(dynamic, el+".classList.toggle("+common.QuoteJSString(a.Key)+", !!("+a.Val+"))")
	case a.Key == "classList":
		return "effect(() => classList(" + el + ", " + a.Val + "));"
	case a.Key == "style":
		return "effect(() => style(" + el + ", " + a.Val + "));"
	case a.Key == "innerHTML":
		return wrapIfDynamic(dynamic, el+".innerHTML = "+a.Val)
	case a.Key == "textContent":
		return wrapIfDynamic(dynamic, el+".textContent = "+a.Val)
	default:
		name := common.AliasAttribute(a.Key)
		return wrapIfDynamic(dynamic, "setAttribute("+el+", "+common.QuoteJSString(name)+", "+a.Val+")")
	}
}

func emitEventBinding(ctx *Context, job *dynamicJob, el string) string {
	a := job.attr

	if a.Namespace == "on" {
		opts := eventListenerOptions(a.Modifiers)
		if opts == "" {
			return el + ".addEventListener(" + common.QuoteJSString(a.Key) + ", " + a.Val + ");"
		}
		return el + ".addEventListener(" + common.QuoteJSString(a.Key) + ", " + a.Val + ", " + opts + ");"
	}

	name := a.Key[2:] // strip "on"
	capture := strings.HasSuffix(name, "Capture")
	if capture {
		name = name[:len(name)-len("Capture")]
	}
	eventName := strings.ToLower(name[:1]) + name[1:]

	if capture {
		return el + ".addEventListener(" + common.QuoteJSString(eventName) + ", " + a.Val + ", true);"
	}

	delegated := common.DelegatedEventSet(ctx.Opts.DelegatedEvents)
	if ctx.Opts.DelegateEvents && delegated[eventName] {
		ctx.DelegatedEvents.Add(eventName)
		return el + ".$$" + eventName + " = " + a.Val + ";"
	}
	return el + ".addEventListener(" + common.QuoteJSString(eventName) + ", " + a.Val + ");"
}

func eventListenerOptions(modifiers []string) string {
	if len(modifiers) == 0 {
		return ""
	}
	fields := make(map[string]bool)
	for _, m := range modifiers {
		fields[m] = true
	}
	var parts []string
	for _, name := range []string{"capture", "passive", "once"} {
		if fields[name] {
			parts = append(parts, name+": true")
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
