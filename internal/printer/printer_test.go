package printer

import (
	"strings"
	"testing"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/handler"
	"github.com/jsxgen/compiler/internal/testutil"
	"gotest.tools/v3/assert"
)

func printSource(t *testing.T, src string, opts common.Options) string {
	t.Helper()
	opts = opts.WithDefaults()
	h := handler.New(src, opts.Filename)
	result, err := Print(src, opts, h)
	assert.NilError(t, err)
	return string(result.Output)
}

// S1 -- static element: a hoisted template, no runtime imports beyond
// `template` itself.
func TestPrintStaticElement(t *testing.T) {
	out := printSource(t, `const view = <div class="a">hi</div>;`, common.Options{})

	assert.Assert(t, strings.Contains(out, "import { template } from \"solid-js/web\";"))
	assert.Assert(t, strings.Contains(out, "const _tmpl$1 = template(`<div class=\"a\">hi</div>`, 2);"))
	assert.Assert(t, strings.Contains(out, "const view = (() => {\n  const _el$ = _tmpl$1.cloneNode(true);\n  return _el$;\n})();"))

	testutil.MatchSnapshot(t, out)
}

// S2 -- dynamic text child becomes an insert binding; template and
// insert both get imported.
func TestPrintDynamicTextChild(t *testing.T) {
	out := printSource(t, `const view = <p>{count()}</p>;`, common.Options{})

	assert.Assert(t, strings.Contains(out, "import { template, insert } from \"solid-js/web\";"))
	assert.Assert(t, strings.Contains(out, "const _tmpl$1 = template(`<p></p>`, 1);"))
	assert.Assert(t, strings.Contains(out, "insert(_el$, () => count());"))
}

// S3 -- delegated click handler: the emitted import set includes
// `template` and `delegateEvents` (no `insert`), and the trailing
// delegateEvents call lists the one delegated event name.
func TestPrintDelegatedClick(t *testing.T) {
	out := printSource(t, `const view = <button onClick={handleClick}>x</button>;`,
		common.Options{DelegateEvents: true})

	assert.Assert(t, strings.Contains(out, "import { template, delegateEvents } from \"solid-js/web\";"))
	assert.Assert(t, strings.Contains(out, "_el$.$$click = handleClick;"))
	assert.Assert(t, strings.Contains(out, "delegateEvents([\"click\"]);"))
}

// S4 -- namespaced event bypasses delegation: no delegateEvents call at
// all, plain addEventListener instead.
func TestPrintNamespacedEvent(t *testing.T) {
	out := printSource(t, `const view = <div on:custom={h} />;`, common.Options{DelegateEvents: true})

	assert.Assert(t, strings.Contains(out, `_el$.addEventListener("custom", h);`))
	assert.Assert(t, !strings.Contains(out, "delegateEvents("))
}

// S5 -- SSR static+dynamic: one ssr(...) call, no template hoisting,
// and the runtime import set is SSR's own (ssr + escape).
func TestPrintSSRStaticAndDynamic(t *testing.T) {
	out := printSource(t, `const view = <h1>Hello {name}</h1>;`, common.Options{Generate: common.Ssr})

	assert.Assert(t, strings.Contains(out, "import { ssr, escape } from \"solid-js/web\";"))
	assert.Assert(t, strings.Contains(out, `const view = ssr(["<h1>Hello ", "</h1>"], escape(name));`))
	assert.Assert(t, !strings.Contains(out, "template("))
}

// S6 -- component with a child function: createComponent receives the
// item function itself as `children` (no extra thunk wrapper -- For's
// runtime calls children(item), not children()(item)), and the nested
// <li> lowers through the normal element path inside that function.
func TestPrintComponentWithChildFunction(t *testing.T) {
	out := printSource(t, `const view = <For each={items}>{(i) => <li>{i}</li>}</For>;`, common.Options{})

	assert.Assert(t, strings.Contains(out, "createComponent(For, "))
	assert.Assert(t, strings.Contains(out, "get each() { return items; }"))
	assert.Assert(t, strings.Contains(out, "children: (i) =>"))
	assert.Assert(t, !strings.Contains(out, "children: () => (i) =>"))
	assert.Assert(t, strings.Contains(out, "insert(_el$, () => i);"))
}

func TestPrintDirectivePrologueStaysFirst(t *testing.T) {
	out := printSource(t, "\"use client\";\nconst view = <div>hi</div>;", common.Options{})

	assert.Assert(t, strings.HasPrefix(out, "\"use client\";\n"))
}

func TestPrintNoJSXRoots(t *testing.T) {
	out := printSource(t, `const x = 1 + 2;`, common.Options{})
	assert.Equal(t, out, `const x = 1 + 2;`)
}
