package domgen

import (
	"strings"
	"testing"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxparser"
	"gotest.tools/v3/assert"
)

func lowerSource(t *testing.T, src string, opts common.Options) (string, *Context) {
	t.Helper()
	node, _, err := jsxparser.ParseJSXFragment(src, 0)
	assert.NilError(t, err)
	ctx := NewContext(opts.WithDefaults(), common.NewIDGen(), NewInterner(common.NewIDGen()))
	out, err := Lower(ctx, node)
	assert.NilError(t, err)
	return out, ctx
}

// S1 -- static element: one template, no bindings.
func TestLowerStaticElement(t *testing.T) {
	out, ctx := lowerSource(t, `<div class="a">hi</div>`, common.Options{})

	assert.Equal(t, len(ctx.Templates.Entries()), 1)
	entry := ctx.Templates.Entries()[0]
	assert.Equal(t, entry.HTML, `<div class="a">hi</div>`)
	assert.Equal(t, entry.NodeCount, 2)
	assert.Assert(t, strings.Contains(out, entry.ID+".cloneNode(true)"))
}

// S2 -- dynamic text child becomes an insert binding against the root.
func TestLowerDynamicTextChild(t *testing.T) {
	out, ctx := lowerSource(t, `<p>{count()}</p>`, common.Options{})

	entry := ctx.Templates.Entries()[0]
	assert.Equal(t, entry.HTML, `<p></p>`)
	assert.Assert(t, strings.Contains(out, "insert(_el$, () => count());"))
}

// S3 -- delegated click handler.
func TestLowerDelegatedClick(t *testing.T) {
	out, ctx := lowerSource(t, `<button onClick={handleClick}>x</button>`, common.Options{DelegateEvents: true})

	assert.Assert(t, strings.Contains(out, "_el$.$$click = handleClick;"))
	assert.DeepEqual(t, ctx.DelegatedEvents.Values(), []string{"click"})
}

// S4 -- namespaced event bypasses delegation entirely.
func TestLowerNamespacedEvent(t *testing.T) {
	out, ctx := lowerSource(t, `<div on:custom={h} />`, common.Options{DelegateEvents: true})

	assert.Assert(t, strings.Contains(out, `_el$.addEventListener("custom", h);`))
	assert.Equal(t, len(ctx.DelegatedEvents.Values()), 0)
}

func TestLowerVoidElementTemplate(t *testing.T) {
	_, ctx := lowerSource(t, `<input type="text" />`, common.Options{})
	entry := ctx.Templates.Entries()[0]
	assert.Equal(t, entry.HTML, `<input type="text">`)
}

func TestLowerRefCallableDetection(t *testing.T) {
	out, _ := lowerSource(t, `<div ref={setRef} />`, common.Options{})
	assert.Assert(t, strings.Contains(out, `typeof setRef === "function" ? setRef(_el$) : (setRef = _el$)`))
}

// A non-bare ref expression (here a ternary) needs parens around both
// the typeof operand and the call target or the emitted JS is invalid.
func TestLowerRefNonBareExpressionParenthesized(t *testing.T) {
	out, _ := lowerSource(t, `<div ref={cond ? a : b} />`, common.Options{})
	assert.Assert(t, strings.Contains(out, `typeof (cond ? a : b) === "function" ? (cond ? a : b)(_el$)`))
}

// wrap_conditionals applies memo(() => ...) to a plain element's
// dynamic conditional child, the same as it does for component
// children (componentgen.go).
func TestLowerWrapConditionalsMemoizesElementChild(t *testing.T) {
	out, _ := lowerSource(t, `<p>{cond ? a : b}</p>`, common.Options{WrapConditionals: true})
	assert.Assert(t, strings.Contains(out, "insert(_el$, memo(() => cond ? a : b));"))
}

func TestLowerWithoutWrapConditionalsLeavesChildPlain(t *testing.T) {
	out, _ := lowerSource(t, `<p>{cond ? a : b}</p>`, common.Options{})
	assert.Assert(t, strings.Contains(out, "insert(_el$, () => cond ? a : b);"))
}

func TestLowerClassListRuntimeCall(t *testing.T) {
	out, _ := lowerSource(t, `<div classList={{active: isActive()}} />`, common.Options{})
	assert.Assert(t, strings.Contains(out, "effect(() => classList(_el$, {active: isActive()}));"))
}

func TestLowerSpreadEmitsRuntimeSpreadCall(t *testing.T) {
	out, _ := lowerSource(t, `<div {...props} id="x" />`, common.Options{})
	assert.Assert(t, strings.Contains(out, "spread(_el$, props, false, false)"))
}

// Template interning: two subtrees with identical HTML share one id.
func TestTemplateInterningDedupes(t *testing.T) {
	ctx := NewContext(common.Options{}.WithDefaults(), common.NewIDGen(), NewInterner(common.NewIDGen()))

	n1, _, err := jsxparser.ParseJSXFragment(`<span class="x">hi</span>`, 0)
	assert.NilError(t, err)
	n2, _, err := jsxparser.ParseJSXFragment(`<span class="x">hi</span>`, 0)
	assert.NilError(t, err)

	out1, err := Lower(ctx, n1)
	assert.NilError(t, err)
	out2, err := Lower(ctx, n2)
	assert.NilError(t, err)

	assert.Equal(t, len(ctx.Templates.Entries()), 1)
	assert.Assert(t, strings.Contains(out1, ctx.Templates.Entries()[0].ID))
	assert.Assert(t, strings.Contains(out2, ctx.Templates.Entries()[0].ID))
}

func TestHydratableInjectsDataHk(t *testing.T) {
	_, ctx := lowerSource(t, `<div onClick={h}>hi</div>`, common.Options{Hydratable: true})
	entry := ctx.Templates.Entries()[0]
	assert.Assert(t, strings.Contains(entry.HTML, `data-hk="h1"`))
}

// A bound second child is reached from the root's own variable through
// its unbound first sibling: _el$.firstChild.nextSibling.
func TestWalkPathSharedPrefix(t *testing.T) {
	out, _ := lowerSource(t, `<div><span>a</span><b onClick={h}>b</b></div>`, common.Options{})
	assert.Assert(t, strings.Contains(out, "_el$.firstChild.nextSibling"))
}
