package ssrgen

import (
	"strings"
	"testing"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/jsxparser"
	"gotest.tools/v3/assert"
)

func lowerSource(t *testing.T, src string, opts common.Options) string {
	t.Helper()
	node, _, err := jsxparser.ParseJSXFragment(src, 0)
	assert.NilError(t, err)
	ctx := NewContext(opts.WithDefaults(), common.NewIDGen())
	out, err := Lower(ctx, node)
	assert.NilError(t, err)
	return out
}

// S5 -- static text mixed with one dynamic expression child.
func TestLowerStaticAndDynamicText(t *testing.T) {
	out := lowerSource(t, `<h1>Hello {name}</h1>`, common.Options{Generate: common.Ssr})
	assert.Equal(t, out, `ssr(["<h1>Hello ", "</h1>"], escape(name))`)
}

func TestLowerStaticElement(t *testing.T) {
	out := lowerSource(t, `<div class="a">hi</div>`, common.Options{Generate: common.Ssr})
	assert.Equal(t, out, `ssr(["<div class=\"a\">hi</div>"])`)
}

func TestLowerDynamicAttribute(t *testing.T) {
	out := lowerSource(t, `<div id={dynamicId}>x</div>`, common.Options{Generate: common.Ssr})
	assert.Assert(t, strings.Contains(out, `ssrAttribute("id", dynamicId, false)`))
}

func TestLowerVoidElementNoClosingTag(t *testing.T) {
	out := lowerSource(t, `<input type="text" />`, common.Options{Generate: common.Ssr})
	assert.Equal(t, out, `ssr(["<input type=\"text\">"])`)
}

func TestRefAndEventsDroppedInSSR(t *testing.T) {
	out := lowerSource(t, `<button ref={r} onClick={h}>go</button>`, common.Options{Generate: common.Ssr})
	assert.Assert(t, !strings.Contains(out, "addEventListener"))
	assert.Assert(t, !strings.Contains(out, "ref"))
	assert.Equal(t, out, `ssr(["<button>go</button>"])`)
}

func TestInnerHTMLRawInjection(t *testing.T) {
	out := lowerSource(t, `<div innerHTML={raw}></div>`, common.Options{Generate: common.Ssr})
	assert.Equal(t, out, `ssr(["<div>", "</div>"], raw)`)
}

func TestHydratableDataHk(t *testing.T) {
	out := lowerSource(t, `<button onClick={h}>go</button>`, common.Options{Generate: common.Ssr, Hydratable: true})
	assert.Assert(t, strings.Contains(out, `data-hk="h1"`))
}

func TestSpreadEmitsSsrSpread(t *testing.T) {
	out := lowerSource(t, `<div {...props}>x</div>`, common.Options{Generate: common.Ssr})
	assert.Assert(t, strings.Contains(out, "ssrSpread(props, false, true)"))
}
