package transform

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json"

	"github.com/jsxgen/compiler/internal/common"
	"gotest.tools/v3/assert"
)

func TestTransformStaticElement(t *testing.T) {
	result, err := Transform(`const view = <div class="a">hi</div>;`, Options{})
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(result.Code, "template(`<div class=\"a\">hi</div>`, 2)"))
	assert.Equal(t, result.Map, "")
}

func TestTransformSourceMapIsValidJSON(t *testing.T) {
	result, err := Transform(`const view = <div>hi</div>;`, Options{SourceMap: true, Filename: "view.jsx"})
	assert.NilError(t, err)
	assert.Assert(t, result.Map != "")

	var doc map[string]interface{}
	assert.NilError(t, json.Unmarshal([]byte(result.Map), &doc))
	assert.Equal(t, doc["version"], float64(3))
	assert.Equal(t, doc["sources"].([]interface{})[0], "view.jsx")
}

func TestTransformInvalidGenerateMode(t *testing.T) {
	_, err := Transform(`const x = <div />;`, Options{Generate: common.GenerateMode(99)})
	assert.ErrorContains(t, err, "invalid option")
}

func TestTransformParseFailureSurfacesAsError(t *testing.T) {
	// An unclosed component tag is unambiguously intended as JSX, so the
	// scanner surfaces its parse failure instead of silently backing off.
	_, err := Transform(`const view = <Widget>`, Options{})
	assert.Assert(t, err != nil)
}

func TestTransformSSRMode(t *testing.T) {
	result, err := Transform(`const view = <h1>Hello {name}</h1>;`, Options{Generate: common.Ssr})
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(result.Code, `ssr(["<h1>Hello ", "</h1>"], escape(name))`))
}
