//go:build js && wasm

// Command jsxgen-wasm is the NAPI/WASM-shaped binding a JS bundler
// actually loads: it exposes __jsx_transform as a syscall/js global,
// converting between js.Value and Go values with norunners/vert.
// Grounded on the teacher's cmd/astro-wasm/astro-wasm.go: the same
// jsString helper, options-from-js.Value builder, TransformResult
// `js:"..."` struct, and three-way source-map mode split.
package main

import (
	"encoding/base64"
	"syscall/js"

	"github.com/norunners/vert"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/transform"
)

func main() {
	js.Global().Set("__jsx_transform", js.FuncOf(Transform))
	<-make(chan struct{})
}

func jsString(j js.Value) string {
	if j.IsUndefined() || j.IsNull() {
		return ""
	}
	return j.String()
}

func jsBool(j js.Value) bool {
	if j.IsUndefined() || j.IsNull() {
		return false
	}
	return j.Bool()
}

func jsStringSlice(j js.Value) []string {
	if j.IsUndefined() || j.IsNull() {
		return nil
	}
	out := make([]string, j.Length())
	for i := range out {
		out[i] = j.Index(i).String()
	}
	return out
}

// RawSourceMap mirrors a standard source-map-v3 document for callers
// that want the parsed fields instead of the raw JSON string.
type RawSourceMap struct {
	File           string   `js:"file"`
	Mappings       string   `js:"mappings"`
	Names          []string `js:"names"`
	Sources        []string `js:"sources"`
	SourcesContent []string `js:"sourcesContent"`
	Version        int      `js:"version"`
}

// TransformResult is the value returned to JS for every source-map
// mode; Map is left empty except for the "external"/"both" modes.
type TransformResult struct {
	Code string `js:"code"`
	Map  string `js:"map"`
}

func makeOptions(j js.Value) transform.Options {
	filename := jsString(j.Get("filename"))
	if filename == "" {
		filename = "<stdin>"
	}
	moduleName := jsString(j.Get("moduleName"))

	sourcemapMode := jsString(j.Get("sourcemap"))
	sourceMap := sourcemapMode != "" && sourcemapMode != "false"

	return transform.Options{
		ModuleName:              moduleName,
		Hydratable:              jsBool(j.Get("hydratable")),
		DelegateEvents:          jsBool(j.Get("delegateEvents")),
		DelegatedEvents:         jsStringSlice(j.Get("delegatedEvents")),
		WrapConditionals:        jsBool(j.Get("wrapConditionals")),
		ContextToCustomElements: jsBool(j.Get("contextToCustomElements")),
		Filename:                filename,
		SourceMap:               sourceMap,
	}
}

func generateModeFrom(jsVal js.Value) (common.GenerateMode, bool) {
	raw := jsString(jsVal.Get("generate"))
	return common.ParseGenerateMode(raw)
}

func Transform(this js.Value, args []js.Value) interface{} {
	source := jsString(args[0])
	optionsArg := args[1]

	opts := makeOptions(optionsArg)
	mode, ok := generateModeFrom(optionsArg)
	if !ok {
		return vert.ValueOf(TransformResult{Code: "", Map: ""})
	}
	opts.Generate = mode

	result, err := transform.Transform(source, opts)
	if err != nil {
		return vert.ValueOf(TransformResult{Code: "", Map: ""})
	}

	sourcemapMode := jsString(optionsArg.Get("sourcemap"))
	switch sourcemapMode {
	case "external":
		return createExternalSourceMap(result)
	case "both":
		return createBothSourceMap(result)
	case "inline":
		return createInlineSourceMap(result)
	}

	return vert.ValueOf(TransformResult{Code: result.Code, Map: ""})
}

func createExternalSourceMap(result transform.Result) interface{} {
	return vert.ValueOf(TransformResult{
		Code: result.Code,
		Map:  result.Map,
	})
}

func createInlineSourceMap(result transform.Result) interface{} {
	inline := "//# sourceMappingURL=data:application/json;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(result.Map))
	return vert.ValueOf(TransformResult{
		Code: result.Code + "\n" + inline,
		Map:  "",
	})
}

func createBothSourceMap(result transform.Result) interface{} {
	inline := "//# sourceMappingURL=data:application/json;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(result.Map))
	return vert.ValueOf(TransformResult{
		Code: result.Code + "\n" + inline,
		Map:  result.Map,
	})
}
