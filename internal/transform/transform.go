// Package transform exposes the single public compile entry point every
// host binding (CLI, wasm) calls through. Grounded on the teacher's
// cmd/astro-wasm/astro-wasm.go Transform/createSourceMapString pair: the
// same parse-validate-print-assemble shape, generalized from Astro's
// document/fragment parse modes to this compiler's single JSX-source
// entry point.
package transform

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/handler"
	"github.com/jsxgen/compiler/internal/loc"
	"github.com/jsxgen/compiler/internal/printer"
)

// Options is re-exported so callers only need to import this package.
type Options = common.Options

// Result is the compiled program plus, when requested, its source map
// (spec §6). Map is left empty unless opts.SourceMap is set. Diagnostics
// carries whatever non-fatal diagnostics the handler collected; the DOM
// and SSR lowering passes record none, so it is empty on success
// (spec §7: fatal problems come back as the error return instead).
type Result struct {
	Code        string
	Map         string
	Diagnostics []loc.DiagnosticMessage
}

// Transform compiles one JSX source file per opts. It validates opts
// first (spec §7: malformed options fail before any parsing happens),
// then runs the printer's parse/lower/emit pipeline, and finally
// assembles the source map document the printer only returns as a raw
// chunk.
func Transform(source string, opts Options) (Result, error) {
	if err := opts.Validate(opts.Generate.String()); err != nil {
		return Result{}, err
	}
	opts = opts.WithDefaults()

	h := handler.New(source, opts.Filename)

	out, err := printer.Print(source, opts, h)
	if err != nil {
		return Result{}, err
	}

	result := Result{Code: string(out.Output), Diagnostics: h.Diagnostics()}
	if opts.SourceMap {
		result.Map = buildSourceMapString(source, out, opts)
	}
	return result, nil
}

// rawSourceMap mirrors the standard source-map-v3 document shape; field
// order here only matters for the literal JSON this package hand-builds
// below, not for this type itself.
type rawSourceMap struct {
	Version        int      `json:"version"`
	Sources        []string `json:"sources"`
	SourcesContent []string `json:"sourcesContent"`
	Mappings       string   `json:"mappings"`
	Names          []string `json:"names"`
}

// buildSourceMapString renders the printer's incremental mapping chunk
// into a complete source-map-v3 JSON document, the same field set and
// literal-template approach as the teacher's createSourceMapString.
func buildSourceMapString(source string, out printer.Result, opts Options) string {
	sourcesContent, _ := json.Marshal(source)
	m := rawSourceMap{
		Version:        3,
		Sources:        []string{opts.Filename},
		SourcesContent: []string{string(sourcesContent)},
		Mappings:       string(out.SourceMapChunk.Buffer),
		Names:          []string{},
	}
	return fmt.Sprintf(`{
  "version": %d,
  "sources": ["%s"],
  "sourcesContent": [%s],
  "mappings": "%s",
  "names": []
}`, m.Version, m.Sources[0], m.SourcesContent[0], m.Mappings)
}

// InlineSourceMapComment renders the `//# sourceMappingURL=...` trailer
// hosts append when asked for an inline or "both" source map (spec §6),
// grounded on the teacher's createInlineSourceMap/createBothSourceMap.
func InlineSourceMapComment(mapJSON string) string {
	return "//# sourceMappingURL=data:application/json;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(mapJSON))
}
