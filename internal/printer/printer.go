// Package printer is the emitter/assembler (spec §4.5): it walks a
// source file for JSX roots, invokes domgen or ssrgen lowering per
// root, splices the result back into the original source text, and
// injects the runtime import statement and any delegated-event
// registration. Grounded on the teacher's internal/printer/printer.go:
// the print/addSourceMapping/addNilSourceMapping pairing is carried
// over near-verbatim in shape, since that pattern -- pair every printed
// token with a source-map call -- is the teacher's defining idiom for
// this kind of pass.
package printer

import (
	"regexp"
	"strings"

	"github.com/jsxgen/compiler/internal/common"
	"github.com/jsxgen/compiler/internal/domgen"
	"github.com/jsxgen/compiler/internal/handler"
	"github.com/jsxgen/compiler/internal/jsxast"
	"github.com/jsxgen/compiler/internal/jsxparser"
	"github.com/jsxgen/compiler/internal/loc"
	"github.com/jsxgen/compiler/internal/scopehash"
	"github.com/jsxgen/compiler/internal/sourcemap"
	"github.com/jsxgen/compiler/internal/ssrgen"
)

// Result is the printer's output: the rewritten source plus an
// incremental source-map chunk the caller assembles into a full
// document (spec §6: Transform owns the final {code, map} shape).
type Result struct {
	Output         []byte
	SourceMapChunk sourcemap.Chunk
}

// stage names the emitter's state machine (spec §4.5): "Init ->
// ScanningForImports -> RewritingJsx* -> InjectingImports ->
// InjectingDelegate -> Done". Each stage below is entered exactly once,
// in order; nothing re-enters an earlier stage.
type stage int

const (
	stageInit stage = iota
	stageScanningForImports
	stageRewritingJsx
	stageInjectingImports
	stageInjectingDelegate
	stageDone
)

type printer struct {
	opts    common.Options
	builder sourcemap.ChunkBuilder
	output  []byte
	stage   stage
}

func (p *printer) print(s string) {
	p.output = append(p.output, s...)
}

// printPassthrough copies a verbatim span of the original source into
// the output, mapping every rune back to its own original position --
// the teacher's printTextWithSourcemap, applied to whole inter-JSX
// spans instead of single attribute values.
func (p *printer) printPassthrough(text string, startOffset int) {
	if !p.opts.SourceMap {
		p.print(text)
		return
	}
	pos := startOffset
	for _, r := range text {
		p.addSourceMapping(loc.Loc{Start: pos})
		p.output = append(p.output, string(r)...)
		pos += len(string(r))
	}
}

// printLowered prints one lowered JSX expression, mapped as a single
// segment back to the JSX root's start position (spec §4.5: "expression
// granularity only").
func (p *printer) printLowered(expr string, rootStart loc.Loc) {
	p.addSourceMapping(rootStart)
	p.print(expr)
}

func (p *printer) addSourceMapping(l loc.Loc) {
	if !p.opts.SourceMap {
		return
	}
	p.builder.AddSourceMapping(l, p.output)
}

func (p *printer) addNilSourceMapping() {
	if !p.opts.SourceMap {
		return
	}
	p.builder.AddSourceMapping(loc.Loc{Start: -1}, p.output)
}

// loweredRoot pairs a parsed JSX root with its already-lowered
// replacement text, computed once in the analysis pass and reused by
// the final printing pass so source-mapped output and the
// symbol-usage/template-hoisting decisions agree on identical text.
type loweredRoot struct {
	root jsxast.Root
	expr string
}

// Print runs the full emitter pipeline over source (spec §4.5) and
// returns the rewritten program. Parse errors are fatal per spec §7 and
// are returned immediately rather than attempting a best-effort output.
func Print(source string, opts common.Options, h *handler.Handler) (Result, error) {
	p := &printer{opts: opts}
	if opts.SourceMap {
		lineCount := 1
		for i := 0; i < len(source); i++ {
			if source[i] == '\n' {
				lineCount++
			}
		}
		p.builder = sourcemap.MakeChunkBuilder(nil, sourcemap.GenerateLineOffsetTables(source, lineCount))
	}
	p.stage = stageInit

	roots, errs := jsxparser.Parse(source)
	for _, e := range errs {
		h.AppendError(e)
	}
	if h.HasErrors() {
		return Result{}, &loc.ErrorWithRange{Code: loc.ErrParse, Text: "failed to parse source"}
	}

	p.stage = stageScanningForImports
	prologueEnd := scanDirectivePrologue(source)

	// Analysis pass: lower every root once, accumulating interned
	// templates and delegated events, without touching p.output yet --
	// the import statement and hoisted template block that must precede
	// the body can only be computed once this pass has finished.
	p.stage = stageRewritingJsx
	ids := common.NewIDGen()
	lowered := make([]loweredRoot, 0, len(roots))
	var bodyPlain strings.Builder
	var delegated []string
	var interner *domgen.Interner

	// When hydratable, every data-hk key this compilation hands out is
	// prefixed with a per-file scope id (spec §6: hosts may not supply
	// one of their own) so two files hydrating into the same page never
	// collide on a bare "h1". Derived from the filename's component name
	// plus a short hash of the source text, matching the teacher's own
	// filename+content scope-id derivation (see internal/scopehash).
	var scope string
	if opts.Hydratable {
		scope = strings.ToLower(common.ComponentNameFromFilename(opts.Filename)) + "-" + scopehash.FromSource(source)
	}

	cursor := prologueEnd
	switch opts.Generate {
	case common.Ssr:
		ctx := ssrgen.NewContext(opts, ids)
		ctx.SetScope(scope)
		for _, root := range roots {
			bodyPlain.WriteString(source[cursor:root.SourceSpan.Loc.Start])
			expr, err := ssrgen.Lower(ctx, root.Node)
			if err != nil {
				h.AppendError(&loc.ErrorWithRange{Code: loc.ErrUnsupportedNode, Text: err.Error(), Range: root.SourceSpan})
				continue
			}
			lowered = append(lowered, loweredRoot{root: root, expr: expr})
			bodyPlain.WriteString(expr)
			cursor = root.SourceSpan.End()
		}
	default: // Dom and Universal (spec §9: Universal aliases Dom for now)
		interner = domgen.NewInterner(ids)
		ctx := domgen.NewContext(opts, ids, interner)
		ctx.SetScope(scope)
		for _, root := range roots {
			bodyPlain.WriteString(source[cursor:root.SourceSpan.Loc.Start])
			expr, err := domgen.Lower(ctx, root.Node)
			if err != nil {
				h.AppendError(&loc.ErrorWithRange{Code: loc.ErrUnsupportedNode, Text: err.Error(), Range: root.SourceSpan})
				continue
			}
			lowered = append(lowered, loweredRoot{root: root, expr: expr})
			bodyPlain.WriteString(expr)
			cursor = root.SourceSpan.End()
		}
		delegated = ctx.DelegatedEvents.Values()
	}
	if h.HasErrors() {
		return Result{}, &loc.ErrorWithRange{Code: loc.ErrUnsupportedNode, Text: "one or more JSX nodes could not be lowered"}
	}
	bodyPlain.WriteString(source[cursor:])

	p.stage = stageInjectingImports
	var templateDecls string
	if interner != nil {
		templateDecls = renderTemplateDeclarations(interner)
	}
	importStmt := buildImportStatement(opts, templateDecls+bodyPlain.String(), len(delegated) > 0)

	p.stage = stageInjectingDelegate
	var tail string
	if len(delegated) > 0 {
		tail = "\ndelegateEvents([" + joinQuoted(delegated) + "]);\n"
	}

	// Final printing pass: emit in the real output order, now with
	// every downstream decision already made, so every addSourceMapping
	// call sees the true byte offset it will end up at.
	p.printPassthrough(source[:prologueEnd], 0)
	p.addNilSourceMapping()
	p.print(importStmt)
	p.print(templateDecls)

	cursor = prologueEnd
	for _, lr := range lowered {
		p.printPassthrough(source[cursor:lr.root.SourceSpan.Loc.Start], cursor)
		p.printLowered(lr.expr, lr.root.SourceSpan.Loc)
		cursor = lr.root.SourceSpan.End()
	}
	p.printPassthrough(source[cursor:], cursor)
	p.addNilSourceMapping()
	p.print(tail)

	p.stage = stageDone

	return Result{Output: p.output, SourceMapChunk: p.builder.GenerateChunk(nil)}, nil
}

func joinQuoted(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = common.QuoteJSString(n)
	}
	return strings.Join(quoted, ", ")
}

// scanDirectivePrologue returns the byte offset just past any leading
// directive prologue (a run of string-literal-only expression
// statements, e.g. `"use client";`, each including the line break that
// ends its line) so the injected import statement
// lands after it -- directives must stay the first statements in a
// module, exactly as a real bundler's import-hoisting pass has to
// respect.
func scanDirectivePrologue(source string) int {
	pos := 0
	for {
		start := pos
		for pos < len(source) && (source[pos] == ' ' || source[pos] == '\t' || source[pos] == '\n' || source[pos] == '\r') {
			pos++
		}
		if pos >= len(source) || (source[pos] != '"' && source[pos] != '\'') {
			return start
		}
		quote := source[pos]
		j := pos + 1
		for j < len(source) && source[j] != quote {
			if source[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(source) {
			return start
		}
		j++ // consume closing quote
		for j < len(source) && (source[j] == ' ' || source[j] == '\t') {
			j++
		}
		if j < len(source) && source[j] == ';' {
			j++
		} else if j < len(source) && source[j] != '\n' && source[j] != '\r' {
			return start
		}
		for j < len(source) && (source[j] == ' ' || source[j] == '\t') {
			j++
		}
		if j < len(source) && source[j] == '\r' {
			j++
		}
		if j < len(source) && source[j] == '\n' {
			j++
		}
		pos = j
	}
}

// renderTemplateDeclarations hoists every interned template's `const
// _tmpl$N = template(...)` declaration (spec §4.5) ahead of the
// rewritten body, in first-encounter order (spec §5). The isSVG
// argument is only emitted when true, matching the S1 scenario's
// two-argument `template(html, count)` form for the common case.
func renderTemplateDeclarations(interner *domgen.Interner) string {
	entries := interner.Entries()
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString("const ")
		b.WriteString(e.ID)
		b.WriteString(" = template(")
		b.WriteString(quoteTemplateLiteral(e.HTML))
		b.WriteString(", ")
		b.WriteString(itoaSimple(e.NodeCount))
		if e.IsSVG {
			b.WriteString(", true")
		}
		b.WriteString(");\n")
	}
	return b.String()
}

var templateLiteralReplacer = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

func quoteTemplateLiteral(html string) string {
	return "`" + templateLiteralReplacer.Replace(html) + "`"
}

func itoaSimple(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// runtimeSymbols is the ordered candidate list this emitter knows how
// to import from the runtime ABI (spec §6); buildImportStatement only
// imports the subset whose call form actually appears in the rewritten
// body, per spec §4.5 ("the union of runtime symbols actually used").
var runtimeSymbols = []string{
	"template", "insert", "effect", "memo", "createComponent", "mergeProps",
	"getOwner", "setAttribute", "classList", "style", "spread", "use",
	"getNextElement", "ssr", "ssrAttribute", "ssrSpread", "ssrClassList",
	"ssrStyle", "escape", "delegateEvents",
}

var symbolCallPattern = make(map[string]*regexp.Regexp, len(runtimeSymbols))

func init() {
	for _, name := range runtimeSymbols {
		symbolCallPattern[name] = regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\(`)
	}
}

// buildImportStatement imports every runtime symbol whose call form
// appears in body (the hoisted template declarations followed by the
// rewritten module body), plus delegateEvents whenever the module tail will
// emit a delegateEvents([...]) registration call -- that call lives
// past the rewritten body (it's appended after the last JSX root, see
// the tail construction above), so its own presence can't be detected
// by scanning body the way every other symbol is.
func buildImportStatement(opts common.Options, body string, hasDelegated bool) string {
	var used []string
	for _, name := range runtimeSymbols {
		if name == "delegateEvents" {
			if hasDelegated {
				used = append(used, name)
			}
			continue
		}
		if symbolCallPattern[name].MatchString(body) {
			used = append(used, name)
		}
	}
	if len(used) == 0 {
		return ""
	}
	return "import { " + strings.Join(used, ", ") + ` } from "` + opts.ModuleName + "\";\n"
}
