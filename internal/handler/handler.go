// Package handler collects diagnostics (errors, warnings, infos, hints)
// for a single compilation, resolving byte offsets to line/column only
// when a caller actually asks for them. Grounded on the teacher's
// internal/handler/handler.go, without the syscall/js-specific error
// conversion that package carries: this package's only public surface
// is a Go API, and cmd/jsxgen-wasm does not convert diagnostics either
// (on an error it returns an empty code/map result).
package handler

import (
	"errors"

	"github.com/jsxgen/compiler/internal/loc"
	"github.com/jsxgen/compiler/internal/sourcemap"
)

type Handler struct {
	sourcetext string
	filename   string
	builder    sourcemap.ChunkBuilder
	errors     []error
	warnings   []error
	infos      []error
	hints      []error
}

func New(sourcetext string, filename string) *Handler {
	lineCount := 1
	for i := 0; i < len(sourcetext); i++ {
		if sourcetext[i] == '\n' {
			lineCount++
		}
	}
	return &Handler{
		sourcetext: sourcetext,
		filename:   filename,
		builder:    sourcemap.MakeChunkBuilder(nil, sourcemap.GenerateLineOffsetTables(sourcetext, lineCount)),
	}
}

func (h *Handler) HasErrors() bool {
	return len(h.errors) > 0
}

func (h *Handler) AppendError(err error)   { h.errors = append(h.errors, err) }
func (h *Handler) AppendWarning(err error) { h.warnings = append(h.warnings, err) }
func (h *Handler) AppendInfo(err error)    { h.infos = append(h.infos, err) }
func (h *Handler) AppendHint(err error)    { h.hints = append(h.hints, err) }

func (h *Handler) Errors() []loc.DiagnosticMessage   { return h.toMessages(h.errors, loc.ErrorType) }
func (h *Handler) Warnings() []loc.DiagnosticMessage { return h.toMessages(h.warnings, loc.WarningType) }

func (h *Handler) Diagnostics() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0, len(h.errors)+len(h.warnings)+len(h.infos)+len(h.hints))
	msgs = append(msgs, h.toMessages(h.errors, loc.ErrorType)...)
	msgs = append(msgs, h.toMessages(h.warnings, loc.WarningType)...)
	msgs = append(msgs, h.toMessages(h.infos, loc.InformationType)...)
	msgs = append(msgs, h.toMessages(h.hints, loc.HintType)...)
	return msgs
}

func (h *Handler) toMessages(errs []error, severity loc.DiagnosticSeverity) []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		msgs = append(msgs, h.toMessage(severity, err))
	}
	return msgs
}

func (h *Handler) toMessage(severity loc.DiagnosticSeverity, err error) loc.DiagnosticMessage {
	var rangedError *loc.ErrorWithRange
	if errors.As(err, &rangedError) {
		pos := h.builder.GetLineAndColumnForLocation(rangedError.Range.Loc)
		location := &loc.DiagnosticLocation{
			File:   h.filename,
			Line:   pos[0],
			Column: pos[1],
			Length: rangedError.Range.Len,
		}
		message := rangedError.ToMessage(location)
		message.Severity = severity
		return message
	}
	return loc.DiagnosticMessage{Text: err.Error(), Severity: severity}
}
