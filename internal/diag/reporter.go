package diag

import "github.com/t18b219k/millet/internal/source"

// Reporter accepts diagnostics as a pipeline stage finds them. Every stage
// (lexer, parser, lowerer, elaborator, group driver) takes a Reporter rather
// than returning an error slice, so a single file's worth of diagnostics can
// accumulate past the first problem.
type Reporter interface {
	Report(d Diagnostic)
}

// ReportBuilder is a small fluent helper for constructing and emitting a
// Diagnostic in one expression, used throughout the lexer and parser.
type ReportBuilder struct {
	r Reporter
	d Diagnostic
}

// NewReport starts building a diagnostic of the given severity, code, message,
// and primary span.
func NewReport(r Reporter, sev Severity, code Code, message string, primary source.Span) *ReportBuilder {
	return &ReportBuilder{
		r: r,
		d: Diagnostic{Severity: sev, Code: code, Message: message, Primary: primary},
	}
}

// Note attaches a secondary annotation.
func (b *ReportBuilder) Note(message string, span source.Span) *ReportBuilder {
	b.d.Notes = append(b.d.Notes, Note{Message: message, Span: span})
	return b
}

// Emit sends the built diagnostic to the underlying Reporter.
func (b *ReportBuilder) Emit() {
	b.r.Report(b.d)
}

// Error reports an error-severity diagnostic in one call.
func Error(r Reporter, code Code, message string, primary source.Span) {
	NewReport(r, SevError, code, message, primary).Emit()
}

// Warning reports a warning-severity diagnostic in one call.
func Warning(r Reporter, code Code, message string, primary source.Span) {
	NewReport(r, SevWarning, code, message, primary).Emit()
}

// Info reports an info-severity diagnostic in one call.
func Info(r Reporter, code Code, message string, primary source.Span) {
	NewReport(r, SevInfo, code, message, primary).Emit()
}
