package diag

import "github.com/t18b219k/millet/internal/source"

// Note is a secondary annotation attached to a Diagnostic, e.g. pointing at
// a conflicting earlier binding.
type Note struct {
	Message string
	Span    source.Span
}

// Diagnostic is a single analyzer finding: a severity-banded, coded message
// anchored at a primary span, with optional secondary notes. There is no
// Fix/TextEdit payload: this analyzer has no auto-fix surface.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// WithNote appends a secondary note and returns the diagnostic for chaining.
func (d Diagnostic) WithNote(message string, span source.Span) Diagnostic {
	d.Notes = append(d.Notes, Note{Message: message, Span: span})
	return d
}
