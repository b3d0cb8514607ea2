package diag

// Bag collects diagnostics in emission order and is the Reporter every CLI
// command and analysis query ultimately drains, keeping pipeline stages and
// the output formatter on opposite sides of an accumulate-then-render
// split.
type Bag struct {
	items []Diagnostic
}

// NewBag creates an empty Bag.
func NewBag() *Bag { return &Bag{} }

// Report implements Reporter.
func (b *Bag) Report(d Diagnostic) { b.items = append(b.items, d) }

// Add is an alias for Report, read more naturally at call sites that already
// hold a constructed Diagnostic rather than building one via ReportBuilder.
func (b *Bag) Add(d Diagnostic) { b.items = append(b.items, d) }

// Len returns the number of collected diagnostics.
func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in emission order. Callers must not mutate
// the returned slice's backing array.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any collected diagnostic is error-severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// HasWarnings reports whether any collected diagnostic is warning-severity.
func (b *Bag) HasWarnings() bool {
	for _, d := range b.items {
		if d.Severity == SevWarning {
			return true
		}
	}
	return false
}

// Merge appends another Bag's diagnostics onto this one, used by the group
// driver to combine per-file diagnostics into one project-wide report.
func (b *Bag) Merge(other *Bag) {
	b.items = append(b.items, other.items...)
}
