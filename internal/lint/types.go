// Package lint provides Python diagnostics by adapting external linters
// into a common diagnostic model. The only linter currently wired is
// pylint.
package lint

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityNote Severity = iota
	SeverityWarning
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityNote:
		return "note"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Position is a 1-based line with a 0-based column, following the linter's
// own convention.
type Position struct {
	Line   int
	Column int
}

// Diagnostic is one linter finding.
type Diagnostic struct {
	Severity Severity
	// Code is the linter's message identifier (e.g. "W0611").
	Code string
	// Symbol is the human-readable rule name (e.g. "unused-import").
	Symbol  string
	Message string
	Path    string
	Start   Position
	// End is the zero Position when the linter reported no range end.
	End Position
	// Unused marks findings about unused code.
	Unused bool
	// Deprecated marks findings about deprecated usage.
	Deprecated bool
}
