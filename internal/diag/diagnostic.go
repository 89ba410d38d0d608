package diag

import "risp/internal/source"

// Severity orders diagnostics; higher is worse.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{SevInfo: "INFO", SevWarning: "WARNING", SevError: "ERROR"}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Note points at a secondary location, e.g. where an unclosed paren opened.
type Note struct {
	At  source.Info
	Msg string
}

// Diagnostic is one problem found in a source file.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Info
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Info, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Info, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns d with one more note; d itself is not modified.
func (d Diagnostic) WithNote(at source.Info, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{At: at, Msg: msg})
	return d
}
