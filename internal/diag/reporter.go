package diag

import "risp/internal/source"

// Reporter receives diagnostics from the scanner and the parser.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Info, msg string, notes []Note)
}

// BagReporter adds everything it receives to Bag. A nil Bag discards.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Info, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

type seenKey struct {
	code Code
	sev  Severity
	at   source.Info
	msg  string
}

// DedupReporter forwards each distinct (code, severity, position, message)
// once. Recovery can make the parser report the same spot twice.
type DedupReporter struct {
	next Reporter
	seen map[seenKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[seenKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Info, msg string, notes []Note) {
	k := seenKey{code, sev, primary, msg}
	if _, dup := r.seen[k]; dup {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
