package observ

import (
	"fmt"
	"strings"
	"time"

	"risp/internal/trace"
)

// Phase is one measured step of a command: scan, parse, print.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer measures phases in order. With a tracer attached each phase is
// mirrored as a pass-scope span.
type Timer struct {
	phases []Phase
	open   []*trace.Span // nil once the phase has ended
	tracer trace.Tracer
	parent uint64
}

// NewTimer measures without tracing.
func NewTimer() *Timer { return NewTracedTimer(trace.Nop, 0) }

// NewTracedTimer nests phase spans under parent.
func NewTracedTimer(t trace.Tracer, parent uint64) *Timer {
	if t == nil {
		t = trace.Nop
	}
	return &Timer{tracer: t, parent: parent}
}

// Begin starts a phase and returns the handle End takes.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	t.open = append(t.open, trace.Begin(t.tracer, trace.ScopePass, name, t.parent))
	return len(t.phases) - 1
}

// End closes phase idx. Unknown or already closed handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.open) || t.open[idx] == nil {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Note = time.Since(p.Start), note
	t.open[idx].End(note)
	t.open[idx] = nil
}

// Phases returns a copy of the recorded phases.
func (t *Timer) Phases() []Phase {
	return append([]Phase(nil), t.phases...)
}

// Summary renders the phases as an aligned table ending in a total row.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, ms float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, ms)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

// PhaseReport is the serialisable view of a Phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report is the whole timer in milliseconds.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report sums the phases; an empty timer gives the zero Report.
func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

func millis(d time.Duration) float64 {
	return d.Seconds() * 1e3
}
