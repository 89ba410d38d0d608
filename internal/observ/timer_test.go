package observ_test

import (
	"strings"
	"testing"

	"risp/internal/observ"
	"risp/internal/trace"
)

type recordTracer struct {
	events []*trace.Event
}

func (r *recordTracer) Emit(ev *trace.Event) { r.events = append(r.events, ev) }
func (r *recordTracer) Flush() error        { return nil }
func (r *recordTracer) Close() error        { return nil }
func (r *recordTracer) Level() trace.Level  { return trace.LevelDebug }
func (r *recordTracer) Enabled() bool       { return true }

func TestTimerReport(t *testing.T) {
	tm := observ.NewTimer()
	scan := tm.Begin("scan")
	tm.End(scan, "12 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(-1, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].Name != "scan" || r.Phases[0].Note != "12 tokens" {
		t.Errorf("first phase = %+v", r.Phases[0])
	}
	if r.TotalMS < r.Phases[0].DurationMS {
		t.Errorf("total %.3f below a phase %.3f", r.TotalMS, r.Phases[0].DurationMS)
	}
	if s := tm.Summary(); !strings.Contains(s, "scan") || !strings.Contains(s, "total") {
		t.Errorf("summary:\n%s", s)
	}
}

func TestTracedTimerEmitsSpans(t *testing.T) {
	rec := &recordTracer{}
	tm := observ.NewTracedTimer(rec, 0)
	idx := tm.Begin("parse")
	tm.End(idx, "done")
	tm.End(idx, "again")

	var names []string
	for _, ev := range rec.events {
		names = append(names, ev.Kind.String()+":"+ev.Name)
	}
	if len(rec.events) != 2 {
		t.Fatalf("events = %v", names)
	}
	if tm.Phases()[0].Note != "done" {
		t.Errorf("second End overwrote the note: %q", tm.Phases()[0].Note)
	}
}
