package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"risp/internal/trace"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug", "DEBUG"} {
		lvl, err := trace.ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if !strings.EqualFold(lvl.String(), s) {
			t.Errorf("round trip of %q gave %q", s, lvl)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestStreamNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDetail, trace.FormatNDJSON)

	span := trace.Begin(tr, trace.ScopePass, "parse", 0)
	span.WithExtra("forms", "3").End("ok")
	// node events are filtered out at detail level
	trace.Begin(tr, trace.ScopeNode, "form", span.ID()).End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d events, want 2:\n%s", len(lines), buf.String())
	}
	var end struct {
		Kind   string            `json:"kind"`
		Name   string            `json:"name"`
		Detail string            `json:"detail"`
		Extra  map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &end); err != nil {
		t.Fatalf("bad NDJSON: %v", err)
	}
	if end.Kind != "end" || end.Name != "parse" || end.Detail != "ok" || end.Extra["forms"] != "3" {
		t.Errorf("unexpected end event: %+v", end)
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		ring.Emit(&trace.Event{Kind: trace.KindPoint, Scope: trace.ScopeNode, Name: name})
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot has %d events", len(snap))
	}
	if snap[0].Name != "c" || snap[2].Name != "e" {
		t.Errorf("unexpected order: %s..%s", snap[0].Name, snap[2].Name)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, trace.FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestContextFallsBackToNop(t *testing.T) {
	if trace.FromContext(context.Background()).Enabled() {
		t.Error("empty context must yield a disabled tracer")
	}
	tr := trace.NewRingTracer(8, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), tr)
	if trace.FromContext(ctx) != trace.Tracer(tr) {
		t.Error("tracer not propagated")
	}
}

func TestNewBothMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	trace.Begin(tr, trace.ScopeDriver, "risp parse", 0).End("")
	if !strings.Contains(buf.String(), "risp parse") {
		t.Errorf("stream side missed the event: %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestErrorLevelKeepsRingOnly(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelError, Mode: trace.ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ring, ok := tr.(*trace.RingTracer)
	if !ok {
		t.Fatalf("tracer = %T, want *RingTracer", tr)
	}
	trace.Begin(tr, trace.ScopePass, "parse", 0).End("failed")
	trace.Begin(tr, trace.ScopeNode, "form", 0).End("")
	if buf.Len() != 0 {
		t.Errorf("error level wrote eagerly: %q", buf.String())
	}
	if n := len(ring.Snapshot()); n != 2 {
		t.Errorf("ring holds %d events, want begin and end of the pass", n)
	}
}
