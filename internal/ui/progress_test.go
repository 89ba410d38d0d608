package ui

import (
	"strings"
	"testing"

	"risp/internal/driver"
)

func TestProgressModelTracksFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("check", []string{"a.risp", "b.risp"}, events).(*progressModel)

	m.applyEvent(driver.Event{File: "a.risp", Stage: driver.StageParse, Status: driver.StatusWorking})
	m.applyEvent(driver.Event{File: "b.risp", Stage: driver.StageParse, Status: driver.StatusError})
	m.applyEvent(driver.Event{File: "unknown.risp", Stage: driver.StageParse, Status: driver.StatusDone})

	if m.items[0].status != "parsing" || m.items[1].status != "error" {
		t.Fatalf("statuses = %q, %q", m.items[0].status, m.items[1].status)
	}
	if got := m.percent(); got != 0.75 {
		t.Errorf("percent = %v, want 0.75", got)
	}

	view := m.View()
	for _, want := range []string{"check", "a.risp", "b.risp", "parsing", "error"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelQuitsWhenEventsClose(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("check", []string{"a.risp"}, events).(*progressModel)

	msg := m.listenForEvent()()
	if _, ok := msg.(doneMsg); !ok {
		t.Fatalf("msg = %T, want doneMsg", msg)
	}
	m.Update(msg)
	if !m.done {
		t.Error("model not done after the channel closed")
	}
}

func TestTruncateWide(t *testing.T) {
	if got := truncate("src/модуль/очень-длинное-имя.risp", 12); !strings.HasSuffix(got, "...") {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a.risp", 12); got != "a.risp" {
		t.Errorf("short value changed: %q", got)
	}
}
