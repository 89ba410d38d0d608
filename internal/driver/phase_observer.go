package driver

import (
	"time"

	"risp/internal/observ"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a front-end phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Tokenize and Parse.
type PhaseObserver func(PhaseEvent)

// phases pairs the timer with the optional observer.
type phases struct {
	timer   *observ.Timer
	observe PhaseObserver
}

func (p *phases) begin(name string) int {
	if p.observe != nil {
		p.observe(PhaseEvent{Name: name, Status: PhaseStart})
	}
	return p.timer.Begin(name)
}

func (p *phases) end(idx int, note string) {
	p.timer.End(idx, note)
	if p.observe == nil {
		return
	}
	ph := p.timer.Phases()[idx]
	p.observe(PhaseEvent{Name: ph.Name, Status: PhaseEnd, Elapsed: ph.Dur})
}
