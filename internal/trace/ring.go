package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the newest events in memory for a dump after a failure.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	total  uint64 // events ever stored; total % len(events) is the next slot
	level  Level
}

// NewRingTracer keeps at most capacity events; capacity <= 0 means 4096.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	stored := *ev
	stored.stamp()

	t.mu.Lock()
	t.events[t.total%uint64(len(t.events))] = stored
	t.total++
	t.mu.Unlock()
}

// Snapshot copies the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := uint64(len(t.events))
	if t.total <= n {
		return append([]Event(nil), t.events[:t.total]...)
	}
	start := t.total % n
	out := make([]Event, 0, n)
	out = append(out, t.events[start:]...)
	return append(out, t.events[:start]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var line []byte
	for _, ev := range t.Snapshot() {
		if format == FormatNDJSON {
			line = appendNDJSON(line[:0], &ev)
		} else {
			line = appendText(line[:0], &ev)
		}
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
