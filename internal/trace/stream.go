package trace

import (
	"io"
	"sync"
)

// StreamTracer writes every event as soon as it is emitted. Write errors are
// dropped: tracing never fails a parse.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer // set when the tracer owns w
	level  Level
	format Format
	buf    []byte
}

// NewStreamTracer writes to w, which the caller keeps ownership of.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) {
		return
	}
	ev.stamp()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.format == FormatNDJSON {
		t.buf = appendNDJSON(t.buf[:0], ev)
	} else {
		t.buf = appendText(t.buf[:0], ev)
	}
	_, _ = t.w.Write(t.buf)
}

// Flush forwards to w when it buffers.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w if the tracer opened it.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.closer == nil {
		return nil
	}
	err := t.closer.Close()
	t.closer = nil
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
