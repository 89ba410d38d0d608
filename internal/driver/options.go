// Package driver wires loading, scanning, parsing and caching into the
// pipelines the CLI runs.
package driver

import (
	"context"

	"risp/internal/trace"
)

// DefaultMaxDiagnostics bounds each bag when the caller passes zero.
const DefaultMaxDiagnostics = 100

// Options are shared by Tokenize, Parse and ParseDir.
type Options struct {
	MaxDiagnostics int
	Tracer         trace.Tracer // nil means the tracer carried by ctx
	Timings        bool         // добавить OBS6001 с разбивкой по фазам
	OnPhase        PhaseObserver
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o Options) tracer(ctx context.Context) trace.Tracer {
	if o.Tracer != nil {
		return o.Tracer
	}
	return trace.FromContext(ctx)
}
