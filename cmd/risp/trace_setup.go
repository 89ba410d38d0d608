package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"risp/internal/trace"
)

// traceFlags holds the --trace* values.
type traceFlags struct {
	output   string
	level    string
	mode     string
	ringSize int
}

func readTraceFlags(cmd *cobra.Command) (traceFlags, error) {
	flags := cmd.Root().PersistentFlags()
	var tf traceFlags
	var err error
	if tf.output, err = flags.GetString("trace"); err != nil {
		return tf, err
	}
	if tf.level, err = flags.GetString("trace-level"); err != nil {
		return tf, err
	}
	if tf.mode, err = flags.GetString("trace-mode"); err != nil {
		return tf, err
	}
	tf.ringSize, err = flags.GetInt("trace-ring-size")
	return tf, err
}

// setupTracing installs the tracer and a driver-scope root span in the
// command context. The returned cleanup closes both; when the command failed
// a ring tracer is dumped to stderr first.
func setupTracing(cmd *cobra.Command) (func(failed bool), error) {
	tf, err := readTraceFlags(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace flags: %w", err)
	}
	level, err := trace.ParseLevel(tf.level)
	if err != nil {
		return nil, err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && tf.output != "" {
		level = trace.LevelPhase
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(ctx, trace.Nop))
		return func(bool) {}, nil
	}

	mode, err := trace.ParseMode(tf.mode)
	if err != nil {
		return nil, err
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: tf.output,
		RingSize:   tf.ringSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	span := trace.Begin(tracer, trace.ScopeDriver, cmd.CommandPath(), 0)
	ctx = trace.WithTracer(ctx, tracer)
	cmd.SetContext(trace.WithSpanContext(ctx, trace.SpanContext{SpanID: span.ID()}))

	stderr := cmd.ErrOrStderr()
	var once sync.Once
	return func(failed bool) {
		once.Do(func() {
			span.End("")
			if ring, ok := tracer.(*trace.RingTracer); ok && failed {
				fmt.Fprintln(stderr, "trace: last events before failure")
				if err := ring.Dump(stderr, trace.FormatText); err != nil {
					fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
				}
			}
			if err := tracer.Close(); err != nil {
				fmt.Fprintf(stderr, "trace: close error: %v\n", err)
			}
		})
	}, nil
}
