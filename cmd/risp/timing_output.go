package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"risp/internal/observ"
	"risp/internal/trace"
)

// newCommandTimer returns a timer whose phases are also trace spans under
// the command span.
func newCommandTimer(cmd *cobra.Command) *observ.Timer {
	ctx := cmd.Context()
	return observ.NewTracedTimer(trace.FromContext(ctx), trace.CurrentSpan(ctx).SpanID)
}

func printTimings(st settings, timer *observ.Timer) {
	if !st.timings || timer == nil {
		return
	}
	fmt.Fprint(os.Stderr, timer.Summary())
}
