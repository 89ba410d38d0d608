package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"risp/internal/diag"
	"risp/internal/parser"
	"risp/internal/testkit"
)

// parseTimeout is far above any real parse; hitting it means a loop.
const parseTimeout = 5 * time.Second

// FuzzParserBuildsAST checks that a successful parse yields a well-formed
// tree and that failures are always *parser.Error.
func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clip(input))
		res := parser.ParseString(context.Background(), "fuzz.risp", src, parser.Options{
			Reporter: diag.BagReporter{Bag: diag.NewBag(128)},
		})
		defer func() { _ = res.Tree.Release() }()

		if res.Err != nil {
			var perr *parser.Error
			if !errors.As(res.Err, &perr) {
				t.Fatalf("unexpected error type %T: %v", res.Err, res.Err)
			}
			return
		}
		if err := testkit.CheckTreeInvariants(res.Tree, res.Root, res.File); err != nil {
			t.Fatalf("%v\ninput: %q", err, preview(src))
		}
	})
}

// FuzzParserNoHang runs each parse in a goroutine and fails if it outlives
// parseTimeout.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f, hangSeeds...)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clip(input))
		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parser.ParseString(ctx, "fuzz.risp", src, parser.Options{}).Tree.Release()
		}()
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parse still running after %v\ninput (%d bytes): %q", parseTimeout, len(src), preview(src))
		}
	})
}

func preview(s string) string {
	const n = 200
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
