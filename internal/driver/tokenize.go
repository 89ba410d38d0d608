package driver

import (
	"context"
	"strconv"

	"risp/internal/diag"
	"risp/internal/lexer"
	"risp/internal/literal"
	"risp/internal/observ"
	"risp/internal/source"
	"risp/internal/token"
	"risp/internal/trace"
	"risp/internal/zone"
)

// TokenizeResult holds every token of one file. Literals lives in a zone
// owned by the result; call Release once the tokens are no longer needed.
type TokenizeResult struct {
	FileSet  *source.FileSet
	File     *source.File
	Tokens   []token.Token
	Literals *literal.Buffer
	Bag      *diag.Bag
	Timing   observ.Report

	zone *zone.Zone
}

// Release unmaps the literal storage.
func (r *TokenizeResult) Release() error {
	if r == nil || r.zone == nil {
		return nil
	}
	return r.zone.Destroy()
}

// Text returns the source text of tok.
func (r *TokenizeResult) Text(tok token.Token) string {
	if tok.Literal == literal.None {
		return ""
	}
	return r.Literals.Find(tok.Literal)
}

// Tokenize loads path and scans it to Eof.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := opts.tracer(ctx)
	ph := &phases{timer: observ.NewTracedTimer(tracer, trace.CurrentSpan(ctx).SpanID), observe: opts.OnPhase}

	load := ph.begin("load")
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		ph.end(load, "failed")
		return nil, err
	}
	file := fs.Get(fileID)
	ph.end(load, strconv.Itoa(len(file.Content))+" bytes")

	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.BagReporter{Bag: bag}
	z := zone.New(zone.WithTracer(tracer))
	lits := literal.New(z)

	scan := ph.begin("scan")
	sc := lexer.New(file, lits, lexer.Options{Reporter: reporter, Tracer: tracer})
	tokens := sc.All()
	ph.end(scan, strconv.Itoa(len(tokens))+" tokens")

	res := &TokenizeResult{
		FileSet:  fs,
		File:     file,
		Tokens:   tokens,
		Literals: lits,
		Bag:      bag,
		Timing:   ph.timer.Report(),
		zone:     z,
	}
	if opts.Timings {
		newTimingNote("tokenize", file.Path, res.Timing).attach(bag, fileID)
	}
	return res, nil
}
