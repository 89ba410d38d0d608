package driver

import (
	"context"
	"errors"
	"strconv"

	"risp/internal/ast"
	"risp/internal/diag"
	"risp/internal/observ"
	"risp/internal/parser"
	"risp/internal/source"
	"risp/internal/trace"
	"risp/internal/zone"
)

// ParseResult is the outcome of parsing one file. Tree stays valid until
// Release. A syntax error is reported into Bag and kept in Err.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree
	Root    ast.NodeID
	Bag     *diag.Bag
	Err     *parser.Error
	Timing  observ.Report
}

// Release frees the tree's zone.
func (r *ParseResult) Release() error {
	if r == nil || r.Tree == nil {
		return nil
	}
	return r.Tree.Release()
}

// Forms counts the completed top-level forms.
func (r *ParseResult) Forms() int {
	if r == nil || r.Tree == nil || !r.Root.IsValid() {
		return 0
	}
	return r.Tree.ChildCount(r.Root)
}

// Parse loads path and parses it. The returned error covers I/O and
// cancellation only.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fileID, opts)
}

// ParseSource parses an in-memory module under name.
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	return parseLoaded(ctx, fs, fs.AddVirtual(name, src), opts)
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) (*ParseResult, error) {
	tracer := opts.tracer(ctx)
	ph := &phases{timer: observ.NewTracedTimer(tracer, trace.CurrentSpan(ctx).SpanID), observe: opts.OnPhase}
	file := fs.Get(fileID)

	bag := diag.NewBag(opts.maxDiagnostics())
	// сканер и парсер сообщают об одной и той же плохой лексеме
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: bag})
	tree := ast.NewTree(zone.WithTracer(tracer))

	idx := ph.begin("parse")
	res := parser.ParseFile(ctx, fs, fileID, tree, parser.Options{Reporter: reporter, Tracer: tracer})
	out := &ParseResult{
		FileSet: fs,
		File:    file,
		Tree:    tree,
		Root:    res.Root,
		Bag:     bag,
	}
	ph.end(idx, strconv.Itoa(out.Forms())+" forms")

	if res.Err != nil {
		var perr *parser.Error
		if !errors.As(res.Err, &perr) {
			_ = tree.Release()
			return nil, res.Err
		}
		out.Err = perr
		reporter.Report(perr.Code, diag.SevError, perr.Token.Info, perr.Message, nil)
	}

	out.Timing = ph.timer.Report()
	if opts.Timings {
		newTimingNote("parse", file.Path, out.Timing).attach(bag, fileID)
	}
	return out, nil
}
