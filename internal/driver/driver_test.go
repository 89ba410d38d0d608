package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"risp/internal/diag"
	"risp/internal/token"
)

func writeModule(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestParseSourceOK(t *testing.T) {
	res, err := ParseSource(context.Background(), "ok.risp", []byte("(def x 1)\n(def y x)"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Release() }()

	if res.Err != nil || res.Bag.Len() != 0 {
		t.Fatalf("unexpected errors: %v %v", res.Err, codes(res.Bag))
	}
	if res.Forms() != 2 {
		t.Errorf("Forms = %d, want 2", res.Forms())
	}
}

func TestParseSourceSyntaxError(t *testing.T) {
	res, err := ParseSource(context.Background(), "bad.risp", []byte("(def x (f a"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Release() }()

	if res.Err == nil {
		t.Fatal("expected a syntax error")
	}
	if diff := cmp.Diff([]string{"SYN2003"}, codes(res.Bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestParseDeduplicatesLexicalError(t *testing.T) {
	res, err := ParseSource(context.Background(), "str.risp", []byte(`(f "abc`), Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Release() }()

	if diff := cmp.Diff([]string{"LEX1002"}, codes(res.Bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
	d := res.Bag.Items()[0]
	if d.Primary.Line != 1 || d.Primary.Col != 4 {
		t.Errorf("position = %s", d.Primary)
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ParseSource(ctx, "c.risp", []byte("(a) (b)"), Options{}); err == nil {
		t.Fatal("expected the context error")
	}
}

func TestParseTimingsAndPhases(t *testing.T) {
	var events []PhaseEvent
	opts := Options{Timings: true, OnPhase: func(ev PhaseEvent) { events = append(events, ev) }}
	res, err := ParseSource(context.Background(), "t.risp", []byte("(x)"), opts)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Release() }()

	if diff := cmp.Diff([]string{"OBS6001"}, codes(res.Bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
	if len(events) != 2 || events[0].Status != PhaseStart || events[1].Status != PhaseEnd || events[1].Name != "parse" {
		t.Errorf("phase events = %+v", events)
	}
	if len(res.Timing.Phases) != 1 {
		t.Errorf("timing phases = %+v", res.Timing.Phases)
	}
}

func TestTokenizeFile(t *testing.T) {
	path := writeModule(t, t.TempDir(), "tok.risp", "(def x :k)\n#")
	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = res.Release() }()

	var kinds []token.Kind
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	want := []token.Kind{token.LeftParen, token.Symbol, token.Symbol, token.Keyword, token.RightParen, token.Invalid, token.Eof}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	if got := res.Text(res.Tokens[3]); got != ":k" {
		t.Errorf("keyword text = %q", got)
	}
	if diff := cmp.Diff([]string{"LEX1001"}, codes(res.Bag)); diff != "" {
		t.Errorf("codes (-want +got):\n%s", diff)
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.risp"), Options{}); err == nil {
		t.Fatal("expected a load error")
	}
}

type recordSink struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordSink) OnEvent(ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *recordSink) final() map[string]Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]Status)
	for _, ev := range r.events {
		out[filepath.Base(ev.File)] = ev.Status
	}
	return out
}

func TestParseDirWithCache(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.risp", "(def a 1)")
	writeModule(t, dir, "sub/b.risp", "(let [x] x)")
	writeModule(t, dir, ".hidden/c.risp", "(")
	writeModule(t, dir, "notes.txt", "(")

	disk, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}

	run := func() []FileResult {
		sink := &recordSink{}
		opts := DirOptions{Jobs: 2, Cache: NewModuleCache(4, disk), Progress: sink}
		_, results, err := ParseDir(context.Background(), dir, opts)
		if err != nil {
			t.Fatal(err)
		}
		want := map[string]Status{"a.risp": StatusDone, "b.risp": StatusError}
		if diff := cmp.Diff(want, sink.final()); diff != "" {
			t.Errorf("final statuses (-want +got):\n%s", diff)
		}
		return results
	}

	first := run()
	if len(first) != 2 {
		t.Fatalf("results = %d, want 2", len(first))
	}
	if first[0].Cached || first[1].Cached {
		t.Error("cold run reported cache hits")
	}
	if diff := cmp.Diff([]string{"SYN2010"}, codes(first[1].Bag)); diff != "" {
		t.Errorf("b.risp codes (-want +got):\n%s", diff)
	}

	second := run()
	for i, r := range second {
		if !r.Cached {
			t.Errorf("%s was parsed again", r.Path)
		}
		if r.Forms != first[i].Forms || r.Nodes != first[i].Nodes {
			t.Errorf("%s: cached counts %d/%d, want %d/%d", r.Path, r.Forms, r.Nodes, first[i].Forms, first[i].Nodes)
		}
		if diff := cmp.Diff(codes(first[i].Bag), codes(r.Bag)); diff != "" {
			t.Errorf("%s replayed codes differ:\n%s", r.Path, diff)
		}
	}
	if got := second[1].Bag.Items()[0].Primary; got.File != second[1].FileID || got.Line != 1 || got.Col != 7 {
		t.Errorf("replayed position = %+v", got)
	}
}

func TestParseDirKeepTrees(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "m.risp", "[1 2 3]")

	_, results, err := ParseDir(context.Background(), dir, DirOptions{KeepTrees: true})
	if err != nil {
		t.Fatal(err)
	}
	r := results[0]
	defer func() { _ = r.Release() }()
	if r.Tree == nil || !r.Root.IsValid() {
		t.Fatal("tree was not kept")
	}
	if r.Tree.ChildCount(r.Root) != 1 {
		t.Errorf("forms = %d", r.Tree.ChildCount(r.Root))
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	c, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := cacheKey([]byte("(x)"))
	in := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        "x.risp",
		ContentHash: key,
		Forms:       1,
		Diagnostics: []CachedDiagnostic{{Severity: uint8(diag.SevError), Code: uint16(diag.SynOddMap), Message: "m", Line: 1, Col: 2}},
	}
	if err := c.Put(key, in); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	hit, err := c.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if diff := cmp.Diff(*in, out); diff != "" {
		t.Errorf("payload (-want +got):\n%s", diff)
	}

	if hit, _ := c.Get(cacheKey([]byte("(y)")), &out); hit {
		t.Error("hit for an unknown key")
	}
	if err := c.DropAll(); err != nil {
		t.Fatal(err)
	}
	if hit, _ := c.Get(key, &out); hit {
		t.Error("hit after DropAll")
	}
}
