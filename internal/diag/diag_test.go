package diag

import (
	"testing"

	"risp/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	main := fs.Add("/workspace/src/main.risp", []byte("{:a 1 :b}\n(def)\n"), 0)

	diags := []Diagnostic{
		NewError(SynDefName, source.Info{File: main, Line: 2, Col: 2}, "Def name must be a symbol."),
		NewError(SynOddMap, source.Info{File: main, Line: 1, Col: 1}, "map expected key-value pair.\n").
			WithNote(source.Info{File: main, Line: 1, Col: 8}, "unpaired key"),
	}

	want := "error SYN2006 src/main.risp:1:1 map expected key-value pair.\n" +
		"note SYN2006 src/main.risp:1:8 unpaired key\n" +
		"error SYN2011 src/main.risp:2:2 Def name must be a symbol."
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("unexpected short output:\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	r.Report(SynOddMap, SevError, source.Info{Line: 3, Col: 1}, "late", nil)
	r.Report(LexInvalidToken, SevWarning, source.Info{Line: 1, Col: 4}, "early", nil)
	r.Report(SynUnexpectedEOF, SevError, source.Info{Line: 9, Col: 9}, "dropped", nil)

	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (limit)", b.Len())
	}
	b.Sort()
	if got := b.Items()[0].Message; got != "early" {
		t.Errorf("first after sort = %q", got)
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected both errors and warnings")
	}
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: b})
	at := source.Info{Line: 1, Col: 1}
	r.Report(SynUnexpectedToken, SevError, at, "Invalid token.", nil)
	r.Report(SynUnexpectedToken, SevError, at, "Invalid token.", nil)
	r.Report(SynUnexpectedToken, SevWarning, at, "Invalid token.", nil)
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestMergeRaisesLimit(t *testing.T) {
	a, b := NewBag(1), NewBag(5)
	a.Add(NewError(SynOddMap, source.Info{Line: 1, Col: 1}, "a"))
	for i := range 3 {
		b.Add(NewError(SynOddMap, source.Info{Line: uint32(i + 2), Col: 1}, "b"))
	}
	a.Merge(b)
	a.Merge(nil)
	if a.Len() != 4 {
		t.Fatalf("Len = %d, want 4", a.Len())
	}
	if a.Add(NewError(SynOddMap, source.Info{}, "over")) {
		t.Error("merged bag accepted more than it holds")
	}
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(SynUnclosedParen, source.Info{Line: 1, Col: 1}, "unclosed")
	base = base.WithNote(source.Info{Line: 1, Col: 1}, "opened here")
	one := base.WithNote(source.Info{Line: 2, Col: 1}, "one")
	two := base.WithNote(source.Info{Line: 3, Col: 1}, "two")
	if one.Notes[1].Msg != "one" || two.Notes[1].Msg != "two" || len(base.Notes) != 1 {
		t.Errorf("notes shared storage: %v / %v", one.Notes, two.Notes)
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		LexInvalidToken: "LEX1001",
		SynOddMap:       "SYN2006",
		IOLoadFileError: "IO4001",
		ProjManifest:    "PRJ5001",
		ObsTimings:      "OBS6001",
		UnknownCode:     "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if SynOddMap.String() != "[SYN2006]: Map literal needs key-value pairs" {
		t.Errorf("String() = %q", SynOddMap.String())
	}
}
