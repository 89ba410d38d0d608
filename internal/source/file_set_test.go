package source

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestAddKeepsEveryVersion(t *testing.T) {
	fs := NewFileSet()
	first := fs.Add("lib/../core.risp", []byte("(def a 1)"), 0)
	second := fs.Add("core.risp", []byte("(def a 2)"), 0)

	if first != 0 || second != 1 {
		t.Fatalf("ids = %d, %d", first, second)
	}
	if latest, ok := fs.GetLatest("./core.risp"); !ok || latest != second {
		t.Errorf("GetLatest = %d, %v; want %d", latest, ok, second)
	}
	if got := string(fs.Get(first).Content); got != "(def a 1)" {
		t.Errorf("old version changed: %q", got)
	}
	if fs.Get(first).Path != fs.Get(second).Path {
		t.Error("both versions should share the normalized path")
	}
	if _, ok := fs.GetLatest("other.risp"); ok {
		t.Error("unknown path reported as present")
	}
}

func TestLineIndex(t *testing.T) {
	cases := map[string][]uint32{
		"":          {},
		"hello":     {},
		"\n":        {0},
		"a\nb\n":    {1, 3},
		"ab\n\ncd":  {2, 3},
		"x\r\ny\rz": {2},
	}
	for in, want := range cases {
		if got := lineIndex([]byte(in)); !slices.Equal(got, want) {
			t.Errorf("lineIndex(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeContent(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		flags FileFlags
	}{
		{"(+ 1 2)\n", "(+ 1 2)\n", 0},
		{"\xEF\xBB\xBFx\n", "x\n", FileHadBOM},
		{"a\r\nb\r\n", "a\nb\n", FileNormalizedCRLF},
		{"\xEF\xBB\xBFa\r\n", "a\n", FileHadBOM | FileNormalizedCRLF},
		{"lone\rcr", "lone\rcr", 0},
	}
	for _, tc := range cases {
		got, flags := normalizeContent([]byte(tc.in))
		if string(got) != tc.want || flags != tc.flags {
			t.Errorf("normalizeContent(%q) = %q, %b; want %q, %b", tc.in, got, flags, tc.want, tc.flags)
		}
	}
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.risp")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF(def x 1)\r\n(def y 2)\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "(def x 1)\n(def y 2)\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags != FileHadBOM|FileNormalizedCRLF {
		t.Errorf("flags = %b", f.Flags)
	}
	if !slices.Equal(f.LineIdx, []uint32{9, 19}) {
		t.Errorf("LineIdx = %v", f.LineIdx)
	}
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.risp")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("core.risp", []byte("(def x 1)\n\n(def y 2)")))
	want := []string{"", "(def x 1)", "", "(def y 2)", ""}
	for n, w := range want {
		if got := f.GetLine(uint32(n)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, w)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("AddVirtual must set FileVirtual")
	}
}

func TestFormatInfo(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("core.risp", []byte("(def x 1)\n(def y 2)\n"))

	info := Info{File: id, Line: 2, Col: 6}
	if got := fs.Format(info); got != "core.risp:2:6" {
		t.Errorf("Format = %q, want core.risp:2:6", got)
	}
	if got := fs.Format(Info{File: 9, Line: 1, Col: 1}); got != "1:1" {
		t.Errorf("Format of unknown file = %q", got)
	}
	if !(Info{Line: 1, Col: 9}).Before(info) {
		t.Error("1:9 should sort before 2:6")
	}
}

func TestFormatPath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")
	inside := &File{Path: normalizePath(filepath.Join(base, "nested", "file.risp"))}
	outside := &File{Path: normalizePath(filepath.Join(tmp, "other", "file.risp"))}

	if got := inside.FormatPath("relative", base); got != "nested/file.risp" {
		t.Errorf("relative inside base = %q", got)
	}
	if got := outside.FormatPath("relative", base); got != outside.Path {
		t.Errorf("relative outside base = %q, want absolute %q", got, outside.Path)
	}
	if got := inside.FormatPath("basename", ""); got != "file.risp" {
		t.Errorf("basename = %q", got)
	}
	short := &File{Path: "src/main.risp"}
	if got := short.FormatPath("auto", ""); got != "src/main.risp" {
		t.Errorf("auto kept short path as %q", got)
	}
	if got := short.FormatPath("bogus", ""); got != short.Path {
		t.Errorf("unknown mode = %q", got)
	}
}
