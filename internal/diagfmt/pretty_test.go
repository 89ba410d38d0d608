package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"risp/internal/diag"
	"risp/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("/home/user/project/src/test.risp", []byte("(def x \"unterminated string\n"))
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Info{File: fileID, Line: 1, Col: 8},
		"Unterminated string literal",
	))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{name: "Absolute path", mode: PathModeAbsolute, contains: "/home/user/project/src/test.risp:1:8"},
		{name: "Relative path", mode: PathModeRelative, contains: "src/test.risp:1:8"},
		{name: "Basename only", mode: PathModeBasename, contains: "test.risp:1:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	fs := source.NewFileSet()

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "Short path - as is", path: "test.risp", expected: "test.risp"},
		{name: "Long absolute path - basename", path: "/very/long/absolute/path/to/some/nested/directory/file.risp", expected: "file.risp:1:6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fileID := fs.AddVirtual(tt.path, []byte("(def x 42)\n"))
			bag := diag.NewBag(10)
			bag.Add(diag.New(diag.SevWarning, diag.LexInvalidToken, source.Info{File: fileID, Line: 1, Col: 6}, "Test warning"))

			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeAuto})
			output := buf.String()

			if !strings.Contains(output, tt.expected) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.expected, output)
			}
			if strings.Contains(output, "/very/") {
				t.Errorf("long path was not shortened:\n%s", output)
			}
		})
	}
}

func TestPrettyCaretAndNotes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.risp", []byte("(let [x 1\n      y])\n"))

	bag := diag.NewBag(4)
	d := diag.New(diag.SevError, diag.SynBindingNotSymbol, source.Info{File: fileID, Line: 2, Col: 7}, "binding needs a value")
	d = d.WithNote(source.Info{File: fileID, Line: 1, Col: 6}, "bindings start here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true})
	output := buf.String()

	want := "test.risp:2:7: ERROR SYN2010: binding needs a value\n" +
		"2 |       y])\n" +
		"  |       ^\n" +
		"  note: test.risp:1:6: bindings start here\n"
	if output != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", output, want)
	}
}

func TestPrettyHidesNotesByDefault(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.risp", []byte("x"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynUnexpectedEOF, source.Info{File: fileID, Line: 1, Col: 2}, "eof").
		WithNote(source.Info{File: fileID, Line: 1, Col: 1}, "hidden"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("note printed without ShowNotes:\n%s", buf.String())
	}
}

func TestCaretOffsetWideRunes(t *testing.T) {
	// 世 занимает две колонки терминала
	if got := caretOffset("(世 x)", 4); got != 4 {
		t.Errorf("caretOffset = %d, want 4", got)
	}
	if got := caretOffset("ab", 5); got != 4 {
		t.Errorf("caretOffset past end = %d, want 4", got)
	}
}
