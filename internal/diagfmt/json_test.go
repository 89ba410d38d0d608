package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"risp/internal/diag"
	"risp/internal/source"
)

// TestJSONBasic проверяет базовое JSON форматирование
func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.risp", []byte("(def x\n  \"unterminated"))

	bag := diag.NewBag(10)
	bag.Add(diag.New(
		diag.SevError,
		diag.LexUnterminatedString,
		source.Info{File: fileID, Line: 2, Col: 3},
		"unterminated string literal",
	).WithNote(source.Info{File: fileID, Line: 1, Col: 1}, "form starts here"))

	var buf bytes.Buffer
	opts := JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
	}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("Invalid JSON output: %v\nOutput: %s", err, buf.String())
	}
	if output.Count != 1 || len(output.Diagnostics) != 1 {
		t.Fatalf("Expected 1 diagnostic, got %d/%d", output.Count, len(output.Diagnostics))
	}

	d := output.Diagnostics[0]
	if d.Severity != "ERROR" {
		t.Errorf("Expected severity=ERROR, got %s", d.Severity)
	}
	if d.Code != "LEX1002" {
		t.Errorf("Expected code=LEX1002, got %s", d.Code)
	}
	if d.Location != (LocationJSON{File: "test.risp", Line: 2, Col: 3}) {
		t.Errorf("unexpected location %+v", d.Location)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.Line != 1 {
		t.Errorf("unexpected notes %+v", d.Notes)
	}
}

// TestJSONWithoutPositions: без IncludePositions остаётся только файл
func TestJSONWithoutPositions(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("a.risp", []byte("]"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Info{File: fileID, Line: 1, Col: 1}, "unexpected ]").
		WithNote(source.Info{File: fileID, Line: 1, Col: 1}, "ignored"))

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	loc := out.Diagnostics[0].Location
	if loc.Line != 0 || loc.Col != 0 || loc.File != "a.risp" {
		t.Errorf("location = %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes were not requested: %+v", out.Diagnostics[0].Notes)
	}
}

// TestJSONMax проверяет обрезку вывода
func TestJSONMax(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("many.risp", []byte("] ] ] ]"))

	bag := diag.NewBag(10)
	for col := uint32(1); col <= 7; col += 2 {
		bag.Add(diag.NewError(diag.SynUnexpectedToken, source.Info{File: fileID, Line: 1, Col: col}, "unexpected ]"))
	}

	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 2, IncludePositions: true})
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	if out.Diagnostics[1].Location.Col != 3 {
		t.Errorf("second diagnostic col = %d", out.Diagnostics[1].Location.Col)
	}
}
