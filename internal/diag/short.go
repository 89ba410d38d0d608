package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"risp/internal/source"
)

// shortLine is one row of FormatShort output.
type shortLine struct {
	label     string
	code      string
	path      string
	line, col uint32
	msg       string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.msg)
}

// FormatShort renders one line per diagnostic, and per note when asked:
//
//	error SYN2006 src/main.risp:1:1 map expected key-value pair.
//
// Rows are sorted by path, position and code. Paths are relative to the
// FileSet base directory.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	rows := make([]shortLine, 0, len(diags))
	for _, d := range diags {
		code := d.Code.ID()
		rows = append(rows, newShortLine(fs, lowerSeverity(d.Severity), code, d.Primary, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rows = append(rows, newShortLine(fs, "note", code, n.At, n.Msg))
		}
	}
	slices.SortStableFunc(rows, func(a, b shortLine) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.code, b.code),
		)
	})
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return strings.Join(out, "\n")
}

func newShortLine(fs *source.FileSet, label, code string, at source.Info, msg string) shortLine {
	return shortLine{
		label: label,
		code:  code,
		path:  shortPath(fs, at.File),
		line:  at.Line,
		col:   at.Col,
		msg:   oneLine(msg),
	}
}

func shortPath(fs *source.FileSet, id source.FileID) string {
	if int(id) >= fs.Len() {
		return "<unknown>"
	}
	p := fs.Get(id).FormatPath("relative", fs.BaseDir())
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

func lowerSeverity(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "info"
}

// oneLine folds any line break into a space.
func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
