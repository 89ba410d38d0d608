package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"risp/internal/diag"
	"risp/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		code:   mk(color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с кареткой под колонкой, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(location(fs, d.Primary, opts.PathMode)),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()),
			d.Message,
		)
		if f := fs.Get(d.Primary.File); f != nil && d.Primary.Line > 0 {
			writeContext(w, f, d.Primary, opts.Context, pal)
		}
		if !opts.ShowNotes && d.Code != diag.ObsTimings {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.At, opts.PathMode), n.Msg)
		}
	}
}

func location(fs *source.FileSet, at source.Info, mode PathMode) string {
	f := fs.Get(at.File)
	if f == nil {
		return at.String()
	}
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), at.Line, at.Col)
}

func writeContext(w io.Writer, f *source.File, at source.Info, context int8, pal palette) {
	ctx := uint32(max(context, 0))
	first := at.Line - min(at.Line-1, ctx)
	last := at.Line + ctx
	gutterWidth := len(strconv.FormatUint(uint64(last), 10))

	for n := first; n <= last; n++ {
		line := strings.ReplaceAll(strings.TrimRight(f.GetLine(n), "\r"), "\t", " ")
		if n > at.Line && line == "" {
			break
		}
		num := fmt.Sprintf("%*d |", gutterWidth, n)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprint(num), line)
		if n == at.Line {
			pad := strings.Repeat(" ", gutterWidth)
			fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprint(pad+" |"), strings.Repeat(" ", caretOffset(line, at.Col)), pal.caret.Sprint("^"))
		}
	}
}

// caretOffset переводит колонку в рунах в экранную ширину.
func caretOffset(line string, col uint32) int {
	if col <= 1 {
		return 0
	}
	runes := []rune(line)
	n := min(int(col-1), len(runes))
	prefix := string(runes[:n])
	return runewidth.StringWidth(prefix) + int(col-1) - n
}
