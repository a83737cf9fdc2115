package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pinecheck/internal/diag"
	"pinecheck/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
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
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprintf("%s:%d:%d", formatPath(f, fs, opts.PathMode), start.Line, start.Col),
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message,
		)
		writeSnippet(w, f, d.Primary, opts, pal)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				ns, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
					pal.note.Sprint("note:"),
					formatPath(fs.Get(n.Span.File), fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
			}
		}
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "%s %d more diagnostic(s) not shown (limit %d)\n", pal.note.Sprint("note:"), n, bag.Cap())
	}
}

// writeSnippet prints the context lines and the caret line under span.
func writeSnippet(w io.Writer, f *source.File, span source.Span, opts PrettyOpts, pal palette) {
	if f == nil || len(f.Content) == 0 {
		return
	}
	rng := f.RangeOf(span)
	row := rng.Start.Row
	first := row
	if opts.Context > 0 {
		ctx := uint32(opts.Context) // #nosec G115 -- Context > 0
		if ctx > first {
			first = 0
		} else {
			first -= ctx
		}
	}
	gw := len(fmt.Sprint(row + 1))
	for r := first; r <= row; r++ {
		line := f.GetLine(r + 1)
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, r+1), clip(line, opts.Width))
	}

	line := f.GetLine(row + 1)
	startCol := min(int(rng.Start.Column), len(line))
	endCol := len(line)
	if rng.End.Row == row {
		endCol = min(int(rng.End.Column), len(line))
	}
	pad := caretPadding(line[:startCol])
	width := max(runewidth.StringWidth(line[startCol:endCol]), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), pad, pal.caret.Sprint(marks))
}

// caretPadding keeps tabs so the caret lines up with the echoed source line.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
