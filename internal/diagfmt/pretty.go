package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"named/internal/diag"
	"named/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	code  *color.Color
	gut   *color.Color
	caret *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:  color.New(color.Bold),
		gut:   color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.code, p.gut, p.caret, p.note, p.sev[diag.SevError], p.sev[diag.SevWarning], p.sev[diag.SevInfo]} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   3 |   source line
//	     |   ^~~~
//	  note: <path>:<line>:<col>: <msg>
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}
	var sb strings.Builder
	for _, d := range items {
		sev := pal.sev[d.Severity]
		if sev == nil {
			sev = pal.code
		}
		fmt.Fprintf(&sb, "%s: %s %s: %s\n",
			location(fs, d.Primary, opts.PathMode), sev.Sprint(d.Severity.String()),
			pal.code.Sprint(d.Code.ID()), d.Message)
		writeSnippet(&sb, fs, d.Primary, pal)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(&sb, "  %s %s: %s\n", pal.note.Sprint("note:"), location(fs, n.Span, opts.PathMode), n.Msg)
			}
		}
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		fmt.Fprintf(&sb, "... and %d more\n", hidden)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// writeSnippet prints the first line of sp with a caret run under it.
// Columns are measured in display cells so wide runes keep the caret aligned.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, pal palette) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := f.Line(start.Line)
	if line == "" && start.Col == 1 {
		return
	}
	num := itoa(start.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, " %s %s %s\n", pal.gut.Sprint(num), pal.gut.Sprint("|"), expandTabs(line))

	col := clampCol(int(start.Col)-1, len(line))
	last := len(line)
	if end.Line == start.Line {
		last = clampCol(int(end.Col)-1, len(line))
	}
	lead := runewidth.StringWidth(expandTabs(line[:col]))
	width := max(runewidth.StringWidth(expandTabs(line[col:last])), 1)
	marks := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(sb, " %s %s %s%s\n", pad, pal.gut.Sprint("|"), strings.Repeat(" ", lead), pal.caret.Sprint(marks))
}

// Short prints one line per diagnostic.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, mode PathMode) error {
	var sb strings.Builder
	for _, d := range bag.Items() {
		fmt.Fprintf(&sb, "%s: %s %s: %s\n", location(fs, d.Primary, mode), d.Severity, d.Code.ID(), d.Message)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func expandTabs(s string) string { return strings.ReplaceAll(s, "\t", "    ") }

func clampCol(c, n int) int {
	if c < 0 {
		return 0
	}
	if c > n {
		return n
	}
	return c
}

func itoa(n uint32) string { return strconv.FormatUint(uint64(n), 10) }
