package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fwlint/internal/diag"
	"fwlint/internal/source"
)

// строки исходника длиннее этого обрезаются, если Width не задан
const defaultSnippetWidth = 120

const (
	clearBanner = "No errors found 🥳. \nThe scripts will still need to be manually checked through a demo."
	tabWidth    = 4
)

type palette struct {
	err, warn, info *color.Color
	code, path      *color.Color
	gutter, note    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
//
//	<path>:<line>: <SEV> <CODE> [rule]: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Primary и заметки.
// Порядок сохраняется: он совпадает с порядком каталога.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)

	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeHeader(w, p, d, fs, opts)

		if fs != nil && !d.Primary.Empty() && int(d.Primary.File) < fs.Len() {
			writeSnippet(w, p, d, fs, opts)
		}

		if opts.ShowNotes || d.Code == diag.ObsTimings {
			for _, note := range d.Notes {
				path := formatPath(fs, note.Span.File, opts.PathMode)
				fmt.Fprintf(w, "  %s %s:%d: %s\n", p.note.Sprint("note:"), path, note.Line, note.Msg)
			}
		}
	}

	if opts.Summary {
		if len(diags) > 0 {
			fmt.Fprintln(w)
		}
		Summary(w, diags, opts.Color)
	}
}

// Summary prints the closing line of a pretty report. Info diagnostics
// (timings) are not counted.
func Summary(w io.Writer, diags []diag.Diagnostic, colored bool) {
	n := 0
	for _, d := range diags {
		if d.Severity > diag.SevInfo {
			n++
		}
	}
	if n == 0 {
		fmt.Fprintln(w, clearBanner)
		return
	}
	p := newPalette(colored)
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	fmt.Fprintln(w, p.err.Sprintf("Found %d %s", n, noun))
}

func writeHeader(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	path := formatPath(fs, d.Primary.File, opts.PathMode)
	line := d.Line
	if line <= 0 {
		line = 1
	}
	loc := path + ":" + strconv.Itoa(line)

	msg := d.Message
	if opts.Width > 0 {
		// ширина считается по тексту без цвета
		plain := fmt.Sprintf("%s: %s %s: ", loc, d.Severity, d.Code.ID())
		if d.Rule != "" {
			plain += "[" + d.Rule + "] "
		}
		if room := opts.Width - runewidth.StringWidth(plain); room > 0 {
			msg = runewidth.Truncate(msg, room, "…")
		}
	}

	var b strings.Builder
	b.WriteString(p.path.Sprint(loc))
	b.WriteString(": ")
	b.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	b.WriteByte(' ')
	b.WriteString(p.code.Sprint(d.Code.ID()))
	if d.Rule != "" {
		b.WriteString(" [" + d.Rule + "]")
	}
	b.WriteString(": ")
	b.WriteString(msg)
	fmt.Fprintln(w, b.String())
}

func writeSnippet(w io.Writer, p palette, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	file := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	text := file.GetLine(start.Line)
	if strings.TrimSpace(text) == "" {
		return
	}
	text = strings.TrimRight(text, "\r")

	startByte := min(int(start.Col)-1, len(text))
	endByte := len(text)
	if end.Line == start.Line {
		endByte = min(int(end.Col)-1, len(text))
	}
	if endByte <= startByte {
		endByte = min(startByte+1, len(text))
	}

	shown := expandTabs(text)
	pad := runewidth.StringWidth(expandTabs(text[:startByte]))
	span := max(runewidth.StringWidth(expandTabs(text[:endByte]))-pad, 1)

	limit := opts.Width
	if limit <= 0 {
		limit = defaultSnippetWidth
	}
	if runewidth.StringWidth(shown) > limit {
		shown = runewidth.Truncate(shown, limit, "…")
		if pad >= limit {
			// подчёркивать нечего, начало за пределами показанного
			pad, span = limit-1, 1
		} else if pad+span > limit {
			span = limit - pad
		}
	}

	num := strconv.FormatUint(uint64(start.Line), 10)
	gutter := strings.Repeat(" ", len(num))
	fmt.Fprintf(w, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), shown)
	caret := "^" + strings.Repeat("~", span-1)
	fmt.Fprintf(w, " %s %s %s%s\n", gutter, p.gutter.Sprint("|"), strings.Repeat(" ", pad), p.severity(d.Severity).Sprint(caret))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
