// Package diagfmt renders diagnostics as annotated source snippets for CLI
// output. It consumes the data model from internal/diag and never mutates
// it.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ngbuild/internal/diag"
	"ngbuild/internal/source"
)

// Renderer formats diagnostics with severity-colored headers and caret
// underlines.
type Renderer struct {
	// Colorize enables ANSI colors. Callers decide from TTY detection.
	Colorize bool
	// PathMode is passed to File.FormatPath ("relative", "absolute",
	// "basename", "auto"). Empty means "relative".
	PathMode string
}

var (
	severeColor  = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	anchorColor  = color.New(color.FgBlue)
)

func (r *Renderer) paint(c *color.Color, s string) string {
	if !r.Colorize {
		return s
	}
	return c.Sprint(s)
}

func (r *Renderer) severityLabel(sev diag.Severity) string {
	label := strings.ToLower(sev.String())
	switch sev {
	case diag.SevSevere:
		return r.paint(severeColor, label)
	case diag.SevWarning:
		return r.paint(warningColor, label)
	default:
		return r.paint(infoColor, label)
	}
}

// Render writes one diagnostic to w.
func (r *Renderer) Render(w io.Writer, fs *source.FileSet, d diag.Diagnostic) error {
	ew := &errWriter{w: w}

	// Header: "severe[ANN2001]: message".
	ew.printf("%s[%s]: %s\n", r.severityLabel(d.Severity), d.Code.ID(), d.Message)

	r.writeSpan(ew, fs, d.Primary, "")
	for _, note := range d.Notes {
		ew.printf("  %s note: %s\n", r.paint(anchorColor, "="), note.Msg)
		r.writeSpan(ew, fs, note.Span, "")
	}
	return ew.err
}

// RenderAll writes all diagnostics separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, fs, d); err != nil {
			return err
		}
	}
	return nil
}

// writeSpan emits the location line, the source line and a caret underline.
// Un-anchored spans are skipped silently.
func (r *Renderer) writeSpan(ew *errWriter, fs *source.FileSet, span source.Span, label string) {
	if fs == nil || !span.Anchored() {
		return
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)

	mode := r.PathMode
	if mode == "" {
		mode = "relative"
	}
	ew.printf("  %s %s:%d:%d\n",
		r.paint(anchorColor, "-->"), f.FormatPath(mode, fs.BaseDir()), start.Line, start.Col)

	line := f.GetLine(start.Line)
	if line == "" && span.Empty() {
		return
	}
	gutter := fmt.Sprintf("%4d", start.Line)
	ew.printf("%s | %s\n", gutter, line)

	// Caret width in display columns, bounded to the rendered line.
	head := sliceLine(line, 0, int(start.Col)-1)
	target := sliceLine(line, int(start.Col)-1, lineEndCol(start, end, line))
	pad := strings.Repeat(" ", runewidth.StringWidth(head))
	carets := strings.Repeat("^", max(1, runewidth.StringWidth(target)))
	underline := pad + r.paint(severeColor, carets)
	if label != "" {
		underline += " " + label
	}
	ew.printf("%s | %s\n", strings.Repeat(" ", len(gutter)), underline)
}

// lineEndCol clamps the end column to the start line: multi-line spans are
// underlined on their first line only.
func lineEndCol(start, end source.LineCol, line string) int {
	if end.Line != start.Line {
		return len(line)
	}
	return int(end.Col) - 1
}

func sliceLine(line string, from, to int) string {
	if from < 0 {
		from = 0
	}
	if to > len(line) {
		to = len(line)
	}
	if from >= to {
		return ""
	}
	return line[from:to]
}

// errWriter captures the first write error and short-circuits the rest.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}
