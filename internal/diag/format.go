package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"ngbuild/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShort renders diagnostics into a stable, single-line-per-entry
// representation suitable for terse CLI output and golden comparisons in
// tests. Entries are sorted deterministically; diagnostics whose span cannot
// be resolved against fs are rendered without a location.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		rendered = appendShort(rendered, d, fs, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		if di.Code != dj.Code {
			return di.Code < dj.Code
		}
		return di.Message < dj.Message
	})

	var b strings.Builder
	for i, d := range rendered {
		if d.Path == "" {
			fmt.Fprintf(&b, "%s %s %s", d.Severity, d.Code, d.Message)
		} else {
			fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendShort(out []shortDiagnostic, d Diagnostic, fs *source.FileSet, includeNotes bool) []shortDiagnostic {
	loc, _ := resolveSpan(fs, d.Primary)
	out = append(out, shortDiagnostic{
		Severity: strings.ToLower(d.Severity.String()),
		Code:     d.Code.ID(),
		Path:     loc.Path,
		Line:     loc.Line,
		Column:   loc.Column,
		Message:  sanitizeMessage(d.Message),
	})

	if includeNotes {
		for _, note := range d.Notes {
			nloc, ok := resolveSpan(fs, note.Span)
			if !ok {
				continue
			}
			out = append(out, shortDiagnostic{
				Severity: "note",
				Code:     d.Code.ID(),
				Path:     nloc.Path,
				Line:     nloc.Line,
				Column:   nloc.Column,
				Message:  sanitizeMessage(note.Msg),
			})
		}
	}

	return out
}

type resolvedSpan struct {
	Path   string
	Line   uint32
	Column uint32
}

// resolveSpan tolerates spans referring to files outside fs: bad file IDs
// produce an un-located entry instead of a panic.
func resolveSpan(fs *source.FileSet, span source.Span) (loc resolvedSpan, ok bool) {
	defer func() {
		if recover() != nil {
			loc = resolvedSpan{}
			ok = false
		}
	}()

	if fs == nil || !span.Anchored() {
		return resolvedSpan{}, false
	}

	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return resolvedSpan{
		Path:   cleanPath(file.FormatPath("relative", fs.BaseDir())),
		Line:   start.Line,
		Column: start.Col,
	}, true
}

func cleanPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
