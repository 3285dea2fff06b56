package diagfmt

import (
	"encoding/json"
	"io"

	"ngbuild/internal/diag"
	"ngbuild/internal/source"
)

// LocationJSON is a resolved file location.
type LocationJSON struct {
	File      string `json:"file,omitempty"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON is a secondary note attached to a diagnostic.
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON is one diagnostic in machine-readable form.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root of the JSON report.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Total       int              `json:"total"`
	Severe      int              `json:"severe"`
}

// JSON writes the whole bag as an indented JSON report. The bag should be
// sorted by the caller for deterministic output.
func JSON(w io.Writer, fs *source.FileSet, diags []diag.Diagnostic) error {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(diags)),
	}
	for _, d := range diags {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
			Location: locationJSON(fs, d.Primary),
		}
		for _, note := range d.Notes {
			dj.Notes = append(dj.Notes, NoteJSON{
				Message:  note.Msg,
				Location: locationJSON(fs, note.Span),
			})
		}
		out.Diagnostics = append(out.Diagnostics, dj)
		out.Total++
		if d.Severity >= diag.SevSevere {
			out.Severe++
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func locationJSON(fs *source.FileSet, span source.Span) LocationJSON {
	if fs == nil || !span.Anchored() {
		return LocationJSON{}
	}
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	return LocationJSON{
		File:      f.FormatPath("relative", fs.BaseDir()),
		StartByte: span.Start,
		EndByte:   span.End,
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}
