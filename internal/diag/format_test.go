package diag

import (
	"strings"
	"testing"

	"ngbuild/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSetWithBase(".")
	id := fs.AddVirtual("app/hello.tpl", []byte("line one\n@Component\n"))

	diags := []Diagnostic{
		NewSevere(AnnUnresolved, source.Span{File: id, Start: 9, End: 19}, "could not resolve annotation @Component"),
		New(SevWarning, BuildSourceMissing, source.NoSpan(), "source not available; error messages will be terse"),
	}

	got := FormatShort(diags, fs, false)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), got)
	}
	// Un-located entries sort first (empty path) and carry no location.
	if !strings.HasPrefix(lines[0], "warning BLD1002 source not available") {
		t.Errorf("unexpected first line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "app/hello.tpl:2:1") {
		t.Errorf("expected span-anchored location, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "ANN2001") {
		t.Errorf("expected code id in output, got %q", lines[1])
	}
}

func TestFormatShort_NotesAndSanitize(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.tpl", []byte("x\ny\n"))

	d := NewSevere(BuildFatal, source.Span{File: id, Start: 0, End: 1}, "multi\nline\tmessage").
		WithNote(source.Span{File: id, Start: 2, End: 3}, "see also")

	got := FormatShort([]Diagnostic{d}, fs, true)
	if strings.Contains(got, "\nline\t") {
		t.Errorf("message newlines should be flattened: %q", got)
	}
	if !strings.Contains(got, "note BLD1001") {
		t.Errorf("expected note entry, got %q", got)
	}
	if !strings.Contains(got, "see also") {
		t.Errorf("expected note text, got %q", got)
	}
}

func TestCode_ID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{BuildFatal, "BLD1001"},
		{AnnUnresolved, "ANN2001"},
		{IOReadFailed, "IO3000"},
		{InternalError, "INT9000"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("ID(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	if sev, ok := ParseSeverity("notice"); !ok || sev != SevInfo {
		t.Errorf("ParseSeverity(notice) = %v, %v", sev, ok)
	}
	if _, ok := ParseSeverity("loud"); ok {
		t.Errorf("ParseSeverity(loud) should fail")
	}
}
