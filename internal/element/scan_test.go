package element

import (
	"testing"

	"ngbuild/internal/source"
)

func TestScan_SingleAnnotation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("hello.cmp", []byte("@Component(selector: \"hello\")\nclass HelloCmp {\n}\n"))

	anns := Scan(fs.Get(id))
	if len(anns) != 1 {
		t.Fatalf("Scan found %d annotations, want 1", len(anns))
	}

	ann := anns[0]
	if ann.Source != "@Component" {
		t.Errorf("Source = %q, want %q", ann.Source, "@Component")
	}
	if ann.Name() != "Component" {
		t.Errorf("Name() = %q", ann.Name())
	}
	if ann.Offset != 0 || ann.Length != 10 {
		t.Errorf("annotation at %d+%d, want 0+10", ann.Offset, ann.Length)
	}

	if ann.Element == nil {
		t.Fatalf("expected decorated element")
	}
	if ann.Element.Name != "HelloCmp" || ann.Element.Kind != KindClass {
		t.Errorf("element = %+v", ann.Element)
	}
	sp, ok := SpanOf(ann.Element)
	if !ok {
		t.Fatalf("element span should resolve")
	}
	start, _ := fs.Resolve(sp)
	if start.Line != 2 {
		t.Errorf("element on line %d, want 2", start.Line)
	}
}

func TestScan_StackedAnnotations(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("svc.cmp", []byte("@Injectable()\n@Deprecated()\nclass Service {}\n"))

	anns := Scan(fs.Get(id))
	if len(anns) != 2 {
		t.Fatalf("Scan found %d annotations, want 2", len(anns))
	}
	for _, ann := range anns {
		if ann.Element == nil || ann.Element.Name != "Service" {
			t.Errorf("annotation %s should decorate Service, got %+v", ann.Source, ann.Element)
		}
	}
}

func TestScan_IgnoresCommentsAndBareAt(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("mixed.cmp", []byte("// @NotReal\nlet x = \"a\" @ \"b\"\n@View\nfunc render() {}\n"))

	anns := Scan(fs.Get(id))
	if len(anns) != 1 {
		t.Fatalf("Scan found %d annotations, want 1: %+v", len(anns), anns)
	}
	if anns[0].Source != "@View" {
		t.Errorf("Source = %q, want @View", anns[0].Source)
	}
	if anns[0].Element == nil || anns[0].Element.Name != "render" || anns[0].Element.Kind != KindFunction {
		t.Errorf("element = %+v", anns[0].Element)
	}
}

func TestScan_TrailingAnnotation(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tail.cmp", []byte("@Dangling"))

	anns := Scan(fs.Get(id))
	if len(anns) != 1 {
		t.Fatalf("Scan found %d annotations, want 1", len(anns))
	}
	if anns[0].Element != nil {
		t.Errorf("trailing annotation has no element, got %+v", anns[0].Element)
	}
	// The annotation still resolves a span of its own.
	if _, ok := anns[0].Span(); !ok {
		t.Errorf("trailing annotation span should resolve")
	}
}

func TestScan_EmptyFile(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("empty.cmp", nil)
	if anns := Scan(fs.Get(id)); anns != nil {
		t.Errorf("Scan of empty file = %+v, want nil", anns)
	}
}
