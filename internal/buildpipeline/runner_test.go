package buildpipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ngbuild/internal/buildcache"
	"ngbuild/internal/buildlog"
	"ngbuild/internal/diag"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

var knownSet = []string{"Component", "View", "Injectable"}

func TestBuild_CleanProject(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"hello.cmp": "@Component(selector: \"hello\")\nclass HelloCmp {}\n",
		"svc.cmp":   "@Injectable()\nclass Service {}\n",
		"notes.txt": "@Bogus ignored, wrong extension\n",
	})

	sink := &buildlog.CaptureSink{}
	log := buildlog.New(sink)

	result, err := Build(context.Background(), log, dir, Options{KnownAnnotations: knownSet})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if result.HasSevere() {
		t.Fatalf("clean project should not produce severe diagnostics:\n%s",
			diag.FormatShort(result.Bag.Items(), result.FileSet, false))
	}
	if len(result.Files) != 2 {
		t.Fatalf("files = %d, want 2", len(result.Files))
	}
	for _, fr := range result.Files {
		if !fr.Resolved {
			t.Errorf("%s should resolve", fr.Path)
		}
		if len(fr.Annotations) != 1 {
			t.Errorf("%s annotations = %d, want 1", fr.Path, len(fr.Annotations))
		}
	}
	if n := len(sink.At(diag.SevSevere)); n != 0 {
		t.Errorf("severe log entries = %d, want 0", n)
	}
}

func TestBuild_UnresolvedAnnotation(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"bad.cmp": "line one\n@Compnent(selector: \"oops\")\nclass BadCmp {}\n",
	})

	log := buildlog.New(&buildlog.CaptureSink{})
	result, err := Build(context.Background(), log, dir, Options{KnownAnnotations: knownSet})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if !result.HasSevere() {
		t.Fatalf("expected severe diagnostics")
	}
	// Файл сам по себе разрешился: ошибки собраны в bag, не брошены.
	if !result.Files[0].Resolved {
		t.Errorf("non-fail-fast build should resolve the file")
	}

	short := diag.FormatShort(result.Bag.Items(), result.FileSet, false)
	if !strings.Contains(short, "ANN2001") {
		t.Errorf("expected unresolved-annotation code:\n%s", short)
	}
	if !strings.Contains(short, "@Compnent") {
		t.Errorf("expected offending annotation text:\n%s", short)
	}
	if !strings.Contains(short, "bad.cmp:2:1") {
		t.Errorf("expected span anchor:\n%s", short)
	}
}

func TestBuild_FailFast(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"bad.cmp": "@Nope\nclass X {}\n",
	})

	sink := &buildlog.CaptureSink{}
	log := buildlog.New(sink)

	result, err := Build(context.Background(), log, dir, Options{
		KnownAnnotations: knownSet,
		FailFast:         true,
	})
	if err != nil {
		t.Fatalf("Build must still resolve, got %v", err)
	}
	if result.Files[0].Resolved {
		t.Errorf("fail-fast file should be marked unresolved")
	}

	severe := sink.At(diag.SevSevere)
	if len(severe) != 1 {
		t.Fatalf("severe log entries = %d, want exactly 1", len(severe))
	}
	if !strings.Contains(severe[0].Message, "@Nope") {
		t.Errorf("boundary entry %q should contain the annotation text", severe[0].Message)
	}
}

func TestBuild_CacheRoundTrip(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"hello.cmp": "@Component\nclass HelloCmp {}\n",
	})
	cache, err := buildcache.OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	log := buildlog.New(&buildlog.CaptureSink{})
	opts := Options{KnownAnnotations: knownSet, Cache: cache}

	first, err := Build(context.Background(), log, dir, opts)
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if first.Files[0].CacheHit {
		t.Errorf("first build should scan cold")
	}

	second, err := Build(context.Background(), log, dir, opts)
	if err != nil {
		t.Fatalf("second Build: %v", err)
	}
	if !second.Files[0].CacheHit {
		t.Errorf("second build should hit the cache")
	}
	if len(second.Files[0].Annotations) != 1 {
		t.Errorf("cached annotations = %d, want 1", len(second.Files[0].Annotations))
	}
}

func TestBuild_EmptyDir(t *testing.T) {
	log := buildlog.New(&buildlog.CaptureSink{})
	result, err := Build(context.Background(), log, t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(result.Files) != 0 || result.HasSevere() {
		t.Errorf("empty build = %+v", result)
	}
}

type collectSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *collectSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestBuild_ProgressEvents(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.cmp": "@Component\nclass A {}\n",
	})

	sink := &collectSink{}
	log := buildlog.New(&buildlog.CaptureSink{})
	if _, err := Build(context.Background(), log, dir, Options{
		KnownAnnotations: knownSet,
		Progress:         sink,
		Jobs:             2,
	}); err != nil {
		t.Fatalf("Build: %v", err)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var sawAnalyzeDone, sawEmit bool
	for _, evt := range sink.events {
		if evt.Stage == StageAnalyze && evt.Status == StatusDone {
			sawAnalyzeDone = true
		}
		if evt.Stage == StageEmit && evt.Status == StatusDone {
			sawEmit = true
		}
	}
	if !sawAnalyzeDone || !sawEmit {
		t.Errorf("missing progress events: %+v", sink.events)
	}
}
