package buildcache

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"ngbuild/internal/element"
	"ngbuild/internal/source"
)

func TestCache_RoundTrip(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}

	content := []byte("@Component\nclass HelloCmp {}\n")
	key := sha256.Sum256(content)

	fs := source.NewFileSet()
	id := fs.AddVirtual("hello.cmp", content)
	anns := element.Scan(fs.Get(id))

	payload := &Payload{
		Path:        "hello.cmp",
		Annotations: EncodeAnnotations(anns),
	}
	if err := c.Put(key, payload); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok := c.Get(key)
	if !ok {
		t.Fatalf("Get should hit after Put")
	}
	if got.Path != "hello.cmp" || len(got.Annotations) != 1 {
		t.Fatalf("payload = %+v", got)
	}

	// Rebind against a fresh FileSet and confirm spans still resolve.
	fs2 := source.NewFileSet()
	id2 := fs2.AddVirtual("hello.cmp", content)
	decoded := DecodeAnnotations(got.Annotations, id2)
	if len(decoded) != 1 {
		t.Fatalf("decoded = %+v", decoded)
	}
	if decoded[0].Source != "@Component" {
		t.Errorf("Source = %q", decoded[0].Source)
	}
	if decoded[0].Element == nil || decoded[0].Element.Name != "HelloCmp" {
		t.Errorf("element = %+v", decoded[0].Element)
	}
	sp, ok := decoded[0].Span()
	if !ok || sp.File != id2 {
		t.Errorf("span = %+v, %v", sp, ok)
	}
}

func TestCache_MissAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	c, err := OpenAt(dir)
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}

	key := sha256.Sum256([]byte("nothing"))
	if _, ok := c.Get(key); ok {
		t.Errorf("Get on empty cache should miss")
	}

	// Plant a corrupt entry and make sure it is discarded, not returned.
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(p, []byte("not msgpack"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Errorf("corrupt entry should be treated as a miss")
	}
	if _, err := os.Stat(p); !os.IsNotExist(err) {
		t.Errorf("corrupt entry should be removed")
	}
}

func TestCache_DropAll(t *testing.T) {
	c, err := OpenAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenAt: %v", err)
	}
	key := sha256.Sum256([]byte("x"))
	if err := c.Put(key, &Payload{Path: "x.cmp"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, ok := c.Get(key); ok {
		t.Errorf("Get after DropAll should miss")
	}
}

func TestCache_NilSafety(t *testing.T) {
	var c *Cache
	if err := c.Put(Digest{}, &Payload{}); err != nil {
		t.Errorf("nil cache Put: %v", err)
	}
	if _, ok := c.Get(Digest{}); ok {
		t.Errorf("nil cache Get should miss")
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("nil cache DropAll: %v", err)
	}
}
