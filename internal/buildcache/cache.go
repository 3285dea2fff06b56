// Package buildcache stores per-file annotation indexes on disk, keyed by
// content digest, so unchanged source files are not re-scanned on rebuild.
// Build errors are never cached; only the scan artifacts are.
package buildcache

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"ngbuild/internal/element"
	"ngbuild/internal/source"
)

// Bump whenever the Payload layout changes so stale entries are discarded
// instead of misread.
const schemaVersion uint16 = 1

// Digest identifies the content of a source file.
type Digest = [32]byte

// AnnotationRecord is the serialized form of one scanned annotation.
type AnnotationRecord struct {
	Source string
	Offset uint32
	Length uint32

	HasElement    bool
	ElementName   string
	ElementKind   uint8
	ElementOffset uint32
	ElementLength uint32
}

// Payload holds the cached scan result for a single file.
type Payload struct {
	Schema      uint16
	Path        string
	Annotations []AnnotationRecord
}

// Cache is a content-addressed disk cache. Thread-safe.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open initializes the cache at the standard XDG location for app.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes the cache rooted at dir.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "scan", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload keyed by the file digest.
func (c *Cache) Put(key Digest, payload *Payload) error {
	if c == nil || payload == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = schemaVersion
	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the payload for key. A missing, corrupt or schema-mismatched
// entry is treated as absent (corrupt entries are removed).
func (c *Cache) Get(key Digest) (*Payload, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		c.mu.RUnlock()
		return nil, false
	}

	var out Payload
	decodeErr := msgpack.NewDecoder(f).Decode(&out)
	closeErr := f.Close()
	c.mu.RUnlock()

	if decodeErr != nil || closeErr != nil || out.Schema != schemaVersion {
		c.discard(p)
		return nil, false
	}
	return &out, true
}

func (c *Cache) discard(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Best effort; a stubborn entry is re-discarded on the next Get.
	_ = os.Remove(path)
}

// DropAll invalidates the whole cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "scan")); err != nil {
		return err
	}
	return nil
}

// EncodeAnnotations converts scanned annotations into cacheable records.
func EncodeAnnotations(anns []element.Annotation) []AnnotationRecord {
	if len(anns) == 0 {
		return nil
	}
	out := make([]AnnotationRecord, 0, len(anns))
	for _, a := range anns {
		rec := AnnotationRecord{
			Source: a.Source,
			Offset: a.Offset,
			Length: a.Length,
		}
		if a.Element != nil {
			rec.HasElement = true
			rec.ElementName = a.Element.Name
			rec.ElementKind = uint8(a.Element.Kind)
			rec.ElementOffset = a.Element.Offset
			rec.ElementLength = a.Element.Length
		}
		out = append(out, rec)
	}
	return out
}

// DecodeAnnotations rebuilds annotations against the file they were scanned
// from. The file ID is rebound to the current FileSet.
func DecodeAnnotations(recs []AnnotationRecord, id source.FileID) []element.Annotation {
	if len(recs) == 0 {
		return nil
	}
	out := make([]element.Annotation, 0, len(recs))
	for _, r := range recs {
		ann := element.Annotation{
			Source: r.Source,
			File:   id,
			Offset: r.Offset,
			Length: r.Length,
		}
		if r.HasElement {
			ann.Element = &element.Element{
				Name:   r.ElementName,
				Kind:   element.Kind(r.ElementKind),
				File:   id,
				Offset: r.ElementOffset,
				Length: r.ElementLength,
			}
		}
		out = append(out, ann)
	}
	return out
}
