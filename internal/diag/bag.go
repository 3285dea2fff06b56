package diag

import (
	"fmt"
	"sort"
)

// Bag accumulates diagnostics up to a fixed limit.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max < 0 {
		max = 0
	}
	return &Bag{
		items: make([]Diagnostic, 0, max),
		max:   max,
	}
}

// Add appends a diagnostic, honoring the limit.
// Returns false when the bag is full and the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

// HasSevere reports whether the bag holds at least one severe diagnostic.
func (b *Bag) HasSevere() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevSevere {
			return true
		}
	}
	return false
}

// HasWarnings reports whether the bag holds at least one warning or worse.
func (b *Bag) HasWarnings() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevWarning {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items returns a read-only view of the diagnostics.
// Callers must not modify the returned slice.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends diagnostics from another bag, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	newTotal := len(b.items) + len(other.items)
	if newTotal > b.max {
		b.max = newTotal
	}
	b.items = append(b.items, other.items...)
}

// Sort orders diagnostics by file, start, end, severity (descending) and
// code for deterministic output.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}

// Dedup drops diagnostics repeating an already seen code+span pair.
func (b *Bag) Dedup() {
	seen := make(map[string]bool)
	newitems := make([]Diagnostic, 0, len(b.items))
	for _, d := range b.items {
		key := fmt.Sprintf("%s:%s", d.Code.ID(), d.Primary.String())
		if seen[key] {
			continue
		}
		seen[key] = true
		newitems = append(newitems, d)
	}
	b.items = newitems
}
