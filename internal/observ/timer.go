// Package observ provides lightweight phase timing for the build driver.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase records the duration and metadata of one build phase.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of sequential build phases.
type Timer struct {
	phases []Phase
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 8)} }

// Begin starts a new phase and returns its index.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End finishes a phase by its index.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Phases returns the recorded phases.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Total returns the sum of all finished phase durations.
func (t *Timer) Total() time.Duration {
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
	}
	return total
}

// Summary returns a human-readable multi-line timing report.
func (t *Timer) Summary() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range t.phases {
		fmt.Fprintf(&b, "  %-20s %7.2f ms", p.Name, float64(p.Dur.Microseconds())/1000.0)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %7.2f ms\n", "total", float64(t.Total().Microseconds())/1000.0)
	return b.String()
}
