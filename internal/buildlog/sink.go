package buildlog

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"ngbuild/internal/diag"
)

// Sink receives finished log entries. The sink is supplied by the embedding
// build system; the logger itself has no side effects beyond calling it.
type Sink interface {
	Log(sev diag.Severity, msg string)
}

// WriterSink writes one line per entry to an io.Writer.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) Log(sev diag.Severity, msg string) {
	if s == nil || s.W == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.W, "%s: %s\n", sev, msg)
}

// ZapSink forwards entries to a zap logger, mapping the four build levels
// onto zap's debug/info/warn/error.
type ZapSink struct {
	L *zap.Logger
}

func (s ZapSink) Log(sev diag.Severity, msg string) {
	if s.L == nil {
		return
	}
	switch sev {
	case diag.SevFine:
		s.L.Debug(msg)
	case diag.SevInfo:
		s.L.Info(msg)
	case diag.SevWarning:
		s.L.Warn(msg)
	default:
		s.L.Error(msg)
	}
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Log(diag.Severity, string) {}

// Entry is a captured log line.
type Entry struct {
	Severity diag.Severity
	Message  string
}

// CaptureSink records entries in memory. Safe for concurrent use; intended
// for tests and for the driver's deferred-output mode.
type CaptureSink struct {
	mu      sync.Mutex
	entries []Entry
}

func (s *CaptureSink) Log(sev diag.Severity, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{Severity: sev, Message: msg})
}

// Entries returns a copy of everything captured so far.
func (s *CaptureSink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// At returns the captured entries with the given severity.
func (s *CaptureSink) At(sev diag.Severity) []Entry {
	var out []Entry
	for _, e := range s.Entries() {
		if e.Severity == sev {
			out = append(out, e)
		}
	}
	return out
}
