// Package diag defines the diagnostic model shared by the build driver and
// the error reporter.
//
// Diagnostic is the central record: a severity (the same four-tier scale the
// build logger uses), a stable Code, a human message, a primary source.Span
// and optional Notes. Producers emit through a Reporter so they stay
// decoupled from storage; BagReporter aggregates into a Bag which supports
// sorting, deduplication and merging, and DedupReporter filters repeats
// in-flight.
//
// The package performs no IO and no formatting beyond FormatShort, the
// deterministic one-line rendering used by terse CLI output and test
// goldens. Pretty rendering lives in internal/diagfmt.
package diag
