// Package buildlog converts fatal build conditions into log entries and
// guarantees the enclosing build operation always resolves.
//
// The package has three pieces:
//
//   - Logger, a four-level (fine/info/warning/severe) front end over an
//     externally supplied Sink;
//   - the two recognized failure kinds, BuildError (intentionally raised,
//     always terminal for the current step) and UnresolvedAnnotationError
//     (analysis could not resolve an annotation; carries the annotation text
//     and source anchor);
//   - Run, the error boundary: any failure inside the wrapped computation,
//     returned or panicked, is caught exactly once, logged with the
//     appropriate framing, and swallowed so the caller always gets an
//     answer. Failures that match neither recognized kind are reported as
//     internal defects with a bug-filing pointer.
//
// Nothing is retried and nothing is stored: an error is constructed, logged
// once, and discarded.
package buildlog
