// Package buildpipeline drives a whole build: discover component sources,
// index their annotations (optionally through the disk cache), resolve them
// against the known set, and collect diagnostics.
//
// Per-file work runs in parallel under a bounded errgroup, and every step
// executes inside the buildlog error boundary: a file that fails, by
// returned error or by panic, produces exactly one severe log entry and the
// build still resolves with a Result. Progress is reported through a
// ProgressSink; sinks receive events from worker goroutines and must be
// drained concurrently when channel-backed.
package buildpipeline
