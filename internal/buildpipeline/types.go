package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageScan is file discovery, loading and annotation indexing.
	StageScan Stage = "scan"
	// StageAnalyze is annotation resolution against the known set.
	StageAnalyze Stage = "analyze"
	// StageEmit is diagnostic collection and rendering hand-off.
	StageEmit Stage = "emit"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the task resolved after a logged failure.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File
// is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Implementations must tolerate
// concurrent calls; the runner reports from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnEvent(Event) {}
