package buildlog

import (
	"fmt"

	"ngbuild/internal/diag"
)

// Logger provides the four leveled entry points of the build log: fine,
// info, warning and severe. Entries below the configured minimum level are
// dropped before they reach the sink.
type Logger struct {
	sink               Sink
	level              diag.Severity
	showInternalTraces bool
}

// Option configures a Logger.
type Option func(*Logger)

// WithLevel sets the minimum severity forwarded to the sink.
func WithLevel(sev diag.Severity) Option {
	return func(l *Logger) { l.level = sev }
}

// WithInternalTraces controls whether severe entries include the captured
// stack trace of the failure.
func WithInternalTraces(show bool) Option {
	return func(l *Logger) { l.showInternalTraces = show }
}

// New creates a Logger bound to sink. A nil sink discards everything.
func New(sink Sink, opts ...Option) *Logger {
	l := &Logger{sink: sink, level: diag.SevInfo}
	if sink == nil {
		l.sink = NopSink{}
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ShowInternalTraces reports whether severe entries carry stack traces.
func (l *Logger) ShowInternalTraces() bool {
	return l != nil && l.showInternalTraces
}

func (l *Logger) log(sev diag.Severity, msg string) {
	if l == nil || sev < l.level {
		return
	}
	l.sink.Log(sev, msg)
}

// Fine logs verbose progress detail.
func (l *Logger) Fine(msg string) {
	l.log(diag.SevFine, msg)
}

// Finef logs verbose progress detail with formatting.
func (l *Logger) Finef(format string, args ...any) {
	if l == nil || diag.SevFine < l.level {
		return
	}
	l.log(diag.SevFine, fmt.Sprintf(format, args...))
}

// Info logs a notice.
func (l *Logger) Info(msg string) {
	l.log(diag.SevInfo, msg)
}

// Infof logs a notice with formatting.
func (l *Logger) Infof(format string, args ...any) {
	if l == nil || diag.SevInfo < l.level {
		return
	}
	l.log(diag.SevInfo, fmt.Sprintf(format, args...))
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.log(diag.SevWarning, msg)
}

// Warningf logs a recoverable problem with formatting.
func (l *Logger) Warningf(format string, args ...any) {
	if l == nil || diag.SevWarning < l.level {
		return
	}
	l.log(diag.SevWarning, fmt.Sprintf(format, args...))
}

// Severe logs a fatal condition carried by err. Build errors append their
// captured stack trace when internal traces are enabled.
func (l *Logger) Severe(err error) {
	if l == nil || err == nil {
		return
	}
	msg := err.Error()
	if l.showInternalTraces {
		if be, ok := err.(*BuildError); ok && len(be.Stack) > 0 {
			msg += "\n" + string(be.Stack)
		}
	}
	l.log(diag.SevSevere, msg)
}

// Severef logs a fatal condition with formatting.
func (l *Logger) Severef(format string, args ...any) {
	l.log(diag.SevSevere, fmt.Sprintf(format, args...))
}
