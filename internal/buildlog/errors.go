package buildlog

import (
	"fmt"
	"runtime/debug"

	"ngbuild/internal/element"
	"ngbuild/internal/source"
)

// IssuesURL is where unexpected internal failures should be reported.
const IssuesURL = "https://github.com/ngbuild/ngbuild/issues"

// TroubleshootingRef points at the generic guidance for unresolved
// annotations (missing imports, misspelled names, generator ordering).
const TroubleshootingRef = "docs/troubleshooting.md#unresolved-annotations"

// BuildError is an intentionally raised fatal condition: the current build
// step must stop, but the enclosing build resolves cleanly after logging.
// The stack trace is captured at construction.
type BuildError struct {
	Msg   string
	Span  source.Span // NoSpan when the error has no source anchor
	Stack []byte
}

func (e *BuildError) Error() string {
	return e.Msg
}

// NewBuildError creates an un-anchored fatal build error.
func NewBuildError(msg string) *BuildError {
	return &BuildError{
		Msg:   msg,
		Span:  source.NoSpan(),
		Stack: debug.Stack(),
	}
}

// ErrorForElement creates a fatal build error anchored to the source span of
// el. When the element has no backing source the message stays un-anchored
// and a warning is emitted that error detail will be terse.
func ErrorForElement(log *Logger, fs *source.FileSet, el *element.Element, msg string) *BuildError {
	span, ok := element.SpanOf(el)
	if !ok {
		log.Warningf("no source text available for %s %q; error messages will be terse", elementKind(el), elementName(el))
		return NewBuildError(msg)
	}
	return &BuildError{
		Msg:   fmt.Sprintf("%s: %s", locate(fs, span), msg),
		Span:  span,
		Stack: debug.Stack(),
	}
}

func elementName(el *element.Element) string {
	if el == nil {
		return "<nil>"
	}
	return el.Name
}

func elementKind(el *element.Element) string {
	if el == nil {
		return element.KindUnknown.String()
	}
	return el.Kind.String()
}

// UnresolvedAnnotationError signals that the analysis engine could not
// resolve an annotation. The message carries the annotation text as written,
// the source anchor when one exists, and a pointer to troubleshooting
// guidance.
type UnresolvedAnnotationError struct {
	Annotation element.Annotation
	Span       source.Span
	msg        string
}

func (e *UnresolvedAnnotationError) Error() string {
	return e.msg
}

// UnresolvedAnnotation builds the error for ann. Span resolution degrades
// like ErrorForElement: without source text the message is un-anchored and a
// terse-detail warning is logged.
func UnresolvedAnnotation(log *Logger, fs *source.FileSet, ann element.Annotation) *UnresolvedAnnotationError {
	span, ok := ann.Span()
	if !ok {
		log.Warningf("no source text available for annotation %s; error messages will be terse", ann.Source)
		return &UnresolvedAnnotationError{
			Annotation: ann,
			Span:       source.NoSpan(),
			msg: fmt.Sprintf("could not resolve annotation %s (see %s)",
				ann.Source, TroubleshootingRef),
		}
	}
	return &UnresolvedAnnotationError{
		Annotation: ann,
		Span:       span,
		msg: fmt.Sprintf("%s: could not resolve annotation %s (see %s)",
			locate(fs, span), ann.Source, TroubleshootingRef),
	}
}

// locate renders a span as path:line:col for message anchoring.
func locate(fs *source.FileSet, span source.Span) string {
	if fs == nil || !span.Anchored() {
		return "<unknown>"
	}
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", f.FormatPath("relative", fs.BaseDir()), start.Line, start.Col)
}
