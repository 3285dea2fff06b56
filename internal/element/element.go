// Package element models the analyzed program elements that build errors
// anchor to: named declarations and the annotations applied to them. It is
// deliberately shallow: annotation bodies are never interpreted, only
// located, so diagnostics can point at exact source coordinates.
package element

import "ngbuild/internal/source"

// Kind classifies an analyzed element.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindClass
	KindFunction
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindFunction:
		return "function"
	case KindField:
		return "field"
	}
	return "element"
}

// Element is a named declaration in a loaded source file. Offset/Length
// locate the declaration name; a zero Length means no source anchor is
// available (synthetic or externally provided element).
type Element struct {
	Name   string
	Kind   Kind
	File   source.FileID
	Offset uint32
	Length uint32
}

// Annotation is a marker applied to an element, with its raw source text.
type Annotation struct {
	Element *Element
	Source  string // annotation text as written, e.g. "@Component"
	File    source.FileID
	Offset  uint32
	Length  uint32
}

// Name returns the annotation identifier without the leading '@'.
func (a Annotation) Name() string {
	if len(a.Source) > 0 && a.Source[0] == '@' {
		return a.Source[1:]
	}
	return a.Source
}

// SpanOf resolves the source span of an element. The second result is false
// when the element has no backing source and the caller must fall back to an
// un-anchored message.
func SpanOf(el *Element) (source.Span, bool) {
	if el == nil || el.Length == 0 {
		return source.NoSpan(), false
	}
	return source.Span{File: el.File, Start: el.Offset, End: el.Offset + el.Length}, true
}

// Span resolves the source span of the annotation itself, degrading to the
// owning element's span and finally to an un-anchored span.
func (a Annotation) Span() (source.Span, bool) {
	if a.Length > 0 {
		return source.Span{File: a.File, Start: a.Offset, End: a.Offset + a.Length}, true
	}
	return SpanOf(a.Element)
}
