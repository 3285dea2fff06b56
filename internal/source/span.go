package source

import "fmt"

// Span is a contiguous byte range within a single file.
// Start is inclusive, End is exclusive.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// NoFile marks a span that is not anchored to any file.
const NoFile FileID = ^FileID(0)

// NoSpan returns the un-anchored span used for diagnostics that cannot be
// tied to source text.
func NoSpan() Span {
	return Span{File: NoFile}
}

// Anchored reports whether the span points into a real file.
func (s Span) Anchored() bool {
	return s.File != NoFile
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the span length in bytes.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different files
// are not merged; the receiver is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}
