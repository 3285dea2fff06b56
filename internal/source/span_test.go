package source

import "testing"

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "disjoint spans merge to hull",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "contained span is a no-op",
			span:     Span{File: 1, Start: 10, End: 40},
			other:    Span{File: 1, Start: 15, End: 20},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "overlapping from the left",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 5, End: 15},
			expected: Span{File: 1, Start: 5, End: 20},
		},
		{
			name:     "different file is ignored",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "empty span extends to point",
			span:     Span{File: 1, Start: 10, End: 10},
			other:    Span{File: 1, Start: 12, End: 12},
			expected: Span{File: 1, Start: 10, End: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpan_EmptyLen(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 7}
	if !s.Empty() {
		t.Errorf("expected empty span")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}

	s = Span{File: 3, Start: 7, End: 12}
	if s.Empty() {
		t.Errorf("expected non-empty span")
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %d, want 5", s.Len())
	}
}

func TestSpan_String(t *testing.T) {
	s := Span{File: 2, Start: 4, End: 9}
	if got := s.String(); got != "2:4-9" {
		t.Errorf("String() = %q, want %q", got, "2:4-9")
	}
}
