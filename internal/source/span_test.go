package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{File: 1, Start: 2, End: 4},
			b:        Span{File: 1, Start: 10, End: 12},
			expected: Span{File: 1, Start: 2, End: 12},
		},
		{
			name:     "nested span keeps outer",
			a:        Span{File: 1, Start: 0, End: 20},
			b:        Span{File: 1, Start: 5, End: 6},
			expected: Span{File: 1, Start: 0, End: 20},
		},
		{
			name:     "other file is ignored",
			a:        Span{File: 1, Start: 3, End: 4},
			b:        Span{File: 2, Start: 0, End: 40},
			expected: Span{File: 1, Start: 3, End: 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{File: 0, Start: 10, End: 20}
	cases := []struct {
		inner Span
		want  bool
	}{
		{Span{File: 0, Start: 10, End: 20}, true},
		{Span{File: 0, Start: 12, End: 12}, true},
		{Span{File: 0, Start: 9, End: 12}, false},
		{Span{File: 0, Start: 15, End: 21}, false},
		{Span{File: 1, Start: 12, End: 13}, false},
	}
	for _, c := range cases {
		if got := outer.Contains(c.inner); got != c.want {
			t.Errorf("Contains(%v) = %v, want %v", c.inner, got, c.want)
		}
	}
}

func TestSpan_Zeroide(t *testing.T) {
	s := Span{File: 3, Start: 7, End: 11}
	if got := s.ZeroideToStart(); got != (Span{File: 3, Start: 7, End: 7}) || !got.Empty() {
		t.Errorf("ZeroideToStart() = %v", got)
	}
	if got := s.ZeroideToEnd(); got != (Span{File: 3, Start: 11, End: 11}) || got.Len() != 0 {
		t.Errorf("ZeroideToEnd() = %v", got)
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
}
