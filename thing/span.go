package thing

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Span identifies the half-open byte range [start, end) of the source text.
// Line and column are derived on demand.
type Span struct {
	source string
	start  int
	end    int
}

// NewSpan builds a span over source. Offsets are clamped into range so the
// result always satisfies 0 <= start <= end <= len(source).
func NewSpan(source string, start, end int) Span {
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start > end {
		start = end
	}
	return Span{source: source, start: start, end: end}
}

func (s Span) Start() int { return s.start }
func (s Span) End() int   { return s.end }
func (s Span) Len() int   { return s.end - s.start }

// Source returns the full text the span points into.
func (s Span) Source() string { return s.source }

// Text returns the spanned slice of the source.
func (s Span) Text() string {
	return s.source[s.start:s.end]
}

// Line is the 1-based line on which the span starts.
func (s Span) Line() int {
	return strings.Count(s.source[:s.start], "\n") + 1
}

// Column is the 1-based character column at which the span starts.
func (s Span) Column() int {
	lineStart := strings.LastIndexByte(s.source[:s.start], '\n') + 1
	return utf8.RuneCountInString(s.source[lineStart:s.start]) + 1
}

// To returns the span covering both s and other. Both must share a source.
func (s Span) To(other Span) Span {
	start, end := s.start, other.end
	if other.start < start {
		start = other.start
	}
	if s.end > end {
		end = s.end
	}
	return Span{source: s.source, start: start, end: end}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line(), s.Column())
}
