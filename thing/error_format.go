package thing

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// FormatCodeFrame renders the line containing span with carets under the
// spanned characters. It returns "" when there is nothing to show.
func FormatCodeFrame(span Span) string {
	source := span.source
	if source == "" {
		return ""
	}

	line := span.Line()
	column := span.Column()

	lineStart := strings.LastIndexByte(source[:span.start], '\n') + 1
	lineEnd := strings.IndexByte(source[span.start:], '\n')
	if lineEnd < 0 {
		lineEnd = len(source)
	} else {
		lineEnd += span.start
	}
	lineText := strings.TrimRight(source[lineStart:lineEnd], "\r")

	// Spans that run past the end of the line are underlined up to it.
	underEnd := span.end
	if underEnd > lineEnd {
		underEnd = lineEnd
	}
	width := utf8.RuneCountInString(source[span.start:underEnd])
	if width < 1 {
		width = 1
	}

	lineLabel := strconv.Itoa(line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s%s",
		line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
		strings.Repeat("^", width),
	)
}
