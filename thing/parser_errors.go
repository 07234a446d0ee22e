package thing

import (
	"fmt"
	"strings"
)

// ParseError reports a syntax error at the offending token. Lexical errors
// met while parsing are reported as a ParseError wrapping the ScanError.
type ParseError struct {
	Message string
	Span    Span
	cause   error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %s: %s", e.Span, e.Message)
	if frame := FormatCodeFrame(e.Span); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.cause
}

func (p *Parser) errorAt(span Span, format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Span: span}
}

func (p *Parser) errorExpected(tok Token, expected TokenKind) error {
	return p.errorAt(tok.Span, "expected %s got %s", expected.Label(), tok.Kind.Label())
}

func (p *Parser) errorUnexpected(tok Token) error {
	return p.errorAt(tok.Span, "expected expression got %s", tok.Kind.Label())
}

func fromScanError(err error) error {
	scanErr, ok := err.(*ScanError)
	if !ok {
		return err
	}
	return &ParseError{Message: scanErr.Message, Span: scanErr.Span, cause: scanErr}
}
