package thing

import (
	"fmt"
	"strings"
)

// ScanError reports a lexical error.
type ScanError struct {
	Message string
	Span    Span
}

func (e *ScanError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "lexical error at %s: %s", e.Span, e.Message)
	if frame := FormatCodeFrame(e.Span); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// Scanner turns source text into tokens, one per call to Scan.
type Scanner struct {
	cursor *cursor
}

func NewScanner(source string) *Scanner {
	return &Scanner{cursor: newCursor(source)}
}

// Scan returns the next token. Once the input is exhausted every call
// returns an EOF token spanning the end of the source.
func (s *Scanner) Scan() (Token, error) {
	for isWhitespace(s.cursor.lookahead(0)) {
		s.cursor.advance()
	}

	s.cursor.resetStart()
	if s.cursor.isAtEnd() {
		return s.token(TokenEOF), nil
	}

	c := s.cursor.advance()
	next := s.cursor.lookahead(0)

	var kind TokenKind
	switch {
	case isIdentifierStart(c):
		kind = s.identifier()
	case isDigit(c):
		s.number()
		kind = TokenNumber
	case c == '"':
		if err := s.string(); err != nil {
			return Token{}, err
		}
		kind = TokenString
	case c == '{':
		kind = TokenLBrace
	case c == '}':
		kind = TokenRBrace
	case c == '(':
		kind = TokenLParen
	case c == ')':
		kind = TokenRParen
	case c == '[':
		kind = TokenLBracket
	case c == ']':
		kind = TokenRBracket
	case c == ';':
		kind = TokenSemicolon
	case c == ',':
		kind = TokenComma
	case c == '.':
		kind = TokenPeriod
	case c == '+':
		kind = s.either('=', TokenPlusEqual, TokenPlus)
	case c == '-':
		kind = s.either('=', TokenMinusEqual, TokenMinus)
	case c == '*':
		switch next {
		case '*':
			s.cursor.advance()
			kind = TokenStarStar
		case '=':
			s.cursor.advance()
			kind = TokenStarEqual
		default:
			kind = TokenStar
		}
	case c == '/':
		kind = s.either('=', TokenSlashEqual, TokenSlash)
	case c == '%':
		kind = s.either('=', TokenPercentEqual, TokenPercent)
	case c == '=':
		kind = s.either('=', TokenEqualEqual, TokenEqual)
	case c == '<':
		kind = s.either('=', TokenLessEqual, TokenLess)
	case c == '>':
		kind = s.either('=', TokenGreaterEqual, TokenGreater)
	case c == '!' && next == '=':
		s.cursor.advance()
		kind = TokenBangEqual
	default:
		return Token{}, &ScanError{
			Message: fmt.Sprintf("unexpected character '%c'", c),
			Span:    s.cursor.resetSpan(),
		}
	}

	return s.token(kind), nil
}

func (s *Scanner) token(kind TokenKind) Token {
	return Token{Span: s.cursor.resetSpan(), Kind: kind}
}

// either consumes want and returns matched when it is the next character,
// otherwise it returns single.
func (s *Scanner) either(want rune, matched, single TokenKind) TokenKind {
	if s.cursor.lookahead(0) == want {
		s.cursor.advance()
		return matched
	}
	return single
}

func (s *Scanner) identifier() TokenKind {
	for isIdentifierContinue(s.cursor.lookahead(0)) {
		s.cursor.advance()
	}
	return lookupIdent(s.cursor.span().Text())
}

func (s *Scanner) number() {
	for isDigit(s.cursor.lookahead(0)) {
		s.cursor.advance()
	}

	// The dot belongs to the number only when a digit follows, so that
	// `256.log2()` scans as a number followed by a period.
	if s.cursor.lookahead(0) == '.' && isDigit(s.cursor.lookahead(1)) {
		s.cursor.advance()
		for isDigit(s.cursor.lookahead(0)) {
			s.cursor.advance()
		}
	}
}

func (s *Scanner) string() error {
	for !s.cursor.isAtEnd() && s.cursor.lookahead(0) != '"' {
		s.cursor.advance()
	}

	if s.cursor.isAtEnd() {
		return &ScanError{Message: "expected closing quotes", Span: s.cursor.resetSpan()}
	}
	s.cursor.advance()
	return nil
}

// Tokenize scans source until EOF, which is included in the result, or
// until the first lexical error.
func Tokenize(source string) ([]Token, error) {
	scanner := NewScanner(source)
	var tokens []Token
	for {
		tok, err := scanner.Scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOF() {
			return tokens, nil
		}
	}
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
