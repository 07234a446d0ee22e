package thing

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tokenWant struct {
	Kind  TokenKind
	Start int
	End   int
}

func scanAll(t *testing.T, source string) []tokenWant {
	t.Helper()
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	out := make([]tokenWant, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tokenWant{Kind: tok.Kind, Start: tok.Span.Start(), End: tok.Span.End()})
	}
	return out
}

func kindsOf(t *testing.T, source string) []TokenKind {
	t.Helper()
	tokens, err := Tokenize(source)
	if err != nil {
		t.Fatalf("tokenize %q: %v", source, err)
	}
	kinds := make([]TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsEOF() {
			break
		}
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func TestScanEmptySourceYieldsEOF(t *testing.T) {
	want := []tokenWant{{Kind: TokenEOF, Start: 0, End: 0}}
	if diff := cmp.Diff(want, scanAll(t, "")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNumberLeavesTrailingPeriod(t *testing.T) {
	want := []tokenWant{
		{TokenNumber, 0, 3},
		{TokenPeriod, 3, 4},
		{TokenIdentifier, 4, 8},
		{TokenLParen, 8, 9},
		{TokenRParen, 9, 10},
		{TokenEOF, 10, 10},
	}
	if diff := cmp.Diff(want, scanAll(t, "256.log2()")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanNumberLiterals(t *testing.T) {
	for _, src := range []string{"0", "7", "12.34", "256", "3.14159", "000.5"} {
		tokens, err := Tokenize(src)
		if err != nil {
			t.Fatalf("tokenize %q: %v", src, err)
		}
		if len(tokens) != 2 || tokens[0].Kind != TokenNumber || tokens[0].Text() != src {
			t.Fatalf("%q: expected a single number token, got %v", src, tokens)
		}
	}

	want := []TokenKind{TokenNumber, TokenPeriod}
	if diff := cmp.Diff(want, kindsOf(t, "1.")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanVarDecl(t *testing.T) {
	want := []tokenWant{
		{TokenLet, 0, 3},
		{TokenIdentifier, 4, 5},
		{TokenEqual, 6, 7},
		{TokenNumber, 8, 10},
		{TokenSemicolon, 10, 11},
		{TokenEOF, 11, 11},
	}
	if diff := cmp.Diff(want, scanAll(t, "let x = 10;")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanFuncDecl(t *testing.T) {
	want := []tokenWant{
		{TokenFunc, 0, 4},
		{TokenIdentifier, 5, 8},
		{TokenLParen, 8, 9},
		{TokenIdentifier, 9, 10},
		{TokenComma, 10, 11},
		{TokenIdentifier, 12, 13},
		{TokenRParen, 13, 14},
		{TokenLBrace, 15, 16},
		{TokenReturn, 17, 23},
		{TokenIdentifier, 24, 25},
		{TokenPlus, 26, 27},
		{TokenIdentifier, 28, 29},
		{TokenSemicolon, 29, 30},
		{TokenRBrace, 31, 32},
		{TokenEOF, 32, 32},
	}
	if diff := cmp.Diff(want, scanAll(t, "func add(x, y) { return x + y; }")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanOperators(t *testing.T) {
	src := "== != <= >= ** += -= *= /= %= = < > + - * / % [ ] ."
	want := []TokenKind{
		TokenEqualEqual, TokenBangEqual, TokenLessEqual, TokenGreaterEqual, TokenStarStar,
		TokenPlusEqual, TokenMinusEqual, TokenStarEqual, TokenSlashEqual, TokenPercentEqual,
		TokenEqual, TokenLess, TokenGreater, TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent,
		TokenLBracket, TokenRBracket, TokenPeriod,
	}
	if diff := cmp.Diff(want, kindsOf(t, src)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}

	// No whitespace: maximal two-character operators win.
	want = []TokenKind{TokenIdentifier, TokenStarStar, TokenMinus, TokenNumber, TokenLessEqual, TokenIdentifier}
	if diff := cmp.Diff(want, kindsOf(t, "a**-1<=b")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	src := "let mut func class this return for while if else and or not true false nil lettuce _x x1"
	want := []TokenKind{
		TokenLet, TokenMut, TokenFunc, TokenClass, TokenThis, TokenReturn, TokenFor, TokenWhile,
		TokenIf, TokenElse, TokenAnd, TokenOr, TokenNot, TokenTrue, TokenFalse, TokenNil,
		TokenIdentifier, TokenIdentifier, TokenIdentifier,
	}
	if diff := cmp.Diff(want, kindsOf(t, src)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestScanString(t *testing.T) {
	tokens, err := Tokenize(`"hello world" x`)
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if tokens[0].Kind != TokenString || tokens[0].Text() != `"hello world"` {
		t.Fatalf("unexpected string token %v", tokens[0])
	}
	if tokens[1].Kind != TokenIdentifier {
		t.Fatalf("expected identifier after string, got %v", tokens[1])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	s := NewScanner(`"abc`)
	_, err := s.Scan()
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected ScanError, got %v", err)
	}
	if scanErr.Message != "expected closing quotes" {
		t.Fatalf("unexpected message %q", scanErr.Message)
	}
	if scanErr.Span.Start() != 0 || scanErr.Span.End() != 4 {
		t.Fatalf("unexpected span %d..%d", scanErr.Span.Start(), scanErr.Span.End())
	}
	tok, err := s.Scan()
	if err != nil || !tok.IsEOF() {
		t.Fatalf("expected EOF after unterminated string, got %v %v", tok, err)
	}
}

func TestScanUnexpectedCharacterAndContinue(t *testing.T) {
	s := NewScanner("a @ b ! c")

	if tok, err := s.Scan(); err != nil || tok.Kind != TokenIdentifier {
		t.Fatalf("expected identifier, got %v %v", tok, err)
	}

	_, err := s.Scan()
	var scanErr *ScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected ScanError, got %v", err)
	}
	if scanErr.Message != "unexpected character '@'" {
		t.Fatalf("unexpected message %q", scanErr.Message)
	}
	if scanErr.Span.Start() != 2 || scanErr.Span.End() != 3 {
		t.Fatalf("unexpected span %d..%d", scanErr.Span.Start(), scanErr.Span.End())
	}
	if !strings.Contains(err.Error(), "lexical error at 1:3") {
		t.Fatalf("unexpected error text %q", err.Error())
	}

	if tok, err := s.Scan(); err != nil || tok.Text() != "b" {
		t.Fatalf("expected scanning to resume at b, got %v %v", tok, err)
	}
	if _, err := s.Scan(); err == nil || !strings.Contains(err.Error(), "unexpected character '!'") {
		t.Fatalf("expected bare ! to be rejected, got %v", err)
	}
}

func TestScanEOFIsIdempotent(t *testing.T) {
	s := NewScanner("x  ")
	if _, err := s.Scan(); err != nil {
		t.Fatalf("scan: %v", err)
	}
	for i := 0; i < 3; i++ {
		tok, err := s.Scan()
		if err != nil {
			t.Fatalf("scan: %v", err)
		}
		if !tok.IsEOF() || tok.Span.Start() != 3 || tok.Span.End() != 3 {
			t.Fatalf("call %d: expected EOF at 3..3, got %v", i, tok)
		}
	}
}

func TestScanSkipsWhitespace(t *testing.T) {
	want := []tokenWant{
		{TokenIdentifier, 3, 4},
		{TokenSemicolon, 6, 7},
		{TokenEOF, 8, 8},
	}
	if diff := cmp.Diff(want, scanAll(t, " \t\na\r\n;\n")); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenKindLabel(t *testing.T) {
	tests := map[TokenKind]string{
		TokenIdentifier: "identifier",
		TokenNumber:     "number",
		TokenString:     "string",
		TokenEOF:        "end of input",
		TokenSemicolon:  "';'",
		TokenLet:        "'let'",
		TokenStarStar:   "'**'",
	}
	for kind, want := range tests {
		if got := kind.Label(); got != want {
			t.Fatalf("%s: expected label %q, got %q", kind, want, got)
		}
	}
}

func TestKeywordsAreReservedAndSorted(t *testing.T) {
	words := Keywords()
	if len(words) != 16 {
		t.Fatalf("expected 16 keywords, got %d (%v)", len(words), words)
	}
	for i, word := range words {
		if i > 0 && words[i-1] >= word {
			t.Fatalf("keywords not sorted: %v", words)
		}
		if lookupIdent(word) == TokenIdentifier {
			t.Fatalf("%q should scan as a keyword", word)
		}
	}
}
