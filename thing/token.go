package thing

import (
	"fmt"
	"sort"
)

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	TokenLParen    TokenKind = "("
	TokenRParen    TokenKind = ")"
	TokenLBracket  TokenKind = "["
	TokenRBracket  TokenKind = "]"
	TokenLBrace    TokenKind = "{"
	TokenRBrace    TokenKind = "}"
	TokenPeriod    TokenKind = "."
	TokenSemicolon TokenKind = ";"
	TokenComma     TokenKind = ","

	TokenIdentifier TokenKind = "IDENTIFIER"
	TokenNumber     TokenKind = "NUMBER"
	TokenString     TokenKind = "STRING"
	TokenTrue       TokenKind = "true"
	TokenFalse      TokenKind = "false"
	TokenNil        TokenKind = "nil"

	TokenLet    TokenKind = "let"
	TokenMut    TokenKind = "mut"
	TokenFunc   TokenKind = "func"
	TokenClass  TokenKind = "class"
	TokenThis   TokenKind = "this"
	TokenReturn TokenKind = "return"
	TokenFor    TokenKind = "for"
	TokenWhile  TokenKind = "while"
	TokenIf     TokenKind = "if"
	TokenElse   TokenKind = "else"
	TokenAnd    TokenKind = "and"
	TokenOr     TokenKind = "or"
	TokenNot    TokenKind = "not"

	TokenStarStar TokenKind = "**"
	TokenStar     TokenKind = "*"
	TokenSlash    TokenKind = "/"
	TokenPercent  TokenKind = "%"
	TokenPlus     TokenKind = "+"
	TokenMinus    TokenKind = "-"

	TokenEqual        TokenKind = "="
	TokenPlusEqual    TokenKind = "+="
	TokenMinusEqual   TokenKind = "-="
	TokenStarEqual    TokenKind = "*="
	TokenSlashEqual   TokenKind = "/="
	TokenPercentEqual TokenKind = "%="

	TokenEqualEqual   TokenKind = "=="
	TokenBangEqual    TokenKind = "!="
	TokenLess         TokenKind = "<"
	TokenLessEqual    TokenKind = "<="
	TokenGreater      TokenKind = ">"
	TokenGreaterEqual TokenKind = ">="

	TokenEOF TokenKind = "EOF"
)

var keywords = map[string]TokenKind{
	"let":    TokenLet,
	"mut":    TokenMut,
	"func":   TokenFunc,
	"class":  TokenClass,
	"this":   TokenThis,
	"return": TokenReturn,
	"for":    TokenFor,
	"while":  TokenWhile,
	"if":     TokenIf,
	"else":   TokenElse,
	"and":    TokenAnd,
	"or":     TokenOr,
	"not":    TokenNot,
	"true":   TokenTrue,
	"false":  TokenFalse,
	"nil":    TokenNil,
}

// Keywords lists the reserved words in sorted order.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for word := range keywords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

func lookupIdent(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdentifier
}

// IsVariableLength reports whether tokens of this kind can have differing text.
func (k TokenKind) IsVariableLength() bool {
	switch k {
	case TokenIdentifier, TokenNumber, TokenString:
		return true
	}
	return false
}

// Label renders the kind for diagnostics: fixed-text kinds are quoted,
// variable-length kinds use their category name.
func (k TokenKind) Label() string {
	switch k {
	case TokenIdentifier:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenEOF:
		return "end of input"
	}
	return fmt.Sprintf("'%s'", string(k))
}

// Token is a classified slice of the source.
type Token struct {
	Span Span
	Kind TokenKind
}

func (t Token) IsEOF() bool {
	return t.Kind == TokenEOF
}

// Text returns the source text of the token.
func (t Token) Text() string {
	return t.Span.Text()
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q @%d..%d", t.Kind, t.Span.Text(), t.Span.start, t.Span.end)
}
