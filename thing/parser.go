package thing

// DefaultMaxDepth bounds how deeply statements and expressions may nest.
const DefaultMaxDepth = 256

// Parser builds a Script from source text. It keeps a single token of
// lookahead and stops at the first error.
type Parser struct {
	scanner *Scanner
	source  string

	peeked   Token
	hasPeek  bool
	depth    int
	maxDepth int
}

func NewParser(source string) *Parser {
	return &Parser{
		scanner:  NewScanner(source),
		source:   source,
		maxDepth: DefaultMaxDepth,
	}
}

// SetMaxDepth changes the nesting limit; n <= 0 restores the default.
func (p *Parser) SetMaxDepth(n int) {
	if n <= 0 {
		n = DefaultMaxDepth
	}
	p.maxDepth = n
}

// Parse parses source with the default settings.
func Parse(source string) (*Script, error) {
	return NewParser(source).Parse()
}

func (p *Parser) Parse() (*Script, error) {
	script := &Script{}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.IsEOF() {
			return script, nil
		}
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		script.Decls = append(script.Decls, decl)
	}
}

func (p *Parser) peek() (Token, error) {
	if p.hasPeek {
		return p.peeked, nil
	}
	tok, err := p.scanner.Scan()
	if err != nil {
		return Token{}, fromScanError(err)
	}
	p.peeked = tok
	p.hasPeek = true
	return tok, nil
}

func (p *Parser) advance() (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	p.hasPeek = false
	return tok, nil
}

func (p *Parser) advanceIf(kind TokenKind) (bool, error) {
	tok, err := p.peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != kind {
		return false, nil
	}
	p.hasPeek = false
	return true, nil
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.peek()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, p.errorExpected(tok, kind)
	}
	p.hasPeek = false
	return tok, nil
}

func (p *Parser) enter(at Span) error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorAt(at, "nesting too deep (limit %d)", p.maxDepth)
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) declaration() (Decl, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	switch tok.Kind {
	case TokenLet:
		return p.varDecl()
	case TokenFunc:
		return p.funcDecl()
	default:
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		return &StmtDecl{Stmt: stmt}, nil
	}
}

func (p *Parser) statement() (Stmt, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if err := p.enter(tok.Span); err != nil {
		return nil, err
	}
	defer p.leave()

	switch tok.Kind {
	case TokenLBrace:
		block, err := p.blockStmt()
		if err != nil {
			return nil, err
		}
		return block, nil
	case TokenIf:
		return p.ifStmt()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) blockStmt() (*BlockStmt, error) {
	open, err := p.expect(TokenLBrace)
	if err != nil {
		return nil, err
	}

	var decls []Decl
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF || tok.Kind == TokenRBrace {
			break
		}
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}

	closing, err := p.expect(TokenRBrace)
	if err != nil {
		return nil, err
	}
	return &BlockStmt{Decls: decls, span: open.Span.To(closing.Span)}, nil
}

func (p *Parser) ifStmt() (Stmt, error) {
	keyword, err := p.expect(TokenIf)
	if err != nil {
		return nil, err
	}
	predicate, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	consequent, err := p.statement()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Predicate: predicate, Consequent: consequent, span: keyword.Span.To(consequent.Span())}
	hasElse, err := p.advanceIf(TokenElse)
	if err != nil {
		return nil, err
	}
	if hasElse {
		alternative, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmt.Alternative = alternative
		stmt.span = keyword.Span.To(alternative.Span())
	}
	return stmt, nil
}

func (p *Parser) exprStmt() (Stmt, error) {
	expr, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Expr: expr, span: expr.Span().To(semi.Span)}, nil
}

func (p *Parser) varDecl() (Decl, error) {
	keyword, err := p.expect(TokenLet)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Name: name.Text()}
	hasInit, err := p.advanceIf(TokenEqual)
	if err != nil {
		return nil, err
	}
	if hasInit {
		if decl.Init, err = p.expression(0); err != nil {
			return nil, err
		}
	}

	semi, err := p.expect(TokenSemicolon)
	if err != nil {
		return nil, err
	}
	decl.span = keyword.Span.To(semi.Span)
	return decl, nil
}

func (p *Parser) funcDecl() (Decl, error) {
	keyword, err := p.expect(TokenFunc)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	params := []string{}
	paramSpans := []Span{}
	closeParen, err := p.advanceIf(TokenRParen)
	if err != nil {
		return nil, err
	}
	if !closeParen {
		for {
			param, err := p.expect(TokenIdentifier)
			if err != nil {
				return nil, err
			}
			params = append(params, param.Text())
			paramSpans = append(paramSpans, param.Span)
			more, err := p.advanceIf(TokenComma)
			if err != nil {
				return nil, err
			}
			if !more {
				break
			}
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}

	body, err := p.blockStmt()
	if err != nil {
		return nil, err
	}
	return &FuncDecl{
		Name:       name.Text(),
		Params:     params,
		ParamSpans: paramSpans,
		Body:       body,
		span:       keyword.Span.To(body.Span()),
	}, nil
}
