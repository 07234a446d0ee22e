package thing

import (
	"errors"
	"strconv"
)

// expression parses by precedence climbing, consuming infix operators whose
// left binding power is at least minBP.
func (p *Parser) expression(minBP int) (Expr, error) {
	tok, err := p.advance()
	if err != nil {
		return nil, err
	}
	if err := p.enter(tok.Span); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.prefix(tok)
	if err != nil {
		return nil, err
	}

	for {
		next, err := p.peek()
		if err != nil {
			return nil, err
		}
		op, ok := operatorFor(next.Kind)
		if !ok {
			break
		}
		leftBP, rightBP, ok := op.InfixBindingPower()
		if !ok || leftBP < minBP {
			break
		}

		if op == OpAssign {
			// Assignment only appears at the top of an expression statement
			// or initializer; everywhere else it ends the expression.
			if minBP != 0 {
				break
			}
			p.hasPeek = false
			target, ok := left.(*Identifier)
			if !ok {
				return nil, p.errorAt(next.Span, "invalid assignment target")
			}
			value, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			left = &AssignExpr{Target: target, Value: value, span: left.Span().To(value.Span())}
			continue
		}

		p.hasPeek = false
		right, err := p.expression(rightBP)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, OpSpan: next.Span, span: left.Span().To(right.Span())}
	}

	return left, nil
}

func (p *Parser) prefix(tok Token) (Expr, error) {
	switch tok.Kind {
	case TokenIdentifier:
		return &Identifier{Name: tok.Text(), span: tok.Span}, nil
	case TokenNumber:
		return p.numberLiteral(tok)
	case TokenTrue:
		return &Literal{Value: NewBool(true), span: tok.Span}, nil
	case TokenFalse:
		return &Literal{Value: NewBool(false), span: tok.Span}, nil
	case TokenNil:
		return &Literal{Value: Nil(), span: tok.Span}, nil
	case TokenString:
		return nil, p.errorAt(tok.Span, "string values are not supported")
	case TokenLParen:
		inner, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return inner, nil
	}

	op, ok := operatorFor(tok.Kind)
	if !ok {
		return nil, p.errorUnexpected(tok)
	}
	rightBP, ok := op.PrefixBindingPower()
	if !ok {
		return nil, p.errorUnexpected(tok)
	}
	operand, err := p.expression(rightBP)
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Op: op, Operand: operand, span: tok.Span.To(operand.Span())}, nil
}

func (p *Parser) numberLiteral(tok Token) (Expr, error) {
	value, err := strconv.ParseFloat(tok.Text(), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return nil, p.errorAt(tok.Span, "invalid number literal")
	}
	return &Literal{Value: NewNumber(value), span: tok.Span}, nil
}
