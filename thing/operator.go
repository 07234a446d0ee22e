package thing

// Operator is a token that may appear in prefix or infix position.
type Operator int

const (
	OpAssign Operator = iota
	OpOr
	OpAnd
	OpNot
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp
)

var operatorTokens = map[TokenKind]Operator{
	TokenEqual:        OpAssign,
	TokenOr:           OpOr,
	TokenAnd:          OpAnd,
	TokenNot:          OpNot,
	TokenEqualEqual:   OpEq,
	TokenBangEqual:    OpNe,
	TokenLess:         OpLt,
	TokenGreater:      OpGt,
	TokenLessEqual:    OpLe,
	TokenGreaterEqual: OpGe,
	TokenPlus:         OpAdd,
	TokenMinus:        OpSub,
	TokenStar:         OpMul,
	TokenSlash:        OpDiv,
	TokenPercent:      OpMod,
	TokenStarStar:     OpExp,
}

func operatorFor(kind TokenKind) (Operator, bool) {
	op, ok := operatorTokens[kind]
	return op, ok
}

// PrefixBindingPower returns the right binding power of a prefix operator.
func (op Operator) PrefixBindingPower() (int, bool) {
	switch op {
	case OpNot:
		return 7, true
	case OpSub:
		return 19, true
	}
	return 0, false
}

// InfixBindingPower returns the (left, right) binding powers of an infix
// operator. Left < right associates left, left > right associates right.
func (op Operator) InfixBindingPower() (int, int, bool) {
	switch op {
	case OpAssign:
		return 2, 1, true
	case OpOr:
		return 3, 4, true
	case OpAnd:
		return 5, 6, true
	case OpEq, OpNe:
		return 9, 10, true
	case OpLt, OpGt, OpLe, OpGe:
		return 11, 12, true
	case OpAdd, OpSub:
		return 13, 14, true
	case OpMul, OpDiv, OpMod:
		return 15, 16, true
	case OpExp:
		return 18, 17, true
	}
	return 0, 0, false
}

func (op Operator) String() string {
	switch op {
	case OpAssign:
		return "="
	case OpOr:
		return "or"
	case OpAnd:
		return "and"
	case OpNot:
		return "not"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpGt:
		return ">"
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	case OpExp:
		return "**"
	}
	return "?"
}
