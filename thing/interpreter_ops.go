package thing

import (
	"fmt"
	"math"
)

func (in *Interpreter) eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *Literal:
		return e.Value, nil
	case *Identifier:
		val, ok := in.env.Get(e.Name)
		if !ok {
			return Value{}, &RuntimeError{Kind: UndefinedVariable, Name: e.Name, Span: e.Span()}
		}
		return val, nil
	case *AssignExpr:
		val, err := in.eval(e.Value)
		if err != nil {
			return Value{}, err
		}
		if _, ok := in.env.Set(e.Target.Name, val); !ok {
			return Value{}, &RuntimeError{Kind: UndefinedVariable, Name: e.Target.Name, Span: e.Target.Span()}
		}
		return val, nil
	case *BinaryExpr:
		if e.Op == OpAnd || e.Op == OpOr {
			return in.evalLogical(e)
		}
		left, err := in.eval(e.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return Value{}, err
		}
		return binaryOp(e.Op, left, right, e.OpSpan)
	case *UnaryExpr:
		operand, err := in.eval(e.Operand)
		if err != nil {
			return Value{}, err
		}
		return unaryOp(e.Op, operand, e.Span())
	default:
		panic(fmt.Sprintf("thing: unknown expression %T", expr))
	}
}

// evalLogical short-circuits and yields an operand, not a coerced bool.
func (in *Interpreter) evalLogical(e *BinaryExpr) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	shortCircuit := left.Truthy()
	if e.Op == OpAnd {
		shortCircuit = !shortCircuit
	}
	if shortCircuit {
		return left, nil
	}
	return in.eval(e.Right)
}

func binaryOp(op Operator, left, right Value, at Span) (Value, error) {
	switch op {
	case OpEq:
		return NewBool(left.Equal(right)), nil
	case OpNe:
		return NewBool(!left.Equal(right)), nil
	}

	a, b, err := numberOperands(op, left, right, at)
	if err != nil {
		return Value{}, err
	}

	switch op {
	case OpLt:
		return NewBool(a < b), nil
	case OpGt:
		return NewBool(a > b), nil
	case OpLe:
		return NewBool(a <= b), nil
	case OpGe:
		return NewBool(a >= b), nil
	case OpAdd:
		return NewNumber(a + b), nil
	case OpSub:
		return NewNumber(a - b), nil
	case OpMul:
		return NewNumber(a * b), nil
	case OpDiv:
		if b == 0 {
			return Value{}, &RuntimeError{Kind: DivisionByZero, Span: at}
		}
		return NewNumber(a / b), nil
	case OpMod:
		if b == 0 {
			return Value{}, &RuntimeError{Kind: DivisionByZero, Span: at}
		}
		return NewNumber(math.Mod(a, b)), nil
	case OpExp:
		return NewNumber(math.Pow(a, b)), nil
	default:
		panic(fmt.Sprintf("thing: %s is not a binary operator", op))
	}
}

func numberOperands(op Operator, left, right Value, at Span) (float64, float64, error) {
	if left.Kind() != KindNumber || right.Kind() != KindNumber {
		return 0, 0, &RuntimeError{
			Kind:   InvalidOperand,
			Detail: fmt.Sprintf("%s %s %s", left.Kind(), op, right.Kind()),
			Span:   at,
		}
	}
	return left.Number(), right.Number(), nil
}

func unaryOp(op Operator, operand Value, at Span) (Value, error) {
	switch op {
	case OpNot:
		if operand.Kind() != KindBool {
			return Value{}, &RuntimeError{Kind: InvalidOperand, Detail: fmt.Sprintf("not %s", operand.Kind()), Span: at}
		}
		return NewBool(!operand.Bool()), nil
	case OpSub:
		if operand.Kind() != KindNumber {
			return Value{}, &RuntimeError{Kind: InvalidOperand, Detail: fmt.Sprintf("-%s", operand.Kind()), Span: at}
		}
		return NewNumber(-operand.Number()), nil
	default:
		panic(fmt.Sprintf("thing: %s is not a prefix operator", op))
	}
}
