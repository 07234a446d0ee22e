package thing

import (
	"fmt"
	"strings"
)

// RuntimeErrorKind classifies evaluation failures.
type RuntimeErrorKind int

const (
	// InvalidOperand: an operator was applied to a value of the wrong kind.
	InvalidOperand RuntimeErrorKind = iota + 1
	// DivisionByZero: `/` or `%` with a zero right operand.
	DivisionByZero
	// UndefinedVariable: a read or assignment of a name with no binding.
	UndefinedVariable
)

func (k RuntimeErrorKind) String() string {
	switch k {
	case InvalidOperand:
		return "InvalidOperand"
	case DivisionByZero:
		return "DivisionByZero"
	case UndefinedVariable:
		return "UndefinedVariable"
	}
	return "RuntimeError"
}

func (k RuntimeErrorKind) message() string {
	switch k {
	case InvalidOperand:
		return "unsupported operand type"
	case DivisionByZero:
		return "division by zero is undefined"
	case UndefinedVariable:
		return "variable is not defined"
	}
	return "runtime error"
}

// Sentinels for errors.Is matching against a *RuntimeError.
var (
	ErrInvalidOperand    = &RuntimeError{Kind: InvalidOperand}
	ErrDivisionByZero    = &RuntimeError{Kind: DivisionByZero}
	ErrUndefinedVariable = &RuntimeError{Kind: UndefinedVariable}
)

type RuntimeError struct {
	Kind RuntimeErrorKind
	// Name is set for UndefinedVariable.
	Name string
	// Detail describes the offending operands, when known.
	Detail string
	Span   Span
}

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString("runtime error")
	if re.Span.source != "" {
		fmt.Fprintf(&b, " at %s", re.Span)
	}
	b.WriteString(": ")
	b.WriteString(re.Kind.message())
	if re.Name != "" {
		fmt.Fprintf(&b, " '%s'", re.Name)
	}
	if re.Detail != "" {
		fmt.Fprintf(&b, " (%s)", re.Detail)
	}
	if frame := FormatCodeFrame(re.Span); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// Is matches any RuntimeError of the same kind.
func (re *RuntimeError) Is(target error) bool {
	other, ok := target.(*RuntimeError)
	return ok && other.Kind == re.Kind
}
