package thing

import (
	"math"
	"strconv"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindBool
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	default:
		return "nil"
	}
}

// Value is a number, a bool or nil. The zero Value is nil.
type Value struct {
	kind ValueKind
	num  float64
	b    bool
}

func Nil() Value { return Value{} }

func NewNumber(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

func NewBool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNil() bool     { return v.kind == KindNil }

// Number returns the numeric payload; it is 0 for non-numbers.
func (v Value) Number() float64 { return v.num }

// Bool returns the boolean payload; it is false for non-bools.
func (v Value) Bool() bool { return v.b }

// Truthy: numbers are always true, nil is false, bools are themselves.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return true
	case KindBool:
		return v.b
	default:
		return false
	}
}

// Equal compares structurally. Values of different kinds are never equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	default:
		return true
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return "nil"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
