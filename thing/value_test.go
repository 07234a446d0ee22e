package thing

import (
	"math"
	"testing"
)

func TestValueTruthiness(t *testing.T) {
	tests := []struct {
		value Value
		want  bool
	}{
		{NewNumber(0), true},
		{NewNumber(-1.5), true},
		{NewBool(true), true},
		{NewBool(false), false},
		{Nil(), false},
		{Value{}, false},
	}
	for _, tt := range tests {
		if got := tt.value.Truthy(); got != tt.want {
			t.Fatalf("%s: expected truthy=%v, got %v", tt.value, tt.want, got)
		}
	}
}

func TestValueEqualityAcrossKinds(t *testing.T) {
	if !NewNumber(1).Equal(NewNumber(1)) {
		t.Fatalf("equal numbers should compare equal")
	}
	if NewNumber(1).Equal(NewBool(true)) {
		t.Fatalf("number and bool must never be equal")
	}
	if NewNumber(0).Equal(Nil()) || NewBool(false).Equal(Nil()) {
		t.Fatalf("nil only equals nil")
	}
	if !Nil().Equal(Value{}) {
		t.Fatalf("nil should equal the zero value")
	}
	if NewNumber(math.NaN()).Equal(NewNumber(math.NaN())) {
		t.Fatalf("NaN should not equal itself")
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{NewNumber(7), "7"},
		{NewNumber(0.5), "0.5"},
		{NewNumber(-12.25), "-12.25"},
		{NewNumber(512), "512"},
		{NewNumber(math.Inf(1)), "inf"},
		{NewNumber(math.Inf(-1)), "-inf"},
		{NewNumber(math.NaN()), "NaN"},
		{NewBool(true), "true"},
		{Nil(), "nil"},
	}
	for _, tt := range tests {
		if got := tt.value.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
