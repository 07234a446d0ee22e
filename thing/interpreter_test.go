package thing

import (
	"errors"
	"strings"
	"testing"
)

type runResult struct {
	interp *Interpreter
	echoed []Value
}

func run(t *testing.T, source string) (runResult, error) {
	t.Helper()
	script, err := Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	var res runResult
	res.interp = NewInterpreter(Config{Echo: func(v Value) { res.echoed = append(res.echoed, v) }})
	err = res.interp.Interpret(script)
	return res, err
}

func mustRun(t *testing.T, source string) runResult {
	t.Helper()
	res, err := run(t, source)
	if err != nil {
		t.Fatalf("interpret %q: %v", source, err)
	}
	return res
}

func lastValue(t *testing.T, source string) Value {
	t.Helper()
	res := mustRun(t, source)
	if len(res.echoed) == 0 {
		t.Fatalf("%q produced no values", source)
	}
	return res.echoed[len(res.echoed)-1]
}

func TestInterpretExpressions(t *testing.T) {
	tests := []struct {
		source string
		want   Value
	}{
		{"1 + 2 * 3;", NewNumber(7)},
		{"2 ** 3 ** 2;", NewNumber(512)},
		{"(1 + 2) * 3;", NewNumber(9)},
		{"10 / 4;", NewNumber(2.5)},
		{"7 % 3;", NewNumber(1)},
		{"-7 % 3;", NewNumber(-1)},
		{"-2 ** 2;", NewNumber(4)},
		{"1 - 2 - 3;", NewNumber(-4)},
		{"1 < 2;", NewBool(true)},
		{"2 <= 2;", NewBool(true)},
		{"3 > 4;", NewBool(false)},
		{"3 >= 4;", NewBool(false)},
		{"not false;", NewBool(true)},
		{"not (1 == 1);", NewBool(false)},
		{"1 == true;", NewBool(false)},
		{"1 != false;", NewBool(true)},
		{"nil == nil;", NewBool(true)},
		{"nil == false;", NewBool(false)},
		{"1 + 1 == 2;", NewBool(true)},
	}
	for _, tt := range tests {
		if got := lastValue(t, tt.source); !got.Equal(tt.want) {
			t.Fatalf("%q: expected %s, got %s", tt.source, tt.want, got)
		}
	}
}

func TestInterpretShortCircuit(t *testing.T) {
	tests := []struct {
		source string
		want   Value
	}{
		{"false and (1 / 0);", NewBool(false)},
		{"true or (1 / 0);", NewBool(true)},
		{"nil and missing;", Nil()},
		{"1 and 2;", NewNumber(2)},
		{"nil or 5;", NewNumber(5)},
		{"false or nil;", Nil()},
		{"0 or false;", NewNumber(0)},
	}
	for _, tt := range tests {
		if got := lastValue(t, tt.source); !got.Equal(tt.want) || got.Kind() != tt.want.Kind() {
			t.Fatalf("%q: expected %s, got %s", tt.source, tt.want, got)
		}
	}
}

func TestInterpretAssignmentChain(t *testing.T) {
	res := mustRun(t, "let a; let b; a = b = 3;")
	for _, name := range []string{"a", "b"} {
		got, ok := res.interp.Env().Get(name)
		if !ok || !got.Equal(NewNumber(3)) {
			t.Fatalf("expected %s = 3, got %v (%v)", name, got, ok)
		}
	}
	if !res.interp.Last().Equal(NewNumber(3)) {
		t.Fatalf("assignment should yield the assigned value, got %s", res.interp.Last())
	}
}

func TestInterpretVarDefaultsToNil(t *testing.T) {
	res := mustRun(t, "let x;")
	got, ok := res.interp.Env().Get("x")
	if !ok || !got.IsNil() {
		t.Fatalf("expected x = nil, got %v (%v)", got, ok)
	}
}

func TestInterpretBlockScoping(t *testing.T) {
	res := mustRun(t, "let x = 0; { let x = 1; x = 2; x; } x;")
	if len(res.echoed) != 3 {
		t.Fatalf("expected 3 echoed values, got %v", res.echoed)
	}
	if !res.echoed[1].Equal(NewNumber(2)) {
		t.Fatalf("inner x should be 2, got %s", res.echoed[1])
	}
	if !res.echoed[2].Equal(NewNumber(0)) {
		t.Fatalf("outer x should be unchanged, got %s", res.echoed[2])
	}
	if res.interp.Env().Depth() != 1 {
		t.Fatalf("scope chain not balanced, depth %d", res.interp.Env().Depth())
	}

	res = mustRun(t, "{ let hidden = 1; }")
	if _, ok := res.interp.Env().Get("hidden"); ok {
		t.Fatalf("block-local binding escaped its scope")
	}
}

func TestInterpretAssignmentReachesOuterScope(t *testing.T) {
	if got := lastValue(t, "let x = 0; { { x = 5; } } x;"); !got.Equal(NewNumber(5)) {
		t.Fatalf("expected 5, got %s", got)
	}
}

func TestInterpretIf(t *testing.T) {
	tests := []struct {
		source string
		want   Value
	}{
		{"if true 1; else 2;", NewNumber(1)},
		{"if nil 1; else 2;", NewNumber(2)},
		{"if 0 1; else 2;", NewNumber(1)},
		{"let r = 0; if false r = 1; r;", NewNumber(0)},
		{"let r = 0; if 1 > 2 { r = 1; } else if 2 > 1 { r = 2; } else { r = 3; } r;", NewNumber(2)},
	}
	for _, tt := range tests {
		if got := lastValue(t, tt.source); !got.Equal(tt.want) {
			t.Fatalf("%q: expected %s, got %s", tt.source, tt.want, got)
		}
	}
}

func TestInterpretRuntimeErrors(t *testing.T) {
	tests := []struct {
		source string
		kind   RuntimeErrorKind
		target error
		at     string
	}{
		{"1 / 0;", DivisionByZero, ErrDivisionByZero, "/"},
		{"5 % 0;", DivisionByZero, ErrDivisionByZero, "%"},
		{"missing;", UndefinedVariable, ErrUndefinedVariable, "missing"},
		{"ghost = 1;", UndefinedVariable, ErrUndefinedVariable, "ghost"},
		{"not 1;", InvalidOperand, ErrInvalidOperand, "not 1"},
		{"-true;", InvalidOperand, ErrInvalidOperand, "-true"},
		{"1 + true;", InvalidOperand, ErrInvalidOperand, "+"},
		{"nil < 1;", InvalidOperand, ErrInvalidOperand, "<"},
		{"true ** 2;", InvalidOperand, ErrInvalidOperand, "**"},
	}
	for _, tt := range tests {
		_, err := run(t, tt.source)
		var rtErr *RuntimeError
		if !errors.As(err, &rtErr) {
			t.Fatalf("%q: expected RuntimeError, got %v", tt.source, err)
		}
		if rtErr.Kind != tt.kind {
			t.Fatalf("%q: expected %s, got %s", tt.source, tt.kind, rtErr.Kind)
		}
		if !errors.Is(err, tt.target) {
			t.Fatalf("%q: errors.Is(%s) failed", tt.source, tt.kind)
		}
		if rtErr.Span.Text() != tt.at {
			t.Fatalf("%q: expected error at %q, got %q", tt.source, tt.at, rtErr.Span.Text())
		}
	}
}

func TestInterpretRuntimeErrorMessage(t *testing.T) {
	_, err := run(t, "let a = 1;\na + missing;")
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "runtime error at 2:5: variable is not defined 'missing'") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, " 2 | a + missing;") {
		t.Fatalf("expected code frame in %q", msg)
	}
}

func TestInterpretFailedAssignmentDoesNotDefine(t *testing.T) {
	res, err := run(t, "ghost = 1;")
	if err == nil {
		t.Fatalf("expected error")
	}
	if _, ok := res.interp.Env().Get("ghost"); ok {
		t.Fatalf("assignment must not create a global")
	}
}

func TestInterpretStopsAtFirstError(t *testing.T) {
	res, err := run(t, "let a = 1; a = 1 / 0; a = 3;")
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected division by zero, got %v", err)
	}
	if got, _ := res.interp.Env().Get("a"); !got.Equal(NewNumber(1)) {
		t.Fatalf("expected a to remain 1, got %s", got)
	}
}

func TestInterpretScopesBalancedOnError(t *testing.T) {
	res, err := run(t, "let x = 1; { let y = 2; { 1 / 0; } }")
	if err == nil {
		t.Fatalf("expected error")
	}
	if depth := res.interp.Env().Depth(); depth != 1 {
		t.Fatalf("expected depth 1 after error, got %d", depth)
	}
	if _, ok := res.interp.Env().Get("y"); ok {
		t.Fatalf("inner binding leaked after error")
	}
}

func TestInterpreterPersistsAcrossScripts(t *testing.T) {
	interp := NewInterpreter(Config{})
	for _, src := range []string{"let a = 1;", "a = a + 1;", "a * 10;"} {
		script, err := Parse(src)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if err := interp.Interpret(script); err != nil {
			t.Fatalf("interpret %q: %v", src, err)
		}
	}
	if !interp.Last().Equal(NewNumber(20)) {
		t.Fatalf("expected 20, got %s", interp.Last())
	}

	interp.Reset()
	if _, ok := interp.Env().Get("a"); ok {
		t.Fatalf("reset should clear bindings")
	}
}

func TestInterpretRecordsFunctions(t *testing.T) {
	res := mustRun(t, "func add(a, b) { a + b; }")
	fn, ok := res.interp.Function("add")
	if !ok {
		t.Fatalf("expected add to be recorded")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("unexpected params %v", fn.Params)
	}
	if _, ok := res.interp.Env().Get("add"); ok {
		t.Fatalf("functions should not be bound as values")
	}
	if len(res.echoed) != 0 {
		t.Fatalf("function bodies must not run at declaration, echoed %v", res.echoed)
	}
}
