package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/thinglang/thing/thing"
)

type lintWarning struct {
	Span    thing.Span
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("thing analyze: script path required")
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}

	path := fs.Arg(0)
	source, err := readSource(path, logger)
	if err != nil {
		return err
	}
	script, err := parseSource(source, cfg, logger)
	if err != nil {
		return fmt.Errorf("analysis parse failed: %w", err)
	}

	warnings := analyzeScript(script)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}
	for _, warning := range warnings {
		fmt.Printf("%s:%d:%d: %s\n", path, warning.Span.Line(), warning.Span.Column(), warning.Message)
	}
	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

// analyzeScript resolves names the way the interpreter would and reports
// reads of undeclared names, unused variables and constant division by zero.
func analyzeScript(script *thing.Script) []lintWarning {
	r := &resolver{}
	r.push()
	for _, decl := range script.Decls {
		r.decl(decl)
	}
	r.pop()

	sort.SliceStable(r.warnings, func(i, j int) bool {
		return r.warnings[i].Span.Start() < r.warnings[j].Span.Start()
	})
	return r.warnings
}

type binding struct {
	span thing.Span
	used bool
	// params are never reported as unused.
	param bool
}

type resolver struct {
	scopes   []map[string]*binding
	order    [][]string
	warnings []lintWarning
}

func (r *resolver) warn(span thing.Span, format string, args ...any) {
	r.warnings = append(r.warnings, lintWarning{Span: span, Message: fmt.Sprintf(format, args...)})
}

func (r *resolver) push() {
	r.scopes = append(r.scopes, make(map[string]*binding))
	r.order = append(r.order, nil)
}

func (r *resolver) pop() {
	last := len(r.scopes) - 1
	scope := r.scopes[last]
	for _, name := range r.order[last] {
		if b := scope[name]; !b.used && !b.param {
			r.warn(b.span, "variable '%s' is declared but never read", name)
		}
	}
	r.scopes = r.scopes[:last]
	r.order = r.order[:last]
}

func (r *resolver) declare(name string, span thing.Span, param bool) {
	last := len(r.scopes) - 1
	if prev, ok := r.scopes[last][name]; ok {
		r.warn(span, "variable '%s' is redeclared in the same scope", name)
		if !prev.used && !prev.param {
			r.warn(prev.span, "variable '%s' is declared but never read", name)
		}
	} else {
		r.order[last] = append(r.order[last], name)
	}
	r.scopes[last][name] = &binding{span: span, param: param}
}

func (r *resolver) lookup(name string) *binding {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if b, ok := r.scopes[i][name]; ok {
			return b
		}
	}
	return nil
}

func (r *resolver) decl(decl thing.Decl) {
	switch d := decl.(type) {
	case *thing.VarDecl:
		if d.Init != nil {
			r.expr(d.Init)
		}
		r.declare(d.Name, d.Span(), false)
	case *thing.FuncDecl:
		r.push()
		for i, param := range d.Params {
			span := d.Span()
			if i < len(d.ParamSpans) {
				span = d.ParamSpans[i]
			}
			r.declare(param, span, true)
		}
		r.stmt(d.Body)
		r.pop()
	case *thing.StmtDecl:
		r.stmt(d.Stmt)
	}
}

func (r *resolver) stmt(stmt thing.Stmt) {
	switch s := stmt.(type) {
	case *thing.BlockStmt:
		r.push()
		for _, decl := range s.Decls {
			r.decl(decl)
		}
		r.pop()
	case *thing.IfStmt:
		r.expr(s.Predicate)
		r.stmt(s.Consequent)
		if s.Alternative != nil {
			r.stmt(s.Alternative)
		}
	case *thing.ExprStmt:
		r.expr(s.Expr)
	}
}

func (r *resolver) expr(expr thing.Expr) {
	switch e := expr.(type) {
	case *thing.Identifier:
		if b := r.lookup(e.Name); b != nil {
			b.used = true
		} else {
			r.warn(e.Span(), "undefined variable '%s'", e.Name)
		}
	case *thing.AssignExpr:
		r.expr(e.Value)
		if r.lookup(e.Target.Name) == nil {
			r.warn(e.Target.Span(), "assignment to undefined variable '%s'", e.Target.Name)
		}
	case *thing.BinaryExpr:
		r.expr(e.Left)
		r.expr(e.Right)
		if e.Op == thing.OpDiv || e.Op == thing.OpMod {
			if lit, ok := e.Right.(*thing.Literal); ok && lit.Value.Kind() == thing.KindNumber && lit.Value.Number() == 0 {
				r.warn(e.OpSpan, "division by zero")
			}
		}
	case *thing.UnaryExpr:
		r.expr(e.Operand)
	}
}
