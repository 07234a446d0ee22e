package thing

import (
	"math"
	"strings"
)

// Print renders a script as source text in canonical layout: one
// declaration per line, two-space block indentation and only the
// parentheses the grammar needs. Parsing the output yields the same tree,
// except that an else-less if nested inside an if/else consequent is
// wrapped in braces.
func Print(script *Script) string {
	var p printer
	for _, decl := range script.Decls {
		p.decl(decl)
	}
	return p.b.String()
}

type printer struct {
	b      strings.Builder
	indent int
}

func (p *printer) line() {
	p.b.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) decl(decl Decl) {
	p.line()
	switch d := decl.(type) {
	case *VarDecl:
		p.b.WriteString("let ")
		p.b.WriteString(d.Name)
		if d.Init != nil {
			p.b.WriteString(" = ")
			p.b.WriteString(printExpr(d.Init).text)
		}
		p.b.WriteString(";")
	case *FuncDecl:
		p.b.WriteString("func ")
		p.b.WriteString(d.Name)
		p.b.WriteString("(")
		p.b.WriteString(strings.Join(d.Params, ", "))
		p.b.WriteString(") ")
		p.stmt(d.Body)
	case *StmtDecl:
		p.stmt(d.Stmt)
	}
	p.b.WriteString("\n")
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *BlockStmt:
		if len(s.Decls) == 0 {
			p.b.WriteString("{}")
			return
		}
		p.b.WriteString("{\n")
		p.indent++
		for _, decl := range s.Decls {
			p.decl(decl)
		}
		p.indent--
		p.line()
		p.b.WriteString("}")
	case *IfStmt:
		p.b.WriteString("if ")
		p.b.WriteString(printExpr(s.Predicate).text)
		p.b.WriteString(" ")
		switch c := s.Consequent.(type) {
		case *ExprStmt:
			// A leading '-' would be read as subtraction from the predicate.
			text := printExpr(c.Expr).text
			if strings.HasPrefix(text, "-") {
				text = "(" + text + ")"
			}
			p.b.WriteString(text)
			p.b.WriteString(";")
		default:
			if s.Alternative != nil && danglingIf(s.Consequent) {
				p.stmt(&BlockStmt{Decls: []Decl{&StmtDecl{Stmt: s.Consequent}}})
			} else {
				p.stmt(s.Consequent)
			}
		}
		if s.Alternative != nil {
			p.b.WriteString(" else ")
			p.stmt(s.Alternative)
		}
	case *ExprStmt:
		p.b.WriteString(printExpr(s.Expr).text)
		p.b.WriteString(";")
	}
}

// danglingIf reports whether stmt ends in an if without an else, which
// would capture a following else.
func danglingIf(stmt Stmt) bool {
	s, ok := stmt.(*IfStmt)
	if !ok {
		return false
	}
	return s.Alternative == nil || danglingIf(s.Alternative)
}

const tight = math.MaxInt

// fragment is printed expression text plus the weakest binding power
// exposed on each edge. Atoms and parenthesized text expose none.
type fragment struct {
	text        string
	left, right int
}

func (f fragment) wrap() fragment {
	return fragment{text: "(" + f.text + ")", left: tight, right: tight}
}

func printExpr(expr Expr) fragment {
	switch e := expr.(type) {
	case *Literal:
		text := e.span.Text()
		if e.Value.Kind() != KindNumber || text == "" {
			text = e.Value.String()
		}
		return fragment{text: text, left: tight, right: tight}
	case *Identifier:
		return fragment{text: e.Name, left: tight, right: tight}
	case *AssignExpr:
		// Assignment only parses at the top of an expression and its value
		// runs to the end, so it binds weaker than anything on both sides.
		value := printExpr(e.Value)
		return fragment{text: e.Target.Name + " = " + value.text}
	case *BinaryExpr:
		lbp, rbp, _ := e.Op.InfixBindingPower()
		left := printExpr(e.Left)
		if left.right <= lbp {
			left = left.wrap()
		}
		right := printExpr(e.Right)
		if right.left < rbp {
			right = right.wrap()
		}
		return fragment{
			text:  left.text + " " + e.Op.String() + " " + right.text,
			left:  min(lbp, left.left),
			right: min(rbp, right.right),
		}
	case *UnaryExpr:
		bp, _ := e.Op.PrefixBindingPower()
		operand := printExpr(e.Operand)
		if operand.left < bp {
			operand = operand.wrap()
		}
		sep := ""
		if e.Op == OpNot || strings.HasPrefix(operand.text, "-") {
			sep = " "
		}
		return fragment{
			text:  e.Op.String() + sep + operand.text,
			left:  tight,
			right: min(bp, operand.right),
		}
	}
	return fragment{text: FormatExpr(expr), left: tight, right: tight}
}
