package thing

import (
	"fmt"
	"strings"
)

// FormatScript renders the script as one S-expression per declaration.
func FormatScript(script *Script) string {
	lines := make([]string, 0, len(script.Decls))
	for _, decl := range script.Decls {
		lines = append(lines, FormatDecl(decl))
	}
	return strings.Join(lines, "\n")
}

func FormatDecl(decl Decl) string {
	switch d := decl.(type) {
	case *VarDecl:
		if d.Init == nil {
			return fmt.Sprintf("(let %s)", d.Name)
		}
		return fmt.Sprintf("(let %s %s)", d.Name, FormatExpr(d.Init))
	case *FuncDecl:
		return fmt.Sprintf("(func %s (%s) %s)", d.Name, strings.Join(d.Params, " "), FormatStmt(d.Body))
	case *StmtDecl:
		return FormatStmt(d.Stmt)
	}
	return fmt.Sprintf("<unknown decl %T>", decl)
}

func FormatStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *BlockStmt:
		parts := []string{"block"}
		for _, decl := range s.Decls {
			parts = append(parts, FormatDecl(decl))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case *IfStmt:
		if s.Alternative == nil {
			return fmt.Sprintf("(if %s %s)", FormatExpr(s.Predicate), FormatStmt(s.Consequent))
		}
		return fmt.Sprintf("(if %s %s %s)", FormatExpr(s.Predicate), FormatStmt(s.Consequent), FormatStmt(s.Alternative))
	case *ExprStmt:
		return FormatExpr(s.Expr) + ";"
	}
	return fmt.Sprintf("<unknown stmt %T>", stmt)
}

func FormatExpr(expr Expr) string {
	switch e := expr.(type) {
	case *Literal:
		return e.Value.String()
	case *Identifier:
		return e.Name
	case *AssignExpr:
		return fmt.Sprintf("(= %s %s)", e.Target.Name, FormatExpr(e.Value))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op, FormatExpr(e.Left), FormatExpr(e.Right))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Op, FormatExpr(e.Operand))
	}
	return fmt.Sprintf("<unknown expr %T>", expr)
}
