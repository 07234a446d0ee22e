package thing

type Node interface {
	Span() Span
}

type Decl interface {
	Node
	declNode()
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type Script struct {
	Decls []Decl
}

// VarDecl is `let name = init;`. Init is nil when the initializer is omitted.
type VarDecl struct {
	Name string
	Init Expr
	span Span
}

func (d *VarDecl) declNode()  {}
func (d *VarDecl) Span() Span { return d.span }

type FuncDecl struct {
	Name   string
	Params []string
	// ParamSpans holds the source span of each entry in Params.
	ParamSpans []Span
	Body       *BlockStmt
	span       Span
}

func (d *FuncDecl) declNode()  {}
func (d *FuncDecl) Span() Span { return d.span }

// StmtDecl wraps a statement appearing in declaration position.
type StmtDecl struct {
	Stmt Stmt
}

func (d *StmtDecl) declNode()  {}
func (d *StmtDecl) Span() Span { return d.Stmt.Span() }

type BlockStmt struct {
	Decls []Decl
	span  Span
}

func (s *BlockStmt) stmtNode()  {}
func (s *BlockStmt) Span() Span { return s.span }

// IfStmt branches are statements, never bare declarations.
type IfStmt struct {
	Predicate   Expr
	Consequent  Stmt
	Alternative Stmt
	span        Span
}

func (s *IfStmt) stmtNode()  {}
func (s *IfStmt) Span() Span { return s.span }

type ExprStmt struct {
	Expr Expr
	span Span
}

func (s *ExprStmt) stmtNode()  {}
func (s *ExprStmt) Span() Span { return s.span }

type Literal struct {
	Value Value
	span  Span
}

func (e *Literal) exprNode()  {}
func (e *Literal) Span() Span { return e.span }

type Identifier struct {
	Name string
	span Span
}

func (e *Identifier) exprNode()  {}
func (e *Identifier) Span() Span { return e.span }

type AssignExpr struct {
	Target *Identifier
	Value  Expr
	span   Span
}

func (e *AssignExpr) exprNode()  {}
func (e *AssignExpr) Span() Span { return e.span }

type BinaryExpr struct {
	Op    Operator
	Left  Expr
	Right Expr
	// OpSpan locates the operator token.
	OpSpan Span
	span   Span
}

func (e *BinaryExpr) exprNode()  {}
func (e *BinaryExpr) Span() Span { return e.span }

type UnaryExpr struct {
	Op      Operator
	Operand Expr
	span    Span
}

func (e *UnaryExpr) exprNode()  {}
func (e *UnaryExpr) Span() Span { return e.span }
