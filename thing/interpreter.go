package thing

import "fmt"

// Config controls how an Interpreter reports results.
type Config struct {
	// Echo receives the value of every evaluated expression statement.
	Echo func(Value)
}

// Interpreter walks a Script against its own scope chain. Bindings persist
// across calls to Interpret, so one instance can serve a whole REPL session.
type Interpreter struct {
	config    Config
	env       *Env
	functions map[string]*FuncDecl
	last      Value
}

func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{
		config:    cfg,
		env:       NewEnv(),
		functions: make(map[string]*FuncDecl),
	}
}

// Env exposes the scope chain for inspection after a run.
func (in *Interpreter) Env() *Env {
	return in.env
}

// Last is the value of the most recently evaluated expression statement.
func (in *Interpreter) Last() Value {
	return in.last
}

// Function returns a declared function. Functions are recorded but cannot
// be called: the language has no call syntax yet.
func (in *Interpreter) Function(name string) (*FuncDecl, bool) {
	fn, ok := in.functions[name]
	return fn, ok
}

// Reset discards every binding and declared function.
func (in *Interpreter) Reset() {
	in.env = NewEnv()
	in.functions = make(map[string]*FuncDecl)
	in.last = Value{}
}

// Interpret runs the declarations in order and stops at the first error.
func (in *Interpreter) Interpret(script *Script) error {
	for _, decl := range script.Decls {
		if err := in.execDecl(decl); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execDecl(decl Decl) error {
	switch d := decl.(type) {
	case *VarDecl:
		val := Nil()
		if d.Init != nil {
			v, err := in.eval(d.Init)
			if err != nil {
				return err
			}
			val = v
		}
		in.env.Define(d.Name, val)
		return nil
	case *FuncDecl:
		in.functions[d.Name] = d
		return nil
	case *StmtDecl:
		return in.execStmt(d.Stmt)
	default:
		panic(fmt.Sprintf("thing: unknown declaration %T", decl))
	}
}

func (in *Interpreter) execStmt(stmt Stmt) error {
	switch s := stmt.(type) {
	case *BlockStmt:
		return in.execBlock(s)
	case *IfStmt:
		predicate, err := in.eval(s.Predicate)
		if err != nil {
			return err
		}
		if predicate.Truthy() {
			return in.execStmt(s.Consequent)
		}
		if s.Alternative != nil {
			return in.execStmt(s.Alternative)
		}
		return nil
	case *ExprStmt:
		val, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		in.last = val
		if in.config.Echo != nil {
			in.config.Echo(val)
		}
		return nil
	default:
		panic(fmt.Sprintf("thing: unknown statement %T", stmt))
	}
}

func (in *Interpreter) execBlock(block *BlockStmt) error {
	in.env.Push()
	defer in.env.Pop()

	for _, decl := range block.Decls {
		if err := in.execDecl(decl); err != nil {
			return err
		}
	}
	return nil
}
