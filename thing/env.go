package thing

import "sort"

type scope struct {
	parent *scope
	values map[string]Value
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, values: make(map[string]Value)}
}

// Env is a chain of scopes. The head is the innermost scope; the chain is
// rooted at the global scope, which is never popped.
type Env struct {
	head  *scope
	depth int
}

func NewEnv() *Env {
	return &Env{head: newScope(nil), depth: 1}
}

// Push enters a new, empty innermost scope.
func (e *Env) Push() {
	e.head = newScope(e.head)
	e.depth++
}

// Pop leaves the innermost scope. Popping the global scope is a bug in the
// caller and panics.
func (e *Env) Pop() {
	if e.head.parent == nil {
		panic("thing: pop called on root environment")
	}
	e.head = e.head.parent
	e.depth--
}

// Depth is the number of scopes in the chain, 1 for the global scope alone.
func (e *Env) Depth() int {
	return e.depth
}

// Define binds name in the innermost scope, shadowing any outer binding.
func (e *Env) Define(name string, val Value) {
	e.head.values[name] = val
}

func (e *Env) Get(name string) (Value, bool) {
	for s := e.head; s != nil; s = s.parent {
		if val, ok := s.values[name]; ok {
			return val, true
		}
	}
	return Value{}, false
}

// Set overwrites the nearest existing binding of name and returns the value
// it replaced. It never creates a binding.
func (e *Env) Set(name string, val Value) (Value, bool) {
	for s := e.head; s != nil; s = s.parent {
		if prev, ok := s.values[name]; ok {
			s.values[name] = val
			return prev, true
		}
	}
	return Value{}, false
}

// Bindings returns every visible binding; inner scopes win over outer ones.
func (e *Env) Bindings() map[string]Value {
	out := make(map[string]Value)
	for s := e.head; s != nil; s = s.parent {
		for name, val := range s.values {
			if _, seen := out[name]; !seen {
				out[name] = val
			}
		}
	}
	return out
}

// Names returns the visible binding names in sorted order.
func (e *Env) Names() []string {
	bindings := e.Bindings()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
