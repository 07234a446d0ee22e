package main

import (
	"fmt"
	"strings"

	"github.com/thinglang/thing/thing"
)

// session is the state shared by both REPL front ends: one interpreter whose
// bindings survive across entries, with each entry parsed on its own.
type session struct {
	cfg    Config
	interp *thing.Interpreter
	echoed []string
}

func newSession(cfg Config) *session {
	s := &session{cfg: cfg}
	s.interp = thing.NewInterpreter(thing.Config{
		Echo: func(v thing.Value) { s.echoed = append(s.echoed, v.String()) },
	})
	return s
}

// eval runs one entry and returns the printed values, one per line.
func (s *session) eval(input string) (string, error) {
	s.echoed = s.echoed[:0]
	parser := thing.NewParser(input)
	parser.SetMaxDepth(s.cfg.MaxDepth)
	script, err := parser.Parse()
	if err != nil {
		return "", err
	}
	err = s.interp.Interpret(script)
	return strings.Join(s.echoed, "\n"), err
}

func (s *session) reset() {
	s.interp.Reset()
}

// completions returns keywords and bound names starting with prefix.
func (s *session) completions(prefix string) []string {
	var out []string
	for _, word := range thing.Keywords() {
		if strings.HasPrefix(word, prefix) {
			out = append(out, word)
		}
	}
	for _, name := range s.interp.Env().Names() {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func (s *session) vars() []string {
	env := s.interp.Env()
	names := env.Names()
	lines := make([]string, 0, len(names))
	for _, name := range names {
		val, _ := env.Get(name)
		lines = append(lines, fmt.Sprintf("%s = %s", name, val))
	}
	return lines
}

// metaCommand is a REPL directive; entries starting with ':' are never
// handed to the parser.
type metaCommand struct {
	name  string
	short string
	about string
}

var metaCommands = []metaCommand{
	{":help", ":h", "list these commands"},
	{":vars", ":v", "show the global bindings"},
	{":clear", ":c", "clear the transcript"},
	{":reset", ":r", "drop every binding"},
	{":quit", ":q", "leave the REPL"},
}

// lookupMetaCommand resolves the first word of input to a command name.
func lookupMetaCommand(input string) (name, word string, ok bool) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", "", false
	}
	word = fields[0]
	for _, c := range metaCommands {
		if word == c.name || word == c.short {
			return c.name, word, true
		}
	}
	return "", word, false
}

func metaCommandHelp() []string {
	lines := make([]string, 0, len(metaCommands))
	for _, c := range metaCommands {
		lines = append(lines, fmt.Sprintf("%-7s %-3s %s", c.name, c.short, c.about))
	}
	return lines
}
