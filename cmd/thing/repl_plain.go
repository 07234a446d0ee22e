package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

func isTerminal() bool {
	tty := func(f *os.File) bool {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return tty(os.Stdin) && tty(os.Stdout)
}

// runPlainREPL is the line-mode REPL used for pipes, dumb terminals and -plain.
func runPlainREPL(cfg Config, out io.Writer) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	s := newSession(cfg)
	ln.SetCompleter(func(line string) []string {
		idx := strings.LastIndexAny(line, " \t(") + 1
		var matches []string
		for _, c := range s.completions(line[idx:]) {
			matches = append(matches, line[:idx]+c)
		}
		return matches
	})

	read := func() (string, error) {
		line, err := ln.Prompt(cfg.Prompt)
		if err == nil && strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
		return line, err
	}
	return plainLoop(s, read, out)
}

// plainLoop evaluates lines until read reports EOF, an abort, or :quit.
func plainLoop(s *session, read func() (string, error), out io.Writer) error {
	for {
		line, err := read()
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, ":") {
			name, word, ok := lookupMetaCommand(input)
			switch {
			case !ok:
				fmt.Fprintf(out, "Unknown command: %s\n", word)
			case name == ":quit":
				return nil
			case name == ":reset":
				s.reset()
				fmt.Fprintln(out, "Environment reset")
			case name == ":vars":
				for _, v := range s.vars() {
					fmt.Fprintln(out, v)
				}
			case name == ":help":
				for _, l := range metaCommandHelp() {
					fmt.Fprintln(out, l)
				}
			}
			continue
		}

		output, err := s.eval(input)
		if output != "" {
			fmt.Fprintln(out, output)
		}
		if err != nil {
			fmt.Fprintln(out, errorStyle.Render(err.Error()))
		}
	}
}
