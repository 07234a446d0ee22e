package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/thinglang/thing/thing"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "ast":
		return astCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "lsp":
		return lspCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

// commonFlags are accepted by every subcommand.
type commonFlags struct {
	config   *string
	logLevel *string
	maxDepth *int
}

func registerCommonFlags(fs *flag.FlagSet) commonFlags {
	return commonFlags{
		config:   fs.String("config", "", "path to a config.yaml file"),
		logLevel: fs.String("log-level", "", "diagnostic log level (debug, info, warn, error)"),
		maxDepth: fs.Int("max-depth", 0, "parser nesting limit"),
	}
}

// resolve loads the config file and applies flag overrides on top of it.
func (c commonFlags) resolve() (Config, *slog.Logger, error) {
	cfg, err := loadConfig(*c.config)
	if err != nil {
		return cfg, nil, err
	}
	if *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	if *c.maxDepth != 0 {
		cfg.MaxDepth = *c.maxDepth
	}
	if err := cfg.validate(); err != nil {
		return cfg, nil, err
	}
	level, _ := parseLogLevel(cfg.LogLevel)
	logger := newLogger(os.Stderr, level)
	logger.Debug("config loaded", cfg.logAttrs()...)
	return cfg, logger, nil
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("thing run: script path required")
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}

	source, err := readSource(fs.Arg(0), logger)
	if err != nil {
		return err
	}
	script, err := parseSource(source, cfg, logger)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	interp := thing.NewInterpreter(thing.Config{
		Echo: func(v thing.Value) { fmt.Println(v.String()) },
	})
	logger.Debug("interpret", slog.Int("decls", len(script.Decls)))
	if err := interp.Interpret(script); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("thing check: script path required")
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range fs.Args() {
		source, err := readSource(path, logger)
		if err != nil {
			return err
		}
		if _, err := parseSource(source, cfg, logger); err != nil {
			failed++
			fmt.Printf("%s: %v\n", path, err)
			continue
		}
		fmt.Printf("%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("check found %d invalid script(s)", failed)
	}
	return nil
}

func astCommand(args []string) error {
	fs := flag.NewFlagSet("ast", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("thing ast: script path required")
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}

	source, err := readSource(fs.Arg(0), logger)
	if err != nil {
		return err
	}
	script, err := parseSource(source, cfg, logger)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	if out := thing.FormatScript(script); out != "" {
		fmt.Println(out)
	}
	return nil
}

// tokensCommand prints every token. Lexical errors are reported and
// scanning resumes after the offending character.
func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("thing tokens: script path required")
	}
	_, logger, err := common.resolve()
	if err != nil {
		return err
	}

	source, err := readSource(fs.Arg(0), logger)
	if err != nil {
		return err
	}

	scanner := thing.NewScanner(source)
	errCount := 0
	for {
		tok, err := scanner.Scan()
		if err != nil {
			errCount++
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Printf("%-8s %-12s %q\n", tok.Span, tok.Kind, tok.Text())
		if tok.IsEOF() {
			break
		}
	}
	if errCount > 0 {
		return fmt.Errorf("tokens: %d lexical error(s)", errCount)
	}
	return nil
}

func replCommand(args []string) error {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	plain := fs.Bool("plain", false, "use the line-mode REPL")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}
	if *plain {
		cfg.Plain = true
	}

	if cfg.Plain || !isTerminal() {
		logger.Debug("starting line-mode repl", slog.String("history", cfg.HistoryFile))
		return runPlainREPL(cfg, os.Stdout)
	}
	logger.Debug("starting interactive repl")
	return runREPL(cfg)
}

// readSource reads a script file, or stdin when path is "-".
func readSource(path string, logger *slog.Logger) (string, error) {
	if path == "-" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		logger.Debug("read script", slog.String("path", "<stdin>"), slog.Int("bytes", len(input)))
		return string(input), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	logger.Debug("read script", slog.String("path", absPath), slog.Int("bytes", len(input)))
	return string(input), nil
}

func parseSource(source string, cfg Config, logger *slog.Logger) (*thing.Script, error) {
	parser := thing.NewParser(source)
	parser.SetMaxDepth(cfg.MaxDepth)
	script, err := parser.Parse()
	if err != nil {
		logger.Debug("parse failed", slog.Any("error", err))
		return nil, err
	}
	logger.Debug("parsed", slog.Int("decls", len(script.Decls)))
	return script, nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [script]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run <script>       evaluate a script, printing each expression statement")
	fmt.Fprintln(os.Stderr, "  check <script>...  parse scripts without running them")
	fmt.Fprintln(os.Stderr, "  tokens <script>    dump the token stream")
	fmt.Fprintln(os.Stderr, "  ast <script>       print the syntax tree")
	fmt.Fprintln(os.Stderr, "  fmt [-w|-check] <path>...  rewrite scripts in canonical layout")
	fmt.Fprintln(os.Stderr, "  analyze <script>   report undefined and unused variables")
	fmt.Fprintln(os.Stderr, "  repl               start an interactive session")
	fmt.Fprintln(os.Stderr, "  lsp                serve the language server protocol on stdio")
	fmt.Fprintln(os.Stderr, "Flags:")
	fmt.Fprintln(os.Stderr, "  -config <file>")
	fmt.Fprintln(os.Stderr, "    load settings from a YAML file (default $XDG_CONFIG_HOME/thing/config.yaml)")
	fmt.Fprintln(os.Stderr, "  -log-level string")
	fmt.Fprintln(os.Stderr, "    diagnostic log level on stderr (default \"warn\")")
	fmt.Fprintln(os.Stderr, "  -max-depth int")
	fmt.Fprintln(os.Stderr, "    parser nesting limit")
	fmt.Fprintln(os.Stderr, "  -plain")
	fmt.Fprintln(os.Stderr, "    repl only: use the line-mode prompt")
	fmt.Fprintln(os.Stderr, "Use - as the script path to read from stdin.")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
