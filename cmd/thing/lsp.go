package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/thinglang/thing/thing"
)

const (
	severityError   = 1
	severityWarning = 2

	completionKindVariable = 6
	completionKindFunction = 3
	completionKindKeyword  = 14
)

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	docs   map[string]string
	cfg    Config
	logger *slog.Logger
}

func newLSPServer(r io.Reader, w io.Writer) *lspServer {
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		docs:   make(map[string]string),
		cfg:    defaultConfig(),
		logger: slog.New(slog.DiscardHandler),
	}
}

// lspCommand serves the protocol on stdio. Logs go to stderr so they never
// interleave with protocol frames.
func lspCommand(args []string) error {
	fs := flag.NewFlagSet("lsp", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	common := registerCommonFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, logger, err := common.resolve()
	if err != nil {
		return err
	}
	server := newLSPServer(os.Stdin, os.Stdout)
	server.cfg = cfg
	server.logger = logger
	return server.serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			continue
		}

		for _, msg := range s.handleMessage(incoming) {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return s.reply(incoming, map[string]any{
			"capabilities": map[string]any{
				"textDocumentSync":           1,
				"hoverProvider":              true,
				"documentFormattingProvider": true,
				"completionProvider": map[string]any{
					"resolveProvider": false,
				},
			},
		})
	case "initialized", "exit":
		return nil
	case "shutdown":
		return s.reply(incoming, nil)
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI)}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil || len(params.ContentChanges) == 0 {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.ContentChanges[len(params.ContentChanges)-1].Text
		return []lspOutboundMessage{s.publishDiagnostics(params.TextDocument.URI)}
	case "textDocument/didClose":
		var params lspTextDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err == nil {
			delete(s.docs, params.TextDocument.URI)
		}
		return nil
	case "textDocument/completion":
		var params lspTextDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return s.replyError(incoming, -32602, "invalid completion params")
		}
		return s.reply(incoming, map[string]any{
			"isIncomplete": false,
			"items":        completionItems(s.docs[params.TextDocument.URI]),
		})
	case "textDocument/formatting":
		var params lspTextDocumentParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return s.replyError(incoming, -32602, "invalid formatting params")
		}
		return s.reply(incoming, s.formattingEdits(s.docs[params.TextDocument.URI]))
	case "textDocument/hover":
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return s.replyError(incoming, -32602, "invalid hover params")
		}
		source := s.docs[params.TextDocument.URI]
		word := wordAtPosition(source, params.Position.Line, params.Position.Character)
		if word == "" {
			return s.reply(incoming, nil)
		}
		return s.reply(incoming, map[string]any{
			"contents": map[string]any{
				"kind":  "markdown",
				"value": fmt.Sprintf("`%s`\n\nthing %s", word, classifyWord(source, word)),
			},
		})
	default:
		return s.replyError(incoming, -32601, "method not found")
	}
}

// reply answers a request; notifications (no ID) get nothing back.
func (s *lspServer) reply(incoming lspInboundMessage, result any) []lspOutboundMessage {
	if incoming.ID == nil {
		return nil
	}
	return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: result}}
}

func (s *lspServer) replyError(incoming lspInboundMessage, code int, message string) []lspOutboundMessage {
	if incoming.ID == nil {
		return nil
	}
	return []lspOutboundMessage{{
		JSONRPC: "2.0",
		ID:      incoming.ID,
		Error:   &lspResponseError{Code: code, Message: message},
	}}
}

func (s *lspServer) publishDiagnostics(uri string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": s.diagnosticsForSource(s.docs[uri]),
		},
	}
}

// diagnosticsForSource reports the parse error, or the analyzer warnings
// when the source parses.
func (s *lspServer) diagnosticsForSource(source string) []map[string]any {
	script, err := parseSource(source, s.cfg, s.logger)
	if err != nil {
		var parseErr *thing.ParseError
		if errors.As(err, &parseErr) {
			return []map[string]any{newDiagnostic(parseErr.Span, severityError, parseErr.Message)}
		}
		return []map[string]any{newDiagnostic(thing.NewSpan(source, 0, 0), severityError, err.Error())}
	}

	warnings := analyzeScript(script)
	out := make([]map[string]any, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, newDiagnostic(w.Span, severityWarning, w.Message))
	}
	return out
}

func newDiagnostic(span thing.Span, severity int, message string) map[string]any {
	start := lspPosition(span.Source(), span.Start())
	end := lspPosition(span.Source(), span.End())
	if span.Len() == 0 {
		end["character"] = start["character"].(int) + 1
	}
	return map[string]any{
		"range":    map[string]any{"start": start, "end": end},
		"severity": severity,
		"source":   "thing-lsp",
		"message":  message,
	}
}

// lspPosition converts a byte offset to a zero-based line and UTF-16
// character offset.
func lspPosition(source string, offset int) map[string]any {
	offset = min(max(offset, 0), len(source))
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	character := 0
	for _, r := range source[lineStart:offset] {
		character += utf16.RuneLen(r)
	}
	return map[string]any{
		"line":      strings.Count(source[:offset], "\n"),
		"character": character,
	}
}

func (s *lspServer) formattingEdits(source string) []map[string]any {
	script, err := parseSource(source, s.cfg, s.logger)
	if err != nil {
		return []map[string]any{}
	}
	formatted := thing.Print(script)
	if formatted == source {
		return []map[string]any{}
	}
	return []map[string]any{{
		"range": map[string]any{
			"start": lspPosition(source, 0),
			"end":   lspPosition(source, len(source)),
		},
		"newText": formatted,
	}}
}

// documentNames collects declared variables and functions. It scans tokens
// rather than parsing so that names are offered while the document is broken.
func documentNames(source string) (vars, funcs map[string]struct{}) {
	vars = make(map[string]struct{})
	funcs = make(map[string]struct{})
	scanner := thing.NewScanner(source)
	var prev thing.TokenKind
	for {
		tok, err := scanner.Scan()
		if err != nil {
			continue
		}
		if tok.IsEOF() {
			return vars, funcs
		}
		if tok.Kind == thing.TokenIdentifier {
			switch prev {
			case thing.TokenFunc:
				funcs[tok.Text()] = struct{}{}
			case thing.TokenLet, thing.TokenLParen, thing.TokenComma:
				vars[tok.Text()] = struct{}{}
			}
		}
		prev = tok.Kind
	}
}

func completionItems(source string) []map[string]any {
	kinds := make(map[string]int)
	vars, funcs := documentNames(source)
	for name := range vars {
		kinds[name] = completionKindVariable
	}
	for name := range funcs {
		kinds[name] = completionKindFunction
	}
	for _, keyword := range thing.Keywords() {
		kinds[keyword] = completionKindKeyword
	}

	labels := make([]string, 0, len(kinds))
	for label := range kinds {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	items := make([]map[string]any, 0, len(labels))
	for _, label := range labels {
		detail := "variable"
		switch kinds[label] {
		case completionKindKeyword:
			detail = "keyword"
		case completionKindFunction:
			detail = "function"
		}
		items = append(items, map[string]any{
			"label":  label,
			"kind":   kinds[label],
			"detail": detail,
		})
	}
	return items
}

func classifyWord(source, word string) string {
	for _, keyword := range thing.Keywords() {
		if keyword == word {
			return "keyword"
		}
	}
	vars, funcs := documentNames(source)
	if _, ok := funcs[word]; ok {
		return "function"
	}
	if _, ok := vars[word]; ok {
		return "variable"
	}
	return "symbol"
}

// wordAtPosition returns the identifier under a zero-based line and UTF-16
// character offset.
func wordAtPosition(source string, line, character int) string {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}

	runes := []rune(lines[line])
	if len(runes) == 0 {
		return ""
	}

	cursor, units := 0, 0
	for cursor < len(runes) && units < character {
		units += utf16.RuneLen(runes[cursor])
		cursor++
	}
	if cursor == len(runes) {
		cursor--
	}
	if !isWordRune(runes[cursor]) {
		if cursor > 0 && isWordRune(runes[cursor-1]) {
			cursor--
		} else {
			return ""
		}
	}

	start := cursor
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := cursor
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}
	return string(runes[start:end])
}

func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, errors.New("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
