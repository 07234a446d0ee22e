package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	violet = lipgloss.Color("#7C3AED")
	amber  = lipgloss.Color("#F59E0B")
	grey   = lipgloss.Color("#6B7280")

	promptStyle = lipgloss.NewStyle().Foreground(violet).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(violet).Bold(true)
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle    = lipgloss.NewStyle().Foreground(grey)
	keyStyle    = lipgloss.NewStyle().Foreground(amber)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(violet).
			Padding(0, 1)
)

// entry is one line of the transcript. Completion lists have no input.
type entry struct {
	input  string
	output string
	isErr  bool
}

type bindings struct {
	Prev     key.Binding
	Next     key.Binding
	Eval     key.Binding
	Complete key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var replKeys = bindings{
	Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous entry")),
	Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next entry")),
	Eval:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
}

func (b bindings) all() []key.Binding {
	return []key.Binding{b.Prev, b.Next, b.Eval, b.Complete, b.Clear, b.Help, b.Quit}
}

func (b bindings) footer() []key.Binding {
	return []key.Binding{b.Help, b.Clear, b.Quit}
}

type replModel struct {
	textInput  textinput.Model
	session    *session
	transcript []entry
	inputs     []string
	// recallIdx indexes inputs while browsing; -1 means a fresh line.
	recallIdx   int
	width       int
	height      int
	showHelp    bool
	showVars    bool
	quitting    bool
	initialized bool
}

func newREPLModel(cfg Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "let x = 1;"
	ti.Prompt = cfg.Prompt
	ti.PromptStyle = promptStyle
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return replModel{textInput: ti, session: newSession(cfg), recallIdx: -1}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, replKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, replKeys.Clear):
			m.transcript = nil
			return m, nil
		case key.Matches(msg, replKeys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, replKeys.Prev):
			return m.recall(-1), nil
		case key.Matches(msg, replKeys.Next):
			return m.recall(1), nil
		case key.Matches(msg, replKeys.Complete):
			return m.complete(), nil
		case key.Matches(msg, replKeys.Eval):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// recall moves through earlier inputs. Stepping past the newest one leaves
// an empty line.
func (m replModel) recall(step int) replModel {
	if len(m.inputs) == 0 {
		return m
	}
	switch {
	case m.recallIdx == -1 && step < 0:
		m.recallIdx = len(m.inputs) - 1
	case m.recallIdx == -1:
		return m
	default:
		m.recallIdx += step
	}
	switch {
	case m.recallIdx < 0:
		m.recallIdx = 0
	case m.recallIdx >= len(m.inputs):
		m.recallIdx = -1
		m.textInput.SetValue("")
		return m
	}
	m.textInput.SetValue(m.inputs[m.recallIdx])
	m.textInput.CursorEnd()
	return m
}

func (m replModel) submit() (replModel, tea.Cmd) {
	input := strings.TrimSpace(m.textInput.Value())
	if input == "" {
		return m, nil
	}
	m.textInput.SetValue("")
	m.recallIdx = -1

	if strings.HasPrefix(input, ":") {
		return m.runMeta(input)
	}

	output, err := m.session.eval(input)
	e := entry{input: input, output: output}
	if err != nil {
		e.output, e.isErr = err.Error(), true
	}
	m.transcript = append(m.transcript, e)
	m.inputs = append(m.inputs, input)
	return m, nil
}

func (m replModel) runMeta(input string) (replModel, tea.Cmd) {
	name, word, ok := lookupMetaCommand(input)
	if !ok {
		m.transcript = append(m.transcript, entry{input: input, output: "Unknown command: " + word, isErr: true})
		return m, nil
	}
	switch name {
	case ":help":
		m.showHelp = !m.showHelp
	case ":vars":
		m.showVars = !m.showVars
	case ":clear":
		m.transcript = nil
	case ":reset":
		m.session.reset()
		m.transcript = append(m.transcript, entry{input: input, output: "Environment reset"})
	case ":quit":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// complete finishes the word before the cursor, or lists the candidates
// when there is more than one.
func (m replModel) complete() replModel {
	input := m.textInput.Value()
	words := strings.Fields(input)
	if len(words) == 0 || strings.HasSuffix(input, " ") {
		return m
	}
	word := words[len(words)-1]

	switch found := m.session.completions(word); len(found) {
	case 0:
	case 1:
		m.textInput.SetValue(strings.TrimSuffix(input, word) + found[0])
		m.textInput.CursorEnd()
	default:
		m.transcript = append(m.transcript, entry{output: "Completions: " + strings.Join(found, ", ")})
	}
	return m
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return dimStyle.Render("Goodbye!\n")
	}

	vars := m.session.vars()
	var panels []string
	if m.showVars {
		panels = append(panels, varsPanel(vars))
	}
	if m.showHelp {
		panels = append(panels, helpPanel())
	}
	reserved := 8
	for _, p := range panels {
		reserved += lipgloss.Height(p)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Padding(0, 1).Render("thing REPL") + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	shown := m.transcript
	if room := max(m.height-reserved, 0); len(shown) > room {
		shown = shown[len(shown)-room:]
	}
	for _, e := range shown {
		b.WriteString(renderEntry(e))
	}
	for _, p := range panels {
		b.WriteString(p + "\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")
	hints := make([]string, 0, 3)
	for _, k := range replKeys.footer() {
		h := k.Help()
		hints = append(hints, keyStyle.Render(h.Key)+dimStyle.Render(" "+h.Desc))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

func renderEntry(e entry) string {
	var b strings.Builder
	if e.input != "" {
		b.WriteString(dimStyle.Render("  › ") + e.input + "\n")
	}
	switch {
	case e.isErr:
		b.WriteString("  " + errorStyle.Render("✗ "+e.output) + "\n")
	case e.output != "":
		b.WriteString("  " + resultStyle.Render("→ "+e.output) + "\n")
	}
	return b.String() + "\n"
}

func panel(title string, lines []string) string {
	return panelStyle.Render(strings.Join(append([]string{titleStyle.Render(title)}, lines...), "\n"))
}

func varsPanel(vars []string) string {
	if len(vars) == 0 {
		return panelStyle.Render(dimStyle.Render("No variables defined"))
	}
	lines := make([]string, 0, len(vars))
	for _, v := range vars {
		name, val, _ := strings.Cut(v, " = ")
		lines = append(lines, "  "+keyStyle.Render(name)+" = "+val)
	}
	return panel("Variables", lines)
}

func helpPanel() string {
	var lines []string
	for _, k := range replKeys.all() {
		h := k.Help()
		lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), dimStyle.Render(h.Desc)))
	}
	for _, c := range metaCommands {
		lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-8s", c.name)), dimStyle.Render(c.about)))
	}
	return panel("Help", lines)
}

func runREPL(cfg Config) error {
	_, err := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen()).Run()
	return err
}
