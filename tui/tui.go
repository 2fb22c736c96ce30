package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/tilequest/engine"
	"github.com/nathoo/tilequest/engine/parser"
	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/metrics"
	"github.com/nathoo/tilequest/types"
)

// logHeight is how many message lines stay visible under the map.
const logHeight = 4

// rawLine stores an unstyled log line with its classification, so we can
// re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // echoed console input
	isSystem bool // meta-command output
}

// Options tunes the model. Zero values mean 60 Hz and no metrics.
type Options struct {
	Frame   time.Duration
	Metrics *metrics.Recorder
}

// Model is the Bubble Tea model for the game screen.
type Model struct {
	engine  *engine.Engine
	defs    *state.Defs
	metrics *metrics.Recorder

	keys    keyMap
	help    help.Model
	log     viewport.Model
	console textinput.Model
	history *History

	rawLines []rawLine // accumulated log lines (unstyled, for re-wrapping)

	pending types.Input // input gathered since the last tick
	frame   time.Duration
	now     time.Time // time of the last tick

	width       int
	height      int
	ready       bool
	trace       bool
	quitting    bool
	consoleOpen bool
}

// tickMsg drives the game loop at the frame rate.
type tickMsg time.Time

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.CharLimit = 128
	ti.PromptStyle = styleInputPrompt

	frame := opts.Frame
	if frame <= 0 {
		frame = time.Second / 60
	}
	return Model{
		engine:  eng,
		defs:    defs,
		metrics: opts.Metrics,
		keys:    defaultKeyMap(),
		help:    help.New(),
		console: ti,
		history: NewHistory(100),
		frame:   frame,
	}
}

// Run starts the Bubble Tea program with mouse support.
func Run(eng *engine.Engine, defs *state.Defs, opts Options) error {
	m := New(eng, defs, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update handles messages (ticks, keys, mouse, window resize).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		if !m.ready {
			m.log = viewport.New(m.width, logHeight)
			m.ready = true
		} else {
			m.log.Width = m.width
			m.log.Height = logHeight
		}
		m.console.Width = m.width - 4
		m.refreshLog()
		return m, nil

	case tickMsg:
		m = m.step(time.Time(msg))
		if m.quitting {
			return m, tea.Quit
		}
		return m, m.tick()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			m.engine.Mode() == engine.ModePlaying {
			if v, ok := m.screenToWorld(msg.X, msg.Y); ok {
				m.pending.Target = &v
			}
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.consoleOpen {
			return m.handleConsoleKey(msg)
		}
		m = m.handleKey(msg)
		if m.quitting {
			return m, tea.Quit
		}
		return m, nil
	}
	return m, nil
}

// step runs one engine tick with the input gathered since the last one.
func (m Model) step(now time.Time) Model {
	in := m.pending
	m.pending = types.Input{}
	m.now = now

	start := time.Now()
	res := m.engine.Tick(now, in)
	if m.metrics != nil {
		p := m.engine.Player()
		m.metrics.ObserveTick(metrics.Frame{
			Duration:     time.Since(start),
			AliveEnemies: m.engine.AliveEnemies(),
			PlayerLevel:  p.Level(),
			PlayerHealth: p.Health(),
		})
	}

	lines := res.Output
	if m.trace {
		lines = append(lines, formatTrace(res)...)
	}
	if len(lines) > 0 {
		m = m.appendOutput("", lines, false)
	}
	if m.engine.Mode() == engine.ModeQuit {
		m.quitting = true
	}
	return m
}

// handleKey maps a key press to input for the next tick, by mode.
func (m Model) handleKey(msg tea.KeyMsg) Model {
	switch m.engine.Mode() {
	case engine.ModeMenu:
		switch {
		case key.Matches(msg, m.keys.Play):
			m.pending.Choice = engine.ChoicePlay
		case key.Matches(msg, m.keys.Quit):
			m.pending.Choice = engine.ChoiceExit
		}

	case engine.ModeDialogue:
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			m.pending.Dismiss = true
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		}

	case engine.ModePlaying:
		p := m.engine.Player()
		switch {
		case key.Matches(msg, m.keys.Skill):
			m.pending.Use = int(msg.Runes[0] - '0')
		case key.Matches(msg, m.keys.UseSkill):
			m.pending.Use = p.SelectedIndex() + 1
		case key.Matches(msg, m.keys.NextSkill):
			if n := len(p.Skills()); n > 0 {
				m.pending.Select = (p.SelectedIndex()+1)%n + 1
			}
		case key.Matches(msg, m.keys.Up):
			m = m.walk(0, -1)
		case key.Matches(msg, m.keys.Down):
			m = m.walk(0, 1)
		case key.Matches(msg, m.keys.Left):
			m = m.walk(-1, 0)
		case key.Matches(msg, m.keys.Right):
			m = m.walk(1, 0)
		case key.Matches(msg, m.keys.Spawn):
			m.pending.Spawn = true
		case key.Matches(msg, m.keys.Console):
			m.consoleOpen = true
			m.console.SetValue("")
			m.console.Focus()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Quit):
			m.pending.Choice = engine.ChoiceExit
		}
	}
	return m
}

// walk targets the neighbouring tile in direction (dx, dy).
func (m Model) walk(dx, dy int) Model {
	cell := m.defs.Game.CellSize
	pos := m.engine.Player().Position()
	if t := m.pending.Target; t != nil {
		pos = *t
	}
	m.pending.Target = &types.Vec{X: pos.X + float64(dx)*cell, Y: pos.Y + float64(dy)*cell}
	return m
}

// handleConsoleKey edits the console line. Enter submits, Esc closes.
func (m Model) handleConsoleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.consoleOpen = false
		m.console.Blur()
		return m, nil

	case tea.KeyEnter:
		return m.submitConsole()

	case tea.KeyUp:
		if prev, ok := m.history.Prev(); ok {
			m.console.SetValue(prev)
			m.console.CursorEnd()
		}
		return m, nil

	case tea.KeyDown:
		if next, ok := m.history.Next(); ok {
			m.console.SetValue(next)
			m.console.CursorEnd()
		} else {
			m.console.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.console, cmd = m.console.Update(msg)
	return m, cmd
}

// submitConsole runs the console line: a meta-command now, or a game
// command merged into the next tick's input.
func (m Model) submitConsole() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.console.Value())
	m.console.SetValue("")
	m.consoleOpen = false
	m.console.Blur()
	if input == "" {
		return m, nil
	}

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		last, ok := m.history.Last()
		if !ok {
			return m.appendOutput(input, []string{"Nothing to repeat."}, true), nil
		}
		input = last
	}
	m.history.Push(input)

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(input, output, true)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	cmd, err := parser.Parse(input)
	if err != nil {
		return m.appendOutput(input, []string{err.Error()}, true), nil
	}
	mergeInput(&m.pending, cmd.Input)
	m = m.appendOutput(input, nil, false)
	return m, nil
}

// mergeInput folds src into dst. Later signals win.
func mergeInput(dst *types.Input, src types.Input) {
	if src.Target != nil {
		dst.Target = src.Target
	}
	if src.Select != types.NoSkill {
		dst.Select = src.Select
	}
	if src.Use != types.NoSkill {
		dst.Use = src.Use
	}
	dst.Spawn = dst.Spawn || src.Spawn
	dst.Dismiss = dst.Dismiss || src.Dismiss
	if src.Choice != "" {
		dst.Choice = src.Choice
	}
}

// appendOutput adds lines to the log and refreshes the viewport.
func (m Model) appendOutput(input string, lines []string, system bool) Model {
	if input != "" {
		m.rawLines = append(m.rawLines, rawLine{text: ": " + input, isInput: true})
	}
	for _, line := range lines {
		rl := rawLine{text: line, isSystem: system}
		if !system {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}
	if len(m.rawLines) > maxLogLines {
		m.rawLines = m.rawLines[len(m.rawLines)-maxLogLines:]
	}
	m.refreshLog()
	return m
}

// maxLogLines bounds the log kept for scrollback.
const maxLogLines = 500

// refreshLog re-wraps and re-styles all raw lines at the current width and
// updates the log viewport.
func (m *Model) refreshLog() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	styled := make([]string, 0, len(m.rawLines))
	for _, rl := range m.rawLines {
		wrapped := wordWrap(rl.text, width)
		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.log.SetContent(strings.Join(styled, "\n"))
	m.log.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries. Existing newlines are kept.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	paragraphs := strings.Split(text, "\n")
	for i, p := range paragraphs {
		paragraphs[i] = wrapParagraph(p, width)
	}
	return strings.Join(paragraphs, "\n")
}

func wrapParagraph(text string, width int) string {
	if len(text) <= width {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			b.WriteString("\n")
			lineLen = len(word)
		default:
			b.WriteString(" ")
			lineLen += 1 + len(word)
		}
		b.WriteString(word)
	}
	return b.String()
}

// mapRows is the height left for the map once the status bar, log and
// footer are placed.
func (m Model) mapRows() int {
	rows := m.height - 1 - logHeight - 1
	if m.help.ShowAll && !m.consoleOpen {
		tallest := 0
		for _, col := range m.keys.FullHelp() {
			tallest = max(tallest, len(col))
		}
		rows -= tallest - 1
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders map (or menu), dialogue, status bar, log and footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	rows := m.mapRows()
	if m.engine.Mode() == engine.ModeMenu {
		return m.renderMenu(rows+1+logHeight) + "\n" + m.help.ShortHelpView([]key.Binding{m.keys.Play, m.keys.Quit})
	}

	s := m.engine.Snapshot(m.now)
	var top string
	if s.Dialogue != nil {
		box := m.renderDialogue(s.Dialogue)
		boxRows := strings.Count(box, "\n") + 1
		top = m.renderMap(s, rows-boxRows) + "\n" + box
	} else {
		top = m.renderMap(s, rows)
	}

	footer := m.help.View(m.keys)
	if m.consoleOpen {
		footer = m.console.View()
	}
	return top + "\n" + m.renderStatusBar(s) + "\n" + m.log.View() + "\n" + footer
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	return []string{
		"Console (:) commands: click X Y, skill N, select N, spawn, dismiss, exit",
		"/state dumps the game state, /trace toggles event trace, /quit exits",
		"Mouse: click a tile to walk there. Up/Down recall console history.",
	}
}

func (m *Model) cmdState() []string {
	s := m.engine.Snapshot(m.now)
	p := s.Player
	out := []string{
		fmt.Sprintf("Mode: %s  Tick: %d  Map: %s", s.Mode, s.Tick, s.MapID),
		fmt.Sprintf("Position: (%.0f, %.0f)  Health: %g/%g  Level: %d  XP: %d/%d",
			p.Pos.X, p.Pos.Y, p.Health, p.MaxHealth, p.Level, p.XP, p.NextLevel),
		fmt.Sprintf("Inventory: %v", s.Inventory),
		fmt.Sprintf("Quest: %+v", s.Quest),
		fmt.Sprintf("Enemies alive: %d", m.engine.AliveEnemies()),
	}
	if s.Hint != "" {
		out = append(out, "Hint: "+s.Hint)
	}
	return out
}

func formatTrace(result types.Result) []string {
	lines := make([]string, 0, len(result.Events))
	for _, e := range result.Events {
		if len(e.Data) == 0 {
			lines = append(lines, "[trace] "+e.Type)
			continue
		}
		lines = append(lines, fmt.Sprintf("[trace] %s %v", e.Type, e.Data))
	}
	return lines
}
