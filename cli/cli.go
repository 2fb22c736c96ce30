// Package cli drives the engine from line-oriented input on a virtual clock.
// It serves both the plain terminal mode and script playback.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nathoo/tilequest/engine"
	"github.com/nathoo/tilequest/engine/parser"
	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/metrics"
	"github.com/nathoo/tilequest/types"
)

// DefaultFrame is one tick at 60 Hz.
const DefaultFrame = time.Second / 60

// CLI handles line-oriented interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Defs      *state.Defs
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool              // echo each input line after the prompt (for script playback)
	Frame     time.Duration     // virtual time added per tick
	Clock     time.Time         // virtual now; only advanced by ticks
	Metrics   *metrics.Recorder // optional
	lastCmd   string            // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, defs *state.Defs) *CLI {
	return &CLI{
		Engine: eng,
		Defs:   defs,
		In:     os.Stdin,
		Out:    os.Stdout,
		Frame:  DefaultFrame,
		Clock:  time.Now(),
	}
}

// Run shows the title, then loops: prompt → input → ticks → output, until
// input ends, /quit, or the engine reaches Quit.
func (c *CLI) Run() {
	c.printLine(c.Defs.Game.Title)
	c.printLine("Type 'play' to start or 'exit' to leave. /help lists commands.")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		cmd, err := parser.Parse(input)
		if err != nil {
			c.printSystem(fmt.Sprintf("%v. Type /help for available commands.", err))
			continue
		}
		c.run(cmd)

		if c.Engine.Mode() == engine.ModeQuit {
			c.printSystem("Goodbye.")
			return
		}
	}
}

// run feeds cmd's input on the first tick and empty input on the rest.
func (c *CLI) run(cmd parser.Command) {
	in := cmd.Input
	for i := 0; i < cmd.Ticks; i++ {
		res := c.step(in)
		c.printResult(res)
		if c.Trace {
			c.printTrace(res)
		}
		if c.Engine.Mode() == engine.ModeQuit {
			return
		}
		in = types.Input{}
	}
}

// step advances the virtual clock by one frame and ticks the engine.
func (c *CLI) step(in types.Input) types.Result {
	c.Clock = c.Clock.Add(c.Frame)
	start := time.Now()
	res := c.Engine.Tick(c.Clock, in)
	if c.Metrics != nil {
		p := c.Engine.Player()
		c.Metrics.ObserveTick(metrics.Frame{
			Duration:     time.Since(start),
			AliveEnemies: c.Engine.AliveEnemies(),
			PlayerLevel:  p.Level(),
			PlayerHealth: p.Health(),
		})
	}
	return res
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle event trace output",
		"",
		"Game commands (each runs one tick unless noted):",
		"  play (p)              Start from the menu",
		"  exit (quit)           Leave the game",
		"  click X Y (goto)      Walk toward a world position",
		"  skill [N] (attack)    Select and use skill slot N (default 1)",
		"  select N (sel)        Select skill slot N",
		"  spawn                 Debug: spawn an enemy where you stand",
		"  dismiss (ok, next)    Close the current dialogue page",
		"  wait [N] (w)          Let N ticks pass",
		"  again (g)             Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	s := c.Engine.Snapshot(c.Clock)
	p := s.Player
	c.printSystem(fmt.Sprintf("Mode: %s  Tick: %d  Map: %s", s.Mode, s.Tick, s.MapID))
	c.printSystem(fmt.Sprintf("Position: (%.0f, %.0f)  Health: %g/%g  Level: %d  XP: %d/%d  Kills: %d",
		p.Pos.X, p.Pos.Y, p.Health, p.MaxHealth, p.Level, p.XP, p.NextLevel, p.Kills))
	if !p.Alive {
		c.printSystem("Player is dead.")
	}
	c.printSystem(fmt.Sprintf("Inventory: %v", s.Inventory))
	for i, sk := range s.Skills {
		mark := " "
		if sk.Selected {
			mark = "*"
		}
		c.printSystem(fmt.Sprintf("Skill %d%s %s: %g damage, ready in %.1fs", i+1, mark, sk.Name, sk.Damage, sk.Remaining.Seconds()))
	}
	c.printSystem(fmt.Sprintf("Quest: %+v", s.Quest))
	c.printSystem(fmt.Sprintf("Enemies alive: %d of %d", c.Engine.AliveEnemies(), len(s.Enemies)))
	if s.Hint != "" {
		c.printSystem(fmt.Sprintf("Hint: %s", s.Hint))
	}
	if s.Dialogue != nil {
		c.printSystem(fmt.Sprintf("Dialogue: %s (%d more)", s.Dialogue.Speaker, s.Dialogue.Remaining))
	}
}

func (c *CLI) printTrace(result types.Result) {
	for _, e := range result.Events {
		if len(e.Data) == 0 {
			c.printSystem(fmt.Sprintf("[trace] %s", e.Type))
			continue
		}
		c.printSystem(fmt.Sprintf("[trace] %s %v", e.Type, e.Data))
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
