// Package parser converts script lines into game inputs.
// Intentionally dumb: one command per line, whitespace separated.
package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/tilequest/types"
)

// Verbs understood by Parse.
const (
	VerbPlay    = "play"
	VerbExit    = "exit"
	VerbClick   = "click"
	VerbSkill   = "skill"
	VerbSelect  = "select"
	VerbSpawn   = "spawn"
	VerbDismiss = "dismiss"
	VerbWait    = "wait"
)

// ErrUnknownVerb is returned for a line whose first word is not a command.
var ErrUnknownVerb = errors.New("unknown command")

var verbAliases = map[string]string{
	// Menu
	"start": VerbPlay,
	"p":     VerbPlay,
	"quit":  VerbExit,

	// Movement
	"c":    VerbClick,
	"goto": VerbClick,
	"move": VerbClick,
	"walk": VerbClick,

	// Skills
	"s":      VerbSkill,
	"use":    VerbSkill,
	"attack": VerbSkill,
	"sel":    VerbSelect,

	// Dialogue
	"d":    VerbDismiss,
	"ok":   VerbDismiss,
	"next": VerbDismiss,

	// Time
	"w":    VerbWait,
	"tick": VerbWait,
}

// Command is one parsed script line. Input is what the engine receives on the
// first tick; Ticks is how many ticks the command spans.
type Command struct {
	Verb  string
	Input types.Input
	Ticks int
}

// Parse converts a raw line into a Command. Blank lines and lines starting
// with '#' yield a zero Command and no error.
func Parse(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, nil
	}

	words := strings.Fields(strings.ToLower(line))
	verb := words[0]
	if alias, ok := verbAliases[verb]; ok {
		verb = alias
	}
	args := words[1:]

	cmd := Command{
		Verb:  verb,
		Ticks: 1,
	}
	switch verb {
	case VerbPlay, VerbExit:
		cmd.Input.Choice = verb
	case VerbClick:
		x, y, err := point(args)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, err)
		}
		cmd.Input.Target = &types.Vec{X: x, Y: y}
	case VerbSkill, VerbSelect:
		n, err := count(args, 1)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, err)
		}
		if verb == VerbSkill {
			cmd.Input.Use = n
		} else {
			cmd.Input.Select = n
		}
	case VerbSpawn:
		cmd.Input.Spawn = true
	case VerbDismiss:
		cmd.Input.Dismiss = true
	case VerbWait:
		n, err := count(args, 1)
		if err != nil {
			return Command{}, fmt.Errorf("%s: %w", verb, err)
		}
		cmd.Ticks = n
	default:
		return Command{}, fmt.Errorf("%q: %w", words[0], ErrUnknownVerb)
	}
	return cmd, nil
}

// point reads "X Y" or "X,Y".
func point(args []string) (float64, float64, error) {
	if len(args) == 1 {
		args = strings.Split(args[0], ",")
	}
	if len(args) != 2 {
		return 0, 0, errors.New("want X Y")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad y: %w", err)
	}
	return x, y, nil
}

// count reads one positive integer, defaulting to def when absent.
func count(args []string, def int) (int, error) {
	if len(args) == 0 {
		return def, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", args[0], err)
	}
	if n < 1 {
		return 0, fmt.Errorf("number must be at least 1, got %d", n)
	}
	return n, nil
}
