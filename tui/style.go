package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/tilequest/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleDialogueBox = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("228")).
				Padding(0, 1)

	styleSpeaker = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleMenuBox = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("34")).
			Padding(1, 4).
			Align(lipgloss.Center)

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true)

	styleSelectedSkill = lipgloss.NewStyle().
				Foreground(lipgloss.Color("228")).
				Bold(true)
)

// Map glyphs. Every glyph is two cells wide so tiles come out square.
var (
	glyphPlayer  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true).Render("@ ")
	glyphDead    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("% ")
	glyphTarget  = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Render("x ")
	glyphPickup  = lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true).Render("? ")
	styleEnemy   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	glyphOutside = "  "
)

var tileGlyphs = map[types.Tile]string{
	types.TileEmpty:      "  ",
	types.TileGrass:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Render(". "),
	types.TileDarkGrass:  lipgloss.NewStyle().Foreground(lipgloss.Color("22")).Render(", "),
	types.TileTree:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true).Render("##"),
	types.TileStone:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("::"),
	types.TileWaterfall:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("~~"),
	types.TileWell:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true).Render("()"),
	types.TileNPC1:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Render("& "),
	types.TileNPC2:       lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true).Render("& "),
	types.TileBottom:     lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Render("__"),
	types.TileLeft:       lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Render("| "),
	types.TileBottomLeft: lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Render("|_"),
}

// tileGlyph returns the glyph for t. Unknown codes render as blank ground.
func tileGlyph(t types.Tile) string {
	if g, ok := tileGlyphs[t]; ok {
		return g
	}
	return "  "
}

// enemyGlyph shows the enemy's level, capped at one digit.
func enemyGlyph(level int) string {
	if level > 9 {
		return styleEnemy.Render("9+")
	}
	return styleEnemy.Render(string(rune('0'+level)) + " ")
}

// lineKind identifies the type of a log line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindCombat
	kindDialogue
	kindSystem
	kindWarning
	kindTrace
)

// classifyLine determines what kind of log line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "You have fallen"),
		strings.HasPrefix(line, "No enemy in range"),
		strings.Contains(line, "cooling down"),
		strings.HasPrefix(line, "There is no skill"):
		return kindWarning
	case strings.HasPrefix(line, "You hit"),
		strings.HasPrefix(line, "The level"),
		strings.HasPrefix(line, "You reached level"):
		return kindCombat
	case isSpeech(line):
		return kindDialogue
	default:
		return kindNarration
	}
}

// isSpeech reports whether line is a "Speaker: text" dialogue page.
func isSpeech(line string) bool {
	speaker, _, ok := strings.Cut(line, ": ")
	if !ok || speaker == "" || len(speaker) > 24 {
		return false
	}
	return !strings.ContainsAny(speaker, ".!?")
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindWarning:
		return styleWarning.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
