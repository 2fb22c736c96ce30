package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/tilequest/engine"
	"github.com/nathoo/tilequest/types"
)

// mapView is the window of tiles shown around the player.
type mapView struct {
	originCol, originRow int
	cols, rows           int
}

// view centres a cols×rows window on the player's cell.
func (m Model) view(rows int) mapView {
	cols := m.width / 2
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	w := m.engine.World()
	c, r := w.CellOf(m.engine.Player().Center())
	return mapView{originCol: c - cols/2, originRow: r - rows/2, cols: cols, rows: rows}
}

// screenToWorld converts a click on the map area into a movement target
// that centres the player on the clicked tile.
func (m Model) screenToWorld(x, y int) (types.Vec, bool) {
	v := m.view(m.mapRows())
	if x < 0 || y < 0 || x >= v.cols*2 || y >= v.rows {
		return types.Vec{}, false
	}
	w := m.engine.World()
	col, row := v.originCol+x/2, v.originRow+y
	if _, ok := w.At(col, row); !ok {
		return types.Vec{}, false
	}
	cell := w.CellSize()
	off := (cell - m.engine.Player().Size()) / 2
	return types.Vec{X: float64(col)*cell + off, Y: float64(row)*cell + off}, true
}

// renderMap draws the tiles in view with pickups, enemies, the target and
// the player layered on top.
func (m Model) renderMap(s engine.Snapshot, rows int) string {
	v := m.view(rows)
	w := m.engine.World()

	grid := make([][]string, v.rows)
	for y := range grid {
		grid[y] = make([]string, v.cols)
		for x := range grid[y] {
			t, ok := w.At(v.originCol+x, v.originRow+y)
			if !ok {
				grid[y][x] = glyphOutside
				continue
			}
			grid[y][x] = tileGlyph(t)
		}
	}

	put := func(pos types.Vec, glyph string) {
		c, r := w.CellOf(pos)
		x, y := c-v.originCol, r-v.originRow
		if x >= 0 && y >= 0 && x < v.cols && y < v.rows {
			grid[y][x] = glyph
		}
	}
	for _, p := range s.Pickups {
		put(types.Vec{X: p.Area.X + p.Area.W/2, Y: p.Area.Y + p.Area.H/2}, glyphPickup)
	}
	for _, e := range s.Enemies {
		if e.Alive {
			put(center(e.Pos, e.Size), enemyGlyph(e.Level))
		}
	}
	if t := s.Player.Target; t != nil {
		put(center(*t, s.Player.Size), glyphTarget)
	}
	if s.Player.Alive {
		put(center(s.Player.Pos, s.Player.Size), glyphPlayer)
	} else {
		put(center(s.Player.Pos, s.Player.Size), glyphDead)
	}

	lines := make([]string, v.rows)
	for y, row := range grid {
		lines[y] = strings.Join(row, "")
	}
	return strings.Join(lines, "\n")
}

func center(pos types.Vec, size float64) types.Vec {
	return types.Vec{X: pos.X + size/2, Y: pos.Y + size/2}
}

// renderStatusBar produces a full-width inverted status line showing map,
// health, level, skills and inventory.
func (m Model) renderStatusBar(s engine.Snapshot) string {
	p := s.Player
	left := fmt.Sprintf(" %s | HP %g/%g | Lv %d XP %d/%d | K %d",
		mapDisplayName(s.MapID), p.Health, p.MaxHealth, p.Level, p.XP, p.NextLevel, p.Kills)
	if !p.Alive {
		left += " | DEAD"
	}

	var skills []string
	for i, sk := range s.Skills {
		label := fmt.Sprintf("%d %s", i+1, sk.Name)
		if sk.Remaining > 0 {
			label += fmt.Sprintf(" %.1fs", sk.Remaining.Seconds())
		}
		if sk.Selected {
			label = styleSelectedSkill.Inherit(styleStatusBar).Render("[" + label + "]")
		} else {
			label = "[" + label + "]"
		}
		skills = append(skills, label)
	}
	left += " | " + strings.Join(skills, " ")

	right := fmt.Sprintf("T:%d ", s.Tick)
	if n := len(s.Inventory); n > 0 {
		candidate := fmt.Sprintf("Inv: %s | T:%d ", strings.Join(s.Inventory, ", "), s.Tick)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | T:%d ", n, s.Tick)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderDialogue draws the current page as a box across the screen.
func (m Model) renderDialogue(d *engine.DialogueView) string {
	width := m.width - 2
	if width < 20 {
		width = 20
	}
	footer := "enter: close"
	if d.Remaining > 1 {
		footer = fmt.Sprintf("enter: next (%d more)", d.Remaining-1)
	}
	body := styleSpeaker.Render(d.Speaker) + "\n" +
		wordWrap(d.Text, width-4) + "\n" +
		styleSystem.Render(footer)
	return styleDialogueBox.Width(width).Render(body)
}

// renderMenu draws the title screen centred in rows lines.
func (m Model) renderMenu(rows int) string {
	g := m.defs.Game
	lines := []string{styleTitle.Render(g.Title)}
	if g.Version != "" || g.Author != "" {
		lines = append(lines, styleSystem.Render(strings.TrimSpace("v"+g.Version+" "+g.Author)))
	}
	if g.Intro != "" {
		lines = append(lines, "", wordWrap(g.Intro, 40))
	}
	lines = append(lines, "", "enter: play    q: quit")
	box := styleMenuBox.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, rows, lipgloss.Center, lipgloss.Center, box)
}

// mapDisplayName derives a human-readable name from a map ID.
// "meadow" -> "Meadow", "north_woods" -> "North Woods".
func mapDisplayName(id string) string {
	if id == "" {
		return "-"
	}
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
