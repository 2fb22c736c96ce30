package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled defs for referential integrity and
// consistency. Map files are checked relative to dir. The returned
// ValidationError is non-nil when there are warnings, even on success.
func validate(defs *state.Defs, dir string) *ValidationError {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if _, ok := defs.Maps[defs.Game.StartMap]; !ok {
		ve.errorf("Game.start_map %q does not match any defined map", defs.Game.StartMap)
	}
	if defs.Game.CellSize <= 0 {
		ve.errorf("Game.cell_size must be positive, got %g", defs.Game.CellSize)
	}
	if defs.Game.WorldWidth <= 0 || defs.Game.WorldHeight <= 0 {
		ve.errorf("Game.world must be positive, got %gx%g", defs.Game.WorldWidth, defs.Game.WorldHeight)
	}

	validateEnemy(defs.Enemy, ve)

	for id, m := range defs.Maps {
		if m.File == "" {
			ve.errorf("map %q has no file", id)
		} else if _, err := os.Stat(filepath.Join(dir, m.File)); err != nil {
			ve.warnf("map %q file %q is not readable: %v", id, m.File, err)
		}
		for i, p := range m.Spawns {
			if p.Level < 1 {
				ve.errorf("map %q spawn %d has level %d, want at least 1", id, i+1, p.Level)
			}
		}
	}

	skillNames := map[string]bool{}
	for _, s := range defs.Skills {
		if skillNames[s.Name] {
			ve.errorf("duplicate skill %q", s.Name)
		}
		skillNames[s.Name] = true
		if s.Cooldown < 0 {
			ve.errorf("skill %q has negative cooldown", s.Name)
		}
		if s.Damage < 0 {
			ve.errorf("skill %q has negative damage", s.Name)
		}
	}
	if len(defs.Skills) == 0 {
		ve.warnf("no skills defined; the player cannot attack")
	}

	npcTiles := map[types.Tile]string{}
	for _, n := range defs.NPCs {
		if n.Tile == types.TileEmpty {
			ve.errorf("NPC %q has no tile", n.ID)
			continue
		}
		if other, dup := npcTiles[n.Tile]; dup {
			ve.errorf("NPC %q reuses tile %d of NPC %q", n.ID, n.Tile, other)
		}
		npcTiles[n.Tile] = n.ID
	}

	for _, p := range defs.Pickups {
		if p.Area.W <= 0 || p.Area.H <= 0 {
			ve.errorf("pickup %q area must have positive size", p.Item)
		}
		if p.Message != "" {
			if _, ok := defs.Dialogue[p.Message]; !ok {
				ve.errorf("pickup %q message %q does not match any dialogue", p.Item, p.Message)
			}
		}
	}

	for i, t := range defs.Transitions {
		if _, ok := defs.Maps[t.From]; !ok {
			ve.errorf("transition %d from %q does not match any defined map", i+1, t.From)
		}
		if _, ok := defs.Maps[t.To]; !ok {
			ve.errorf("transition %d to %q does not match any defined map", i+1, t.To)
		}
		if t.Area.W <= 0 || t.Area.H <= 0 {
			ve.errorf("transition %d area must have positive size", i+1)
		}
	}

	if len(ve.Errors) == 0 && len(ve.Warnings) == 0 {
		return nil
	}
	return ve
}

func validateEnemy(e types.EnemyDef, ve *ValidationError) {
	if e.DamageMin > e.DamageMax {
		ve.errorf("Enemy.damage min %d exceeds max %d", e.DamageMin, e.DamageMax)
	}
	if e.CooldownMin > e.CooldownMax {
		ve.errorf("Enemy.cooldown min %s exceeds max %s", e.CooldownMin, e.CooldownMax)
	}
	if e.RespawnMin > e.RespawnMax {
		ve.errorf("Enemy.respawn min %s exceeds max %s", e.RespawnMin, e.RespawnMax)
	}
	if e.BaseHealth <= 0 {
		ve.errorf("Enemy.health must be positive, got %g", e.BaseHealth)
	}
}
