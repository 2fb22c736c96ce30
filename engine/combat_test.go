package engine

import (
	"testing"
	"time"

	"github.com/nathoo/tilequest/engine/events"
	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/types"
)

func TestUseSkill_LevelUpOnKill(t *testing.T) {
	h := newHarness(t, nil)
	h.e.Player().AddExperience(55)
	h.tick(types.Input{Spawn: true})
	enemy := h.e.Enemies()[0]

	h.tick(types.Input{Use: 2})
	h.advance(2 * time.Second)
	res := h.tick(types.Input{Use: 2})

	if enemy.Alive() {
		t.Fatal("enemy survived two heavy hits")
	}
	ups := events.Filter(res.Events, events.LevelUp)
	if len(ups) != 1 || ups[0].Data["level"] != 2 {
		t.Fatalf("level_up events = %v", ups)
	}
	p := h.e.Player()
	if p.Level() != 2 || p.Experience() != 5 || p.NextLevel() != 90 {
		t.Errorf("level %d xp %d next %d, want 2/5/90", p.Level(), p.Experience(), p.NextLevel())
	}
	if p.AttackDamage() != 5 || p.MaxHealth() != 120 || p.Health() != 120 {
		t.Errorf("damage %v max %v health %v after level up", p.AttackDamage(), p.MaxHealth(), p.Health())
	}
}

func TestUpdateEnemies_HitsAndRespawn(t *testing.T) {
	h := newHarness(t, func(d *state.Defs, _ map[string][][]int) {
		d.Maps[state.MapMeadow] = types.MapDef{
			ID: state.MapMeadow, File: "map.json",
			Spawns: []types.Placement{{Pos: types.Vec{X: 5060, Y: 5000}, Level: 3}},
		}
	})
	h.idle(1)
	hits := events.Filter(h.all, events.PlayerHit)
	if len(hits) != 1 {
		t.Fatalf("player_hit events = %d, want 1", len(hits))
	}
	// Level 3 adds two to the 1..3 roll.
	if d := hits[0].Data["damage"].(float64); d < 3 || d > 5 {
		t.Errorf("damage = %v, want within [3,5]", d)
	}

	enemy := h.e.Enemies()[0]
	enemy.TakeDamage(1000, h.now)
	h.advance(10 * time.Second)
	h.idle(1)
	if !enemy.Alive() || h.saw(events.EnemyRespawned) != 1 {
		t.Errorf("enemy alive=%v respawn events=%d", enemy.Alive(), h.saw(events.EnemyRespawned))
	}
	if enemy.Position() != (types.Vec{X: 5060, Y: 5000}) {
		t.Errorf("respawned at %v, want spawn point", enemy.Position())
	}
}
