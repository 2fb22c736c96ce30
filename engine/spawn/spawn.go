// Package spawn manages the enemy population of the current map.
package spawn

import (
	"time"

	"github.com/nathoo/tilequest/engine/entity"
	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/types"
)

// Coordinator owns the enemy collection. Dead enemies stay in the collection
// until their own Update respawns them in place.
type Coordinator struct {
	def     types.EnemyDef
	rng     entity.Rand
	killer  entity.KillRecorder
	enemies []*entity.Enemy
}

// Change pairs an enemy with what it did during one Update.
type Change struct {
	Enemy   *entity.Enemy
	Outcome entity.Outcome
}

// New creates an empty coordinator. killer is notified of every enemy death.
func New(def types.EnemyDef, rng entity.Rand, killer entity.KillRecorder) *Coordinator {
	return &Coordinator{def: def, rng: rng, killer: killer}
}

// SpawnInitial appends one enemy per placement.
func (c *Coordinator) SpawnInitial(placements []types.Placement) {
	for _, p := range placements {
		c.SpawnOne(p.Pos, p.Level)
	}
}

// SpawnOne appends a single enemy at pos.
func (c *Coordinator) SpawnOne(pos types.Vec, level int) *entity.Enemy {
	e := entity.NewEnemy(pos, level, c.def, c.rng, c.killer)
	c.enemies = append(c.enemies, e)
	return e
}

// Replace discards the current population and spawns placements.
func (c *Coordinator) Replace(placements []types.Placement) {
	c.enemies = nil
	c.SpawnInitial(placements)
}

// Enemies returns the enemy collection in spawn order.
func (c *Coordinator) Enemies() []*entity.Enemy {
	return c.enemies
}

// Update runs one tick for every enemy against target and returns the enemies
// that did something.
func (c *Coordinator) Update(target entity.Target, now time.Time) []Change {
	var changes []Change
	for _, e := range c.enemies {
		out := e.Update(target, now)
		if out.Respawned || out.Chased || out.Hit {
			changes = append(changes, Change{Enemy: e, Outcome: out})
		}
	}
	return changes
}

// FirstInRange returns the first alive enemy strictly within r of pos, or nil.
func (c *Coordinator) FirstInRange(pos types.Vec, r float64) *entity.Enemy {
	for _, e := range c.enemies {
		if e.Alive() && spatial.Within(e.Position(), pos, r) {
			return e
		}
	}
	return nil
}

// AliveCount returns how many enemies are alive.
func (c *Coordinator) AliveCount() int {
	n := 0
	for _, e := range c.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}
