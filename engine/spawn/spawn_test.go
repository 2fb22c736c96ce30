package spawn

import (
	"testing"
	"time"

	"github.com/nathoo/tilequest/engine/entity"
	"github.com/nathoo/tilequest/engine/rng"
	"github.com/nathoo/tilequest/types"
)

var epoch = time.Unix(1_700_000_000, 0)

type target struct {
	pos   types.Vec
	taken float64
}

func (t *target) Position() types.Vec                      { return t.pos }
func (t *target) Alive() bool                              { return true }
func (t *target) TakeDamage(amount float64, now time.Time) { t.taken += amount }

type kills struct{ n int }

func (k *kills) RecordKill(xp int) { k.n++ }

func newCoordinator() (*Coordinator, *kills) {
	k := &kills{}
	return New(entity.DefaultEnemyDef(), rng.New(7), k), k
}

func TestSpawnInitialAndReplace(t *testing.T) {
	c, _ := newCoordinator()
	c.SpawnInitial([]types.Placement{
		{Pos: types.Vec{X: 100, Y: 100}, Level: 1},
		{Pos: types.Vec{X: 200, Y: 200}, Level: 3},
	})
	if len(c.Enemies()) != 2 || c.AliveCount() != 2 {
		t.Fatalf("enemies = %d alive = %d, want 2/2", len(c.Enemies()), c.AliveCount())
	}
	if c.Enemies()[1].Level() != 3 {
		t.Errorf("level = %d, want 3", c.Enemies()[1].Level())
	}

	c.Replace([]types.Placement{{Pos: types.Vec{X: 7000, Y: 7000}, Level: 6}})
	if len(c.Enemies()) != 1 {
		t.Fatalf("after Replace: %d enemies, want 1", len(c.Enemies()))
	}
	if got := c.Enemies()[0].Position(); got != (types.Vec{X: 7000, Y: 7000}) {
		t.Errorf("position = %v", got)
	}
}

func TestSpawnOne_Appends(t *testing.T) {
	c, _ := newCoordinator()
	c.SpawnOne(types.Vec{X: 1, Y: 1}, 1)
	e := c.SpawnOne(types.Vec{X: 5, Y: 5}, 0)
	if len(c.Enemies()) != 2 {
		t.Fatalf("enemies = %d, want 2", len(c.Enemies()))
	}
	if e.Level() != 1 {
		t.Errorf("level clamped to %d, want 1", e.Level())
	}
}

func TestDeadEnemiesStayAndRespawn(t *testing.T) {
	c, k := newCoordinator()
	e := c.SpawnOne(types.Vec{X: 0, Y: 0}, 1)
	e.TakeDamage(1000, epoch)

	if len(c.Enemies()) != 1 || c.AliveCount() != 0 {
		t.Fatalf("dead enemy should remain in collection")
	}
	if k.n != 1 {
		t.Errorf("kills = %d, want 1", k.n)
	}
	if c.FirstInRange(types.Vec{}, 100) != nil {
		t.Error("dead enemy must not be targetable")
	}

	far := &target{pos: types.Vec{X: 5000, Y: 5000}}
	if changes := c.Update(far, epoch.Add(time.Second)); len(changes) != 0 {
		t.Errorf("changes before deadline = %v", changes)
	}
	changes := c.Update(far, epoch.Add(10*time.Second))
	if len(changes) != 1 || !changes[0].Outcome.Respawned {
		t.Fatalf("expected respawn change, got %v", changes)
	}
	if c.AliveCount() != 1 {
		t.Error("enemy should be alive after respawn")
	}
}

func TestUpdate_ChasesAndAttacks(t *testing.T) {
	c, _ := newCoordinator()
	c.SpawnOne(types.Vec{X: 0, Y: 0}, 1)
	c.SpawnOne(types.Vec{X: 9000, Y: 9000}, 1)
	tg := &target{pos: types.Vec{X: 50, Y: 0}}

	changes := c.Update(tg, epoch.Add(time.Hour))
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1 (far enemy idles)", len(changes))
	}
	out := changes[0].Outcome
	if !out.Chased || !out.Hit {
		t.Errorf("outcome = %+v, want chase and hit", out)
	}
	if out.Damage < 1 || out.Damage > 3 || tg.taken != out.Damage {
		t.Errorf("damage = %v taken = %v", out.Damage, tg.taken)
	}
}

func TestFirstInRange_Order(t *testing.T) {
	c, _ := newCoordinator()
	c.SpawnOne(types.Vec{X: 500, Y: 0}, 1)
	a := c.SpawnOne(types.Vec{X: 60, Y: 0}, 1)
	c.SpawnOne(types.Vec{X: 30, Y: 0}, 1)

	if got := c.FirstInRange(types.Vec{}, 100); got != a {
		t.Errorf("FirstInRange picked %v, want first in spawn order", got.Position())
	}
	if c.FirstInRange(types.Vec{}, 30) != nil {
		t.Error("boundary distance should be out of range")
	}
}
