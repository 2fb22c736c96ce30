package entity

import (
	"math"
	"testing"
	"time"

	"github.com/nathoo/tilequest/engine/rng"
	"github.com/nathoo/tilequest/types"
)

func newTestEnemy(pos types.Vec, level int) (*Enemy, *killLog) {
	k := &killLog{}
	return NewEnemy(pos, level, DefaultEnemyDef(), rng.New(42), k), k
}

func TestEnemy_HealthPercentage(t *testing.T) {
	e, _ := newTestEnemy(types.Vec{}, 1)
	if e.MaxHealth() != 100 {
		t.Fatalf("MaxHealth = %v, want 100", e.MaxHealth())
	}
	e.TakeDamage(50, epoch)
	if got := e.HealthPercentage(); got != 50 {
		t.Errorf("after 50 damage: %v%%, want 50%%", got)
	}
	e.TakeDamage(25, epoch)
	if got := e.HealthPercentage(); got != 25 {
		t.Errorf("after 75 damage: %v%%, want 25%%", got)
	}
}

func TestEnemy_LevelScaling(t *testing.T) {
	tests := []struct {
		level  int
		health float64
		xp     int
	}{
		{1, 100, 10},
		{2, 120, 11},
		{3, 140, 13},
		{5, 180, 16},
		{8, 240, 20},
	}
	for _, tt := range tests {
		e, _ := newTestEnemy(types.Vec{}, tt.level)
		if e.MaxHealth() != tt.health {
			t.Errorf("level %d: MaxHealth = %v, want %v", tt.level, e.MaxHealth(), tt.health)
		}
		if e.Experience() != tt.xp {
			t.Errorf("level %d: Experience = %d, want %d", tt.level, e.Experience(), tt.xp)
		}
	}
}

func TestEnemy_LevelBelowOneRaised(t *testing.T) {
	e, _ := newTestEnemy(types.Vec{}, 0)
	if e.Level() != 1 {
		t.Errorf("Level = %d, want 1", e.Level())
	}
}

func TestEnemy_LethalDamageDestroysOnce(t *testing.T) {
	e, k := newTestEnemy(types.Vec{}, 1)

	e.TakeDamage(100, epoch)
	if e.Alive() || e.Health() != 0 {
		t.Fatalf("after lethal damage: alive=%v health=%v", e.Alive(), e.Health())
	}
	if k.kills != 1 || k.xp[0] != 10 {
		t.Fatalf("kill notifications = %d %v, want 1 [10]", k.kills, k.xp)
	}
	deadline, ok := e.RespawnAt()
	if !ok {
		t.Fatal("respawn deadline not set")
	}

	e.TakeDamage(100, at(time.Second))
	e.TakeDamage(5, at(2*time.Second))
	if k.kills != 1 {
		t.Errorf("repeated damage re-destroyed: kills=%d", k.kills)
	}
	if again, _ := e.RespawnAt(); !again.Equal(deadline) {
		t.Errorf("respawn deadline moved from %v to %v", deadline, again)
	}
}

func TestEnemy_HealthInvariant(t *testing.T) {
	r := rng.New(3)
	for trial := 0; trial < 50; trial++ {
		e, _ := newTestEnemy(types.Vec{}, r.IntRange(1, 8))
		for i := 0; i < 20; i++ {
			e.TakeDamage(float64(r.IntRange(-10, 60)), epoch)
			if e.Health() < 0 || e.Health() > e.MaxHealth() {
				t.Fatalf("health %v outside [0,%v]", e.Health(), e.MaxHealth())
			}
			if e.Health() == 0 && e.Alive() {
				t.Fatal("zero health but alive")
			}
		}
	}
}

func TestEnemy_NonFiniteDamageIgnored(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
	}{
		{"nan", math.NaN()},
		{"negative infinity", math.Inf(-1)},
		{"zero", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, k := newTestEnemy(types.Vec{}, 1)
			e.TakeDamage(tt.amount, epoch)
			if e.Health() != e.MaxHealth() || !e.Alive() || len(k.xp) != 0 {
				t.Errorf("health=%v alive=%v kills=%v", e.Health(), e.Alive(), k.xp)
			}
		})
	}
}

func TestEnemy_DrawsWithinBounds(t *testing.T) {
	def := DefaultEnemyDef()
	r := rng.New(11)
	target := &dummy{}
	for i := 0; i < 200; i++ {
		e := NewEnemy(types.Vec{}, 1, def, r, nil)
		if c := e.AttackCooldown(); c < def.CooldownMin || c > def.CooldownMax {
			t.Fatalf("cooldown %v outside [%v,%v]", c, def.CooldownMin, def.CooldownMax)
		}
		if d := e.RespawnDelay(); d < def.RespawnMin || d > def.RespawnMax {
			t.Fatalf("respawn delay %v outside [%v,%v]", d, def.RespawnMin, def.RespawnMax)
		}
		e.Attack(target, epoch)
		if c := e.AttackCooldown(); c < def.CooldownMin || c > def.CooldownMax {
			t.Fatalf("redrawn cooldown %v outside bounds", c)
		}
		e.TakeDamage(1000, epoch)
		e.Respawn()
		if d := e.RespawnDelay(); d < def.RespawnMin || d > def.RespawnMax {
			t.Fatalf("redrawn respawn delay %v outside bounds", d)
		}
	}
}

func TestEnemy_AttackRange_345(t *testing.T) {
	def := DefaultEnemyDef()
	target := &dummy{pos: types.Vec{X: 3, Y: 4}}

	def.AttackRange = 50
	e := NewEnemy(types.Vec{}, 1, def, fixedRand{}, nil)
	if _, ok := e.Attack(target, epoch); !ok {
		t.Error("distance 5 with range 50 should hit")
	}

	def.AttackRange = 4
	e = NewEnemy(types.Vec{}, 1, def, fixedRand{}, nil)
	if _, ok := e.Attack(target, at(time.Hour)); ok {
		t.Error("distance 5 with range 4 should miss")
	}

	def.AttackRange = 5
	e = NewEnemy(types.Vec{}, 1, def, fixedRand{}, nil)
	if _, ok := e.Attack(target, at(2*time.Hour)); ok {
		t.Error("distance exactly equal to range should miss")
	}
}

func TestEnemy_AttackOutOfRangeNeverDamages(t *testing.T) {
	r := rng.New(8)
	def := DefaultEnemyDef()
	for i := 0; i < 500; i++ {
		e := NewEnemy(types.Vec{}, 1, def, r, nil)
		angle := r.Uniform(0, 2*math.Pi)
		dist := def.AttackRange + r.Uniform(0, 5000)
		target := &dummy{pos: types.Vec{X: dist * math.Cos(angle), Y: dist * math.Sin(angle)}}
		// guard against rounding pulling the point back inside
		if target.pos.X*target.pos.X+target.pos.Y*target.pos.Y < def.AttackRange*def.AttackRange {
			continue
		}
		if _, ok := e.Attack(target, epoch); ok || target.taken != 0 {
			t.Fatalf("attack at distance %v damaged target", dist)
		}
	}
}

func TestEnemy_AttackCooldownGate(t *testing.T) {
	e, _ := newTestEnemy(types.Vec{}, 1)
	target := &dummy{pos: types.Vec{X: 10}}

	e.Attack(target, epoch)
	e.Attack(target, epoch)
	if target.hits != 1 {
		t.Fatalf("two immediate attacks landed %d hits, want 1", target.hits)
	}

	e.Attack(target, at(e.AttackCooldown()-time.Millisecond))
	if target.hits != 1 {
		t.Fatalf("attack before cooldown elapsed landed")
	}
	e.Attack(target, at(e.AttackCooldown()))
	if target.hits != 2 {
		t.Errorf("attack at cooldown boundary should land, hits=%d", target.hits)
	}
}

func TestEnemy_AttackDamageScalesWithLevel(t *testing.T) {
	r := rng.New(21)
	for level := 1; level <= 8; level++ {
		for i := 0; i < 50; i++ {
			e := NewEnemy(types.Vec{}, level, DefaultEnemyDef(), r, nil)
			d, ok := e.Attack(&dummy{pos: types.Vec{X: 1}}, epoch)
			if !ok {
				t.Fatal("first attack should land")
			}
			lo, hi := float64(1+level-1), float64(3+level-1)
			if d < lo || d > hi {
				t.Fatalf("level %d damage %v outside [%v,%v]", level, d, lo, hi)
			}
		}
	}
}

func TestEnemy_AttackDeadTargetIgnored(t *testing.T) {
	e, _ := newTestEnemy(types.Vec{}, 1)
	target := &dummy{pos: types.Vec{X: 1}, dead: true}
	if _, ok := e.Attack(target, epoch); ok {
		t.Error("attacked a dead target")
	}
}

func TestEnemy_UpdateChasesWithinDistance(t *testing.T) {
	e := NewEnemy(types.Vec{}, 1, DefaultEnemyDef(), fixedRand{}, nil)
	target := &dummy{pos: types.Vec{X: 150}}

	out := e.Update(target, epoch)
	if !out.Chased {
		t.Fatal("expected chase inside chase distance")
	}
	if got := e.Position(); got.X != 2 || got.Y != 0 {
		t.Errorf("position after one step = %+v, want (2,0)", got)
	}
	if out.Hit {
		t.Error("target at 148 is outside attack range 100")
	}
}

func TestEnemy_UpdateIgnoresFarTarget(t *testing.T) {
	e := NewEnemy(types.Vec{}, 1, DefaultEnemyDef(), fixedRand{}, nil)
	target := &dummy{pos: types.Vec{X: 200}}
	out := e.Update(target, epoch)
	if out.Chased || e.Position() != (types.Vec{}) {
		t.Errorf("enemy moved toward target at exactly chase distance: %+v", e.Position())
	}
}

func TestEnemy_UpdateChasesAndHits(t *testing.T) {
	e := NewEnemy(types.Vec{}, 2, DefaultEnemyDef(), fixedRand{}, nil)
	target := &dummy{pos: types.Vec{X: 50}}
	out := e.Update(target, epoch)
	if !out.Chased || !out.Hit {
		t.Fatalf("outcome = %+v, want chase and hit", out)
	}
	if out.Damage != 2 || target.taken != 2 {
		t.Errorf("damage = %v (taken %v), want 2", out.Damage, target.taken)
	}
}

func TestEnemy_RespawnAfterDeadline(t *testing.T) {
	spawn := types.Vec{X: 4300, Y: 4300}
	e, _ := newTestEnemy(spawn, 1)
	target := &dummy{pos: types.Vec{X: 4350, Y: 4300}}

	e.Update(target, epoch)
	if e.Position() == spawn {
		t.Fatal("enemy did not move")
	}
	e.TakeDamage(100, epoch)
	deadline, _ := e.RespawnAt()

	out := e.Update(target, deadline.Add(-time.Millisecond))
	if out.Respawned || e.Alive() {
		t.Fatal("respawned before deadline")
	}

	out = e.Update(target, deadline)
	if !out.Respawned || !e.Alive() {
		t.Fatal("did not respawn at deadline")
	}
	if out.Chased || out.Hit {
		t.Error("respawn tick also ran chase/attack")
	}
	if e.Position() != spawn {
		t.Errorf("position = %+v, want spawn %+v", e.Position(), spawn)
	}
	if e.Health() != e.MaxHealth() {
		t.Errorf("health = %v, want %v", e.Health(), e.MaxHealth())
	}
	if _, ok := e.RespawnAt(); ok {
		t.Error("respawn deadline not cleared")
	}
}

func TestEnemy_DeadDoesNotAttack(t *testing.T) {
	e, _ := newTestEnemy(types.Vec{}, 1)
	e.TakeDamage(500, epoch)
	target := &dummy{pos: types.Vec{X: 1}}
	if _, ok := e.Attack(target, at(time.Hour)); ok {
		t.Error("dead enemy attacked")
	}
}
