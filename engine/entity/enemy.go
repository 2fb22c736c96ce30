package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/types"
)

// Enemy is a levelled monster that chases and attacks a target and respawns
// at its spawn point some time after death.
type Enemy struct {
	ID string

	level     int
	pos       types.Vec
	spawn     types.Vec
	def       types.EnemyDef
	health    float64
	maxHealth float64
	alive     bool

	lastAttack   time.Time
	cooldown     time.Duration
	respawnDelay time.Duration
	respawnAt    time.Time // zero while alive

	rng    Rand
	killer KillRecorder
}

// Outcome reports what an Enemy did during one Update.
type Outcome struct {
	Respawned bool
	Chased    bool
	Hit       bool
	Damage    float64
}

// NewEnemy creates a live enemy at pos. Levels below 1 are raised to 1.
// killer may be nil.
func NewEnemy(pos types.Vec, level int, def types.EnemyDef, rng Rand, killer KillRecorder) *Enemy {
	if level < 1 {
		level = 1
	}
	maxHealth := def.BaseHealth + float64(level-1)*def.HealthPerLevel
	e := &Enemy{
		ID:        uuid.NewString(),
		level:     level,
		pos:       pos,
		spawn:     pos,
		def:       def,
		health:    maxHealth,
		maxHealth: maxHealth,
		alive:     true,
		rng:       rng,
		killer:    killer,
	}
	e.cooldown = e.drawCooldown()
	e.respawnDelay = e.drawRespawnDelay()
	return e
}

func (e *Enemy) Level() int                    { return e.level }
func (e *Enemy) Position() types.Vec           { return e.pos }
func (e *Enemy) SpawnPoint() types.Vec         { return e.spawn }
func (e *Enemy) Health() float64               { return e.health }
func (e *Enemy) MaxHealth() float64            { return e.maxHealth }
func (e *Enemy) Alive() bool                   { return e.alive }
func (e *Enemy) Size() float64                 { return e.def.Size }
func (e *Enemy) AttackRange() float64          { return e.def.AttackRange }
func (e *Enemy) AttackCooldown() time.Duration { return e.cooldown }
func (e *Enemy) RespawnDelay() time.Duration   { return e.respawnDelay }
func (e *Enemy) LastAttack() time.Time         { return e.lastAttack }

// RespawnAt returns the respawn deadline and whether one is set.
func (e *Enemy) RespawnAt() (time.Time, bool) {
	return e.respawnAt, !e.respawnAt.IsZero()
}

// SetPosition moves the enemy without any other side effect.
func (e *Enemy) SetPosition(v types.Vec) {
	e.pos = v
}

// HealthPercentage returns current health as a percentage of max health.
func (e *Enemy) HealthPercentage() float64 {
	if e.maxHealth <= 0 {
		return 0
	}
	return e.health / e.maxHealth * 100
}

// Experience returns the experience awarded for killing this enemy.
func (e *Enemy) Experience() int {
	return int(float64(e.def.BaseXP) + float64(e.level-1)*e.def.XPPerLevel)
}

// Update runs one tick of enemy behaviour against target. A dead enemy only
// checks its respawn deadline; the tick it respawns it does nothing else.
func (e *Enemy) Update(target Target, now time.Time) Outcome {
	var out Outcome
	if !e.alive {
		if !now.Before(e.respawnAt) {
			e.Respawn()
			out.Respawned = true
		}
		return out
	}
	if target == nil {
		return out
	}

	tp := target.Position()
	if !spatial.Within(e.pos, tp, e.def.ChaseDistance) {
		return out
	}
	e.pos = spatial.Step(e.pos, tp, e.def.Speed)
	out.Chased = true
	out.Damage, out.Hit = e.Attack(target, now)
	return out
}

// Attack hits target if it is in range and the cooldown has elapsed.
// A miss for either reason is silent. Returns the damage dealt.
func (e *Enemy) Attack(target Target, now time.Time) (float64, bool) {
	if !e.alive || target == nil || !target.Alive() {
		return 0, false
	}
	if !spatial.Within(e.pos, target.Position(), e.def.AttackRange) {
		return 0, false
	}
	if now.Sub(e.lastAttack) < e.cooldown {
		return 0, false
	}
	damage := float64(e.rng.IntRange(e.def.DamageMin, e.def.DamageMax) + (e.level - 1))
	target.TakeDamage(damage, now)
	e.lastAttack = now
	e.cooldown = e.drawCooldown()
	return damage, true
}

// TakeDamage lowers health, flooring at zero. Reaching zero destroys the
// enemy exactly once; damage to a dead enemy is ignored.
func (e *Enemy) TakeDamage(amount float64, now time.Time) {
	if !e.alive || !(amount > 0) {
		return
	}
	e.health = clamp(e.health-amount, 0, e.maxHealth)
	if e.health == 0 {
		e.destroy(now)
	}
}

func (e *Enemy) destroy(now time.Time) {
	e.alive = false
	e.respawnAt = now.Add(e.respawnDelay)
	if e.killer != nil {
		e.killer.RecordKill(e.Experience())
	}
}

// Respawn returns the enemy to its spawn point at full health and draws the
// delay used after its next death.
func (e *Enemy) Respawn() {
	e.pos = e.spawn
	e.health = e.maxHealth
	e.alive = true
	e.respawnAt = time.Time{}
	e.respawnDelay = e.drawRespawnDelay()
}

func (e *Enemy) drawCooldown() time.Duration {
	return e.rng.Duration(e.def.CooldownMin, e.def.CooldownMax)
}

func (e *Enemy) drawRespawnDelay() time.Duration {
	return e.rng.Duration(e.def.RespawnMin, e.def.RespawnMax)
}
