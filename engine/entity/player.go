package entity

import (
	"time"

	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/types"
)

const (
	firstLevelThreshold  = 60
	levelThresholdGrowth = 1.5
	levelDamageBonus     = 5
	levelHealthBonus     = 20
)

// Player is the player character: combat stats, inventory, skills and
// levelling.
type Player struct {
	Inventory *Inventory

	pos       types.Vec
	home      types.Vec
	size      float64
	speed     float64
	health    float64
	maxHealth float64

	dead         bool
	diedAt       time.Time
	respawnDelay time.Duration

	attackDamage float64
	attackRange  float64

	skills   []*Skill
	selected int

	level      int
	experience int
	nextLevel  int
	kills      int
}

// NewPlayer creates a level 1 player at the game's start position.
func NewPlayer(g types.GameDef) *Player {
	return &Player{
		Inventory:    NewInventory(),
		pos:          g.PlayerStart,
		home:         g.PlayerStart,
		size:         g.PlayerSize,
		speed:        g.PlayerSpeed,
		health:       g.PlayerHealth,
		maxHealth:    g.PlayerHealth,
		respawnDelay: g.RespawnDelay,
		attackRange:  g.PlayerRange,
		level:        1,
		nextLevel:    firstLevelThreshold,
	}
}

func (p *Player) Position() types.Vec   { return p.pos }
func (p *Player) Size() float64         { return p.size }
func (p *Player) Speed() float64        { return p.speed }
func (p *Player) Health() float64       { return p.health }
func (p *Player) MaxHealth() float64    { return p.maxHealth }
func (p *Player) Alive() bool           { return !p.dead }
func (p *Player) AttackDamage() float64 { return p.attackDamage }
func (p *Player) AttackRange() float64  { return p.attackRange }
func (p *Player) Level() int            { return p.level }
func (p *Player) Experience() int       { return p.experience }
func (p *Player) NextLevel() int        { return p.nextLevel }
func (p *Player) Kills() int            { return p.kills }
func (p *Player) Skills() []*Skill      { return p.skills }
func (p *Player) SelectedIndex() int    { return p.selected }

// SetPosition moves the player without any other side effect.
func (p *Player) SetPosition(v types.Vec) {
	p.pos = v
}

// Bounds returns the player's bounding box.
func (p *Player) Bounds() types.Rect {
	return spatial.Box(p.pos, p.size)
}

// Center returns the centre of the player's bounding box.
func (p *Player) Center() types.Vec {
	return types.Vec{X: p.pos.X + p.size/2, Y: p.pos.Y + p.size/2}
}

// HealthPercentage returns current health as a percentage of max health.
func (p *Player) HealthPercentage() float64 {
	if p.maxHealth <= 0 {
		return 0
	}
	return p.health / p.maxHealth * 100
}

// TakeDamage lowers health, flooring at zero. Reaching zero kills the player
// once and starts the respawn delay.
func (p *Player) TakeDamage(amount float64, now time.Time) {
	if p.dead || !(amount > 0) {
		return
	}
	p.health = clamp(p.health-amount, 0, p.maxHealth)
	if p.health == 0 {
		p.dead = true
		p.diedAt = now
	}
}

// Heal restores health up to max. The dead cannot be healed.
func (p *Player) Heal(amount float64) {
	if p.dead || !(amount > 0) {
		return
	}
	p.health = clamp(p.health+amount, 0, p.maxHealth)
}

// Update respawns a dead player once the respawn delay has passed.
// Reports whether a respawn happened.
func (p *Player) Update(now time.Time) bool {
	if p.dead && now.Sub(p.diedAt) >= p.respawnDelay {
		p.Respawn()
		return true
	}
	return false
}

// Respawn puts the player back at the start position with full health.
func (p *Player) Respawn() {
	p.pos = p.home
	p.health = p.maxHealth
	p.dead = false
	p.diedAt = time.Time{}
}

// AddSkill appends a skill to the skill list.
func (p *Player) AddSkill(s *Skill) {
	p.skills = append(p.skills, s)
}

// SelectSkill selects skill i. Out-of-range indexes are ignored.
func (p *Player) SelectSkill(i int) bool {
	if i < 0 || i >= len(p.skills) {
		return false
	}
	p.selected = i
	return true
}

// SelectedSkill returns the selected skill, or nil if there are none.
func (p *Player) SelectedSkill() *Skill {
	if len(p.skills) == 0 {
		return nil
	}
	return p.skills[p.selected]
}

// TotalAttackDamage is the player's base damage plus the selected skill's.
func (p *Player) TotalAttackDamage() float64 {
	if s := p.SelectedSkill(); s != nil {
		return p.attackDamage + s.Damage
	}
	return p.attackDamage
}

// InRange reports whether v is strictly inside the player's attack range.
func (p *Player) InRange(v types.Vec) bool {
	return spatial.Within(p.pos, v, p.attackRange)
}

// UseSelectedSkill fires the selected skill at target. Returns the damage
// dealt and whether the skill fired.
func (p *Player) UseSelectedSkill(target Target, now time.Time) (float64, bool) {
	s := p.SelectedSkill()
	if p.dead || s == nil || target == nil || !target.Alive() {
		return 0, false
	}
	if !s.Use(now) {
		return 0, false
	}
	damage := p.TotalAttackDamage()
	target.TakeDamage(damage, now)
	return damage, true
}

// RecordKill counts a kill and awards its experience.
func (p *Player) RecordKill(xp int) {
	p.kills++
	p.AddExperience(xp)
}

// AddExperience adds experience and applies every level-up it pays for.
// Returns the number of levels gained.
func (p *Player) AddExperience(amount int) int {
	if amount <= 0 {
		return 0
	}
	p.experience += amount
	gained := 0
	for p.experience >= p.nextLevel {
		p.levelUp()
		gained++
	}
	return gained
}

func (p *Player) levelUp() {
	p.experience -= p.nextLevel
	p.level++
	p.nextLevel = int(float64(p.nextLevel) * levelThresholdGrowth)
	p.attackDamage += levelDamageBonus
	p.maxHealth += levelHealthBonus
	p.health = p.maxHealth
}
