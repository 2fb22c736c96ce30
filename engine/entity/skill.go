package entity

import (
	"time"

	"github.com/nathoo/tilequest/types"
)

// Skill is a cooldown gate with a static damage value. Applying the damage
// is the caller's job.
type Skill struct {
	Name     string
	Icon     string
	Cooldown time.Duration
	Damage   float64

	lastUsed time.Time
}

// NewSkill builds a skill from its definition.
func NewSkill(def types.SkillDef) *Skill {
	return &Skill{
		Name:     def.Name,
		Icon:     def.Icon,
		Cooldown: def.Cooldown,
		Damage:   def.Damage,
	}
}

// Ready reports whether the skill may fire at now.
func (s *Skill) Ready(now time.Time) bool {
	return now.Sub(s.lastUsed) >= s.Cooldown
}

// Use fires the skill if it is off cooldown and records now as its last use.
func (s *Skill) Use(now time.Time) bool {
	if !s.Ready(now) {
		return false
	}
	s.lastUsed = now
	return true
}

// Remaining returns how long until the skill is ready again.
func (s *Skill) Remaining(now time.Time) time.Duration {
	left := s.Cooldown - now.Sub(s.lastUsed)
	if left < 0 {
		return 0
	}
	return left
}

// LastUsed returns the time of the last successful use.
func (s *Skill) LastUsed() time.Time {
	return s.lastUsed
}
