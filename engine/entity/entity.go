// Package entity implements the combat entities: the player, enemies, the
// player's inventory and skills.
package entity

import (
	"time"

	"github.com/nathoo/tilequest/types"
)

// Rand is the random source entities draw cooldowns, delays and damage from.
type Rand interface {
	IntRange(lo, hi int) int
	Duration(lo, hi time.Duration) time.Duration
}

// Target is something that can be chased and hit.
type Target interface {
	Position() types.Vec
	Alive() bool
	TakeDamage(amount float64, now time.Time)
}

// KillRecorder is notified once per enemy death with the experience reward.
type KillRecorder interface {
	RecordKill(xp int)
}

// DefaultEnemyDef returns the stock enemy tuning.
func DefaultEnemyDef() types.EnemyDef {
	return types.EnemyDef{
		Size:           100,
		Speed:          2,
		ChaseDistance:  200,
		AttackRange:    100,
		BaseHealth:     100,
		HealthPerLevel: 20,
		DamageMin:      1,
		DamageMax:      3,
		CooldownMin:    2 * time.Second,
		CooldownMax:    7 * time.Second,
		RespawnMin:     5 * time.Second,
		RespawnMax:     10 * time.Second,
		BaseXP:         10,
		XPPerLevel:     1.5,
	}
}

// DefaultGameDef returns the stock world and player constants.
func DefaultGameDef() types.GameDef {
	return types.GameDef{
		Title:        "Tilequest",
		Version:      "dev",
		StartMap:     "meadow",
		PlayerStart:  types.Vec{X: 5000, Y: 5000},
		CellSize:     200,
		WorldWidth:   10000,
		WorldHeight:  10000,
		WellHeal:     0.1,
		ScanRadius:   1,
		PlayerSpeed:  5,
		PlayerSize:   100,
		PlayerHealth: 100,
		PlayerRange:  100,
		RespawnDelay: time.Second,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
