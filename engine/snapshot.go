package engine

import (
	"math"
	"time"

	"github.com/nathoo/tilequest/engine/quest"
	"github.com/nathoo/tilequest/types"
)

// Snapshot is a read-only view of the game for presentation layers.
type Snapshot struct {
	Mode      Mode
	Tick      int64
	MapID     string
	Player    PlayerView
	Inventory []string
	Skills    []SkillView
	Quest     quest.Flags
	Enemies   []EnemyView
	Pickups   []PickupView
	NPCs      []types.NPCDef
	Hint      string
	Dialogue  *DialogueView
}

// PlayerView is the player part of a Snapshot.
type PlayerView struct {
	Pos       types.Vec
	Size      float64
	Health    float64 // rounded to one decimal
	MaxHealth float64
	Alive     bool
	Level     int
	XP        int
	NextLevel int
	Kills     int
	Damage    float64
	Target    *types.Vec
}

// SkillView is one skill slot.
type SkillView struct {
	Name      string
	Icon      string
	Damage    float64
	Cooldown  time.Duration
	Remaining time.Duration
	Selected  bool
}

// EnemyView is one enemy.
type EnemyView struct {
	ID        string
	Pos       types.Vec
	Size      float64
	Level     int
	Health    float64
	MaxHealth float64
	Alive     bool
}

// PickupView is a world item still waiting to be picked up.
type PickupView struct {
	Item string
	Area types.Rect
}

// DialogueView is the page on screen.
type DialogueView struct {
	Speaker   string
	Text      string
	Remaining int
}

// Snapshot captures the state at now. now is only used for skill cooldowns.
func (e *Engine) Snapshot(now time.Time) Snapshot {
	p := e.player
	s := Snapshot{
		Mode:  e.mode,
		Tick:  e.ticks,
		MapID: e.mapID,
		Player: PlayerView{
			Pos:       p.Position(),
			Size:      p.Size(),
			Health:    round1(p.Health()),
			MaxHealth: p.MaxHealth(),
			Alive:     p.Alive(),
			Level:     p.Level(),
			XP:        p.Experience(),
			NextLevel: p.NextLevel(),
			Kills:     p.Kills(),
			Damage:    p.AttackDamage(),
		},
		Inventory: p.Inventory.Items(),
		Quest:     e.quest.Flags(),
		NPCs:      e.Defs.NPCs,
		Hint:      e.hint,
	}
	if e.target != nil {
		t := *e.target
		s.Player.Target = &t
	}
	for i, sk := range p.Skills() {
		s.Skills = append(s.Skills, SkillView{
			Name:      sk.Name,
			Icon:      sk.Icon,
			Damage:    sk.Damage,
			Cooldown:  sk.Cooldown,
			Remaining: sk.Remaining(now),
			Selected:  i == p.SelectedIndex(),
		})
	}
	for _, en := range e.spawner.Enemies() {
		s.Enemies = append(s.Enemies, EnemyView{
			ID:        en.ID,
			Pos:       en.Position(),
			Size:      en.Size(),
			Level:     en.Level(),
			Health:    en.Health(),
			MaxHealth: en.MaxHealth(),
			Alive:     en.Alive(),
		})
	}
	for _, pk := range e.quest.Pickups() {
		if !pk.Taken() {
			s.Pickups = append(s.Pickups, PickupView{Item: pk.Item, Area: pk.Area})
		}
	}
	if pg, ok := e.dialogue.Current(); ok {
		s.Dialogue = &DialogueView{Speaker: pg.Speaker, Text: pg.Text, Remaining: e.dialogue.Remaining()}
	}
	return s
}

// AliveEnemies returns how many enemies are alive.
func (e *Engine) AliveEnemies() int {
	return e.spawner.AliveCount()
}

// round1 rounds for display.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
