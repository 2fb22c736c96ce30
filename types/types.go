// Package types defines the shared data structures for the tilequest engine.
// This package contains only type definitions and constants. No logic, no methods.
package types

import "time"

// Vec is a position or direction in world coordinates.
type Vec struct {
	X float64
	Y float64
}

// Rect is an axis-aligned box anchored at its top-left corner.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Tile is a map tile-type code as stored in the map files.
type Tile int

// Tile codes. This is the only place tile codes are defined.
const (
	TileEmpty      Tile = 0
	TileGrass      Tile = 2
	TileTree       Tile = 5 // also the movement barrier
	TileStone      Tile = 6
	TileWaterfall  Tile = 7
	TileWell       Tile = 16
	TileDarkGrass  Tile = 17
	TileNPC1       Tile = 20
	TileNPC2       Tile = 21
	TileBottom     Tile = 22
	TileLeft       Tile = 23
	TileBottomLeft Tile = 24
)

// Item identifiers carried in the player's inventory.
const (
	ItemAxeHead      = "Axe Head"
	ItemStick        = "Stick"
	ItemGoldCoin     = "Gold Coin"
	ItemCuttingAxe   = "Cutting Axe"
	ItemEmptyVial    = "Empty vial"
	ItemWaterVial    = "Vial of Water"
	ItemHealthPotion = "Health Potion"
)

// NoSkill marks an Input that carries no skill signal.
const NoSkill = 0

// Input is the player input consumed by one tick. Skill slots are one-based
// so that the zero Input carries no signal at all.
type Input struct {
	Target  *Vec   // click target, already in world coordinates
	Select  int    // select skill slot N
	Use     int    // select and use skill slot N
	Spawn   bool   // debug: spawn an enemy at the player's position
	Dismiss bool   // dismiss the current dialogue page
	Choice  string // menu choice: "play", "exit", "quit"
}

// Event is emitted by the engine when something notable happens in a tick.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single engine tick.
type Result struct {
	Events []Event
	Output []string
}

// GameDef holds game metadata and world constants from content.
type GameDef struct {
	Title        string
	Author       string
	Version      string
	Intro        string
	StartMap     string
	PlayerStart  Vec
	CellSize     float64
	WorldWidth   float64
	WorldHeight  float64
	WellHeal     float64
	ScanRadius   int
	PlayerSpeed  float64
	PlayerSize   float64
	PlayerHealth float64
	PlayerRange  float64
	RespawnDelay time.Duration
}

// Placement is one enemy spawn point.
type Placement struct {
	Pos   Vec
	Level int
}

// MapDef names a map file and the enemy set that populates it.
type MapDef struct {
	ID     string
	File   string
	Spawns []Placement
}

// SkillDef defines one player skill.
type SkillDef struct {
	Name     string
	Icon     string
	Cooldown time.Duration
	Damage   float64
	Order    int
}

// NPCDef registers an NPC by its tile code.
type NPCDef struct {
	ID   string
	Name string
	Tile Tile
	Pos  Vec
}

// PickupDef is a one-shot world item.
type PickupDef struct {
	Item    string
	Area    Rect
	Message string // dialogue key shown on pickup
}

// TransitionDef is the scripted map transition.
type TransitionDef struct {
	From   string
	To     string
	Area   Rect
	Arrive Vec
	Reward string
}

// EnemyDef holds enemy tuning shared by every enemy.
type EnemyDef struct {
	Size           float64
	Speed          float64
	ChaseDistance  float64
	AttackRange    float64
	BaseHealth     float64
	HealthPerLevel float64
	DamageMin      int
	DamageMax      int
	CooldownMin    time.Duration
	CooldownMax    time.Duration
	RespawnMin     time.Duration
	RespawnMax     time.Duration
	BaseXP         int
	XPPerLevel     float64
}
