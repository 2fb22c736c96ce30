// Package state holds the immutable game definitions the engine runs on,
// with the stock woodland content as fallback for anything the content
// files leave out.
package state

import (
	"sort"
	"time"

	"github.com/nathoo/tilequest/engine/entity"
	"github.com/nathoo/tilequest/engine/quest"
	"github.com/nathoo/tilequest/types"
)

// Map IDs of the stock content.
const (
	MapMeadow    = "meadow"
	MapHighlands = "highlands"
)

// Dialogue keys for the stock pickups.
const (
	MsgAxePickup  = "axe_pickup"
	MsgVialPickup = "vial_pickup"
)

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game        types.GameDef
	Enemy       types.EnemyDef
	Maps        map[string]types.MapDef
	Skills      []types.SkillDef
	NPCs        []types.NPCDef
	Pickups     []types.PickupDef
	Transitions []types.TransitionDef
	Dialogue    map[string][]string
	Hints       map[string]string
}

// NewDefs returns an empty definition set with the stock game and enemy
// tuning.
func NewDefs() *Defs {
	return &Defs{
		Game:     entity.DefaultGameDef(),
		Enemy:    entity.DefaultEnemyDef(),
		Maps:     map[string]types.MapDef{},
		Dialogue: map[string][]string{},
		Hints:    map[string]string{},
	}
}

// Default returns the complete stock content.
func Default() *Defs {
	d := NewDefs()
	d.Game.Title = "Woodland"
	d.Game.Intro = "A woodcutter and a healer need a hero."
	d.Maps[MapMeadow] = types.MapDef{ID: MapMeadow, File: "maps/map.json", Spawns: MeadowSpawns()}
	d.Maps[MapHighlands] = types.MapDef{ID: MapHighlands, File: "maps/map2.json", Spawns: HighlandSpawns()}
	d.Skills = DefaultSkills()
	d.NPCs = DefaultNPCs()
	d.Pickups = DefaultPickups()
	d.Transitions = []types.TransitionDef{DefaultTransition()}
	d.ApplyDefaults()
	return d
}

// MeadowSpawns is the first map's enemy table: thirteen enemies whose levels
// cycle 1..5.
func MeadowSpawns() []types.Placement {
	pos := []types.Vec{
		{X: 4300, Y: 4300}, {X: 4480, Y: 6248}, {X: 3769, Y: 5822}, {X: 3546, Y: 5101}, {X: 3252, Y: 4235},
		{X: 3797, Y: 3286}, {X: 4628, Y: 2841}, {X: 6078, Y: 2799}, {X: 6820, Y: 3296}, {X: 7188, Y: 3953},
		{X: 7578, Y: 4897}, {X: 7200, Y: 5746}, {X: 6773, Y: 6305},
	}
	out := make([]types.Placement, len(pos))
	for i, p := range pos {
		out[i] = types.Placement{Pos: p, Level: i%5 + 1}
	}
	return out
}

// HighlandSpawns is the second map's enemy table.
func HighlandSpawns() []types.Placement {
	return []types.Placement{
		{Pos: types.Vec{X: 7000, Y: 7000}, Level: 6},
		{Pos: types.Vec{X: 7200, Y: 7200}, Level: 7},
		{Pos: types.Vec{X: 7400, Y: 7400}, Level: 8},
	}
}

// DefaultSkills returns the two stock attacks.
func DefaultSkills() []types.SkillDef {
	return []types.SkillDef{
		{Name: "attack_1", Icon: "slash", Cooldown: time.Second, Damage: 10, Order: 1},
		{Name: "attack_2", Icon: "cleave", Cooldown: 2 * time.Second, Damage: 50, Order: 2},
	}
}

// DefaultNPCs returns the woodcutter and the healer.
func DefaultNPCs() []types.NPCDef {
	return []types.NPCDef{
		{ID: "woodcutter", Name: "Woodcutter", Tile: types.TileNPC1, Pos: types.Vec{X: 5280, Y: 4850}},
		{ID: "healer", Name: "Healer", Tile: types.TileNPC2, Pos: types.Vec{X: 5680, Y: 3850}},
	}
}

// DefaultPickups returns the axe head and the empty vial.
func DefaultPickups() []types.PickupDef {
	return []types.PickupDef{
		{Item: types.ItemAxeHead, Area: types.Rect{X: 4000, Y: 4000, W: 200, H: 200}, Message: MsgAxePickup},
		{Item: types.ItemEmptyVial, Area: types.Rect{X: 5500, Y: 6000, W: 200, H: 200}, Message: MsgVialPickup},
	}
}

// DefaultTransition returns the meadow to highlands passage.
func DefaultTransition() types.TransitionDef {
	return types.TransitionDef{
		From:   MapMeadow,
		To:     MapHighlands,
		Area:   types.Rect{X: 9800, Y: 200, W: 200, H: 200},
		Arrive: types.Vec{X: 9800, Y: 9800},
		Reward: types.ItemHealthPotion,
	}
}

var defaultDialogue = map[string][]string{
	quest.MsgAxeStart: {
		"Hey hero! Got a task for you.\nMy axe broke mid-swing in the forest.",
		"I need an axe head and a stick to fix it.\nYeah, weird, I know. Wanna help?",
		"Dismiss to accept this quest.\nRewards await!",
	},
	quest.MsgAxeHeadReturned: {
		"Huzzah, adventurer!\nYou've found the missing axe head! Amazing job!",
		"Take this Gold Coin as a first reward!",
		"With the axe repaired, we can get back to chopping those trees down!\nBut hold on tight, we still need that stick for the axe's full power!",
		"Onward we go, in search of that elusive stick!\nAdventure calls!",
	},
	quest.MsgStickReturned: {
		"Bravo, intrepid adventurer!\nYou've returned triumphant, stick in hand!",
		"Your valor knows no bounds!\nBehold, your rewards: a brand spanking new cutting axe!",
		"Now you can chop trees with the finesse of a lumberjack and the style of a knight!",
		"Go forth, mighty one, and let the forests tremble at your approach!",
		"Cutting Axe added to your inventory.",
	},
	quest.MsgHealingStart: {
		"Hey there, hero! Let me teach you how to heal yourself.",
		"Bring me Empty vial",
	},
	quest.MsgEmptyVialReturned: {
		"Great, hero. Now fill vial with water.",
	},
	quest.MsgWaterVialReturned: {
		"Thank you, hero. Now you're able to drink from the well and heal yourself.",
	},
	MsgAxePickup: {
		"You've discovered the missing Axe head!\nNow you can return to woodcutter.",
	},
	MsgVialPickup: {
		"You've discovered Empty vial!\nNow you can return to healer.",
	},
}

var defaultHints = map[string]string{
	quest.HintAxeHead:   "Look southwest for the axe head.",
	quest.HintStick:     "Look for any tree in the world and grab a stick.",
	quest.HintEmptyVial: "Look around till you find empty vial.",
	quest.HintWaterVial: "Use the well to fill the vial with water.",
}

// ApplyDefaults fills dialogue and hint keys the content did not define.
func (d *Defs) ApplyDefaults() {
	if d.Dialogue == nil {
		d.Dialogue = map[string][]string{}
	}
	if d.Hints == nil {
		d.Hints = map[string]string{}
	}
	for k, pages := range defaultDialogue {
		if _, ok := d.Dialogue[k]; !ok {
			d.Dialogue[k] = append([]string(nil), pages...)
		}
	}
	for k, h := range defaultHints {
		if _, ok := d.Hints[k]; !ok {
			d.Hints[k] = h
		}
	}
}

// Script returns the quest text.
func (d *Defs) Script() quest.Script {
	return quest.Script{Dialogue: d.Dialogue, Hints: d.Hints}
}

// Map returns the map definition for id.
func (d *Defs) Map(id string) (types.MapDef, bool) {
	m, ok := d.Maps[id]
	return m, ok
}

// StartMap returns the map the game begins on.
func (d *Defs) StartMap() (types.MapDef, bool) {
	return d.Map(d.Game.StartMap)
}

// SortedSkills returns the skills ordered by Order, then name.
func (d *Defs) SortedSkills() []types.SkillDef {
	out := append([]types.SkillDef(nil), d.Skills...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// NPCByTile returns the NPC registered on tile.
func (d *Defs) NPCByTile(tile types.Tile) (types.NPCDef, bool) {
	for _, n := range d.NPCs {
		if n.Tile == tile {
			return n, true
		}
	}
	return types.NPCDef{}, false
}

// TransitionsFrom returns the transitions that leave map id.
func (d *Defs) TransitionsFrom(id string) []types.TransitionDef {
	var out []types.TransitionDef
	for _, t := range d.Transitions {
		if t.From == id {
			out = append(out, t)
		}
	}
	return out
}
