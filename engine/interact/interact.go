// Package interact resolves proximity triggers: world tiles around the player
// and NPCs under the player's feet.
package interact

import (
	"github.com/nathoo/tilequest/engine/quest"
	"github.com/nathoo/tilequest/types"
)

// Tiles is the read-only map view the dispatcher scans.
type Tiles interface {
	At(col, row int) (types.Tile, bool)
	CellOf(v types.Vec) (col, row int)
	TileAt(v types.Vec) (types.Tile, bool)
}

// Actor is the player as seen by world interactions.
type Actor interface {
	Center() types.Vec
	Heal(amount float64)
}

// Kind names the world object an interaction touched.
type Kind string

const (
	KindNone Kind = ""
	KindWell Kind = "well"
	KindTree Kind = "tree"
)

// Interaction reports what a Scan did.
type Interaction struct {
	Kind     Kind
	Col, Row int
	Healed   float64
	Granted  []string
	Consumed []string
}

// Dispatcher routes world and NPC triggers.
type Dispatcher struct {
	quest  *quest.Quest
	inv    quest.Inventory
	npcs   map[types.Tile]types.NPCDef
	radius int
	heal   float64
}

// New creates a dispatcher scanning radius cells around the player and
// healing heal per well contact.
func New(q *quest.Quest, inv quest.Inventory, npcs []types.NPCDef, radius int, heal float64) *Dispatcher {
	d := &Dispatcher{
		quest:  q,
		inv:    inv,
		npcs:   make(map[types.Tile]types.NPCDef, len(npcs)),
		radius: radius,
		heal:   heal,
	}
	for _, n := range npcs {
		d.npcs[n.Tile] = n
	}
	return d
}

// Scan looks at the cells around the actor's centre, columns outermost, and
// triggers the first well or tree found. At most one interaction per call.
func (d *Dispatcher) Scan(m Tiles, a Actor) Interaction {
	if m == nil || a == nil {
		return Interaction{}
	}
	cc, cr := m.CellOf(a.Center())
	for col := cc - d.radius; col <= cc+d.radius; col++ {
		for row := cr - d.radius; row <= cr+d.radius; row++ {
			tile, ok := m.At(col, row)
			if !ok {
				continue
			}
			switch tile {
			case types.TileWell:
				in := d.well(a)
				in.Col, in.Row = col, row
				return in
			case types.TileTree:
				in := d.tree()
				in.Col, in.Row = col, row
				return in
			}
		}
	}
	return Interaction{}
}

// well heals the actor and fills the empty vial once the healer asked for it.
func (d *Dispatcher) well(a Actor) Interaction {
	a.Heal(d.heal)
	in := Interaction{Kind: KindWell, Healed: d.heal}
	if d.quest != nil && d.quest.CanFillVial() && d.inv.Remove(types.ItemEmptyVial) {
		d.inv.Add(types.ItemWaterVial)
		in.Consumed = []string{types.ItemEmptyVial}
		in.Granted = []string{types.ItemWaterVial}
	}
	return in
}

// tree hands out a stick unless one is already carried.
func (d *Dispatcher) tree() Interaction {
	in := Interaction{Kind: KindTree}
	if !d.inv.Has(types.ItemStick) {
		d.inv.Add(types.ItemStick)
		in.Granted = []string{types.ItemStick}
	}
	return in
}

// NPC talks to the NPC whose tile lies under pos, if any.
func (d *Dispatcher) NPC(m Tiles, pos types.Vec) (types.NPCDef, quest.Reply, bool) {
	if m == nil || d.quest == nil {
		return types.NPCDef{}, quest.Reply{}, false
	}
	tile, ok := m.TileAt(pos)
	if !ok {
		return types.NPCDef{}, quest.Reply{}, false
	}
	npc, ok := d.npcs[tile]
	if !ok {
		return types.NPCDef{}, quest.Reply{}, false
	}
	return npc, d.quest.Talk(tile), true
}
