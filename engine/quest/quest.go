// Package quest implements the two fetch-quest chains: the woodcutter's axe
// quest and the healer's vial quest, plus the one-shot world pickups that
// feed them.
package quest

import (
	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/types"
)

// Inventory is the capability the quest machine needs from the player's
// inventory.
type Inventory interface {
	Has(item string) bool
	Add(item string)
	Remove(item string) bool
}

// Steps reported in Reply.Step.
const (
	StepAxeStarted        = "axe_started"
	StepAxeHeadReturned   = "axe_head_returned"
	StepStickReturned     = "stick_returned"
	StepHealingStarted    = "healing_started"
	StepEmptyVialReturned = "empty_vial_returned"
	StepWaterVialReturned = "water_vial_returned"
	StepPickup            = "pickup"
)

// Dialogue and hint keys looked up in the Script.
const (
	MsgAxeStart          = "axe_start"
	MsgAxeHeadReturned   = "axe_head_returned"
	MsgStickReturned     = "stick_returned"
	MsgHealingStart      = "healing_start"
	MsgEmptyVialReturned = "empty_vial_returned"
	MsgWaterVialReturned = "water_vial_returned"

	HintAxeHead   = "axe_head"
	HintStick     = "stick"
	HintEmptyVial = "empty_vial"
	HintWaterVial = "water_vial"
)

// Flags is the quest progress. Progress flags only ever go from false to
// true; the two Active flags are cleared when their chain completes.
type Flags struct {
	AxeActive         bool
	AxeHeadReturned   bool
	StickReturned     bool
	HealingActive     bool
	EmptyVialReturned bool
	WaterFilled       bool
}

// Script holds the text the quest machine shows.
type Script struct {
	Dialogue map[string][]string
	Hints    map[string]string
}

// Reply describes what a quest call did. The zero Reply means nothing happened.
type Reply struct {
	Step     string   // step that advanced, empty if none
	Dialogue []string // pages for a modal dialogue
	Hint     string   // non-blocking guidance when a required item is missing
	Granted  []string
	Consumed []string
}

// Advanced reports whether the call made progress.
func (r Reply) Advanced() bool {
	return r.Step != ""
}

// Empty reports whether the call had no visible effect.
func (r Reply) Empty() bool {
	return r.Step == "" && r.Hint == "" && len(r.Dialogue) == 0
}

// Pickup is a world item lying in an area until the player walks over it.
type Pickup struct {
	Item    string
	Area    types.Rect
	Message string
	taken   bool
}

// Taken reports whether the pickup has been collected.
func (p *Pickup) Taken() bool {
	return p.taken
}

// Quest is the quest state machine. It mutates the inventory only through
// the Inventory interface.
type Quest struct {
	inv     Inventory
	script  Script
	flags   Flags
	pickups []*Pickup
}

// New creates a quest machine over inv with the given pickups.
func New(inv Inventory, script Script, pickups []types.PickupDef) *Quest {
	q := &Quest{inv: inv, script: script}
	for _, p := range pickups {
		q.pickups = append(q.pickups, &Pickup{Item: p.Item, Area: p.Area, Message: p.Message})
	}
	return q
}

// Flags returns a copy of the current progress.
func (q *Quest) Flags() Flags {
	return q.flags
}

// Pickups returns the world pickups, collected or not.
func (q *Quest) Pickups() []*Pickup {
	return q.pickups
}

// AxeComplete reports whether both axe parts were returned.
func (q *Quest) AxeComplete() bool {
	return q.flags.AxeHeadReturned && q.flags.StickReturned
}

// HealingComplete reports whether the healing chain is finished.
func (q *Quest) HealingComplete() bool {
	return q.flags.EmptyVialReturned && q.flags.WaterFilled
}

// CanFillVial reports whether the well may turn an empty vial into a vial of water.
func (q *Quest) CanFillVial() bool {
	return q.flags.EmptyVialReturned
}

// StartAxe starts the axe chain if it is neither active nor already handed in.
func (q *Quest) StartAxe() Reply {
	if q.flags.AxeActive || q.flags.AxeHeadReturned {
		return Reply{}
	}
	q.flags.AxeActive = true
	return Reply{Step: StepAxeStarted, Dialogue: q.pages(MsgAxeStart)}
}

// ReturnAxeHead hands the axe head to the woodcutter for a gold coin.
func (q *Quest) ReturnAxeHead() Reply {
	if !q.flags.AxeActive || q.flags.AxeHeadReturned {
		return Reply{}
	}
	if !q.inv.Has(types.ItemAxeHead) {
		return Reply{Hint: q.hint(HintAxeHead)}
	}
	q.flags.AxeHeadReturned = true
	return q.exchange(StepAxeHeadReturned, MsgAxeHeadReturned, types.ItemAxeHead, types.ItemGoldCoin)
}

// ReturnStick hands over the stick, completing the axe chain.
func (q *Quest) ReturnStick() Reply {
	if !q.flags.AxeHeadReturned || q.flags.StickReturned {
		return Reply{}
	}
	if !q.inv.Has(types.ItemStick) {
		return Reply{Hint: q.hint(HintStick)}
	}
	q.flags.StickReturned = true
	q.flags.AxeActive = false
	return q.exchange(StepStickReturned, MsgStickReturned, types.ItemStick, types.ItemCuttingAxe)
}

// StartHealing starts the healing chain once the axe chain is complete.
func (q *Quest) StartHealing() Reply {
	if !q.flags.StickReturned || q.flags.HealingActive || q.flags.EmptyVialReturned {
		return Reply{}
	}
	q.flags.HealingActive = true
	return Reply{Step: StepHealingStarted, Dialogue: q.pages(MsgHealingStart)}
}

// ReturnEmptyVial shows the healer the empty vial. The vial is kept: the
// well fills it.
func (q *Quest) ReturnEmptyVial() Reply {
	if !q.flags.HealingActive || q.flags.EmptyVialReturned {
		return Reply{}
	}
	if !q.inv.Has(types.ItemEmptyVial) {
		return Reply{Hint: q.hint(HintEmptyVial)}
	}
	q.flags.EmptyVialReturned = true
	return Reply{
		Step:     StepEmptyVialReturned,
		Dialogue: q.pages(MsgEmptyVialReturned),
		Hint:     q.hint(HintWaterVial),
	}
}

// ReturnWaterVial shows the healer the filled vial, completing the chain.
func (q *Quest) ReturnWaterVial() Reply {
	if !q.flags.HealingActive || !q.flags.EmptyVialReturned || q.flags.WaterFilled {
		return Reply{}
	}
	if !q.inv.Has(types.ItemWaterVial) {
		return Reply{Hint: q.hint(HintWaterVial)}
	}
	q.flags.WaterFilled = true
	q.flags.HealingActive = false
	return Reply{Step: StepWaterVialReturned, Dialogue: q.pages(MsgWaterVialReturned)}
}

// Talk runs the dialogue step for the NPC standing on tile npc. The first
// matching branch wins.
func (q *Quest) Talk(npc types.Tile) Reply {
	f := q.flags
	switch npc {
	case types.TileNPC1:
		switch {
		case !f.AxeActive && !f.AxeHeadReturned:
			return q.StartAxe()
		case f.AxeActive && !f.AxeHeadReturned:
			return q.ReturnAxeHead()
		case f.AxeHeadReturned && !f.StickReturned:
			return q.ReturnStick()
		}
	case types.TileNPC2:
		switch {
		case !f.HealingActive && !f.EmptyVialReturned:
			return q.StartHealing()
		case f.HealingActive && !f.EmptyVialReturned:
			return q.ReturnEmptyVial()
		case f.HealingActive && !f.WaterFilled:
			return q.ReturnWaterVial()
		}
	}
	return Reply{}
}

// CheckPickups collects every untaken pickup whose area overlaps bounds.
// Each pickup is granted at most once.
func (q *Quest) CheckPickups(bounds types.Rect) Reply {
	var r Reply
	for _, p := range q.pickups {
		if p.taken || !spatial.Intersects(bounds, p.Area) {
			continue
		}
		p.taken = true
		q.inv.Add(p.Item)
		r.Step = StepPickup
		r.Granted = append(r.Granted, p.Item)
		r.Dialogue = append(r.Dialogue, q.pages(p.Message)...)
	}
	return r
}

// exchange removes item and grants reward after the flag for step is set.
func (q *Quest) exchange(step, msg, item, reward string) Reply {
	q.inv.Add(reward)
	q.inv.Remove(item)
	return Reply{
		Step:     step,
		Dialogue: q.pages(msg),
		Granted:  []string{reward},
		Consumed: []string{item},
	}
}

func (q *Quest) pages(key string) []string {
	if key == "" {
		return nil
	}
	pages := q.script.Dialogue[key]
	out := make([]string, len(pages))
	copy(out, pages)
	return out
}

func (q *Quest) hint(key string) string {
	return q.script.Hints[key]
}
