package quest

import (
	"reflect"
	"testing"

	"github.com/nathoo/tilequest/engine/entity"
	"github.com/nathoo/tilequest/types"
)

func testScript() Script {
	return Script{
		Dialogue: map[string][]string{
			MsgAxeStart:          {"My axe broke.", "Bring me an axe head and a stick."},
			MsgAxeHeadReturned:   {"The axe head!", "Take this Gold Coin."},
			MsgStickReturned:     {"A stick!", "Cutting Axe added to your inventory."},
			MsgHealingStart:      {"Bring me Empty vial"},
			MsgEmptyVialReturned: {"Now fill vial with water."},
			MsgWaterVialReturned: {"Thank you, hero."},
			"axe_pickup":         {"You've discovered the missing Axe head!"},
			"vial_pickup":        {"You've discovered Empty vial!"},
		},
		Hints: map[string]string{
			HintAxeHead:   "Look southwest for the axe head.",
			HintStick:     "Look for any tree in the world and grab a stick.",
			HintEmptyVial: "Look around till you find empty vial.",
			HintWaterVial: "Use the well to fill the vial with water.",
		},
	}
}

func testPickups() []types.PickupDef {
	return []types.PickupDef{
		{Item: types.ItemAxeHead, Area: types.Rect{X: 4000, Y: 4000, W: 200, H: 200}, Message: "axe_pickup"},
		{Item: types.ItemEmptyVial, Area: types.Rect{X: 5500, Y: 6000, W: 200, H: 200}, Message: "vial_pickup"},
	}
}

func newTestQuest(items ...string) (*Quest, *entity.Inventory) {
	inv := entity.NewInventory(items...)
	return New(inv, testScript(), testPickups()), inv
}

func TestStartAxe_Idempotent(t *testing.T) {
	q, _ := newTestQuest()
	r := q.StartAxe()
	if r.Step != StepAxeStarted || len(r.Dialogue) != 2 {
		t.Fatalf("StartAxe = %+v", r)
	}
	if !q.Flags().AxeActive {
		t.Fatal("AxeActive not set")
	}
	if r := q.StartAxe(); !r.Empty() {
		t.Errorf("second StartAxe = %+v, want no-op", r)
	}
}

func TestReturnAxeHead_RequiresItem(t *testing.T) {
	q, inv := newTestQuest(types.ItemStick)
	q.StartAxe()
	before := q.Flags()

	r := q.ReturnAxeHead()
	if r.Advanced() {
		t.Fatal("advanced without the axe head")
	}
	if r.Hint != "Look southwest for the axe head." {
		t.Errorf("hint = %q", r.Hint)
	}
	if q.Flags() != before {
		t.Errorf("flags changed on failure: %+v", q.Flags())
	}
	if !reflect.DeepEqual(inv.Items(), []string{types.ItemStick}) {
		t.Errorf("inventory changed on failure: %v", inv.Items())
	}
}

func TestReturnAxeHead_Success(t *testing.T) {
	q, inv := newTestQuest(types.ItemAxeHead)
	q.StartAxe()

	r := q.ReturnAxeHead()
	if r.Step != StepAxeHeadReturned {
		t.Fatalf("step = %q", r.Step)
	}
	if inv.Has(types.ItemAxeHead) {
		t.Error("axe head not removed")
	}
	if items := inv.Items(); items[len(items)-1] != types.ItemGoldCoin {
		t.Errorf("reward not appended: %v", items)
	}
	if !q.Flags().AxeHeadReturned || !q.Flags().AxeActive {
		t.Errorf("flags = %+v", q.Flags())
	}
	if !reflect.DeepEqual(r.Granted, []string{types.ItemGoldCoin}) || !reflect.DeepEqual(r.Consumed, []string{types.ItemAxeHead}) {
		t.Errorf("granted=%v consumed=%v", r.Granted, r.Consumed)
	}
}

func TestReturnAxeHead_NotActive(t *testing.T) {
	q, inv := newTestQuest(types.ItemAxeHead)
	if r := q.ReturnAxeHead(); !r.Empty() {
		t.Errorf("ReturnAxeHead before start = %+v", r)
	}
	if !inv.Has(types.ItemAxeHead) {
		t.Error("axe head consumed before quest start")
	}
}

func TestReturnStick_CompletesChain(t *testing.T) {
	q, inv := newTestQuest(types.ItemAxeHead)
	q.StartAxe()
	q.ReturnAxeHead()

	if r := q.ReturnStick(); r.Advanced() || r.Hint == "" {
		t.Fatalf("ReturnStick without stick = %+v", r)
	}
	inv.Add(types.ItemStick)
	r := q.ReturnStick()
	if r.Step != StepStickReturned {
		t.Fatalf("step = %q", r.Step)
	}
	f := q.Flags()
	if !f.StickReturned || f.AxeActive {
		t.Errorf("flags = %+v", f)
	}
	if inv.Has(types.ItemStick) || !inv.Has(types.ItemCuttingAxe) {
		t.Errorf("inventory = %v", inv.Items())
	}
	if !q.AxeComplete() {
		t.Error("AxeComplete false")
	}
	if r := q.StartAxe(); !r.Empty() {
		t.Error("axe quest restarted after completion")
	}
}

func TestStartHealing_GatedOnStick(t *testing.T) {
	q, _ := newTestQuest(types.ItemAxeHead, types.ItemStick)
	if r := q.StartHealing(); !r.Empty() || q.Flags().HealingActive {
		t.Fatal("healing started before the axe chain was complete")
	}
	q.StartAxe()
	q.ReturnAxeHead()
	if r := q.StartHealing(); !r.Empty() {
		t.Fatal("healing started with only the axe head returned")
	}
	q.ReturnStick()
	if r := q.StartHealing(); r.Step != StepHealingStarted {
		t.Fatalf("StartHealing = %+v", r)
	}
}

func TestHealingChain(t *testing.T) {
	q, inv := newTestQuest(types.ItemAxeHead, types.ItemStick)
	q.StartAxe()
	q.ReturnAxeHead()
	q.ReturnStick()
	q.StartHealing()

	if r := q.ReturnEmptyVial(); r.Advanced() || r.Hint != "Look around till you find empty vial." {
		t.Fatalf("ReturnEmptyVial without vial = %+v", r)
	}
	if q.CanFillVial() {
		t.Fatal("CanFillVial before vial shown")
	}

	inv.Add(types.ItemEmptyVial)
	r := q.ReturnEmptyVial()
	if r.Step != StepEmptyVialReturned || r.Hint != "Use the well to fill the vial with water." {
		t.Fatalf("ReturnEmptyVial = %+v", r)
	}
	if !inv.Has(types.ItemEmptyVial) {
		t.Error("empty vial should be kept for the well")
	}
	if !q.CanFillVial() {
		t.Fatal("CanFillVial false after vial shown")
	}

	if r := q.ReturnWaterVial(); r.Advanced() {
		t.Fatal("water vial returned without water")
	}
	inv.Remove(types.ItemEmptyVial)
	inv.Add(types.ItemWaterVial)
	r = q.ReturnWaterVial()
	if r.Step != StepWaterVialReturned {
		t.Fatalf("ReturnWaterVial = %+v", r)
	}
	f := q.Flags()
	if !f.WaterFilled || f.HealingActive || !q.HealingComplete() {
		t.Errorf("flags = %+v", f)
	}
}

func TestTalk_Cascade(t *testing.T) {
	q, inv := newTestQuest()

	steps := []struct {
		npc  types.Tile
		give string
		want string
	}{
		{types.TileNPC2, "", ""}, // healer has nothing before the axe chain
		{types.TileNPC1, "", StepAxeStarted},
		{types.TileNPC1, "", ""}, // hint only
		{types.TileNPC1, types.ItemAxeHead, StepAxeHeadReturned},
		{types.TileNPC1, types.ItemStick, StepStickReturned},
		{types.TileNPC1, "", ""},
		{types.TileNPC2, "", StepHealingStarted},
		{types.TileNPC2, types.ItemEmptyVial, StepEmptyVialReturned},
		{types.TileNPC2, types.ItemWaterVial, StepWaterVialReturned},
		{types.TileNPC2, "", ""},
	}
	for i, s := range steps {
		if s.give != "" {
			inv.Add(s.give)
		}
		r := q.Talk(s.npc)
		if r.Step != s.want {
			t.Fatalf("step %d (npc %d): got %q, want %q", i, s.npc, r.Step, s.want)
		}
	}
}

func TestTalk_UnknownTile(t *testing.T) {
	q, _ := newTestQuest()
	if r := q.Talk(types.TileWell); !r.Empty() {
		t.Errorf("Talk(well) = %+v", r)
	}
}

func TestFlagsNeverRegress(t *testing.T) {
	q, inv := newTestQuest(types.ItemAxeHead, types.ItemStick, types.ItemEmptyVial, types.ItemWaterVial)
	progress := func(f Flags) []bool {
		return []bool{f.AxeHeadReturned, f.StickReturned, f.EmptyVialReturned, f.WaterFilled}
	}
	prev := progress(q.Flags())
	for i := 0; i < 40; i++ {
		q.Talk(types.TileNPC1)
		q.Talk(types.TileNPC2)
		if i%3 == 0 {
			inv.Add(types.ItemStick)
		}
		cur := progress(q.Flags())
		for j := range cur {
			if prev[j] && !cur[j] {
				t.Fatalf("flag %d regressed at iteration %d", j, i)
			}
		}
		prev = cur
	}
	if !q.AxeComplete() || !q.HealingComplete() {
		t.Errorf("chains not complete: %+v", q.Flags())
	}
}

func TestCheckPickups_Once(t *testing.T) {
	q, inv := newTestQuest()

	if r := q.CheckPickups(types.Rect{X: 0, Y: 0, W: 100, H: 100}); !r.Empty() {
		t.Fatalf("pickup far away = %+v", r)
	}

	bounds := types.Rect{X: 4050, Y: 4050, W: 100, H: 100}
	r := q.CheckPickups(bounds)
	if r.Step != StepPickup || !reflect.DeepEqual(r.Granted, []string{types.ItemAxeHead}) {
		t.Fatalf("pickup = %+v", r)
	}
	if len(r.Dialogue) != 1 {
		t.Errorf("pickup dialogue = %v", r.Dialogue)
	}
	if r := q.CheckPickups(bounds); !r.Empty() {
		t.Error("pickup granted twice")
	}
	if inv.Count(types.ItemAxeHead) != 1 {
		t.Errorf("axe heads = %d", inv.Count(types.ItemAxeHead))
	}
	if !q.Pickups()[0].Taken() || q.Pickups()[1].Taken() {
		t.Error("taken flags wrong")
	}
}
