package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/tilequest/types"
)

// registerAPI registers all Lua constructors and constant tables as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConstants(L)
}

// named returns a curried constructor: Name "id" { ... }.
func named(L *lua.LState, add func(rawNamed)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			add(rawNamed{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Enemy { speed = 2, damage = {1, 3}, ... }
	L.SetGlobal("Enemy", L.NewFunction(func(L *lua.LState) int {
		coll.enemy = L.CheckTable(1)
		return 0
	}))

	// Map "id" { file = "...", spawns = { {x, y, level}, ... } }
	L.SetGlobal("Map", named(L, func(r rawNamed) { coll.maps = append(coll.maps, r) }))

	// Skill "name" { cooldown = 1, damage = 10 }. Source order is the
	// default slot order.
	L.SetGlobal("Skill", named(L, func(r rawNamed) {
		r.order = coll.nextSourceOrder()
		coll.skills = append(coll.skills, r)
	}))

	// NPC "id" { name = "...", tile = Tiles.NPC1, pos = {x, y} }
	L.SetGlobal("NPC", named(L, func(r rawNamed) { coll.npcs = append(coll.npcs, r) }))

	// Pickup "item" { area = {x, y, w, h}, message = "key" }
	L.SetGlobal("Pickup", named(L, func(r rawNamed) { coll.pickups = append(coll.pickups, r) }))

	// Dialogue "key" { "page 1", "page 2" }
	L.SetGlobal("Dialogue", named(L, func(r rawNamed) { coll.dialogue = append(coll.dialogue, r) }))

	// Transition { from = "...", to = "...", area = {...}, arrive = {x, y} }
	L.SetGlobal("Transition", L.NewFunction(func(L *lua.LState) int {
		coll.transitions = append(coll.transitions, L.CheckTable(1))
		return 0
	}))

	// Hint "key" "text", curried.
	L.SetGlobal("Hint", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			coll.hints[key] = L.CheckString(1)
			return 0
		}))
		return 1
	}))
}

// registerConstants exposes tile codes and item names so content never
// repeats raw numbers.
func registerConstants(L *lua.LState) {
	tiles := L.NewTable()
	for name, t := range map[string]types.Tile{
		"Empty":      types.TileEmpty,
		"Grass":      types.TileGrass,
		"Tree":       types.TileTree,
		"Stone":      types.TileStone,
		"Waterfall":  types.TileWaterfall,
		"Well":       types.TileWell,
		"DarkGrass":  types.TileDarkGrass,
		"NPC1":       types.TileNPC1,
		"NPC2":       types.TileNPC2,
		"Bottom":     types.TileBottom,
		"Left":       types.TileLeft,
		"BottomLeft": types.TileBottomLeft,
	} {
		tiles.RawSetString(name, lua.LNumber(t))
	}
	L.SetGlobal("Tiles", tiles)

	items := L.NewTable()
	for name, item := range map[string]string{
		"AxeHead":      types.ItemAxeHead,
		"Stick":        types.ItemStick,
		"GoldCoin":     types.ItemGoldCoin,
		"CuttingAxe":   types.ItemCuttingAxe,
		"EmptyVial":    types.ItemEmptyVial,
		"WaterVial":    types.ItemWaterVial,
		"HealthPotion": types.ItemHealthPotion,
	} {
		items.RawSetString(name, lua.LString(item))
	}
	L.SetGlobal("Items", items)
}
