// Package loader loads Lua game content into Go structs at load time.
// The Lua VM is discarded after loading; there is no Lua at runtime.
package loader

import (
	"fmt"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/types"
)

// rawNamed holds a curried constructor's id and table before compilation.
type rawNamed struct {
	id    string
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field and whether it was present.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// numbers reads the array part of tbl as numbers. Non-numbers are an error.
func numbers(tbl *lua.LTable) ([]float64, error) {
	n := tbl.MaxN()
	out := make([]float64, 0, n)
	for i := 1; i <= n; i++ {
		num, ok := tbl.RawGetInt(i).(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("element %d is %s, want number", i, tbl.RawGetInt(i).Type())
		}
		out = append(out, float64(num))
	}
	return out, nil
}

// getTuple reads a fixed-size number array field such as {x, y}.
func getTuple(tbl *lua.LTable, key string, size int) ([]float64, bool, error) {
	t := getTable(tbl, key)
	if t == nil {
		return nil, false, nil
	}
	nums, err := numbers(t)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", key, err)
	}
	if len(nums) != size {
		return nil, true, fmt.Errorf("%s: want %d numbers, got %d", key, size, len(nums))
	}
	return nums, true, nil
}

func getVec(tbl *lua.LTable, key string) (types.Vec, bool, error) {
	n, ok, err := getTuple(tbl, key, 2)
	if !ok || err != nil {
		return types.Vec{}, ok, err
	}
	return types.Vec{X: n[0], Y: n[1]}, true, nil
}

func getRect(tbl *lua.LTable, key string) (types.Rect, bool, error) {
	n, ok, err := getTuple(tbl, key, 4)
	if !ok || err != nil {
		return types.Rect{}, ok, err
	}
	return types.Rect{X: n[0], Y: n[1], W: n[2], H: n[3]}, true, nil
}

// seconds converts a Lua number of seconds to a Duration.
func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// setFloat overwrites *dst when key is present.
func setFloat(tbl *lua.LTable, key string, dst *float64) {
	if v, ok := getNumber(tbl, key); ok {
		*dst = v
	}
}

func setInt(tbl *lua.LTable, key string, dst *int) {
	if v, ok := getNumber(tbl, key); ok {
		*dst = int(v)
	}
}

func setString(tbl *lua.LTable, key string, dst *string) {
	if v := getString(tbl, key); v != "" {
		*dst = v
	}
}

func setSeconds(tbl *lua.LTable, key string, dst *time.Duration) {
	if v, ok := getNumber(tbl, key); ok {
		*dst = seconds(v)
	}
}

// compile converts all collected Lua data into a Defs struct. Anything the
// content leaves unset keeps the stock tuning.
func compile(coll *collector) (*state.Defs, error) {
	defs := state.NewDefs()

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	if err := compileGame(coll.game, &defs.Game); err != nil {
		return nil, fmt.Errorf("compiling Game: %w", err)
	}
	if coll.enemy != nil {
		if err := compileEnemy(coll.enemy, &defs.Enemy); err != nil {
			return nil, fmt.Errorf("compiling Enemy: %w", err)
		}
	}

	for _, raw := range coll.maps {
		m, err := compileMap(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling map %s: %w", raw.id, err)
		}
		if _, dup := defs.Maps[m.ID]; dup {
			return nil, fmt.Errorf("map %s defined twice", m.ID)
		}
		defs.Maps[m.ID] = m
	}

	for _, raw := range coll.skills {
		defs.Skills = append(defs.Skills, compileSkill(raw))
	}

	for _, raw := range coll.npcs {
		npc, err := compileNPC(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling NPC %s: %w", raw.id, err)
		}
		defs.NPCs = append(defs.NPCs, npc)
	}

	for _, raw := range coll.pickups {
		area, ok, err := getRect(raw.table, "area")
		if err != nil {
			return nil, fmt.Errorf("compiling pickup %s: %w", raw.id, err)
		}
		if !ok {
			return nil, fmt.Errorf("compiling pickup %s: area is required", raw.id)
		}
		defs.Pickups = append(defs.Pickups, types.PickupDef{
			Item:    raw.id,
			Area:    area,
			Message: getString(raw.table, "message"),
		})
	}

	for i, tbl := range coll.transitions {
		tr, err := compileTransition(tbl)
		if err != nil {
			return nil, fmt.Errorf("compiling transition %d: %w", i+1, err)
		}
		defs.Transitions = append(defs.Transitions, tr)
	}

	for _, raw := range coll.dialogue {
		pages := make([]string, 0, raw.table.MaxN())
		for i := 1; i <= raw.table.MaxN(); i++ {
			s, ok := raw.table.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, fmt.Errorf("dialogue %s: page %d is not a string", raw.id, i)
			}
			pages = append(pages, string(s))
		}
		defs.Dialogue[raw.id] = pages
	}
	for k, v := range coll.hints {
		defs.Hints[k] = v
	}
	defs.ApplyDefaults()

	return defs, nil
}

func compileGame(tbl *lua.LTable, g *types.GameDef) error {
	setString(tbl, "title", &g.Title)
	setString(tbl, "author", &g.Author)
	setString(tbl, "version", &g.Version)
	setString(tbl, "intro", &g.Intro)
	setString(tbl, "start_map", &g.StartMap)
	setFloat(tbl, "cell_size", &g.CellSize)
	setFloat(tbl, "well_heal", &g.WellHeal)
	setInt(tbl, "scan_radius", &g.ScanRadius)

	if v, ok, err := getVec(tbl, "start"); err != nil {
		return err
	} else if ok {
		g.PlayerStart = v
	}
	if v, ok, err := getVec(tbl, "world"); err != nil {
		return err
	} else if ok {
		g.WorldWidth, g.WorldHeight = v.X, v.Y
	}

	if p := getTable(tbl, "player"); p != nil {
		setFloat(p, "speed", &g.PlayerSpeed)
		setFloat(p, "size", &g.PlayerSize)
		setFloat(p, "health", &g.PlayerHealth)
		setFloat(p, "range", &g.PlayerRange)
		setSeconds(p, "respawn", &g.RespawnDelay)
	}
	return nil
}

func compileEnemy(tbl *lua.LTable, e *types.EnemyDef) error {
	setFloat(tbl, "size", &e.Size)
	setFloat(tbl, "speed", &e.Speed)
	setFloat(tbl, "chase", &e.ChaseDistance)
	setFloat(tbl, "range", &e.AttackRange)
	setFloat(tbl, "health", &e.BaseHealth)
	setFloat(tbl, "health_per_level", &e.HealthPerLevel)
	setInt(tbl, "xp", &e.BaseXP)
	setFloat(tbl, "xp_per_level", &e.XPPerLevel)

	if n, ok, err := getTuple(tbl, "damage", 2); err != nil {
		return err
	} else if ok {
		e.DamageMin, e.DamageMax = int(n[0]), int(n[1])
	}
	if n, ok, err := getTuple(tbl, "cooldown", 2); err != nil {
		return err
	} else if ok {
		e.CooldownMin, e.CooldownMax = seconds(n[0]), seconds(n[1])
	}
	if n, ok, err := getTuple(tbl, "respawn", 2); err != nil {
		return err
	} else if ok {
		e.RespawnMin, e.RespawnMax = seconds(n[0]), seconds(n[1])
	}
	return nil
}

func compileMap(raw rawNamed) (types.MapDef, error) {
	m := types.MapDef{ID: raw.id, File: getString(raw.table, "file")}
	spawns := getTable(raw.table, "spawns")
	if spawns == nil {
		return m, nil
	}
	for i := 1; i <= spawns.MaxN(); i++ {
		row, ok := spawns.RawGetInt(i).(*lua.LTable)
		if !ok {
			return m, fmt.Errorf("spawn %d is not a table", i)
		}
		n, err := numbers(row)
		if err != nil {
			return m, fmt.Errorf("spawn %d: %w", i, err)
		}
		if len(n) != 3 {
			return m, fmt.Errorf("spawn %d: want {x, y, level}, got %d numbers", i, len(n))
		}
		m.Spawns = append(m.Spawns, types.Placement{Pos: types.Vec{X: n[0], Y: n[1]}, Level: int(n[2])})
	}
	return m, nil
}

func compileSkill(raw rawNamed) types.SkillDef {
	s := types.SkillDef{
		Name:  raw.id,
		Icon:  getString(raw.table, "icon"),
		Order: raw.order,
	}
	setSeconds(raw.table, "cooldown", &s.Cooldown)
	setFloat(raw.table, "damage", &s.Damage)
	setInt(raw.table, "order", &s.Order)
	return s
}

func compileNPC(raw rawNamed) (types.NPCDef, error) {
	n := types.NPCDef{ID: raw.id, Name: getString(raw.table, "name")}
	if n.Name == "" {
		n.Name = raw.id
	}
	tile, ok := getNumber(raw.table, "tile")
	if !ok {
		return n, fmt.Errorf("tile is required")
	}
	n.Tile = types.Tile(tile)
	pos, _, err := getVec(raw.table, "pos")
	if err != nil {
		return n, err
	}
	n.Pos = pos
	return n, nil
}

func compileTransition(tbl *lua.LTable) (types.TransitionDef, error) {
	t := types.TransitionDef{
		From:   getString(tbl, "from"),
		To:     getString(tbl, "to"),
		Reward: getString(tbl, "reward"),
	}
	area, ok, err := getRect(tbl, "area")
	if err != nil {
		return t, err
	}
	if !ok {
		return t, fmt.Errorf("area is required")
	}
	t.Area = area
	arrive, ok, err := getVec(tbl, "arrive")
	if err != nil {
		return t, err
	}
	if !ok {
		return t, fmt.Errorf("arrive is required")
	}
	t.Arrive = arrive
	return t, nil
}
