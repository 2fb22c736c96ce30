// Package engine provides the Tick() orchestrator that wires together input,
// movement, enemies, pickups, interactions and map transitions into a single
// frame.
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/nathoo/tilequest/engine/dialogue"
	"github.com/nathoo/tilequest/engine/entity"
	"github.com/nathoo/tilequest/engine/events"
	"github.com/nathoo/tilequest/engine/interact"
	"github.com/nathoo/tilequest/engine/quest"
	"github.com/nathoo/tilequest/engine/rng"
	"github.com/nathoo/tilequest/engine/spatial"
	"github.com/nathoo/tilequest/engine/spawn"
	"github.com/nathoo/tilequest/engine/state"
	"github.com/nathoo/tilequest/engine/world"
	"github.com/nathoo/tilequest/types"
)

// Mode is the engine's macro state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModeDialogue
	ModeQuit
)

func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModeDialogue:
		return "dialogue"
	case ModeQuit:
		return "quit"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Menu choices accepted in Input.Choice.
const (
	ChoicePlay = "play"
	ChoiceExit = "exit"
	ChoiceQuit = "quit"
)

// Options configures an Engine. The zero value is usable: no map files,
// time-seeded randomness, no logging and unthrottled debug spawns.
type Options struct {
	Maps       world.Source
	Seed       int64
	Logger     *zap.Logger
	SpawnRate  float64 // debug spawns per second; 0 means unlimited
	SpawnBurst int
}

// Engine holds the game definitions and the authoritative game state.
type Engine struct {
	Defs *state.Defs
	RNG  *rng.RNG

	mode     Mode
	player   *entity.Player
	spawner  *spawn.Coordinator
	quest    *quest.Quest
	dispatch *interact.Dispatcher
	dialogue dialogue.Queue
	world    *world.Map
	mapID    string
	maps     world.Source
	target   *types.Vec
	hint     string
	crossed  map[string]bool
	ticks    int64

	spawnLimiter *rate.Limiter
	bus          events.Bus
	log          *zap.Logger
}

// New creates an engine in menu mode.
func New(defs *state.Defs, opts Options) *Engine {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	limit := rate.Inf
	if opts.SpawnRate > 0 {
		limit = rate.Limit(opts.SpawnRate)
	}
	burst := opts.SpawnBurst
	if burst < 1 {
		burst = 1
	}

	e := &Engine{
		Defs:         defs,
		RNG:          rng.New(seed),
		maps:         opts.Maps,
		crossed:      map[string]bool{},
		spawnLimiter: rate.NewLimiter(limit, burst),
		log:          log,
	}
	e.player = entity.NewPlayer(defs.Game)
	for _, s := range defs.SortedSkills() {
		e.player.AddSkill(entity.NewSkill(s))
	}
	e.spawner = spawn.New(defs.Enemy, e.RNG, e.player)
	e.quest = quest.New(e.player.Inventory, defs.Script(), defs.Pickups)
	e.dispatch = interact.New(e.quest, e.player.Inventory, defs.NPCs, defs.Game.ScanRadius, defs.Game.WellHeal)
	return e
}

// Subscribe registers h for events of eventType. Handlers run at the end of
// every Tick, after the frame's state changes are complete.
func (e *Engine) Subscribe(eventType string, h events.Handler) {
	e.bus.On(eventType, h)
}

// SubscribeAll registers h for every event.
func (e *Engine) SubscribeAll(h events.Handler) {
	e.bus.OnAll(h)
}

// Mode returns the current macro state.
func (e *Engine) Mode() Mode { return e.mode }

// Player returns the player.
func (e *Engine) Player() *entity.Player { return e.player }

// Enemies returns the live enemy collection.
func (e *Engine) Enemies() []*entity.Enemy { return e.spawner.Enemies() }

// Quest returns the quest state machine.
func (e *Engine) Quest() *quest.Quest { return e.quest }

// World returns the current map. It may be empty.
func (e *Engine) World() *world.Map { return e.world }

// MapID returns the ID of the current map.
func (e *Engine) MapID() string { return e.mapID }

// Tick advances the game by one frame at time now.
func (e *Engine) Tick(now time.Time, in types.Input) types.Result {
	var res types.Result

	switch e.mode {
	case ModeQuit:
		return res
	case ModeMenu:
		e.menu(in, &res)
	case ModeDialogue:
		e.dismiss(in, &res)
	case ModePlaying:
		if in.Choice == ChoiceExit || in.Choice == ChoiceQuit {
			e.setMode(ModeQuit, &res)
			break
		}
		e.play(now, in, &res)
	}

	e.ticks++
	e.bus.Dispatch(res.Events)
	return res
}

// Ticks returns how many frames have been processed.
func (e *Engine) Ticks() int64 { return e.ticks }

func (e *Engine) menu(in types.Input, res *types.Result) {
	switch in.Choice {
	case ChoicePlay:
		e.start(res)
	case ChoiceExit, ChoiceQuit:
		e.setMode(ModeQuit, res)
	}
}

// start loads the first map and populates it.
func (e *Engine) start(res *types.Result) {
	def, ok := e.Defs.StartMap()
	if !ok {
		def = types.MapDef{ID: e.Defs.Game.StartMap}
	}
	e.world = e.loadMap(def, res)
	if e.world == nil {
		e.world, _ = world.New(def.ID, nil, e.Defs.Game.CellSize)
	}
	e.mapID = def.ID
	e.spawner.Replace(def.Spawns)
	e.log.Info("game started",
		zap.String("map", def.ID),
		zap.Int("enemies", len(def.Spawns)),
		zap.Int64("seed", e.RNG.Seed()))

	e.setMode(ModePlaying, res)
	if e.Defs.Game.Intro != "" {
		res.Output = append(res.Output, e.Defs.Game.Intro)
	}
}

// dismiss handles the frozen dialogue frame: nothing but a dismiss counts.
func (e *Engine) dismiss(in types.Input, res *types.Result) {
	if !in.Dismiss {
		return
	}
	if e.dialogue.Dismiss() {
		res.Events = append(res.Events, events.New(events.DialogueClosed, nil))
		e.setMode(ModePlaying, res)
		return
	}
	if p, ok := e.dialogue.Current(); ok {
		res.Output = append(res.Output, page(p))
	}
}

// play runs one playing frame. Stages stop early when one of them opens a
// dialogue, since the world is frozen from that point.
func (e *Engine) play(now time.Time, in types.Input, res *types.Result) {
	e.handleInput(now, in, res)

	if e.player.Update(now) {
		e.target = nil
		res.Events = append(res.Events, events.New(events.PlayerRespawned, map[string]any{
			"x": e.player.Position().X, "y": e.player.Position().Y,
		}))
		res.Output = append(res.Output, "You wake up back at the village.")
		e.log.Debug("player respawned")
	}

	e.move(res)
	e.updateEnemies(now, res)

	if !e.player.Alive() {
		return
	}
	if e.reply(e.quest.CheckPickups(e.player.Bounds()), "", res) {
		return
	}
	e.interact(res)
	if e.mode == ModeDialogue {
		return
	}
	e.transition(res)
}

func (e *Engine) handleInput(now time.Time, in types.Input, res *types.Result) {
	if in.Spawn {
		e.debugSpawn(now, res)
	}
	if !e.player.Alive() {
		return
	}
	if in.Target != nil {
		t := *in.Target
		e.target = &t
	}
	if in.Select != types.NoSkill {
		e.selectSkill(in.Select-1, res)
	}
	if in.Use != types.NoSkill {
		if e.selectSkill(in.Use-1, res) {
			e.useSkill(now, res)
		}
	}
}

// debugSpawn drops a level 1 enemy on the player, throttled by the spawn
// limiter.
func (e *Engine) debugSpawn(now time.Time, res *types.Result) {
	if !e.spawnLimiter.AllowN(now, 1) {
		res.Events = append(res.Events, events.New(events.SpawnThrottled, nil))
		return
	}
	en := e.spawner.SpawnOne(e.player.Position(), 1)
	res.Events = append(res.Events, events.New(events.EnemySpawned, map[string]any{
		"id": en.ID, "level": en.Level(), "x": en.Position().X, "y": en.Position().Y,
	}))
	e.log.Debug("debug spawn", zap.String("enemy", en.ID), zap.Float64("x", en.Position().X), zap.Float64("y", en.Position().Y))
}

func (e *Engine) selectSkill(i int, res *types.Result) bool {
	if !e.player.SelectSkill(i) {
		res.Output = append(res.Output, fmt.Sprintf("There is no skill %d.", i+1))
		return false
	}
	res.Events = append(res.Events, events.New(events.SkillSelected, map[string]any{
		"index": i, "skill": e.player.SelectedSkill().Name,
	}))
	return true
}

// move steps the player toward the click target. A step onto a barrier or
// out of the world is refused and the target kept.
func (e *Engine) move(res *types.Result) {
	if e.target == nil || !e.player.Alive() {
		return
	}
	from := e.player.Position()
	next := spatial.StepToward(from, *e.target, e.player.Speed())
	if !e.inWorld(next) || e.world.Blocked(next) {
		return
	}
	e.player.SetPosition(next)
	if next == *e.target {
		e.target = nil
		res.Events = append(res.Events, events.New(events.TargetReached, map[string]any{
			"x": next.X, "y": next.Y,
		}))
	}
}

func (e *Engine) inWorld(v types.Vec) bool {
	g := e.Defs.Game
	return v.X >= 0 && v.Y >= 0 && v.X <= g.WorldWidth && v.Y <= g.WorldHeight
}

// interact runs the tile scan and the NPC check.
func (e *Engine) interact(res *types.Result) {
	in := e.dispatch.Scan(e.world, e.player)
	if in.Kind == interact.KindWell && in.Healed > 0 {
		res.Events = append(res.Events, events.New(events.Healed, map[string]any{
			"amount": in.Healed, "health": e.player.Health(),
		}))
	}
	e.items(in.Granted, in.Consumed, res)

	npc, r, ok := e.dispatch.NPC(e.world, e.player.Position())
	if !ok {
		e.hint = ""
		return
	}
	e.reply(r, npc.Name, res)
}

// reply applies a quest reply: events, hint, dialogue. Reports whether a
// dialogue opened.
func (e *Engine) reply(r quest.Reply, speaker string, res *types.Result) bool {
	if r.Empty() {
		return false
	}
	if r.Advanced() {
		res.Events = append(res.Events, events.New(events.QuestStep, map[string]any{
			"step": r.Step, "npc": speaker,
		}))
		e.log.Info("quest step", zap.String("step", r.Step), zap.String("npc", speaker))
		e.hint = ""
	}
	e.items(r.Granted, r.Consumed, res)
	if r.Hint != "" {
		e.setHint(r.Hint, res)
	}
	return e.openDialogue(speaker, r.Dialogue, res)
}

func (e *Engine) items(granted, consumed []string, res *types.Result) {
	for _, item := range granted {
		res.Events = append(res.Events, events.New(events.ItemGranted, map[string]any{"item": item}))
		res.Output = append(res.Output, fmt.Sprintf("%s added to your inventory.", item))
	}
	for _, item := range consumed {
		res.Events = append(res.Events, events.New(events.ItemConsumed, map[string]any{"item": item}))
	}
}

// setHint shows a hint. Repeating the current hint is silent until the
// player steps off the NPC or the quest advances.
func (e *Engine) setHint(h string, res *types.Result) {
	if h == e.hint {
		return
	}
	e.hint = h
	res.Events = append(res.Events, events.New(events.Hint, map[string]any{"text": h}))
	res.Output = append(res.Output, h)
}

func (e *Engine) openDialogue(speaker string, pages []string, res *types.Result) bool {
	e.dialogue.Push(speaker, pages...)
	p, ok := e.dialogue.Current()
	if !ok {
		return false
	}
	res.Events = append(res.Events, events.New(events.DialogueOpened, map[string]any{
		"speaker": speaker, "pages": e.dialogue.Remaining(),
	}))
	res.Output = append(res.Output, page(p))
	e.setMode(ModeDialogue, res)
	return true
}

// transition swaps the map when the player enters a transition area. Each
// transition fires at most once.
func (e *Engine) transition(res *types.Result) {
	for _, t := range e.Defs.TransitionsFrom(e.mapID) {
		key := t.From + ">" + t.To
		if e.crossed[key] || !spatial.Intersects(e.player.Bounds(), t.Area) {
			continue
		}
		e.crossed[key] = true

		def, ok := e.Defs.Map(t.To)
		if !ok {
			def = types.MapDef{ID: t.To}
		}
		if m := e.loadMap(def, res); m != nil {
			e.world = m
		}
		e.mapID = def.ID
		e.spawner.Replace(def.Spawns)
		e.player.SetPosition(t.Arrive)
		e.target = nil
		if t.Reward != "" {
			e.player.Inventory.Add(t.Reward)
			e.items([]string{t.Reward}, nil, res)
		}
		res.Events = append(res.Events, events.New(events.MapChanged, map[string]any{
			"from": t.From, "to": def.ID,
		}))
		e.log.Info("map transition", zap.String("from", t.From), zap.String("to", def.ID))
		return
	}
}

// loadMap returns nil when the map cannot be loaded. The failure is logged
// and reported as an event.
func (e *Engine) loadMap(def types.MapDef, res *types.Result) *world.Map {
	if e.maps == nil {
		return nil
	}
	m, err := e.maps.Load(def)
	if err != nil {
		e.log.Error("map load failed", zap.String("map", def.ID), zap.Error(err))
		res.Events = append(res.Events, events.New(events.MapLoadFailed, map[string]any{
			"map": def.ID, "error": err.Error(),
		}))
		return nil
	}
	return m
}

func (e *Engine) setMode(m Mode, res *types.Result) {
	if e.mode == m {
		return
	}
	from := e.mode
	e.mode = m
	res.Events = append(res.Events, events.New(events.ModeChanged, map[string]any{
		"from": from.String(), "to": m.String(),
	}))
}

// page formats a dialogue page for text output.
func page(p dialogue.Page) string {
	if p.Speaker == "" {
		return p.Text
	}
	return p.Speaker + ": " + p.Text
}
