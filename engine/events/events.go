// Package events names the events the engine emits and implements
// single-pass dispatch to subscribers. Handlers observe events but cannot
// emit new ones.
package events

import "github.com/nathoo/tilequest/types"

// Event types.
const (
	ModeChanged     = "mode_changed"
	MapChanged      = "map_changed"
	MapLoadFailed   = "map_load_failed"
	SkillSelected   = "skill_selected"
	SkillUsed       = "skill_used"
	EnemyKilled     = "enemy_killed"
	EnemyRespawned  = "enemy_respawned"
	EnemySpawned    = "enemy_spawned"
	SpawnThrottled  = "spawn_throttled"
	PlayerHit       = "player_hit"
	PlayerDied      = "player_died"
	PlayerRespawned = "player_respawned"
	LevelUp         = "level_up"
	Healed          = "healed"
	ItemGranted     = "item_granted"
	ItemConsumed    = "item_consumed"
	QuestStep       = "quest_step"
	Hint            = "hint"
	DialogueOpened  = "dialogue_opened"
	DialogueClosed  = "dialogue_closed"
	TargetReached   = "target_reached"
)

// New builds an event.
func New(eventType string, data map[string]any) types.Event {
	return types.Event{Type: eventType, Data: data}
}

// Handler observes one event.
type Handler func(types.Event)

// Bus routes events to handlers by type. The zero value is ready to use.
type Bus struct {
	byType map[string][]Handler
	all    []Handler
}

// On registers h for events of eventType.
func (b *Bus) On(eventType string, h Handler) {
	if b.byType == nil {
		b.byType = map[string][]Handler{}
	}
	b.byType[eventType] = append(b.byType[eventType], h)
}

// OnAll registers h for every event.
func (b *Bus) OnAll(h Handler) {
	b.all = append(b.all, h)
}

// Dispatch runs handlers against the emitted events, in event order and then
// registration order. Single pass, no recursion.
func (b *Bus) Dispatch(evts []types.Event) {
	for _, ev := range evts {
		for _, h := range b.byType[ev.Type] {
			h(ev)
		}
		for _, h := range b.all {
			h(ev)
		}
	}
}

// Filter returns the events of the given types, in order.
func Filter(evts []types.Event, eventTypes ...string) []types.Event {
	want := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		want[t] = true
	}
	var out []types.Event
	for _, ev := range evts {
		if want[ev.Type] {
			out = append(out, ev)
		}
	}
	return out
}
