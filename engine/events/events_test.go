package events

import (
	"testing"

	"github.com/nathoo/tilequest/types"
)

func TestDispatch_MatchesEventType(t *testing.T) {
	var b Bus
	var got []string
	b.On(EnemyKilled, func(ev types.Event) { got = append(got, "killed:"+ev.Data["id"].(string)) })
	b.On(EnemyKilled, func(ev types.Event) { got = append(got, "second") })
	b.On(QuestStep, func(ev types.Event) { got = append(got, "quest") })

	b.Dispatch([]types.Event{
		New(EnemyKilled, map[string]any{"id": "e1"}),
		New(Healed, nil),
	})

	if len(got) != 2 || got[0] != "killed:e1" || got[1] != "second" {
		t.Errorf("handlers ran %v", got)
	}
}

func TestDispatch_AllAfterTyped(t *testing.T) {
	var b Bus
	var order []string
	b.OnAll(func(ev types.Event) { order = append(order, "all:"+ev.Type) })
	b.On(Hint, func(ev types.Event) { order = append(order, "typed") })

	b.Dispatch([]types.Event{New(Hint, nil), New(LevelUp, nil)})

	want := []string{"typed", "all:hint", "all:level_up"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestDispatch_ZeroBus(t *testing.T) {
	var b Bus
	b.Dispatch([]types.Event{New(Hint, nil)})
}

func TestFilter(t *testing.T) {
	evts := []types.Event{New(Hint, nil), New(LevelUp, nil), New(Hint, nil), New(Healed, nil)}
	if got := Filter(evts, Hint, Healed); len(got) != 3 {
		t.Errorf("Filter returned %d events, want 3", len(got))
	}
	if got := Filter(evts); len(got) != 0 {
		t.Errorf("Filter with no types returned %d events", len(got))
	}
}
