// Package metrics exports game loop and gameplay counters to Prometheus.
// Labels are bounded: no per-enemy or per-player labels.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nathoo/tilequest/engine/events"
	"github.com/nathoo/tilequest/types"
)

// maxLevelLabel caps the level label. Higher levels share one series.
const maxLevelLabel = 20

// Subscriber is the part of the engine a Recorder listens on.
type Subscriber interface {
	SubscribeAll(h events.Handler)
}

// Recorder owns a private registry so tests and multiple engines never
// collide on the default one.
type Recorder struct {
	reg *prometheus.Registry

	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	aliveEnemies prometheus.Gauge
	playerLevel  prometheus.Gauge
	playerHealth prometheus.Gauge
	events       *prometheus.CounterVec
	kills        *prometheus.CounterVec
	questSteps   *prometheus.CounterVec
	deaths       prometheus.Counter
	dialogues    prometheus.Counter
	mapChanges   prometheus.Counter
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilequest_tick_duration_seconds",
			Help:    "Time spent in one engine tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.016, 0.033},
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "tilequest_ticks_total",
			Help: "Engine ticks run",
		}),
		aliveEnemies: f.NewGauge(prometheus.GaugeOpts{
			Name: "tilequest_enemies_alive",
			Help: "Enemies currently alive on the active map",
		}),
		playerLevel: f.NewGauge(prometheus.GaugeOpts{
			Name: "tilequest_player_level",
			Help: "Current player level",
		}),
		playerHealth: f.NewGauge(prometheus.GaugeOpts{
			Name: "tilequest_player_health",
			Help: "Current player health",
		}),
		events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilequest_events_total",
			Help: "Engine events by type",
		}, []string{"type"}),
		kills: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilequest_enemy_kills_total",
			Help: "Enemies killed by enemy level",
		}, []string{"level"}),
		questSteps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilequest_quest_steps_total",
			Help: "Quest steps reached",
		}, []string{"step"}),
		deaths: f.NewCounter(prometheus.CounterOpts{
			Name: "tilequest_player_deaths_total",
			Help: "Times the player died",
		}),
		dialogues: f.NewCounter(prometheus.CounterOpts{
			Name: "tilequest_dialogues_total",
			Help: "Dialogues opened",
		}),
		mapChanges: f.NewCounter(prometheus.CounterOpts{
			Name: "tilequest_map_changes_total",
			Help: "Map transitions taken",
		}),
	}
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Attach subscribes the recorder to every event the engine dispatches.
func (r *Recorder) Attach(s Subscriber) {
	s.SubscribeAll(r.Handle)
}

// Handle records one engine event.
func (r *Recorder) Handle(ev types.Event) {
	r.events.WithLabelValues(ev.Type).Inc()
	switch ev.Type {
	case events.EnemyKilled:
		r.kills.WithLabelValues(levelLabel(ev.Data["level"])).Inc()
	case events.QuestStep:
		if step, ok := ev.Data["step"].(string); ok && step != "" {
			r.questSteps.WithLabelValues(step).Inc()
		}
	case events.PlayerDied:
		r.deaths.Inc()
	case events.DialogueOpened:
		r.dialogues.Inc()
	case events.MapChanged:
		r.mapChanges.Inc()
	}
}

// Frame is the per-tick state sampled after a tick.
type Frame struct {
	Duration     time.Duration
	AliveEnemies int
	PlayerLevel  int
	PlayerHealth float64
}

// ObserveTick records the timing and gauges for one tick.
func (r *Recorder) ObserveTick(f Frame) {
	r.ticks.Inc()
	r.tickDuration.Observe(f.Duration.Seconds())
	r.aliveEnemies.Set(float64(f.AliveEnemies))
	r.playerLevel.Set(float64(f.PlayerLevel))
	r.playerHealth.Set(f.PlayerHealth)
}

func levelLabel(v any) string {
	level, ok := v.(int)
	if !ok || level < 1 {
		return "unknown"
	}
	if level >= maxLevelLabel {
		return strconv.Itoa(maxLevelLabel) + "+"
	}
	return strconv.Itoa(level)
}
