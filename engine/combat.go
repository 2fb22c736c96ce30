package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nathoo/tilequest/engine/events"
	"github.com/nathoo/tilequest/types"
)

// useSkill fires the selected skill at the first live enemy in range. With
// no enemy in range the skill is not spent.
func (e *Engine) useSkill(now time.Time, res *types.Result) {
	skill := e.player.SelectedSkill()
	if skill == nil {
		return
	}
	target := e.spawner.FirstInRange(e.player.Position(), e.player.AttackRange())
	if target == nil {
		res.Output = append(res.Output, "No enemy in range.")
		return
	}
	if !skill.Ready(now) {
		res.Output = append(res.Output, fmt.Sprintf("%s is cooling down (%.1fs).", skill.Name, skill.Remaining(now).Seconds()))
		return
	}

	level := e.player.Level()
	damage, ok := e.player.UseSelectedSkill(target, now)
	if !ok {
		return
	}
	res.Events = append(res.Events, events.New(events.SkillUsed, map[string]any{
		"skill": skill.Name, "enemy": target.ID, "damage": damage,
	}))
	res.Output = append(res.Output, fmt.Sprintf("You hit the level %d enemy with %s for %g.", target.Level(), skill.Name, damage))

	if target.Alive() {
		return
	}
	res.Events = append(res.Events, events.New(events.EnemyKilled, map[string]any{
		"enemy": target.ID, "level": target.Level(), "xp": target.Experience(),
	}))
	res.Output = append(res.Output, fmt.Sprintf("The level %d enemy is defeated. +%d XP.", target.Level(), target.Experience()))
	e.log.Debug("enemy killed", zap.String("enemy", target.ID), zap.Int("level", target.Level()))

	if gained := e.player.Level() - level; gained > 0 {
		res.Events = append(res.Events, events.New(events.LevelUp, map[string]any{
			"level": e.player.Level(), "gained": gained,
		}))
		res.Output = append(res.Output, fmt.Sprintf("You reached level %d!", e.player.Level()))
		e.log.Info("level up", zap.Int("level", e.player.Level()))
	}
}

// updateEnemies runs every enemy against the player.
func (e *Engine) updateEnemies(now time.Time, res *types.Result) {
	wasAlive := e.player.Alive()
	for _, c := range e.spawner.Update(e.player, now) {
		switch {
		case c.Outcome.Respawned:
			res.Events = append(res.Events, events.New(events.EnemyRespawned, map[string]any{
				"enemy": c.Enemy.ID, "level": c.Enemy.Level(),
			}))
			e.log.Debug("enemy respawned", zap.String("enemy", c.Enemy.ID))
		case c.Outcome.Hit:
			res.Events = append(res.Events, events.New(events.PlayerHit, map[string]any{
				"enemy": c.Enemy.ID, "damage": c.Outcome.Damage, "health": e.player.Health(),
			}))
		}
	}
	if wasAlive && !e.player.Alive() {
		e.target = nil
		res.Events = append(res.Events, events.New(events.PlayerDied, nil))
		res.Output = append(res.Output, "You have fallen.")
		e.log.Info("player died", zap.Int("level", e.player.Level()))
	}
}
