package entity

import (
	"math"
	"testing"
	"time"

	"github.com/nathoo/tilequest/types"
)

func newTestPlayer() *Player {
	p := NewPlayer(DefaultGameDef())
	p.AddSkill(NewSkill(types.SkillDef{Name: "attack_1", Cooldown: time.Second, Damage: 10}))
	p.AddSkill(NewSkill(types.SkillDef{Name: "attack_2", Cooldown: 2 * time.Second, Damage: 50}))
	return p
}

func TestPlayer_Defaults(t *testing.T) {
	p := newTestPlayer()
	if p.Position() != (types.Vec{X: 5000, Y: 5000}) {
		t.Errorf("start = %+v", p.Position())
	}
	if p.Health() != 100 || p.Level() != 1 || p.NextLevel() != 60 {
		t.Errorf("health=%v level=%d next=%d", p.Health(), p.Level(), p.NextLevel())
	}
}

func TestPlayer_TakeDamageClampsAndDies(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(30, epoch)
	if p.Health() != 70 {
		t.Fatalf("health = %v, want 70", p.Health())
	}
	p.TakeDamage(500, epoch)
	if p.Health() != 0 || p.Alive() {
		t.Fatalf("health=%v alive=%v after lethal damage", p.Health(), p.Alive())
	}
	if p.Update(at(999 * time.Millisecond)) {
		t.Fatal("respawned before delay")
	}
	p.SetPosition(types.Vec{X: 1, Y: 1})
	if !p.Update(at(time.Second)) {
		t.Fatal("did not respawn after delay")
	}
	if !p.Alive() || p.Health() != p.MaxHealth() || p.Position() != (types.Vec{X: 5000, Y: 5000}) {
		t.Errorf("after respawn: alive=%v health=%v pos=%+v", p.Alive(), p.Health(), p.Position())
	}
}

func TestPlayer_NaNIgnored(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(math.NaN(), epoch)
	if p.Health() != p.MaxHealth() || !p.Alive() {
		t.Fatalf("health=%v alive=%v after NaN damage", p.Health(), p.Alive())
	}
	p.TakeDamage(40, epoch)
	p.Heal(math.NaN())
	if p.Health() != 60 {
		t.Errorf("health = %v after NaN heal, want 60", p.Health())
	}
}

func TestPlayer_Heal(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(10, epoch)
	p.Heal(0.1)
	if math.Abs(p.Health()-90.1) > 1e-9 {
		t.Errorf("health = %v, want 90.1", p.Health())
	}
	p.Heal(1000)
	if p.Health() != p.MaxHealth() {
		t.Errorf("heal overshoot: %v", p.Health())
	}
}

func TestPlayer_SelectSkillBounds(t *testing.T) {
	p := newTestPlayer()
	tests := []struct {
		i    int
		ok   bool
		want int
	}{
		{1, true, 1},
		{2, false, 1},
		{-1, false, 1},
		{0, true, 0},
	}
	for _, tt := range tests {
		if got := p.SelectSkill(tt.i); got != tt.ok {
			t.Errorf("SelectSkill(%d) = %v, want %v", tt.i, got, tt.ok)
		}
		if p.SelectedIndex() != tt.want {
			t.Errorf("after SelectSkill(%d): selected = %d, want %d", tt.i, p.SelectedIndex(), tt.want)
		}
	}
}

func TestPlayer_UseSelectedSkill(t *testing.T) {
	p := newTestPlayer()
	e := NewEnemy(types.Vec{X: 5050, Y: 5000}, 1, DefaultEnemyDef(), fixedRand{}, p)

	d, ok := p.UseSelectedSkill(e, epoch)
	if !ok || d != 10 {
		t.Fatalf("first use = (%v,%v), want (10,true)", d, ok)
	}
	if _, ok := p.UseSelectedSkill(e, at(500*time.Millisecond)); ok {
		t.Fatal("skill fired during cooldown")
	}
	p.SelectSkill(1)
	d, ok = p.UseSelectedSkill(e, at(500*time.Millisecond))
	if !ok || d != 50 {
		t.Fatalf("second skill = (%v,%v), want (50,true)", d, ok)
	}
	if e.Health() != 40 {
		t.Errorf("enemy health = %v, want 40", e.Health())
	}
}

func TestPlayer_KillAwardsExperienceAndLevels(t *testing.T) {
	p := newTestPlayer()
	e := NewEnemy(types.Vec{X: 5050, Y: 5000}, 1, DefaultEnemyDef(), fixedRand{}, p)
	e.TakeDamage(1000, epoch)
	if p.Kills() != 1 || p.Experience() != 10 {
		t.Fatalf("kills=%d xp=%d, want 1 and 10", p.Kills(), p.Experience())
	}

	p.TakeDamage(40, epoch)
	gained := p.AddExperience(150)
	// 160 xp: level 2 at 60 (rest 100), level 3 at 90 (rest 10).
	if gained != 2 || p.Level() != 3 || p.Experience() != 10 || p.NextLevel() != 135 {
		t.Errorf("gained=%d level=%d xp=%d next=%d", gained, p.Level(), p.Experience(), p.NextLevel())
	}
	if p.MaxHealth() != 140 || p.Health() != 140 || p.AttackDamage() != 10 {
		t.Errorf("max=%v health=%v dmg=%v", p.MaxHealth(), p.Health(), p.AttackDamage())
	}
	if p.TotalAttackDamage() != 20 {
		t.Errorf("TotalAttackDamage = %v, want 20", p.TotalAttackDamage())
	}
}

func TestPlayer_DeadCannotUseSkills(t *testing.T) {
	p := newTestPlayer()
	p.TakeDamage(100, epoch)
	target := &dummy{pos: p.Position()}
	if _, ok := p.UseSelectedSkill(target, at(time.Hour)); ok {
		t.Error("dead player used a skill")
	}
}

func TestPlayer_BoundsAndCenter(t *testing.T) {
	p := newTestPlayer()
	b := p.Bounds()
	if b != (types.Rect{X: 5000, Y: 5000, W: 100, H: 100}) {
		t.Errorf("Bounds = %+v", b)
	}
	if c := p.Center(); c != (types.Vec{X: 5050, Y: 5050}) {
		t.Errorf("Center = %+v", c)
	}
}
