package entity

import (
	"time"

	"github.com/nathoo/tilequest/types"
)

var epoch = time.Unix(1_700_000_000, 0)

// at returns a time offset from the test epoch.
func at(d time.Duration) time.Time {
	return epoch.Add(d)
}

// fixedRand always returns the low bound.
type fixedRand struct{}

func (fixedRand) IntRange(lo, hi int) int                     { return lo }
func (fixedRand) Duration(lo, hi time.Duration) time.Duration { return lo }

// dummy is a stationary Target that records damage.
type dummy struct {
	pos   types.Vec
	dead  bool
	taken float64
	hits  int
}

func (d *dummy) Position() types.Vec { return d.pos }
func (d *dummy) Alive() bool         { return !d.dead }
func (d *dummy) TakeDamage(amount float64, now time.Time) {
	d.taken += amount
	d.hits++
}

// killLog records kill notifications.
type killLog struct {
	kills int
	xp    []int
}

func (k *killLog) RecordKill(xp int) {
	k.kills++
	k.xp = append(k.xp, xp)
}
