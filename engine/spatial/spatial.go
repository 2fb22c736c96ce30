// Package spatial provides the distance, range and steering helpers shared
// by the movement and combat code.
package spatial

import (
	"math"

	"github.com/nathoo/tilequest/types"
)

// Distance returns the Euclidean distance between a and b.
func Distance(a, b types.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Within reports whether b lies strictly inside radius r of a.
// A distance exactly equal to r is out of range.
func Within(a, b types.Vec, r float64) bool {
	return Distance(a, b) < r
}

// Step moves from toward to by exactly speed along the straight line.
// When from and to coincide, from is returned unchanged.
func Step(from, to types.Vec, speed float64) types.Vec {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return from
	}
	return types.Vec{X: from.X + dx/d*speed, Y: from.Y + dy/d*speed}
}

// StepToward is Step clamped to the remaining distance, so it never
// overshoots the destination.
func StepToward(from, to types.Vec, speed float64) types.Vec {
	d := Distance(from, to)
	if d <= speed {
		return to
	}
	return Step(from, to, speed)
}

// Intersects reports whether two rectangles overlap. Touching edges do not
// count as an overlap.
func Intersects(a, b types.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Cell returns the grid column and row containing v for square cells of the
// given size. Negative coordinates floor toward negative infinity.
func Cell(v types.Vec, size float64) (col, row int) {
	return int(math.Floor(v.X / size)), int(math.Floor(v.Y / size))
}

// Box returns the square box of the given size anchored at v.
func Box(v types.Vec, size float64) types.Rect {
	return types.Rect{X: v.X, Y: v.Y, W: size, H: size}
}
