package template

import (
	"math"

	"github.com/picket-studio/picket/pkg/pattern"
)

// Template bundles everything a sink needs to draw a build template:
// the board dimensions, the solved spacing, and the placement list.
// All dimensions are in board units (millimeters by convention).
type Template struct {
	BoardWidth  float64
	BoardHeight float64
	Spacing     float64
	Picks       []pattern.Placement
}

// markerRadius returns the marker radius for a board, scaled with board
// size and clamped so markers stay visible on tiny boards and do not
// swallow the pattern on huge ones.
func (t Template) markerRadius() float64 {
	r := math.Max(t.BoardWidth, t.BoardHeight) / 200
	if r < 0.5 {
		return 0.5
	}
	if r > 5 {
		return 5
	}
	return r
}

// gridStep returns the reference grid line interval for a board.
func (t Template) gridStep() float64 {
	step := math.Max(t.BoardWidth, t.BoardHeight) / 20
	if step < 10 {
		return 10
	}
	return step
}
