package pattern

import (
	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/source"
)

// Physical pick constants, in board units.
const (
	// PickHeight is the display height of a pick above the board.
	PickHeight = 30.0

	// PickAngle is the angle from the surface normal; picks stand upright.
	PickAngle = 90.0
)

// Placement is a single colored pick bound to a board position. X and Y are
// in board units, unscaled for display. The list handed to renderers and
// exporters always carries these original coordinates.
type Placement struct {
	X, Y  float64
	Z     float64 // display height hint: center of the pick
	Angle float64
	Color source.RGB
}

// Materialize binds each point to a color from the source, preserving input
// order. Points are in board units; boardW and boardH map them onto the
// source's pixel grid, so a board larger or smaller than the image still
// samples the proportional pixel. A non-positive board dimension means the
// board matches the image and the axis maps 1:1. The scaled position is
// truncated to pixel indices and each axis is clamped independently into
// [0, dim-1], so floating-point boundary overshoot cannot cause an
// out-of-range lookup; a color is resolved for every point and
// len(output) == len(input) always.
func Materialize(points []Point, src source.ColorSource, boardW, boardH float64) []Placement {
	width, height := src.Bounds()

	scaleX, scaleY := 1.0, 1.0
	if boardW > 0 {
		scaleX = float64(width) / boardW
	}
	if boardH > 0 {
		scaleY = float64(height) / boardH
	}

	placements := make([]Placement, len(points))
	for i, pt := range points {
		placements[i] = Placement{
			X:     pt.X,
			Y:     pt.Y,
			Z:     PickHeight / 2,
			Angle: PickAngle,
			Color: src.ColorAt(clampIndex(int(pt.X*scaleX), width), clampIndex(int(pt.Y*scaleY), height)),
		}
	}
	return placements
}

// Build runs the full solve, generate, truncate, materialize pass for a
// request. Generation can over-produce (the solver rounds up) or
// under-produce (bounds filtering); excess placements are dropped from the
// tail so the first-generated points are always the ones kept.
//
// All failures are precondition failures detected before any placement is
// produced; a previously computed placement list held by the caller is never
// partially overwritten.
func Build(req Request, src source.ColorSource) ([]Placement, Params, error) {
	if src == nil {
		return nil, Params{}, errors.New(errors.ErrCodeNoColorSource,
			"no color source: load an image before generating placements")
	}

	params, err := Solve(req)
	if err != nil {
		return nil, Params{}, err
	}

	points := Generate(req, params)
	if len(points) > req.Count {
		points = points[:req.Count]
	}

	return Materialize(points, src, req.Width, req.Height), params, nil
}

// clampIndex clamps an integer pixel index into [0, dim-1].
func clampIndex(v, dim int) int {
	if v < 0 {
		return 0
	}
	if v >= dim {
		return dim - 1
	}
	return v
}
