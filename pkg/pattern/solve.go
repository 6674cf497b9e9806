package pattern

import (
	"math"

	"github.com/picket-studio/picket/pkg/errors"
)

// Params is the solved layout parameterization for a request.
// Rectilinear families use Rows, Cols and Spacing; the circular family uses
// Rings and Spacing (the distance between successive rings).
type Params struct {
	Rows    int
	Cols    int
	Rings   int
	Spacing float64
}

// Solve derives grid (or ring) dimensions and spacing for the request.
//
// For rectilinear families the solver inverts count → (rows, cols) using the
// board aspect ratio as the only other degree of freedom:
//
//	cols = round(sqrt(count * aspect))
//	rows = round(count / cols), incremented once if rows*cols < count
//
// The round-up bias deliberately over-covers: generation for offset,
// hexagonal, and circular families drops out-of-bounds points, and the
// materialize stage truncates any excess back to the requested count.
//
// Spacing is uniform on both axes: min(width/cols, height/rows). This keeps
// every generated row and column inside the shorter board dimension and lets
// the centering offsets absorb the slack on the longer one.
//
// For the circular family the ring count satisfies count ≈ π·rings², i.e.
// the area of a disc of that many unit rings, and spacing keeps the full
// ring extent within the shorter dimension.
func Solve(req Request) (Params, error) {
	if err := req.Validate(); err != nil {
		return Params{}, err
	}

	if req.Family == FamilyCircular {
		return solveRings(req)
	}
	return solveGrid(req)
}

func solveGrid(req Request) (Params, error) {
	cols := int(math.Round(math.Sqrt(float64(req.Count) * req.Aspect())))
	if cols < 1 {
		return Params{}, errors.New(errors.ErrCodeInvalidCount,
			"count %d with aspect %.3f solves to zero columns", req.Count, req.Aspect())
	}

	rows := int(math.Round(float64(req.Count) / float64(cols)))
	if rows*cols < req.Count {
		rows++
	}
	if rows < 1 {
		return Params{}, errors.New(errors.ErrCodeInvalidCount,
			"count %d with aspect %.3f solves to zero rows", req.Count, req.Aspect())
	}

	spacingX := req.Width / float64(cols)
	spacingY := req.Height / float64(rows)

	return Params{
		Rows:    rows,
		Cols:    cols,
		Spacing: math.Min(spacingX, spacingY),
	}, nil
}

func solveRings(req Request) (Params, error) {
	rings := int(math.Round(math.Sqrt(float64(req.Count) / math.Pi)))
	if rings < 1 {
		return Params{}, errors.New(errors.ErrCodeInvalidCount,
			"count %d solves to zero rings", req.Count)
	}

	minDim := math.Min(req.Width, req.Height)

	return Params{
		Rings:   rings,
		Spacing: minDim / float64(rings*2),
	}, nil
}
