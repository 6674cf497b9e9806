// Package pattern implements the placement engine for pick boards.
//
// Given a requested pick count and the dimensions of a source image, the
// package derives a grid (or ring) parameterization that approximates the
// requested total while preserving the image's aspect ratio, enumerates
// concrete placement coordinates for one of four pattern families, and binds
// each coordinate to a color from a [source.ColorSource].
//
// # Pipeline
//
// The stages are pure functions and can be run independently:
//
//	params, err := pattern.Solve(req)          // count → rows/cols/rings + spacing
//	points := pattern.Generate(req, params)    // params → ordered (x, y) coordinates
//	picks := pattern.Materialize(points, src, w, h)  // coordinates → colored placements
//
// or as a single pass:
//
//	picks, params, err := pattern.Build(req, src)
//
// All coordinates are in the source image's pixel space. Generation order is
// row-major (ring-major for circular patterns) and fully deterministic, so a
// given request always yields an identical placement list.
package pattern

import (
	"github.com/picket-studio/picket/pkg/errors"
)

// Family selects one of the supported placement algorithms.
type Family string

// Supported pattern families.
const (
	FamilyGrid     Family = "grid"       // plain rectangular grid
	FamilyOffset   Family = "offset"     // brick-bond grid, odd rows shifted half a spacing
	FamilyHex      Family = "hexagonal"  // offset grid with equilateral row pitch
	FamilyCircular Family = "circular"   // concentric rings around the board center
)

// ValidFamilies is the set of recognized pattern families.
var ValidFamilies = map[Family]bool{
	FamilyGrid:     true,
	FamilyOffset:   true,
	FamilyHex:      true,
	FamilyCircular: true,
}

// ParseFamily converts a string to a Family.
// Returns an INVALID_PATTERN error for unrecognized names.
func ParseFamily(s string) (Family, error) {
	f := Family(s)
	if !ValidFamilies[f] {
		return "", errors.New(errors.ErrCodeInvalidPattern,
			"unknown pattern family: %q (must be one of: grid, offset, hexagonal, circular)", s)
	}
	return f, nil
}

// Rectilinear reports whether the family is parameterized by rows and
// columns. Circular patterns are parameterized by ring count instead.
func (f Family) Rectilinear() bool {
	return f == FamilyGrid || f == FamilyOffset || f == FamilyHex
}

// Request is the immutable input to a layout solve. Width and Height are the
// source image dimensions in pixels and double as the board dimensions;
// placements are generated centered within [0, Width] x [0, Height].
type Request struct {
	Count  int     // requested total number of picks
	Width  float64 // board width in pixels
	Height float64 // board height in pixels
	Family Family
}

// Validate checks the request preconditions.
// Returns INVALID_COUNT, DEGENERATE_DIMENSIONS, or INVALID_PATTERN errors.
func (r Request) Validate() error {
	if err := errors.ValidatePickCount(r.Count); err != nil {
		return err
	}
	if err := errors.ValidateBoardDimensions(r.Width, r.Height); err != nil {
		return err
	}
	if !ValidFamilies[r.Family] {
		return errors.New(errors.ErrCodeInvalidPattern, "unknown pattern family: %q", string(r.Family))
	}
	return nil
}

// Aspect returns the width/height ratio of the board.
// Only meaningful after Validate has confirmed non-zero dimensions.
func (r Request) Aspect() float64 {
	return r.Width / r.Height
}

// Point is a single placement coordinate in image pixel space.
type Point struct {
	X, Y float64
}
