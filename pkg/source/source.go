// Package source provides per-pixel color resolution for placement
// materialization.
//
// A [ColorSource] answers "what color belongs at pixel (x, y)" for a loaded
// image. Two concrete variants exist:
//
//   - [QuantizedSource]: colors reduced to a fixed palette of K
//     representative colors via k-means clustering, with the
//     nearest-centroid assignment baked in at quantization time.
//   - [GradientSource]: pass-through to the original per-pixel colors.
//
// The variants are mutually exclusive modes. Switching between them requires
// re-deriving the placement list from scratch; there is no blended state.
package source

import (
	"fmt"
	"image"
	"sort"
)

// RGB is a color triple with each channel in [0, 255].
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase hex string, e.g. "#1a2b3c".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses a "#rrggbb" hex string into an RGB color. The leading "#"
// is required and the digits are case-insensitive.
func ParseHex(s string) (RGB, error) {
	var c RGB
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid hex color: %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid hex color: %q", s)
	}
	return c, nil
}

// ColorSource resolves a color for any pixel coordinate of a loaded image.
// Implementations must return a valid color for every in-bounds coordinate;
// color resolution cannot fail.
type ColorSource interface {
	// ColorAt returns the color at pixel (x, y). Coordinates must be within
	// [0, width) x [0, height).
	ColorAt(x, y int) RGB

	// Bounds returns the image dimensions in pixels.
	Bounds() (width, height int)
}

// maxGradientPalette caps the palette reported by a GradientSource. Original
// images routinely contain tens of thousands of distinct colors; the guide
// sheet only has room for a sampled subset.
const maxGradientPalette = 256

// GradientSource resolves colors directly from the original image pixels.
type GradientSource struct {
	img *image.NRGBA
}

// NewGradientSource creates a gradient-mode source over an image.
func NewGradientSource(img image.Image) *GradientSource {
	return &GradientSource{img: toNRGBA(img)}
}

// ColorAt returns the original pixel color at (x, y).
func (s *GradientSource) ColorAt(x, y int) RGB {
	c := s.img.NRGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Bounds returns the image dimensions.
func (s *GradientSource) Bounds() (width, height int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Palette returns the distinct colors of the image, sampled evenly down to
// at most 256 entries. The result is sorted by channel value so repeated
// calls are deterministic.
func (s *GradientSource) Palette() []RGB {
	seen := make(map[RGB]struct{})
	b := s.img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := s.img.NRGBAAt(x, y)
			seen[RGB{R: c.R, G: c.G, B: c.B}] = struct{}{}
		}
	}

	unique := make([]RGB, 0, len(seen))
	for c := range seen {
		unique = append(unique, c)
	}
	sort.Slice(unique, func(i, j int) bool {
		a, b := unique[i], unique[j]
		if a.R != b.R {
			return a.R < b.R
		}
		if a.G != b.G {
			return a.G < b.G
		}
		return a.B < b.B
	})

	if len(unique) <= maxGradientPalette {
		return unique
	}

	// Sample evenly across the sorted colors.
	sampled := make([]RGB, maxGradientPalette)
	step := float64(len(unique)-1) / float64(maxGradientPalette-1)
	for i := range sampled {
		sampled[i] = unique[int(float64(i)*step)]
	}
	return sampled
}

// Ensure GradientSource implements ColorSource.
var _ ColorSource = (*GradientSource)(nil)
