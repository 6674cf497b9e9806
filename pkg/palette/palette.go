// Package palette provides color naming, matching, and usage statistics for
// pick placements.
//
// The naming scheme maps HSV coordinates to a small descriptive vocabulary
// ("Dark Blue", "Pale Orange", "Light Gray") intended for the printable color
// guide and shopping list, not for colorimetric precision.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/picket-studio/picket/pkg/source"
)

// toColorful converts an RGB triple to a colorful.Color with channels in [0, 1].
func toColorful(c source.RGB) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Name returns a descriptive name for a color.
//
// Low-saturation colors name a gray level; everything else names a hue band
// with a brightness or saturation modifier.
func Name(c source.RGB) string {
	h, s, v := toColorful(c).Hsv()

	// Low saturation reads as grayscale.
	if s < 0.1 {
		switch {
		case v < 0.2:
			return "Black"
		case v < 0.4:
			return "Dark Gray"
		case v < 0.6:
			return "Gray"
		case v < 0.8:
			return "Light Gray"
		default:
			return "White"
		}
	}

	var base string
	switch {
	case h < 10 || h >= 350:
		base = "Red"
	case h < 40:
		base = "Orange"
	case h < 65:
		base = "Yellow"
	case h < 150:
		base = "Green"
	case h < 200:
		base = "Cyan"
	case h < 260:
		base = "Blue"
	case h < 300:
		base = "Purple"
	default:
		base = "Magenta"
	}

	switch {
	case v < 0.3:
		return "Dark " + base
	case v > 0.8 && s > 0.3:
		return "Bright " + base
	case s < 0.3:
		return "Pale " + base
	}
	return base
}

// Closest returns the palette color nearest to target, using perceptual CIE
// Lab distance, along with that distance. An empty palette returns the
// target itself with distance 0.
func Closest(palette []source.RGB, target source.RGB) (source.RGB, float64) {
	if len(palette) == 0 {
		return target, 0
	}

	tc := toColorful(target)
	best := palette[0]
	bestDist := tc.DistanceLab(toColorful(palette[0]))
	for _, c := range palette[1:] {
		if d := tc.DistanceLab(toColorful(c)); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist
}

// Brightness returns the perceived brightness of a color in [0, 1] using the
// Rec. 601 luma weights.
func Brightness(c source.RGB) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// Info bundles the display representations of a single color.
type Info struct {
	Name string
	RGB  source.RGB
	Hex  string
	HSV  string
}

// Describe returns display information for a color.
func Describe(c source.RGB) Info {
	h, s, v := toColorful(c).Hsv()
	return Info{
		Name: Name(c),
		RGB:  c,
		Hex:  c.Hex(),
		HSV:  hsvString(h, s, v),
	}
}

func hsvString(h, s, v float64) string {
	return fmt.Sprintf("H:%d S:%d%% V:%d%%",
		int(math.Round(h)), int(math.Round(s*100)), int(math.Round(v*100)))
}
