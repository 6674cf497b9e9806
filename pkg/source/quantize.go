package source

import (
	"image"
	"math"
	"math/rand"

	"github.com/picket-studio/picket/pkg/errors"
)

const (
	// quantizeSeed fixes the k-means++ seeding so the same image and palette
	// size always produce the same palette. Reproducibility matters more
	// here than clustering variance: templates are regenerated often and
	// the pick colors must not drift between runs.
	quantizeSeed = 42

	// maxIterations bounds the Lloyd refinement loop. Convergence on photo
	// palettes typically happens well before this.
	maxIterations = 20
)

// QuantizedSource resolves colors from a reduced palette of K representative
// colors. The nearest-centroid assignment for every pixel is computed once
// at construction; lookups are a label-table read.
type QuantizedSource struct {
	width, height int
	palette       []RGB
	labels        []int // palette index per pixel, row-major
}

// Quantize reduces the image to a palette of k representative colors using
// k-means clustering with k-means++ seeding.
func Quantize(img image.Image, k int) (*QuantizedSource, error) {
	if err := errors.ValidatePaletteSize(k); err != nil {
		return nil, err
	}

	nrgba := toNRGBA(img)
	b := nrgba.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New(errors.ErrCodeDegenerateBounds, "cannot quantize empty image")
	}

	pixels := make([][3]float64, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := nrgba.NRGBAAt(x, y)
			pixels = append(pixels, [3]float64{float64(c.R), float64(c.G), float64(c.B)})
		}
	}

	if k > len(pixels) {
		k = len(pixels)
	}

	rng := rand.New(rand.NewSource(quantizeSeed))
	centroids := seedCentroids(pixels, k, rng)
	labels := make([]int, len(pixels))

	for iter := 0; iter < maxIterations; iter++ {
		changed := assign(pixels, centroids, labels)
		recenter(pixels, centroids, labels, rng)
		if !changed {
			break
		}
	}

	palette := make([]RGB, len(centroids))
	for i, c := range centroids {
		palette[i] = RGB{
			R: uint8(math.Round(clampChannel(c[0]))),
			G: uint8(math.Round(clampChannel(c[1]))),
			B: uint8(math.Round(clampChannel(c[2]))),
		}
	}

	return &QuantizedSource{
		width:   width,
		height:  height,
		palette: palette,
		labels:  labels,
	}, nil
}

// ColorAt returns the palette color assigned to pixel (x, y).
func (s *QuantizedSource) ColorAt(x, y int) RGB {
	return s.palette[s.labels[y*s.width+x]]
}

// Bounds returns the image dimensions.
func (s *QuantizedSource) Bounds() (width, height int) {
	return s.width, s.height
}

// Palette returns the K representative colors.
func (s *QuantizedSource) Palette() []RGB {
	out := make([]RGB, len(s.palette))
	copy(out, s.palette)
	return out
}

// Ensure QuantizedSource implements ColorSource.
var _ ColorSource = (*QuantizedSource)(nil)

// seedCentroids picks initial centroids with k-means++: the first uniformly
// at random, each subsequent one with probability proportional to the
// squared distance from the nearest already-chosen centroid.
func seedCentroids(pixels [][3]float64, k int, rng *rand.Rand) [][3]float64 {
	centroids := make([][3]float64, 0, k)
	centroids = append(centroids, pixels[rng.Intn(len(pixels))])

	dists := make([]float64, len(pixels))
	for len(centroids) < k {
		var total float64
		for i, p := range pixels {
			d := math.Inf(1)
			for _, c := range centroids {
				if dd := sqDist(p, c); dd < d {
					d = dd
				}
			}
			dists[i] = d
			total += d
		}

		if total == 0 {
			// All remaining pixels coincide with a centroid; duplicate one.
			centroids = append(centroids, centroids[len(centroids)-1])
			continue
		}

		target := rng.Float64() * total
		var acc float64
		idx := len(pixels) - 1
		for i, d := range dists {
			acc += d
			if acc >= target {
				idx = i
				break
			}
		}
		centroids = append(centroids, pixels[idx])
	}
	return centroids
}

// assign labels every pixel with its nearest centroid.
// Reports whether any label changed.
func assign(pixels, centroids [][3]float64, labels []int) bool {
	changed := false
	for i, p := range pixels {
		best := 0
		bestDist := sqDist(p, centroids[0])
		for j := 1; j < len(centroids); j++ {
			if d := sqDist(p, centroids[j]); d < bestDist {
				best = j
				bestDist = d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// recenter moves each centroid to the mean of its assigned pixels. Empty
// clusters are re-seeded from a random pixel so k never shrinks.
func recenter(pixels, centroids [][3]float64, labels []int, rng *rand.Rand) {
	sums := make([][3]float64, len(centroids))
	counts := make([]int, len(centroids))
	for i, p := range pixels {
		l := labels[i]
		sums[l][0] += p[0]
		sums[l][1] += p[1]
		sums[l][2] += p[2]
		counts[l]++
	}
	for j := range centroids {
		if counts[j] == 0 {
			centroids[j] = pixels[rng.Intn(len(pixels))]
			continue
		}
		n := float64(counts[j])
		centroids[j] = [3]float64{sums[j][0] / n, sums[j][1] / n, sums[j][2] / n}
	}
}

func sqDist(a, b [3]float64) float64 {
	dr := a[0] - b[0]
	dg := a[1] - b[1]
	db := a[2] - b[2]
	return dr*dr + dg*dg + db*db
}

func clampChannel(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
