package pipeline

import (
	"context"
	"time"

	"github.com/picket-studio/picket/pkg/observability"
	"github.com/picket-studio/picket/pkg/source"
)

// =============================================================================
// Source Stage
// =============================================================================

// BuildSource loads the reference image and reduces it to a color source.
// In gradient mode the full image colors are used directly; otherwise the
// image is quantized to opts.Colors representative colors.
func BuildSource(ctx context.Context, opts Options) (source.ColorSource, error) {
	if err := opts.ValidateForSource(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnSourceStart(ctx, opts.Image, opts.Colors)

	src, err := buildSource(opts)

	paletteSize := 0
	if err == nil {
		paletteSize = len(SourcePalette(src))
	}
	observability.Pipeline().OnSourceComplete(ctx, opts.Image, paletteSize, time.Since(start), err)

	return src, err
}

func buildSource(opts Options) (source.ColorSource, error) {
	img, err := source.Load(opts.Image, opts.MaxImageWidth, opts.MaxImageHeight)
	if err != nil {
		return nil, err
	}

	if opts.Gradient {
		return source.NewGradientSource(img), nil
	}
	return source.Quantize(img, opts.Colors)
}

// SourcePalette extracts the palette from a color source. Both source
// implementations expose one; unknown implementations yield nil.
func SourcePalette(src source.ColorSource) []source.RGB {
	type paletted interface {
		Palette() []source.RGB
	}
	if p, ok := src.(paletted); ok {
		return p.Palette()
	}
	return nil
}

// resolveBoard fills zero board dimensions from the source bounds so
// placements map 1:1 onto source pixels by default.
func resolveBoard(opts *Options, src source.ColorSource) {
	w, h := src.Bounds()
	if opts.Width == 0 {
		opts.Width = float64(w)
	}
	if opts.Height == 0 {
		opts.Height = float64(h)
	}
}
