package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/picket-studio/picket/pkg/cache"
	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/observability"
	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete source → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Source
	sourceStart := time.Now()
	src, sourceKey, sourceHit, err := r.SourceWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	result.Palette = SourcePalette(src)
	result.Stats.SourceTime = time.Since(sourceStart)
	result.Stats.PaletteSize = len(result.Palette)
	result.CacheInfo.SourceHit = sourceHit

	r.Logger.Info("loaded color source",
		"image", opts.Image,
		"colors", result.Stats.PaletteSize,
		"duration", result.Stats.SourceTime)

	// Board dimensions default to the source pixel dimensions
	resolveBoard(&opts, src)

	// Stage 2: Layout
	layoutStart := time.Now()
	picks, params, layoutHit, err := r.LayoutWithCacheInfo(ctx, src, sourceKey, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Placements = picks
	result.Params = params
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.PickCount = len(picks)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("generated placements",
		"family", opts.Family,
		"picks", len(picks),
		"spacing", params.Spacing,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, picks, params, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SourceWithCacheInfo builds the color source with caching and returns the
// source cache key (used to scope downstream keys) and cache hit info.
// Gradient sources are cheap to rebuild and are never cached.
func (r *Runner) SourceWithCacheInfo(ctx context.Context, opts Options) (source.ColorSource, string, bool, error) {
	if err := opts.ValidateForSource(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	imgData, err := os.ReadFile(opts.Image)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", false, errors.New(errors.ErrCodeFileNotFound,
				"image not found: %s", opts.Image)
		}
		return nil, "", false, err
	}
	cacheKey := r.Keyer.SourceKey(cache.Hash(imgData), opts.SourceKeyOpts())

	// Try cache first (unless refresh requested); only quantized sources
	// are cached.
	if !opts.Gradient && !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if src, err := source.DecodeQuantized(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "source")
				return src, cacheKey, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "source")
	}

	src, err := BuildSource(ctx, opts)
	if err != nil {
		return nil, "", false, err
	}

	// Cache the result
	if q, ok := src.(*source.QuantizedSource); ok {
		if data, err := q.Encode(); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLSource)
			observability.Cache().OnCacheSet(ctx, "source", len(data))
		}
	}

	return src, cacheKey, false, nil // Cache miss
}

// Source is a convenience wrapper that calls SourceWithCacheInfo and discards the cache info.
func (r *Runner) Source(ctx context.Context, opts Options) (source.ColorSource, error) {
	src, _, _, err := r.SourceWithCacheInfo(ctx, opts)
	return src, err
}

// LayoutWithCacheInfo generates placements with caching and returns cache hit info.
// The source cache key scopes the layout key so a new image invalidates
// cached placements. An empty sourceKey means the source identity is
// unknown and the cache is skipped entirely.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, src source.ColorSource, sourceKey string, opts Options) ([]pattern.Placement, pattern.Params, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, pattern.Params{}, false, err
	}
	r.applyLogger(&opts)
	resolveBoard(&opts, src)

	if sourceKey == "" {
		picks, params, err := GenerateLayout(ctx, src, opts)
		return picks, params, false, err
	}

	cacheKey := r.Keyer.LayoutKey(cache.Hash([]byte(sourceKey)), opts.LayoutKeyOpts())

	// Try cache first
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			picks, params, err := UnmarshalLayout(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return picks, params, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	picks, params, err := GenerateLayout(ctx, src, opts)
	if err != nil {
		return nil, pattern.Params{}, false, err
	}

	// Cache the result
	if data, err := MarshalLayout(picks, params); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return picks, params, false, nil // Cache miss
}

// Layout is a convenience wrapper that generates placements without cache bookkeeping.
func (r *Runner) Layout(ctx context.Context, src source.ColorSource, opts Options) ([]pattern.Placement, pattern.Params, error) {
	picks, params, _, err := r.LayoutWithCacheInfo(ctx, src, "", opts)
	return picks, params, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, picks []pattern.Placement, params pattern.Params, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	// Compute cache key from placement data
	layoutData, err := MarshalLayout(picks, params)
	if err != nil {
		return nil, false, fmt.Errorf("serialize placements for cache key: %w", err)
	}
	cacheKeyHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	rendered, err := RenderFromPlacements(picks, params, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(cacheKeyHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, picks []pattern.Placement, params pattern.Params, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, picks, params, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
