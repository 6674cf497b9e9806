// Package pipeline provides the core template generation pipeline for Picket.
//
// This package implements the complete source → layout → render pipeline that
// can be used by CLI, server, and preview components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Source: Load the reference image and reduce it to a color source
//  2. Layout: Solve the arrangement and generate colored placements
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON, guide)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Image:   "sunset.png",
//	    Count:   400,
//	    Family:  "grid",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Source only
//	src, err := runner.Source(ctx, opts)
//
//	// Layout with an existing source
//	picks, params, err := runner.Layout(ctx, src, opts)
//
//	// Render with existing placements
//	artifacts, err := runner.Render(ctx, picks, params, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/picket-studio/picket/pkg/cache"
	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and Preview
// =============================================================================

const (
	// DefaultCount is the default number of picks to place.
	DefaultCount = 400

	// DefaultColors is the default palette size for quantization.
	DefaultColors = 8

	// DefaultMaxImageWidth bounds the loaded image width. Larger images are
	// downscaled before quantization; this keeps k-means fast without a
	// visible quality loss at typical pick counts.
	DefaultMaxImageWidth = 400

	// DefaultMaxImageHeight bounds the loaded image height.
	DefaultMaxImageHeight = 400
)

// DefaultFamily is the default pattern family.
const DefaultFamily = pattern.FamilyGrid

// Format constants for output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatPDF   = "pdf"
	FormatJSON  = "json"
	FormatGuide = "guide"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatJSON:  true,
	FormatGuide: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the template pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Source options
	Image          string `json:"image"`
	Colors         int    `json:"colors,omitempty"`
	Gradient       bool   `json:"gradient,omitempty"` // use the full image colors, skip quantization
	MaxImageWidth  int    `json:"max_image_width,omitempty"`
	MaxImageHeight int    `json:"max_image_height,omitempty"`
	Refresh        bool   `json:"refresh,omitempty"`

	// Layout options. Zero board dimensions default to the loaded image's
	// pixel dimensions so placements map 1:1 onto pixels.
	Family string  `json:"family,omitempty"`
	Count  int     `json:"count,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"`
	Grid        bool     `json:"grid,omitempty"`
	Guide       bool     `json:"guide,omitempty"` // append the color guide band to SVG output
	PaperWidth  float64  `json:"paper_width,omitempty"`
	PaperHeight float64  `json:"paper_height,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Palette is the reduced color palette of the source.
	Palette []source.RGB

	// Placements is the final colored pick list.
	Placements []pattern.Placement

	// Params is the solved arrangement (rows, columns, rings, spacing).
	Params pattern.Params

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PickCount   int
	PaletteSize int
	SourceTime  time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SourceHit bool // Whether the quantized source came from cache
	LayoutHit bool // Whether the placement list came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, json, guide)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSource(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSource checks required fields for the source stage.
func (o *Options) ValidateForSource() error {
	if o.Image == "" {
		return fmt.Errorf("image is required")
	}

	// Source defaults
	if o.Colors == 0 {
		o.Colors = DefaultColors
	}
	if o.MaxImageWidth == 0 {
		o.MaxImageWidth = DefaultMaxImageWidth
	}
	if o.MaxImageHeight == 0 {
		o.MaxImageHeight = DefaultMaxImageHeight
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout computation. Board
// dimensions are left alone; they fall back to the source bounds once the
// image is loaded.
func (o *Options) SetLayoutDefaults() {
	if o.Family == "" {
		o.Family = string(DefaultFamily)
	}
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := pattern.ParseFamily(o.Family); err != nil {
		return err
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// Request builds the pattern request for these options. Board dimensions
// must already be resolved (either set explicitly or filled from the
// source bounds).
func (o *Options) Request() pattern.Request {
	return pattern.Request{
		Count:  o.Count,
		Width:  o.Width,
		Height: o.Height,
		Family: pattern.Family(o.Family),
	}
}

// SourceKeyOpts returns cache key options for the source stage.
func (o *Options) SourceKeyOpts() cache.SourceKeyOpts {
	return cache.SourceKeyOpts{
		Colors:   o.Colors,
		Gradient: o.Gradient,
		MaxW:     o.MaxImageWidth,
		MaxH:     o.MaxImageHeight,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Family: o.Family,
		Count:  o.Count,
		Width:  o.Width,
		Height: o.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		Grid:        o.Grid,
		Guide:       o.Guide,
		PaperWidth:  o.PaperWidth,
		PaperHeight: o.PaperHeight,
	}
}
