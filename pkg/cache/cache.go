// Package cache provides byte-level caching for pipeline stages.
//
// Quantizing a large photo and regenerating print artifacts are the slow
// parts of the pipeline; both are pure functions of their inputs, so results
// are cached under content-derived keys. Three backends are provided:
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared backend for serve mode
//   - NullCache: disables caching
//
// Keys are produced by a [Keyer] so every caller derives them identically.
package cache

import (
	"context"
	"time"
)

// TTLs per cached artifact class. Source and layout results are pure
// functions of their keys and could live forever; the TTLs just bound disk
// usage for boards that are never rebuilt.
const (
	// TTLSource is the lifetime of cached quantization results.
	TTLSource = 7 * 24 * time.Hour

	// TTLLayout is the lifetime of cached placement lists.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered output artifacts.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiration.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SourceKeyOpts are the inputs that determine a quantization result.
type SourceKeyOpts struct {
	Colors   int  // palette size (ignored in gradient mode)
	Gradient bool // gradient mode bypasses quantization
	MaxW     int  // resize bounds applied at load time
	MaxH     int
}

// LayoutKeyOpts are the inputs that determine a placement list.
type LayoutKeyOpts struct {
	Family string
	Count  int
	Width  float64
	Height float64
}

// ArtifactKeyOpts are the inputs that determine a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string
	Title       string
	Grid        bool
	Guide       bool
	PaperWidth  float64
	PaperHeight float64
}

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// SourceKey keys a color source derivation by image content hash.
	SourceKey(imageHash string, opts SourceKeyOpts) string

	// LayoutKey keys a placement list by its source hash and layout request.
	LayoutKey(sourceHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by its layout hash and options.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SourceKey generates a key for quantization results.
func (k *DefaultKeyer) SourceKey(imageHash string, opts SourceKeyOpts) string {
	return hashKey("source", imageHash, opts)
}

// LayoutKey generates a key for placement lists.
func (k *DefaultKeyer) LayoutKey(sourceHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", sourceHash, opts)
}

// ArtifactKey generates a key for rendered artifacts.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
