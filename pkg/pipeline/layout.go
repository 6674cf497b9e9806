package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/picket-studio/picket/pkg/observability"
	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

// =============================================================================
// Layout Stage
// =============================================================================

// GenerateLayout solves the arrangement and produces the colored placement
// list for the given source. Board dimensions must be resolved before
// calling; Execute does this automatically from the source bounds.
func GenerateLayout(ctx context.Context, src source.ColorSource, opts Options) ([]pattern.Placement, pattern.Params, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, pattern.Params{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Family, opts.Count)

	picks, params, err := pattern.Build(opts.Request(), src)

	observability.Pipeline().OnLayoutComplete(ctx, opts.Family, len(picks), time.Since(start), err)
	return picks, params, err
}

// =============================================================================
// Layout Serialization
// =============================================================================

// layoutSnapshot is the serialized form of a layout stage result, used for
// caching placements across runs.
type layoutSnapshot struct {
	Placements []pattern.Placement `json:"placements"`
	Params     pattern.Params      `json:"params"`
}

// MarshalLayout serializes placements and params for caching.
func MarshalLayout(placements []pattern.Placement, params pattern.Params) ([]byte, error) {
	return json.Marshal(layoutSnapshot{Placements: placements, Params: params})
}

// UnmarshalLayout restores a cached layout stage result.
func UnmarshalLayout(data []byte) ([]pattern.Placement, pattern.Params, error) {
	var snap layoutSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, pattern.Params{}, err
	}
	return snap.Placements, snap.Params, nil
}
