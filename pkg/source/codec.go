package source

import (
	"encoding/json"
	"fmt"
)

// quantizedSnapshot is the serialized form of a QuantizedSource, used to
// cache quantization results across runs.
type quantizedSnapshot struct {
	Width   int   `json:"width"`
	Height  int   `json:"height"`
	Palette []RGB `json:"palette"`
	Labels  []int `json:"labels"`
}

// Encode serializes the quantized source for caching.
func (s *QuantizedSource) Encode() ([]byte, error) {
	return json.Marshal(quantizedSnapshot{
		Width:   s.width,
		Height:  s.height,
		Palette: s.palette,
		Labels:  s.labels,
	})
}

// DecodeQuantized restores a quantized source from its serialized form.
// The snapshot is validated so a corrupt cache entry cannot produce a
// source that panics on lookup.
func DecodeQuantized(data []byte) (*QuantizedSource, error) {
	var snap quantizedSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Width <= 0 || snap.Height <= 0 {
		return nil, fmt.Errorf("invalid snapshot dimensions %dx%d", snap.Width, snap.Height)
	}
	if len(snap.Labels) != snap.Width*snap.Height {
		return nil, fmt.Errorf("snapshot has %d labels for %dx%d pixels", len(snap.Labels), snap.Width, snap.Height)
	}
	for _, l := range snap.Labels {
		if l < 0 || l >= len(snap.Palette) {
			return nil, fmt.Errorf("snapshot label %d outside palette of %d", l, len(snap.Palette))
		}
	}
	return &QuantizedSource{
		width:   snap.Width,
		height:  snap.Height,
		palette: snap.Palette,
		labels:  snap.Labels,
	}, nil
}
