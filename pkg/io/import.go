package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/source"
)

// ReadDocument decodes a placement document from r.
//
// ReadDocument returns an error if:
//   - The JSON is malformed
//   - The board dimensions are not positive
//   - The document has no picks
//   - A pick's color does not parse as a "#rrggbb" hex string
//
// A count field that disagrees with the pick list is tolerated; the pick
// list wins. The returned document is independent of r and can be modified
// safely after ReadDocument returns. ReadDocument does not close r.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	if doc.Board.Width <= 0 || doc.Board.Height <= 0 {
		return nil, fmt.Errorf("invalid board dimensions: %g x %g", doc.Board.Width, doc.Board.Height)
	}
	if len(doc.Picks) == 0 {
		return nil, fmt.Errorf("document has no picks")
	}
	for i, p := range doc.Picks {
		if _, err := source.ParseHex(p.Color); err != nil {
			return nil, fmt.Errorf("pick %d: %w", i, err)
		}
	}
	doc.Count = len(doc.Picks)

	return &doc, nil
}

// ReadFile reads a placement document from the named file.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Placements converts the document's picks back into placement values.
// Colors are assumed valid; call this only on documents returned by
// [ReadDocument].
func (d *Document) Placements() []pattern.Placement {
	out := make([]pattern.Placement, len(d.Picks))
	for i, p := range d.Picks {
		c, _ := source.ParseHex(p.Color)
		out[i] = pattern.Placement{X: p.X, Y: p.Y, Z: p.Z, Angle: p.Angle, Color: c}
	}
	return out
}
