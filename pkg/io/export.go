package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/picket-studio/picket/pkg/palette"
	"github.com/picket-studio/picket/pkg/pattern"
)

// Document is the JSON interchange form of a finished template.
type Document struct {
	ID      string         `json:"id"`
	Title   string         `json:"title,omitempty"`
	Family  string         `json:"family,omitempty"`
	Board   Board          `json:"board"`
	Spacing float64        `json:"spacing"`
	Count   int            `json:"count"`
	Palette []PaletteEntry `json:"palette"`
	Picks   []Pick         `json:"picks"`
}

// Board holds the board dimensions.
type Board struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// PaletteEntry summarizes one color's usage across the placement list.
type PaletteEntry struct {
	Name  string  `json:"name"`
	Hex   string  `json:"hex"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Pick is one placement in document form, with the color as a hex string.
type Pick struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Angle float64 `json:"angle"`
	Color string  `json:"color"`
}

// NewDocument builds a document from a placement list. The palette section
// is derived from the picks, most used color first.
func NewDocument(id string, picks []pattern.Placement, board Board, spacing float64) *Document {
	usage := palette.Summarize(picks)
	entries := make([]PaletteEntry, len(usage))
	for i, u := range usage {
		entries[i] = PaletteEntry{Name: u.Name, Hex: u.Color.Hex(), Count: u.Count, Share: u.Share}
	}

	out := make([]Pick, len(picks))
	for i, p := range picks {
		out[i] = Pick{X: p.X, Y: p.Y, Z: p.Z, Angle: p.Angle, Color: p.Color.Hex()}
	}

	return &Document{
		ID:      id,
		Board:   board,
		Spacing: spacing,
		Count:   len(picks),
		Palette: entries,
		Picks:   out,
	}
}

// WriteDocument encodes the document as indented JSON and writes it to w.
// The output can be re-imported with [ReadDocument] for round-trip
// processing.
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return nil
}

// WriteFile writes the document to the named file, creating or truncating
// it.
func WriteFile(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteDocument(doc, f); err != nil {
		return err
	}
	return f.Close()
}
