package template

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/picket-studio/picket/pkg/palette"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	title  string
	family string
	id     string
}

// WithJSONTitle records the template title in the JSON output.
func WithJSONTitle(title string) JSONOption { return func(r *jsonRenderer) { r.title = title } }

// WithJSONFamily records the pattern family in the JSON output for
// documentation or round-trip regeneration.
func WithJSONFamily(family string) JSONOption { return func(r *jsonRenderer) { r.family = family } }

// WithJSONID pins the document ID instead of generating a random one.
// Useful for reproducible output in tests and cached artifacts.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

type jsonOutput struct {
	ID      string      `json:"id"`
	Title   string      `json:"title,omitempty"`
	Family  string      `json:"family,omitempty"`
	Board   jsonBoard   `json:"board"`
	Spacing float64     `json:"spacing"`
	Count   int         `json:"count"`
	Palette []jsonColor `json:"palette"`
	Picks   []jsonPick  `json:"picks"`
}

type jsonBoard struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonColor struct {
	Name  string  `json:"name"`
	Hex   string  `json:"hex"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

type jsonPick struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	Angle float64 `json:"angle"`
	Color string  `json:"color"`
}

// RenderJSON exports the template as a pretty-printed JSON document. This
// is the primary data interchange format, enabling:
//
//   - Import into CAD or CNC tooling
//   - Caching computed placements for fast re-rendering
//   - Round-trip regeneration with the recorded family and board size
//
// Each document carries a UUID so exported files can be tracked across
// revisions. RenderJSON returns an error only if JSON marshaling fails.
// It does not modify t and is safe to call concurrently.
func RenderJSON(t Template, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.id == "" {
		r.id = uuid.NewString()
	}

	usage := palette.Summarize(t.Picks)
	colors := make([]jsonColor, len(usage))
	for i, u := range usage {
		colors[i] = jsonColor{Name: u.Name, Hex: u.Color.Hex(), Count: u.Count, Share: u.Share}
	}

	picks := make([]jsonPick, len(t.Picks))
	for i, p := range t.Picks {
		picks[i] = jsonPick{X: p.X, Y: p.Y, Z: p.Z, Angle: p.Angle, Color: p.Color.Hex()}
	}

	out := jsonOutput{
		ID:      r.id,
		Title:   r.title,
		Family:  r.family,
		Board:   jsonBoard{Width: t.BoardWidth, Height: t.BoardHeight},
		Spacing: t.Spacing,
		Count:   len(t.Picks),
		Palette: colors,
		Picks:   picks,
	}

	return json.MarshalIndent(out, "", "  ")
}
