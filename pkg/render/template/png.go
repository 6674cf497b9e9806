package template

import (
	"bytes"

	"github.com/fogleman/gg"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	title string
	grid  bool
}

// WithPNGScale sets the raster resolution in pixels per board unit
// (default 4.0).
func WithPNGScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTitle draws a title line above the board.
func WithPNGTitle(title string) PNGOption { return func(r *pngRenderer) { r.title = title } }

// WithPNGGrid draws reference grid lines across the board.
func WithPNGGrid() PNGOption { return func(r *pngRenderer) { r.grid = true } }

// RenderPNG rasters the template directly with gg, without going through
// SVG conversion, so PNG export works even when librsvg is not installed.
func RenderPNG(t Template, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 4.0}
	for _, opt := range opts {
		opt(&r)
	}

	titleH := 0.0
	if r.title != "" {
		titleH = titleBandHeight
	}
	totalW := t.BoardWidth + 2*pageMargin
	totalH := t.BoardHeight + 2*pageMargin + titleH

	dc := gg.NewContext(int(totalW*r.scale), int(totalH*r.scale))
	dc.Scale(r.scale, r.scale)

	// Page background
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if r.title != "" {
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(r.title, totalW/2, pageMargin, 0.5, 0.5)
	}

	boardX, boardY := pageMargin, pageMargin+titleH

	// Board outline
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(0.5)
	dc.DrawRectangle(boardX, boardY, t.BoardWidth, t.BoardHeight)
	dc.Stroke()

	if r.grid {
		dc.SetRGB(0.8, 0.8, 0.8)
		dc.SetLineWidth(0.2)
		step := t.gridStep()
		for x := step; x < t.BoardWidth; x += step {
			dc.DrawLine(boardX+x, boardY, boardX+x, boardY+t.BoardHeight)
		}
		for y := step; y < t.BoardHeight; y += step {
			dc.DrawLine(boardX, boardY+y, boardX+t.BoardWidth, boardY+y)
		}
		dc.Stroke()
	}

	radius := t.markerRadius()
	for _, p := range t.Picks {
		dc.SetRGB255(int(p.Color.R), int(p.Color.G), int(p.Color.B))
		dc.DrawCircle(boardX+p.X, boardY+p.Y, radius)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(0.1)
		dc.DrawCircle(boardX+p.X, boardY+p.Y, radius)
		dc.Stroke()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
