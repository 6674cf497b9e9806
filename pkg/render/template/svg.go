package template

import (
	"bytes"
	"fmt"

	"github.com/picket-studio/picket/pkg/palette"
)

// Page geometry in board units. The board is framed by a fixed margin;
// title and guide bands are added above and below when requested.
const (
	pageMargin      = 10.0
	titleBandHeight = 14.0
	guideRowHeight  = 8.0
	guideHeadHeight = 12.0
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title       string
	grid        bool
	guide       bool
	paperWidth  float64
	paperHeight float64
}

// WithTitle draws a title line above the board.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithGrid draws reference grid lines across the board to help transfer
// positions to the physical workpiece.
func WithGrid() SVGOption { return func(r *svgRenderer) { r.grid = true } }

// WithGuide appends a color guide band below the board listing each
// palette color with the number of picks that use it.
func WithGuide() SVGOption { return func(r *svgRenderer) { r.guide = true } }

// WithPaperSize sets the physical output size in millimeters. The drawing
// keeps its aspect ratio and is centered on the page. Without this option
// the SVG has no physical size and scales freely.
func WithPaperSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.paperWidth = width; r.paperHeight = height }
}

// RenderSVG draws the template as an SVG document: the board outline,
// optional reference grid, one colored marker per pick, and optional
// title and color guide bands.
func RenderSVG(t Template, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	titleH := 0.0
	if r.title != "" {
		titleH = titleBandHeight
	}

	var usage []palette.Usage
	guideH := 0.0
	if r.guide {
		usage = palette.Summarize(t.Picks)
		guideH = guideHeadHeight + float64(len(usage))*guideRowHeight + pageMargin
	}

	totalW := t.BoardWidth + 2*pageMargin
	totalH := t.BoardHeight + 2*pageMargin + titleH + guideH

	var buf bytes.Buffer
	if r.paperWidth > 0 && r.paperHeight > 0 {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0fmm" height="%.0fmm" preserveAspectRatio="xMidYMid meet">`+"\n",
			totalW, totalH, r.paperWidth, r.paperHeight)
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
			totalW, totalH, totalW, totalH)
	}

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="8" text-anchor="middle">%s</text>`+"\n",
			totalW/2, pageMargin, escapeText(r.title))
	}

	boardX, boardY := pageMargin, pageMargin+titleH
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="white" stroke="black" stroke-width="0.5"/>`+"\n",
		boardX, boardY, t.BoardWidth, t.BoardHeight)

	if r.grid {
		renderGrid(&buf, t, boardX, boardY)
	}

	radius := t.markerRadius()
	for _, p := range t.Picks {
		fmt.Fprintf(&buf, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" stroke="black" stroke-width="0.1"/>`+"\n",
			boardX+p.X, boardY+p.Y, radius, p.Color.Hex())
	}

	if r.guide {
		renderGuideBand(&buf, usage, boardY+t.BoardHeight+pageMargin, totalW)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderGrid draws light reference lines at fixed intervals, skipping the
// board edges which the border rect already covers.
func renderGrid(buf *bytes.Buffer, t Template, boardX, boardY float64) {
	step := t.gridStep()
	for x := step; x < t.BoardWidth; x += step {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#cccccc" stroke-width="0.2"/>`+"\n",
			boardX+x, boardY, boardX+x, boardY+t.BoardHeight)
	}
	for y := step; y < t.BoardHeight; y += step {
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#cccccc" stroke-width="0.2"/>`+"\n",
			boardX, boardY+y, boardX+t.BoardWidth, boardY+y)
	}
}

// renderGuideBand draws a usage row per color: swatch, name, hex, and count.
func renderGuideBand(buf *bytes.Buffer, usage []palette.Usage, top, totalW float64) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="6" font-weight="bold">Color guide</text>`+"\n",
		pageMargin, top+6)

	y := top + guideHeadHeight
	for _, u := range usage {
		fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="6" height="6" fill="%s" stroke="black" stroke-width="0.2"/>`+"\n",
			pageMargin, y, u.Color.Hex())
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="5">%s %s x%d</text>`+"\n",
			pageMargin+9, y+5, escapeText(u.Name), u.Color.Hex(), u.Count)
		y += guideRowHeight
	}
}

// escapeText escapes the XML special characters that can appear in titles
// and color names.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
