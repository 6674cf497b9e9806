package template

import (
	"bytes"
	"fmt"

	"github.com/picket-studio/picket/pkg/palette"
)

// Guide sheet geometry in board units.
const (
	guideSheetWidth  = 180.0
	guideSheetMargin = 12.0
	guideSheetRow    = 10.0
	guideSheetHead   = 34.0
)

// GuideOption configures guide rendering via [RenderGuide].
type GuideOption func(*guideRenderer)

type guideRenderer struct {
	title string
}

// WithGuideTitle sets the heading of the guide sheet.
func WithGuideTitle(title string) GuideOption {
	return func(r *guideRenderer) { r.title = title }
}

// RenderGuide draws a standalone shopping-list sheet for a template: total
// pick count, board dimensions and spacing, then one row per color with a
// swatch, the color name, hex value, pick count, and share. Rows are
// ordered most used first.
func RenderGuide(t Template, opts ...GuideOption) []byte {
	r := guideRenderer{title: "Color guide"}
	for _, opt := range opts {
		opt(&r)
	}

	usage := palette.Summarize(t.Picks)
	totalH := guideSheetHead + float64(len(usage))*guideSheetRow + 2*guideSheetMargin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		guideSheetWidth, totalH, guideSheetWidth, totalH)

	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="9" font-weight="bold">%s</text>`+"\n",
		guideSheetMargin, guideSheetMargin+6, escapeText(r.title))
	fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="5">%d picks on a %.0f x %.0f board, spacing %.1f</text>`+"\n",
		guideSheetMargin, guideSheetMargin+15, len(t.Picks), t.BoardWidth, t.BoardHeight, t.Spacing)

	y := guideSheetMargin + guideSheetHead
	for _, u := range usage {
		fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="7" height="7" fill="%s" stroke="black" stroke-width="0.3"/>`+"\n",
			guideSheetMargin, y, u.Color.Hex())
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="5">%s</text>`+"\n",
			guideSheetMargin+11, y+5.5, escapeText(u.Name))
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="monospace" font-size="5">%s</text>`+"\n",
			guideSheetMargin+68, y+5.5, u.Color.Hex())
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="sans-serif" font-size="5" text-anchor="end">%d picks (%.0f%%)</text>`+"\n",
			guideSheetWidth-guideSheetMargin, y+5.5, u.Count, u.Share*100)
		y += guideSheetRow
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
