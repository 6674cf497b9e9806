// Package template provides output format renderers for build templates.
//
// # Overview
//
// A sink transforms a [Template] (board dimensions plus placement list)
// into a final output format. This package provides renderers for:
//
//   - SVG: Scalable vector template with reference grid and color guide
//   - JSON: Placement data export for external tools
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster output drawn natively with gg
//   - Guide: Standalone color guide sheet
//
// # SVG Output
//
// [RenderSVG] produces a printable template with:
//
//   - The board outline at true aspect ratio
//   - One colored marker per pick
//   - Optional reference grid lines for position transfer
//   - Optional title and color guide bands
//
// Basic usage:
//
//	svg := template.RenderSVG(tpl,
//	    template.WithTitle("Sunset mural"),
//	    template.WithGrid(),
//	    template.WithGuide(),
//	)
//
// # JSON Output
//
// [RenderJSON] exports the complete template as JSON, including the
// palette with per-color usage counts and every placement with its
// position, height, angle, and color. Each document carries a UUID so
// exports can be tracked across revisions.
//
// # PDF and PNG Output
//
// [RenderPDF] converts the SVG output via rsvg-convert and honors
// [WithPaperSize] for physical print dimensions. [RenderPNG] rasters
// directly with gg and needs no external tools.
//
// # Adding New Formats
//
// To add a new output format:
//
//  1. Create a renderer function: func RenderFoo(t Template, opts ...FooOption) ([]byte, error)
//  2. Define option types for configuration
//  3. Access t.Picks for placements and t.BoardWidth/t.BoardHeight for geometry
//
// The existing sinks provide examples: svg.go for full-featured output,
// json.go for data export, pdf.go/png.go for converted and rastered output.
package template
