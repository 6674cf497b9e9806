// Package render provides output rendering for build templates.
//
// # Overview
//
// This package contains the rendering pipeline that transforms placement
// lists into printable artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF)
//   - Template sinks (in [template] subpackage)
//
// # Format Conversion
//
// The [ToPDF] function converts any SVG to PDF using the external
// rsvg-convert tool (from librsvg). PNG output does not go through this
// path; it is rastered natively in the [template] subpackage.
//
//	svg := template.RenderSVG(tpl, opts...)
//	pdf, err := render.ToPDF(svg)
//
// # Template Sinks
//
// The [template] subpackage renders a placement list as a craft template:
// a board outline with one colored marker per pick, plus an optional color
// guide listing the picks needed per color.
//
// Key sinks:
//   - [template.RenderSVG]: vector template with reference grid
//   - [template.RenderPNG]: raster template drawn with gg
//   - [template.RenderPDF]: print-ready output via SVG conversion
//   - [template.RenderJSON]: placement data export
//   - [template.RenderGuide]: standalone color guide sheet
//
// [template]: github.com/picket-studio/picket/pkg/render/template
// [template.RenderSVG]: github.com/picket-studio/picket/pkg/render/template.RenderSVG
// [template.RenderPNG]: github.com/picket-studio/picket/pkg/render/template.RenderPNG
// [template.RenderPDF]: github.com/picket-studio/picket/pkg/render/template.RenderPDF
// [template.RenderJSON]: github.com/picket-studio/picket/pkg/render/template.RenderJSON
// [template.RenderGuide]: github.com/picket-studio/picket/pkg/render/template.RenderGuide
package render
