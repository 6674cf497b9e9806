// Package io provides JSON import and export for placement documents.
//
// # Overview
//
// A placement document is the flat-file interchange format for a finished
// template: the board dimensions, the solved spacing, and the full placement
// list with per-pick colors. The format is designed for:
//
//   - Re-rendering saved placements into other artifact formats
//   - Integration with external tools (CAD, CNC, cutting machines)
//   - Round-trip preservation: export, re-import, and re-render identically
//
// # JSON Format
//
// A document is a single JSON object:
//
//	{
//	  "id": "4f3c…",
//	  "title": "Garden Mural",
//	  "family": "hexagonal",
//	  "board": {"width": 400, "height": 300},
//	  "spacing": 12.5,
//	  "count": 2,
//	  "palette": [
//	    {"name": "Red", "hex": "#ff0000", "count": 2, "share": 1.0}
//	  ],
//	  "picks": [
//	    {"x": 10, "y": 10, "z": 15, "angle": 90, "color": "#ff0000"},
//	    {"x": 22.5, "y": 10, "z": 15, "angle": 90, "color": "#ff0000"}
//	  ]
//	}
//
// The schema matches the JSON artifact produced by the build pipeline, so
// any exported template can be read back with [ReadDocument].
//
// # Validation
//
// [ReadDocument] rejects documents with non-positive board dimensions,
// missing picks, or colors that do not parse as "#rrggbb" hex strings.
// Errors name the offending pick index.
package io
