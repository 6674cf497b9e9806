package pipeline

import (
	"fmt"

	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/render/template"
)

// RenderFromPlacements generates output artifacts in the requested formats.
func RenderFromPlacements(placements []pattern.Placement, params pattern.Params, opts Options) (map[string][]byte, error) {
	tpl := template.Template{
		BoardWidth:  opts.Width,
		BoardHeight: opts.Height,
		Spacing:     params.Spacing,
		Picks:       placements,
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = template.RenderSVG(tpl, svgOpts...)
		case FormatPNG:
			data, err = template.RenderPNG(tpl, buildPNGOptions(opts)...)
		case FormatPDF:
			data, err = template.RenderPDF(tpl, template.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = template.RenderJSON(tpl,
				template.WithJSONTitle(opts.Title),
				template.WithJSONFamily(opts.Family))
		case FormatGuide:
			guideOpts := []template.GuideOption{}
			if opts.Title != "" {
				guideOpts = append(guideOpts, template.WithGuideTitle(opts.Title))
			}
			data = template.RenderGuide(tpl, guideOpts...)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(opts Options) []template.SVGOption {
	var svgOpts []template.SVGOption

	if opts.Title != "" {
		svgOpts = append(svgOpts, template.WithTitle(opts.Title))
	}
	if opts.Grid {
		svgOpts = append(svgOpts, template.WithGrid())
	}
	if opts.Guide {
		svgOpts = append(svgOpts, template.WithGuide())
	}
	if opts.PaperWidth > 0 && opts.PaperHeight > 0 {
		svgOpts = append(svgOpts, template.WithPaperSize(opts.PaperWidth, opts.PaperHeight))
	}

	return svgOpts
}

// buildPNGOptions builds PNG rendering options from pipeline options.
func buildPNGOptions(opts Options) []template.PNGOption {
	var pngOpts []template.PNGOption

	if opts.Title != "" {
		pngOpts = append(pngOpts, template.WithPNGTitle(opts.Title))
	}
	if opts.Grid {
		pngOpts = append(pngOpts, template.WithPNGGrid())
	}

	return pngOpts
}
