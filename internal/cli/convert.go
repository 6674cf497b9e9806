package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/io"
	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/pipeline"
)

// convertOpts holds flags for the convert command.
type convertOpts struct {
	output  string
	formats string
	title   string
	grid    bool
	guide   bool
	paper   string
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	opts := &convertOpts{}

	cmd := &cobra.Command{
		Use:   "convert <template.json>",
		Short: "Re-render a saved placement document",
		Long: `Re-render a saved placement document into other formats.

Reads a JSON document previously produced by build (or an external
tool using the same schema) and renders it as SVG, PNG, PDF, or a
color guide without re-running the image pipeline.`,
		Example: `  # Re-render a saved template as a printable PDF
  picket convert mural.json -f pdf --paper a4

  # Regenerate the SVG with grid lines and a guide sheet
  picket convert mural.json -f svg,guide --grid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default: derived from input name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats, comma-separated")
	cmd.Flags().StringVar(&opts.title, "title", "", "template title (default: title from the document)")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw alignment grid lines")
	cmd.Flags().BoolVar(&opts.guide, "guide", false, "include a color guide band")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper size for SVG/PDF (a3, a4, a5, letter, legal, or WxH in mm)")

	return cmd
}

// runConvert reads the document and writes one artifact per format.
func (c *CLI) runConvert(path string, opts *convertOpts) error {
	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	var paperW, paperH float64
	var err error
	if opts.paper != "" {
		paperW, paperH, err = parsePaperSize(opts.paper)
		if err != nil {
			return err
		}
	}

	doc, err := io.ReadFile(path)
	if err != nil {
		return err
	}

	title := opts.title
	if title == "" {
		title = doc.Title
	}

	popts := pipeline.Options{
		Width:       doc.Board.Width,
		Height:      doc.Board.Height,
		Formats:     formats,
		Title:       title,
		Grid:        opts.grid,
		Guide:       opts.guide,
		PaperWidth:  paperW,
		PaperHeight: paperH,
		Logger:      c.Logger,
	}

	c.Logger.Debug("re-rendering document", "path", path, "picks", doc.Count, "formats", formats)

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(path, filepath.Ext(path))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	printSuccess("Loaded %d picks from %s", doc.Count, filepath.Base(path))

	artifacts, err := pipeline.RenderFromPlacements(doc.Placements(), pattern.Params{Spacing: doc.Spacing}, popts)
	if err != nil {
		return err
	}

	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		out := base + artifactExt(format)
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", out)
		}
		printFile(out)
	}

	return nil
}
