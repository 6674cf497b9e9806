package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/pipeline"
)

// buildOpts holds flags for the build command.
type buildOpts struct {
	output   string
	formats  string
	count    int
	colors   int
	family   string
	width    float64
	height   float64
	title    string
	grid     bool
	guide    bool
	paper    string
	gradient bool
	noCache  bool
	refresh  bool
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := &buildOpts{}

	cmd := &cobra.Command{
		Use:   "build <image>",
		Short: "Build placement templates from an image",
		Long: `Build pick placement templates from an image.

The image is reduced to a small palette, a layout is solved for the
requested pick count, and each placement samples its color from the
image. Board dimensions default to the image pixel dimensions.

Formats: svg, png, pdf, json, guide (comma-separated).`,
		Example: `  # Default SVG template with 400 picks
  picket build mural.png

  # Hexagonal layout with a larger palette
  picket build mural.png --family hexagonal --count 900 --colors 12

  # Print-ready PDF on A4 paper with a color guide
  picket build mural.png -f pdf --paper a4 --guide

  # Gradient palette instead of k-means quantization
  picket build mural.png --gradient --colors 6`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBuild(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path (default: derived from image name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats, comma-separated")
	cmd.Flags().IntVar(&opts.count, "count", pipeline.DefaultCount, "number of picks to place")
	cmd.Flags().IntVar(&opts.colors, "colors", pipeline.DefaultColors, "palette size")
	cmd.Flags().StringVar(&opts.family, "family", string(pipeline.DefaultFamily), "layout family (grid, offset, hexagonal, circular)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "board width (default: image width)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "board height (default: image height)")
	cmd.Flags().StringVar(&opts.title, "title", "", "template title")
	cmd.Flags().BoolVar(&opts.grid, "grid", false, "draw alignment grid lines")
	cmd.Flags().BoolVar(&opts.guide, "guide", false, "include a color guide band")
	cmd.Flags().StringVar(&opts.paper, "paper", "", "paper size for SVG/PDF (a3, a4, a5, letter, legal, or WxH in mm)")
	cmd.Flags().BoolVar(&opts.gradient, "gradient", false, "use a gradient palette instead of quantization")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runBuild executes the build pipeline and writes artifacts.
func (c *CLI) runBuild(cmd *cobra.Command, image string, opts *buildOpts) error {
	ctx := cmd.Context()

	if err := applyConfig(cmd, opts); err != nil {
		return err
	}

	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	var paperW, paperH float64
	if opts.paper != "" {
		var err error
		paperW, paperH, err = parsePaperSize(opts.paper)
		if err != nil {
			return err
		}
	}

	popts := pipeline.Options{
		Image:       image,
		Count:       opts.count,
		Colors:      opts.colors,
		Family:      opts.family,
		Width:       opts.width,
		Height:      opts.height,
		Gradient:    opts.gradient,
		Formats:     formats,
		Title:       opts.title,
		Grid:        opts.grid,
		Guide:       opts.guide,
		PaperWidth:  paperW,
		PaperHeight: paperH,
		Refresh:     opts.refresh,
		Logger:      c.Logger,
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	c.Logger.Debug("building template", "image", image, "family", opts.family, "count", opts.count)
	p := newProgress(c.Logger)
	sp := newSpinner(ctx, fmt.Sprintf("Building %s layout from %s", opts.family, filepath.Base(image)))
	sp.Start()

	result, err := runner.Execute(ctx, popts)
	if err != nil {
		sp.Stop()
		return err
	}
	sp.Stop()
	p.done(fmt.Sprintf("Placed %d picks", result.Stats.PickCount))

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(image, filepath.Ext(image))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	printSuccess("Template ready")
	printStats(result.Stats.PickCount, result.Stats.PaletteSize, result.CacheInfo.LayoutHit)

	for _, format := range formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + artifactExt(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "failed to write %s", path)
		}
		printFile(path)
	}

	return nil
}

// artifactExt maps a pipeline format to its file extension.
func artifactExt(format string) string {
	switch format {
	case pipeline.FormatGuide:
		return ".guide.svg"
	default:
		return "." + format
	}
}
