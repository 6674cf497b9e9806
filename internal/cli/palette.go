package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/palette"
	"github.com/picket-studio/picket/pkg/pipeline"
)

// paletteOpts holds flags for the palette command.
type paletteOpts struct {
	colors   int
	gradient bool
	noCache  bool
	jsonOut  bool
}

// paletteCommand creates the palette command.
func (c *CLI) paletteCommand() *cobra.Command {
	opts := &paletteOpts{}

	cmd := &cobra.Command{
		Use:   "palette <image>",
		Short: "Inspect the reduced color palette of an image",
		Long: `Inspect the reduced color palette of an image.

The image is quantized to the requested number of colors and the
resulting palette is printed with names, hex codes, and HSV values.
This is the same palette the build command samples pick colors from.`,
		Example: `  # Default 8-color palette
  picket palette mural.png

  # Larger palette as JSON
  picket palette mural.png --colors 16 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPalette(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.colors, "colors", pipeline.DefaultColors, "palette size")
	cmd.Flags().BoolVar(&opts.gradient, "gradient", false, "use a gradient palette instead of quantization")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "output as JSON")

	return cmd
}

// runPalette quantizes the image and prints its palette.
func (c *CLI) runPalette(cmd *cobra.Command, image string, opts *paletteOpts) error {
	ctx := cmd.Context()

	popts := pipeline.Options{
		Image:    image,
		Colors:   opts.colors,
		Gradient: opts.gradient,
		Logger:   c.Logger,
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	src, err := runner.Source(ctx, popts)
	if err != nil {
		return err
	}

	pal := pipeline.SourcePalette(src)
	infos := make([]palette.Info, len(pal))
	for i, col := range pal {
		infos[i] = palette.Describe(col)
	}
	// Brightest first makes the table easier to scan.
	sort.Slice(infos, func(i, j int) bool {
		return palette.Brightness(infos[i].RGB) > palette.Brightness(infos[j].RGB)
	})

	if opts.jsonOut {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	printInfo("Palette for %s", image)
	printNewline()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers("", "NAME", "HEX", "HSV").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, info := range infos {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(info.Hex)).
			Render("  ")
		t.Row(swatch, info.Name, info.Hex, info.HSV)
	}
	fmt.Println(t)

	stats := palette.Statistics(pal)
	printNewline()
	printKeyValue("Colors", fmt.Sprintf("%d", stats.Count))
	printKeyValue("Brightness", fmt.Sprintf("%.2f", stats.AvgBrightness))

	return nil
}
