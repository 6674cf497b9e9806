package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/debounce"
	"github.com/picket-studio/picket/pkg/pattern"
	"github.com/picket-studio/picket/pkg/pipeline"
	"github.com/picket-studio/picket/pkg/source"
)

// previewOpts holds flags for the preview command.
type previewOpts struct {
	count    int
	colors   int
	family   string
	gradient bool
	noCache  bool
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	opts := &previewOpts{}

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Tune pattern settings interactively in the terminal",
		Long: `Tune pattern settings interactively in the terminal.

Renders a live terminal preview of the placement layout. Adjust the
pick count, palette size, and layout family with the keyboard and
save the result as an SVG template when satisfied. Rapid adjustments
are debounced so the layout recomputes only once per burst.`,
		Example: `  picket preview mural.png
  picket preview mural.png --family circular --count 600`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.count, "count", pipeline.DefaultCount, "number of picks to place")
	cmd.Flags().IntVar(&opts.colors, "colors", pipeline.DefaultColors, "palette size")
	cmd.Flags().StringVar(&opts.family, "family", string(pipeline.DefaultFamily), "layout family (grid, offset, hexagonal, circular)")
	cmd.Flags().BoolVar(&opts.gradient, "gradient", false, "use a gradient palette instead of quantization")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// runPreview starts the interactive preview session.
func (c *CLI) runPreview(cmd *cobra.Command, image string, opts *previewOpts) error {
	ctx := cmd.Context()

	popts := pipeline.Options{
		Image:    image,
		Count:    opts.count,
		Colors:   opts.colors,
		Family:   opts.family,
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

	m := newPreviewModel(ctx, runner, src, popts, image)
	defer m.sched.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		for msg := range m.msgs {
			p.Send(msg)
		}
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(previewModel); ok && fm.saved != "" {
		printSuccess("Saved template")
		printFile(fm.saved)
	}
	return nil
}

// =============================================================================
// PreviewModel - Interactive pattern tuning
// =============================================================================

// rebuildMsg asks the model to recompute the layout after a debounce window.
type rebuildMsg struct{}

// families in cycling order for the left/right keys.
var previewFamilies = []pattern.Family{
	pattern.FamilyGrid,
	pattern.FamilyOffset,
	pattern.FamilyHex,
	pattern.FamilyCircular,
}

// previewModel is the bubbletea model for the interactive preview.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	src    source.ColorSource
	opts   pipeline.Options
	image  string

	picks  []pattern.Placement
	params pattern.Params
	err    error

	sched *debounce.Scheduler
	msgs  chan tea.Msg

	width  int
	height int
	saved  string
}

// newPreviewModel builds the model and computes the initial layout.
func newPreviewModel(ctx context.Context, runner *pipeline.Runner, src source.ColorSource, opts pipeline.Options, image string) previewModel {
	msgs := make(chan tea.Msg, 1)
	m := previewModel{
		ctx:    ctx,
		runner: runner,
		src:    src,
		opts:   opts,
		image:  image,
		msgs:   msgs,
		width:  80,
		height: 24,
	}
	m.sched = debounce.New(debounce.DefaultDelay, func() {
		select {
		case msgs <- rebuildMsg{}:
		default:
		}
	})
	m.rebuild()
	return m
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.opts.Count += 50
			m.sched.Trigger()
		case "down", "j":
			if m.opts.Count > 50 {
				m.opts.Count -= 50
				m.sched.Trigger()
			}
		case "left", "h":
			m.opts.Family = string(cycleFamily(m.opts.Family, -1))
			m.sched.Trigger()
		case "right", "l":
			m.opts.Family = string(cycleFamily(m.opts.Family, 1))
			m.sched.Trigger()
		case "+", "=":
			if !m.opts.Gradient {
				m.opts.Colors++
				m.sched.Trigger()
			}
		case "-":
			if !m.opts.Gradient && m.opts.Colors > 1 {
				m.opts.Colors--
				m.sched.Trigger()
			}
		case "s":
			m.save()
			return m, tea.Quit
		}
	case rebuildMsg:
		m.rebuild()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// rebuild recomputes the source (when the palette size changed) and layout.
func (m *previewModel) rebuild() {
	if !m.opts.Gradient {
		src, err := m.runner.Source(m.ctx, m.opts)
		if err != nil {
			m.err = err
			return
		}
		m.src = src
	}
	opts := m.opts
	w, h := m.src.Bounds()
	opts.Width = float64(w)
	opts.Height = float64(h)

	picks, params, err := m.runner.Layout(m.ctx, m.src, opts)
	if err != nil {
		m.err = err
		return
	}
	m.picks = picks
	m.params = params
	m.err = nil
}

// save renders the current layout as SVG next to the source image.
func (m *previewModel) save() {
	opts := m.opts
	w, h := m.src.Bounds()
	opts.Width = float64(w)
	opts.Height = float64(h)
	opts.Formats = []string{pipeline.FormatSVG}

	artifacts, err := pipeline.RenderFromPlacements(m.picks, m.params, opts)
	if err != nil {
		m.err = err
		return
	}

	path := strings.TrimSuffix(m.image, filepath.Ext(m.image)) + ".preview.svg"
	if err := os.WriteFile(path, artifacts[pipeline.FormatSVG], 0o644); err != nil {
		m.err = err
		return
	}
	m.saved = path
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Picket Preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(filepath.Base(m.image)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ count  ←/→ family  +/- colors  s save  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render("error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.renderBoard())
	b.WriteString("\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf("  family %s · %d picks · spacing %.1f",
		m.opts.Family, len(m.picks), m.params.Spacing)))
	if !m.opts.Gradient {
		b.WriteString(StyleDim.Render(fmt.Sprintf(" · %d colors", m.opts.Colors)))
	}
	b.WriteString("\n")

	return b.String()
}

// renderBoard draws the placements as colored dots on a character grid.
// Terminal cells are roughly twice as tall as wide, so the vertical scale
// is halved to keep the aspect ratio recognizable.
func (m previewModel) renderBoard() string {
	bw, bh := m.src.Bounds()
	if bw <= 0 || bh <= 0 || len(m.picks) == 0 {
		return StyleDim.Render("  (empty board)")
	}

	cols := m.width - 4
	if cols < 10 {
		cols = 10
	}
	rows := m.height - 8
	if rows < 5 {
		rows = 5
	}

	// Fit the board into the viewport, preserving aspect.
	scale := float64(cols) / float64(bw)
	if s := float64(rows) / (float64(bh) / 2); s < scale {
		scale = s
	}
	gw := int(float64(bw) * scale)
	gh := int(float64(bh) * scale / 2)
	if gw < 1 {
		gw = 1
	}
	if gh < 1 {
		gh = 1
	}

	cells := make([]source.RGB, gw*gh)
	filled := make([]bool, gw*gh)
	for _, p := range m.picks {
		x := int(p.X / float64(bw) * float64(gw))
		y := int(p.Y / float64(bh) * float64(gh))
		if x >= gw {
			x = gw - 1
		}
		if y >= gh {
			y = gh - 1
		}
		cells[y*gw+x] = p.Color
		filled[y*gw+x] = true
	}

	var b strings.Builder
	for y := 0; y < gh; y++ {
		b.WriteString("  ")
		for x := 0; x < gw; x++ {
			if filled[y*gw+x] {
				c := cells[y*gw+x]
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(c.Hex())).
					Render("•"))
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// cycleFamily steps through the family list in either direction.
func cycleFamily(current string, dir int) pattern.Family {
	idx := 0
	for i, f := range previewFamilies {
		if string(f) == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(previewFamilies)) % len(previewFamilies)
	return previewFamilies[idx]
}
