package pipeline

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/picket-studio/picket/pkg/cache"
	"github.com/picket-studio/picket/pkg/source"
)

// writeTestImage writes a small two-color PNG and returns its path.
func writeTestImage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.png")

	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if x < 20 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{B: 255, A: 255})
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"guide", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Image: "test.png"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults error: %v", err)
	}

	if opts.Colors != DefaultColors {
		t.Errorf("Colors = %d, want %d", opts.Colors, DefaultColors)
	}
	if opts.Count != DefaultCount {
		t.Errorf("Count = %d, want %d", opts.Count, DefaultCount)
	}
	if opts.Family != string(DefaultFamily) {
		t.Errorf("Family = %q, want %q", opts.Family, DefaultFamily)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.MaxImageWidth != DefaultMaxImageWidth || opts.MaxImageHeight != DefaultMaxImageHeight {
		t.Errorf("image bounds = %dx%d, want defaults", opts.MaxImageWidth, opts.MaxImageHeight)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Board dimensions stay unset until the source is loaded
	if opts.Width != 0 || opts.Height != 0 {
		t.Errorf("board dims should stay zero: %vx%v", opts.Width, opts.Height)
	}
}

func TestOptionsValidation(t *testing.T) {
	// Missing image
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("missing image should fail validation")
	}

	// Invalid format
	opts = Options{Image: "test.png", Formats: []string{"bmp"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format should fail validation")
	}

	// Invalid family
	opts = Options{Image: "test.png", Family: "spiral"}
	if err := opts.ValidateForLayout(); err == nil {
		t.Error("invalid family should fail validation")
	}
}

func TestOptionsValidateIdempotent(t *testing.T) {
	opts := Options{Image: "test.png", Count: 50}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := opts
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Count != first.Count || opts.Colors != first.Colors {
		t.Error("ValidateAndSetDefaults should be idempotent")
	}
}

func TestExecute(t *testing.T) {
	path := writeTestImage(t)
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Image:   path,
		Count:   100,
		Colors:  2,
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.PickCount != 100 {
		t.Errorf("PickCount = %d, want 100", result.Stats.PickCount)
	}
	if len(result.Placements) != 100 {
		t.Errorf("Placements = %d, want 100", len(result.Placements))
	}
	if result.Stats.PaletteSize != 2 {
		t.Errorf("PaletteSize = %d, want 2", result.Stats.PaletteSize)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !strings.Contains(string(svg), "<circle") {
		t.Error("SVG artifact should contain pick markers")
	}

	var doc struct {
		Count int `json:"count"`
		Board struct {
			Width  float64 `json:"width"`
			Height float64 `json:"height"`
		} `json:"board"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &doc); err != nil {
		t.Fatalf("JSON artifact invalid: %v", err)
	}
	if doc.Count != 100 {
		t.Errorf("JSON count = %d, want 100", doc.Count)
	}
	// Board defaults to image pixel dimensions
	if doc.Board.Width != 40 || doc.Board.Height != 20 {
		t.Errorf("JSON board = %vx%v, want 40x20", doc.Board.Width, doc.Board.Height)
	}
}

func TestExecuteGradient(t *testing.T) {
	path := writeTestImage(t)
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Image:    path,
		Count:    50,
		Gradient: true,
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.CacheInfo.SourceHit {
		t.Error("gradient sources are never cached")
	}
	if result.Stats.PickCount != 50 {
		t.Errorf("PickCount = %d, want 50", result.Stats.PickCount)
	}
}

func TestExecuteMissingImage(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Image: "/does/not/exist.png"})
	if err == nil {
		t.Fatal("missing image should fail")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(err.Error(), "/does/not/exist.png") {
		t.Errorf("error should name the missing path: %v", err)
	}
}

func TestExecuteCaching(t *testing.T) {
	path := writeTestImage(t)

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		Image:   path,
		Count:   100,
		Colors:  2,
		Formats: []string{FormatSVG},
	}

	// First run populates the cache
	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute error: %v", err)
	}
	if first.CacheInfo.SourceHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	// Second run hits every stage
	second, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("second Execute error: %v", err)
	}
	if !second.CacheInfo.SourceHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit all stages: %+v", second.CacheInfo)
	}

	// Identical artifacts either way
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact should match the rendered one")
	}

	// Refresh bypasses the source and layout caches
	opts.Refresh = true
	third, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("third Execute error: %v", err)
	}
	if third.CacheInfo.SourceHit || third.CacheInfo.LayoutHit {
		t.Errorf("refresh should bypass source and layout caches: %+v", third.CacheInfo)
	}
}

func TestLayoutIsolatedPerSource(t *testing.T) {
	// Layout has no source identity, so it must never serve another
	// source's placements out of a shared cache: a red board followed by a
	// blue board with identical options still gets blue picks.
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	solid := func(c color.NRGBA) *source.GradientSource {
		img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
		return source.NewGradientSource(img)
	}

	ctx := context.Background()
	opts := Options{Count: 20, Gradient: true}

	red, _, err := runner.Layout(ctx, solid(color.NRGBA{R: 255, A: 255}), opts)
	if err != nil {
		t.Fatalf("red Layout error: %v", err)
	}
	blue, _, err := runner.Layout(ctx, solid(color.NRGBA{B: 255, A: 255}), opts)
	if err != nil {
		t.Fatalf("blue Layout error: %v", err)
	}

	for i, p := range red {
		if p.Color.R != 255 || p.Color.B != 0 {
			t.Fatalf("red pick %d color = %+v", i, p.Color)
		}
	}
	for i, p := range blue {
		if p.Color.B != 255 || p.Color.R != 0 {
			t.Fatalf("blue pick %d color = %+v, want the blue source's color", i, p.Color)
		}
	}
}

func TestExecuteDeterministic(t *testing.T) {
	path := writeTestImage(t)
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := Options{Image: path, Count: 100, Colors: 2}
	a, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(a.Placements) != len(b.Placements) {
		t.Fatal("runs should place the same number of picks")
	}
	for i := range a.Placements {
		if a.Placements[i] != b.Placements[i] {
			t.Fatalf("placement %d differs between runs", i)
		}
	}
}
