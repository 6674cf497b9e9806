package cli

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/picket-studio/picket/pkg/cache"
	"github.com/picket-studio/picket/pkg/pipeline"
)

// writeServeImage writes a small half red, half blue test PNG.
func writeServeImage(t *testing.T) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 10 {
				c = color.NRGBA{B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestServer(t *testing.T) *templateServer {
	t.Helper()
	return &templateServer{
		runner: pipeline.NewRunner(nil, nil, log.New(io.Discard)),
		base: pipeline.Options{
			Image:  writeServeImage(t),
			Count:  50,
			Colors: 2,
			Family: "grid",
		},
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest("GET", "/healthz", nil))

	if w.Code != 200 {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q, want ok status", w.Body.String())
	}
}

func TestHandleTemplateSVG(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleTemplateSVG(w, httptest.NewRequest("GET", "/template.svg?count=30", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q, want image/svg+xml", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<svg") || !strings.Contains(body, "<circle") {
		t.Error("response should be an SVG with circles")
	}
}

func TestHandleTemplateJSON(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handleTemplateJSON(w, httptest.NewRequest("GET", "/template.json", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"picks"`) {
		t.Error("response should contain picks")
	}
}

func TestHandlePalette(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handlePalette(w, httptest.NewRequest("GET", "/palette.json", nil))

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"Hex"`) {
		t.Error("response should contain palette entries")
	}
}

func TestHandleBadQuery(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		url  string
	}{
		{"bad count", "/template.svg?count=abc"},
		{"bad family", "/template.svg?family=spiral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.handleTemplateSVG(w, httptest.NewRequest("GET", tt.url, nil))
			if w.Code != 400 {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestServeKeyerScopedPerImage(t *testing.T) {
	a := serveKeyer("mural.png")
	b := serveKeyer("poster.png")

	opts := cache.SourceKeyOpts{Colors: 8}
	keyA := a.SourceKey("deadbeef", opts)
	keyB := b.SourceKey("deadbeef", opts)

	if !strings.HasPrefix(keyA, "serve:") {
		t.Errorf("key should carry the serve prefix: %s", keyA)
	}
	if keyA == keyB {
		t.Errorf("different images should not share cache keys: %s", keyA)
	}
}
