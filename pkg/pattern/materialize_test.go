package pattern

import (
	"testing"

	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/source"
)

// coordSource is a fake ColorSource that encodes the looked-up pixel in the
// returned color, making lookup coordinates observable in tests.
type coordSource struct {
	width, height int
}

func (s coordSource) ColorAt(x, y int) source.RGB {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		panic("out-of-range lookup")
	}
	return source.RGB{R: uint8(x), G: uint8(y)}
}

func (s coordSource) Bounds() (int, int) { return s.width, s.height }

// stripeSource is red on the left half and green on the right half.
type stripeSource struct {
	width, height int
}

func (s stripeSource) ColorAt(x, y int) source.RGB {
	if x < s.width/2 {
		return source.RGB{R: 255}
	}
	return source.RGB{G: 255}
}

func (s stripeSource) Bounds() (int, int) { return s.width, s.height }

func TestMaterializePreservesOrderAndLength(t *testing.T) {
	points := []Point{{X: 1.9, Y: 2.1}, {X: 50, Y: 60}, {X: 99.7, Y: 0}}
	src := coordSource{width: 100, height: 100}

	picks := Materialize(points, src, 100, 100)
	if len(picks) != len(points) {
		t.Fatalf("len(picks) = %d, want %d", len(picks), len(points))
	}

	for i, p := range picks {
		if p.X != points[i].X || p.Y != points[i].Y {
			t.Errorf("pick %d position = (%v, %v), want (%v, %v)",
				i, p.X, p.Y, points[i].X, points[i].Y)
		}
		if p.Z != PickHeight/2 {
			t.Errorf("pick %d Z = %v, want %v", i, p.Z, PickHeight/2)
		}
		if p.Angle != PickAngle {
			t.Errorf("pick %d Angle = %v, want %v", i, p.Angle, PickAngle)
		}
	}

	// Positions truncate to pixel indices: (1.9, 2.1) reads pixel (1, 2).
	if picks[0].Color.R != 1 || picks[0].Color.G != 2 {
		t.Errorf("pick 0 color = %+v, want pixel (1, 2)", picks[0].Color)
	}
}

func TestMaterializeClampsBoundaryOvershoot(t *testing.T) {
	// Points at or beyond the board edge clamp into the last pixel instead
	// of failing: (100.0, 100.0) on a 100x100 image reads pixel (99, 99).
	points := []Point{{X: 100.0, Y: 100.0}, {X: -0.5, Y: 42}}
	src := coordSource{width: 100, height: 100}

	picks := Materialize(points, src, 100, 100)

	if picks[0].Color.R != 99 || picks[0].Color.G != 99 {
		t.Errorf("edge pick color = %+v, want pixel (99, 99)", picks[0].Color)
	}
	if picks[1].Color.R != 0 || picks[1].Color.G != 42 {
		t.Errorf("negative pick color = %+v, want pixel (0, 42)", picks[1].Color)
	}
}

func TestMaterializeScalesBoardToImage(t *testing.T) {
	// A 400x200 board over a 100x50 image samples the proportional pixel,
	// not the raw board coordinate clamped into the image edge: board
	// (150, 50) maps to pixel (37, 12).
	points := []Point{{X: 150, Y: 50}, {X: 399, Y: 199}, {X: 0, Y: 0}}
	src := coordSource{width: 100, height: 50}

	picks := Materialize(points, src, 400, 200)

	want := []source.RGB{{R: 37, G: 12}, {R: 99, G: 49}, {R: 0, G: 0}}
	for i, p := range picks {
		if p.Color != want[i] {
			t.Errorf("pick %d color = %+v, want %+v", i, p.Color, want[i])
		}
		if p.X != points[i].X || p.Y != points[i].Y {
			t.Errorf("pick %d position = (%v, %v), want board coordinates kept", i, p.X, p.Y)
		}
	}
}

func TestBuildScaledBoardSamplesProportionally(t *testing.T) {
	// Left half red, right half green, 100 pixels wide. On a 400-wide board
	// every placement left of x=200 must come out red.
	src := stripeSource{width: 100, height: 50}
	req := Request{Count: 64, Width: 400, Height: 200, Family: FamilyGrid}

	picks, _, err := Build(req, src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	red := source.RGB{R: 255}
	green := source.RGB{G: 255}
	for _, p := range picks {
		want := red
		if p.X >= 200 {
			want = green
		}
		if p.Color != want {
			t.Errorf("pick at x=%v color = %+v, want %+v", p.X, p.Color, want)
		}
	}
}

func TestBuildExactCount(t *testing.T) {
	// Grid never under-fills: the materialized list has exactly the
	// requested length for any count.
	src := coordSource{width: 200, height: 100}
	for _, count := range []int{1, 7, 100, 399, 400, 401} {
		req := Request{Count: count, Width: 200, Height: 100, Family: FamilyGrid}
		picks, _, err := Build(req, src)
		if err != nil {
			t.Fatalf("Build(%d) error: %v", count, err)
		}
		if len(picks) != count {
			t.Errorf("Build(%d): len = %d, want exact count", count, len(picks))
		}
	}
}

func TestBuildTruncatesTail(t *testing.T) {
	// Circular generation over-produces; the tail (outermost ring points)
	// is dropped while the head order is preserved.
	src := coordSource{width: 100, height: 100}
	req := Request{Count: 100, Width: 100, Height: 100, Family: FamilyCircular}

	picks, params, err := Build(req, src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if len(picks) != 100 {
		t.Fatalf("len = %d, want 100", len(picks))
	}

	points := Generate(req, params)
	if len(points) <= 100 {
		t.Fatalf("expected circular over-production, got %d points", len(points))
	}
	for i, p := range picks {
		if p.X != points[i].X || p.Y != points[i].Y {
			t.Errorf("pick %d diverges from generation order", i)
		}
	}
}

func TestBuildDeterminism(t *testing.T) {
	src := coordSource{width: 128, height: 96}
	req := Request{Count: 300, Width: 128, Height: 96, Family: FamilyHex}

	a, _, err := Build(req, src)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	b, _, _ := Build(req, src)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestBuildNoColorSource(t *testing.T) {
	req := Request{Count: 100, Width: 100, Height: 100, Family: FamilyGrid}
	_, _, err := Build(req, nil)
	if !errors.Is(err, errors.ErrCodeNoColorSource) {
		t.Errorf("error = %v, want NO_COLOR_SOURCE", err)
	}
}

func TestBuildInvalidRequest(t *testing.T) {
	src := coordSource{width: 100, height: 100}

	_, _, err := Build(Request{Count: 0, Width: 100, Height: 100, Family: FamilyGrid}, src)
	if !errors.Is(err, errors.ErrCodeInvalidCount) {
		t.Errorf("zero count error = %v, want INVALID_COUNT", err)
	}

	_, _, err = Build(Request{Count: 10, Width: 0, Height: 100, Family: FamilyGrid}, src)
	if !errors.Is(err, errors.ErrCodeDegenerateBounds) {
		t.Errorf("zero width error = %v, want DEGENERATE_DIMENSIONS", err)
	}
}
