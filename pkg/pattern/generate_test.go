package pattern

import (
	"math"
	"testing"
)

func TestGenerateGridCount(t *testing.T) {
	// The plain grid fits by construction and is never bounds-filtered, so
	// it always yields exactly rows*cols points.
	req := Request{Count: 400, Width: 200, Height: 100, Family: FamilyGrid}
	p, err := Solve(req)
	if err != nil {
		t.Fatalf("Solve error: %v", err)
	}

	points := Generate(req, p)
	if len(points) != p.Rows*p.Cols {
		t.Errorf("len(points) = %d, want %d", len(points), p.Rows*p.Cols)
	}
}

func TestGenerateGridCentering(t *testing.T) {
	// 100 picks on a 100x100 board: spacing 10, bounding box (10-1)*10=90,
	// so the centering offset is (100-90)/2 = 5 on both axes.
	req := Request{Count: 100, Width: 100, Height: 100, Family: FamilyGrid}
	p, _ := Solve(req)

	points := Generate(req, p)
	if len(points) != 100 {
		t.Fatalf("len(points) = %d, want 100", len(points))
	}

	first := points[0]
	if first.X != 5 || first.Y != 5 {
		t.Errorf("first point = (%v, %v), want (5, 5)", first.X, first.Y)
	}
	last := points[len(points)-1]
	if last.X != 95 || last.Y != 95 {
		t.Errorf("last point = (%v, %v), want (95, 95)", last.X, last.Y)
	}
}

func TestGenerateGridSymmetry(t *testing.T) {
	// With odd rows and cols the grid is symmetric about the board center:
	// for every point (x, y) the mirrored (w-x, h-y) is also present.
	req := Request{Count: 25, Width: 90, Height: 90, Family: FamilyGrid}
	p, _ := Solve(req)
	if p.Rows%2 != 1 || p.Cols%2 != 1 {
		t.Fatalf("expected odd grid, got %dx%d", p.Rows, p.Cols)
	}

	points := Generate(req, p)
	index := make(map[[2]float64]bool, len(points))
	for _, pt := range points {
		index[[2]float64{roundTo(pt.X), roundTo(pt.Y)}] = true
	}

	for _, pt := range points {
		mirror := [2]float64{roundTo(req.Width - pt.X), roundTo(req.Height - pt.Y)}
		if !index[mirror] {
			t.Errorf("point (%v, %v) has no mirror about the center", pt.X, pt.Y)
		}
	}
}

func TestGenerateBoundsInvariant(t *testing.T) {
	// Every retained point of the filtering families is inside the board.
	families := []Family{FamilyOffset, FamilyHex, FamilyCircular}
	reqs := []Request{
		{Count: 400, Width: 200, Height: 100},
		{Count: 150, Width: 64, Height: 128},
		{Count: 1000, Width: 500, Height: 500},
	}

	for _, fam := range families {
		for _, base := range reqs {
			req := base
			req.Family = fam
			p, err := Solve(req)
			if err != nil {
				t.Fatalf("Solve(%s) error: %v", fam, err)
			}
			for _, pt := range Generate(req, p) {
				if pt.X < 0 || pt.X > req.Width || pt.Y < 0 || pt.Y > req.Height {
					t.Errorf("%s: point (%v, %v) outside %gx%g board",
						fam, pt.X, pt.Y, req.Width, req.Height)
				}
			}
		}
	}
}

func TestGenerateOffsetBrickBond(t *testing.T) {
	req := Request{Count: 100, Width: 100, Height: 100, Family: FamilyOffset}
	p, _ := Solve(req)
	points := Generate(req, p)

	// Group points by row and track the leftmost X of each.
	minX := map[float64]float64{}
	var ys []float64
	for _, pt := range points {
		key := roundTo(pt.Y)
		if x, ok := minX[key]; !ok {
			minX[key] = pt.X
			ys = append(ys, key)
		} else if pt.X < x {
			minX[key] = pt.X
		}
	}
	if len(ys) < 2 {
		t.Fatal("expected at least two rows")
	}

	// Odd rows start half a spacing to the right of even rows.
	shift := minX[ys[1]] - minX[ys[0]]
	if math.Abs(shift-p.Spacing/2) > 1e-6 {
		t.Errorf("odd row shift = %v, want %v", shift, p.Spacing/2)
	}
}

func TestGenerateHexRowPitch(t *testing.T) {
	req := Request{Count: 200, Width: 300, Height: 300, Family: FamilyHex}
	p, _ := Solve(req)
	points := Generate(req, p)

	// Collect distinct row Y values and verify the pitch between adjacent
	// rows is spacing * sqrt(3)/2.
	seen := map[float64]bool{}
	var ys []float64
	for _, pt := range points {
		key := roundTo(pt.Y)
		if !seen[key] {
			seen[key] = true
			ys = append(ys, key)
		}
	}
	if len(ys) < 2 {
		t.Fatal("expected at least two hex rows")
	}

	wantPitch := p.Spacing * math.Sqrt(3) / 2
	gotPitch := ys[1] - ys[0]
	if math.Abs(gotPitch-wantPitch) > 1e-6 {
		t.Errorf("row pitch = %v, want %v", gotPitch, wantPitch)
	}
}

func TestGenerateCircularStructure(t *testing.T) {
	req := Request{Count: 100, Width: 100, Height: 100, Family: FamilyCircular}
	p, _ := Solve(req)
	points := Generate(req, p)

	// Center point comes first.
	if points[0].X != 50 || points[0].Y != 50 {
		t.Errorf("first point = (%v, %v), want board center (50, 50)", points[0].X, points[0].Y)
	}

	// Every ring keeps at least six points (no bounds filtering here: the
	// outermost radius equals half the board, which still satisfies the
	// inclusive bounds test).
	perRadius := map[float64]int{}
	for _, pt := range points[1:] {
		r := math.Hypot(pt.X-50, pt.Y-50)
		perRadius[roundTo(r)]++
	}
	if len(perRadius) != p.Rings {
		t.Fatalf("distinct radii = %d, want %d rings", len(perRadius), p.Rings)
	}
	for r, n := range perRadius {
		if n < 6 {
			t.Errorf("ring at radius %v has %d points, want >= 6", r, n)
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	for _, fam := range []Family{FamilyGrid, FamilyOffset, FamilyHex, FamilyCircular} {
		req := Request{Count: 250, Width: 160, Height: 90, Family: fam}
		p, err := Solve(req)
		if err != nil {
			t.Fatalf("Solve(%s) error: %v", fam, err)
		}

		a := Generate(req, p)
		b := Generate(req, p)
		if len(a) != len(b) {
			t.Fatalf("%s: lengths differ: %d vs %d", fam, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s: point %d differs: %v vs %v", fam, i, a[i], b[i])
			}
		}
	}
}

// roundTo quantizes a coordinate for use as a map key, absorbing
// floating-point noise.
func roundTo(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
