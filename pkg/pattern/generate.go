package pattern

import "math"

// minRingPoints is the smallest number of picks placed on any ring. Below
// six points the arc gaps become visually larger than the ring spacing.
const minRingPoints = 6

// Generate enumerates placement coordinates for the solved parameters,
// centered within [0, req.Width] x [0, req.Height].
//
// Enumeration is row-major for rectilinear families and ring-major (center
// point first, then rings inside out, each starting at angle 0) for the
// circular family, so output order is reproducible.
//
// Offset, hexagonal, and circular families drop points that land outside the
// board after offsetting; the plain grid fits by construction and is never
// filtered. The inclusion test is hard (0 <= coord <= dimension) with no
// clamping, so these families can yield fewer points than rows*cols.
func Generate(req Request, p Params) []Point {
	switch req.Family {
	case FamilyOffset:
		return offsetPoints(req, p.Rows, p.Cols, p.Spacing, p.Spacing)
	case FamilyHex:
		// Equilateral triangle height as row pitch gives true hex packing.
		return offsetPoints(req, p.Rows, p.Cols, p.Spacing, p.Spacing*math.Sqrt(3)/2)
	case FamilyCircular:
		return ringPoints(req, p.Rings, p.Spacing)
	default:
		return gridPoints(req, p.Rows, p.Cols, p.Spacing)
	}
}

// gridPoints lays out a plain rectangular grid. The (cols-1)*spacing by
// (rows-1)*spacing bounding box is centered on the board.
func gridPoints(req Request, rows, cols int, spacing float64) []Point {
	totalWidth := float64(cols-1) * spacing
	totalHeight := float64(rows-1) * spacing
	offsetX := (req.Width - totalWidth) / 2
	offsetY := (req.Height - totalHeight) / 2

	points := make([]Point, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			points = append(points, Point{
				X: offsetX + float64(col)*spacing,
				Y: offsetY + float64(row)*spacing,
			})
		}
	}
	return points
}

// offsetPoints lays out a brick-bond grid: odd rows are shifted right by half
// a spacing. rowPitch is the vertical distance between rows (spacing for the
// offset family, spacing*sqrt(3)/2 for hexagonal). The width budget includes
// the extra half spacing whenever a shifted row exists.
func offsetPoints(req Request, rows, cols int, spacing, rowPitch float64) []Point {
	totalWidth := float64(cols-1) * spacing
	if rows > 1 {
		totalWidth += spacing / 2
	}
	totalHeight := float64(rows-1) * rowPitch
	offsetX := (req.Width - totalWidth) / 2
	offsetY := (req.Height - totalHeight) / 2

	points := make([]Point, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := offsetX + float64(col)*spacing
			if row%2 == 1 {
				x += spacing / 2
			}
			y := offsetY + float64(row)*rowPitch

			if inBounds(req, x, y) {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// ringPoints lays out concentric rings around the board center: the center
// point first, then each ring with enough points to keep the arc length
// between neighbors approximately equal to the ring spacing.
func ringPoints(req Request, rings int, spacing float64) []Point {
	centerX := req.Width / 2
	centerY := req.Height / 2

	points := []Point{{X: centerX, Y: centerY}}

	for ring := 1; ring <= rings; ring++ {
		radius := float64(ring) * spacing
		// Keeps arc length between adjacent points close to spacing.
		numPoints := int(math.Round(2 * math.Pi * radius / spacing))
		if numPoints < minRingPoints {
			numPoints = minRingPoints
		}

		for i := 0; i < numPoints; i++ {
			angle := 2 * math.Pi * float64(i) / float64(numPoints)
			x := centerX + radius*math.Cos(angle)
			y := centerY + radius*math.Sin(angle)

			if inBounds(req, x, y) {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// inBounds is the hard inclusion test applied per point. No interpolation or
// clamping: a point either fits on the board or is dropped.
func inBounds(req Request, x, y float64) bool {
	return x >= 0 && x <= req.Width && y >= 0 && y <= req.Height
}
