package geom

import "math"

// CapSegments is the sampling used when a cap has to become a polyline.
const CapSegments = 20

// RegularPolygon returns n vertices around center, the first one straight up.
func RegularPolygon(center Point, radius float64, n int) []Point {
	pts := make([]Point, n)
	for i := 0; i < n; i++ {
		a := 2*math.Pi*float64(i)/float64(n) - math.Pi/2
		pts[i] = Point{
			X: center.X + radius*math.Cos(a),
			Y: center.Y + radius*math.Sin(a),
		}
	}
	return pts
}

// Diamond returns the north, east, south and west points of radius.
func Diamond(center Point, radius float64) []Point {
	return []Point{
		{center.X, center.Y - radius},
		{center.X + radius, center.Y},
		{center.X, center.Y + radius},
		{center.X - radius, center.Y},
	}
}

// SquareFrom anchors a square at a, growing toward b. The side is the larger
// of the two deltas.
func SquareFrom(a, b Point) Rect {
	size := math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))
	x, y := a.X, a.Y
	if b.X < a.X {
		x = a.X - size
	}
	if b.Y < a.Y {
		y = a.Y - size
	}
	return Rect{x, y, size, size}
}

// CapControl is the quadratic control point of the bulge between p1 and p2:
// the midpoint pushed along the left normal by half the chord.
func CapControl(p1, p2 Point) Point {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	nx, ny := 0.0, 1.0
	if length > 0 {
		nx, ny = -dy/length, dx/length
	}
	mid := p1.Mid(p2)
	return Point{mid.X + nx*length/2, mid.Y + ny*length/2}
}

func QuadAt(p0, c, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// CapPoints samples the cap between p1 and p2 into segments+1 points.
func CapPoints(p1, p2 Point, segments int) []Point {
	c := CapControl(p1, p2)
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		pts = append(pts, QuadAt(p1, c, p2, float64(i)/float64(segments)))
	}
	return pts
}

func CirclePoints(center Point, radius float64, segments int) []Point {
	pts := make([]Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, Point{center.X + radius*math.Cos(a), center.Y + radius*math.Sin(a)})
	}
	return pts
}

// OrthogonalRoute inserts a corner between every pair of waypoints so each
// leg is horizontal or vertical. The leg along the larger delta comes first;
// ties go horizontal.
func OrthogonalRoute(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	out := []Point{pts[0]}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		corner := Point{a.X, b.Y}
		if math.Abs(b.X-a.X) >= math.Abs(b.Y-a.Y) {
			corner = Point{b.X, a.Y}
		}
		if corner != a && corner != b {
			out = append(out, corner)
		}
		if b != out[len(out)-1] {
			out = append(out, b)
		}
	}
	return out
}

// Rotate90 turns p a quarter turn clockwise (on screen) around c.
func Rotate90(p, c Point) Point {
	d := p.Sub(c)
	return Point{c.X - d.Y, c.Y + d.X}
}
