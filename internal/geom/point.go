package geom

import "math"

// Point is a coordinate in sheet pixels, relative units or projected space,
// depending on who holds it.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) Mul(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Point) Mid(q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// Near reports whether p and q differ by at most eps on both axes.
func (p Point) Near(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// RoundTo rounds v to the given number of decimal places, half away from zero.
// Negative zero comes back as zero so formatted output never shows "-0".
func RoundTo(v float64, places int) float64 {
	f := math.Pow10(places)
	r := math.Round(v*f) / f
	if r == 0 {
		return 0
	}
	return r
}

// Round3 is the precision of every stored coordinate.
func Round3(v float64) float64 {
	return RoundTo(v, 3)
}

func ClonePoints(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	copy(out, pts)
	return out
}

func TranslatePoints(pts []Point, d Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = p.Add(d)
	}
	return out
}
