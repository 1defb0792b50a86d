package geom

import "math"

// DefaultMargin leaves a border around fitted drawings.
const DefaultMargin = 0.8

var (
	isoCos = math.Cos(math.Pi / 6)
	isoSin = math.Sin(math.Pi / 6)
)

// Project maps a point of the drawing plane onto the isometric axes.
func Project(p Point) Point {
	return Point{
		X: (p.X - p.Y) * isoCos,
		Y: (p.X + p.Y) * isoSin,
	}
}

// Extent is a bounds tuple in projected space.
type Extent struct {
	MinX, MinY, MaxX, MaxY float64
}

func (e Extent) Width() float64  { return e.MaxX - e.MinX }
func (e Extent) Height() float64 { return e.MaxY - e.MinY }

func (e Extent) Center() Point {
	return Point{(e.MinX + e.MaxX) / 2, (e.MinY + e.MaxY) / 2}
}

// IsoBounds projects every point and returns their extent. Empty input is
// the all zero extent.
func IsoBounds(pts []Point) Extent {
	if len(pts) == 0 {
		return Extent{}
	}
	first := Project(pts[0])
	e := Extent{first.X, first.Y, first.X, first.Y}
	for _, p := range pts[1:] {
		q := Project(p)
		e.MinX = math.Min(e.MinX, q.X)
		e.MinY = math.Min(e.MinY, q.Y)
		e.MaxX = math.Max(e.MaxX, q.X)
		e.MaxY = math.Max(e.MaxY, q.Y)
	}
	return e
}

// FitScale is the factor that fits e into a target box, times margin. A zero
// width or height counts as 1.
func FitScale(e Extent, targetW, targetH, margin float64) float64 {
	w := e.Width()
	if w == 0 {
		w = 1
	}
	h := e.Height()
	if h == 0 {
		h = 1
	}
	return math.Min(targetW/w, targetH/h) * margin
}

// Viewport places projected geometry inside a target area.
type Viewport struct {
	Origin Point   // subtracted before projecting
	Center Point   // center of the projected extent
	Target Point   // where Center lands in the target area
	Scale  float64
}

// FitViewport builds the viewport that centers pts, taken relative to origin,
// in a fitW x fitH area whose middle is target.
func FitViewport(pts []Point, origin Point, fitW, fitH float64, target Point) Viewport {
	rel := make([]Point, len(pts))
	for i, p := range pts {
		rel[i] = p.Sub(origin)
	}
	e := IsoBounds(rel)
	return Viewport{
		Origin: origin,
		Center: e.Center(),
		Target: target,
		Scale:  FitScale(e, fitW, fitH, DefaultMargin),
	}
}

func (v Viewport) Map(p Point) Point {
	q := Project(p.Sub(v.Origin))
	return Point{
		X: v.Target.X + (q.X-v.Center.X)*v.Scale,
		Y: v.Target.Y + (q.Y-v.Center.Y)*v.Scale,
	}
}
