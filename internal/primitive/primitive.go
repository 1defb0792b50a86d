// Package primitive holds the shapes of a symbol drawing as one tagged
// variant: a Kind plus a Geometry payload whose fields mean different things
// per kind. Every per-kind decision lives in a switch on Kind in this package.
package primitive

import (
	"math"

	"skeyedit/internal/geom"
)

// ID identifies a primitive inside one scene.
type ID int

type Kind int

const (
	KindLine Kind = iota
	KindPolyline
	KindOrthoPolyline
	KindRectangle
	KindCircle
	KindPolygon
	KindCap
	KindArrive
	KindLeave
	KindTee
	KindSpindle
)

var kindNames = map[Kind]string{
	KindLine:          "Line",
	KindPolyline:      "Polyline",
	KindOrthoPolyline: "OrthoPolyline",
	KindRectangle:     "Rectangle",
	KindCircle:        "Circle",
	KindPolygon:       "Polygon",
	KindCap:           "Cap",
	KindArrive:        "ArrivePoint",
	KindLeave:         "LeavePoint",
	KindTee:           "TeePoint",
	KindSpindle:       "SpindlePoint",
}

// String is the type name used in geometry strings.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// IsPoint reports the four zero-size connection point kinds.
func (k Kind) IsPoint() bool {
	switch k {
	case KindArrive, KindLeave, KindTee, KindSpindle:
		return true
	}
	return false
}

// Geometry is the kind specific payload.
//
//	Line, Cap                   Points = [p1, p2]
//	Polyline, OrthoPolyline     Points = waypoints
//	Polygon                     Points = vertices, implicitly closed
//	Rectangle                   Rect
//	Circle                      Points = [center], Radius
//	connection points           Points = [position]
type Geometry struct {
	Points []geom.Point
	Rect   geom.Rect
	Radius float64
}

func (g Geometry) Clone() Geometry {
	return Geometry{Points: geom.ClonePoints(g.Points), Rect: g.Rect, Radius: g.Radius}
}

func (g Geometry) Equal(o Geometry) bool {
	if g.Rect != o.Rect || g.Radius != o.Radius || len(g.Points) != len(o.Points) {
		return false
	}
	for i := range g.Points {
		if g.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}

func (g Geometry) Translate(d geom.Point) Geometry {
	return Geometry{
		Points: geom.TranslatePoints(g.Points, d),
		Rect:   g.Rect.Translate(d),
		Radius: g.Radius,
	}
}

// Connection is the semantic tag carried by connection points.
type Connection struct {
	Type    string
	Spindle string
}

type Primitive struct {
	ID   ID
	Kind Kind
	Geom Geometry
	Conn Connection
}

func NewLine(a, b geom.Point) Primitive {
	return Primitive{Kind: KindLine, Geom: Geometry{Points: []geom.Point{a, b}}}
}

func NewPolyline(pts []geom.Point, orthogonal bool) Primitive {
	k := KindPolyline
	if orthogonal {
		k = KindOrthoPolyline
	}
	return Primitive{Kind: k, Geom: Geometry{Points: geom.ClonePoints(pts)}}
}

func NewRectangle(r geom.Rect) Primitive {
	return Primitive{Kind: KindRectangle, Geom: Geometry{Rect: r.Normalize()}}
}

func NewCircle(center geom.Point, radius float64) Primitive {
	return Primitive{Kind: KindCircle, Geom: Geometry{Points: []geom.Point{center}, Radius: radius}}
}

func NewPolygon(pts []geom.Point) Primitive {
	return Primitive{Kind: KindPolygon, Geom: Geometry{Points: geom.ClonePoints(pts)}}
}

func NewCap(a, b geom.Point) Primitive {
	return Primitive{Kind: KindCap, Geom: Geometry{Points: []geom.Point{a, b}}}
}

// NewPoint places a connection point. Only spindle points keep the spindle name.
func NewPoint(k Kind, at geom.Point, conn Connection) Primitive {
	if k != KindSpindle {
		conn.Spindle = ""
	}
	return Primitive{Kind: k, Geom: Geometry{Points: []geom.Point{at}}, Conn: conn}
}

func (p Primitive) Clone() Primitive {
	p.Geom = p.Geom.Clone()
	return p
}

// State snapshots the geometry so a later Restore brings it back exactly.
func (p *Primitive) State() Geometry {
	return p.Geom.Clone()
}

func (p *Primitive) Restore(s Geometry) {
	p.Geom = s.Clone()
}

func (p *Primitive) Translate(d geom.Point) {
	p.Geom = p.Geom.Translate(d)
}

// Rotate90 turns the primitive a quarter turn clockwise around c.
func (p *Primitive) Rotate90(c geom.Point) {
	switch p.Kind {
	case KindRectangle:
		corners := p.Geom.Rect.Corners()
		p.Geom.Rect = geom.RectFromCorners(geom.Rotate90(corners[0], c), geom.Rotate90(corners[3], c))
	default:
		for i, pt := range p.Geom.Points {
			p.Geom.Points[i] = geom.Rotate90(pt, c)
		}
	}
}

// Position is the first defining point, used as the base of spindle stamps.
func (p Primitive) Position() geom.Point {
	if p.Kind == KindRectangle {
		return p.Geom.Rect.Min()
	}
	if len(p.Geom.Points) == 0 {
		return geom.Point{}
	}
	return p.Geom.Points[0]
}

// Closed reports whether Outline wraps around to its first point.
func (p Primitive) Closed() bool {
	switch p.Kind {
	case KindRectangle, KindPolygon, KindCircle:
		return true
	}
	return false
}

// Outline is the drawable path of the primitive in scene space.
func (p Primitive) Outline() []geom.Point {
	g := p.Geom
	switch p.Kind {
	case KindRectangle:
		c := g.Rect.Corners()
		return []geom.Point{c[0], c[1], c[3], c[2]}
	case KindCircle:
		if len(g.Points) == 0 {
			return nil
		}
		return geom.CirclePoints(g.Points[0], g.Radius, 48)
	case KindCap:
		if len(g.Points) < 2 {
			return geom.ClonePoints(g.Points)
		}
		return geom.CapPoints(g.Points[0], g.Points[1], geom.CapSegments)
	default:
		return geom.ClonePoints(g.Points)
	}
}

func (p Primitive) Bounds() geom.Rect {
	switch p.Kind {
	case KindRectangle:
		return p.Geom.Rect
	case KindCircle:
		if len(p.Geom.Points) == 0 {
			return geom.Rect{}
		}
		c, r := p.Geom.Points[0], p.Geom.Radius
		return geom.Rect{X: c.X - r, Y: c.Y - r, W: 2 * r, H: 2 * r}
	}
	return geom.Bounds(p.Outline())
}

// PointRadius is the drawn size of a connection point.
const PointRadius = 5.0

// HitTest reports whether pt touches the primitive within tol pixels.
func (p Primitive) HitTest(pt geom.Point, tol float64) bool {
	switch p.Kind {
	case KindArrive, KindLeave, KindTee, KindSpindle:
		return len(p.Geom.Points) > 0 && pt.Dist(p.Geom.Points[0]) <= PointRadius+tol
	case KindCircle:
		if len(p.Geom.Points) == 0 {
			return false
		}
		return pt.Dist(p.Geom.Points[0]) <= p.Geom.Radius+tol
	case KindRectangle:
		r := p.Geom.Rect
		return geom.Rect{X: r.X - tol, Y: r.Y - tol, W: r.W + 2*tol, H: r.H + 2*tol}.Contains(pt)
	case KindPolygon:
		return geom.InPolygon(pt, p.Geom.Points) || geom.PathDistance(pt, p.Geom.Points, true) <= tol
	default:
		return geom.PathDistance(pt, p.Outline(), false) <= tol
	}
}

// Degenerate reports geometry with zero extent: valid, just visually trivial.
func Degenerate(p Primitive) bool {
	g := p.Geom
	switch p.Kind {
	case KindLine, KindCap:
		return len(g.Points) < 2 || g.Points[0] == g.Points[1]
	case KindCircle:
		return g.Radius == 0
	case KindRectangle:
		return g.Rect.W == 0 || g.Rect.H == 0
	case KindPolygon, KindPolyline, KindOrthoPolyline:
		b := geom.Bounds(g.Points)
		return b.W == 0 && b.H == 0
	}
	return false
}

// Near compares two primitives' geometry up to eps, used where values went
// through decimal rounding.
func Near(a, b Primitive, eps float64) bool {
	if a.Kind != b.Kind || a.Conn != b.Conn || len(a.Geom.Points) != len(b.Geom.Points) {
		return false
	}
	for i := range a.Geom.Points {
		if !a.Geom.Points[i].Near(b.Geom.Points[i], eps) {
			return false
		}
	}
	ra, rb := a.Geom.Rect, b.Geom.Rect
	return math.Abs(ra.X-rb.X) <= eps && math.Abs(ra.Y-rb.Y) <= eps &&
		math.Abs(ra.W-rb.W) <= eps && math.Abs(ra.H-rb.H) <= eps &&
		math.Abs(a.Geom.Radius-b.Geom.Radius) <= eps
}
