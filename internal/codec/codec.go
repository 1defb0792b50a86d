package codec

import (
	"fmt"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
)

// Codec converts primitives in sheet pixels to and from geometry strings in
// relative units.
type Codec struct {
	Grid geom.Grid
}

func New(g geom.Grid) Codec {
	return Codec{Grid: g}
}

func Default() Codec {
	return New(geom.DefaultGrid())
}

// Encode produces the canonical geometry string of p.
func (c Codec) Encode(p primitive.Primitive) string {
	return Format(c.Record(p))
}

func (c Codec) EncodeAll(ps []primitive.Primitive) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, c.Encode(p))
	}
	return out
}

// Record builds the geometry record for p with its fixed key order.
func (c Codec) Record(p primitive.Primitive) *Record {
	rec := NewRecord(p.Kind.String())
	g := p.Geom
	step := c.Grid.StepSize()
	rel := c.Grid.ToRelative

	switch p.Kind {
	case primitive.KindArrive, primitive.KindLeave, primitive.KindTee, primitive.KindSpindle:
		r := rel(p.Position())
		rec.SetNum("x0", r.X)
		rec.SetNum("y0", r.Y)
		if p.Kind == primitive.KindSpindle {
			rec.SetStr("name", p.Conn.Spindle)
		}
		rec.SetStr("type", p.Conn.Type)
	case primitive.KindLine, primitive.KindCap:
		if len(g.Points) < 2 {
			break
		}
		a, b := rel(g.Points[0]), rel(g.Points[1])
		rec.SetNum("x1", a.X)
		rec.SetNum("y1", a.Y)
		rec.SetNum("x2", b.X)
		rec.SetNum("y2", b.Y)
	case primitive.KindRectangle:
		ctr := rel(g.Rect.Center())
		rec.SetNum("x0", ctr.X)
		rec.SetNum("y0", ctr.Y)
		rec.SetNum("width", g.Rect.W/step)
		rec.SetNum("height", g.Rect.H/step)
	case primitive.KindCircle:
		if len(g.Points) == 0 {
			break
		}
		ctr := rel(g.Points[0])
		rec.SetNum("x0", ctr.X)
		rec.SetNum("y0", ctr.Y)
		rec.SetNum("r", g.Radius/step)
	case primitive.KindPolygon, primitive.KindPolyline, primitive.KindOrthoPolyline:
		for i, pt := range g.Points {
			r := rel(pt)
			rec.SetNum(fmt.Sprintf("p%dx", i+1), r.X)
			rec.SetNum(fmt.Sprintf("p%dy", i+1), r.Y)
		}
	}
	return rec
}

// Decode places a geometry string on the sheet with the relative origin at
// the sheet center.
func (c Codec) Decode(s string) (primitive.Primitive, error) {
	return c.DecodeAt(s, c.Grid.Center())
}

// DecodeAt places a geometry string with the relative origin at base, which
// is how spindle geometry is stamped onto a spindle point.
func (c Codec) DecodeAt(s string, base geom.Point) (primitive.Primitive, error) {
	rec, err := Parse(s)
	if err != nil {
		return primitive.Primitive{}, err
	}
	return c.FromRecord(rec, base, s)
}

// DecodeAll decodes every string it can and returns the failures separately
// so one bad entry never hides the rest.
func (c Codec) DecodeAll(ss []string) ([]primitive.Primitive, []error) {
	var out []primitive.Primitive
	var errs []error
	for _, s := range ss {
		p, err := c.Decode(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, p)
	}
	return out, errs
}

func (c Codec) FromRecord(rec *Record, base geom.Point, src string) (primitive.Primitive, error) {
	step := c.Grid.StepSize()
	missing := func(key string) error {
		return &ParseError{Input: src, Reason: fmt.Sprintf("%s without %s", rec.Type, key)}
	}
	need := func(keys ...string) ([]float64, error) {
		vals := make([]float64, len(keys))
		for i, k := range keys {
			v, ok := rec.Num(k)
			if !ok {
				return nil, missing(k)
			}
			vals[i] = v
		}
		return vals, nil
	}
	px := func(x, y float64) geom.Point {
		return c.Grid.ToPixelAt(base, geom.Point{X: x, Y: y})
	}

	kind, ok := primitive.ParseKind(rec.Type)
	if !ok {
		return primitive.Primitive{}, &ParseError{Input: src, Reason: fmt.Sprintf("unknown type %q", rec.Type)}
	}

	switch kind {
	case primitive.KindArrive, primitive.KindLeave, primitive.KindTee, primitive.KindSpindle:
		v, err := need("x0", "y0")
		if err != nil {
			return primitive.Primitive{}, err
		}
		conn := primitive.Connection{Type: rec.Strs["type"], Spindle: rec.Strs["name"]}
		return primitive.NewPoint(kind, px(v[0], v[1]), conn), nil
	case primitive.KindLine, primitive.KindCap:
		v, err := need("x1", "y1", "x2", "y2")
		if err != nil {
			return primitive.Primitive{}, err
		}
		if kind == primitive.KindCap {
			return primitive.NewCap(px(v[0], v[1]), px(v[2], v[3])), nil
		}
		return primitive.NewLine(px(v[0], v[1]), px(v[2], v[3])), nil
	case primitive.KindRectangle:
		v, err := need("x0", "y0", "width", "height")
		if err != nil {
			return primitive.Primitive{}, err
		}
		ctr := px(v[0], v[1])
		w, h := v[2]*step, v[3]*step
		return primitive.NewRectangle(geom.Rect{X: ctr.X - w/2, Y: ctr.Y - h/2, W: w, H: h}), nil
	case primitive.KindCircle:
		v, err := need("x0", "y0", "r")
		if err != nil {
			return primitive.Primitive{}, err
		}
		return primitive.NewCircle(px(v[0], v[1]), v[2]*step), nil
	default:
		pts := vertices(rec)
		if len(pts) == 0 {
			return primitive.Primitive{}, missing("vertices")
		}
		for i, r := range pts {
			pts[i] = px(r.X, r.Y)
		}
		if kind == primitive.KindPolygon {
			return primitive.NewPolygon(pts), nil
		}
		return primitive.NewPolyline(pts, kind == primitive.KindOrthoPolyline), nil
	}
}

// vertices reads p1x/p1y... and falls back to x1/y1... as older saves wrote.
func vertices(rec *Record) []geom.Point {
	var pts []geom.Point
	for i := 1; ; i++ {
		x, okx := rec.Num(fmt.Sprintf("p%dx", i))
		y, oky := rec.Num(fmt.Sprintf("p%dy", i))
		if !okx || !oky {
			x, okx = rec.Num(fmt.Sprintf("x%d", i))
			y, oky = rec.Num(fmt.Sprintf("y%d", i))
		}
		if !okx || !oky {
			return pts
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
}
