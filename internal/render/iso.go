package render

import (
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
)

const (
	isoPadX    = 40
	isoPadY    = 60
	stubLength = 30
	capSamples = 20
)

// Segment is one stroke of the isometric preview in target coordinates.
type Segment struct {
	A, B  geom.Point
	Color color.RGBA
	Width float64
}

// IsoLayout projects the primitives, taken relative to origin, into a w x h
// area. Tee and spindle points are not drawn. Arrive and leave points get a
// stub pointing away from the middle of the area.
func IsoLayout(ps []primitive.Primitive, origin geom.Point, w, h float64) []Segment {
	var pts []geom.Point
	for _, p := range ps {
		if p.Kind.IsPoint() {
			pts = append(pts, p.Position())
			continue
		}
		pts = append(pts, isoPath(p)...)
	}
	if len(pts) == 0 {
		return nil
	}
	mid := geom.Point{X: w / 2, Y: h / 2}
	vp := geom.FitViewport(pts, origin, w-isoPadX, h-isoPadY, mid)

	var out []Segment
	stroke := func(path []geom.Point, closed bool) {
		for i := 0; i+1 < len(path); i++ {
			out = append(out, Segment{A: vp.Map(path[i]), B: vp.Map(path[i+1]), Color: primitive.ColorStroke, Width: 1})
		}
		if closed && len(path) > 2 {
			out = append(out, Segment{A: vp.Map(path[len(path)-1]), B: vp.Map(path[0]), Color: primitive.ColorStroke, Width: 1})
		}
	}
	var stubs []Segment
	for _, p := range ps {
		switch p.Kind {
		case primitive.KindTee, primitive.KindSpindle:
		case primitive.KindArrive:
			at := vp.Map(p.Position())
			dir := direction(mid, at, geom.Point{Y: -1})
			stubs = append(stubs, Segment{A: at.Sub(dir.Mul(stubLength)), B: at, Color: primitive.ColorArrive, Width: 2})
		case primitive.KindLeave:
			at := vp.Map(p.Position())
			dir := direction(mid, at, geom.Point{Y: 1})
			stubs = append(stubs, Segment{A: at, B: at.Add(dir.Mul(stubLength)), Color: primitive.ColorLeave, Width: 2})
		default:
			stroke(isoPath(p), p.Closed() && p.Kind != primitive.KindCircle)
		}
	}
	return append(out, stubs...)
}

// isoPath is the outline used for the preview. Caps are sampled more coarsely
// than on the sheet.
func isoPath(p primitive.Primitive) []geom.Point {
	if p.Kind == primitive.KindCap && len(p.Geom.Points) == 2 {
		return geom.CapPoints(p.Geom.Points[0], p.Geom.Points[1], capSamples)
	}
	return p.Outline()
}

// direction is the unit vector from -> to, or def when they coincide.
func direction(from, to, def geom.Point) geom.Point {
	d := to.Sub(from)
	n := from.Dist(to)
	if n == 0 {
		return def
	}
	return d.Mul(1 / n)
}

// Isometric draws the preview of the primitives as a w x h image.
func Isometric(d Drawing, w, h int) (*gg.Context, error) {
	dc := gg.NewContext(w, h)
	dc.SetColor(colorBackground)
	dc.Clear()

	for _, s := range IsoLayout(d.Primitives, d.Grid.Center(), float64(w), float64(h)) {
		dc.SetColor(s.Color)
		dc.SetLineWidth(s.Width)
		dc.DrawLine(s.A.X, s.A.Y, s.B.X, s.B.Y)
		dc.Stroke()
	}

	if d.Name != "" {
		face, err := labelFace(11)
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetColor(colorLabel)
		dc.DrawStringAnchored(d.Name, float64(w)/2, float64(h)-12, 0.5, 0)
	}
	return dc, nil
}

// IsometricPNG encodes the preview as PNG.
func IsometricPNG(out io.Writer, d Drawing, w, h int) error {
	dc, err := Isometric(d, w, h)
	if err != nil {
		return err
	}
	return dc.EncodePNG(out)
}
