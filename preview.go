package main

import (
	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
	"skeyedit/internal/render"
)

// drawPreview lays the isometric view out on a w x h cell canvas, using the
// same layout as the exported preview image.
func drawPreview(ps []primitive.Primitive, origin geom.Point, w, h int) *Canvas {
	c := NewCanvas(w, h)
	segs := render.IsoLayout(ps, origin, float64(w)*cellWidth, float64(h)*cellHeight)
	toCell := func(p geom.Point) geom.Point {
		return geom.Pt(p.X/cellWidth, p.Y/cellHeight)
	}
	for _, s := range segs {
		c.Line(toCell(s.A), toCell(s.B), 0, termColor(s.Color))
	}
	return c
}
