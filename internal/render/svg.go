package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
)

// SVG writes the sheet as a vector drawing. Only major and origin grid lines
// are emitted.
func SVG(w io.Writer, d Drawing) {
	g := d.Grid
	canvas := svg.New(w)
	canvas.Start(int(g.Width), int(g.Height))
	canvas.Rect(0, 0, int(g.Width), int(g.Height), "fill:"+Hex(colorBackground)+";stroke:"+Hex(colorBorder))

	for _, l := range g.Lines() {
		if l.Kind != geom.LineMajor && l.Kind != geom.LineOrigin {
			continue
		}
		style := "stroke:" + Hex(gridColors[l.Kind]) + ";stroke-width:0.5"
		pos := px(l.Pos)
		if l.Vertical {
			canvas.Line(pos, 0, pos, int(g.Height), style)
		} else {
			canvas.Line(0, pos, int(g.Width), pos, style)
		}
	}
	if d.Name != "" {
		canvas.Text(6, 16, d.Name, "font-family:monospace;font-size:12px;fill:"+Hex(colorLabel))
	}

	for _, p := range d.Primitives {
		c := Hex(d.Color(p))
		if p.Kind.IsPoint() {
			at := p.Position()
			canvas.Circle(px(at.X), px(at.Y), int(primitive.PointRadius), "fill:"+c)
			continue
		}
		xs, ys := coords(p.Outline())
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", c)
		if p.Closed() {
			canvas.Polygon(xs, ys, style)
		} else {
			canvas.Polyline(xs, ys, style)
		}
	}
	canvas.End()
}

func px(v float64) int { return int(math.Round(v)) }

func coords(pts []geom.Point) (xs, ys []int) {
	xs = make([]int, len(pts))
	ys = make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = px(p.X), px(p.Y)
	}
	return xs, ys
}
