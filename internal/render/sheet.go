package render

import (
	"io"

	"github.com/fogleman/gg"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
)

// Sheet draws the editing sheet at its pixel size: grid, primitives in
// drawlist order, the pending preview dashed, then the selection handles.
func Sheet(d Drawing) (*gg.Context, error) {
	g := d.Grid
	dc := gg.NewContext(int(g.Width), int(g.Height))
	dc.SetColor(colorBackground)
	dc.Clear()

	dc.SetLineWidth(1)
	for _, l := range g.Lines() {
		dc.SetColor(gridColors[l.Kind])
		if l.Vertical {
			dc.DrawLine(l.Pos, 0, l.Pos, g.Height)
		} else {
			dc.DrawLine(0, l.Pos, g.Width, l.Pos)
		}
		dc.Stroke()
	}
	dc.SetColor(colorBorder)
	dc.DrawRectangle(0.5, 0.5, g.Width-1, g.Height-1)
	dc.Stroke()

	face, err := labelFace(12)
	if err != nil {
		return nil, err
	}
	dc.SetFontFace(face)
	if d.Name != "" {
		dc.SetColor(colorLabel)
		dc.DrawString(d.Name, 6, 16)
	}

	for _, p := range d.Primitives {
		dc.SetColor(d.Color(p))
		drawPrimitive(dc, p)
	}
	if d.Preview != nil {
		dc.SetDash(4, 3)
		dc.SetColor(colorPreview)
		drawPrimitive(dc, *d.Preview)
		dc.SetDash()
	}

	dc.SetColor(primitive.ColorHandle)
	for _, h := range d.Handles {
		s := primitive.HandleSize
		dc.DrawRectangle(h.Pos.X-s/2, h.Pos.Y-s/2, s, s)
		dc.Fill()
	}
	return dc, nil
}

func drawPrimitive(dc *gg.Context, p primitive.Primitive) {
	if p.Kind.IsPoint() {
		at := p.Position()
		dc.DrawCircle(at.X, at.Y, primitive.PointRadius)
		dc.Fill()
		return
	}
	dc.SetLineWidth(1.5)
	tracePath(dc, p.Outline(), p.Closed())
	dc.Stroke()
}

func tracePath(dc *gg.Context, pts []geom.Point, closed bool) {
	if len(pts) == 0 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	if closed {
		dc.ClosePath()
	}
}

// SheetPNG encodes the sheet drawing as PNG.
func SheetPNG(w io.Writer, d Drawing) error {
	dc, err := Sheet(d)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// SaveSheetPNG writes the sheet drawing to a PNG file.
func SaveSheetPNG(filename string, d Drawing) error {
	dc, err := Sheet(d)
	if err != nil {
		return err
	}
	return dc.SavePNG(filename)
}
