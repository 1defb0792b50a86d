package render

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"strings"
	"testing"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
	"skeyedit/internal/scene"
)

func rgb(c color.Color) [3]uint8 {
	r, g, b, _ := c.RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func testDrawing() Drawing {
	arrive := primitive.NewPoint(primitive.KindArrive, geom.Pt(155, 155), primitive.Connection{})
	arrive.ID = 1
	rect := primitive.NewRectangle(geom.Rect{X: 350, Y: 350, W: 100, H: 50})
	rect.ID = 2
	return Static("", geom.DefaultGrid(), []primitive.Primitive{arrive, rect})
}

func TestIsoLayoutEmpty(t *testing.T) {
	if segs := IsoLayout(nil, geom.Point{}, 300, 300); segs != nil {
		t.Errorf("IsoLayout(nil) = %v", segs)
	}
}

func TestIsoLayoutCentersAndStubs(t *testing.T) {
	ps := []primitive.Primitive{
		primitive.NewLine(geom.Pt(0, 0), geom.Pt(100, 0)),
		primitive.NewPoint(primitive.KindArrive, geom.Pt(0, 0), primitive.Connection{}),
		primitive.NewPoint(primitive.KindLeave, geom.Pt(100, 0), primitive.Connection{}),
		primitive.NewPoint(primitive.KindTee, geom.Pt(50, 0), primitive.Connection{}),
	}
	segs := IsoLayout(ps, geom.Point{}, 300, 300)
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}
	line := segs[0]
	if mid := line.A.Mid(line.B); !mid.Near(geom.Pt(150, 150), 1e-9) {
		t.Errorf("line midpoint = %v, want sheet middle", mid)
	}
	arrive, leave := segs[1], segs[2]
	if arrive.Color != primitive.ColorArrive || leave.Color != primitive.ColorLeave {
		t.Errorf("stub colors = %v, %v", arrive.Color, leave.Color)
	}
	for _, s := range []Segment{arrive, leave} {
		if l := s.A.Dist(s.B); math.Abs(l-stubLength) > 1e-9 {
			t.Errorf("stub length = %v, want %v", l, stubLength)
		}
	}
	if !arrive.B.Near(line.A, 1e-9) || !leave.A.Near(line.B, 1e-9) {
		t.Errorf("stubs not anchored on the line ends: %+v %+v", arrive, leave)
	}
}

func TestSheetColors(t *testing.T) {
	d := testDrawing()
	dc, err := Sheet(d)
	if err != nil {
		t.Fatal(err)
	}
	img := dc.Image()
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 600 {
		t.Fatalf("sheet size = %v", b)
	}
	if got := rgb(img.At(155, 155)); got != [3]uint8{51, 51, 255} {
		t.Errorf("arrive point pixel = %v", got)
	}
	if got := rgb(img.At(5, 5)); got != [3]uint8{255, 255, 255} {
		t.Errorf("background pixel = %v", got)
	}

	d.Selected = map[primitive.ID]bool{1: true}
	d.Handles = d.Primitives[1].Handles()
	dc, _ = Sheet(d)
	img = dc.Image()
	if got := rgb(img.At(155, 155)); got != [3]uint8{0, 200, 0} {
		t.Errorf("selected point pixel = %v", got)
	}
	if got := rgb(img.At(450, 400)); got != [3]uint8{0, 120, 215} {
		t.Errorf("handle pixel = %v", got)
	}
}

func TestSheetPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := SheetPNG(&buf, testDrawing()); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("not a PNG: %v", err)
	}
}

func TestIsometricPNG(t *testing.T) {
	d := testDrawing()
	d.Name = "VALV"
	var buf bytes.Buffer
	if err := IsometricPNG(&buf, d, 300, 300); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 300 || b.Dy() != 300 {
		t.Errorf("preview size = %v", b)
	}
}

func TestSVG(t *testing.T) {
	d := testDrawing()
	d.Name = "VALV"
	d.Primitives = append(d.Primitives, primitive.NewLine(geom.Pt(100, 100), geom.Pt(200, 100)))
	var buf bytes.Buffer
	SVG(&buf, d)
	out := buf.String()
	for _, want := range []string{"<svg", "<polygon", "<polyline", "<circle", "#3333ff", "VALV", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output lacks %q", want)
		}
	}
}

func TestFromScene(t *testing.T) {
	s := scene.New(geom.DefaultGrid(), nil)
	added := s.Add(
		primitive.NewLine(geom.Pt(100, 100), geom.Pt(200, 100)),
		primitive.NewPoint(primitive.KindTee, geom.Pt(300, 300), primitive.Connection{}),
	)
	s.Select(added[0].ID)
	s.SetPreview(primitive.NewCircle(geom.Pt(300, 300), 50))

	d := FromScene(s, "TEE")
	if len(d.Primitives) != 2 || !d.Selected[added[0].ID] || d.Selected[added[1].ID] {
		t.Errorf("drawing = %+v", d)
	}
	if len(d.Handles) != 2 {
		t.Errorf("handles = %d, want 2", len(d.Handles))
	}
	if d.Preview == nil || d.Preview.Kind != primitive.KindCircle {
		t.Errorf("preview = %v", d.Preview)
	}
}
