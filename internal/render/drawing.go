// Package render draws a symbol: the editing sheet as PNG or SVG and the
// isometric preview as PNG. The terminal editor reuses the preview layout.
package render

import (
	"fmt"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
	"skeyedit/internal/scene"
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorBorder     = color.RGBA{0, 0, 0, 255}
	colorLabel      = color.RGBA{100, 100, 100, 255}
	colorPreview    = color.RGBA{128, 128, 128, 255}
)

var gridColors = map[geom.LineKind]color.RGBA{
	geom.LineOrigin: {100, 100, 100, 255},
	geom.LineMajor:  {180, 180, 180, 255},
	geom.LineMiddle: {210, 210, 210, 255},
	geom.LineMinor:  {230, 230, 230, 255},
}

// Drawing is a snapshot of everything that ends up on the sheet.
type Drawing struct {
	Name       string
	Grid       geom.Grid
	Primitives []primitive.Primitive
	Selected   map[primitive.ID]bool
	Handles    []primitive.Handle
	Preview    *primitive.Primitive
}

// FromScene snapshots a scene, including its selection, handles and the
// pending preview shape.
func FromScene(s *scene.Scene, name string) Drawing {
	d := Drawing{
		Name:       name,
		Grid:       s.Grid,
		Primitives: s.Primitives(),
		Selected:   make(map[primitive.ID]bool),
		Handles:    s.Handles(),
	}
	for _, id := range s.Selected() {
		d.Selected[id] = true
	}
	if p, ok := s.Preview(); ok {
		d.Preview = &p
	}
	return d
}

// Static wraps stored primitives that have no selection or preview.
func Static(name string, g geom.Grid, ps []primitive.Primitive) Drawing {
	return Drawing{Name: name, Grid: g, Primitives: ps}
}

// Color is the color p is drawn in; selected primitives use the highlight.
func (d Drawing) Color(p primitive.Primitive) color.RGBA {
	if d.Selected[p.ID] {
		return primitive.ColorHighlight
	}
	return p.Kind.Color()
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func labelFace(size float64) (font.Face, error) {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %v", err)
	}
	return truetype.NewFace(ttfFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
