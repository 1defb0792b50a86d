package main

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
	"skeyedit/internal/render"
)

const (
	colorGridDot   = "238"
	colorGridMajor = "242"
	colorSheetEdge = "244"
	colorPreview   = "245"
	colorBand      = "39"
)

type cell struct {
	r     rune
	color string
}

// Canvas is a block of terminal cells. An empty color means the terminal's
// default foreground.
type Canvas struct {
	width  int
	height int
	cells  [][]cell
}

func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height, cells: make([][]cell, height)}
	for i := range c.cells {
		c.cells[i] = make([]cell, width)
		for j := range c.cells[i] {
			c.cells[i][j] = cell{r: ' '}
		}
	}
	return c
}

func (c *Canvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) Set(x, y int, r rune, color string) {
	if c.isValidPos(x, y) {
		c.cells[y][x] = cell{r: r, color: color}
	}
}

func (c *Canvas) At(x, y int) rune {
	if !c.isValidPos(x, y) {
		return 0
	}
	return c.cells[y][x].r
}

// Plain returns the rows without any styling.
func (c *Canvas) Plain() []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		var b strings.Builder
		for _, cl := range row {
			b.WriteRune(cl.r)
		}
		out[i] = b.String()
	}
	return out
}

// Render returns the rows with every run of same-colored cells styled.
func (c *Canvas) Render() []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		var line, run strings.Builder
		current := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if current == "" {
				line.WriteString(run.String())
			} else {
				line.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(current)).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.color != current {
				flush()
				current = cl.color
			}
			run.WriteRune(cl.r)
		}
		flush()
		out[i] = line.String()
	}
	return out
}

// Line draws from a to b, given in fractional cell coordinates. A zero rune
// picks a box-drawing character from the slope.
func (c *Canvas) Line(a, b geom.Point, r rune, color string) {
	d := b.Sub(a)
	if r == 0 {
		r = lineRune(d)
	}
	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y)) * 2))
	if steps == 0 {
		c.Set(cellIndex(a.X), cellIndex(a.Y), r, color)
		return
	}
	for i := 0; i <= steps; i++ {
		p := a.Add(d.Mul(float64(i) / float64(steps)))
		c.Set(cellIndex(p.X), cellIndex(p.Y), r, color)
	}
}

func lineRune(d geom.Point) rune {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ax == 0 && ay == 0:
		return '·'
	case ax >= 2*ay:
		return '─'
	case ay >= 2*ax:
		return '│'
	case d.X*d.Y > 0:
		return '╲'
	default:
		return '╱'
	}
}

func cellIndex(v float64) int {
	return int(math.Round(v))
}

// termColor maps a drawing color onto the terminal. Plain strokes use the
// default foreground so they show on dark and light terminals alike.
func termColor(c color.RGBA) string {
	if c == primitive.ColorStroke {
		return ""
	}
	return render.Hex(c)
}

var pointRunes = map[primitive.Kind]rune{
	primitive.KindArrive:  'A',
	primitive.KindLeave:   'L',
	primitive.KindTee:     'T',
	primitive.KindSpindle: 'S',
}

// sheetView is the window onto the sheet the terminal shows, in cells.
type sheetView struct {
	panX   int
	panY   int
	width  int
	height int
}

func (v sheetView) toCell(p geom.Point) geom.Point {
	return geom.Pt(p.X/cellWidth-float64(v.panX), p.Y/cellHeight-float64(v.panY))
}

func (v sheetView) toSheet(col, row int) geom.Point {
	return geom.Pt(float64(col+v.panX)*cellWidth, float64(row+v.panY)*cellHeight)
}

// drawSheet rasterizes a drawing: grid dots, the sheet edge, primitives in
// their colors, the pending preview, handles and the selection band.
func drawSheet(d render.Drawing, v sheetView, band *geom.Rect) *Canvas {
	c := NewCanvas(v.width, v.height)
	cols := int(d.Grid.Width / cellWidth)
	rows := int(d.Grid.Height / cellHeight)
	center := v.toCell(d.Grid.Center())

	for y := 0; y < v.height; y++ {
		row := y + v.panY
		for x := 0; x < v.width; x++ {
			col := x + v.panX
			switch {
			case col == cols && row <= rows || row == rows && col < cols:
				r := '│'
				if row == rows {
					r = '─'
				}
				if col == cols && row == rows {
					r = '┘'
				}
				c.Set(x, y, r, colorSheetEdge)
			case col > cols || row > rows:
			case x == cellIndex(center.X) && y == cellIndex(center.Y):
				c.Set(x, y, '┼', colorGridMajor)
			case col%10 == 0 && row%5 == 0:
				c.Set(x, y, '+', colorGridMajor)
			case col%5 == 0 && row%5 == 0:
				c.Set(x, y, '·', colorGridDot)
			}
		}
	}

	for _, p := range d.Primitives {
		drawPrimitive(c, v, p, termColor(d.Color(p)))
	}
	if d.Preview != nil {
		drawPrimitive(c, v, *d.Preview, colorPreview)
	}
	for _, h := range d.Handles {
		at := v.toCell(h.Pos)
		c.Set(cellIndex(at.X), cellIndex(at.Y), '■', render.Hex(primitive.ColorHandle))
	}
	if band != nil {
		corners := band.Corners()
		order := []int{0, 1, 3, 2, 0}
		for i := 0; i+1 < len(order); i++ {
			c.Line(v.toCell(corners[order[i]]), v.toCell(corners[order[i+1]]), '┄', colorBand)
		}
	}
	return c
}

func drawPrimitive(c *Canvas, v sheetView, p primitive.Primitive, color string) {
	if p.Kind.IsPoint() {
		at := v.toCell(p.Position())
		c.Set(cellIndex(at.X), cellIndex(at.Y), pointRunes[p.Kind], color)
		return
	}
	path := p.Outline()
	for i := 0; i+1 < len(path); i++ {
		c.Line(v.toCell(path[i]), v.toCell(path[i+1]), 0, color)
	}
	if p.Closed() && p.Kind != primitive.KindCircle && len(path) > 2 {
		c.Line(v.toCell(path[len(path)-1]), v.toCell(path[0]), 0, color)
	}
}
