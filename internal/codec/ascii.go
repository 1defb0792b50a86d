package codec

import (
	"strconv"
	"strings"

	"skeyedit/internal/geom"
	"skeyedit/internal/skey"
)

const (
	asciiScale  = 20.0
	asciiOffset = 50.0
	slotsPerRow = 4
)

// Column is a half-open byte range of a fixed column record.
type Column struct {
	Start, End int
}

// Slot is where one (code, x, y) triple sits inside a 502 record.
type Slot struct {
	Code, X, Y Column
}

// RecordSlots is the fixed column layout of the four triples of a 502 record.
var RecordSlots = [slotsPerRow]Slot{
	{Column{5, 14}, Column{15, 22}, Column{23, 30}},
	{Column{31, 38}, Column{39, 46}, Column{47, 54}},
	{Column{55, 63}, Column{64, 70}, Column{71, 78}},
	{Column{79, 86}, Column{87, 94}, Column{95, 103}},
}

// Header columns of a 501 record.
var (
	HeaderName        = Column{5, 10}
	HeaderBase        = Column{11, 15}
	HeaderSpindle     = Column{16, 20}
	HeaderOrientation = Column{30, 37}
	HeaderFlow        = Column{38, 45}
	HeaderDimensioned = Column{46, 53}
)

// ExportASCII writes a symbol as a 501 header followed by 502 records of up
// to four pen triples, in the fixed column layout the importers read.
// Geometry entries that cannot be parsed are left out.
func (c Codec) ExportASCII(sym skey.Symbol) string {
	var row line
	row.put(Column{0, 3}, "501", false)
	row.put(HeaderName, clip(sym.Name, 5), false)
	row.put(HeaderBase, clip(sym.Name, 4), false)
	row.put(HeaderSpindle, clip(sym.Spindle, 4), false)
	row.put(HeaderOrientation, strconv.Itoa(int(sym.Orientation)), true)
	row.put(HeaderFlow, strconv.Itoa(int(sym.FlowArrow)), true)
	row.put(HeaderDimensioned, strconv.Itoa(int(sym.Dimensioned)), true)
	lines := []string{row.String()}

	var raw []Triple
	for _, s := range sym.Geometry {
		raw = append(raw, c.penTriples(s)...)
	}
	if len(raw) == 0 {
		return strings.Join(lines, "\n")
	}
	raw = append(raw, Triple{Code: PenEnd})

	for i := 0; i < len(raw); i += slotsPerRow {
		var rec line
		rec.put(Column{0, 3}, "502", false)
		for j := 0; j < slotsPerRow && i+j < len(raw); j++ {
			t, slot := raw[i+j], RecordSlots[j]
			rec.put(slot.Code, t.Code, true)
			rec.put(slot.X, FormatFloat(t.X, 1), true)
			rec.put(slot.Y, FormatFloat(t.Y, 1), true)
		}
		lines = append(lines, rec.String())
	}
	return strings.Join(lines, "\n")
}

func plot(v float64) float64 {
	return geom.RoundTo((v+asciiOffset)*asciiScale, 1)
}

// penTriples converts one geometry string into pen moves in plot units.
func (c Codec) penTriples(s string) []Triple {
	rec, err := Parse(s)
	if err != nil {
		return nil
	}
	path := func(pts []geom.Point, closed bool) []Triple {
		if len(pts) == 0 {
			return nil
		}
		if closed {
			pts = append(pts, pts[0])
		}
		out := make([]Triple, len(pts))
		for i, p := range pts {
			code := PenDraw
			if i == 0 {
				code = PenMove
			}
			out[i] = Triple{Code: code, X: plot(p.X), Y: plot(p.Y)}
		}
		return out
	}
	num := func(keys ...string) ([]float64, bool) {
		vals := make([]float64, len(keys))
		for i, k := range keys {
			v, ok := rec.Num(k)
			if !ok {
				return nil, false
			}
			vals[i] = v
		}
		return vals, true
	}

	switch rec.Type {
	case "ArrivePoint", "LeavePoint", "TeePoint", "SpindlePoint":
		v, ok := num("x0", "y0")
		if !ok {
			return nil
		}
		code := PenMove
		switch rec.Type {
		case "TeePoint":
			code = PenTee
		case "SpindlePoint":
			code = PenSpindle
		}
		return []Triple{{Code: code, X: plot(v[0]), Y: plot(v[1])}}
	case "Line":
		v, ok := num("x1", "y1", "x2", "y2")
		if !ok {
			return nil
		}
		return path([]geom.Point{{X: v[0], Y: v[1]}, {X: v[2], Y: v[3]}}, false)
	case "Rectangle":
		v, ok := num("x0", "y0", "width", "height")
		if !ok {
			return nil
		}
		x, y, hw, hh := v[0], v[1], v[2]/2, v[3]/2
		return path([]geom.Point{{X: x - hw, Y: y - hh}, {X: x + hw, Y: y - hh}, {X: x + hw, Y: y + hh}, {X: x - hw, Y: y + hh}}, true)
	case "Circle":
		v, ok := num("x0", "y0", "r")
		if !ok {
			return nil
		}
		return path(geom.CirclePoints(geom.Point{X: v[0], Y: v[1]}, v[2], 24), false)
	case "Polygon", "Polyline", "OrthoPolyline":
		return path(vertices(rec), rec.Type == "Polygon")
	case "Cap":
		p, err := c.FromRecord(rec, c.Grid.Center(), s)
		if err != nil {
			return nil
		}
		var rel []geom.Point
		for _, pt := range p.Outline() {
			rel = append(rel, c.Grid.ToRelative(pt))
		}
		return path(rel, false)
	}
	return nil
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// line is a fixed column text row.
type line struct {
	buf []byte
}

// put writes v into col, right aligned when right is set. Values wider than
// their column are written in full.
func (l *line) put(col Column, v string, right bool) {
	width := col.End - col.Start
	if len(v) < width {
		pad := strings.Repeat(" ", width-len(v))
		if right {
			v = pad + v
		} else {
			v += pad
		}
	}
	for len(l.buf) < col.Start {
		l.buf = append(l.buf, ' ')
	}
	l.buf = append(l.buf[:col.Start], v...)
}

func (l *line) String() string {
	return strings.TrimRight(string(l.buf), " ")
}

// Field reads a column out of a fixed column row, trimmed. ok is false when
// the row is too short to reach the column.
func Field(row string, col Column) (string, bool) {
	if len(row) <= col.Start {
		return "", false
	}
	end := col.End
	if end > len(row) {
		end = len(row)
	}
	return strings.TrimSpace(row[col.Start:end]), true
}
