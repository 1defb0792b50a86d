package codec

import (
	"math"
	"strings"

	"skeyedit/internal/geom"
)

// Pen codes of the legacy plot format.
const (
	PenEnd     = "0"
	PenMove    = "1"
	PenDraw    = "2"
	PenTee     = "3"
	PenSpindle = "6"
)

// LegacyScale turns raw plot units into relative units (20 raw = 1 unit).
const LegacyScale = 0.05

// Triple is one (code, x, y) entry of a legacy pen plot.
type Triple struct {
	Code string
	X, Y float64
}

// IsSpindleName reports the naming convention of spindle symbols.
func IsSpindleName(name string) bool {
	return strings.Contains(name, "SP")
}

// DecodeLegacy converts a legacy pen plot into geometry strings. The first
// pass sizes the symbol (never smaller than one raw unit), the second emits
// geometry centered on half that size.
//
// A move at the very first triple is the arrive point (a spindle point for
// spindle symbols). A move at the last triple, or the triple just before the
// first terminator, is the leave point, except on spindle symbols. Moves
// anywhere else only lift the pen.
func DecodeLegacy(name string, raw []Triple) []string {
	maxX, maxY := 1.0, 1.0
	for _, t := range raw {
		switch t.Code {
		case PenMove, PenDraw, PenTee, PenSpindle:
			maxX = math.Max(maxX, t.X)
			maxY = math.Max(maxY, t.Y)
		}
	}
	halfW := maxX * LegacyScale / 2
	halfH := maxY * LegacyScale / 2

	end := -1
	for i, t := range raw {
		if t.Code == PenEnd {
			end = i
			break
		}
	}

	spindle := IsSpindleName(name)
	conv := func(t Triple) geom.Point {
		return geom.Point{
			X: geom.Round3(t.X*LegacyScale - halfW),
			Y: geom.Round3(t.Y*LegacyScale - halfH),
		}
	}
	point := func(typ string, p geom.Point) string {
		rec := NewRecord(typ)
		rec.SetNum("x0", p.X)
		rec.SetNum("y0", p.Y)
		return Format(rec)
	}

	var out []string
	var cur geom.Point
	for i, t := range raw {
		switch t.Code {
		case PenMove:
			cur = conv(t)
			if i == 0 {
				typ := "ArrivePoint"
				if spindle {
					typ = "SpindlePoint"
				}
				out = append(out, point(typ, cur))
			} else if i == len(raw)-1 || (end > 0 && i == end-1) {
				if !spindle {
					out = append(out, point("LeavePoint", cur))
				}
			}
		case PenDraw:
			next := conv(t)
			rec := NewRecord("Line")
			rec.SetNum("x1", cur.X)
			rec.SetNum("y1", cur.Y)
			rec.SetNum("x2", next.X)
			rec.SetNum("y2", next.Y)
			out = append(out, Format(rec))
			cur = next
		case PenTee:
			cur = conv(t)
			out = append(out, point("TeePoint", cur))
		case PenSpindle:
			cur = conv(t)
			out = append(out, point("SpindlePoint", cur))
		}
	}
	return out
}
