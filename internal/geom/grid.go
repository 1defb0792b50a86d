package geom

import "math"

const (
	SheetSize     = 600.0
	SnapStep      = 10.0
	GridStepUnits = 5
	// PixelsPerUnit is the stepSize of one relative unit: 20 * GridStepUnits.
	PixelsPerUnit = 20 * GridStepUnits
)

// Grid is the fixed drawing sheet. The origin of relative space sits at the
// sheet center and relative Y grows upward.
type Grid struct {
	Width     float64
	Height    float64
	SnapStep  float64
	StepUnits int
}

func DefaultGrid() Grid {
	return Grid{
		Width:     SheetSize,
		Height:    SheetSize,
		SnapStep:  SnapStep,
		StepUnits: GridStepUnits,
	}
}

func (g Grid) StepSize() float64 {
	return 20 * float64(g.StepUnits)
}

func (g Grid) Center() Point {
	return Point{g.Width / 2, g.Height / 2}
}

// Snap moves p to the nearest lattice point.
func (g Grid) Snap(p Point) Point {
	return Point{
		X: math.Round(p.X/g.SnapStep) * g.SnapStep,
		Y: math.Round(p.Y/g.SnapStep) * g.SnapStep,
	}
}

func (g Grid) OnLattice(p Point) bool {
	return math.Mod(p.X, g.SnapStep) == 0 && math.Mod(p.Y, g.SnapStep) == 0
}

// ToRelative converts sheet pixels to relative units, rounded to 3 decimals.
func (g Grid) ToRelative(p Point) Point {
	step := g.StepSize()
	return Point{
		X: Round3((p.X - g.Width/2) / step),
		Y: Round3((g.Height/2 - p.Y) / step),
	}
}

func (g Grid) ToPixel(r Point) Point {
	step := g.StepSize()
	return Point{
		X: r.X*step + g.Width/2,
		Y: g.Height/2 - r.Y*step,
	}
}

// ToPixelAt converts relative units using base as the relative origin, the
// way spindle geometry is stamped at a spindle point.
func (g Grid) ToPixelAt(base, r Point) Point {
	step := g.StepSize()
	return Point{
		X: base.X + r.X*step,
		Y: base.Y - r.Y*step,
	}
}

type LineKind int

const (
	LineMinor LineKind = iota
	LineMiddle
	LineMajor
	LineOrigin
)

type GridLine struct {
	Kind     LineKind
	Vertical bool
	Pos      float64
}

// Lines lists every grid line on the sheet, classified by weight: every
// snap step is minor, every 5 steps middle, every relative unit major and
// the axes through the center are origin lines.
func (g Grid) Lines() []GridLine {
	var out []GridLine
	add := func(vertical bool, extent, center float64) {
		for pos := 0.0; pos <= extent; pos += g.SnapStep {
			off := math.Abs(pos - center)
			kind := LineMinor
			switch {
			case off == 0:
				kind = LineOrigin
			case math.Mod(off, g.StepSize()) == 0:
				kind = LineMajor
			case math.Mod(off, g.SnapStep*5) == 0:
				kind = LineMiddle
			}
			out = append(out, GridLine{Kind: kind, Vertical: vertical, Pos: pos})
		}
	}
	add(true, g.Width, g.Width/2)
	add(false, g.Height, g.Height/2)
	return out
}
