package primitive

import "strings"

// Tool is what the user picked in the toolbar. Drawing tools map onto a
// primitive Kind once enough points are collected.
type Tool int

const (
	ToolNone Tool = iota
	ToolSelect
	ToolMove
	ToolLine
	ToolPolyline
	ToolOrthoPolyline
	ToolRectangle
	ToolSquare
	ToolCircle
	ToolDiamond
	ToolTriangle
	ToolPentagon
	ToolHexagon
	ToolOctagon
	ToolDodecagon
	ToolCap
	ToolArrive
	ToolLeave
	ToolTee
	ToolSpindle
)

// OpenEnded marks tools that collect points until the user finishes.
const OpenEnded = -1

type toolSpec struct {
	name   string
	points int
	sides  int
	kind   Kind
}

var toolSpecs = map[Tool]toolSpec{
	ToolNone:          {name: "none"},
	ToolSelect:        {name: "select"},
	ToolMove:          {name: "move"},
	ToolLine:          {name: "line", points: 2, kind: KindLine},
	ToolPolyline:      {name: "polyline", points: OpenEnded, kind: KindPolyline},
	ToolOrthoPolyline: {name: "ortho", points: OpenEnded, kind: KindOrthoPolyline},
	ToolRectangle:     {name: "rectangle", points: 2, kind: KindRectangle},
	ToolSquare:        {name: "square", points: 2, kind: KindRectangle},
	ToolCircle:        {name: "circle", points: 2, kind: KindCircle},
	ToolDiamond:       {name: "diamond", points: 2, kind: KindPolygon},
	ToolTriangle:      {name: "triangle", points: 3, kind: KindPolygon},
	ToolPentagon:      {name: "pentagon", points: 2, sides: 5, kind: KindPolygon},
	ToolHexagon:       {name: "hexagon", points: 2, sides: 6, kind: KindPolygon},
	ToolOctagon:       {name: "octagon", points: 2, sides: 8, kind: KindPolygon},
	ToolDodecagon:     {name: "dodecagon", points: 2, sides: 12, kind: KindPolygon},
	ToolCap:           {name: "cap", points: 2, kind: KindCap},
	ToolArrive:        {name: "arrive", points: 1, kind: KindArrive},
	ToolLeave:         {name: "leave", points: 1, kind: KindLeave},
	ToolTee:           {name: "tee", points: 1, kind: KindTee},
	ToolSpindle:       {name: "spindle", points: 1, kind: KindSpindle},
}

func (t Tool) String() string {
	if s, ok := toolSpecs[t]; ok {
		return s.name
	}
	return "unknown"
}

// PointsRequired is the number of anchors that completes a shape, OpenEnded
// for polylines and 0 for tools that do not draw.
func (t Tool) PointsRequired() int {
	return toolSpecs[t].points
}

func (t Tool) OpenEnded() bool {
	return toolSpecs[t].points == OpenEnded
}

func (t Tool) Draws() bool {
	return toolSpecs[t].points != 0
}

// Kind is the primitive a drawing tool produces.
func (t Tool) Kind() Kind {
	return toolSpecs[t].kind
}

func ParseTool(name string) (Tool, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, s := range toolSpecs {
		if s.name == name {
			return t, true
		}
	}
	return ToolNone, false
}

// DrawingTools lists the drawing tools in toolbar order.
func DrawingTools() []Tool {
	return []Tool{
		ToolLine, ToolPolyline, ToolOrthoPolyline, ToolRectangle, ToolSquare,
		ToolCircle, ToolDiamond, ToolTriangle, ToolPentagon, ToolHexagon,
		ToolOctagon, ToolDodecagon, ToolCap,
		ToolArrive, ToolLeave, ToolTee, ToolSpindle,
	}
}
