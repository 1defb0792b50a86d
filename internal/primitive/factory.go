package primitive

import (
	"errors"
	"fmt"

	"skeyedit/internal/geom"
)

var (
	ErrEmptyPointSet = errors.New("not enough points for shape")
	ErrNotDrawing    = errors.New("tool does not draw")
)

// Build turns the collected, already snapped anchors into the final
// primitive for tool t. Extra anchors beyond what the tool needs are ignored.
func Build(t Tool, pts []geom.Point, conn Connection) (Primitive, error) {
	ts, ok := toolSpecs[t]
	if !ok || ts.points == 0 {
		return Primitive{}, fmt.Errorf("%s: %w", t, ErrNotDrawing)
	}
	need := ts.points
	if need == OpenEnded {
		need = 2
	}
	if len(pts) < need {
		return Primitive{}, fmt.Errorf("%s needs %d points, have %d: %w", t, need, len(pts), ErrEmptyPointSet)
	}

	switch t {
	case ToolArrive, ToolLeave, ToolTee, ToolSpindle:
		return NewPoint(ts.kind, pts[0], conn), nil
	case ToolLine:
		return NewLine(pts[0], pts[1]), nil
	case ToolPolyline:
		return NewPolyline(pts, false), nil
	case ToolOrthoPolyline:
		return NewPolyline(geom.OrthogonalRoute(pts), true), nil
	case ToolRectangle:
		return NewRectangle(geom.RectFromCorners(pts[0], pts[1])), nil
	case ToolSquare:
		return NewRectangle(geom.SquareFrom(pts[0], pts[1])), nil
	case ToolCircle:
		return NewCircle(pts[0], pts[0].Dist(pts[1])), nil
	case ToolDiamond:
		return NewPolygon(geom.Diamond(pts[0], pts[0].Dist(pts[1]))), nil
	case ToolTriangle:
		return NewPolygon(pts[:3]), nil
	case ToolPentagon, ToolHexagon, ToolOctagon, ToolDodecagon:
		return NewPolygon(geom.RegularPolygon(pts[0], pts[0].Dist(pts[1]), ts.sides)), nil
	case ToolCap:
		return NewCap(pts[0], pts[1]), nil
	}
	return Primitive{}, fmt.Errorf("%s: %w", t, ErrNotDrawing)
}

// Preview is the ephemeral shape shown while anchors are still being
// collected, with cursor standing in for the next anchor. collected is never
// modified. ok is false when there is nothing to show yet.
func Preview(t Tool, collected []geom.Point, cursor geom.Point, conn Connection) (p Primitive, ok bool) {
	need := t.PointsRequired()
	switch {
	case need == 0:
		return Primitive{}, false
	case need == 1:
		p, err := Build(t, []geom.Point{cursor}, conn)
		return p, err == nil
	case len(collected) == 0:
		return Primitive{}, false
	}

	pts := make([]geom.Point, 0, len(collected)+1)
	pts = append(pts, collected...)
	pts = append(pts, cursor)

	if need != OpenEnded && len(pts) < need {
		// Triangle with one corner placed: show the edge so far.
		return NewPolyline(pts, false), true
	}
	if need != OpenEnded {
		pts = pts[:need]
	}
	p, err := Build(t, pts, conn)
	return p, err == nil
}
