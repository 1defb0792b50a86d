package primitive

import (
	"errors"
	"fmt"

	"skeyedit/internal/geom"
)

// Slot names one editable vertex of a primitive. Its meaning depends on the
// kind: rectangle slots are TopLeft..BottomRight, line and cap slots are the
// endpoints, polygon and polyline slots are vertex indices, circle slots are
// CircleCenter and CircleRadius.
type Slot int

const (
	TopLeft Slot = iota
	TopRight
	BottomLeft
	BottomRight
)

const (
	CircleCenter Slot = iota
	CircleRadius
)

// HandleRef ties a handle to its primitive explicitly.
type HandleRef struct {
	ID   ID
	Slot Slot
}

type Handle struct {
	Ref HandleRef
	Pos geom.Point
}

// HandleSize is the side of the square drawn and hit-tested for a handle.
const HandleSize = 8.0

var ErrInvalidHandle = errors.New("invalid handle slot")

type HandleError struct {
	ID   ID
	Kind Kind
	Slot Slot
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("primitive %d (%s) has no slot %d", e.ID, e.Kind, e.Slot)
}

func (e *HandleError) Unwrap() error {
	return ErrInvalidHandle
}

// Handles lists the resize handles of p. Connection points have none.
func (p Primitive) Handles() []Handle {
	var pos []geom.Point
	switch p.Kind {
	case KindLine, KindCap, KindPolygon, KindPolyline, KindOrthoPolyline:
		pos = p.Geom.Points
	case KindRectangle:
		c := p.Geom.Rect.Corners()
		pos = c[:]
	case KindCircle:
		if len(p.Geom.Points) == 1 {
			c := p.Geom.Points[0]
			pos = []geom.Point{c, {X: c.X + p.Geom.Radius, Y: c.Y}}
		}
	}
	hs := make([]Handle, len(pos))
	for i, pt := range pos {
		hs[i] = Handle{Ref: HandleRef{ID: p.ID, Slot: Slot(i)}, Pos: pt}
	}
	return hs
}

// MoveSlot moves one vertex to the given scene position. A slot the kind
// does not have is a contract violation and is reported as *HandleError.
func (p *Primitive) MoveSlot(s Slot, to geom.Point) error {
	bad := &HandleError{ID: p.ID, Kind: p.Kind, Slot: s}
	if s < 0 {
		return bad
	}
	switch p.Kind {
	case KindLine, KindCap, KindPolygon, KindPolyline, KindOrthoPolyline:
		if int(s) >= len(p.Geom.Points) {
			return bad
		}
		p.Geom.Points[s] = to
	case KindRectangle:
		r := p.Geom.Rect
		x1, y1, x2, y2 := r.X, r.Y, r.X+r.W, r.Y+r.H
		switch s {
		case TopLeft:
			x1, y1 = to.X, to.Y
		case TopRight:
			x2, y1 = to.X, to.Y
		case BottomLeft:
			x1, y2 = to.X, to.Y
		case BottomRight:
			x2, y2 = to.X, to.Y
		default:
			return bad
		}
		p.Geom.Rect = geom.RectFromCorners(geom.Point{X: x1, Y: y1}, geom.Point{X: x2, Y: y2})
	case KindCircle:
		if len(p.Geom.Points) != 1 {
			return bad
		}
		switch s {
		case CircleCenter:
			p.Geom.Points[0] = to
		case CircleRadius:
			p.Geom.Radius = p.Geom.Points[0].Dist(to)
		default:
			return bad
		}
	default:
		return bad
	}
	return nil
}

// HandleAt finds the handle under pt, if any.
func HandleAt(hs []Handle, pt geom.Point) (Handle, bool) {
	half := HandleSize / 2
	for i := len(hs) - 1; i >= 0; i-- {
		h := hs[i]
		if pt.Near(h.Pos, half) {
			return h, true
		}
	}
	return Handle{}, false
}
