package scene

import (
	"skeyedit/internal/geom"
	"skeyedit/internal/logger"
	"skeyedit/internal/primitive"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingPoints
	StateDraggingHandle
	StateMovingSelection
	StateSelectingRegion
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPoints:
		return "awaiting points"
	case StateDraggingHandle:
		return "dragging handle"
	case StateMovingSelection:
		return "moving"
	case StateSelectingRegion:
		return "selecting"
	}
	return "unknown"
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

type Key int

const (
	KeyEscape Key = iota
	KeyDelete
	KeyEnter
	KeyUndo
	KeyRedo
	KeySelectAll
)

type Cursor int

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	CursorMove
	CursorArrow
)

// HitTolerance is how far from a stroke a click still picks it, in pixels.
const HitTolerance = 4.0

// SpindleLookup returns the stored geometry of a named spindle.
type SpindleLookup func(name string) ([]string, error)

// Controller turns pointer and key input into scene edits.
type Controller struct {
	scene *Scene
	log   *logger.Logger

	state     State
	tool      primitive.Tool
	collected []geom.Point
	pointer   geom.Point
	conn      primitive.Connection
	spindles  SpindleLookup

	// gesture state for drag, move and band selection
	grab    geom.Point
	items   []*primitive.Primitive
	before  []primitive.Geometry
	handle  primitive.HandleRef
	bandEnd geom.Point
}

func NewController(s *Scene, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{scene: s, log: log}
}

func (c *Controller) Scene() *Scene        { return c.scene }
func (c *Controller) State() State         { return c.state }
func (c *Controller) Tool() primitive.Tool { return c.tool }
func (c *Controller) Pointer() geom.Point  { return c.pointer }

// Collected returns a copy of the anchors placed so far.
func (c *Controller) Collected() []geom.Point {
	return geom.ClonePoints(c.collected)
}

// SetConnection sets the connection type and spindle name new connection
// points are tagged with.
func (c *Controller) SetConnection(conn primitive.Connection) {
	c.conn = conn
}

func (c *Controller) Connection() primitive.Connection { return c.conn }

func (c *Controller) SetSpindleLookup(fn SpindleLookup) {
	c.spindles = fn
}

// Band is the region being dragged out, if any.
func (c *Controller) Band() (geom.Rect, bool) {
	if c.state != StateSelectingRegion {
		return geom.Rect{}, false
	}
	return geom.RectFromCorners(c.grab, c.bandEnd), true
}

func (c *Controller) Cursor() Cursor {
	switch {
	case c.state == StateMovingSelection || c.state == StateDraggingHandle:
		return CursorMove
	case c.tool.Draws():
		return CursorCrosshair
	case c.tool == primitive.ToolMove:
		return CursorMove
	case c.tool == primitive.ToolSelect:
		return CursorArrow
	}
	return CursorDefault
}

// SelectTool switches tools. Anchors collected for the previous tool are
// discarded.
func (c *Controller) SelectTool(t primitive.Tool) {
	c.cancelGesture()
	c.collected = nil
	c.scene.ClearPreview()
	c.tool = t
	c.state = StateIdle
	if t.Draws() {
		c.state = StateAwaitingPoints
		c.updatePreview()
	}
	c.log.Debug("tool %s", t)
}

// Press handles a pointer press at scene position pt.
func (c *Controller) Press(pt geom.Point, b Button) {
	c.pointer = pt
	if c.tool.Draws() && (c.state == StateIdle || c.state == StateAwaitingPoints) {
		c.state = StateAwaitingPoints
		if b == ButtonRight {
			if c.tool.OpenEnded() {
				c.finishOpen()
			}
			return
		}
		c.collected = append(c.collected, c.scene.Grid.Snap(pt))
		need := c.tool.PointsRequired()
		if need != primitive.OpenEnded && len(c.collected) >= need {
			c.finalize()
			return
		}
		c.updatePreview()
		return
	}
	if c.state != StateIdle || b != ButtonLeft {
		return
	}

	if h, ok := c.scene.HandleAt(pt); ok {
		if p := c.scene.Lookup(h.Ref.ID); p != nil {
			c.begin(StateDraggingHandle, pt, []*primitive.Primitive{p})
			c.handle = h.Ref
			return
		}
	}

	hit := c.scene.At(pt, HitTolerance)
	if hit == nil {
		c.grab, c.bandEnd = pt, pt
		c.state = StateSelectingRegion
		return
	}
	if !c.scene.IsSelected(hit.ID) {
		c.scene.Select(hit.ID)
	}
	c.begin(StateMovingSelection, pt, c.scene.SelectedItems())
}

// Move handles pointer motion.
func (c *Controller) Move(pt geom.Point) {
	c.pointer = pt
	switch c.state {
	case StateAwaitingPoints:
		c.updatePreview()
	case StateDraggingHandle:
		p := c.items[0]
		if err := p.MoveSlot(c.handle.Slot, c.scene.Grid.Snap(pt)); err != nil {
			c.abandon(err)
			return
		}
		c.scene.RefreshHandles()
	case StateMovingSelection:
		d := c.scene.Grid.Snap(pt).Sub(c.scene.Grid.Snap(c.grab))
		for i, p := range c.items {
			p.Restore(c.before[i].Translate(d))
		}
		c.scene.RefreshHandles()
	case StateSelectingRegion:
		c.bandEnd = pt
	}
}

// Release ends a drag, move or band gesture.
func (c *Controller) Release(pt geom.Point, b Button) {
	if b != ButtonLeft {
		return
	}
	switch c.state {
	case StateDraggingHandle, StateMovingSelection:
		c.Move(pt)
		if c.state == StateIdle {
			return
		}
		if c.scene.Transform(c.items, c.before) {
			c.log.Debug("%s committed for %d primitives", c.state, len(c.items))
		}
		c.end()
	case StateSelectingRegion:
		c.bandEnd = pt
		if c.grab == pt {
			c.scene.ClearSelection()
		} else {
			c.scene.Select(c.scene.Within(geom.RectFromCorners(c.grab, pt))...)
		}
		c.state = StateIdle
	}
}

// Key handles an editing key and reports whether it did anything.
func (c *Controller) Key(k Key) bool {
	switch k {
	case KeyEscape:
		changed := c.state != StateIdle || c.tool != primitive.ToolNone || c.scene.sel.Len() > 0
		c.cancelGesture()
		c.collected = nil
		c.scene.ClearPreview()
		c.tool = primitive.ToolNone
		c.state = StateIdle
		c.scene.ClearSelection()
		return changed
	case KeyDelete:
		if c.state != StateIdle && c.state != StateAwaitingPoints {
			return false
		}
		return c.scene.Delete(c.scene.Selected()) > 0
	case KeyEnter:
		if c.state == StateAwaitingPoints && c.tool.OpenEnded() {
			return c.finishOpen()
		}
	case KeyUndo:
		if c.busy() {
			return false
		}
		return c.scene.Undo()
	case KeyRedo:
		if c.busy() {
			return false
		}
		return c.scene.Redo()
	case KeySelectAll:
		if c.busy() {
			return false
		}
		c.scene.SelectAll()
		return c.scene.sel.Len() > 0
	}
	return false
}

// MoveSelectionBy translates every selected primitive by d pixels as one
// undoable step.
func (c *Controller) MoveSelectionBy(d geom.Point) bool {
	if c.busy() {
		return false
	}
	items := c.scene.SelectedItems()
	before := snapshot(items)
	for _, p := range items {
		p.Translate(d)
	}
	return c.scene.Transform(items, before)
}

// RotateSelection turns the selection a quarter turn clockwise per step
// around the snapped center of its bounds.
func (c *Controller) RotateSelection(quarterTurns int) bool {
	if c.busy() {
		return false
	}
	items := c.scene.SelectedItems()
	if len(items) == 0 {
		return false
	}
	box := items[0].Bounds()
	for _, p := range items[1:] {
		box = box.Union(p.Bounds())
	}
	center := c.scene.Grid.Snap(box.Center())
	before := snapshot(items)
	for n := ((quarterTurns % 4) + 4) % 4; n > 0; n-- {
		for _, p := range items {
			p.Rotate90(center)
		}
	}
	return c.scene.Transform(items, before)
}

func (c *Controller) busy() bool {
	return c.state == StateDraggingHandle || c.state == StateMovingSelection || c.state == StateSelectingRegion
}

func snapshot(items []*primitive.Primitive) []primitive.Geometry {
	out := make([]primitive.Geometry, len(items))
	for i, p := range items {
		out[i] = p.State()
	}
	return out
}

func (c *Controller) begin(s State, pt geom.Point, items []*primitive.Primitive) {
	c.state = s
	c.grab = pt
	c.items = items
	c.before = snapshot(items)
}

func (c *Controller) end() {
	c.state = StateIdle
	c.items = nil
	c.before = nil
}

// cancelGesture puts a half-done drag or move back where it started.
func (c *Controller) cancelGesture() {
	if c.state == StateDraggingHandle || c.state == StateMovingSelection {
		for i, p := range c.items {
			p.Restore(c.before[i])
		}
		c.scene.RefreshHandles()
	}
	c.end()
}

// abandon drops a handle drag whose slot the primitive does not have.
func (c *Controller) abandon(err error) {
	c.log.Error("handle drag abandoned: %v", err)
	c.cancelGesture()
}

func (c *Controller) updatePreview() {
	if c.state != StateAwaitingPoints {
		return
	}
	p, ok := primitive.Preview(c.tool, c.collected, c.scene.Grid.Snap(c.pointer), c.conn)
	if !ok {
		c.scene.ClearPreview()
		return
	}
	c.scene.SetPreview(p)
}

// finishOpen ends a polyline on Enter or right click.
func (c *Controller) finishOpen() bool {
	if len(c.collected) < 2 {
		return false
	}
	c.finalize()
	return true
}

// finalize builds the shape from the collected anchors and commits it. A
// spindle point brings its spindle's geometry along in the same step.
func (c *Controller) finalize() {
	defer func() {
		c.collected = nil
		c.scene.ClearPreview()
		c.state = StateIdle
	}()

	p, err := primitive.Build(c.tool, c.collected, c.conn)
	if err != nil {
		c.log.Debug("discarding %d anchors: %v", len(c.collected), err)
		return
	}
	if primitive.Degenerate(p) {
		c.log.Warn("%s has zero extent", p.Kind)
	}
	ps := []primitive.Primitive{p}
	if p.Kind == primitive.KindSpindle {
		ps = append(ps, c.stamp(p)...)
	}
	added := c.scene.Add(ps...)
	c.log.Debug("added %s as #%d", p.Kind, added[0].ID)
}

func (c *Controller) stamp(p primitive.Primitive) []primitive.Primitive {
	if p.Conn.Spindle == "" || c.spindles == nil {
		return nil
	}
	geometry, err := c.spindles(p.Conn.Spindle)
	if err != nil {
		c.log.Warn("spindle %s: %v", p.Conn.Spindle, err)
		return nil
	}
	return c.scene.DecodeAt(geometry, p.Position())
}
