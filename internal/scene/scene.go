package scene

import (
	"image/color"
	"slices"

	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/logger"
	"skeyedit/internal/primitive"
)

// Scene is one editing session: the ordered drawlist, the pending preview,
// the selection and the undo history. It is not safe for concurrent use;
// everything runs on the UI loop.
type Scene struct {
	Grid  geom.Grid
	codec codec.Codec
	log   *logger.Logger

	items     []*primitive.Primitive
	nextID    primitive.ID
	preview   *primitive.Primitive
	sel       Selection
	history   History
	observers []func()
}

func New(g geom.Grid, log *logger.Logger) *Scene {
	if log == nil {
		log = logger.Discard()
	}
	return &Scene{Grid: g, codec: codec.New(g), log: log, nextID: 1}
}

// Subscribe registers fn to run after every change to the drawing.
func (s *Scene) Subscribe(fn func()) {
	s.observers = append(s.observers, fn)
}

func (s *Scene) notify() {
	for _, fn := range s.observers {
		fn()
	}
}

// changed refreshes the handles and tells observers.
func (s *Scene) changed() {
	s.RefreshHandles()
	s.notify()
}

// RefreshHandles rebuilds the selection handles after geometry changed in
// place, as it does during a drag.
func (s *Scene) RefreshHandles() {
	s.sel.Refresh(s.Lookup)
}

func (s *Scene) Len() int { return len(s.items) }

// Primitives returns copies of the drawlist in order.
func (s *Scene) Primitives() []primitive.Primitive {
	out := make([]primitive.Primitive, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

func (s *Scene) Lookup(id primitive.ID) *primitive.Primitive {
	for _, p := range s.items {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ====================
// History target
// ====================

// Insert puts p at index, clamped to the drawlist.
func (s *Scene) Insert(p *primitive.Primitive, index int) {
	index = max(0, min(index, len(s.items)))
	s.items = slices.Insert(s.items, index, p)
}

// Remove takes p out of the drawlist. A primitive that is not there is
// skipped.
func (s *Scene) Remove(p *primitive.Primitive) (int, bool) {
	i := slices.Index(s.items, p)
	if i < 0 {
		s.log.Debug("remove: primitive %d not in drawlist", p.ID)
		return -1, false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return i, true
}

func (s *Scene) Apply(p *primitive.Primitive, g primitive.Geometry) {
	p.Restore(g)
}

// ====================
// Edits
// ====================

func (s *Scene) place(p primitive.Primitive) *primitive.Primitive {
	item := p.Clone()
	item.ID = s.nextID
	s.nextID++
	s.items = append(s.items, &item)
	return &item
}

// Add appends primitives as a single undoable action and returns the live
// copies.
func (s *Scene) Add(ps ...primitive.Primitive) []*primitive.Primitive {
	if len(ps) == 0 {
		return nil
	}
	a := Action{Type: ActionAdd}
	for _, p := range ps {
		a.Items = append(a.Items, s.place(p))
		a.Indices = append(a.Indices, len(s.items)-1)
	}
	s.history.Push(a)
	s.changed()
	return a.Items
}

// Delete removes the primitives with the given ids as one action and
// returns how many went.
func (s *Scene) Delete(ids []primitive.ID) int {
	a := Action{Type: ActionRemove}
	for i, p := range s.items {
		if slices.Contains(ids, p.ID) {
			a.Items = append(a.Items, p)
			a.Indices = append(a.Indices, i)
		}
	}
	if len(a.Items) == 0 {
		return 0
	}
	for _, p := range a.Items {
		s.Remove(p)
	}
	s.history.Push(a)
	s.changed()
	return len(a.Items)
}

// Transform records geometry changes already made to items, given their
// geometry before the change. Unchanged items are left out, and nothing is
// recorded when none changed.
func (s *Scene) Transform(items []*primitive.Primitive, before []primitive.Geometry) bool {
	a := Action{Type: ActionTransform}
	for i, p := range items {
		if p.Geom.Equal(before[i]) {
			continue
		}
		a.Items = append(a.Items, p)
		a.Before = append(a.Before, before[i].Clone())
		a.After = append(a.After, p.State())
	}
	if len(a.Items) == 0 {
		s.RefreshHandles()
		return false
	}
	s.history.Push(a)
	s.changed()
	return true
}

func (s *Scene) Undo() bool {
	if !s.history.Undo(s) {
		return false
	}
	s.changed()
	return true
}

func (s *Scene) Redo() bool {
	if !s.history.Redo(s) {
		return false
	}
	s.changed()
	return true
}

func (s *Scene) CanUndo() bool { return s.history.CanUndo() }
func (s *Scene) CanRedo() bool { return s.history.CanRedo() }

// ====================
// Selection
// ====================

// Select replaces the selection with the ids that exist in the drawlist.
func (s *Scene) Select(ids ...primitive.ID) (entered, left []primitive.ID) {
	live := make([]primitive.ID, 0, len(ids))
	for _, id := range ids {
		if s.Lookup(id) != nil {
			live = append(live, id)
		}
	}
	entered, left = s.sel.Set(live)
	s.sel.Refresh(s.Lookup)
	return entered, left
}

func (s *Scene) SelectAll() {
	ids := make([]primitive.ID, len(s.items))
	for i, p := range s.items {
		ids[i] = p.ID
	}
	s.Select(ids...)
}

func (s *Scene) ClearSelection() {
	s.Select()
}

func (s *Scene) Selected() []primitive.ID { return s.sel.IDs() }

func (s *Scene) IsSelected(id primitive.ID) bool { return s.sel.Contains(id) }

func (s *Scene) Handles() []primitive.Handle { return s.sel.Handles() }

// HandleAt finds the selection handle under pt.
func (s *Scene) HandleAt(pt geom.Point) (primitive.Handle, bool) {
	return primitive.HandleAt(s.sel.handles, pt)
}

// SelectedItems returns the live selected primitives in selection order.
func (s *Scene) SelectedItems() []*primitive.Primitive {
	var out []*primitive.Primitive
	for _, id := range s.sel.ids {
		if p := s.Lookup(id); p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Color is the stroke color to draw p with.
func (s *Scene) Color(p primitive.Primitive) color.RGBA {
	if s.sel.Contains(p.ID) {
		return primitive.ColorHighlight
	}
	return p.Kind.Color()
}

// At returns the topmost primitive under pt, or nil.
func (s *Scene) At(pt geom.Point, tol float64) *primitive.Primitive {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].HitTest(pt, tol) {
			return s.items[i]
		}
	}
	return nil
}

// Within lists the ids of primitives whose bounds touch r, in drawlist order.
func (s *Scene) Within(r geom.Rect) []primitive.ID {
	r = r.Normalize()
	var out []primitive.ID
	for _, p := range s.items {
		if p.Bounds().Intersects(r) {
			out = append(out, p.ID)
		}
	}
	return out
}

// ====================
// Preview
// ====================

func (s *Scene) SetPreview(p primitive.Primitive) {
	c := p.Clone()
	s.preview = &c
}

func (s *Scene) ClearPreview() {
	s.preview = nil
}

func (s *Scene) Preview() (primitive.Primitive, bool) {
	if s.preview == nil {
		return primitive.Primitive{}, false
	}
	return s.preview.Clone(), true
}

// ====================
// Geometry strings
// ====================

// Load replaces the drawing with decoded geometry. Entries that do not parse
// are logged and skipped. Loading is not undoable and starts a fresh history.
func (s *Scene) Load(geometry []string) []error {
	s.items = nil
	s.nextID = 1
	s.preview = nil
	s.sel = Selection{}
	s.history.Clear()

	ps, errs := s.codec.DecodeAll(geometry)
	for _, err := range errs {
		s.log.Warn("load: skipping entry: %v", err)
	}
	for _, p := range ps {
		s.place(p)
	}
	s.notify()
	return errs
}

// Geometry encodes the drawlist in order.
func (s *Scene) Geometry() []string {
	return s.codec.EncodeAll(s.Primitives())
}

// DecodeAt decodes geometry with its relative origin at base, skipping
// entries that do not parse.
func (s *Scene) DecodeAt(geometry []string, base geom.Point) []primitive.Primitive {
	var out []primitive.Primitive
	for _, g := range geometry {
		p, err := s.codec.DecodeAt(g, base)
		if err != nil {
			s.log.Warn("stamp: skipping entry: %v", err)
			continue
		}
		out = append(out, p)
	}
	return out
}
