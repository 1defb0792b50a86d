package scene

import (
	"slices"

	"skeyedit/internal/primitive"
)

// Selection is the ordered set of selected primitives and the handles they
// expose. Highlight is derived from membership, so leaving the selection
// restores a primitive's own color with nothing to undo.
type Selection struct {
	ids     []primitive.ID
	handles []primitive.Handle
}

// Set replaces the selection and reports which ids entered and left it.
func (s *Selection) Set(ids []primitive.ID) (entered, left []primitive.ID) {
	next := make([]primitive.ID, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	for _, id := range next {
		if !slices.Contains(s.ids, id) {
			entered = append(entered, id)
		}
	}
	for _, id := range s.ids {
		if !slices.Contains(next, id) {
			left = append(left, id)
		}
	}
	s.ids = next
	return entered, left
}

func (s *Selection) Contains(id primitive.ID) bool {
	return slices.Contains(s.ids, id)
}

func (s *Selection) IDs() []primitive.ID {
	return slices.Clone(s.ids)
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Handles() []primitive.Handle {
	return slices.Clone(s.handles)
}

// Refresh drops ids that no longer resolve and rebuilds the handles from
// the current geometry.
func (s *Selection) Refresh(lookup func(primitive.ID) *primitive.Primitive) {
	s.handles = s.handles[:0]
	kept := s.ids[:0]
	for _, id := range s.ids {
		p := lookup(id)
		if p == nil {
			continue
		}
		kept = append(kept, id)
		s.handles = append(s.handles, p.Handles()...)
	}
	s.ids = kept
}
