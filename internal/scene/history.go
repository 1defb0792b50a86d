package scene

import (
	"sort"

	"skeyedit/internal/primitive"
)

type ActionType int

const (
	ActionAdd ActionType = iota
	ActionRemove
	ActionTransform
)

func (a ActionType) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionRemove:
		return "remove"
	case ActionTransform:
		return "transform"
	}
	return "unknown"
}

// Action is one undoable step. Items are the live primitives it touched.
// Indices are drawlist positions for add and remove, in ascending order.
// Before and After are geometry snapshots for transform, parallel to Items.
type Action struct {
	Type    ActionType
	Items   []*primitive.Primitive
	Indices []int
	Before  []primitive.Geometry
	After   []primitive.Geometry
}

// Target is what history replays actions onto.
type Target interface {
	Insert(p *primitive.Primitive, index int)
	Remove(p *primitive.Primitive) (int, bool)
	Apply(p *primitive.Primitive, g primitive.Geometry)
}

// History is a linear undo/redo log.
type History struct {
	undoStack []Action
	redoStack []Action
}

// Push records a committed action and drops anything that could be redone.
func (h *History) Push(a Action) {
	h.undoStack = append(h.undoStack, a)
	h.redoStack = h.redoStack[:0]
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

// Depth reports how many actions can be undone and redone.
func (h *History) Depth() (undo, redo int) {
	return len(h.undoStack), len(h.redoStack)
}

func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}

// Undo reverts the latest action onto t. It returns false on an empty stack.
func (h *History) Undo(t Target) bool {
	if len(h.undoStack) == 0 {
		return false
	}

	lastIndex := len(h.undoStack) - 1
	action := h.undoStack[lastIndex]
	h.undoStack = h.undoStack[:lastIndex]

	switch action.Type {
	case ActionAdd:
		for i := len(action.Items) - 1; i >= 0; i-- {
			t.Remove(action.Items[i])
		}
	case ActionRemove:
		reinsert(t, action)
	case ActionTransform:
		for i, p := range action.Items {
			t.Apply(p, action.Before[i])
		}
	}

	h.redoStack = append(h.redoStack, action)
	return true
}

// Redo re-applies the latest undone action. It returns false on an empty
// stack.
func (h *History) Redo(t Target) bool {
	if len(h.redoStack) == 0 {
		return false
	}

	lastIndex := len(h.redoStack) - 1
	action := h.redoStack[lastIndex]
	h.redoStack = h.redoStack[:lastIndex]

	switch action.Type {
	case ActionAdd:
		reinsert(t, action)
	case ActionRemove:
		for _, p := range action.Items {
			t.Remove(p)
		}
	case ActionTransform:
		for i, p := range action.Items {
			t.Apply(p, action.After[i])
		}
	}

	h.undoStack = append(h.undoStack, action)
	return true
}

// reinsert puts items back at their recorded positions, lowest first, so
// every index is valid again by the time it is used.
func reinsert(t Target, a Action) {
	order := make([]int, len(a.Items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return a.Indices[order[i]] < a.Indices[order[j]] })
	for _, i := range order {
		t.Insert(a.Items[i], a.Indices[i])
	}
}
