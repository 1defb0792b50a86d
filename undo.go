package main

import "skeyedit/internal/scene"

func (m *model) undo() {
	if !m.ed.scene.CanUndo() {
		m.successMessage = m.tr.T("status.nothing")
		return
	}
	if m.ed.ctrl.Key(scene.KeyUndo) {
		m.successMessage = m.tr.T("status.undo")
	}
}

func (m *model) redo() {
	if !m.ed.scene.CanRedo() {
		m.successMessage = m.tr.T("status.nothing")
		return
	}
	if m.ed.ctrl.Key(scene.KeyRedo) {
		m.successMessage = m.tr.T("status.redo")
	}
}

func (m *model) deleteSelection() {
	n := len(m.ed.scene.Selected())
	if n == 0 {
		m.successMessage = m.tr.T("status.none")
		return
	}
	if m.ed.ctrl.Key(scene.KeyDelete) {
		m.successMessage = m.tr.T("status.deleted", n)
	}
}
