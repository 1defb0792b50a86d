package main

import "skeyedit/internal/geom"

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
	} else {
		m.handleCursorMove(key, speed)
	}
	m.ed.ctrl.Move(m.cursorPoint())
}

func (m *model) handlePan(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.panX -= speed
	case "l", "right", "L", "shift+right":
		m.panX += speed
	case "k", "up", "K", "shift+up":
		m.panY -= speed
	case "j", "down", "J", "shift+down":
		m.panY += speed
	}
	m.clampPan()
}

func (m *model) handleCursorMove(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorX -= speed
	case "l", "right", "L", "shift+right":
		m.cursorX += speed
	case "k", "up", "K", "shift+up":
		m.cursorY -= speed
	case "j", "down", "J", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 5
	default:
		return 1
	}
}

// ensureCursorInBounds keeps the cursor inside the visible part of the
// sheet, scrolling the view when the cursor runs off an edge.
func (m *model) ensureCursorInBounds() {
	v := m.view()
	if m.cursorX < 0 {
		m.panX += m.cursorX
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.panY += m.cursorY
		m.cursorY = 0
	}
	if m.cursorX >= v.width {
		m.panX += m.cursorX - v.width + 1
		m.cursorX = v.width - 1
	}
	if m.cursorY >= v.height {
		m.panY += m.cursorY - v.height + 1
		m.cursorY = v.height - 1
	}
	before := [2]int{m.panX, m.panY}
	m.clampPan()
	m.cursorX += before[0] - m.panX
	m.cursorY += before[1] - m.panY
	if m.cursorX >= v.width {
		m.cursorX = v.width - 1
	}
	if m.cursorY >= v.height {
		m.cursorY = v.height - 1
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
}

func (m *model) clampPan() {
	v := m.view()
	g := m.ed.scene.Grid
	maxX := int(g.Width/cellWidth) + 1 - v.width
	maxY := int(g.Height/cellHeight) + 1 - v.height
	m.panX = clamp(m.panX, 0, maxX)
	m.panY = clamp(m.panY, 0, maxY)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// cursorPoint is the sheet position under the keyboard cursor.
func (m *model) cursorPoint() geom.Point {
	return m.view().toSheet(m.cursorX, m.cursorY)
}
