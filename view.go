package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"skeyedit/internal/geom"
	"skeyedit/internal/render"
	"skeyedit/internal/scene"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol)
)

const colorCursor = "214"

var cursorRunes = map[scene.Cursor]rune{
	scene.CursorDefault:   '█',
	scene.CursorArrow:     '▲',
	scene.CursorCrosshair: '╋',
	scene.CursorMove:      '✥',
}

func (m model) showPreview() bool {
	return m.width >= previewWidth+40
}

func (m model) bodyHeight() int {
	return max(1, m.height-headerHeight-footerHeight)
}

// view is the part of the sheet that fits next to the preview panel.
func (m model) view() sheetView {
	g := m.ed.scene.Grid
	w := m.width
	if m.showPreview() {
		w -= previewWidth + 1
	}
	w = clamp(w, 1, int(g.Width/cellWidth)+1)
	h := clamp(m.bodyHeight(), 1, int(g.Height/cellHeight)+1)
	return sheetView{panX: m.panX, panY: m.panY, width: w, height: h}
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var body string
	switch m.mode {
	case ModeCatalog:
		body = m.catalog.View()
	case ModeMetadata:
		body = boxStyle.Render(titleStyle.Render(m.tr.T("panel.metadata")) + "\n\n" + m.form.View())
	case ModePaste:
		body = boxStyle.Render(m.paste.View())
	default:
		body = m.sheetPanel()
	}
	body = lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), body, m.statusLine())
}

func (m model) headerView() string {
	name := m.ed.name()
	if m.ed.dirty {
		name += " [" + m.tr.T("status.modified") + "]"
	}
	ct := m.ed.connectionType()
	right := dimStyle.Render(fmt.Sprintf(" %s | %s ", m.tr.T("status.tool", m.ed.ctrl.Tool()), ct.Code))
	return titleStyle.Render(" "+m.tr.T("app.title")+" ") + " " + name + right
}

func (m model) sheetPanel() string {
	v := m.view()
	d := render.FromScene(m.ed.scene, m.ed.symbol.Name)
	var band *geom.Rect
	if r, ok := m.ed.ctrl.Band(); ok {
		band = &r
	}
	c := drawSheet(d, v, band)
	if m.mode == ModeNormal {
		c.Set(m.cursorX, m.cursorY, cursorRunes[m.ed.ctrl.Cursor()], colorCursor)
	}
	sheet := strings.Join(c.Render(), "\n")
	if !m.showPreview() {
		return sheet
	}

	inner := previewWidth - 2
	h := clamp(m.bodyHeight()-4, 4, 14)
	iso := drawPreview(d.Primitives, d.Grid.Center(), inner, h)
	preview := panelStyle.Width(inner).Render(
		titleStyle.Render(m.tr.T("panel.preview")) + "\n" + strings.Join(iso.Render(), "\n"))
	keys := dimStyle.Width(previewWidth).Render(m.tr.T("help.keys"))
	side := lipgloss.JoinVertical(lipgloss.Left, preview, keys)
	return lipgloss.JoinHorizontal(lipgloss.Top, sheet, " ", side)
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeCommand:
		return m.cmdline.View()
	case ModeConfirm:
		return titleStyle.Render(m.confirmPrompt())
	}

	rel := m.ed.scene.Grid.ToRelative(m.ed.scene.Grid.Snap(m.ed.ctrl.Pointer()))
	status := fmt.Sprintf("%s | (%.1f, %.1f)", m.ed.ctrl.State(), rel.X, rel.Y)
	if m.zPanMode {
		status += " | PAN"
	}
	if n := len(m.ed.scene.Selected()); n > 0 {
		status += fmt.Sprintf(" | %d selected", n)
	}
	status = dimStyle.Render(status)
	if m.successMessage != "" {
		status += " | " + okStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render(m.errorMessage)
	} else if m.successMessage == "" {
		status += dimStyle.Render(" | ? for help | q to quit")
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(status)
}

var helpLines = []string{
	"Skey editor help",
	"================",
	"",
	"Navigation:",
	"  h/←/j/↓/k/↑/l/→  Move the cursor one cell (10px across, 20px down)",
	"  Shift+h/j/k/l    Move the cursor five cells",
	"  z                Toggle pan mode: the same keys scroll the sheet",
	"  Mouse            Left button presses, drags and releases; right button finishes polylines",
	"",
	"Tools:",
	"  0 select   1 line   2 polyline   3 orthogonal polyline   4 rectangle   5 square",
	"  6 circle   7 diamond   8 triangle   9 cap   g pentagon/hexagon/octagon/dodecagon",
	"  a arrive point   v leave point   t tee point   s spindle point   M move",
	"  c                Cycle the connection type for new points",
	"",
	"Editing:",
	"  Space            Click at the cursor. A click that grabs something holds it until the next click",
	"  Enter            Finish a polyline",
	"  Esc              Cancel the current gesture, drop the tool and clear the selection",
	"  x/Delete         Delete the selection",
	"  u/Ctrl+Z         Undo",
	"  U/Ctrl+Y         Redo",
	"  Ctrl+A           Select everything",
	"  R                Rotate the selection 90° clockwise",
	"  Ctrl+C/Ctrl+V    Copy the selection as geometry strings / paste them at the cursor",
	"  P                Paste geometry strings by hand",
	"",
	"Command line (:):",
	"  BY X 1 Y -0.5    Move the selection in relative units",
	"  ROTATE [angle]   Rotate the selection by a multiple of 90°",
	"  CLR              Clear the selection",
	"  HELP [command]   Show command help",
	"",
	"Symbols:",
	"  n                Start a new symbol",
	"  o                Open the symbol catalog (/ filters, Enter opens, D deletes)",
	"  m                Edit the symbol properties",
	"  Ctrl+S           Save",
	"  e                Export: sheet PNG, isometric PNG, SVG, legacy ASCII or text",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q                Quit",
}

func (m model) helpView() string {
	visibleHeight := max(1, m.height-1)
	start := min(m.helpScroll, max(0, len(helpLines)-visibleHeight))
	end := min(start+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[start:end], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		start+1, end, len(helpLines))
	return result + "\n" + dimStyle.Render(statusLine)
}
