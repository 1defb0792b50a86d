package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"skeyedit/internal/primitive"
	"skeyedit/internal/scene"
	"skeyedit/internal/skey"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.catalog.SetSize(msg.Width, msg.Height-headerHeight-footerHeight)
		m.paste.SetWidth(min(msg.Width-2, 100))
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		if m.mode == ModeNormal && !m.help {
			m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeCommand:
		m.cmdline, cmd = m.cmdline.Update(msg)
	case ModePaste:
		m.paste, cmd = m.paste.Update(msg)
	case ModeCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
	case ModeMetadata:
		if m.form != nil {
			f := m.form
			f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		}
	}
	return m, cmd
}

// handleMouse maps terminal cells onto sheet pixels for the controller.
// Presses outside the sheet are ignored; motion and releases are clamped to
// its edge so a drag that leaves the panel still ends.
func (m *model) handleMouse(msg tea.MouseMsg) {
	v := m.view()
	col, row := msg.X, msg.Y-headerHeight
	inside := col >= 0 && row >= 0 && col < v.width && row < v.height
	col = clamp(col, 0, v.width-1)
	row = clamp(row, 0, v.height-1)
	pt := v.toSheet(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if !inside {
			return
		}
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.cursorX, m.cursorY = col, row
			m.ed.ctrl.Press(pt, scene.ButtonLeft)
		case tea.MouseButtonRight:
			m.ed.ctrl.Press(pt, scene.ButtonRight)
		case tea.MouseButtonWheelUp:
			m.panY--
			m.clampPan()
		case tea.MouseButtonWheelDown:
			m.panY++
			m.clampPan()
		}
	case tea.MouseActionMotion:
		if inside {
			m.cursorX, m.cursorY = col, row
		}
		m.ed.ctrl.Move(pt)
	case tea.MouseActionRelease:
		m.ed.ctrl.Release(pt, scene.ButtonLeft)
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.help {
		switch key {
		case "esc", "q", "?":
			m.help = false
			m.helpScroll = 0
		case "j", "down":
			m.helpScroll++
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		}
		return m, nil
	}

	switch m.mode {
	case ModeCommand:
		return m.updateCommand(msg)
	case ModeCatalog:
		return m.updateCatalog(msg)
	case ModeMetadata:
		return m.updateMetadata(msg)
	case ModePaste:
		return m.updatePaste(msg)
	case ModeConfirm:
		return m.updateConfirm(msg)
	}

	m.errorMessage = ""
	m.successMessage = ""

	if t, ok := toolKeys[key]; ok {
		m.selectTool(t)
		return m, nil
	}

	switch key {
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"H", "J", "K", "L", "shift+left", "shift+right", "shift+up", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "z":
		m.zPanMode = !m.zPanMode
	case " ":
		m.click()
	case "enter":
		m.ed.ctrl.Key(scene.KeyEnter)
	case "esc":
		m.ed.ctrl.Key(scene.KeyEscape)
		m.zPanMode = false
	case "x", "delete":
		m.deleteSelection()
	case "ctrl+z", "u":
		m.undo()
	case "ctrl+y", "U":
		m.redo()
	case "ctrl+a":
		m.ed.ctrl.Key(scene.KeySelectAll)
	case "g":
		m.ed.polygonIndex = (m.ed.polygonIndex + 1) % len(polygonCycle)
		m.selectTool(polygonCycle[m.ed.polygonIndex])
	case "c":
		m.ed.connIndex = (m.ed.connIndex + 1) % len(skey.ConnectionTypes)
		m.ed.applyConnection()
		ct := m.ed.connectionType()
		m.successMessage = m.tr.T("status.connection", ct.Code, ct.Description)
	case "R":
		m.runCommand("ROTATE")
	case ":":
		return m, m.openCommand()
	case "ctrl+s":
		m.saveSymbol()
	case "o":
		m.openCatalog()
	case "n":
		if m.ed.dirty && m.config.Confirmations {
			m.confirm(ConfirmNewSymbol, "")
		} else {
			m.newSymbol()
		}
	case "m":
		m.openMetadata()
	case "ctrl+c":
		m.copySelection()
	case "ctrl+v":
		m.pasteClipboard()
	case "P":
		m.openPaste()
	case "e":
		m.confirm(ConfirmChooseExportType, "")
	case "?":
		m.help = true
	case "q":
		if m.ed.dirty && m.config.Confirmations {
			m.confirm(ConfirmQuit, "")
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *model) selectTool(t primitive.Tool) {
	m.ed.ctrl.SelectTool(t)
	m.ed.ctrl.Move(m.cursorPoint())
	m.successMessage = m.tr.T("status.tool", t)
}

// click presses at the keyboard cursor. A press that starts a drag holds it
// until the next click, so cursor keys can carry the drag.
func (m *model) click() {
	pt := m.cursorPoint()
	switch m.ed.ctrl.State() {
	case scene.StateMovingSelection, scene.StateDraggingHandle, scene.StateSelectingRegion:
		m.ed.ctrl.Release(pt, scene.ButtonLeft)
	default:
		m.ed.ctrl.Press(pt, scene.ButtonLeft)
	}
}

func (m *model) newSymbol() {
	m.startSession(skey.Symbol{}, false)
	m.successMessage = m.tr.T("status.new")
}

func (m *model) confirm(action ConfirmAction, name string) {
	m.confirmAction = action
	m.confirmName = name
	m.mode = ModeConfirm
}

var exportKeys = map[string]ExportFormat{
	"p": ExportPNG,
	"i": ExportIsometric,
	"s": ExportSVG,
	"a": ExportASCII,
	"t": ExportTXT,
}

func (m model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if m.confirmAction == ConfirmChooseExportType {
		m.mode = ModeNormal
		if format, ok := exportKeys[key]; ok {
			m.exportSymbol(format)
		}
		return m, nil
	}

	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmNewSymbol:
			m.newSymbol()
		case ConfirmOpenSymbol:
			m.loadSymbol(m.confirmName)
		case ConfirmDeleteSymbol:
			m.deleteSymbol(m.confirmName)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		if m.confirmAction == ConfirmOpenSymbol || m.confirmAction == ConfirmDeleteSymbol {
			m.mode = ModeCatalog
		}
	}
	return m, nil
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return m.tr.T("confirm.quit")
	case ConfirmNewSymbol:
		return m.tr.T("confirm.new")
	case ConfirmOpenSymbol:
		return m.tr.T("confirm.open", m.confirmName)
	case ConfirmDeleteSymbol:
		return m.tr.T("confirm.delete", m.confirmName)
	case ConfirmChooseExportType:
		return m.tr.T("confirm.export")
	}
	return ""
}
