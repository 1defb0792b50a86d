package main

import (
	"errors"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"skeyedit/internal/command"
	"skeyedit/internal/primitive"
)

func newCommandLine() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 128
	ti.Placeholder = "BY X 1 | ROTATE 90 | CLR | HELP"
	return ti
}

func (m *model) openCommand() tea.Cmd {
	m.cmdline.SetValue("")
	m.mode = ModeCommand
	return m.cmdline.Focus()
}

func (m model) updateCommand(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.cmdline.Blur()
		m.mode = ModeNormal
		return m, nil
	case "enter":
		line := m.cmdline.Value()
		m.cmdline.Blur()
		m.mode = ModeNormal
		m.runCommand(line)
		return m, nil
	}
	var cmd tea.Cmd
	m.cmdline, cmd = m.cmdline.Update(msg)
	return m, cmd
}

// runCommand executes one command line against the selection. A bare tool
// name such as "circle" selects that tool.
func (m *model) runCommand(line string) {
	cmd, err := command.Parse(line)
	if errors.Is(err, command.ErrUnknown) {
		if t, ok := primitive.ParseTool(line); ok {
			m.selectTool(t)
			return
		}
	}
	if err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		return
	}
	m.log.Debug("command %s", line)

	n := len(m.ed.scene.Selected())
	switch cmd.Kind {
	case command.KindBy:
		if n == 0 {
			m.successMessage = m.tr.T("status.none")
			return
		}
		if m.ed.ctrl.MoveSelectionBy(cmd.Delta(m.ed.scene.Grid.StepSize())) {
			m.successMessage = m.tr.T("cmd.moved", n)
		} else {
			m.successMessage = m.tr.T("status.nothing")
		}
	case command.KindRotate:
		if n == 0 {
			m.successMessage = m.tr.T("status.none")
			return
		}
		if m.ed.ctrl.RotateSelection(cmd.QuarterTurns()) {
			m.successMessage = m.tr.T("cmd.rotated", n, cmd.Angle)
		} else {
			m.successMessage = m.tr.T("status.nothing")
		}
	case command.KindClear:
		m.ed.scene.ClearSelection()
		m.successMessage = m.tr.T("cmd.cleared")
	case command.KindHelp:
		m.successMessage = command.Help(cmd.Topic)
	}
}
