package main

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

func newPasteArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Paste geometry strings, one per line. ctrl+d adds them at the cursor, esc cancels."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(60)
	ta.SetHeight(12)
	return ta
}

// openPaste shows the paste panel, the fallback when no system clipboard
// is available.
func (m *model) openPaste() {
	m.paste.SetValue("")
	m.paste.Focus()
	m.mode = ModePaste
}

func (m model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.paste.Blur()
		m.mode = ModeNormal
		return m, nil
	case "ctrl+d":
		text := m.paste.Value()
		m.paste.Blur()
		m.mode = ModeNormal
		m.pasteGeometry(cleanClipboardText(text))
		return m, nil
	}
	var cmd tea.Cmd
	m.paste, cmd = m.paste.Update(msg)
	return m, cmd
}
