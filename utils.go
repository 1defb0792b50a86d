package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"skeyedit/internal/primitive"
)

func (m *model) copySelection() {
	items := m.ed.scene.SelectedItems()
	if len(items) == 0 {
		m.successMessage = m.tr.T("status.none")
		return
	}
	ps := make([]primitive.Primitive, len(items))
	for i, p := range items {
		ps[i] = *p
	}
	lines := m.ed.codec.EncodeAll(ps)
	if err := clipboard.WriteAll(strings.Join(lines, "\n")); err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		return
	}
	m.successMessage = m.tr.T("status.copied", len(lines))
}

// pasteClipboard pastes geometry strings from the system clipboard. Without
// a usable clipboard it opens the paste panel instead.
func (m *model) pasteClipboard() {
	text, err := readClipboardText()
	if err != nil {
		m.log.Warn("clipboard: %v", err)
		m.openPaste()
		return
	}
	m.pasteGeometry(cleanClipboardText(text))
}

// pasteGeometry adds geometry strings with their relative origin at the
// cursor as one undoable step and selects what was added.
func (m *model) pasteGeometry(text string) {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	s := m.ed.scene
	ps := s.DecodeAt(lines, s.Grid.Snap(m.cursorPoint()))
	if len(ps) == 0 {
		m.successMessage = m.tr.T("status.nothing")
		return
	}
	added := s.Add(ps...)
	ids := make([]primitive.ID, len(added))
	for i, p := range added {
		ids[i] = p.ID
	}
	s.ClearSelection()
	s.Select(ids...)
	m.successMessage = m.tr.T("status.pasted", len(added))
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText drops rich-text wrapping and control characters and
// normalizes line endings.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	if strings.HasPrefix(text, "{\\rtf") {
		text = stripRTF(text)
	} else if isHTML(text) {
		text = stripHTML(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := strings.ReplaceAll(result.String(), "\r\n", "\n")
	return strings.ReplaceAll(normalized, "\r", "\n")
}

func isHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	return strings.HasPrefix(trimmed, "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div") || strings.Contains(text, "<br"))
}

func stripHTML(html string) string {
	html = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</div>", "\n", "</p>", "\n").Replace(html)
	var result strings.Builder
	inTag := false
	for _, r := range html {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&", "&quot;", "\"", "&#39;", "'", "&nbsp;", " ").Replace(result.String())
}

// stripRTF keeps the text of an RTF document: groups and control words go,
// \par becomes a newline and escaped braces and backslashes stay.
func stripRTF(text string) string {
	var result strings.Builder
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch r {
		case '{', '}':
			continue
		case '\\':
			if i+1 >= len(runes) {
				continue
			}
			next := runes[i+1]
			if next == '\\' || next == '{' || next == '}' {
				result.WriteRune(next)
				i++
				continue
			}
			start := i + 1
			for i+1 < len(runes) && isLetter(runes[i+1]) {
				i++
			}
			word := string(runes[start : i+1])
			for i+1 < len(runes) && (runes[i+1] == '-' || runes[i+1] >= '0' && runes[i+1] <= '9') {
				i++
			}
			if i+1 < len(runes) && runes[i+1] == ' ' {
				i++
			}
			if word == "par" || word == "line" {
				result.WriteByte('\n')
			}
		default:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
}
