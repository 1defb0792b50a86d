package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"skeyedit/internal/geom"
	"skeyedit/internal/i18n"
	"skeyedit/internal/logger"
	"skeyedit/internal/primitive"
	"skeyedit/internal/scene"
	"skeyedit/internal/skey"
	"skeyedit/internal/store"
)

func testModel(t *testing.T) model {
	t.Helper()
	repo, db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "skeys.db"), "tester")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m := initialModel(defaultConfig(t.TempDir()), repo, logger.Discard(), i18n.New("en"))
	return send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func keys(s ...string) []tea.Msg {
	msgs := make([]tea.Msg, len(s))
	for i, k := range s {
		msgs[i] = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return msgs
}

func TestSheetFitsWindow(t *testing.T) {
	m := testModel(t)
	v := m.view()
	if v.width != 61 || v.height != 31 {
		t.Errorf("view %dx%d, want 61x31", v.width, v.height)
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestKeyboardDrawsLine(t *testing.T) {
	m := testModel(t)
	m.cursorX, m.cursorY = 10, 5
	m = send(m, keys("1", " ", "l", "l", "l", "l", "l", " ")...)

	got := m.ed.scene.Geometry()
	want := "Line: x1=-2.0 y1=2.0 x2=-1.5 y2=2.0"
	if len(got) != 1 || got[0] != want {
		t.Fatalf("Geometry = %v, want [%s]", got, want)
	}
	if !m.ed.dirty {
		t.Error("drawing did not mark the symbol modified")
	}
	if m.ed.ctrl.Tool() != primitive.ToolLine || m.ed.ctrl.State() != scene.StateIdle {
		t.Errorf("tool %v state %v after finalize", m.ed.ctrl.Tool(), m.ed.ctrl.State())
	}

	m = send(m, keys("u")...)
	if m.ed.scene.Len() != 0 || m.successMessage != m.tr.T("status.undo") {
		t.Errorf("after undo: len %d status %q", m.ed.scene.Len(), m.successMessage)
	}
	m = send(m, keys("U")...)
	if m.ed.scene.Len() != 1 {
		t.Errorf("after redo: len %d", m.ed.scene.Len())
	}
	m = send(m, keys("U")...)
	if m.successMessage != m.tr.T("status.nothing") {
		t.Errorf("empty redo status %q", m.successMessage)
	}
}

func TestMouseMovesSelection(t *testing.T) {
	m := testModel(t)
	m.ed.scene.Add(primitive.NewLine(geom.Pt(100, 100), geom.Pt(200, 100)))
	m = send(m, keys("0")...)

	row := func(r int) int { return r + headerHeight }
	m = send(m,
		tea.MouseMsg{X: 15, Y: row(5), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 15, Y: row(6), Action: tea.MouseActionMotion},
		tea.MouseMsg{X: 15, Y: row(6), Action: tea.MouseActionRelease},
	)

	ps := m.ed.scene.Primitives()
	if len(ps) != 1 {
		t.Fatalf("%d primitives", len(ps))
	}
	if a := ps[0].Geom.Points[0]; a != geom.Pt(100, 120) {
		t.Errorf("line starts at %v after the drag, want (100, 120)", a)
	}
	if !m.ed.scene.IsSelected(ps[0].ID) {
		t.Error("dragged line is not selected")
	}
	if m.ed.ctrl.State() != scene.StateIdle {
		t.Errorf("state %v after release", m.ed.ctrl.State())
	}

	// Presses outside the sheet do nothing.
	m = send(m, tea.MouseMsg{X: 100, Y: row(5), Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.ed.ctrl.State() != scene.StateIdle {
		t.Errorf("press outside the sheet started %v", m.ed.ctrl.State())
	}
}

func TestKeyboardDragHoldsUntilNextClick(t *testing.T) {
	m := testModel(t)
	m.ed.scene.Add(primitive.NewLine(geom.Pt(100, 100), geom.Pt(200, 100)))
	m = send(m, keys("0")...)
	m.cursorX, m.cursorY = 15, 5

	m = send(m, keys(" ", "j")...)
	if m.ed.ctrl.State() != scene.StateMovingSelection {
		t.Fatalf("state %v while holding", m.ed.ctrl.State())
	}
	m = send(m, keys(" ")...)
	if m.ed.ctrl.State() != scene.StateIdle {
		t.Fatalf("state %v after second click", m.ed.ctrl.State())
	}
	if a := m.ed.scene.Primitives()[0].Geom.Points[0]; a != geom.Pt(100, 120) {
		t.Errorf("line starts at %v, want (100, 120)", a)
	}
}

func TestRunCommand(t *testing.T) {
	m := testModel(t)

	m.runCommand("BY X 1")
	if m.successMessage != m.tr.T("status.none") {
		t.Errorf("BY without selection: %q", m.successMessage)
	}

	added := m.ed.scene.Add(primitive.NewLine(geom.Pt(200, 300), geom.Pt(400, 300)))
	m.ed.scene.Select(added[0].ID)

	m.runCommand("BY X 1")
	if got := m.ed.scene.Primitives()[0].Geom.Points; got[0] != geom.Pt(300, 300) || got[1] != geom.Pt(500, 300) {
		t.Errorf("after BY X 1: %v", got)
	}
	if m.successMessage != m.tr.T("cmd.moved", 1) {
		t.Errorf("BY status %q", m.successMessage)
	}

	m.runCommand("ROTATE")
	if got := m.ed.scene.Primitives()[0].Geom.Points; got[0].X != got[1].X {
		t.Errorf("after ROTATE the line is not vertical: %v", got)
	}

	m.runCommand("clr")
	if len(m.ed.scene.Selected()) != 0 {
		t.Error("CLR left a selection")
	}

	m.runCommand("HELP BY")
	if m.successMessage == "" {
		t.Error("HELP BY printed nothing")
	}

	m.runCommand("Circle")
	if m.ed.ctrl.Tool() != primitive.ToolCircle {
		t.Errorf("tool %v after :circle", m.ed.ctrl.Tool())
	}

	m.errorMessage = ""
	m.runCommand("zoom 2")
	if m.errorMessage == "" {
		t.Error("unknown command reported no error")
	}
}

func TestSaveAndLoad(t *testing.T) {
	m := testModel(t)
	m.ed.scene.Add(primitive.NewLine(geom.Pt(200, 300), geom.Pt(400, 300)))

	m.saveSymbol()
	if m.mode != ModeMetadata || m.errorMessage != m.tr.T("error.empty") {
		t.Fatalf("unnamed save: mode %v error %q", m.mode, m.errorMessage)
	}
	m.mode = ModeNormal

	m.ed.symbol.Name = "VALV"
	m.saveSymbol()
	if !m.ed.stored || m.ed.dirty {
		t.Fatalf("after save: stored %v dirty %v (%s)", m.ed.stored, m.ed.dirty, m.errorMessage)
	}

	m.newSymbol()
	if m.ed.scene.Len() != 0 || m.ed.symbol.Name != "" {
		t.Fatal("new symbol kept the old drawing")
	}
	m.loadSymbol("VALV")
	if m.ed.scene.Len() != 1 || m.ed.symbol.Name != "VALV" || m.ed.dirty {
		t.Errorf("after load: len %d name %q dirty %v", m.ed.scene.Len(), m.ed.symbol.Name, m.ed.dirty)
	}

	m.newSymbol()
	m.ed.symbol.Name = "SPGV"
	m.ed.scene.Add(primitive.NewLine(geom.Pt(300, 300), geom.Pt(300, 200)))
	m.saveSymbol()
	spindles, err := m.store.ListSpindles(context.Background())
	if err != nil || len(spindles) != 1 || spindles[0].Name != "SPGV" {
		t.Fatalf("ListSpindles = %v, %v", spindles, err)
	}
	m.loadSymbol("SPGV")
	if m.ed.scene.Len() != 1 {
		t.Errorf("spindle loaded with %d primitives", m.ed.scene.Len())
	}

	m.loadSymbol("NONE")
	if m.errorMessage != m.tr.T("error.not_found", "NONE") {
		t.Errorf("missing symbol error %q", m.errorMessage)
	}
}

func TestOpenOrCreate(t *testing.T) {
	m := testModel(t)
	m.openOrCreate(" gate ")
	if m.ed.symbol.Name != "GATE" || m.ed.stored {
		t.Errorf("new symbol %q stored %v", m.ed.symbol.Name, m.ed.stored)
	}
}

func TestQuitNeedsConfirmationWhenModified(t *testing.T) {
	m := testModel(t)
	m.ed.scene.Add(primitive.NewLine(geom.Pt(200, 300), geom.Pt(400, 300)))

	next, cmd := m.Update(keys("q")[0])
	m = next.(model)
	if cmd != nil || m.mode != ModeConfirm || m.confirmAction != ConfirmQuit {
		t.Fatalf("q on a modified symbol: mode %v action %v", m.mode, m.confirmAction)
	}
	m = send(m, keys("n")...)
	if m.mode != ModeNormal {
		t.Errorf("mode %v after declining", m.mode)
	}

	m.config.Confirmations = false
	if _, cmd := m.Update(keys("q")[0]); cmd == nil {
		t.Error("q without confirmations did not quit")
	}
}

func TestPasteGeometry(t *testing.T) {
	m := testModel(t)
	m.cursorX, m.cursorY = 30, 15
	m.pasteGeometry("Line: x1=-1.0 y1=0.0 x2=1.0 y2=0.0\n\nnot geometry\n")

	ps := m.ed.scene.Primitives()
	if len(ps) != 1 {
		t.Fatalf("%d primitives pasted, want 1", len(ps))
	}
	if got := ps[0].Geom.Points; got[0] != geom.Pt(200, 300) || got[1] != geom.Pt(400, 300) {
		t.Errorf("pasted line at %v", got)
	}
	if !m.ed.scene.IsSelected(ps[0].ID) {
		t.Error("pasted line is not selected")
	}
	m.undo()
	if m.ed.scene.Len() != 0 {
		t.Error("paste took more than one undo")
	}
}

func TestMetadataFormApply(t *testing.T) {
	tr := i18n.New("en")
	f := newMetadataForm(skey.Symbol{Name: "valv"}, "FL", tr)
	f.inputs[fieldGroup].SetValue("Valves")
	f.inputs[fieldOrientation].SetValue("2")
	f.inputs[fieldFlow].SetValue("on")

	sym, conn, err := f.Apply(skey.Symbol{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sym.Name != "VALV" || conn != "FL" {
		t.Errorf("name %q conn %q", sym.Name, conn)
	}
	if sym.Group != skey.NormalizeKey("Valves") {
		t.Errorf("group %q", sym.Group)
	}
	if sym.Orientation != skey.Reducers || sym.FlowArrow != skey.On {
		t.Errorf("orientation %v flow %v", sym.Orientation, sym.FlowArrow)
	}

	f.inputs[fieldConn].SetValue("ZZ")
	if _, _, err := f.Apply(skey.Symbol{}); err == nil {
		t.Error("unknown connection type accepted")
	}
	f.inputs[fieldConn].SetValue("FL")
	f.inputs[fieldTracing].SetValue("maybe")
	if _, _, err := f.Apply(skey.Symbol{}); err == nil {
		t.Error("bad switch value accepted")
	}
	f.inputs[fieldName].SetValue(" ")
	if _, _, err := f.Apply(skey.Symbol{}); !errors.Is(err, skey.ErrEmptyName) {
		t.Errorf("blank name error = %v", err)
	}
}

func TestMetadataFocusWraps(t *testing.T) {
	f := newMetadataForm(skey.Symbol{}, "", i18n.New("en"))
	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if f.focus != fieldCount-1 {
		t.Errorf("focus %d after shift+tab, want %d", f.focus, fieldCount-1)
	}
	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	if f.focus != 0 {
		t.Errorf("focus %d after tab, want 0", f.focus)
	}
}
