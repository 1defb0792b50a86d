package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"skeyedit/internal/skey"
	"skeyedit/internal/store"
)

type symbolItem struct {
	sym     skey.Symbol
	spindle bool
	detail  string
}

func (i symbolItem) Title() string {
	if i.spindle {
		return i.sym.Name + " (spindle)"
	}
	return i.sym.Name
}

func (i symbolItem) Description() string { return i.detail }

func (i symbolItem) FilterValue() string {
	return i.sym.Name + " " + i.sym.Group + " " + i.sym.Subgroup + " " + i.sym.Description
}

func newCatalogList(title string) list.Model {
	d := list.NewDefaultDelegate()
	l := list.New(nil, d, 0, 0)
	l.Title = title
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	return l
}

// openCatalog lists the stored symbols and spindles.
func (m *model) openCatalog() {
	ctx := context.Background()
	syms, err := m.store.ListSymbols(ctx)
	if err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		return
	}
	spindles, err := m.store.ListSpindles(ctx)
	if err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		return
	}

	items := make([]list.Item, 0, len(syms)+len(spindles))
	for _, s := range syms {
		detail := m.tr.Label("group."+s.Group) + " / " + m.tr.Label("subgroup."+s.Subgroup)
		items = append(items, symbolItem{sym: s, detail: detail})
	}
	for _, s := range spindles {
		items = append(items, symbolItem{sym: s, spindle: true, detail: s.Description})
	}
	m.catalog.SetItems(items)
	m.catalog.SetSize(m.width, m.height-headerHeight-footerHeight)
	m.mode = ModeCatalog
}

func (m model) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.catalog.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.catalog, cmd = m.catalog.Update(msg)
		return m, cmd
	}
	item, selected := m.catalog.SelectedItem().(symbolItem)
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
		return m, nil
	case "enter":
		if !selected {
			return m, nil
		}
		if m.ed.dirty && m.config.Confirmations {
			m.confirm(ConfirmOpenSymbol, item.sym.Name)
			return m, nil
		}
		m.loadSymbol(item.sym.Name)
		m.mode = ModeNormal
		return m, nil
	case "D", "delete":
		if selected && !item.spindle {
			m.confirm(ConfirmDeleteSymbol, item.sym.Name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

// startSession replaces the symbol being edited.
func (m *model) startSession(sym skey.Symbol, stored bool) {
	conn := 0
	if m.ed != nil {
		conn = m.ed.connIndex
	}
	m.ed = newSession(sym, m.log)
	m.ed.stored = stored
	m.ed.connIndex = conn
	m.ed.applyConnection()
	st := m.store
	m.ed.ctrl.SetSpindleLookup(func(name string) ([]string, error) {
		return st.SpindleGeometry(context.Background(), name)
	})
	m.ed.dirty = false
}

// loadSymbol opens a stored symbol, or a stored spindle when no symbol has
// that name.
func (m *model) loadSymbol(name string) {
	ctx := context.Background()
	sym, err := m.store.LoadSymbol(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		sym, err = m.store.LoadSpindle(ctx, name)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.errorMessage = m.tr.T("error.not_found", name)
		} else {
			m.errorMessage = m.tr.T("error.generic", err)
		}
		return
	}

	m.startSession(sym, true)
	errs := m.ed.scene.Load(sym.Geometry)
	m.ed.dirty = false
	m.successMessage = m.tr.T("status.loaded", sym.Name, m.ed.scene.Len())
	if len(errs) > 0 {
		m.errorMessage = m.tr.T("status.skipped", len(errs))
	}
	m.log.Info("loaded %s with %d primitives", sym.Name, m.ed.scene.Len())
}

// saveSymbol stores the symbol being edited as a new transaction. Names
// marking spindles go to the spindle tables.
func (m *model) saveSymbol() {
	sym := m.ed.symbol
	sym.Geometry = m.ed.scene.Geometry()
	if err := sym.Validate(); err != nil {
		m.errorMessage = m.tr.T("error.empty")
		m.openMetadata()
		return
	}

	save := m.store.SaveSymbol
	if sym.IsSpindle() {
		save = m.store.SaveSpindle
	}
	if _, err := save(context.Background(), sym, ""); err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		m.log.Error("save %s: %v", sym.Name, err)
		return
	}
	m.ed.symbol = sym
	m.ed.stored = true
	m.ed.dirty = false
	m.successMessage = m.tr.T("status.saved", sym.Name)
	m.log.Info("saved %s with %d geometry entries", sym.Name, len(sym.Geometry))
}

func (m *model) deleteSymbol(name string) {
	if err := m.store.DeleteSymbol(context.Background(), name); err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		return
	}
	if m.ed.symbol.Name == name {
		m.ed.stored = false
		m.ed.dirty = true
	}
	m.log.Info("deleted %s", name)
	m.openCatalog()
}
