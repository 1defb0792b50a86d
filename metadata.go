package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"skeyedit/internal/i18n"
	"skeyedit/internal/skey"
)

const (
	fieldName = iota
	fieldGroup
	fieldSubgroup
	fieldDesc
	fieldSpindle
	fieldConn
	fieldOrientation
	fieldFlow
	fieldDims
	fieldTracing
	fieldInsulation
	fieldCount
)

var fieldKeys = [fieldCount]string{
	"field.name", "field.group", "field.subgroup", "field.desc", "field.spindle", "field.conn",
	"field.orientation", "field.flow", "field.dims", "field.tracing", "field.insulation",
}

// metadataForm edits the symbol record, one text input per field.
type metadataForm struct {
	inputs [fieldCount]textinput.Model
	labels [fieldCount]string
	focus  int
}

func newMetadataForm(sym skey.Symbol, conn string, tr *i18n.Context) *metadataForm {
	f := &metadataForm{}
	values := [fieldCount]string{
		sym.Name, sym.Group, sym.Subgroup, sym.Description, sym.Spindle, conn,
		strconv.Itoa(int(sym.Orientation)),
		strconv.Itoa(int(sym.FlowArrow)),
		strconv.Itoa(int(sym.Dimensioned)),
		strconv.Itoa(int(sym.Tracing)),
		strconv.Itoa(int(sym.Insulation)),
	}
	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 64
		in.Width = 32
		in.SetValue(values[i])
		f.inputs[i] = in
		f.labels[i] = tr.Label(fieldKeys[i])
	}
	f.inputs[fieldName].CharLimit = 8
	f.inputs[fieldSpindle].CharLimit = 8
	f.inputs[fieldConn].Placeholder = "BW"
	f.inputs[fieldName].Focus()
	return f
}

func (f *metadataForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = (i + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

// Update moves between fields on tab and the arrow keys and hands every
// other key to the focused input.
func (f *metadataForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Apply returns sym with the form's values and the chosen connection code.
func (f *metadataForm) Apply(sym skey.Symbol) (skey.Symbol, string, error) {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

	sym.Name = strings.ToUpper(value(fieldName))
	sym.Group = skey.NormalizeKey(value(fieldGroup))
	sym.Subgroup = skey.NormalizeKey(value(fieldSubgroup))
	sym.Description = value(fieldDesc)
	sym.Spindle = strings.ToUpper(value(fieldSpindle))
	if err := sym.Validate(); err != nil {
		return sym, "", err
	}

	conn := strings.ToUpper(value(fieldConn))
	if conn != "" {
		if _, ok := skey.LookupConnectionType(conn); !ok {
			return sym, "", fmt.Errorf("unknown connection type %q", conn)
		}
	}

	var errs []error
	var err error
	if sym.Orientation, err = skey.ParseOrientation(value(fieldOrientation)); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", f.labels[fieldOrientation], err))
	}
	for _, sw := range []struct {
		field  int
		target *skey.TriState
	}{
		{fieldFlow, &sym.FlowArrow},
		{fieldDims, &sym.Dimensioned},
		{fieldTracing, &sym.Tracing},
		{fieldInsulation, &sym.Insulation},
	} {
		if *sw.target, err = skey.ParseTriState(value(sw.field)); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.labels[sw.field], err))
		}
	}
	return sym, conn, errors.Join(errs...)
}

var (
	formLabelStyle = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("244"))
	formFocusStyle = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("39")).Bold(true)
)

func (f *metadataForm) View() string {
	rows := make([]string, fieldCount)
	for i, in := range f.inputs {
		style := formLabelStyle
		if i == f.focus {
			style = formFocusStyle
		}
		rows[i] = style.Render(f.labels[i]) + in.View()
	}
	return strings.Join(rows, "\n")
}

func (m *model) openMetadata() {
	m.form = newMetadataForm(m.ed.symbol, m.ed.connectionType().Code, m.tr)
	m.mode = ModeMetadata
}

func (m model) updateMetadata(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.mode = ModeNormal
		return m, nil
	case "enter":
		sym, conn, err := m.form.Apply(m.ed.symbol)
		if errors.Is(err, skey.ErrEmptyName) {
			m.errorMessage = m.tr.T("error.empty")
			return m, nil
		}
		if err != nil {
			m.errorMessage = m.tr.T("error.generic", err)
			return m, nil
		}
		sym.Geometry = m.ed.symbol.Geometry
		m.ed.symbol = sym
		m.ed.dirty = true
		for i, ct := range skey.ConnectionTypes {
			if ct.Code == conn {
				m.ed.connIndex = i
			}
		}
		m.ed.applyConnection()
		m.form = nil
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	}
	return m, m.form.Update(msg)
}
