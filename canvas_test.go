package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/primitive"
	"skeyedit/internal/render"
	"skeyedit/internal/skey"
)

func TestLineRune(t *testing.T) {
	tests := []struct {
		d    geom.Point
		want rune
	}{
		{geom.Pt(0, 0), '·'},
		{geom.Pt(5, 0), '─'},
		{geom.Pt(-5, 1), '─'},
		{geom.Pt(0, 3), '│'},
		{geom.Pt(2, 2), '╲'},
		{geom.Pt(2, -2), '╱'},
	}
	for _, tt := range tests {
		if got := lineRune(tt.d); got != tt.want {
			t.Errorf("lineRune(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(6, 3)
	c.Line(geom.Pt(1, 1), geom.Pt(4, 1), 0, "")
	got := c.Plain()[1]
	if got != " ──── " {
		t.Errorf("row 1 = %q", got)
	}
	c.Set(-1, 0, 'x', "")
	c.Set(9, 9, 'x', "")
	if c.At(-1, 0) != 0 || c.At(0, 0) != ' ' || c.At(5, 2) != ' ' {
		t.Error("out-of-range Set changed the canvas")
	}
}

func TestDrawSheet(t *testing.T) {
	g := geom.DefaultGrid()
	ps := []primitive.Primitive{
		primitive.NewLine(geom.Pt(0, 200), geom.Pt(100, 200)),
		primitive.NewPoint(primitive.KindArrive, geom.Pt(100, 100), primitive.Connection{Type: "FL"}),
	}
	ps[0].ID, ps[1].ID = 1, 2
	d := render.Static("TEST", g, ps)
	d.Handles = []primitive.Handle{{Pos: geom.Pt(400, 400)}}

	v := fullView(g)
	c := drawSheet(d, v, nil)
	if c.width != 61 || c.height != 31 {
		t.Fatalf("canvas %dx%d, want 61x31", c.width, c.height)
	}
	if r := c.At(5, 10); r != '─' {
		t.Errorf("line cell = %q", r)
	}
	if r := c.At(10, 5); r != 'A' {
		t.Errorf("arrive point cell = %q", r)
	}
	if r := c.At(40, 20); r != '■' {
		t.Errorf("handle cell = %q", r)
	}
	if r := c.At(30, 15); r != '┼' {
		t.Errorf("center cell = %q", r)
	}
	if r := c.At(60, 30); r != '┘' {
		t.Errorf("corner cell = %q", r)
	}
	if r := c.At(60, 3); r != '│' {
		t.Errorf("edge cell = %q", r)
	}

	band := geom.RectFromCorners(geom.Pt(400, 100), geom.Pt(500, 200))
	c = drawSheet(d, v, &band)
	if r := c.At(45, 5); r != '┄' {
		t.Errorf("band cell = %q", r)
	}
}

func TestDrawPreviewShowsLines(t *testing.T) {
	ps := []primitive.Primitive{primitive.NewLine(geom.Pt(200, 300), geom.Pt(400, 300))}
	c := drawPreview(ps, geom.Pt(300, 300), 30, 12)
	joined := strings.Join(c.Plain(), "")
	if strings.TrimSpace(joined) == "" {
		t.Error("preview of a line is blank")
	}
	if empty := drawPreview(nil, geom.Pt(300, 300), 30, 12); strings.TrimSpace(strings.Join(empty.Plain(), "")) != "" {
		t.Error("preview of nothing is not blank")
	}
}

func TestWriteExport(t *testing.T) {
	g := geom.DefaultGrid()
	c := codec.New(g)
	sym := skey.Symbol{
		Name:     "VALV",
		Geometry: []string{"Line: x1=-1.0 y1=0.0 x2=1.0 y2=0.0"},
	}
	ps, errs := c.DecodeAll(sym.Geometry)
	if len(errs) > 0 {
		t.Fatalf("DecodeAll: %v", errs)
	}
	d := render.Static(sym.Name, g, ps)

	var buf bytes.Buffer
	if err := writeExport(&buf, ExportASCII, sym, d, c); err != nil {
		t.Fatalf("ascii: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "501") {
		t.Errorf("ascii export starts %q", firstLine(buf.String()))
	}

	buf.Reset()
	if err := writeExport(&buf, ExportSVG, sym, d, c); err != nil {
		t.Fatalf("svg: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Error("svg export has no <svg element")
	}

	buf.Reset()
	if err := writeExport(&buf, ExportTXT, sym, d, c); err != nil {
		t.Fatalf("txt: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 31 {
		t.Fatalf("txt export has %d lines, want 31", len(lines))
	}
	if !strings.Contains(lines[15], "─────") {
		t.Errorf("txt row 15 = %q", lines[15])
	}

	buf.Reset()
	if err := writeExport(&buf, ExportPNG, sym, d, c); err != nil {
		t.Fatalf("png: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("png export does not decode: %v", err)
	}
}

func TestParseExportFormat(t *testing.T) {
	for name, want := range map[string]ExportFormat{
		"png": ExportPNG, "ISO": ExportIsometric, "svg": ExportSVG, "asc": ExportASCII, "text": ExportTXT,
	} {
		if got, ok := parseExportFormat(name); !ok || got != want {
			t.Errorf("parseExportFormat(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := parseExportFormat("pdf"); ok {
		t.Error("pdf accepted")
	}
}

func TestConfigParse(t *testing.T) {
	home := t.TempDir()
	c := defaultConfig(home)
	c.parse(strings.NewReader(`# comment
db = ~/symbols.db
export_directory=~/out
lang = ru
addr = :9000
author = piping
confirm = false
nonsense
`), home)

	if want := filepath.Join(home, "symbols.db"); c.Database != want {
		t.Errorf("Database = %q, want %q", c.Database, want)
	}
	if want := filepath.Join(home, "out"); c.ExportDirectory != want {
		t.Errorf("ExportDirectory = %q, want %q", c.ExportDirectory, want)
	}
	if c.Language != "ru" || c.Listen != ":9000" || c.User != "piping" {
		t.Errorf("got language %q listen %q user %q", c.Language, c.Listen, c.User)
	}
	if c.Confirmations {
		t.Error("Confirmations still on")
	}
	if c.LogLevel != "info" {
		t.Errorf("LogLevel default = %q", c.LogLevel)
	}

	if got := c.GetExportPath("VALV.svg"); got != filepath.Join(home, "out", "VALV.svg") {
		t.Errorf("GetExportPath = %q", got)
	}
	if _, err := os.Stat(c.ExportDirectory); err != nil {
		t.Errorf("export directory not created: %v", err)
	}
}

func TestConfigEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SKEYEDIT_ADDR", ":4000")
	t.Setenv("SKEYEDIT_DB", "~/env.db")
	t.Setenv("SKEYEDIT_LOG_LEVEL", "")

	c := defaultConfig(home)
	c.applyEnv(home)
	if c.Listen != ":4000" {
		t.Errorf("Listen = %q", c.Listen)
	}
	if want := filepath.Join(home, "env.db"); c.Database != want {
		t.Errorf("Database = %q, want %q", c.Database, want)
	}
	if c.LogLevel != "info" {
		t.Errorf("empty variable overrode LogLevel: %q", c.LogLevel)
	}
}

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Line: a\r\nCircle\rEnd", "Line: a\nCircle\nEnd"},
		{"rtf", `{\rtf1\ansi Line: x1=1.0\par Circle}`, "Line: x1=1.0\nCircle"},
		{"html", "<div>Line: a</div><div>Circle &amp; more</div>", "Line: a\nCircle & more\n"},
		{"control", "Line\x07: a", "Line: a"},
	}
	for _, tt := range tests {
		if got := cleanClipboardText(tt.in); got != tt.want {
			t.Errorf("%s: cleanClipboardText = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
