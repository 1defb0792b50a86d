package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/render"
	"skeyedit/internal/skey"
)

func parseExportFormat(name string) (ExportFormat, bool) {
	switch strings.ToLower(name) {
	case "png", "sheet":
		return ExportPNG, true
	case "iso", "isometric", "preview":
		return ExportIsometric, true
	case "svg":
		return ExportSVG, true
	case "ascii", "skey", "asc":
		return ExportASCII, true
	case "txt", "text":
		return ExportTXT, true
	}
	return 0, false
}

// fullView shows the whole sheet, edge included.
func fullView(g geom.Grid) sheetView {
	return sheetView{width: int(g.Width/cellWidth) + 1, height: int(g.Height/cellHeight) + 1}
}

// writeExport writes the symbol in one export format. d is the drawing of
// the symbol's geometry.
func writeExport(w io.Writer, format ExportFormat, sym skey.Symbol, d render.Drawing, c codec.Codec) error {
	switch format {
	case ExportPNG:
		return render.SheetPNG(w, d)
	case ExportIsometric:
		return render.IsometricPNG(w, d, isoPreviewPx, isoPreviewPx)
	case ExportSVG:
		render.SVG(w, d)
		return nil
	case ExportASCII:
		_, err := io.WriteString(w, c.ExportASCII(sym)+"\n")
		return err
	case ExportTXT:
		for _, line := range drawSheet(d, fullView(d.Grid), nil).Plain() {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown export format %d", format)
}

func exportFile(filename string, format ExportFormat, sym skey.Symbol, d render.Drawing, c codec.Codec) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writeExport(file, format, sym, d, c); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// exportSymbol writes the symbol being edited to the export directory.
func (m *model) exportSymbol(format ExportFormat) {
	sym := m.ed.symbol
	sym.Geometry = m.ed.scene.Geometry()
	d := render.Static(sym.Name, m.ed.scene.Grid, m.ed.scene.Primitives())

	filename := m.config.GetExportPath(m.ed.name() + exportExtensions[format])
	if err := exportFile(filename, format, sym, d, m.ed.codec); err != nil {
		m.errorMessage = m.tr.T("error.generic", err)
		m.log.Error("export %s: %v", filename, err)
		return
	}
	m.successMessage = m.tr.T("status.exported", filename)
	m.log.Info("exported %s", filename)
}
