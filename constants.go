package main

import "skeyedit/internal/primitive"

type Mode int

const (
	ModeNormal Mode = iota
	ModeCommand
	ModeCatalog
	ModeMetadata
	ModePaste
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewSymbol
	ConfirmOpenSymbol
	ConfirmDeleteSymbol
	ConfirmChooseExportType
)

type ExportFormat int

const (
	ExportPNG ExportFormat = iota
	ExportIsometric
	ExportSVG
	ExportASCII
	ExportTXT
)

var exportExtensions = map[ExportFormat]string{
	ExportPNG:       ".png",
	ExportIsometric: "_iso.png",
	ExportSVG:       ".svg",
	ExportASCII:     ".skey",
	ExportTXT:       ".txt",
}

// One terminal cell covers one snap step across and two down.
const (
	cellWidth  = 10.0
	cellHeight = 20.0
)

const (
	headerHeight = 1
	footerHeight = 1
	previewWidth = 34
	isoPreviewPx = 300
)

var toolKeys = map[string]primitive.Tool{
	"0": primitive.ToolSelect,
	"1": primitive.ToolLine,
	"2": primitive.ToolPolyline,
	"3": primitive.ToolOrthoPolyline,
	"4": primitive.ToolRectangle,
	"5": primitive.ToolSquare,
	"6": primitive.ToolCircle,
	"7": primitive.ToolDiamond,
	"8": primitive.ToolTriangle,
	"9": primitive.ToolCap,
	"a": primitive.ToolArrive,
	"v": primitive.ToolLeave,
	"t": primitive.ToolTee,
	"s": primitive.ToolSpindle,
	"M": primitive.ToolMove,
}

// polygonCycle is the order "g" steps through the regular polygon tools.
var polygonCycle = []primitive.Tool{
	primitive.ToolPentagon,
	primitive.ToolHexagon,
	primitive.ToolOctagon,
	primitive.ToolDodecagon,
}
