package main

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/i18n"
	"skeyedit/internal/logger"
	"skeyedit/internal/primitive"
	"skeyedit/internal/scene"
	"skeyedit/internal/skey"
)

// symbolStore is the part of the repository the editor needs.
type symbolStore interface {
	LoadSymbol(ctx context.Context, name string) (skey.Symbol, error)
	SaveSymbol(ctx context.Context, sym skey.Symbol, comment string) (int64, error)
	DeleteSymbol(ctx context.Context, name string) error
	ListSymbols(ctx context.Context) ([]skey.Symbol, error)
	LoadSpindle(ctx context.Context, name string) (skey.Symbol, error)
	SaveSpindle(ctx context.Context, sym skey.Symbol, comment string) (int64, error)
	ListSpindles(ctx context.Context) ([]skey.Symbol, error)
	SpindleGeometry(ctx context.Context, name string) ([]string, error)
}

// session is the symbol being edited. Every copy of the model shares it, so
// scene observers can mark it dirty.
type session struct {
	scene  *scene.Scene
	ctrl   *scene.Controller
	codec  codec.Codec
	symbol skey.Symbol
	stored bool
	dirty  bool

	connIndex    int
	polygonIndex int
}

func newSession(sym skey.Symbol, log *logger.Logger) *session {
	g := geom.DefaultGrid()
	s := scene.New(g, log.WithPrefix("scene"))
	ed := &session{
		scene:  s,
		ctrl:   scene.NewController(s, log.WithPrefix("controller")),
		codec:  codec.New(g),
		symbol: sym,
	}
	s.Subscribe(func() { ed.dirty = true })
	ed.applyConnection()
	return ed
}

func (ed *session) connectionType() skey.ConnectionType {
	return skey.ConnectionTypes[ed.connIndex]
}

// applyConnection tags new connection points with the chosen type and the
// symbol's spindle.
func (ed *session) applyConnection() {
	ed.ctrl.SetConnection(primitive.Connection{
		Type:    ed.connectionType().Code,
		Spindle: ed.symbol.Spindle,
	})
}

func (ed *session) name() string {
	if ed.symbol.Name == "" {
		return "untitled"
	}
	return ed.symbol.Name
}

type model struct {
	width      int
	height     int
	cursorX    int
	cursorY    int
	zPanMode   bool
	panX       int
	panY       int
	mode       Mode
	help       bool
	helpScroll int

	ed     *session
	store  symbolStore
	config *Config
	log    *logger.Logger
	tr     *i18n.Context

	catalog list.Model
	form    *metadataForm
	cmdline textinput.Model
	paste   textarea.Model

	confirmAction  ConfirmAction
	confirmName    string
	errorMessage   string
	successMessage string
}
