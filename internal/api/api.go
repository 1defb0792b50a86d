// Package api serves the symbol catalog read-only over HTTP.
package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	fiberlog "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/i18n"
	"skeyedit/internal/logger"
	"skeyedit/internal/render"
	"skeyedit/internal/skey"
	"skeyedit/internal/store"
)

const (
	previewSize    = 300
	maxPreviewSize = 2000
)

// Catalog is the part of the store the server reads from.
type Catalog interface {
	ListSymbols(ctx context.Context) ([]skey.Symbol, error)
	LoadSymbol(ctx context.Context, name string) (skey.Symbol, error)
	History(ctx context.Context, name string) ([]store.Transaction, error)
	Groups(ctx context.Context) ([]store.Group, error)
	ListSpindles(ctx context.Context) ([]skey.Symbol, error)
}

// ============================================================
// Catalog Handler
// ============================================================

type Handler struct {
	repo  Catalog
	log   *logger.Logger
	tr    *i18n.Context
	codec codec.Codec
}

func NewHandler(repo Catalog, log *logger.Logger, tr *i18n.Context) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	if tr == nil {
		tr = i18n.New("en")
	}
	return &Handler{repo: repo, log: log, tr: tr, codec: codec.Default()}
}

// NewApp builds the fiber app with every catalog route.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "skeyedit catalog",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(fiberlog.New(fiberlog.Config{
		Format:     "${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		Stream:     h.log.Writer(logger.LevelInfo),
	}))

	// ============================================================
	// Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	app.Get("/skeys", h.List)
	app.Get("/skeys/:name", h.Get)
	app.Get("/skeys/:name/history", h.History)
	app.Get("/skeys/:name/ascii", h.ASCII)
	app.Get("/skeys/:name/preview.png", h.Preview)
	app.Get("/skeys/:name/sheet.svg", h.Sheet)
	app.Get("/groups", h.Groups)
	app.Get("/spindles", h.Spindles)
	app.Get("/connection-types", h.ConnectionTypes)
	return app
}

type symbolPayload struct {
	Name        string   `json:"name"`
	Group       string   `json:"group"`
	Subgroup    string   `json:"subgroup"`
	Description string   `json:"description,omitempty"`
	Spindle     string   `json:"spindle,omitempty"`
	Orientation string   `json:"orientation"`
	FlowArrow   string   `json:"flow_arrow"`
	Dimensioned string   `json:"dimensioned"`
	Tracing     string   `json:"tracing"`
	Insulation  string   `json:"insulation"`
	Geometry    []string `json:"geometry,omitempty"`
}

func payload(s skey.Symbol) symbolPayload {
	return symbolPayload{
		Name:        s.Name,
		Group:       s.Group,
		Subgroup:    s.Subgroup,
		Description: s.Description,
		Spindle:     s.Spindle,
		Orientation: s.Orientation.String(),
		FlowArrow:   s.FlowArrow.String(),
		Dimensioned: s.Dimensioned.String(),
		Tracing:     s.Tracing.String(),
		Insulation:  s.Insulation.String(),
		Geometry:    s.Geometry,
	}
}

// List returns symbol metadata, optionally narrowed by group, subgroup and
// a q filter on any of the three names.
func (h *Handler) List(c fiber.Ctx) error {
	syms, err := h.repo.ListSymbols(context.Background())
	if err != nil {
		return h.fail(c, err)
	}
	group, sub := c.Query("group"), c.Query("subgroup")
	q := strings.ToLower(c.Query("q"))

	out := make([]symbolPayload, 0, len(syms))
	for _, s := range syms {
		if group != "" && s.Group != group || sub != "" && s.Subgroup != sub {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(s.Name+" "+s.Group+" "+s.Subgroup), q) {
			continue
		}
		out = append(out, payload(s))
	}
	return c.JSON(out)
}

func (h *Handler) Get(c fiber.Ctx) error {
	sym, err := h.symbol(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(payload(sym))
}

func (h *Handler) History(c fiber.Ctx) error {
	hist, err := h.repo.History(context.Background(), c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, len(hist))
	for i, t := range hist {
		out[i] = fiber.Map{
			"id":        t.ID,
			"user":      t.User,
			"action":    t.Action,
			"timestamp": t.Timestamp,
			"comment":   t.Comment,
			"session":   t.Session,
		}
	}
	return c.JSON(out)
}

func (h *Handler) ASCII(c fiber.Ctx) error {
	sym, err := h.symbol(c)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(h.codec.ExportASCII(sym) + "\n")
}

// Preview renders the isometric preview. w and h default to 300.
func (h *Handler) Preview(c fiber.Ctx) error {
	sym, err := h.symbol(c)
	if err != nil {
		return h.fail(c, err)
	}
	w, errW := size(c.Query("w"))
	ht, errH := size(c.Query("h"))
	if err := errors.Join(errW, errH); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	var buf bytes.Buffer
	if err := render.IsometricPNG(&buf, h.drawing(sym), w, ht); err != nil {
		return h.fail(c, err)
	}
	c.Set("Content-Type", "image/png")
	return c.Send(buf.Bytes())
}

func (h *Handler) Sheet(c fiber.Ctx) error {
	sym, err := h.symbol(c)
	if err != nil {
		return h.fail(c, err)
	}
	var buf bytes.Buffer
	render.SVG(&buf, h.drawing(sym))
	c.Set("Content-Type", "image/svg+xml")
	return c.Send(buf.Bytes())
}

// Groups returns the catalog tree with localized labels.
func (h *Handler) Groups(c fiber.Ctx) error {
	groups, err := h.repo.Groups(context.Background())
	if err != nil {
		return h.fail(c, err)
	}
	out := make([]fiber.Map, len(groups))
	for i, g := range groups {
		subs := make([]fiber.Map, len(g.Subgroups))
		for j, s := range g.Subgroups {
			subs[j] = fiber.Map{"key": s, "label": h.tr.Label("subgroup." + s)}
		}
		out[i] = fiber.Map{"key": g.Key, "label": h.tr.Label("group." + g.Key), "subgroups": subs}
	}
	return c.JSON(out)
}

func (h *Handler) Spindles(c fiber.Ctx) error {
	syms, err := h.repo.ListSpindles(context.Background())
	if err != nil {
		return h.fail(c, err)
	}
	names := make([]string, len(syms))
	for i, s := range syms {
		names[i] = s.Name
	}
	return c.JSON(names)
}

func (h *Handler) ConnectionTypes(c fiber.Ctx) error {
	out := make([]fiber.Map, len(skey.ConnectionTypes))
	for i, ct := range skey.ConnectionTypes {
		out[i] = fiber.Map{"code": ct.Code, "description": ct.Description}
	}
	return c.JSON(out)
}

// ============================================================
// Helpers
// ============================================================

func (h *Handler) symbol(c fiber.Ctx) (skey.Symbol, error) {
	return h.repo.LoadSymbol(context.Background(), c.Params("name"))
}

func (h *Handler) drawing(sym skey.Symbol) render.Drawing {
	ps, errs := h.codec.DecodeAll(sym.Geometry)
	for _, err := range errs {
		h.log.Warn("%s: skipping entry: %v", sym.Name, err)
	}
	return render.Static(sym.Name, geom.DefaultGrid(), ps)
}

func (h *Handler) fail(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": h.tr.T("error.not_found", c.Params("name"))})
	}
	h.log.Error("%s %s: %v", c.Method(), c.Path(), err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func size(text string) (int, error) {
	if text == "" {
		return previewSize, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 16 || n > maxPreviewSize {
		return 0, errors.New("size must be between 16 and " + strconv.Itoa(maxPreviewSize))
	}
	return n, nil
}

// Serve runs the app until ctx is done.
func Serve(ctx context.Context, app *fiber.App, addr string, log *logger.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info("serving catalog on %s", addr)
		errc <- app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return app.Shutdown()
	}
}
