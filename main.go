package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"skeyedit/internal/api"
	"skeyedit/internal/codec"
	"skeyedit/internal/geom"
	"skeyedit/internal/i18n"
	"skeyedit/internal/importer"
	"skeyedit/internal/logger"
	"skeyedit/internal/render"
	"skeyedit/internal/skey"
	"skeyedit/internal/store"
)

const usage = `usage:
  skeyedit [name]                          edit symbols in the terminal
  skeyedit serve                           serve the catalog over HTTP
  skeyedit import <file>...                import legacy .skey/.asc/.txt/.idf files
  skeyedit export <name> [format] [file]   export png, iso, svg, ascii or txt (default ascii)
  skeyedit watch [dir]                     import files dropped into dir`

func main() {
	cfg := loadConfig()
	args := os.Args[1:]
	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	var err error
	switch command {
	case "serve":
		err = runServe(cfg)
	case "import":
		err = runImport(cfg, args[1:])
	case "export":
		err = runExport(cfg, args[1:])
	case "watch":
		err = runWatch(cfg, args[1:])
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		err = runEditor(cfg, args)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "skeyedit:", err)
		os.Exit(1)
	}
}

func initialModel(cfg *Config, st symbolStore, log *logger.Logger, tr *i18n.Context) model {
	m := model{
		store:   st,
		config:  cfg,
		log:     log,
		tr:      tr,
		catalog: newCatalogList(tr.T("panel.catalog")),
		cmdline: newCommandLine(),
		paste:   newPasteArea(),
	}
	m.startSession(skey.Symbol{}, false)
	return m
}

func runEditor(cfg *Config, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the editor needs a terminal; see skeyedit help")
	}
	log, closeLog, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	repo, db, err := openStore(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m := initialModel(cfg, repo, log, i18n.New(cfg.Language))
	if len(args) > 0 {
		m.openOrCreate(args[0])
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

// openOrCreate loads a stored symbol, or starts a new one under that name.
func (m *model) openOrCreate(name string) {
	name = strings.ToUpper(strings.TrimSpace(name))
	_, errSym := m.store.LoadSymbol(context.Background(), name)
	_, errSpin := m.store.LoadSpindle(context.Background(), name)
	if errors.Is(errSym, store.ErrNotFound) && errors.Is(errSpin, store.ErrNotFound) {
		m.startSession(skey.Symbol{Name: name}, false)
		m.successMessage = m.tr.T("status.new")
		return
	}
	m.loadSymbol(name)
}

func runServe(cfg *Config) error {
	log := stderrLogger(cfg)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	app := api.NewApp(api.NewHandler(repo, log.WithPrefix("api"), i18n.New(cfg.Language)))
	return api.Serve(ctx, app, cfg.Listen, log)
}

func runImport(cfg *Config, files []string) error {
	if len(files) == 0 {
		return errors.New("import needs at least one file")
	}
	log := stderrLogger(cfg)
	tr := i18n.New(cfg.Language)
	desc, err := loadDescriptions(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	repo, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var saved, failed int
	for _, file := range files {
		done := log.Step("import " + filepath.Base(file))
		res, err := importer.ImportFile(file, desc)
		if err != nil {
			log.Error("%s: %v", file, err)
			failed++
			continue
		}
		for _, e := range res.Errors {
			log.Warn("%s: %v", file, e)
		}
		s, f := saveImported(ctx, repo, res.Symbols, "imported from "+filepath.Base(file), log)
		saved += s
		failed += f + len(res.Errors)
		done()
	}
	log.Info("%s", tr.T("status.imported", saved, failed))
	return nil
}

func runWatch(cfg *Config, args []string) error {
	dir := cfg.ImportDirectory
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return errors.New("watch needs a directory or import_directory in ~/.skeyeditrc")
	}
	log := stderrLogger(cfg)
	desc, err := loadDescriptions(cfg)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Info("watching %s", dir)
	err = importer.Watch(ctx, dir, log.WithPrefix("watch"), func(path string) {
		res, err := importer.ImportFile(path, desc)
		if err != nil {
			log.Error("%s: %v", path, err)
			return
		}
		for _, e := range res.Errors {
			log.Warn("%s: %v", path, e)
		}
		saved, _ := saveImported(ctx, repo, res.Symbols, "dropped "+filepath.Base(path), log)
		log.Info("%s: %d symbols saved", filepath.Base(path), saved)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runExport(cfg *Config, args []string) error {
	if len(args) == 0 {
		return errors.New("export needs a symbol name")
	}
	name := strings.ToUpper(args[0])
	format := ExportASCII
	if len(args) > 1 {
		f, ok := parseExportFormat(args[1])
		if !ok {
			return fmt.Errorf("unknown export format %q", args[1])
		}
		format = f
	}
	filename := cfg.GetExportPath(name + exportExtensions[format])
	if len(args) > 2 {
		filename = args[2]
	}

	log := stderrLogger(cfg)
	ctx := context.Background()
	repo, db, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	sym, err := repo.LoadSymbol(ctx, name)
	if errors.Is(err, store.ErrNotFound) {
		sym, err = repo.LoadSpindle(ctx, name)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	c := codec.Default()
	ps, errs := c.DecodeAll(sym.Geometry)
	for _, e := range errs {
		log.Warn("%s: skipping entry: %v", name, e)
	}
	d := render.Static(sym.Name, geom.DefaultGrid(), ps)
	if err := exportFile(filename, format, sym, d, c); err != nil {
		return err
	}
	log.Info("exported %s to %s", name, filename)
	return nil
}

// saveImported stores imported symbols, spindles by their name, and reports
// how many were saved and how many failed.
func saveImported(ctx context.Context, st symbolStore, syms []skey.Symbol, comment string, log *logger.Logger) (saved, failed int) {
	for _, sym := range syms {
		save := st.SaveSymbol
		if sym.IsSpindle() {
			save = st.SaveSpindle
		}
		if _, err := save(ctx, sym, comment); err != nil {
			log.Error("save %s: %v", sym.Name, err)
			failed++
			continue
		}
		log.Debug("saved %s with %d geometry entries", sym.Name, len(sym.Geometry))
		saved++
	}
	return saved, failed
}

func loadDescriptions(cfg *Config) (importer.Descriptions, error) {
	if cfg.Descriptions == "" {
		return nil, nil
	}
	d, err := importer.LoadDescriptionsFile(cfg.Descriptions)
	if err != nil {
		return nil, fmt.Errorf("descriptions: %w", err)
	}
	return d, nil
}
