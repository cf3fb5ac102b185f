package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/fakestore"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/metrics"
	"github.com/niksmo/catalog/internal/adapter/snapshot"
	"github.com/niksmo/catalog/internal/adapter/tui"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
)

type inbound struct {
	httpServer httphandler.HTTPServer
	program    tui.Program
}

type App struct {
	ctx     context.Context
	cfg     config.Config
	logFile *os.File
	metrics *metrics.Metrics
	fetcher port.ProductsFetcher
	catalog *service.Catalog
	inbound inbound
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

// initLogger keeps stderr free in tui mode, where the terminal belongs to
// the user interface.
func (app *App) initLogger() {
	const op = "App.initLogger"

	var w io.Writer = os.Stderr
	switch {
	case app.cfg.LogFile != "":
		f, err := os.OpenFile(app.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			app.fallDown(op, err)
		}
		app.logFile = f
		w = f
	case app.cfg.Mode == config.ModeTUI:
		w = io.Discard
	}

	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(w, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	log := slog.With("op", op)

	app.metrics = metrics.New()

	var source port.ProductsFetcher
	if path := app.cfg.Source.SnapshotFile; path != "" {
		f, err := snapshot.NewFile(path)
		if err != nil {
			app.fallDown(op, err)
		}
		log.Info("products source", "snapshot", f.Path())
		source = f
	} else {
		client, err := fakestore.New(app.clientOpts()...)
		if err != nil {
			app.fallDown(op, err)
		}
		log.Info("products source", "endpoint", client.Endpoint())
		source = client
	}

	app.fetcher = metrics.InstrumentFetcher(source, app.metrics)
}

func (app *App) clientOpts() []fakestore.Opt {
	const op = "App.clientOpts"

	opts := []fakestore.Opt{
		fakestore.EndpointOpt(app.cfg.Source.Endpoint),
		fakestore.TimeoutOpt(app.cfg.Source.Timeout),
		fakestore.MaxAttemptsOpt(app.cfg.Source.MaxAttempts),
	}

	if caFile := app.cfg.Source.CAFile; caFile != "" {
		tlsConfig, err := adapter.MakeClientTLSConfig(caFile)
		if err != nil {
			app.fallDown(op, err)
		}
		opts = append(opts, fakestore.TLSConfigOpt(tlsConfig))
	}
	return opts
}

func (app *App) initCoreService() {
	app.catalog = service.New(app.fetcher)
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	switch app.cfg.Mode {
	case config.ModeHTTP:
		handler := httphandler.NewHandler(app.catalog, app.metrics)
		app.inbound.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)
	case config.ModeTUI:
		theme, err := tui.ThemeByName(app.cfg.Theme)
		if err != nil {
			app.fallDown(op, err)
		}
		session := service.NewSession(app.catalog)
		app.inbound.program = tui.NewProgram(app.ctx, app.catalog, session, theme)
	default:
		app.fallDown(op, fmt.Errorf("unknown mode %q", app.cfg.Mode))
	}
}

func (app *App) Run(stopFn context.CancelFunc) {
	switch app.cfg.Mode {
	case config.ModeHTTP:
		go func() { _ = app.catalog.Load(app.ctx) }()
		go app.inbound.httpServer.Run(stopFn)
	case config.ModeTUI:
		go func() { _ = app.inbound.program.Run(stopFn) }()
	}

	slog.Info("application is running", "mode", app.cfg.Mode)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	switch app.cfg.Mode {
	case config.ModeHTTP:
		app.inbound.httpServer.Close(ctx)
	case config.ModeTUI:
		app.inbound.program.Close()
	}

	slog.Info("application is closed")

	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
