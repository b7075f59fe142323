// Package api exposes the analysis engine over HTTP: dataset uploads, test
// catalog listing, analysis runs, the normality battery, and report
// rendering.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"statease/adapters/stats"
	"statease/adapters/tabular"
	"statease/internal/config"
)

// App wires the HTTP surface together. All state lives in the store; the
// engine itself is stateless.
type App struct {
	router *chi.Mux
	engine *stats.Engine
	reader *tabular.Reader
	store  *Store
	cfg    *config.Config
}

func NewApp(cfg *config.Config) *App {
	app := &App{
		router: chi.NewRouter(),
		engine: stats.NewEngine(),
		reader: tabular.NewReader(cfg.Upload.MaxBytes, cfg.Upload.MaxRows),
		store:  NewStore(),
		cfg:    cfg,
	}
	app.setupMiddleware()
	app.setupRoutes()
	return app
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)
	a.router.Get("/tests", a.handleListTests)

	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/datasets", a.handleListDatasets)
	a.router.Get("/datasets/{id}", a.handleDatasetDetail)
	a.router.Get("/datasets/{id}/normality", a.handleNormalityBattery)

	a.router.Post("/analyze", a.handleAnalyze)
	a.router.Post("/report", a.handleReport)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler { return a.router }
