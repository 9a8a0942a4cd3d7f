// Package api wires the readalign HTTP handlers into a router.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/aria-lang/readalign-go/api/handlers"
	"github.com/aria-lang/readalign-go/api/middleware"
	"github.com/aria-lang/readalign-go/pkg/readalign"
)

// Config configures the router.
type Config struct {
	Params *readalign.Params
	// Matrix prices protein alignments; nil disables them.
	Matrix  *readalign.Matrix
	Logger  *zap.Logger
	Timeout time.Duration
}

// NewRouter returns the API router.
func NewRouter(cfg Config) http.Handler {
	if cfg.Params == nil {
		cfg.Params = readalign.DefaultParams()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Timeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/align", handlers.NewAlignHandler(cfg.Params, cfg.Matrix))
		r.Post("/map", handlers.NewMapHandler(cfg.Params))
		r.Post("/seed", handlers.SeedHandler)
		r.Post("/actions/parse", handlers.NewActionsParseHandler(cfg.Params))

		r.Route("/sequence", func(r chi.Router) {
			r.Post("/encode", handlers.EncodeHandler)
			r.Post("/reverse-complement", handlers.ReverseComplementHandler)
		})
	})

	return r
}
