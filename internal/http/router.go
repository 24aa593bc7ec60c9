package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/shiptrack/internal/http/export"
	"github.com/MrJamesThe3rd/shiptrack/internal/http/importcsv"
	"github.com/MrJamesThe3rd/shiptrack/internal/http/shipment"
	"github.com/MrJamesThe3rd/shiptrack/internal/metrics"
)

type Options struct {
	AllowedOrigins []string
	// Metrics is optional. When nil no /metrics endpoint is mounted.
	Metrics *metrics.Metrics
}

func New(
	opts Options,
	shipmentsV1 *shipment.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition", "X-Shipment-Count"},
		MaxAge:         300,
	}))

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware)
		router.Handle("/metrics", opts.Metrics.Handler())
	}

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	router.Route("/api/shipments", func(r chi.Router) {
		r.Route("/export", exportV1.Routes)
		r.Route("/import", importV1.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			shipmentsV1.Routes(r)
		})
	})

	return router
}
