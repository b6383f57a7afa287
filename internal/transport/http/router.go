// Package http exposes the offers read surface over chi.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Offers *OffersHandler
	Items  *ItemsHandler
	Events *EventsHandler
}

// NewRouter builds the HTTP router.
func NewRouter(h Handlers, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger(log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/offers", func(r chi.Router) {
			r.Get("/", h.Offers.List)
			r.Get("/weekly", h.Offers.Weekly)
		})
		r.Route("/items/{itemID}", func(r chi.Router) {
			r.Get("/price", h.Items.Price)
			r.Get("/countdown", h.Items.Countdown)
			r.Get("/countdown/stream", h.Items.CountdownStream)
		})
		r.Get("/events", h.Events.List)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}
