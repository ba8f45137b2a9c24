package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(sheet Sheet) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, &handler{sheet: sheet})
}

func applyRoutes(r chi.Router, h *handler) chi.Router {
	r.Route("/rows/{row}", func(r chi.Router) {
		r.Get("/", h.getRow)
		r.Put("/", h.putRow)
		r.Get("/map", h.getRowMap)
		r.Put("/map", h.putRowMap)
	})
	r.Route("/columns/{col}", func(r chi.Router) {
		r.Get("/", h.getColumn)
		r.Put("/", h.putColumn)
	})
	r.Route("/cell/{ref}", func(r chi.Router) {
		r.Get("/", h.getCell)
		r.Put("/", h.putCell)
	})

	return r
}
