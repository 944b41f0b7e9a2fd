package ical

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"git.sr.ht/~mariusor/metis/storage"
	"git.sr.ht/~mariusor/metis/storage/memory"
)

func Routes(events storage.Loader, catalog *memory.Catalog, version string) http.Handler {
	h := NewHandler(events, catalog, version)

	r := chi.NewRouter()
	r.Get("/", h.ServeHTTP)
	r.Get("/{client}", h.ServeHTTP)
	r.Get("/{client}/{year}", h.ServeHTTP)
	return r
}
