package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, rsvpHandler *RSVPHandler, staticDir string) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Invite API", "1.0.0")
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// RSVP collection: one resource, four operations, identifier as a
	// query parameter for update and delete.
	huma.Get(api, "/api/rsvp", rsvpHandler.HandleList)
	huma.Post(api, "/api/rsvp", rsvpHandler.HandleCreate)
	huma.Patch(api, "/api/rsvp", rsvpHandler.HandleUpdate)
	huma.Delete(api, "/api/rsvp", rsvpHandler.HandleDelete)

	// Landing page assets. Rendering is plain static files; the form on the
	// page talks to /api/rsvp.
	if staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(staticDir)))
	}
}
