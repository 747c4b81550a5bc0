package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerSelection) }

func registerSelection(r chi.Router, d deps.Deps) {
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host).Get("/api/selection", handlers.ListSelection(d))
	r.With(host).Post("/api/bookmarks/{id}/select", handlers.SelectBookmark(d))
	r.With(host).Delete("/api/bookmarks/{id}/select", handlers.DeselectBookmark(d))
	r.With(host).Delete("/api/selection", handlers.ClearSelection(d))
}
