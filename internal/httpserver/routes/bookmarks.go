package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerBookmarks) }

func registerBookmarks(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefill,
		TrustProxy:        d.TrustProxy,
	})
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host).Get("/api/bookmarks", handlers.ListBookmarks(d))
	r.With(host, limit).Post("/api/bookmarks", handlers.AddBookmark(d))
	r.With(host, limit).Delete("/api/bookmarks/{id}", handlers.DeleteBookmark(d))
	r.With(host, limit).Post("/api/bookmarks/bulk-delete", handlers.BulkDeleteBookmarks(d))
}
