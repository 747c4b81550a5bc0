package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerPortable) }

func registerPortable(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefill,
		TrustProxy:        d.TrustProxy,
	})
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host).Get("/api/export", handlers.ExportBookmarks(d))
	r.With(host, limit).Post("/api/import", handlers.ImportBookmarks(d))
	r.With(host, limit).Post("/api/snapshot", handlers.Snapshot(d))
}
