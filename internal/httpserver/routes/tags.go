package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/stash/internal/httpserver/mw"
)

func init() { Register(registerTags) }

func registerTags(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RateRefill,
		TrustProxy:        d.TrustProxy,
	})
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(host, limit).Post("/api/bookmarks/{id}/tags", handlers.AddTag(d))
	r.With(host, limit).Delete("/api/bookmarks/{id}/tags/{tag}", handlers.RemoveTag(d))
}
