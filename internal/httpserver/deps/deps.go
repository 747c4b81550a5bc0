package deps

import (
	"time"

	"github.com/MrSnakeDoc/stash/internal/blob"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/oembed"
	"github.com/MrSnakeDoc/stash/internal/store"
)

type Deps struct {
	Logger          logger.Logger
	StartTime       time.Time
	Version         string
	Commit          string
	BuildDate       string
	GoVersion       string
	TimeNow         func() time.Time // for testing, defaults to time.Now
	Store           *store.Store     // the bookmark collection owner
	OEmbed          *oembed.Client   // tweet embed fetcher with proxy fallback
	Blob            blob.Store       // persistence backend, pinged by readyz
	AllowedHosts    []string         // Host headers allowed to access the server
	TrustProxy      bool             // true if running behind a trusted reverse proxy
	RateBurst       int              // rate limit burst per client IP
	RateRefill      int              // rate limit refill per client IP per minute
	SnapshotTrigger chan struct{}    // channel to trigger a manual snapshot (nil if snapshots disabled)
}
