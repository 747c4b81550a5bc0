package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// Snapshot triggers an immediate on-disk export. The trigger channel
// has a buffer of one; a second request while a snapshot is pending
// gets a 429 instead of queueing up.
func Snapshot(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SnapshotTrigger == nil {
			respondError(w, http.StatusNotFound, "snapshots disabled")
			return
		}

		select {
		case d.SnapshotTrigger <- struct{}{}:
			d.Logger.Info("manual snapshot triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			respondJSON(w, http.StatusAccepted, map[string]string{"status": "snapshot_triggered"})
		default:
			d.Logger.Warn("snapshot already in progress",
				logger.String("remote_ip", r.RemoteAddr))
			respondError(w, http.StatusTooManyRequests, "snapshot already in progress")
		}
	}
}
