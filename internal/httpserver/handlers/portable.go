package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/store"
)

const maxImportBytes = 16 << 20

// ExportBookmarks streams the whole collection as a dated JSON file.
func ExportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := d.Store.Export()
		if err != nil {
			d.Logger.Error("export failed", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "export failed")
			return
		}

		filename := store.ExportFilename(d.TimeNow())
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}

// ImportBookmarks merges an exported JSON array into the collection.
// Records that are malformed or already present are skipped, not
// rejected; only an unparseable top-level payload is a client error.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			respondError(w, http.StatusBadRequest, "could not read body")
			return
		}

		imported, err := d.Store.Import(r.Context(), payload)
		if err != nil {
			if errors.Is(err, store.ErrInvalidFormat) {
				respondError(w, http.StatusBadRequest, "invalid file format")
				return
			}
			// Bookmarks were merged in memory but the save failed;
			// report the merge and let the next save retry.
			d.Logger.Warn("import merged but not persisted", logger.Error(err))
		}

		respondJSON(w, http.StatusOK, map[string]int{"imported": imported})
	}
}
