package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

// SelectBookmark marks a bookmark for a later bulk action.
func SelectBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Store.Get(id); !ok {
			respondError(w, http.StatusNotFound, "bookmark not found")
			return
		}

		d.Store.Selection().Select(id)
		respondJSON(w, http.StatusOK, map[string]int{"selected": d.Store.Selection().Count()})
	}
}

// DeselectBookmark drops one id from the selection set.
func DeselectBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		d.Store.Selection().Deselect(id)
		respondJSON(w, http.StatusOK, map[string]int{"selected": d.Store.Selection().Count()})
	}
}

// ListSelection returns the selected ids in stable order.
func ListSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ids := d.Store.Selection().IDs()
		respondJSON(w, http.StatusOK, map[string]any{
			"ids":   ids,
			"count": len(ids),
		})
	}
}

// ClearSelection empties the selection set.
func ClearSelection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Store.Selection().Clear()
		respondJSON(w, http.StatusOK, map[string]int{"selected": 0})
	}
}
