package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type listResponse struct {
	Bookmarks []*domain.Bookmark `json:"bookmarks"`
	Count     int                `json:"count"`
	Total     int                `json:"total"`
}

// ListBookmarks serves the filtered/searched/sorted view.
// Query params: filter (type or "all"), q (search), sort
// (newest|oldest|az|za, default newest).
func ListBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := q.Get("filter")
		if filter == "" {
			filter = domain.FilterAll
		}
		sortMode := domain.Sort(q.Get("sort"))
		if sortMode == "" {
			sortMode = domain.SortNewest
		}

		result := d.Store.Query(filter, q.Get("q"), sortMode)
		respondJSON(w, http.StatusOK, listResponse{
			Bookmarks: result,
			Count:     len(result),
			Total:     d.Store.Count(),
		})
	}
}

// DeleteBookmark removes one bookmark by id. Deleting an absent id is
// not an error; the response just reports deleted=false.
func DeleteBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		deleted := d.Store.Delete(r.Context(), id)
		respondJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
	}
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDeleteBookmarks removes a batch of ids. When the body carries no
// ids, the current selection set is used.
func BulkDeleteBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bulkDeleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		ids := req.IDs
		if len(ids) == 0 {
			ids = d.Store.Selection().IDs()
		}

		removed := d.Store.BulkDelete(r.Context(), ids)
		respondJSON(w, http.StatusOK, map[string]int{"deleted": removed})
	}
}
