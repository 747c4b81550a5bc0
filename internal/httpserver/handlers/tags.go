package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type tagRequest struct {
	Tag string `json:"tag"`
}

// AddTag attaches a tag to a bookmark. Blank tags and duplicates are
// rejected with a 200 added=false rather than an error, mirroring the
// no-op semantics of the store.
func AddTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Store.Get(id); !ok {
			respondError(w, http.StatusNotFound, "bookmark not found")
			return
		}

		var req tagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		added := d.Store.AddTag(r.Context(), id, req.Tag)
		respondJSON(w, http.StatusOK, map[string]bool{"added": added})
	}
}

// RemoveTag detaches a tag from a bookmark. Removing a tag that is not
// present reports removed=false.
func RemoveTag(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Store.Get(id); !ok {
			respondError(w, http.StatusNotFound, "bookmark not found")
			return
		}

		tag := chi.URLParam(r, "tag")
		if decoded, err := url.PathUnescape(tag); err == nil {
			tag = decoded
		}

		removed := d.Store.RemoveTag(r.Context(), id, tag)
		respondJSON(w, http.StatusOK, map[string]bool{"removed": removed})
	}
}
