package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/extract"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/oembed"
	"github.com/MrSnakeDoc/stash/internal/store"
)

type addBookmarkRequest struct {
	URL         string `json:"url"`
	TweetText   string `json:"tweetText"`
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
	TweetDate   string `json:"tweetDate"`
	Type        string `json:"type"`
}

type addBookmarkResponse struct {
	Status   string                 `json:"status"`
	Bookmark *domain.Bookmark       `json:"bookmark,omitempty"`
	Parsed   *domain.ParsedTweetURL `json:"parsed,omitempty"`
}

// AddBookmark creates a bookmark from a tweet URL.
//
// With only a URL, the tweet content is auto-fetched through the oEmbed
// proxy chain. When every proxy fails the response still succeeds with
// status "manual_entry_required" and the parsed URL, so the caller can
// collect the content and retry with tweetText filled in. Total fetch
// failure is never fatal to the add operation.
func AddBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addBookmarkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if strings.TrimSpace(req.TweetText) != "" {
			createManual(w, r, d, req)
			return
		}
		createFromURL(w, r, d, req)
	}
}

// createManual is the manual-entry path: the caller supplied the
// content, nothing is fetched.
func createManual(w http.ResponseWriter, r *http.Request, d deps.Deps, req addBookmarkRequest) {
	bookmark, err := d.Store.Create(r.Context(), store.CreateInput{
		TweetText:   req.TweetText,
		DisplayName: req.DisplayName,
		Username:    req.Username,
		TweetURL:    req.URL,
		TweetDate:   req.TweetDate,
		Type:        domain.Type(req.Type),
	})
	if err != nil {
		d.Logger.Warn("bookmark created but not persisted", logger.Error(err))
	}
	respondJSON(w, http.StatusCreated, addBookmarkResponse{
		Status:   "created",
		Bookmark: bookmark,
	})
}

// createFromURL is the auto-fetch path.
func createFromURL(w http.ResponseWriter, r *http.Request, d deps.Deps, req addBookmarkRequest) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		respondError(w, http.StatusBadRequest, "please provide a tweet URL")
		return
	}
	if !domain.IsTweetURL(rawURL) {
		respondError(w, http.StatusBadRequest, "please provide a valid Twitter/X URL")
		return
	}
	parsed := domain.ParseTweetURL(rawURL)
	if parsed == nil {
		respondError(w, http.StatusBadRequest, "could not parse the tweet URL")
		return
	}

	payload, err := d.OEmbed.Fetch(r.Context(), parsed.CanonicalURL)
	if err != nil {
		if r.Context().Err() != nil {
			// client went away; nothing left to answer
			return
		}
		d.Logger.Info("auto-fetch failed, manual entry required",
			logger.String("url", parsed.CanonicalURL),
			logger.Error(err))
		respondJSON(w, http.StatusOK, addBookmarkResponse{
			Status: "manual_entry_required",
			Parsed: parsed,
		})
		return
	}

	text, err := extract.FromEmbedHTML(payload.HTML)
	if err != nil {
		d.Logger.Warn("failed to extract tweet text", logger.Error(err))
		respondJSON(w, http.StatusOK, addBookmarkResponse{
			Status: "manual_entry_required",
			Parsed: parsed,
		})
		return
	}
	author := oembed.ExtractAuthor(payload)

	bookmark, err := d.Store.Create(r.Context(), store.CreateInput{
		TweetText:   text,
		DisplayName: author.DisplayName,
		Username:    author.Username,
		TweetURL:    parsed.OriginalURL,
		TweetDate:   d.TimeNow().UTC().Format(time.RFC3339),
		Type:        domain.TypeAuto,
	})
	if err != nil {
		d.Logger.Warn("bookmark created but not persisted", logger.Error(err))
	}
	respondJSON(w, http.StatusCreated, addBookmarkResponse{
		Status:   "created",
		Bookmark: bookmark,
	})
}
