// Package store owns the in-memory bookmark collection and its
// persistence to a single blob. All operations are synchronous; the
// in-memory state stays authoritative even when a persistence write
// fails.
package store

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/stash/internal/blob"
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/metrics"
)

// Store is the owner of the bookmark collection.
type Store struct {
	mu        sync.RWMutex
	blob      blob.Store
	logger    logger.Logger
	selection *Selection
	now       func() time.Time
	newID     func() string
	bookmarks []*domain.Bookmark
}

// Options configures a Store. Now and NewID default to time.Now and
// uuid.NewString; they exist for tests.
type Options struct {
	Blob      blob.Store
	Logger    logger.Logger
	Selection *Selection
	Now       func() time.Time
	NewID     func() string
}

// New creates an empty Store. Call Load before serving traffic.
func New(opts Options) *Store {
	if opts.Selection == nil {
		opts.Selection = NewSelection()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &Store{
		blob:      opts.Blob,
		logger:    opts.Logger,
		selection: opts.Selection,
		now:       opts.Now,
		newID:     opts.NewID,
		bookmarks: []*domain.Bookmark{},
	}
}

// Selection returns the selection set tied to this store.
func (s *Store) Selection() *Selection {
	return s.selection
}

// Load reads the persisted collection. An absent blob yields an empty
// collection; corrupt data is logged and likewise yields an empty
// collection; Load never fails. Every loaded record goes through the
// legacy field migration.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookmarks = []*domain.Bookmark{}

	data, ok, err := s.blob.Get(ctx)
	if err != nil {
		s.logger.Error("failed to load bookmarks, starting empty", logger.Error(err))
		return
	}
	if !ok {
		return
	}

	var loaded []*domain.Bookmark
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.logger.Error("corrupt bookmark data, starting empty", logger.Error(err))
		return
	}

	now := s.nowISO()
	for _, b := range loaded {
		b.Normalize(now)
	}
	s.bookmarks = loaded
	s.logger.Info("loaded bookmarks", logger.Int("count", len(loaded)))
}

// Save serializes the whole collection and writes it to the blob.
// A write failure is non-fatal: it is logged and returned, and the
// in-memory state is retained regardless.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saveLocked(ctx)
}

// saveLocked must be called with at least a read lock held.
func (s *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(s.bookmarks)
	if err == nil {
		err = s.blob.Set(ctx, data)
	}
	if err != nil {
		metrics.StoreSaves.WithLabelValues("failure").Inc()
		s.logger.Error("failed to save bookmarks", logger.Error(err))
		return err
	}
	metrics.StoreSaves.WithLabelValues("success").Inc()
	return nil
}

// CreateInput is the caller-supplied part of a new bookmark.
type CreateInput struct {
	TweetText   string
	DisplayName string
	Username    string
	TweetURL    string
	TweetDate   string
	Type        domain.Type
}

// Create builds a new bookmark and inserts it at the front of the
// collection (newest-created-first). The id and dateAdded are assigned
// here and never change. A Type of "auto" (or empty) is resolved via
// the content classifier. The returned error is a non-fatal persistence
// failure; the bookmark is in the collection either way.
func (s *Store) Create(ctx context.Context, in CreateInput) (*domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowISO()
	text := strings.TrimSpace(in.TweetText)

	typ := in.Type
	if typ == "" || typ == domain.TypeAuto {
		typ = domain.DetectContentType(text, in.TweetURL)
	}

	tweetDate := in.TweetDate
	if tweetDate == "" {
		tweetDate = now
	}

	b := &domain.Bookmark{
		ID:          s.newID(),
		TweetText:   text,
		DisplayName: domain.ResolveDisplayName(in.DisplayName, in.Username),
		Username:    in.Username,
		TweetURL:    in.TweetURL,
		TweetDate:   tweetDate,
		DateAdded:   now,
		Type:        typ,
		Tags:        []string{},
	}

	s.bookmarks = append([]*domain.Bookmark{b}, s.bookmarks...)
	metrics.BookmarksCreated.WithLabelValues(string(typ)).Inc()

	return b.Clone(), s.saveLocked(ctx)
}

// Delete removes a bookmark by id and reports whether a removal
// occurred. An absent id is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	s.bookmarks = append(s.bookmarks[:idx], s.bookmarks[idx+1:]...)
	s.selection.Remove(id)
	_ = s.saveLocked(ctx)
	return true
}

// BulkDelete removes every present id, silently ignoring absent ones,
// and returns the count actually removed. Removed ids are cleared from
// the selection set. The collection is persisted once after the batch.
func (s *Store) BulkDelete(ctx context.Context, ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := make([]string, 0, len(ids))
	for _, id := range ids {
		idx := s.indexOf(id)
		if idx < 0 {
			continue
		}
		s.bookmarks = append(s.bookmarks[:idx], s.bookmarks[idx+1:]...)
		removed = append(removed, id)
	}
	if len(removed) == 0 {
		return 0
	}

	s.selection.Remove(removed...)
	_ = s.saveLocked(ctx)
	return len(removed)
}

// AddTag appends a tag to a bookmark. No-op when the bookmark is
// absent, the tag is blank, or the tag is already present (exact,
// case-sensitive match). Returns whether the tag was added.
func (s *Store) AddTag(ctx context.Context, id, tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false
	}
	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	b := s.bookmarks[idx]
	if b.HasTag(tag) {
		return false
	}
	b.Tags = append(b.Tags, tag)
	_ = s.saveLocked(ctx)
	return true
}

// RemoveTag filters a tag out of a bookmark (idempotent) and persists.
// Returns whether the bookmark was found.
func (s *Store) RemoveTag(ctx context.Context, id, tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}
	b := s.bookmarks[idx]
	// Fresh slice: earlier reads may still hold the old backing array.
	kept := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	b.Tags = kept
	_ = s.saveLocked(ctx)
	return true
}

// Get returns a copy of a bookmark by id. Returned records never alias
// the collection; later tag edits do not show through.
func (s *Store) Get(id string) (*domain.Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return s.bookmarks[idx].Clone(), true
}

// All returns copies of the collection in physical order.
func (s *Store) All() []*domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.Bookmark, len(s.bookmarks))
	for i, b := range s.bookmarks {
		out[i] = b.Clone()
	}
	return out
}

// Count returns the collection size.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bookmarks)
}

// Query computes a filtered, searched and sorted view of copies, safe
// to serialize after the lock is released.
func (s *Store) Query(filter, search string, sortMode domain.Sort) []*domain.Bookmark {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := domain.QueryBookmarks(s.bookmarks, filter, search, sortMode)
	for i, b := range result {
		result[i] = b.Clone()
	}
	return result
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, b := range s.bookmarks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nowISO() string {
	return s.now().UTC().Format(time.RFC3339)
}
