package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// ErrInvalidFormat means the import payload did not decode to a
// sequence of records. Nothing is applied in that case.
var ErrInvalidFormat = errors.New("import payload is not a bookmark array")

// Export serializes the entire collection with human-readable
// formatting. The shape is identical to the persistence blob.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.bookmarks, "", "  ")
}

// ExportFilename returns the download name for an export taken at t,
// with the date embedded.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("tweet_bookmarks_%s.json", t.UTC().Format("2006-01-02"))
}

// Import merges an external payload into the collection and returns the
// number of records added.
//
// A payload that is not a JSON array fails with ErrInvalidFormat and
// applies nothing. Individual records are accepted only when they carry
// an id and a non-empty text field (current or legacy name); records
// whose id is already present, including earlier in the same payload,
// are skipped silently. Accepted records go through the same field
// migration as Load and are appended to the end of the collection in
// arrival order. The collection is persisted once after the whole
// batch; a persistence failure is returned but the records stay
// applied.
func (s *Store) Import(ctx context.Context, payload []byte) (int, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := make(map[string]bool, len(s.bookmarks))
	for _, b := range s.bookmarks {
		existing[b.ID] = true
	}

	now := s.nowISO()
	added := 0
	for _, raw := range records {
		b := &domain.Bookmark{}
		if err := json.Unmarshal(raw, b); err != nil {
			s.logger.Debug("skipping malformed import record", logger.Error(err))
			continue
		}
		if b.ID == "" || !b.HasText() {
			continue
		}
		if existing[b.ID] {
			continue
		}
		b.Normalize(now)
		s.bookmarks = append(s.bookmarks, b)
		existing[b.ID] = true
		added++
	}

	if added == 0 {
		return 0, nil
	}
	return added, s.saveLocked(ctx)
}
