package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/stash/internal/blob"
	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

// newTestStore builds a file-backed store with a deterministic clock
// and sequential ids.
func newTestStore(t *testing.T) (*Store, blob.Store) {
	t.Helper()

	fs, err := blob.NewFileStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	if err != nil {
		t.Fatal(err)
	}

	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	seq := 0
	st := New(Options{
		Blob:   fs,
		Logger: logger.New("error", false),
		Now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
		NewID: func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		},
	})
	return st, fs
}

func TestCreateAssignsIdentityAndClassifies(t *testing.T) {
	st, _ := newTestStore(t)

	b, err := st.Create(context.Background(), CreateInput{
		TweetText: "  big 🧵 incoming  ",
		Username:  "ada",
		Type:      domain.TypeAuto,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if b.ID != "id-1" {
		t.Errorf("ID = %q", b.ID)
	}
	if b.TweetText != "big 🧵 incoming" {
		t.Errorf("TweetText not trimmed: %q", b.TweetText)
	}
	if b.Type != domain.TypeThread {
		t.Errorf("Type = %q, want thread", b.Type)
	}
	if b.DisplayName != "ada" {
		t.Errorf("DisplayName = %q, want username fallback", b.DisplayName)
	}
	if b.DateAdded == "" || b.TweetDate != b.DateAdded {
		t.Errorf("TweetDate should default to DateAdded, got %q / %q", b.TweetDate, b.DateAdded)
	}
	if len(b.Tags) != 0 || b.Tags == nil {
		t.Errorf("Tags should start as empty slice, got %v", b.Tags)
	}
}

func TestCreatePrependsNewest(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Create(ctx, CreateInput{TweetText: "first"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Create(ctx, CreateInput{TweetText: "second"}); err != nil {
		t.Fatal(err)
	}

	all := st.All()
	if len(all) != 2 {
		t.Fatalf("Count = %d, want 2", len(all))
	}
	if all[0].TweetText != "second" {
		t.Errorf("newest should be first, got %q", all[0].TweetText)
	}
}

func TestCreateRespectsExplicitType(t *testing.T) {
	st, _ := newTestStore(t)

	b, err := st.Create(context.Background(), CreateInput{
		TweetText: "🧵 still a thread by content",
		Type:      domain.TypeImage,
	})
	if err != nil {
		t.Fatal(err)
	}
	if b.Type != domain.TypeImage {
		t.Errorf("explicit type must not be reclassified, got %q", b.Type)
	}
}

func TestDelete(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "bye"})
	if err != nil {
		t.Fatal(err)
	}

	if !st.Delete(ctx, b.ID) {
		t.Error("Delete of existing id should report true")
	}
	if st.Count() != 0 {
		t.Errorf("Count = %d after delete", st.Count())
	}
	if st.Delete(ctx, b.ID) {
		t.Error("Delete of absent id should report false")
	}
}

func TestDeleteClearsSelection(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "x"})
	if err != nil {
		t.Fatal(err)
	}
	st.Selection().Select(b.ID)

	st.Delete(ctx, b.ID)
	if st.Selection().Count() != 0 {
		t.Error("deleting a bookmark must deselect it")
	}
}

func TestBulkDelete(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 5; i++ {
		b, err := st.Create(ctx, CreateInput{TweetText: fmt.Sprintf("post %d", i)})
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, b.ID)
	}

	st.Selection().Select(ids[0])
	st.Selection().Select(ids[1])

	removed := st.BulkDelete(ctx, []string{ids[0], ids[1], ids[2], "ghost"})
	if removed != 3 {
		t.Errorf("removed = %d, want 3 (absent ids ignored)", removed)
	}
	if st.Count() != 2 {
		t.Errorf("Count = %d, want 2", st.Count())
	}
	if st.Selection().Count() != 0 {
		t.Errorf("selection should be empty, got %d", st.Selection().Count())
	}
}

func TestBulkDeleteNothingRemoved(t *testing.T) {
	st, _ := newTestStore(t)

	if removed := st.BulkDelete(context.Background(), []string{"a", "b"}); removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
}

func TestAddTag(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "x"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		id   string
		tag  string
		want bool
	}{
		{name: "first add", id: b.ID, tag: "go", want: true},
		{name: "duplicate", id: b.ID, tag: "go", want: false},
		{name: "different case is a different tag", id: b.ID, tag: "Go", want: true},
		{name: "blank tag", id: b.ID, tag: "   ", want: false},
		{name: "absent bookmark", id: "ghost", tag: "go", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := st.AddTag(ctx, tt.id, tt.tag); got != tt.want {
				t.Errorf("AddTag(%q, %q) = %v, want %v", tt.id, tt.tag, got, tt.want)
			}
		})
	}

	got, _ := st.Get(b.ID)
	if len(got.Tags) != 2 {
		t.Errorf("Tags = %v, want [go Go]", got.Tags)
	}
}

func TestAddTagTrimsWhitespace(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "x"})
	if err != nil {
		t.Fatal(err)
	}

	st.AddTag(ctx, b.ID, "  go  ")
	got, _ := st.Get(b.ID)
	if len(got.Tags) != 1 || got.Tags[0] != "go" {
		t.Errorf("Tags = %v, want [go]", got.Tags)
	}
}

func TestRemoveTag(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "x"})
	if err != nil {
		t.Fatal(err)
	}
	st.AddTag(ctx, b.ID, "go")

	if !st.RemoveTag(ctx, b.ID, "go") {
		t.Error("RemoveTag on existing bookmark should report true")
	}
	got, _ := st.Get(b.ID)
	if len(got.Tags) != 0 {
		t.Errorf("Tags = %v, want empty", got.Tags)
	}

	// Removing an absent tag is idempotent; only an absent bookmark
	// reports false.
	if !st.RemoveTag(ctx, b.ID, "go") {
		t.Error("RemoveTag of absent tag should still report true")
	}
	if st.RemoveTag(ctx, "ghost", "go") {
		t.Error("RemoveTag on absent bookmark should report false")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	st, fs := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "persist me", Username: "ada"})
	if err != nil {
		t.Fatal(err)
	}
	st.AddTag(ctx, b.ID, "keeper")

	reloaded := New(Options{Blob: fs, Logger: logger.New("error", false)})
	reloaded.Load(ctx)

	if reloaded.Count() != 1 {
		t.Fatalf("Count after reload = %d", reloaded.Count())
	}
	got, ok := reloaded.Get(b.ID)
	if !ok {
		t.Fatal("bookmark missing after reload")
	}
	if got.TweetText != "persist me" || got.Username != "ada" {
		t.Errorf("reloaded bookmark = %+v", got)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "keeper" {
		t.Errorf("reloaded tags = %v", got.Tags)
	}
}

func TestLoadMigratesLegacyRecords(t *testing.T) {
	fs, err := blob.NewFileStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	legacy := `[{"id":"old-1","content":"legacy text","author":"Old Author","url":"https://twitter.com/a/status/1","dateAdded":"2022-05-01T00:00:00Z"}]`
	if err := fs.Set(ctx, []byte(legacy)); err != nil {
		t.Fatal(err)
	}

	st := New(Options{Blob: fs, Logger: logger.New("error", false)})
	st.Load(ctx)

	got, ok := st.Get("old-1")
	if !ok {
		t.Fatal("legacy record missing after load")
	}
	if got.TweetText != "legacy text" {
		t.Errorf("TweetText = %q", got.TweetText)
	}
	if got.DisplayName != "Old Author" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
	if got.TweetURL != "https://twitter.com/a/status/1" {
		t.Errorf("TweetURL = %q", got.TweetURL)
	}
	if got.TweetDate != "2022-05-01T00:00:00Z" {
		t.Errorf("TweetDate = %q, want dateAdded fallback", got.TweetDate)
	}
	if got.Type != domain.TypeText {
		t.Errorf("Type = %q, want text default", got.Type)
	}
}

func TestLoadCorruptDataStartsEmpty(t *testing.T) {
	fs, err := blob.NewFileStore(filepath.Join(t.TempDir(), "bookmarks.json"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := fs.Set(ctx, []byte("{not json")); err != nil {
		t.Fatal(err)
	}

	st := New(Options{Blob: fs, Logger: logger.New("error", false)})
	st.Load(ctx)

	if st.Count() != 0 {
		t.Errorf("Count = %d, want 0 for corrupt data", st.Count())
	}
}

func TestLoadEmptyBlobStartsEmpty(t *testing.T) {
	st, _ := newTestStore(t)
	st.Load(context.Background())
	if st.Count() != 0 {
		t.Errorf("Count = %d", st.Count())
	}
}

func TestReturnedBookmarksAreCopies(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	created, err := st.Create(ctx, CreateInput{TweetText: "shared state"})
	if err != nil {
		t.Fatal(err)
	}
	view := st.Query(domain.FilterAll, "", domain.SortNewest)
	fromGet, _ := st.Get(created.ID)
	fromAll := st.All()

	st.AddTag(ctx, created.ID, "later")

	if len(created.Tags) != 0 {
		t.Errorf("Create result aliases the collection: %v", created.Tags)
	}
	if len(view[0].Tags) != 0 {
		t.Errorf("Query result aliases the collection: %v", view[0].Tags)
	}
	if len(fromGet.Tags) != 0 {
		t.Errorf("Get result aliases the collection: %v", fromGet.Tags)
	}
	if len(fromAll[0].Tags) != 0 {
		t.Errorf("All result aliases the collection: %v", fromAll[0].Tags)
	}

	// RemoveTag must not rewrite a backing array older reads still hold.
	withTag, _ := st.Get(created.ID)
	st.RemoveTag(ctx, created.ID, "later")
	if len(withTag.Tags) != 1 || withTag.Tags[0] != "later" {
		t.Errorf("earlier read mutated by RemoveTag: %v", withTag.Tags)
	}
}

func TestConcurrentReadsAndTagEdits(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	b, err := st.Create(ctx, CreateInput{TweetText: "contended"})
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			tag := fmt.Sprintf("t%d", i)
			st.AddTag(ctx, b.ID, tag)
			st.RemoveTag(ctx, b.ID, tag)
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			if _, err := json.Marshal(st.Query(domain.FilterAll, "", domain.SortNewest)); err != nil {
				t.Errorf("marshal of query view failed: %v", err)
				return
			}
			if got, ok := st.Get(b.ID); ok {
				_ = got.HasTag("t0")
			}
			_ = st.All()
		}
	}()

	wg.Wait()
}

func TestQueryReflectsCollection(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	if _, err := st.Create(ctx, CreateInput{TweetText: "🧵 a thread"}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Create(ctx, CreateInput{TweetText: "plain words"}); err != nil {
		t.Fatal(err)
	}

	threads := st.Query("thread", "", domain.SortNewest)
	if len(threads) != 1 {
		t.Errorf("thread filter returned %d, want 1", len(threads))
	}

	hits := st.Query(domain.FilterAll, "plain", domain.SortNewest)
	if len(hits) != 1 || hits[0].TweetText != "plain words" {
		t.Errorf("search returned %v", hits)
	}
}
