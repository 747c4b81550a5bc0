package domain

import (
	"encoding/json"
	"strings"
)

// Type is the coarse content category of a bookmarked tweet.
type Type string

const (
	TypeText   Type = "text"
	TypeImage  Type = "image"
	TypeVideo  Type = "video"
	TypeThread Type = "thread"
	TypeLink   Type = "link"

	// TypeAuto is only valid on input; it asks the store to run the
	// content-type classifier instead of trusting the caller.
	TypeAuto Type = "auto"
)

// UnknownAuthor is the display name used when neither a display name
// nor a username could be resolved.
const UnknownAuthor = "Unknown"

// Bookmark represents a single saved tweet.
type Bookmark struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, assigned once at creation
	// and never recomputed. Used for dedup on import.
	ID string

	// DateAdded is the creation timestamp (ISO-8601), set once.
	DateAdded string

	// ─────────────────────────────
	// Content
	// ─────────────────────────────

	// TweetText is the cleaned display text. May be empty.
	TweetText string

	// DisplayName is the human-readable author name.
	// Always non-empty after Normalize (falls back to "Unknown").
	DisplayName string

	// Username is the author handle without the leading "@". May be empty.
	Username string

	// TweetURL is the canonical or original tweet URL. May be empty.
	TweetURL string

	// TweetDate is the original tweet timestamp (ISO-8601).
	// Falls back to DateAdded when the source did not carry one.
	TweetDate string

	// Type is the classified content category.
	Type Type

	// ─────────────────────────────
	// User metadata (mutable)
	// ─────────────────────────────

	// Tags are user-added labels. No duplicates (exact match),
	// no blank entries.
	Tags []string

	// Extra holds persisted fields this version does not recognize,
	// including legacy field names. Carried through save/export so a
	// round-trip loses nothing.
	Extra map[string]json.RawMessage
}

// known current field names; everything else lands in Extra.
var knownFields = map[string]bool{
	"id": true, "tweetText": true, "displayName": true, "username": true,
	"tweetUrl": true, "tweetDate": true, "dateAdded": true, "type": true,
	"tags": true,
}

// UnmarshalJSON decodes a bookmark while keeping unrecognized fields.
func (b *Bookmark) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, val := range raw {
		if !knownFields[key] {
			if b.Extra == nil {
				b.Extra = make(map[string]json.RawMessage)
			}
			b.Extra[key] = val
			continue
		}
		// Known fields of the wrong JSON type are ignored, not fatal.
		switch key {
		case "id":
			_ = json.Unmarshal(val, &b.ID)
		case "tweetText":
			_ = json.Unmarshal(val, &b.TweetText)
		case "displayName":
			_ = json.Unmarshal(val, &b.DisplayName)
		case "username":
			_ = json.Unmarshal(val, &b.Username)
		case "tweetUrl":
			_ = json.Unmarshal(val, &b.TweetURL)
		case "tweetDate":
			_ = json.Unmarshal(val, &b.TweetDate)
		case "dateAdded":
			_ = json.Unmarshal(val, &b.DateAdded)
		case "type":
			_ = json.Unmarshal(val, &b.Type)
		case "tags":
			_ = json.Unmarshal(val, &b.Tags)
		}
	}
	return nil
}

// MarshalJSON encodes the bookmark, merging preserved extra fields back in.
func (b *Bookmark) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Extra)+9)
	for key, val := range b.Extra {
		out[key] = val
	}
	out["id"] = b.ID
	out["tweetText"] = b.TweetText
	out["displayName"] = b.DisplayName
	out["username"] = b.Username
	out["tweetUrl"] = b.TweetURL
	out["tweetDate"] = b.TweetDate
	out["dateAdded"] = b.DateAdded
	out["type"] = b.Type
	tags := b.Tags
	if tags == nil {
		tags = []string{}
	}
	out["tags"] = tags
	return json.Marshal(out)
}

// Normalize fills missing current fields from legacy field names and
// applies defaults. It runs once at the load/import boundary; legacy
// names are never consulted past that point (they stay in Extra so a
// later save does not drop them).
//
// Legacy mapping: content → tweetText, author → displayName,
// url → tweetUrl, dateAdded → tweetDate (only when tweetDate is absent).
func (b *Bookmark) Normalize(now string) {
	if b.TweetText == "" {
		b.TweetText = b.extraString("content")
	}
	if b.DisplayName == "" {
		b.DisplayName = b.extraString("author")
	}
	if b.DisplayName == "" {
		b.DisplayName = UnknownAuthor
	}
	if b.TweetURL == "" {
		b.TweetURL = b.extraString("url")
	}
	if b.DateAdded == "" {
		b.DateAdded = now
	}
	if b.TweetDate == "" {
		b.TweetDate = b.DateAdded
	}
	if b.Type == "" {
		b.Type = TypeText
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
}

// HasText reports whether the record carries display text under the
// current or legacy field name. Import requires this.
func (b *Bookmark) HasText() bool {
	return b.TweetText != "" || b.extraString("content") != ""
}

// HasTag reports whether tag is present (case-sensitive exact match).
func (b *Bookmark) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Clone returns a copy with its own Tags slice, safe to hand to a
// caller that will read it outside the owner's lock. Extra is shared;
// it is never written after the record enters the collection.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Tags != nil {
		c.Tags = make([]string, len(b.Tags))
		copy(c.Tags, b.Tags)
	}
	return &c
}

func (b *Bookmark) extraString(key string) string {
	raw, ok := b.Extra[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// ResolveDisplayName applies the creation-time fallback chain:
// displayName → username → "Unknown".
func ResolveDisplayName(displayName, username string) string {
	if s := strings.TrimSpace(displayName); s != "" {
		return s
	}
	if username != "" {
		return username
	}
	return UnknownAuthor
}
