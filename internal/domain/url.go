package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsedTweetURL is the structured form of a recognized tweet URL.
type ParsedTweetURL struct {
	// Username is the handle captured from the path (no leading "@").
	Username string

	// TweetID is the numeric status id, kept as a string.
	TweetID string

	// CanonicalURL is rebuilt on the fixed twitter.com host, regardless
	// of which recognized host or scheme the input used. This is the
	// form sent to the oEmbed API.
	CanonicalURL string

	// OriginalURL preserves the user's input, with https:// prefixed
	// when no scheme was present.
	OriginalURL string
}

// tweetURLPattern accepts twitter.com and x.com status URLs, with or
// without scheme and "www." prefix.
var tweetURLPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:twitter\.com|x\.com)/(\w+)/status/(\d+)`)

// IsTweetURL reports whether text contains a recognized tweet URL.
func IsTweetURL(text string) bool {
	return tweetURLPattern.MatchString(text)
}

// ParseTweetURL decomposes a tweet URL. It returns nil when the input
// does not match; an unrecognized URL is an expected outcome, not an
// error.
func ParseTweetURL(rawURL string) *ParsedTweetURL {
	match := tweetURLPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return nil
	}

	original := rawURL
	if !strings.HasPrefix(original, "http") {
		original = "https://" + original
	}

	return &ParsedTweetURL{
		Username:     match[1],
		TweetID:      match[2],
		CanonicalURL: fmt.Sprintf("https://twitter.com/%s/status/%s", match[1], match[2]),
		OriginalURL:  original,
	}
}
