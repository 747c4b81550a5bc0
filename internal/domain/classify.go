package domain

import (
	"regexp"
	"strings"
)

var (
	threadCounterPattern = regexp.MustCompile(`\b1/\d+\b`)
	externalLinkPattern  = regexp.MustCompile(`https?://[^\s]+`)
)

// hosts that never count as external links: the tweet hosts themselves
// and Twitter's URL shortener.
var ownLinkPrefixes = []string{"twitter.com", "x.com", "t.co"}

// DetectContentType infers a content category from tweet text and URL
// heuristics. Rules are evaluated in fixed priority order; the first
// match wins and later rules never override it.
func DetectContentType(text, url string) Type {
	lowerText := strings.ToLower(text)
	lowerURL := strings.ToLower(url)

	if strings.Contains(lowerText, "🧵") ||
		threadCounterPattern.MatchString(lowerText) ||
		strings.Contains(lowerText, "thread") {
		return TypeThread
	}
	if strings.Contains(lowerURL, "/photo/") ||
		strings.Contains(lowerText, "[image]") ||
		strings.Contains(lowerText, "pic.twitter") {
		return TypeImage
	}
	if strings.Contains(lowerURL, "/video/") ||
		strings.Contains(lowerText, "[video]") {
		return TypeVideo
	}
	if containsExternalLink(lowerText) {
		return TypeLink
	}
	return TypeText
}

// containsExternalLink reports whether text carries an http(s) URL whose
// host part does not start with one of the known tweet-hosting domains
// or the shortener. The check is a literal prefix test on whatever
// follows the scheme, so "www.twitter.com/..." does count as external.
func containsExternalLink(lowerText string) bool {
	for _, link := range externalLinkPattern.FindAllString(lowerText, -1) {
		rest := strings.TrimPrefix(link, "https://")
		rest = strings.TrimPrefix(rest, "http://")

		own := false
		for _, prefix := range ownLinkPrefixes {
			if strings.HasPrefix(rest, prefix) {
				own = true
				break
			}
		}
		if !own {
			return true
		}
	}
	return false
}
