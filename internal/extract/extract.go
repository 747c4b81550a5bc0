// Package extract turns oEmbed blockquote markup into clean plain text.
package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	// trailing "— Author (@handle) Month Day, Year" attribution line
	attributionPattern = regexp.MustCompile(`\n?—\s*[^(]+\(@\w+\)\s*[\w\s,]+$`)

	shortenerLinkPattern = regexp.MustCompile(`(?i)https?://t\.co/\w+`)
	mediaLinkPattern     = regexp.MustCompile(`(?i)pic\.twitter\.com/\w+`)

	excessNewlines = regexp.MustCompile(`\n{3,}`)
	excessSpaces   = regexp.MustCompile(`  +`)
)

// FromEmbedHTML extracts the tweet text from an oEmbed HTML fragment:
// the text content of every <p> block, cleaned up via CleanText.
// Malformed markup is not an error; the html parser is lenient and
// whatever paragraphs it finds are used.
func FromEmbedHTML(fragment string) (string, error) {
	root, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "p" {
			collectText(n, &buf)
			buf.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return CleanText(buf.String()), nil
}

// collectText appends the concatenated text nodes under n.
func collectText(n *html.Node, buf *strings.Builder) {
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, buf)
	}
}

// CleanText runs the cleanup pipeline over already-flattened text.
// Steps are order-dependent: trim, strip the trailing attribution line,
// strip t.co shortener links, strip pic.twitter.com media links,
// collapse newline and space runs, trim again. The pipeline is
// idempotent: cleaning already-clean text changes nothing.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimSpace(attributionPattern.ReplaceAllString(text, ""))
	text = strings.TrimSpace(shortenerLinkPattern.ReplaceAllString(text, ""))
	text = strings.TrimSpace(mediaLinkPattern.ReplaceAllString(text, ""))
	text = excessNewlines.ReplaceAllString(text, "\n\n")
	text = excessSpaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
