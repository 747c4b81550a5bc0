package oembed

import (
	"regexp"
	"strings"
)

// Author is the attribution extracted from an oEmbed payload.
type Author struct {
	DisplayName string
	Username    string
}

// author_name has the shape "Display Name (@handle)"
var authorNamePattern = regexp.MustCompile(`^(.+?)\s*\(@(\w+)\)$`)

// ExtractAuthor parses the payload's attribution fields. When the
// author_name field does not match the expected shape, the whole raw
// field becomes the display name and the handle is derived from the
// last path segment of author_url, or "unknown" if absent.
func ExtractAuthor(p *Payload) Author {
	if match := authorNamePattern.FindStringSubmatch(p.AuthorName); match != nil {
		return Author{
			DisplayName: strings.TrimSpace(match[1]),
			Username:    match[2],
		}
	}

	username := "unknown"
	if p.AuthorURL != "" {
		parts := strings.Split(p.AuthorURL, "/")
		if last := parts[len(parts)-1]; last != "" {
			username = last
		}
	}

	displayName := p.AuthorName
	if displayName == "" {
		displayName = "Unknown"
	}

	return Author{DisplayName: displayName, Username: username}
}
