package oembed

import (
	"testing"
)

func TestExtractAuthor(t *testing.T) {
	tests := []struct {
		name            string
		authorName      string
		authorURL       string
		wantDisplayName string
		wantUsername    string
	}{
		{
			name:            "standard shape",
			authorName:      "Ada Lovelace (@ada)",
			authorURL:       "https://twitter.com/ada",
			wantDisplayName: "Ada Lovelace",
			wantUsername:    "ada",
		},
		{
			name:            "no parenthesized handle, username from url",
			authorName:      "Just A Name",
			authorURL:       "https://twitter.com/justaname",
			wantDisplayName: "Just A Name",
			wantUsername:    "justaname",
		},
		{
			name:            "no handle and no url",
			authorName:      "Mystery",
			authorURL:       "",
			wantDisplayName: "Mystery",
			wantUsername:    "unknown",
		},
		{
			name:            "everything empty",
			authorName:      "",
			authorURL:       "",
			wantDisplayName: "Unknown",
			wantUsername:    "unknown",
		},
		{
			name:            "parentheses in name without at-sign fall through",
			authorName:      "Team (official)",
			authorURL:       "https://twitter.com/team",
			wantDisplayName: "Team (official)",
			wantUsername:    "team",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractAuthor(&Payload{AuthorName: tt.authorName, AuthorURL: tt.authorURL})
			if got.DisplayName != tt.wantDisplayName {
				t.Errorf("DisplayName = %q, want %q", got.DisplayName, tt.wantDisplayName)
			}
			if got.Username != tt.wantUsername {
				t.Errorf("Username = %q, want %q", got.Username, tt.wantUsername)
			}
		})
	}
}
