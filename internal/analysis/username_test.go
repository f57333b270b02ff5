package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "user path",
			url:      "https://www.reddit.com/user/spez",
			expected: "spez",
		},
		{
			name:     "short u path",
			url:      "https://reddit.com/u/spez",
			expected: "spez",
		},
		{
			name:     "trailing slash",
			url:      "https://www.reddit.com/user/spez/",
			expected: "spez",
		},
		{
			name:     "http scheme",
			url:      "http://reddit.com/user/Some_User-123",
			expected: "Some_User-123",
		},
		{
			name:     "case preserved verbatim",
			url:      "https://reddit.com/u/GalLAhad",
			expected: "GalLAhad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			username, err := ExtractUsername(tt.url)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, username)
		})
	}
}

func TestExtractUsername_Invalid(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"empty string", ""},
		{"not a URL", "hello world"},
		{"subreddit URL", "https://reddit.com/r/golang"},
		{"bare profile root", "https://reddit.com/user/"},
		{"wrong host", "https://example.com/something"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractUsername(tt.url)
			assert.ErrorIs(t, err, ErrInvalidProfileURL)
		})
	}
}
