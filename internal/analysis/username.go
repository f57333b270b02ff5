package analysis

import (
	"errors"
	"regexp"
)

// ErrInvalidProfileURL is returned when a URL matches none of the accepted
// profile path shapes.
var ErrInvalidProfileURL = errors.New("invalid reddit profile URL")

// Accepted profile path shapes, tried in order; first match wins.
var profilePatterns = []*regexp.Regexp{
	regexp.MustCompile(`reddit\.com/(?:u|user)/([^/]+)/?`),
}

// ExtractUsername parses a Reddit profile URL into the username it names.
// The captured segment is returned verbatim, with no case folding.
func ExtractUsername(profileURL string) (string, error) {
	for _, pattern := range profilePatterns {
		if m := pattern.FindStringSubmatch(profileURL); m != nil {
			return m[1], nil
		}
	}
	return "", ErrInvalidProfileURL
}
