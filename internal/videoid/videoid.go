// Package videoid extracts video identifiers from user input.
package videoid

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidInput is returned when no identifier can be extracted.
var ErrInvalidInput = errors.New("invalid video id or url")

var idRE = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// pathPrefixes are youtube.com paths whose next segment is the id.
var pathPrefixes = []string{"shorts", "embed", "live", "v", "e"}

// Extract returns the video id from a bare id, a youtube.com/watch?v= URL,
// a youtu.be/ short link, or a /shorts/, /embed/, /live/ path.
func Extract(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidInput)
	}
	if !looksLikeURL(s) {
		if idRE.MatchString(s) {
			return s, nil
		}
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidInput, input, err)
	}

	var id string
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	segs := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, ".be"):
		if len(segs) > 0 {
			id = segs[len(segs)-1]
		}
	case len(segs) > 0 && segs[0] == "watch":
		id = u.Query().Get("v")
	case len(segs) > 1 && slices.Contains(pathPrefixes, segs[0]):
		id = segs[1]
	default:
		id = u.Query().Get("v")
	}
	if id == "" || !idRE.MatchString(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidInput, input)
	}
	return id, nil
}

// Split breaks a free-form list (commas, whitespace, newlines) into entries.
func Split(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
}

func looksLikeURL(s string) bool {
	return strings.ContainsAny(s, "/?")
}
