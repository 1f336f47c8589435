// Package export writes flattened comment lists to their destinations.
package export

import (
	"context"
	"errors"
	"strings"

	"github.com/example/ytcomments/internal/comments"
)

// Extension is appended to every sanitized title.
const Extension = ".txt"

// Export is everything a sink needs for one video.
type Export struct {
	VideoID string
	Title   string
	Records []comments.Record
}

// Sink stores one video's comments and returns where they went.
type Sink interface {
	Write(ctx context.Context, e Export) (string, error)
}

var unsafeChars = strings.NewReplacer(
	"/", "_", `\`, "_", ":", "_", "*", "_", "?", "_",
	`"`, "_", "<", "_", ">", "_", "|", "_",
)

// SanitizeFilename replaces characters that are illegal in file names with
// "_" and trims leading and trailing underscores, dots and spaces.
func SanitizeFilename(title string) string {
	s := unsafeChars.Replace(title)
	return strings.Trim(s, "_. \t")
}

// FileName returns the output file name for a video, falling back to the id
// when the title sanitizes to nothing.
func FileName(title, videoID string) string {
	name := SanitizeFilename(title)
	if name == "" {
		name = SanitizeFilename(videoID)
	}
	return name + Extension
}

// MultiSink writes to every sink in order and reports the first location.
// It stops at the first failure.
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, e Export) (string, error) {
	if len(m) == 0 {
		return "", errors.New("export: no sinks configured")
	}
	var first string
	for i, s := range m {
		loc, err := s.Write(ctx, e)
		if err != nil {
			return first, err
		}
		if i == 0 {
			first = loc
		}
	}
	return first, nil
}
