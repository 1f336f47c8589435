// Package comments holds the comment domain model, the Source port used to
// reach the video platform, and the traversal that flattens threads and
// replies into one ordered sequence.
package comments

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrVideoNotFound means the video id does not resolve to metadata.
	ErrVideoNotFound = errors.New("video not found")
	// ErrCommentsDisabled covers both the status-flag check and the
	// platform rejecting a listing call because comments are turned off.
	ErrCommentsDisabled = errors.New("comments are disabled")
	// ErrInvalidCredential means the API credential is unusable for any video.
	ErrInvalidCredential = errors.New("invalid api credential")
)

// MaxPageSize is the largest page the platform serves for thread and reply listings.
const MaxPageSize int64 = 100

// Record is one comment or reply rendered as text.
type Record struct {
	Content     string `json:"content"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Line renders the record as a single output line without the trailing newline.
func (r Record) Line(withTimestamp bool) string {
	if withTimestamp && r.PublishedAt != "" {
		return r.PublishedAt + " " + r.Content
	}
	return r.Content
}

// Comment is a single comment as returned by the source.
type Comment struct {
	ID          string
	TextDisplay string
	PublishedAt string
}

func (c Comment) Record() Record {
	return Record{Content: c.TextDisplay, PublishedAt: c.PublishedAt}
}

// Thread is a top-level comment plus the indicator of whether it has replies.
type Thread struct {
	ID         string
	TopLevel   Comment
	ReplyCount int64
	// InlineReplies is true when the listing carried at least one reply inline.
	InlineReplies bool
}

func (t Thread) HasReplies() bool {
	return t.ReplyCount > 0 || t.InlineReplies
}

// ParentID is the id replies are listed under.
func (t Thread) ParentID() string {
	if t.TopLevel.ID != "" {
		return t.TopLevel.ID
	}
	return t.ID
}

// VideoStatus carries the flags that gate comment access. A nil flag means
// the source did not report it.
type VideoStatus struct {
	Embeddable          *bool
	PublicStatsViewable *bool
}

// CommentsEnabled reports false only when a flag is explicitly false.
func (s VideoStatus) CommentsEnabled() bool {
	if s.Embeddable != nil && !*s.Embeddable {
		return false
	}
	if s.PublicStatsViewable != nil && !*s.PublicStatsViewable {
		return false
	}
	return true
}

// Video is the metadata needed before walking comments.
type Video struct {
	ID     string
	Title  string
	Status VideoStatus
}

// BestTitle returns the title, falling back to the id when the title is blank.
func (v Video) BestTitle() string {
	if t := strings.TrimSpace(v.Title); t != "" {
		return t
	}
	return v.ID
}

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Items         []T
	NextPageToken string
}

// Source is the port for the remote comment API.
type Source interface {
	ListThreads(ctx context.Context, videoID, pageToken string, pageSize int64) (Page[Thread], error)
	ListReplies(ctx context.Context, parentID, pageToken string, pageSize int64) (Page[Comment], error)
	GetVideo(ctx context.Context, videoID string) (Video, error)
}
