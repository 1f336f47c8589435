package youtube

import (
	"strings"

	ytv3 "google.golang.org/api/youtube/v3"

	"github.com/example/ytcomments/internal/comments"
)

func toComment(c *ytv3.Comment) comments.Comment {
	out := comments.Comment{ID: c.Id}
	if c.Snippet != nil {
		out.TextDisplay = c.Snippet.TextDisplay
		out.PublishedAt = c.Snippet.PublishedAt
	}
	return out
}

func toThread(t *ytv3.CommentThread) comments.Thread {
	out := comments.Thread{ID: t.Id}
	if t.Snippet != nil {
		out.ReplyCount = t.Snippet.TotalReplyCount
		if t.Snippet.TopLevelComment != nil {
			out.TopLevel = toComment(t.Snippet.TopLevelComment)
		}
	}
	if t.Replies != nil && len(t.Replies.Comments) > 0 {
		out.InlineReplies = true
	}
	return out
}

// toVideo maps metadata. The binding decodes status flags as plain bools,
// so they are only reported when the status part is present at all.
func toVideo(id string, v *ytv3.Video) comments.Video {
	out := comments.Video{ID: id}
	if v.Id != "" {
		out.ID = v.Id
	}
	if v.Snippet != nil {
		out.Title = strings.TrimSpace(v.Snippet.Title)
	}
	if v.Status != nil {
		embeddable := v.Status.Embeddable
		stats := v.Status.PublicStatsViewable
		out.Status = comments.VideoStatus{Embeddable: &embeddable, PublicStatsViewable: &stats}
	}
	return out
}
