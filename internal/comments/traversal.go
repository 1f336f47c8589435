package comments

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Traversal walks every thread of a video and expands each thread's replies
// right after its top-level comment.
type Traversal struct {
	Source   Source
	PageSize int64
	Log      *zap.Logger
}

func NewTraversal(src Source, pageSize int64, log *zap.Logger) *Traversal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Traversal{Source: src, PageSize: pageSize, Log: log}
}

func (t *Traversal) pageSize() int64 {
	if t.PageSize <= 0 || t.PageSize > MaxPageSize {
		return MaxPageSize
	}
	return t.PageSize
}

// FetchAllComments returns the flattened comment list of a video:
// [thread1, replies of thread1..., thread2, ...] in source order.
func (t *Traversal) FetchAllComments(ctx context.Context, videoID string) ([]Record, error) {
	size := t.pageSize()
	var out []Record
	pages, err := Walk(ctx, func(ctx context.Context, token string) (Page[Thread], error) {
		return t.Source.ListThreads(ctx, videoID, token, size)
	}, func(th Thread) error {
		out = append(out, th.TopLevel.Record())
		if !th.HasReplies() {
			return nil
		}
		replies, err := t.FetchAllReplies(ctx, th.ParentID())
		if err != nil {
			return err
		}
		out = append(out, replies...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list threads for %s: %w", videoID, err)
	}
	t.Log.Debug("threads walked",
		zap.String("video_id", videoID),
		zap.Int("pages", pages),
		zap.Int("records", len(out)))
	return out, nil
}

// FetchAllReplies returns every reply under parentID in source order.
func (t *Traversal) FetchAllReplies(ctx context.Context, parentID string) ([]Record, error) {
	size := t.pageSize()
	var out []Record
	_, err := Walk(ctx, func(ctx context.Context, token string) (Page[Comment], error) {
		return t.Source.ListReplies(ctx, parentID, token, size)
	}, func(c Comment) error {
		out = append(out, c.Record())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list replies for %s: %w", parentID, err)
	}
	return out, nil
}
