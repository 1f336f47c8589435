// Package batch runs the per-video pipeline over a list of inputs and keeps
// every failure contained to the video it happened on.
package batch

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/ytcomments/internal/comments"
	"github.com/example/ytcomments/internal/export"
	"github.com/example/ytcomments/internal/platform/events"
	"github.com/example/ytcomments/internal/videoid"
)

type Runner struct {
	Source    comments.Source
	Traversal *comments.Traversal
	Sink      export.Sink
	Reporter  *Reporter
	Events    *events.Publisher
	Log       *zap.Logger
	// Concurrency is the number of videos in flight. Values below 1 mean 1.
	Concurrency int
}

// Run processes every input and returns results in input order. The error
// is non-nil only for failures that make the rest of the batch pointless,
// such as an unusable API key.
func (r *Runner) Run(ctx context.Context, inputs []string) (Summary, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}
	limit := r.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		g.Go(func() error {
			res := r.process(gctx, log, in)
			results[i] = res
			r.Reporter.Result(i+1, len(inputs), res)
			r.publish(res)
			if errors.Is(res.Err, comments.ErrInvalidCredential) {
				return res.Err
			}
			return nil
		})
	}
	fatal := g.Wait()

	sum := summarize(results)
	r.Reporter.Summary(sum)
	r.Events.Publish(events.SubjectRunFinished, "run_finished", map[string]any{
		"videos":   len(inputs),
		"exported": sum.Exported,
		"failed":   sum.Failed,
		"records":  sum.Records,
	})
	if fatal != nil {
		return sum, fmt.Errorf("batch aborted: %w", fatal)
	}
	return sum, nil
}

func (r *Runner) process(ctx context.Context, log *zap.Logger, input string) Result {
	res := Result{Input: input}
	fail := func(err error) Result {
		res.Err = err
		res.Outcome = classify(ctx, err)
		log.Warn("video skipped",
			zap.String("input", input),
			zap.String("video_id", res.VideoID),
			zap.Stringer("outcome", res.Outcome),
			zap.Error(err))
		return res
	}

	if err := ctx.Err(); err != nil {
		res.Outcome = OutcomeAborted
		res.Err = err
		return res
	}

	id, err := videoid.Extract(input)
	if err != nil {
		return fail(err)
	}
	res.VideoID = id

	video, err := r.Source.GetVideo(ctx, id)
	if err != nil {
		return fail(fmt.Errorf("metadata: %w", err))
	}
	res.Title = video.BestTitle()
	if !video.Status.CommentsEnabled() {
		return fail(fmt.Errorf("%s: %w", id, comments.ErrCommentsDisabled))
	}

	recs, err := r.Traversal.FetchAllComments(ctx, id)
	if err != nil {
		return fail(err)
	}
	res.Records = len(recs)

	loc, err := r.Sink.Write(ctx, export.Export{VideoID: id, Title: res.Title, Records: recs})
	if err != nil {
		res.Err = err
		res.Outcome = OutcomeWriteFailed
		if ctx.Err() != nil {
			res.Outcome = OutcomeAborted
		}
		log.Error("write failed", zap.String("video_id", id), zap.Error(err))
		return res
	}
	res.Location = loc
	res.Outcome = OutcomeExported
	log.Info("video exported",
		zap.String("video_id", id),
		zap.String("title", res.Title),
		zap.Int("records", res.Records),
		zap.String("location", loc))
	return res
}

func (r *Runner) publish(res Result) {
	if res.OK() {
		r.Events.Publish(events.SubjectVideoExported, "video_exported", map[string]any{
			"video_id": res.VideoID,
			"title":    res.Title,
			"records":  res.Records,
			"location": res.Location,
		})
		return
	}
	props := map[string]any{
		"input":    res.Input,
		"video_id": res.VideoID,
		"outcome":  res.Outcome.String(),
	}
	if res.Err != nil {
		props["error"] = res.Err.Error()
	}
	r.Events.Publish(events.SubjectVideoSkipped, "video_skipped", props)
}
