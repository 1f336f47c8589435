package batch

import (
	"context"
	"errors"

	"github.com/example/ytcomments/internal/comments"
	"github.com/example/ytcomments/internal/videoid"
)

// Outcome is the per-video result category.
type Outcome int

const (
	OutcomeExported Outcome = iota
	OutcomeInvalidInput
	OutcomeNotFound
	OutcomeCommentsDisabled
	OutcomeSourceError
	OutcomeWriteFailed
	// OutcomeAborted marks inputs left unprocessed after cancellation or a
	// fatal credential error.
	OutcomeAborted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExported:
		return "exported"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeCommentsDisabled:
		return "comments_disabled"
	case OutcomeSourceError:
		return "source_error"
	case OutcomeWriteFailed:
		return "write_failed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Result describes what happened to one input.
type Result struct {
	Input    string
	VideoID  string
	Title    string
	Outcome  Outcome
	Records  int
	Location string
	Err      error
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeExported
}

// classify maps an error from extraction, metadata or traversal onto an
// outcome. Disabled comments map to one outcome whichever way they were detected.
func classify(ctx context.Context, err error) Outcome {
	switch {
	case err == nil:
		return OutcomeExported
	case ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		return OutcomeAborted
	case errors.Is(err, videoid.ErrInvalidInput):
		return OutcomeInvalidInput
	case errors.Is(err, comments.ErrCommentsDisabled):
		return OutcomeCommentsDisabled
	case errors.Is(err, comments.ErrVideoNotFound):
		return OutcomeNotFound
	default:
		return OutcomeSourceError
	}
}

// Summary aggregates a batch run.
type Summary struct {
	Results  []Result
	Exported int
	Failed   int
	Records  int
}

func summarize(results []Result) Summary {
	s := Summary{Results: results}
	for _, r := range results {
		if r.OK() {
			s.Exported++
			s.Records += r.Records
			continue
		}
		s.Failed++
	}
	return s
}
