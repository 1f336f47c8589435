package batch

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Reporter prints one status line per video and a closing summary.
// A nil Reporter prints nothing.
type Reporter struct {
	mu  sync.Mutex
	out io.Writer

	ok   *color.Color
	warn *color.Color
	bad  *color.Color
	dim  *color.Color
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{
		out:  out,
		ok:   color.New(color.FgGreen, color.Bold),
		warn: color.New(color.FgYellow),
		bad:  color.New(color.FgRed, color.Bold),
		dim:  color.New(color.Faint),
	}
}

func (r *Reporter) Result(n, total int, res Result) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := r.dim.Sprintf("[%d/%d]", n, total)
	switch res.Outcome {
	case OutcomeExported:
		fmt.Fprintf(r.out, "%s %s %s %q: %d comments -> %s\n",
			prefix, r.ok.Sprint("OK"), res.VideoID, res.Title, res.Records, res.Location)
	case OutcomeCommentsDisabled:
		fmt.Fprintf(r.out, "%s %s %s: comments are disabled\n", prefix, r.warn.Sprint("SKIPPED"), res.VideoID)
	case OutcomeNotFound:
		fmt.Fprintf(r.out, "%s %s %s: video not found\n", prefix, r.warn.Sprint("SKIPPED"), res.VideoID)
	case OutcomeInvalidInput:
		fmt.Fprintf(r.out, "%s %s %q: not a video id or url\n", prefix, r.warn.Sprint("INVALID"), res.Input)
	case OutcomeAborted:
		fmt.Fprintf(r.out, "%s %s %s\n", prefix, r.dim.Sprint("ABORTED"), res.Input)
	default:
		fmt.Fprintf(r.out, "%s %s %s: %v\n", prefix, r.bad.Sprint("FAILED"), labelOf(res), res.Err)
	}
}

func (r *Reporter) Summary(s Summary) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "Total comments and replies fetched: %d\n", s.Records)
	line := fmt.Sprintf("Exported %d of %d videos", s.Exported, len(s.Results))
	if s.Failed > 0 {
		fmt.Fprintln(r.out, r.warn.Sprint(line))
		return
	}
	fmt.Fprintln(r.out, r.ok.Sprint(line))
}

func labelOf(res Result) string {
	if res.VideoID != "" {
		return res.VideoID
	}
	return fmt.Sprintf("%q", res.Input)
}
