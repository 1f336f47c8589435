// Package events publishes fire-and-forget per-video outcome events to NATS
// JetStream so other tooling can follow an export run.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Subject constants for every event type.
const (
	SubjectVideoExported = "ytcomments.video.exported"
	SubjectVideoSkipped  = "ytcomments.video.skipped"
	SubjectRunFinished   = "ytcomments.run.finished"
)

// Event is the envelope sent to all ytcomments.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	EventName  string         `json:"event_name"`
	RunID      string         `json:"run_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// JetStream is the subset of nats.JetStreamContext the publisher needs.
type JetStream interface {
	PublishAsync(subj string, data []byte, opts ...nats.PubOpt) (nats.PubAckFuture, error)
	PublishAsyncComplete() <-chan struct{}
}

// Publisher sends events asynchronously.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js    JetStream
	log   *zap.Logger
	runID string
}

// New creates a Publisher. Pass js=nil to get a no-op stub.
func New(js JetStream, runID string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{js: js, log: log, runID: runID}
}

// Publish sends an event. Failures are logged as warnings and never surface
// to the caller.
func (p *Publisher) Publish(subject, eventName string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := Event{
		EventID:    uuid.NewString(),
		EventName:  eventName,
		RunID:      p.runID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("event", eventName), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Flush waits for outstanding acks so a short-lived process does not drop
// events on exit.
func (p *Publisher) Flush(ctx context.Context) {
	if p == nil || p.js == nil {
		return
	}
	select {
	case <-p.js.PublishAsyncComplete():
	case <-ctx.Done():
		p.log.Warn("events: flush timed out", zap.Error(ctx.Err()))
	}
}
