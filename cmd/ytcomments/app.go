package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/example/ytcomments/internal/batch"
	"github.com/example/ytcomments/internal/comments"
	"github.com/example/ytcomments/internal/config"
	"github.com/example/ytcomments/internal/export"
	"github.com/example/ytcomments/internal/platform/db"
	"github.com/example/ytcomments/internal/platform/events"
	"github.com/example/ytcomments/internal/platform/natsconn"
	"github.com/example/ytcomments/internal/platform/run"
	"github.com/example/ytcomments/internal/youtube"
)

const flushTimeout = 5 * time.Second

type app struct {
	cfg    config.Config
	log    *zap.Logger
	stdout io.Writer
	runID  string
}

func (a *app) run(ctx context.Context) (int, error) {
	src, err := youtube.New(ctx, youtube.Options{
		APIKey:   a.cfg.APIKey,
		Endpoint: a.cfg.Endpoint,
		Timeout:  a.cfg.RequestTimeout,
	})
	if err != nil {
		return run.ExitFatal, err
	}

	sink, closeSinks, err := a.sinks(ctx)
	if err != nil {
		return run.ExitFatal, err
	}
	defer closeSinks()

	pub, closeEvents := a.events()
	defer closeEvents()

	runner := &batch.Runner{
		Source:      src,
		Traversal:   comments.NewTraversal(src, a.cfg.PageSize, a.log),
		Sink:        sink,
		Reporter:    batch.NewReporter(a.stdout),
		Events:      pub,
		Log:         a.log,
		Concurrency: a.cfg.Concurrency,
	}
	sum, err := runner.Run(ctx, a.cfg.Inputs)

	flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	pub.Flush(flushCtx)
	cancel()

	if err != nil {
		return run.ExitFatal, err
	}
	if sum.Failed > 0 {
		return run.ExitPartial, nil
	}
	return run.ExitOK, nil
}

// sinks always writes text files and mirrors into Postgres when a database
// URL is configured.
func (a *app) sinks(ctx context.Context) (export.Sink, func(), error) {
	files := export.NewFileSink(a.cfg.Output, a.cfg.Timestamps)
	if a.cfg.DatabaseURL == "" {
		return files, func() {}, nil
	}

	pool, err := db.Open(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db open: %w", err)
	}
	pg := export.NewPostgresSink(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("db schema: %w", err)
	}
	a.log.Info("mirroring comments to postgres")
	return export.MultiSink{files, pg}, pool.Close, nil
}

// events connects to NATS when configured. Connection problems only disable
// publishing.
func (a *app) events() (*events.Publisher, func()) {
	if a.cfg.NATSURL == "" {
		return nil, func() {}
	}
	nc, err := natsconn.Connect(natsconn.Options{URL: a.cfg.NATSURL, Name: "ytcomments"})
	if err != nil {
		a.log.Warn("nats connect failed, events disabled", zap.Error(err))
		return nil, func() {}
	}
	js, err := nc.JetStream()
	if err != nil {
		a.log.Warn("jetstream unavailable, events disabled", zap.Error(err))
		nc.Close()
		return nil, func() {}
	}
	return events.New(js, a.runID, a.log), nc.Close
}
