package run

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFatal   = 1
	ExitPartial = 2
)

const defaultGrace = 10 * time.Second

// StartFunc runs the command and reports the exit code it wants.
type StartFunc func(ctx context.Context) (int, error)

type Runner struct {
	Logger *zap.Logger
	// Grace is how long a cancelled command may take to wind down.
	Grace time.Duration
}

func New(log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{Logger: log, Grace: defaultGrace}
}

// WithSignals runs start under a context cancelled by SIGINT or SIGTERM.
// In-flight work gets Grace to finish so partially written output is closed.
func (r *Runner) WithSignals(start StartFunc) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return r.Run(ctx, start)
}

func (r *Runner) Run(ctx context.Context, start StartFunc) int {
	type result struct {
		code int
		err  error
	}
	done := make(chan result, 1)
	go func() {
		code, err := start(ctx)
		done <- result{code, err}
	}()

	select {
	case res := <-done:
		return r.exitCode(res.code, res.err)
	case <-ctx.Done():
		r.Logger.Info("shutdown signal received")
	}

	grace := r.Grace
	if grace <= 0 {
		grace = defaultGrace
	}
	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case res := <-done:
		code := r.exitCode(res.code, res.err)
		if code == ExitOK {
			code = ExitPartial
		}
		return code
	case <-timer.C:
		r.Logger.Error("command did not stop in time", zap.Duration("grace", grace))
		return ExitFatal
	}
}

func (r *Runner) exitCode(code int, err error) int {
	if err == nil {
		return code
	}
	r.Logger.Error("command exited with error", zap.Error(err))
	if code == ExitOK {
		return ExitFatal
	}
	return code
}

func Exit(code int) {
	os.Exit(code)
}
