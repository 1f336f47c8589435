package run

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRun_ReturnsCommandCode(t *testing.T) {
	r := New(nil)
	cases := []struct {
		name string
		code int
		err  error
		want int
	}{
		{"ok", ExitOK, nil, ExitOK},
		{"partial", ExitPartial, nil, ExitPartial},
		{"error without code", ExitOK, errors.New("boom"), ExitFatal},
		{"error with code", ExitPartial, errors.New("boom"), ExitPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := r.Run(context.Background(), func(context.Context) (int, error) {
				return tc.code, tc.err
			})
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRun_CancelWaitsForCommand(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	finished := false
	code := New(nil).Run(ctx, func(ctx context.Context) (int, error) {
		cancel()
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		finished = true
		return ExitOK, nil
	})
	if !finished {
		t.Fatal("expected command to finish before returning")
	}
	if code != ExitPartial {
		t.Fatalf("expected %d after interrupt, got %d", ExitPartial, code)
	}
}

func TestRun_GraceExpires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	block := make(chan struct{})
	defer close(block)

	r := New(nil)
	r.Grace = 20 * time.Millisecond
	code := r.Run(ctx, func(context.Context) (int, error) {
		<-block
		return ExitOK, nil
	})
	if code != ExitFatal {
		t.Fatalf("expected %d, got %d", ExitFatal, code)
	}
}
