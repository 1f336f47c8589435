package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/ytcomments/internal/config"
	"github.com/example/ytcomments/internal/platform/logging"
	"github.com/example/ytcomments/internal/platform/run"
	"github.com/example/ytcomments/internal/videoid"
)

func main() {
	cfg, err := config.Load(os.Args[1:], os.Stderr)
	if errors.Is(err, config.ErrHelp) {
		run.Exit(run.ExitOK)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "ytcomments:", err)
		run.Exit(run.ExitFatal)
	}

	if len(cfg.Inputs) == 0 {
		cfg.Inputs, err = prompt(os.Stdin, os.Stdout)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ytcomments:", err)
			run.Exit(run.ExitFatal)
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "ytcomments:", err)
		run.Exit(run.ExitFatal)
	}

	// logger
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ytcomments: logger:", err)
		run.Exit(run.ExitFatal)
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	if cfg.ConfigFile != "" {
		log.Debug("config file loaded", zap.String("path", cfg.ConfigFile))
	}

	a := &app{cfg: cfg, log: log, stdout: os.Stdout, runID: runID}
	code := run.New(log).WithSignals(a.run)
	_ = log.Sync()
	run.Exit(code)
}

// prompt asks for a list of videos on in and returns the entries of the
// first non-empty line.
func prompt(in io.Reader, out io.Writer) ([]string, error) {
	r := bufio.NewReader(in)
	for {
		fmt.Fprint(out, "Enter video IDs or URLs (separated by commas or spaces): ")
		line, err := r.ReadString('\n')
		if entries := videoid.Split(strings.TrimSpace(line)); len(entries) > 0 {
			return entries, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("no video ids given")
			}
			return nil, fmt.Errorf("read input: %w", err)
		}
	}
}
