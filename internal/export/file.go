package export

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSink writes one UTF-8 text file per video, one record per line.
type FileSink struct {
	// Dir receives "<sanitized title>.txt" files.
	Dir string
	// Path, when set, is used verbatim instead of a name derived from the title.
	Path string
	// Timestamps prefixes every line with the record's publish time.
	Timestamps bool

	mu sync.Mutex
	// claimed maps a folded output path to the video that owns it this run.
	claimed map[string]string
}

// NewFileSink interprets output as a directory unless it names a .txt file.
func NewFileSink(output string, timestamps bool) *FileSink {
	output = strings.TrimSpace(output)
	if output == "" {
		output = "."
	}
	if strings.EqualFold(filepath.Ext(output), Extension) {
		return &FileSink{Path: output, Timestamps: timestamps}
	}
	return &FileSink{Dir: output, Timestamps: timestamps}
}

// SingleFile reports whether every video would land in the same file.
func (s *FileSink) SingleFile() bool {
	return s.Path != ""
}

// path resolves and claims the output file for e. When another video of the
// same run already owns the title's name, the id is appended to keep both.
func (s *FileSink) path(e Export) string {
	if s.Path != "" {
		return s.Path
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claimed == nil {
		s.claimed = map[string]string{}
	}

	name := FileName(e.Title, e.VideoID)
	p := filepath.Join(s.Dir, name)
	if owner, ok := s.claimed[foldPath(p)]; ok && owner != e.VideoID {
		name = strings.TrimSuffix(name, Extension) + "_" + SanitizeFilename(e.VideoID) + Extension
		p = filepath.Join(s.Dir, name)
	}
	s.claimed[foldPath(p)] = e.VideoID
	return p
}

// foldPath makes names that differ only in case collide, as they do on
// case-insensitive file systems.
func foldPath(p string) string {
	return strings.ToLower(filepath.Clean(p))
}

func (s *FileSink) Write(ctx context.Context, e Export) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p := s.path(e)
	if dir := filepath.Dir(p); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("export: create dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(p)
	if err != nil {
		return "", fmt.Errorf("export: create %s: %w", p, err)
	}
	w := bufio.NewWriter(f)
	for _, r := range e.Records {
		if _, err := w.WriteString(r.Line(s.Timestamps) + "\n"); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("export: write %s: %w", p, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("export: flush %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: close %s: %w", p, err)
	}
	return p, nil
}
