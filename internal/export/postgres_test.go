package export

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/example/ytcomments/internal/platform/db"
)

func TestPostgresSink_ReplacesRows(t *testing.T) {
	dsn := strings.TrimSpace(os.Getenv("TEST_DATABASE_URL"))
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer pool.Close()

	s := NewPostgresSink(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	e := sampleExport()
	e.VideoID = "pg-test-video"
	if _, err := s.Write(ctx, e); err != nil {
		t.Fatalf("first write: %v", err)
	}
	e.Records = e.Records[:1]
	if _, err := s.Write(ctx, e); err != nil {
		t.Fatalf("second write: %v", err)
	}

	var n int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM youtube_comments WHERE video_id = $1`, e.VideoID).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row after replace, got %d", n)
	}
	_, _ = pool.Exec(ctx, `DELETE FROM youtube_videos WHERE video_id = $1`, e.VideoID)
}
