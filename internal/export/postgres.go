package export

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS youtube_videos (
	video_id      TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	comment_count INT NOT NULL,
	exported_at   TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS youtube_comments (
	video_id     TEXT NOT NULL REFERENCES youtube_videos (video_id) ON DELETE CASCADE,
	position     INT NOT NULL,
	content      TEXT NOT NULL,
	published_at TIMESTAMPTZ,
	PRIMARY KEY (video_id, position)
);`

// PostgresSink mirrors each export into Postgres. A video's rows are
// replaced as a whole so the table always matches the latest walk.
type PostgresSink struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresSink(pool *pgxpool.Pool) *PostgresSink {
	return &PostgresSink{pool: pool, now: time.Now}
}

// EnsureSchema creates the tables if they do not exist yet.
func (s *PostgresSink) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("export: ensure schema: %w", err)
	}
	return nil
}

func (s *PostgresSink) Write(ctx context.Context, e Export) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("export: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsert = `INSERT INTO youtube_videos (video_id, title, comment_count, exported_at)
	                VALUES ($1, $2, $3, $4)
	                ON CONFLICT (video_id) DO UPDATE
	                SET title = EXCLUDED.title,
	                    comment_count = EXCLUDED.comment_count,
	                    exported_at = EXCLUDED.exported_at`
	if _, err := tx.Exec(ctx, upsert, e.VideoID, e.Title, len(e.Records), s.now().UTC()); err != nil {
		return "", fmt.Errorf("export: upsert video %s: %w", e.VideoID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM youtube_comments WHERE video_id = $1`, e.VideoID); err != nil {
		return "", fmt.Errorf("export: clear comments %s: %w", e.VideoID, err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"youtube_comments"},
		[]string{"video_id", "position", "content", "published_at"},
		pgx.CopyFromSlice(len(e.Records), func(i int) ([]any, error) {
			r := e.Records[i]
			return []any{e.VideoID, i, r.Content, parsePublishedAt(r.PublishedAt)}, nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("export: copy comments %s: %w", e.VideoID, err)
	}
	if int(n) != len(e.Records) {
		return "", fmt.Errorf("export: copied %d of %d comments for %s", n, len(e.Records), e.VideoID)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("export: commit %s: %w", e.VideoID, err)
	}
	return "postgres:youtube_comments/" + e.VideoID, nil
}

func parsePublishedAt(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
