package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"ighelper/pkg/models"
)

// Store is the post archive. It remembers every post a run has extracted
// so later runs can skip work and reports can look back further than a
// single run.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the archive at path
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS posts (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			url        TEXT NOT NULL UNIQUE,
			account    TEXT NOT NULL,
			caption    TEXT,
			posted_at  TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_posts_account ON posts(account);
		CREATE INDEX IF NOT EXISTS idx_posts_posted_at ON posts(posted_at);
	`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SavePosts upserts posts keyed by canonical URL. Re-extracting a known
// post refreshes its caption and timestamps rather than duplicating it.
func (s *Store) SavePosts(ctx context.Context, posts []*models.Post) (int, error) {
	if s == nil || s.db == nil {
		return 0, errors.New("store is not initialized")
	}
	if len(posts) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	fetchedAt := formatTime(time.Now())
	saved := 0
	for _, p := range posts {
		if p == nil || strings.TrimSpace(p.URL) == "" {
			continue
		}
		var captionVal sql.NullString
		if p.Caption != "" {
			captionVal = sql.NullString{String: p.Caption, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts (url, account, caption, posted_at, fetched_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(url) DO UPDATE SET
				account = excluded.account,
				caption = excluded.caption,
				posted_at = excluded.posted_at,
				fetched_at = excluded.fetched_at
		`, p.URL, p.Account, captionVal, formatTime(p.DatePosted), fetchedAt)
		if err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("save post: %w", err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save: %w", err)
	}
	return saved, nil
}

// Seen reports whether the archive already holds url
func (s *Store) Seen(ctx context.Context, url string) (bool, error) {
	if s == nil || s.db == nil {
		return false, errors.New("store is not initialized")
	}
	var one int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM posts WHERE url = ?", url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("seen: %w", err)
	}
	return true, nil
}

// FilterNew returns the subset of posts not yet in the archive, order
// preserved
func (s *Store) FilterNew(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}

	var fresh []*models.Post
	for _, p := range posts {
		seen, err := s.Seen(ctx, p.URL)
		if err != nil {
			return nil, err
		}
		if !seen {
			fresh = append(fresh, p)
		}
	}
	return fresh, nil
}

// RecentPosts returns archived posts published at or after since, newest
// first
func (s *Store) RecentPosts(ctx context.Context, since time.Time) ([]*models.Post, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, account, caption, posted_at
		FROM posts
		WHERE posted_at >= ?
		ORDER BY posted_at DESC
	`, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("recent posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []*models.Post
	for rows.Next() {
		var (
			p          models.Post
			captionVal sql.NullString
			postedAt   string
		)
		if err := rows.Scan(&p.URL, &p.Account, &captionVal, &postedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		if captionVal.Valid {
			p.Caption = captionVal.String
		}
		p.DatePosted, err = parseTime(postedAt)
		if err != nil {
			return nil, fmt.Errorf("parse posted_at: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}

	return posts, nil
}

// CountByAccount returns how many archived posts each account has
func (s *Store) CountByAccount(ctx context.Context) (map[string]int, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("store is not initialized")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT account, COUNT(*) FROM posts GROUP BY account
	`)
	if err != nil {
		return nil, fmt.Errorf("count by account: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var account string
		var n int
		if err := rows.Scan(&account, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[account] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}

	return counts, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, value)
}
