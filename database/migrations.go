package database

import (
	"database/sql"
	"fmt"
)

// The unique indexes on likes and reposts are not an optimization: they are
// the source of truth the toggle relies on to reject a racing duplicate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id      TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		avatar_url   TEXT,
		neighborhood TEXT NOT NULL DEFAULT '',
		is_blocked   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS posts (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		location    TEXT NOT NULL,
		image_url   TEXT,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts (created_at DESC, id ASC)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts (user_id)`,
	`CREATE TABLE IF NOT EXISTS likes (
		post_id    TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS reposts (
		post_id    TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (post_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         TEXT PRIMARY KEY,
		post_id    TEXT NOT NULL,
		user_id    TEXT NOT NULL,
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments (post_id, created_at ASC)`,
}

// Migrate applies the schema. Statements are idempotent, so running at every
// startup is safe.
func Migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
