package store

import (
	"context"
	"database/sql"
	"time"

	"vozdobairro.com/voz-do-bairro/models"
)

func (s *PostgresPosts) Create(ctx context.Context, p *models.Post) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (id, user_id, title, description, category, location, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at`,
		p.ID, p.UserID, p.Title, p.Description, p.Category, p.Location, p.ImageURL,
	).Scan(&p.CreatedAt)
	if err != nil {
		return pgErr("create post", err)
	}
	return nil
}

func (s *PostgresPosts) Get(ctx context.Context, id string) (*models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, title, description, category, location,
		       COALESCE(image_url, '') AS image_url, created_at
		FROM posts
		WHERE id = $1`, id,
	).Scan(&p.ID, &p.UserID, &p.Title, &p.Description, &p.Category,
		&p.Location, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		return nil, pgErr("get post", err)
	}
	return &p, nil
}

func (s *PostgresPosts) ListRecent(ctx context.Context, after time.Time, limit int) ([]models.Post, error) {
	query := `
		SELECT id, user_id, title, description, category, location,
		       COALESCE(image_url, '') AS image_url, created_at
		FROM posts
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		ORDER BY created_at DESC, id ASC`
	args := []interface{}{nullableTime(after)}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgErr("list recent posts", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (s *PostgresPosts) ListByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, category, location,
		       COALESCE(image_url, '') AS image_url, created_at
		FROM posts
		WHERE user_id = $1
		ORDER BY created_at DESC, id ASC`, authorID)
	if err != nil {
		return nil, pgErr("list posts by author", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (s *PostgresPosts) ListAll(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, title, description, category, location,
		       COALESCE(image_url, '') AS image_url, created_at
		FROM posts
		ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, pgErr("list all posts", err)
	}
	defer rows.Close()
	return scanPosts(rows)
}

func (s *PostgresPosts) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return pgErr("delete post", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return pgErr("delete post", sql.ErrNoRows)
	}
	return nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Description,
			&p.Category, &p.Location, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, pgErr("scan post", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate posts", err)
	}
	return posts, nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
