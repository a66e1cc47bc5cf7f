package store

import (
	"context"

	"github.com/lib/pq"
	"vozdobairro.com/voz-do-bairro/models"
)

func (s *PostgresEngagement) LikesForPosts(ctx context.Context, postIDs []string) ([]models.Like, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, user_id, created_at
		FROM likes
		WHERE post_id = ANY($1)`, pq.Array(postIDs))
	if err != nil {
		return nil, pgErr("fetch likes", err)
	}
	defer rows.Close()

	var likes []models.Like
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.PostID, &l.UserID, &l.CreatedAt); err != nil {
			return nil, pgErr("scan like", err)
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate likes", err)
	}
	return likes, nil
}

func (s *PostgresEngagement) RepostsForPosts(ctx context.Context, postIDs []string) ([]models.Repost, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, user_id, created_at
		FROM reposts
		WHERE post_id = ANY($1)`, pq.Array(postIDs))
	if err != nil {
		return nil, pgErr("fetch reposts", err)
	}
	defer rows.Close()

	var reposts []models.Repost
	for rows.Next() {
		var rp models.Repost
		if err := rows.Scan(&rp.PostID, &rp.UserID, &rp.CreatedAt); err != nil {
			return nil, pgErr("scan repost", err)
		}
		reposts = append(reposts, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate reposts", err)
	}
	return reposts, nil
}

func (s *PostgresEngagement) CommentsForPosts(ctx context.Context, postIDs []string) ([]models.Comment, error) {
	if len(postIDs) == 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, post_id, user_id, text, created_at
		FROM comments
		WHERE post_id = ANY($1)
		ORDER BY created_at ASC, id ASC`, pq.Array(postIDs))
	if err != nil {
		return nil, pgErr("fetch comments", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Text, &c.CreatedAt); err != nil {
			return nil, pgErr("scan comment", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate comments", err)
	}
	return comments, nil
}

func (s *PostgresEngagement) InsertLike(ctx context.Context, postID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())`, postID, userID)
	if err != nil {
		return pgErr("insert like", err)
	}
	return nil
}

func (s *PostgresEngagement) DeleteLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, pgErr("delete like", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pgErr("delete like", err)
	}
	return n > 0, nil
}

func (s *PostgresEngagement) CountLikes(ctx context.Context, postID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, pgErr("count likes", err)
	}
	return n, nil
}

func (s *PostgresEngagement) InsertRepost(ctx context.Context, postID, userID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reposts (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())`, postID, userID)
	if err != nil {
		return pgErr("insert repost", err)
	}
	return nil
}

func (s *PostgresEngagement) DeleteRepost(ctx context.Context, postID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM reposts WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, pgErr("delete repost", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pgErr("delete repost", err)
	}
	return n > 0, nil
}

func (s *PostgresEngagement) CountReposts(ctx context.Context, postID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reposts WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, pgErr("count reposts", err)
	}
	return n, nil
}

func (s *PostgresEngagement) AddComment(ctx context.Context, c *models.Comment) error {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO comments (id, post_id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING created_at`,
		c.ID, c.PostID, c.UserID, c.Text,
	).Scan(&c.CreatedAt)
	if err != nil {
		return pgErr("add comment", err)
	}
	return nil
}

func (s *PostgresEngagement) DeleteForPost(ctx context.Context, postID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return pgErr("begin cascade delete", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM likes WHERE post_id = $1`,
		`DELETE FROM reposts WHERE post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, q, postID); err != nil {
			return pgErr("cascade delete engagement", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return pgErr("commit cascade delete", err)
	}
	return nil
}
