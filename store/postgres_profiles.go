package store

import (
	"context"

	"github.com/lib/pq"
	"vozdobairro.com/voz-do-bairro/models"
)

func (s *PostgresProfiles) Get(ctx context.Context, userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, display_name, COALESCE(avatar_url, '') AS avatar_url,
		       neighborhood, is_blocked, created_at
		FROM profiles
		WHERE user_id = $1`, userID,
	).Scan(&p.UserID, &p.DisplayName, &p.AvatarURL,
		&p.Neighborhood, &p.IsBlocked, &p.CreatedAt)
	if err != nil {
		return nil, pgErr("get profile", err)
	}
	return &p, nil
}

func (s *PostgresProfiles) GetBatch(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	profiles := make(map[string]models.Profile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, display_name, COALESCE(avatar_url, '') AS avatar_url,
		       neighborhood, is_blocked, created_at
		FROM profiles
		WHERE user_id = ANY($1)`, pq.Array(userIDs))
	if err != nil {
		return nil, pgErr("fetch profiles", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.AvatarURL,
			&p.Neighborhood, &p.IsBlocked, &p.CreatedAt); err != nil {
			return nil, pgErr("scan profile", err)
		}
		profiles[p.UserID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate profiles", err)
	}
	return profiles, nil
}

func (s *PostgresProfiles) All(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, display_name, COALESCE(avatar_url, '') AS avatar_url,
		       neighborhood, is_blocked, created_at
		FROM profiles
		ORDER BY user_id ASC`)
	if err != nil {
		return nil, pgErr("list profiles", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.AvatarURL,
			&p.Neighborhood, &p.IsBlocked, &p.CreatedAt); err != nil {
			return nil, pgErr("scan profile", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgErr("iterate profiles", err)
	}
	return profiles, nil
}
