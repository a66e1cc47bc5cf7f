package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"vozdobairro.com/voz-do-bairro/apperr"
)

// The three Postgres-backed leaf stores share a *sql.DB but are distinct
// types so nothing reaches across a store boundary by accident.
type PostgresPosts struct {
	db *sql.DB
}

type PostgresEngagement struct {
	db *sql.DB
}

type PostgresProfiles struct {
	db *sql.DB
}

func NewPostgresPosts(db *sql.DB) *PostgresPosts           { return &PostgresPosts{db: db} }
func NewPostgresEngagement(db *sql.DB) *PostgresEngagement { return &PostgresEngagement{db: db} }
func NewPostgresProfiles(db *sql.DB) *PostgresProfiles     { return &PostgresProfiles{db: db} }

// uniqueViolation is the Postgres error code for a unique-constraint hit.
const uniqueViolation = "23505"

func pgErr(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	var pqe *pq.Error
	if errors.As(err, &pqe) && pqe.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	}
	return fmt.Errorf("%s: %w: %v", op, apperr.ErrStoreUnavailable, err)
}
