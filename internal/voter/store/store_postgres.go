package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"votegate/internal/voter/models"
	"votegate/pkg/platform/sentinel"
)

// Schema creates the voters table. The record itself is a jsonb document;
// email and phone are extracted into unique columns so the document store
// keeps its one-record-per-address invariant inside the database.
const Schema = `
CREATE TABLE IF NOT EXISTS voters (
	id         UUID PRIMARY KEY,
	email      TEXT UNIQUE,
	phone      TEXT UNIQUE,
	doc        JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresVoterStore persists voter documents in PostgreSQL via pgx.
type PostgresVoterStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a PostgreSQL-backed voter store.
func NewPostgres(pool *pgxpool.Pool) *PostgresVoterStore {
	return &PostgresVoterStore{pool: pool}
}

// Migrate applies the schema. Idempotent.
func (s *PostgresVoterStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate voters: %w", err)
	}
	return nil
}

func (s *PostgresVoterStore) FindByID(ctx context.Context, id string) (*models.Voter, error) {
	return s.findBy(ctx, `SELECT doc FROM voters WHERE id = $1`, id)
}

func (s *PostgresVoterStore) FindByEmail(ctx context.Context, email string) (*models.Voter, error) {
	if email == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findBy(ctx, `SELECT doc FROM voters WHERE email = $1`, email)
}

func (s *PostgresVoterStore) FindByPhone(ctx context.Context, phone string) (*models.Voter, error) {
	if phone == "" {
		return nil, sentinel.ErrNotFound
	}
	return s.findBy(ctx, `SELECT doc FROM voters WHERE phone = $1`, phone)
}

func (s *PostgresVoterStore) Insert(ctx context.Context, voter *models.Voter) (string, error) {
	voter.ID = uuid.NewString()
	if voter.CreatedAt.IsZero() {
		voter.CreatedAt = time.Now().UTC()
	}

	doc, err := json.Marshal(voter)
	if err != nil {
		return "", fmt.Errorf("encode voter: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO voters (id, email, phone, doc, created_at) VALUES ($1, $2, $3, $4, $5)`,
		voter.ID, nullable(voter.Email), nullable(voter.Phone), doc, voter.CreatedAt,
	)
	if isUniqueViolation(err) {
		return "", fmt.Errorf("voter insert: %w", sentinel.ErrConflict)
	}
	if err != nil {
		return "", fmt.Errorf("voter insert: %w", err)
	}
	return voter.ID, nil
}

func (s *PostgresVoterStore) Replace(ctx context.Context, voter *models.Voter) error {
	doc, err := json.Marshal(voter)
	if err != nil {
		return fmt.Errorf("encode voter: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE voters SET email = $2, phone = $3, doc = $4 WHERE id = $1`,
		voter.ID, nullable(voter.Email), nullable(voter.Phone), doc,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("voter replace: %w", sentinel.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("voter replace: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("voter %s: %w", voter.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresVoterStore) findBy(ctx context.Context, query string, arg any) (*models.Voter, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, query, arg).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("voter lookup: %w", err)
	}

	var voter models.Voter
	if err := json.Unmarshal(doc, &voter); err != nil {
		return nil, fmt.Errorf("decode voter: %w", err)
	}
	return &voter, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
