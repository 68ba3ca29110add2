package saved

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

// PostgresStore persists saved verifications in saved_verifications.
// Rows are insert-only.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, v *models.SavedVerification) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saved_verifications (
			verification_hash, verification_id, method, expires_at, is_validated,
			validation_token, validation_expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, v.Hash, uuid.UUID(v.VerificationID), v.Method.String(), v.ExpiresAt, v.IsValidated,
		v.ValidationToken, v.ValidationExpiresAt, v.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert saved verification: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByHash(ctx context.Context, hash string) (*models.SavedVerification, error) {
	var (
		v      models.SavedVerification
		id     uuid.UUID
		method string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT verification_hash, verification_id, method, expires_at, is_validated,
			validation_token, validation_expires_at, created_at
		FROM saved_verifications
		WHERE verification_hash = $1
	`, hash).Scan(&v.Hash, &id, &method, &v.ExpiresAt, &v.IsValidated,
		&v.ValidationToken, &v.ValidationExpiresAt, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find saved verification: %w", err)
	}
	v.VerificationID = domain.SessionID(id)
	v.Method = domain.Method(method)
	return &v, nil
}
