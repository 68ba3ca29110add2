package result

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

// PostgresStore persists results in verification_results, one row per session.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Save(ctx context.Context, r *models.VerificationResult) error {
	metadata := r.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode result metadata: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verification_results (
			verification_id, save_method, identifier, valid_until, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(r.VerificationID), string(r.SaveMethod), r.Identifier, r.ValidUntil, raw, r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification result: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByVerificationID(ctx context.Context, id domain.SessionID) (*models.VerificationResult, error) {
	var (
		r          models.VerificationResult
		sessionID  uuid.UUID
		saveMethod string
		raw        []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT verification_id, save_method, identifier, valid_until, metadata, created_at
		FROM verification_results
		WHERE verification_id = $1
	`, uuid.UUID(id)).Scan(&sessionID, &saveMethod, &r.Identifier, &r.ValidUntil, &raw, &r.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification result: %w", err)
	}
	if err := json.Unmarshal(raw, &r.Metadata); err != nil {
		return nil, fmt.Errorf("decode result metadata: %w", err)
	}
	r.VerificationID = domain.SessionID(sessionID)
	r.SaveMethod = models.SaveMethod(saveMethod)
	return &r, nil
}
