package session

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

// PostgresStore persists sessions in verification_sessions. Mutations are
// conditional on the status observed at read time.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, session *models.Session) error {
	details, err := models.MarshalDetails(session.Details)
	if err != nil {
		return fmt.Errorf("encode session details: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO verification_sessions (
			id, shop_id, status, method, method_details, ip_address, user_agent,
			verification_result, created_at, updated_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, uuid.UUID(session.ID), uuid.UUID(session.ShopID), string(session.Status),
		nullString(string(session.Method)), details, session.IPAddress, session.UserAgent,
		nullString(string(session.Result)), session.CreatedAt, session.UpdatedAt, session.CompletedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification session: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.SessionID) (*models.Session, error) {
	var (
		session     models.Session
		sessionID   uuid.UUID
		shopID      uuid.UUID
		status      string
		method      sql.NullString
		details     []byte
		result      sql.NullString
		completedAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, shop_id, status, method, method_details, ip_address, user_agent,
			verification_result, created_at, updated_at, completed_at
		FROM verification_sessions
		WHERE id = $1
	`, uuid.UUID(id)).Scan(&sessionID, &shopID, &status, &method, &details,
		&session.IPAddress, &session.UserAgent, &result,
		&session.CreatedAt, &session.UpdatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find verification session: %w", err)
	}

	session.ID = domain.SessionID(sessionID)
	session.ShopID = domain.ShopID(shopID)
	// A stored value the model rejects is corruption, not a client error.
	if session.Status, err = models.ParseStatus(status); err != nil {
		return nil, fmt.Errorf("verification session %s: %v", id, err)
	}
	session.Method = domain.Method(method.String)
	if session.Details, err = models.UnmarshalDetails(details); err != nil {
		return nil, fmt.Errorf("verification session %s: %v", id, err)
	}
	session.Result = models.Result(result.String)
	if completedAt.Valid {
		t := completedAt.Time
		session.CompletedAt = &t
	}
	return &session, nil
}

// Execute loads the session, runs validate and mutate, then writes it back
// only if the stored status still equals the one validate saw. A lost race
// returns sentinel.ErrInvalidState.
func (s *PostgresStore) Execute(ctx context.Context, id domain.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error) {
	session, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(session); err != nil {
		return nil, err
	}
	observed := session.Status
	mutate(session)

	details, err := models.MarshalDetails(session.Details)
	if err != nil {
		return nil, fmt.Errorf("encode session details: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE verification_sessions
		SET status = $3,
			method = $4,
			method_details = $5,
			verification_result = $6,
			updated_at = $7,
			completed_at = $8
		WHERE id = $1 AND status = $2
	`, uuid.UUID(id), string(observed), string(session.Status),
		nullString(string(session.Method)), details, nullString(string(session.Result)),
		session.UpdatedAt, session.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("update verification session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update verification session rows: %w", err)
	}
	if n == 0 {
		return nil, sentinel.ErrInvalidState
	}
	return session, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
