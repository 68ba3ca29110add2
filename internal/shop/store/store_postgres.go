package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"passprove/internal/shop/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore reads shops from the shops table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const shopColumns = `id, api_key, name, domain, status, verification_methods, logo_url, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, shop *models.Shop) error {
	methods := make([]string, 0, len(shop.Methods))
	for _, m := range shop.Methods {
		methods = append(methods, m.String())
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shops (`+shopColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.UUID(shop.ID), shop.APIKey, shop.Name, shop.Domain, string(shop.Status),
		pq.Array(methods), shop.LogoURL, shop.CreatedAt, shop.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindActiveByAPIKey(ctx context.Context, apiKey string) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE api_key = $1 AND status = 'active'
	`, apiKey)
	shop, err := scanShop(row)
	if err != nil {
		return nil, fmt.Errorf("find shop by api key: %w", err)
	}
	return shop, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ShopID) (*models.Shop, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+shopColumns+`
		FROM shops
		WHERE id = $1
	`, uuid.UUID(id))
	shop, err := scanShop(row)
	if err != nil {
		return nil, fmt.Errorf("find shop by id: %w", err)
	}
	return shop, nil
}

func scanShop(row *sql.Row) (*models.Shop, error) {
	var (
		shop    models.Shop
		id      uuid.UUID
		status  string
		methods []string
	)
	err := row.Scan(&id, &shop.APIKey, &shop.Name, &shop.Domain, &status,
		pq.Array(&methods), &shop.LogoURL, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	shop.ID = domain.ShopID(id)
	shop.Status = models.ShopStatus(status)
	// Unknown tags left by manual edits are dropped rather than failing the lookup.
	for _, raw := range methods {
		if m := domain.Method(raw); m.IsValid() {
			shop.Methods = append(shop.Methods, m)
		}
	}
	return &shop, nil
}
