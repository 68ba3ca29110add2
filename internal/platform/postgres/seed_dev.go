package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Dev shop constants used by `passprove migrate --seed-dev` and local demos.
const (
	DevShopID     = "7b0c4a57-5f3e-4f4b-9a1e-0d6c1f2a9e01"
	DevShopAPIKey = "pk_dev_local"
)

// SeedDevShop inserts an active shop allowing every method. Safe to rerun.
func SeedDevShop(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC()
	_, err := db.ExecContext(ctx, `
INSERT INTO shops (id, api_key, name, domain, status, verification_methods, logo_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, 'active', $5, $6, $7, $7)
ON CONFLICT (id) DO NOTHING`,
		DevShopID, DevShopAPIKey, "Dev Shop", "localhost",
		pq.Array([]string{"bankid", "mojeid", "ocr", "facescan", "reverification", "qrcode"}),
		"", now,
	)
	if err != nil {
		return fmt.Errorf("seed dev shop: %w", err)
	}
	return nil
}
