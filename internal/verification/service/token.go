package service

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

const tokenPrefix = "pv_"

// TokenSource mints opaque random identifiers.
type TokenSource func() (string, error)

// RandomToken returns "pv_" followed by 32 random bytes, base64url encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}
