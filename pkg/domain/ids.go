package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "passprove/pkg/domain-errors"
)

// ShopID identifies a shop (the API-key-holding tenant).
type ShopID uuid.UUID

// SessionID identifies one verification session. It doubles as the
// verification_id returned to shops after a successful completion.
type SessionID uuid.UUID

func (id ShopID) String() string    { return uuid.UUID(id).String() }
func (id ShopID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// NewSessionID returns a random (v4) session id.
func NewSessionID() SessionID { return SessionID(uuid.New()) }

// NewShopID returns a random (v4) shop id.
func NewShopID() ShopID { return ShopID(uuid.New()) }

// ParseShopID parses a shop id from external input.
func ParseShopID(s string) (ShopID, error) {
	u, err := parseUUID(s, "shop_id")
	return ShopID(u), err
}

// ParseSessionID parses a session id from external input.
func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session_id")
	return SessionID(u), err
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be empty")
	}
	// uuid.Parse also accepts urn and braced forms; ids are only ever issued in
	// canonical form, so anything longer is rejected up front.
	if len(s) != 36 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}
