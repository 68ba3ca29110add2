package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "passprove/pkg/domain-errors"
)

// TestParseSessionID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseSessionID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseSessionID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseSessionID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseSessionID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseSessionID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, SessionID(valid), id)
	})
}

// TestParseID_SecurityInvariants validates trust-boundary parsing rules.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE verification_sessions;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"URN form", "urn:uuid:550e8400-e29b-41d4-a716-446655440000", true},
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseShopID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodBankID, MethodMojeID, MethodOCR, MethodFaceScan, MethodReverification, MethodQRCode} {
		parsed, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMethod("passport")
	require.Error(t, err)
	assert.Equal(t, "Invalid verification method", dErrors.MessageOf(err))

	_, err = ParseMethods([]string{"bankid", "sms"})
	require.Error(t, err)

	assert.True(t, MethodBankID.RequiresRedirect())
	assert.False(t, MethodQRCode.RequiresRedirect())
}
