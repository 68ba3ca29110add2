package saved

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/sentinel"
)

func TestInMemorySavedStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	v := &models.SavedVerification{
		Hash:           "pv_abc",
		VerificationID: domain.NewSessionID(),
		Method:         domain.MethodQRCode,
		ExpiresAt:      time.Now().Add(time.Hour),
		IsValidated:    true,
	}

	require.NoError(t, store.Save(ctx, v))
	assert.ErrorIs(t, store.Save(ctx, v), sentinel.ErrConflict, "hash is unique")

	found, err := store.FindByHash(ctx, "pv_abc")
	require.NoError(t, err)
	assert.Equal(t, v.VerificationID, found.VerificationID)

	_, err = store.FindByHash(ctx, "pv_missing")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
