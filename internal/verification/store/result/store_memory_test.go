package result

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

func TestInMemoryResultStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemory()
	id := domain.NewSessionID()
	r := &models.VerificationResult{
		VerificationID: id,
		SaveMethod:     models.SaveMethodEmail,
		ValidUntil:     time.Now().Add(24 * time.Hour),
		Metadata:       map[string]any{"birth_year": float64(1990)},
	}

	require.NoError(t, store.Save(ctx, r))
	assert.ErrorIs(t, store.Save(ctx, r), sentinel.ErrConflict)

	r.Metadata["birth_year"] = float64(2010)
	found, err := store.FindByVerificationID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, float64(1990), found.Metadata["birth_year"], "stored copy is isolated from caller")

	_, err = store.FindByVerificationID(ctx, domain.NewSessionID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
