package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches outer code", func(t *testing.T) {
		err := New(CodeNotFound, "session not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches code through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("select method: %w", New(CodeInvalidState, "already selected"))
		assert.True(t, HasCode(err, CodeInvalidState))
	})

	t.Run("matches inner domain code", func(t *testing.T) {
		inner := New(CodeConflict, "duplicate")
		err := Wrap(inner, CodeInternal, "failed to save")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("foreign errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to load session")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to load session", MessageOf(err))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:       http.StatusBadRequest,
		CodeInvalidState:     http.StatusBadRequest,
		CodeMethodNotAllowed: http.StatusBadRequest,
		CodeNotFound:         http.StatusNotFound,
		CodeConflict:         http.StatusConflict,
		CodeInternal:         http.StatusInternalServerError,
		Code("unknown"):      http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
