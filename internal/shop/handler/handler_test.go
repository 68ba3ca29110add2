package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"passprove/internal/shop/handler/mocks"
	"passprove/internal/shop/models"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
func newTestRouter(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r, svc
}

func TestHandleFindByAPIKey(t *testing.T) {
	t.Run("returns projection", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().FindActiveShopByAPIKey(gomock.Any(), "pk_live").Return(&models.Projection{
			ID:                  "7b0c4a57-5f3e-4f4b-9a1e-0d6c1f2a9e01",
			Name:                "Vinoteka",
			Domain:              "vinoteka.cz",
			VerificationMethods: []string{"bankid"},
			Status:              models.ShopStatusActive,
		}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/shops/by-api-key?key=pk_live", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		body := testutil.DecodeMap(t, rr)
		assert.Equal(t, "Vinoteka", body["name"])
		assert.Equal(t, []any{"bankid"}, body["verification_methods"])
		assert.NotContains(t, rr.Body.String(), "api_key")
	})

	t.Run("missing key", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().FindActiveShopByAPIKey(gomock.Any(), "").
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "Missing API key"))

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/shops/by-api-key", nil))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Missing API key")
	})

	t.Run("inactive shop", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().FindActiveShopByAPIKey(gomock.Any(), "pk_off").
			Return(nil, dErrors.New(dErrors.CodeNotFound, "Shop not found or inactive"))

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/shops/by-api-key?key=pk_off", nil))
		testutil.AssertError(t, rr, http.StatusNotFound, "Shop not found or inactive")
	})

	t.Run("internal failure hides details", func(t *testing.T) {
		router, svc := newTestRouter(t)
		svc.EXPECT().FindActiveShopByAPIKey(gomock.Any(), "pk_err").
			Return(nil, dErrors.Wrap(errors.New("dial tcp: refused"), dErrors.CodeInternal, "failed to load shop"))

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/shops/by-api-key?key=pk_err", nil))
		testutil.AssertError(t, rr, http.StatusInternalServerError, "Internal server error")
	})
}
