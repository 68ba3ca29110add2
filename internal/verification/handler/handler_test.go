package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	shopmodels "passprove/internal/shop/models"
	shopservice "passprove/internal/shop/service"
	shopstore "passprove/internal/shop/store"
	"passprove/internal/verification/handler/mocks"
	"passprove/internal/verification/models"
	"passprove/internal/verification/service"
	resultstore "passprove/internal/verification/store/result"
	savedstore "passprove/internal/verification/store/saved"
	sessionstore "passprove/internal/verification/store/session"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/testutil"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
func newMockRouter(t *testing.T) (http.Handler, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(svc, discard).Register(r)
	return r, svc
}

func TestHandleInitiate(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/initiate", map[string]string{"api_key": " "}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Missing api_key")
	})

	t.Run("malformed body", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewRawRequest(t, http.MethodPost, "/verification/initiate", "{"))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Invalid request body")
	})

	t.Run("returns only the session id", func(t *testing.T) {
		router, svc := newMockRouter(t)
		id := domain.NewSessionID()
		svc.EXPECT().Initiate(gomock.Any(), service.InitiateRequest{APIKey: "pk_live", UserAgent: "widget/1"}).Return(id, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/initiate", map[string]string{
			"api_key":    "pk_live",
			"user_agent": "widget/1",
		}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]any{"session_id": id.String()}, testutil.DecodeMap(t, rr))
	})

	t.Run("store failure hides details", func(t *testing.T) {
		router, svc := newMockRouter(t)
		svc.EXPECT().Initiate(gomock.Any(), gomock.Any()).
			Return(domain.SessionID{}, dErrors.Wrap(errors.New("pq: too many connections"), dErrors.CodeInternal, "failed to create verification session"))

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/initiate", map[string]string{"api_key": "pk_live"}))
		testutil.AssertError(t, rr, http.StatusInternalServerError, "Internal server error")
	})
}

func TestHandleSelectMethod(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{"method": "ocr"}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Missing required fields")
	})

	t.Run("unknown method", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{
			"session_id": domain.NewSessionID().String(),
			"method":     "palmistry",
		}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Invalid verification method")
	})

	t.Run("redirect url is flattened", func(t *testing.T) {
		router, svc := newMockRouter(t)
		id := domain.NewSessionID().String()
		svc.EXPECT().SelectMethod(gomock.Any(), id, domain.MethodBankID).Return(&service.SelectMethodResult{
			Status:  models.StatusRequiresAction,
			Method:  domain.MethodBankID,
			Details: models.ProviderRedirect{RedirectURL: "https://p.example/bankid/auth?session=" + id, ProviderTxID: "tx-1"},
		}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{
			"session_id": id,
			"method":     "BankID",
		}))
		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.Decode[SelectMethodResponse](t, rr)
		assert.Equal(t, "requires_action", resp.Status)
		assert.Equal(t, "https://p.example/bankid/auth?session="+id, resp.RedirectURL)
		assert.Empty(t, resp.QRData)
		assert.Equal(t, "tx-1", resp.Details["provider_tx_id"])
	})

	t.Run("in-widget method has empty details", func(t *testing.T) {
		router, svc := newMockRouter(t)
		id := domain.NewSessionID().String()
		svc.EXPECT().SelectMethod(gomock.Any(), id, domain.MethodOCR).Return(&service.SelectMethodResult{
			Status:  models.StatusProcessing,
			Method:  domain.MethodOCR,
			Details: models.NoAction{},
		}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{
			"session_id": id,
			"method":     "ocr",
		}))
		require.Equal(t, http.StatusOK, rr.Code)
		body := testutil.DecodeMap(t, rr)
		assert.Equal(t, map[string]any{}, body["details"])
		assert.NotContains(t, body, "redirect_url")
		assert.NotContains(t, body, "qr_data")
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		cases := []struct {
			err    error
			status int
		}{
			{dErrors.New(dErrors.CodeNotFound, "Verification session not found"), http.StatusNotFound},
			{dErrors.New(dErrors.CodeInvalidState, "Verification session already has a method selected"), http.StatusBadRequest},
			{dErrors.New(dErrors.CodeMethodNotAllowed, "Verification method not allowed for this shop"), http.StatusBadRequest},
		}
		for _, tc := range cases {
			router, svc := newMockRouter(t)
			svc.EXPECT().SelectMethod(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tc.err)

			rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{
				"session_id": domain.NewSessionID().String(),
				"method":     "ocr",
			}))
			testutil.AssertError(t, rr, tc.status, dErrors.MessageOf(tc.err))
		}
	})
}

func TestHandleComplete(t *testing.T) {
	t.Run("missing session id", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/complete", map[string]any{"success": true}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Missing session_id")
	})

	t.Run("unknown save method", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/complete", map[string]any{
			"session_id":  domain.NewSessionID().String(),
			"success":     true,
			"save_method": "carrier-pigeon",
		}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Invalid save_method")
	})

	t.Run("negative valid days", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/complete", map[string]any{
			"session_id": domain.NewSessionID().String(),
			"valid_days": -5,
		}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "valid_days must not be negative")
	})

	t.Run("status alias completes", func(t *testing.T) {
		router, svc := newMockRouter(t)
		id := domain.NewSessionID()
		until := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
		svc.EXPECT().Complete(gomock.Any(), service.CompleteRequest{
			SessionID:  id.String(),
			Success:    true,
			SaveMethod: models.SaveMethodCookie,
		}).Return(&service.CompleteResult{
			Status:           models.StatusSuccess,
			VerificationID:   &id,
			VerificationHash: "pv_abc",
			ValidUntil:       &until,
		}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/status", map[string]any{
			"session_id":  id.String(),
			"success":     true,
			"save_method": "cookie",
		}))
		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.Decode[CompleteResponse](t, rr)
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, id.String(), resp.VerificationID)
		assert.Equal(t, "pv_abc", resp.VerificationHash)
		require.NotNil(t, resp.ValidUntil)
		assert.True(t, until.Equal(*resp.ValidUntil))
	})
}

func TestHandleValidateAndStatus(t *testing.T) {
	t.Run("missing hash", func(t *testing.T) {
		router, _ := newMockRouter(t)
		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/validate", map[string]string{}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Missing verification_hash")
	})

	t.Run("invalid verification omits optional fields", func(t *testing.T) {
		router, svc := newMockRouter(t)
		svc.EXPECT().Validate(gomock.Any(), "pv_old").Return(&service.ValidateResult{IsValid: false}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/validate", map[string]string{"verification_hash": "pv_old"}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, map[string]any{"is_valid": false}, testutil.DecodeMap(t, rr))
	})

	t.Run("status reads the session", func(t *testing.T) {
		router, svc := newMockRouter(t)
		id := domain.NewSessionID().String()
		svc.EXPECT().Status(gomock.Any(), id).Return(&service.StatusResult{
			Status:  models.StatusRequiresAction,
			Method:  domain.MethodQRCode,
			Details: models.QRCodeChallenge{Token: "t", Data: "https://qr.example/t"},
		}, nil)

		rr := testutil.Do(router, testutil.NewJSONRequest(t, http.MethodGet, "/verification/status?session_id="+id, nil))
		require.Equal(t, http.StatusOK, rr.Code)
		resp := testutil.Decode[StatusResponse](t, rr)
		assert.Equal(t, id, resp.SessionID)
		assert.Equal(t, "qrcode", resp.Method)
		assert.Equal(t, "https://qr.example/t", resp.Details["qr_data"])
		assert.Nil(t, resp.CompletedAt)
	})
}

// flow wires the real service over in-memory stores.
type flow struct {
	router http.Handler
	shops  *shopstore.InMemory
}

func newFlow(t *testing.T) *flow {
	t.Helper()
	shops := shopstore.NewInMemory()
	svc := service.New(
		sessionstore.NewInMemory(),
		savedstore.NewInMemory(),
		resultstore.NewInMemory(),
		shopservice.New(shops, shopservice.WithLogger(discard)),
		service.NewSelector("https://provider.example", "https://qr.example", nil),
		service.WithLogger(discard),
	)
	r := chi.NewRouter()
	New(svc, discard).Register(r)
	return &flow{router: r, shops: shops}
}

func (f *flow) addShop(t *testing.T, apiKey string, status shopmodels.ShopStatus, methods ...domain.Method) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.shops.Create(context.Background(), &shopmodels.Shop{
		ID:        domain.NewShopID(),
		APIKey:    apiKey,
		Name:      "Shop " + apiKey,
		Domain:    apiKey + ".example",
		Status:    status,
		Methods:   methods,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func (f *flow) post(t *testing.T, path string, body any) map[string]any {
	t.Helper()
	rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, path, body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return testutil.DecodeMap(t, rr)
}

func (f *flow) initiate(t *testing.T, apiKey string) string {
	t.Helper()
	body := f.post(t, "/verification/initiate", map[string]string{"api_key": apiKey})
	id, ok := body["session_id"].(string)
	require.True(t, ok)
	return id
}

func TestVerificationFlow(t *testing.T) {
	t.Run("qr code round trip yields a valid saved verification", func(t *testing.T) {
		f := newFlow(t)
		f.addShop(t, "pk_wine", shopmodels.ShopStatusActive)

		testutil.Given(t, "an initiated session", func(t *testing.T) {
			id := f.initiate(t, "pk_wine")

			testutil.When(t, "the customer scans a qr code and passes", func(t *testing.T) {
				selected := f.post(t, "/verification/select-method", map[string]string{"session_id": id, "method": "qrcode"})
				assert.Equal(t, "requires_action", selected["status"])
				assert.NotEmpty(t, selected["qr_data"])

				done := f.post(t, "/verification/complete", map[string]any{
					"session_id":  id,
					"success":     true,
					"save_method": "cookie",
					"metadata":    map[string]any{"birth_year": 1990},
				})
				assert.Equal(t, "success", done["status"])
				assert.Equal(t, id, done["verification_id"])
				hash, _ := done["verification_hash"].(string)
				require.NotEmpty(t, hash)

				testutil.Then(t, "the hash validates with the same method", func(t *testing.T) {
					valid := f.post(t, "/verification/validate", map[string]string{"verification_hash": hash})
					assert.Equal(t, true, valid["is_valid"])
					assert.Equal(t, "qrcode", valid["method"])
					assert.NotEmpty(t, valid["valid_until"])
					assert.Equal(t, map[string]any{"birth_year": float64(1990)}, valid["metadata"])
				})

				testutil.Then(t, "the session can no longer change", func(t *testing.T) {
					rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{"session_id": id, "method": "ocr"}))
					testutil.AssertError(t, rr, http.StatusBadRequest, "Verification session already has a method selected")
				})
			})
		})
	})

	t.Run("inactive shop is not found", func(t *testing.T) {
		f := newFlow(t)
		f.addShop(t, "pk_closed", shopmodels.ShopStatusInactive, domain.MethodBankID)

		rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/initiate", map[string]string{"api_key": "pk_closed"}))
		testutil.AssertError(t, rr, http.StatusNotFound, "Shop not found or inactive")
	})

	t.Run("bankid is refused for a mojeid-only shop", func(t *testing.T) {
		f := newFlow(t)
		f.addShop(t, "pk_moje", shopmodels.ShopStatusActive, domain.MethodMojeID)
		id := f.initiate(t, "pk_moje")

		rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{"session_id": id, "method": "bankid"}))
		testutil.AssertError(t, rr, http.StatusBadRequest, "Verification method not allowed for this shop")
	})

	t.Run("failed completion saves nothing and omits the verification id", func(t *testing.T) {
		f := newFlow(t)
		f.addShop(t, "pk_moje", shopmodels.ShopStatusActive, domain.MethodMojeID)
		id := f.initiate(t, "pk_moje")
		selected := f.post(t, "/verification/select-method", map[string]string{"session_id": id, "method": "mojeid"})
		assert.Equal(t, "requires_action", selected["status"])

		rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/complete", map[string]any{
			"session_id":  id,
			"success":     false,
			"save_method": "cookie",
		}))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "failed_technical", testutil.DecodeMap(t, rr)["status"])
		testutil.AssertNoKey(t, rr, "verification_id")
		testutil.AssertNoKey(t, rr, "verification_hash")

		status := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/verification/status?session_id="+id, nil))
		require.Equal(t, http.StatusOK, status.Code)
		assert.NotEmpty(t, testutil.DecodeMap(t, status)["completed_at"])
	})

	t.Run("unknown hash is not found", func(t *testing.T) {
		f := newFlow(t)
		rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/validate", map[string]string{"verification_hash": "pv_nope"}))
		testutil.AssertError(t, rr, http.StatusNotFound, "Verification not found")
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		f := newFlow(t)
		rr := testutil.Do(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/verification/select-method", map[string]string{
			"session_id": domain.NewSessionID().String(),
			"method":     "ocr",
		}))
		testutil.AssertError(t, rr, http.StatusNotFound, "Verification session not found")
	})
}
