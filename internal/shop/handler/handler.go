package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passprove/internal/shop/models"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/httputil"
	"passprove/pkg/requestcontext"
)

// Service defines the shop lookup used by the widget bootstrap.
type Service interface {
	FindActiveShopByAPIKey(ctx context.Context, apiKey string) (*models.Projection, error)
}

// Handler exposes shop directory endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts shop endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/shops/by-api-key", h.HandleFindByAPIKey)
}

// HandleFindByAPIKey handles GET /shops/by-api-key?key=.
func (h *Handler) HandleFindByAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	shop, err := h.service.FindActiveShopByAPIKey(ctx, r.URL.Query().Get("key"))
	if err != nil {
		if dErrors.CodeOf(err) == dErrors.CodeInternal {
			h.logger.ErrorContext(ctx, "shop lookup failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, shop)
}
