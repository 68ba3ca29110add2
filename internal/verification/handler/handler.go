package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"passprove/internal/verification/models"
	"passprove/internal/verification/service"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/httputil"
	"passprove/pkg/requestcontext"
)

// Service defines the verification operations the widget drives.
type Service interface {
	Initiate(ctx context.Context, req service.InitiateRequest) (domain.SessionID, error)
	SelectMethod(ctx context.Context, sessionID string, method domain.Method) (*service.SelectMethodResult, error)
	Complete(ctx context.Context, req service.CompleteRequest) (*service.CompleteResult, error)
	Validate(ctx context.Context, hash string) (*service.ValidateResult, error)
	Status(ctx context.Context, sessionID string) (*service.StatusResult, error)
}

// Handler exposes the verification session endpoints.
type Handler struct {
	service       Service
	logger        *slog.Logger
	sessionLimit  func(http.Handler) http.Handler
	validateLimit func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithRateLimits wraps the widget session routes and the validate route in
// their own rate limiters.
func WithRateLimits(session, validate func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		h.sessionLimit = session
		h.validateLimit = validate
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:       service,
		logger:        logger,
		sessionLimit:  passThrough,
		validateLimit: passThrough,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func passThrough(next http.Handler) http.Handler { return next }

// Register mounts verification endpoints on the router.
// POST /verification/status is kept as an alias of complete for older widgets.
func (h *Handler) Register(r chi.Router) {
	r.Route("/verification", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.sessionLimit)
			r.Post("/initiate", h.HandleInitiate)
			r.Post("/select-method", h.HandleSelectMethod)
			r.Post("/complete", h.HandleComplete)
			r.Post("/status", h.HandleComplete)
			r.Get("/status", h.HandleStatus)
		})
		r.With(h.validateLimit).Post("/validate", h.HandleValidate)
	})
}

// HandleInitiate handles POST /verification/initiate.
func (h *Handler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[InitiateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	sessionID, err := h.service.Initiate(ctx, service.InitiateRequest{
		APIKey:    req.APIKey,
		IPAddress: req.IPAddress,
		UserAgent: req.UserAgent,
	})
	if err != nil {
		h.writeError(ctx, w, "initiate verification", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, InitiateResponse{SessionID: sessionID.String()})
}

// HandleSelectMethod handles POST /verification/select-method.
func (h *Handler) HandleSelectMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SelectMethodRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.SelectMethod(ctx, req.SessionID, domain.Method(req.Method))
	if err != nil {
		h.writeError(ctx, w, "select verification method", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toSelectMethodResponse(res))
}

// HandleComplete handles POST /verification/complete.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CompleteRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Complete(ctx, service.CompleteRequest{
		SessionID:  req.SessionID,
		Success:    req.Success,
		SaveMethod: models.SaveMethod(req.SaveMethod),
		Identifier: req.Identifier,
		ValidDays:  req.ValidDays,
		Metadata:   req.Metadata,
	})
	if err != nil {
		h.writeError(ctx, w, "complete verification", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toCompleteResponse(res))
}

// HandleStatus handles GET /verification/status?session_id=.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.URL.Query().Get("session_id")

	res, err := h.service.Status(ctx, sessionID)
	if err != nil {
		h.writeError(ctx, w, "load verification status", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toStatusResponse(sessionID, res))
}

// HandleValidate handles POST /verification/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ValidateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	res, err := h.service.Validate(ctx, req.VerificationHash)
	if err != nil {
		h.writeError(ctx, w, "validate saved verification", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toValidateResponse(res))
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, "failed to "+op,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
