// Package httputil holds the JSON request/response helpers shared by handlers.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "passprove/pkg/domain-errors"
)

// maxBodyBytes bounds request bodies; verification payloads are small.
const maxBodyBytes = 1 << 20

// internalErrorMessage is the only message clients see for 5xx responses.
const internalErrorMessage = "Internal server error"

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Validatable is implemented by request bodies that check themselves.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request bodies that trim or default fields
// before validation.
type Normalizable interface {
	Normalize()
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders err as {"error": message}. Errors without a domain code,
// and internal errors, are rendered with a generic message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	msg := dErrors.MessageOf(err)
	if status >= http.StatusInternalServerError || msg == "" {
		msg = internalErrorMessage
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// DecodeAndPrepare decodes a JSON body into T, normalizes and validates it.
// On failure the error response is already written and ok is false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		if logger != nil {
			logger.WarnContext(ctx, "failed to decode request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Invalid request body"))
		return nil, false
	}

	if n, ok := any(&req).(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			if logger != nil {
				logger.InfoContext(ctx, "request validation failed",
					"request_id", requestID,
					"error", err,
				)
			}
			WriteError(w, err)
			return nil, false
		}
	}
	return &req, true
}
