package service

import (
	"errors"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/sentinel"
)

const (
	msgSessionNotFound   = "Verification session not found"
	msgAlreadySelected   = "Verification session already has a method selected"
	msgNotCompletable    = "Verification session is not in a valid state for completion"
	msgMethodNotAllowed  = "Verification method not allowed for this shop"
	msgVerificationGone  = "Verification not found"
	msgInvalidMethod     = "Invalid verification method"
	msgNegativeValidDays = "valid_days must not be negative"
)

// translateSessionErr maps store errors from a session mutation to domain
// errors. A lost compare-and-swap is reported with stateMsg. Only
// client-facing codes pass through; anything else becomes internal.
func translateSessionErr(err error, stateMsg, op string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de) && clientFacing(de.Code):
		return err
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, msgSessionNotFound)
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidState, stateMsg)
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
	}
}

func clientFacing(code dErrors.Code) bool {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeNotFound,
		dErrors.CodeInvalidState, dErrors.CodeMethodNotAllowed, dErrors.CodeConflict:
		return true
	}
	return false
}

// recordSpanError marks the span failed for internal errors only; client
// errors are expected outcomes.
func recordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal error")
	}
}
