package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/audit"
	"passprove/pkg/platform/sentinel"
	"passprove/pkg/requestcontext"
)

// Validate checks a saved verification by hash. Metadata is looked up by
// the stored verification id and is optional: lookup failures are logged,
// never returned.
func (s *Service) Validate(ctx context.Context, hash string) (*ValidateResult, error) {
	defer s.observe("validate", time.Now())
	ctx, span := s.tracer.Start(ctx, "verification.Validate")
	defer span.End()

	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing verification_hash")
	}

	saved, err := s.saved.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgVerificationGone)
		}
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to load saved verification")
		recordSpanError(span, err)
		return nil, err
	}

	now := requestcontext.Now(ctx)
	result := &ValidateResult{IsValid: saved.IsValid(now)}
	if result.IsValid {
		expires := saved.ExpiresAt
		result.Method = saved.Method
		result.ValidUntil = &expires
		result.Metadata = s.lookupMetadata(ctx, saved.VerificationID)
	}

	if s.metrics != nil {
		s.metrics.IncValidation(result.IsValid)
	}
	outcome := "invalid"
	if result.IsValid {
		outcome = "valid"
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionVerificationValidated,
		SessionID: saved.VerificationID.String(),
		Method:    saved.Method.String(),
		Outcome:   outcome,
		RequestID: requestcontext.RequestID(ctx),
	})

	return result, nil
}

func (s *Service) lookupMetadata(ctx context.Context, verificationID domain.SessionID) map[string]any {
	r, err := s.results.FindByVerificationID(ctx, verificationID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "verification metadata lookup failed",
				"request_id", requestcontext.RequestID(ctx),
				"verification_id", verificationID.String(),
				"error", err,
			)
		}
		return nil
	}
	if len(r.Metadata) == 0 {
		return nil
	}
	return r.Metadata
}
