package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/audit"
	"passprove/pkg/requestcontext"
)

const (
	recordSavedVerification  = "saved_verification"
	recordVerificationResult = "verification_result"
)

// Complete records the outcome reported for a session awaiting completion.
//
// On success with a save method and a recorded method it also writes a
// saved verification and a verification result. Those writes are
// best-effort: failures are logged and counted, never returned, and the
// hash is only reported when the saved verification persisted.
func (s *Service) Complete(ctx context.Context, req CompleteRequest) (*CompleteResult, error) {
	defer s.observe("complete", time.Now())
	ctx, span := s.tracer.Start(ctx, "verification.Complete")
	defer span.End()

	sessionID, err := domain.ParseSessionID(req.SessionID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, msgSessionNotFound)
	}
	if req.ValidDays < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgNegativeValidDays)
	}
	span.SetAttributes(
		attribute.String("session.id", sessionID.String()),
		attribute.Bool("verification.success", req.Success),
	)

	now := requestcontext.Now(ctx)
	session, err := s.sessions.Execute(ctx, sessionID,
		func(x *models.Session) error {
			return x.CanComplete()
		},
		func(x *models.Session) {
			x.ApplyCompletion(req.Success, now)
		},
	)
	if err != nil {
		err = translateSessionErr(err, msgNotCompletable, "complete verification session")
		recordSpanError(span, err)
		return nil, err
	}

	result := &CompleteResult{Status: session.Status}
	if req.Success {
		id := session.ID
		result.VerificationID = &id
		if req.SaveMethod != "" && session.HasMethod() {
			s.remember(ctx, session, req, now, result)
		}
	}

	s.logger.InfoContext(ctx, "verification session completed",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID.String(),
		"shop_id", session.ShopID.String(),
		"method", session.Method.String(),
		"status", session.Status.String(),
		"saved", result.VerificationHash != "",
	)
	if s.metrics != nil {
		s.metrics.IncCompleted(session.Method.String(), session.Status.String())
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionSessionCompleted,
		SessionID: session.ID.String(),
		ShopID:    session.ShopID.String(),
		Method:    session.Method.String(),
		Status:    session.Status.String(),
		Outcome:   string(session.Result),
		RequestID: requestcontext.RequestID(ctx),
	})

	return result, nil
}

// remember writes the saved verification and the verification result.
func (s *Service) remember(ctx context.Context, session *models.Session, req CompleteRequest, now time.Time, result *CompleteResult) {
	days := req.ValidDays
	if days == 0 {
		days = s.defaultValidDays
	}
	validUntil := now.AddDate(0, 0, days)

	if saved, err := s.mintSaved(session, validUntil, now); err != nil {
		s.auxiliaryFailure(ctx, recordSavedVerification, session.ID, err)
	} else if err := s.saved.Save(ctx, saved); err != nil {
		s.auxiliaryFailure(ctx, recordSavedVerification, session.ID, err)
	} else {
		result.VerificationHash = saved.Hash
		result.ValidUntil = &validUntil
		if s.metrics != nil {
			s.metrics.IncSaved()
		}
		s.emitAudit(ctx, audit.Event{
			Timestamp: now,
			Action:    audit.ActionSavedVerificationMade,
			SessionID: session.ID.String(),
			ShopID:    session.ShopID.String(),
			Method:    session.Method.String(),
			RequestID: requestcontext.RequestID(ctx),
		})
	}

	vr := &models.VerificationResult{
		VerificationID: session.ID,
		SaveMethod:     req.SaveMethod,
		Identifier:     req.Identifier,
		ValidUntil:     validUntil,
		Metadata:       req.Metadata,
		CreatedAt:      now,
	}
	if vr.Metadata == nil {
		vr.Metadata = map[string]any{}
	}
	if err := s.results.Save(ctx, vr); err != nil {
		s.auxiliaryFailure(ctx, recordVerificationResult, session.ID, err)
	}
}

func (s *Service) mintSaved(session *models.Session, validUntil, now time.Time) (*models.SavedVerification, error) {
	hash, err := s.tokens()
	if err != nil {
		return nil, err
	}
	validationToken, err := s.tokens()
	if err != nil {
		return nil, err
	}
	return &models.SavedVerification{
		Hash:                hash,
		VerificationID:      session.ID,
		Method:              session.Method,
		ExpiresAt:           validUntil,
		IsValidated:         true,
		ValidationToken:     validationToken,
		ValidationExpiresAt: validUntil,
		CreatedAt:           now,
	}, nil
}

func (s *Service) auxiliaryFailure(ctx context.Context, record string, sessionID domain.SessionID, err error) {
	s.logger.WarnContext(ctx, "best-effort verification write failed",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sessionID.String(),
		"record", record,
		"error", err,
	)
	if s.metrics != nil {
		s.metrics.IncAuxiliaryFailure(record)
	}
}
