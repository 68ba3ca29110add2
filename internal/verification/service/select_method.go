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

// SelectMethod records the customer's chosen method on an initiated session.
//
// Checks run in order: session exists, session still initiated, method
// allowed for the owning shop. The write is conditional on the session
// still being initiated, so only one of several concurrent selections wins.
func (s *Service) SelectMethod(ctx context.Context, rawSessionID string, method domain.Method) (*SelectMethodResult, error) {
	defer s.observe("select_method", time.Now())
	ctx, span := s.tracer.Start(ctx, "verification.SelectMethod")
	defer span.End()
	span.SetAttributes(attribute.String("verification.method", method.String()))

	if !method.IsValid() {
		return nil, dErrors.New(dErrors.CodeBadRequest, msgInvalidMethod)
	}
	sessionID, err := domain.ParseSessionID(rawSessionID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, msgSessionNotFound)
	}
	span.SetAttributes(attribute.String("session.id", sessionID.String()))

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		err = translateSessionErr(err, msgAlreadySelected, "load verification session")
		recordSpanError(span, err)
		return nil, err
	}
	if err := session.CanSelectMethod(); err != nil {
		return nil, err
	}
	if !s.shops.IsMethodAllowed(ctx, method, session.ShopID) {
		s.logger.InfoContext(ctx, "verification method rejected by shop policy",
			"request_id", requestcontext.RequestID(ctx),
			"session_id", sessionID.String(),
			"shop_id", session.ShopID.String(),
			"method", method.String(),
		)
		return nil, dErrors.New(dErrors.CodeMethodNotAllowed, msgMethodNotAllowed)
	}

	details, err := s.selector.Prepare(sessionID, method)
	if err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to prepare verification method")
		recordSpanError(span, err)
		return nil, err
	}

	now := requestcontext.Now(ctx)
	updated, err := s.sessions.Execute(ctx, sessionID,
		func(x *models.Session) error {
			return x.CanSelectMethod()
		},
		func(x *models.Session) {
			x.ApplyMethodSelection(method, details, now)
		},
	)
	if err != nil {
		err = translateSessionErr(err, msgAlreadySelected, "update verification session")
		recordSpanError(span, err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "verification method selected",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", sessionID.String(),
		"shop_id", updated.ShopID.String(),
		"method", method.String(),
		"status", updated.Status.String(),
	)
	if s.metrics != nil {
		s.metrics.IncMethodSelected(method.String())
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: now,
		Action:    audit.ActionMethodSelected,
		SessionID: sessionID.String(),
		ShopID:    updated.ShopID.String(),
		Method:    method.String(),
		Status:    updated.Status.String(),
		RequestID: requestcontext.RequestID(ctx),
	})

	return &SelectMethodResult{
		Status:  updated.Status,
		Method:  updated.Method,
		Details: updated.Details,
	}, nil
}
