package service

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/audit"
	"passprove/pkg/requestcontext"
)

// Initiate opens a verification session for the active shop owning req.APIKey.
func (s *Service) Initiate(ctx context.Context, req InitiateRequest) (domain.SessionID, error) {
	defer s.observe("initiate", time.Now())
	ctx, span := s.tracer.Start(ctx, "verification.Initiate")
	defer span.End()

	shop, err := s.shops.FindActiveShop(ctx, req.APIKey)
	if err != nil {
		recordSpanError(span, err)
		return domain.SessionID{}, err
	}

	ip := firstNonEmpty(req.IPAddress, requestcontext.ClientIP(ctx))
	userAgent := firstNonEmpty(req.UserAgent, requestcontext.UserAgent(ctx))
	session := models.NewSession(domain.NewSessionID(), shop.ID, ip, userAgent, requestcontext.Now(ctx))
	span.SetAttributes(
		attribute.String("session.id", session.ID.String()),
		attribute.String("shop.id", shop.ID.String()),
	)

	if err := s.sessions.Create(ctx, session); err != nil {
		err = dErrors.Wrap(err, dErrors.CodeInternal, "failed to create verification session")
		recordSpanError(span, err)
		return domain.SessionID{}, err
	}

	dev := parseDevice(userAgent)
	s.logger.InfoContext(ctx, "verification session initiated",
		"request_id", requestcontext.RequestID(ctx),
		"session_id", session.ID.String(),
		"shop_id", shop.ID.String(),
		"browser", dev.Browser,
		"os", dev.OS,
		"mobile", dev.Mobile,
	)
	if s.metrics != nil {
		s.metrics.IncInitiated()
	}
	s.emitAudit(ctx, audit.Event{
		Timestamp: session.CreatedAt,
		Action:    audit.ActionSessionInitiated,
		SessionID: session.ID.String(),
		ShopID:    shop.ID.String(),
		Status:    session.Status.String(),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  ip,
		Browser:   dev.Browser,
		OS:        dev.OS,
	})

	return session.ID, nil
}

// firstNonEmpty returns the first non-blank candidate, or "unknown".
func firstNonEmpty(candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return unknown
}
