package service

import (
	"context"
	"strings"

	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
)

// Status returns a read-only view of a session for polling clients.
func (s *Service) Status(ctx context.Context, rawSessionID string) (*StatusResult, error) {
	if strings.TrimSpace(rawSessionID) == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing session_id")
	}
	sessionID, err := domain.ParseSessionID(rawSessionID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeNotFound, msgSessionNotFound)
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, translateSessionErr(err, "", "load verification session")
	}
	return &StatusResult{
		Status:      session.Status,
		Method:      session.Method,
		CompletedAt: session.CompletedAt,
		Details:     session.Details,
	}, nil
}
