package models

import (
	"time"

	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
)

// Session is one customer's attempt to prove their age for a shop.
//
// Invariants:
//   - Status only moves forward along the transition graph
//   - Method is set at most once, and only while Status is initiated
//   - Result and CompletedAt are set together, exactly once
type Session struct {
	ID          domain.SessionID
	ShopID      domain.ShopID
	Status      Status
	Method      domain.Method
	Details     MethodDetails
	IPAddress   string
	UserAgent   string
	Result      Result
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func NewSession(id domain.SessionID, shopID domain.ShopID, ip, userAgent string, now time.Time) *Session {
	return &Session{
		ID:        id,
		ShopID:    shopID,
		Status:    StatusInitiated,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) HasMethod() bool {
	return s.Method != ""
}

// CanSelectMethod checks the session is still waiting for a method.
// Use with ApplyMethodSelection in Execute callbacks.
func (s *Session) CanSelectMethod() error {
	if s.Status != StatusInitiated || s.HasMethod() {
		return dErrors.New(dErrors.CodeInvalidState, "Verification session already has a method selected")
	}
	return nil
}

// ApplyMethodSelection records the method and moves the session to
// requires_action or processing depending on the details variant.
// Call CanSelectMethod first.
func (s *Session) ApplyMethodSelection(method domain.Method, details MethodDetails, now time.Time) {
	next := StatusProcessing
	if details != nil && details.RequiresAction() {
		next = StatusRequiresAction
	}
	s.Method = method
	s.Details = details
	s.Status = next
	s.UpdatedAt = now
}

// CanComplete checks the session is awaiting an outcome.
// Use with ApplyCompletion in Execute callbacks.
func (s *Session) CanComplete() error {
	if !s.Status.AwaitingCompletion() {
		return dErrors.New(dErrors.CodeInvalidState, "Verification session is not in a valid state for completion")
	}
	return nil
}

// ApplyCompletion records the outcome. Call CanComplete first.
func (s *Session) ApplyCompletion(success bool, now time.Time) {
	if success {
		s.Status = StatusSuccess
		s.Result = ResultApproved
	} else {
		s.Status = StatusFailedTechnical
		s.Result = ResultRejected
	}
	s.UpdatedAt = now
	s.CompletedAt = &now
}
