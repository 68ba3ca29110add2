package audit

import (
	"context"
	"time"
)

// Action names a verification lifecycle step worth recording.
type Action string

const (
	ActionSessionInitiated      Action = "session_initiated"
	ActionMethodSelected        Action = "method_selected"
	ActionSessionCompleted      Action = "session_completed"
	ActionSavedVerificationMade Action = "saved_verification_created"
	ActionVerificationValidated Action = "verification_validated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	SessionID string    `json:"session_id,omitempty"`
	ShopID    string    `json:"shop_id,omitempty"`
	Method    string    `json:"method,omitempty"`
	Status    string    `json:"status,omitempty"`
	// Outcome is "approved"/"rejected" on completion, "valid"/"invalid" on validation.
	Outcome   string `json:"outcome,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ClientIP  string `json:"client_ip,omitempty"`
	Browser   string `json:"browser,omitempty"`
	OS        string `json:"os,omitempty"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListBySession(ctx context.Context, sessionID string) ([]Event, error)
}

// Publisher accepts events from services. Implementations must not block
// the request path for long; callers treat failures as best-effort.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
