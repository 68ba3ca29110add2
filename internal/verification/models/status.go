package models

import dErrors "passprove/pkg/domain-errors"

// Status is a verification session's position in its lifecycle.
type Status string

const (
	StatusInitiated       Status = "initiated"
	StatusProcessing      Status = "processing"
	StatusRequiresAction  Status = "requires_action"
	StatusSuccess         Status = "success"
	StatusFailedTechnical Status = "failed_technical"

	// Reserved: accepted when read back from storage, never produced.
	StatusFailedAge          Status = "failed_age"
	StatusExpired            Status = "expired"
	StatusInsufficientCredit Status = "insufficient_credit"
	StatusPending            Status = "pending"
)

// transitions lists every forward edge. Statuses absent as keys are terminal.
var transitions = map[Status][]Status{
	StatusInitiated:      {StatusProcessing, StatusRequiresAction},
	StatusProcessing:     {StatusSuccess, StatusFailedTechnical},
	StatusRequiresAction: {StatusSuccess, StatusFailedTechnical},
}

var knownStatuses = map[Status]bool{
	StatusInitiated:          true,
	StatusProcessing:         true,
	StatusRequiresAction:     true,
	StatusSuccess:            true,
	StatusFailedTechnical:    true,
	StatusFailedAge:          true,
	StatusExpired:            true,
	StatusInsufficientCredit: true,
	StatusPending:            true,
}

// ParseStatus validates a status read from storage.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !knownStatuses[st] {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "unknown verification status: "+s)
	}
	return st, nil
}

func (s Status) String() string { return string(s) }

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// AwaitingCompletion reports whether the session has a method and waits for
// the presentation layer to report an outcome.
func (s Status) AwaitingCompletion() bool {
	return s == StatusProcessing || s == StatusRequiresAction
}

// Result is the outcome recorded at completion.
type Result string

const (
	ResultApproved Result = "approved"
	ResultRejected Result = "rejected"
)
