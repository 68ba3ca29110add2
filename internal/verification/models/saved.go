package models

import (
	"time"

	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
)

// SaveMethod is the channel a shop uses to remember a verified customer.
type SaveMethod string

const (
	SaveMethodCookie SaveMethod = "cookie"
	SaveMethodPhone  SaveMethod = "phone"
	SaveMethodEmail  SaveMethod = "email"
	SaveMethodApple  SaveMethod = "apple"
	SaveMethodGoogle SaveMethod = "google"
)

func ParseSaveMethod(s string) (SaveMethod, error) {
	switch m := SaveMethod(s); m {
	case SaveMethodCookie, SaveMethodPhone, SaveMethodEmail, SaveMethodApple, SaveMethodGoogle:
		return m, nil
	default:
		return "", dErrors.New(dErrors.CodeInvalidInput, "Invalid save_method")
	}
}

// DefaultValidDays applies when a completion saves without valid_days.
const DefaultValidDays = 180

// SavedVerification is a reusable proof that a customer passed verification.
// It is written once and never updated.
type SavedVerification struct {
	Hash                string
	VerificationID      domain.SessionID
	Method              domain.Method
	ExpiresAt           time.Time
	IsValidated         bool
	ValidationToken     string
	ValidationExpiresAt time.Time
	CreatedAt           time.Time
}

// IsValid holds only while validated and strictly before expiry.
func (v *SavedVerification) IsValid(now time.Time) bool {
	return v.IsValidated && v.ExpiresAt.After(now)
}

// VerificationResult carries what the shop asked to remember alongside a
// saved verification.
type VerificationResult struct {
	VerificationID domain.SessionID
	SaveMethod     SaveMethod
	Identifier     string
	ValidUntil     time.Time
	Metadata       map[string]any
	CreatedAt      time.Time
}
