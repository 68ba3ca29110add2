package handler

import (
	"strings"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
)

type InitiateRequest struct {
	APIKey    string `json:"api_key"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func (r *InitiateRequest) Normalize() {
	r.APIKey = strings.TrimSpace(r.APIKey)
	r.IPAddress = strings.TrimSpace(r.IPAddress)
	r.UserAgent = strings.TrimSpace(r.UserAgent)
}

func (r *InitiateRequest) Validate() error {
	if r.APIKey == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing api_key")
	}
	return nil
}

type SelectMethodRequest struct {
	SessionID string `json:"session_id"`
	Method    string `json:"method"`
}

func (r *SelectMethodRequest) Normalize() {
	r.SessionID = strings.TrimSpace(r.SessionID)
	r.Method = strings.ToLower(strings.TrimSpace(r.Method))
}

func (r *SelectMethodRequest) Validate() error {
	if r.SessionID == "" || r.Method == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing required fields")
	}
	if _, err := domain.ParseMethod(r.Method); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "Invalid verification method")
	}
	return nil
}

// CompleteRequest is the body of POST /verification/complete. ValidDays
// zero or absent means the configured default.
type CompleteRequest struct {
	SessionID  string         `json:"session_id"`
	Success    bool           `json:"success"`
	SaveMethod string         `json:"save_method,omitempty"`
	Identifier string         `json:"identifier,omitempty"`
	ValidDays  int            `json:"valid_days,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

func (r *CompleteRequest) Normalize() {
	r.SessionID = strings.TrimSpace(r.SessionID)
	r.SaveMethod = strings.ToLower(strings.TrimSpace(r.SaveMethod))
	r.Identifier = strings.TrimSpace(r.Identifier)
}

func (r *CompleteRequest) Validate() error {
	if r.SessionID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing session_id")
	}
	if r.SaveMethod != "" {
		if _, err := models.ParseSaveMethod(r.SaveMethod); err != nil {
			return err
		}
	}
	if r.ValidDays < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "valid_days must not be negative")
	}
	return nil
}

type ValidateRequest struct {
	VerificationHash string `json:"verification_hash"`
}

func (r *ValidateRequest) Normalize() {
	r.VerificationHash = strings.TrimSpace(r.VerificationHash)
}

func (r *ValidateRequest) Validate() error {
	if r.VerificationHash == "" {
		return dErrors.New(dErrors.CodeBadRequest, "Missing verification_hash")
	}
	return nil
}
