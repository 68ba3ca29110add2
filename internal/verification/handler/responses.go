package handler

import (
	"time"

	"passprove/internal/verification/models"
	"passprove/internal/verification/service"
)

type InitiateResponse struct {
	SessionID string `json:"session_id"`
}

// SelectMethodResponse flattens the detail variant's headline field next to
// the full detail map.
type SelectMethodResponse struct {
	Status      string            `json:"status"`
	RedirectURL string            `json:"redirect_url,omitempty"`
	QRData      string            `json:"qr_data,omitempty"`
	Details     map[string]string `json:"details"`
}

type CompleteResponse struct {
	Status           string     `json:"status"`
	VerificationID   string     `json:"verification_id,omitempty"`
	VerificationHash string     `json:"verification_hash,omitempty"`
	ValidUntil       *time.Time `json:"valid_until,omitempty"`
}

type ValidateResponse struct {
	IsValid    bool           `json:"is_valid"`
	Method     string         `json:"method,omitempty"`
	ValidUntil *time.Time     `json:"valid_until,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type StatusResponse struct {
	SessionID   string            `json:"session_id"`
	Status      string            `json:"status"`
	Method      string            `json:"method,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

func toSelectMethodResponse(res *service.SelectMethodResult) SelectMethodResponse {
	resp := SelectMethodResponse{
		Status:  res.Status.String(),
		Details: map[string]string{},
	}
	switch d := res.Details.(type) {
	case models.ProviderRedirect:
		resp.RedirectURL = d.RedirectURL
	case models.QRCodeChallenge:
		resp.QRData = d.Data
	}
	if res.Details != nil {
		resp.Details = res.Details.Fields()
	}
	return resp
}

func toCompleteResponse(res *service.CompleteResult) CompleteResponse {
	resp := CompleteResponse{
		Status:           res.Status.String(),
		VerificationHash: res.VerificationHash,
		ValidUntil:       res.ValidUntil,
	}
	if res.VerificationID != nil {
		resp.VerificationID = res.VerificationID.String()
	}
	return resp
}

func toValidateResponse(res *service.ValidateResult) ValidateResponse {
	return ValidateResponse{
		IsValid:    res.IsValid,
		Method:     res.Method.String(),
		ValidUntil: res.ValidUntil,
		Metadata:   res.Metadata,
	}
}

func toStatusResponse(sessionID string, res *service.StatusResult) StatusResponse {
	resp := StatusResponse{
		SessionID:   sessionID,
		Status:      res.Status.String(),
		Method:      res.Method.String(),
		CompletedAt: res.CompletedAt,
	}
	if res.Details != nil {
		resp.Details = res.Details.Fields()
	}
	return resp
}
