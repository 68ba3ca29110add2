package models

import (
	"encoding/json"
	"fmt"
)

// DetailsKind tags the variant of MethodDetails when serialized.
type DetailsKind string

const (
	DetailsProviderRedirect DetailsKind = "provider_redirect"
	DetailsQRCode           DetailsKind = "qr_code"
	DetailsNone             DetailsKind = "none"
)

// MethodDetails is the per-method payload produced by method selection.
// The set of variants is closed: ProviderRedirect, QRCodeChallenge, NoAction.
type MethodDetails interface {
	Kind() DetailsKind
	// Fields are the key/value pairs surfaced to the client.
	Fields() map[string]string
	// RequiresAction reports whether the customer must act outside the widget.
	RequiresAction() bool
	isMethodDetails()
}

// ProviderRedirect sends the customer to an external identity provider.
type ProviderRedirect struct {
	RedirectURL  string
	ProviderTxID string
}

func (ProviderRedirect) Kind() DetailsKind    { return DetailsProviderRedirect }
func (ProviderRedirect) RequiresAction() bool { return true }
func (ProviderRedirect) isMethodDetails()     {}

func (d ProviderRedirect) Fields() map[string]string {
	return map[string]string{"redirect_url": d.RedirectURL, "provider_tx_id": d.ProviderTxID}
}

// QRCodeChallenge is scanned from a second device.
type QRCodeChallenge struct {
	Token string
	Data  string
}

func (QRCodeChallenge) Kind() DetailsKind    { return DetailsQRCode }
func (QRCodeChallenge) RequiresAction() bool { return true }
func (QRCodeChallenge) isMethodDetails()     {}

func (d QRCodeChallenge) Fields() map[string]string {
	return map[string]string{"qr_token": d.Token, "qr_data": d.Data}
}

// NoAction is used by methods that run entirely inside the widget.
type NoAction struct{}

func (NoAction) Kind() DetailsKind         { return DetailsNone }
func (NoAction) RequiresAction() bool      { return false }
func (NoAction) isMethodDetails()          {}
func (NoAction) Fields() map[string]string { return map[string]string{} }

type detailsEnvelope struct {
	Kind         DetailsKind `json:"kind"`
	RedirectURL  string      `json:"redirect_url,omitempty"`
	ProviderTxID string      `json:"provider_tx_id,omitempty"`
	QRToken      string      `json:"qr_token,omitempty"`
	QRData       string      `json:"qr_data,omitempty"`
}

// MarshalDetails encodes d for the method_details column. nil encodes to nil.
func MarshalDetails(d MethodDetails) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	env := detailsEnvelope{Kind: d.Kind()}
	switch v := d.(type) {
	case ProviderRedirect:
		env.RedirectURL, env.ProviderTxID = v.RedirectURL, v.ProviderTxID
	case QRCodeChallenge:
		env.QRToken, env.QRData = v.Token, v.Data
	case NoAction:
	default:
		return nil, fmt.Errorf("unsupported method details %T", d)
	}
	return json.Marshal(env)
}

// UnmarshalDetails decodes a method_details column. Empty input yields nil.
func UnmarshalDetails(raw []byte) (MethodDetails, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var env detailsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode method details: %w", err)
	}
	switch env.Kind {
	case DetailsProviderRedirect:
		return ProviderRedirect{RedirectURL: env.RedirectURL, ProviderTxID: env.ProviderTxID}, nil
	case DetailsQRCode:
		return QRCodeChallenge{Token: env.QRToken, Data: env.QRData}, nil
	case DetailsNone:
		return NoAction{}, nil
	default:
		return nil, fmt.Errorf("unknown method details kind %q", env.Kind)
	}
}
