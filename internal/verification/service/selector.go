package service

import (
	"fmt"
	"net/url"

	"passprove/internal/verification/models"
	"passprove/pkg/domain"
)

// Selector builds the per-method details for a method selection. Provider
// integrations are stubbed: bankid and mojeid get a redirect into the
// configured provider base URL.
type Selector struct {
	providerBaseURL string
	qrBaseURL       string
	tokens          TokenSource
}

func NewSelector(providerBaseURL, qrBaseURL string, tokens TokenSource) *Selector {
	if tokens == nil {
		tokens = RandomToken
	}
	return &Selector{providerBaseURL: providerBaseURL, qrBaseURL: qrBaseURL, tokens: tokens}
}

// Prepare returns the details variant for method.
func (s *Selector) Prepare(sessionID domain.SessionID, method domain.Method) (models.MethodDetails, error) {
	switch method {
	case domain.MethodBankID, domain.MethodMojeID:
		txID, err := s.tokens()
		if err != nil {
			return nil, fmt.Errorf("mint provider transaction id: %w", err)
		}
		q := url.Values{"session": {sessionID.String()}}
		return models.ProviderRedirect{
			RedirectURL:  fmt.Sprintf("%s/%s/auth?%s", s.providerBaseURL, method, q.Encode()),
			ProviderTxID: txID,
		}, nil
	case domain.MethodQRCode:
		token, err := s.tokens()
		if err != nil {
			return nil, fmt.Errorf("mint qr token: %w", err)
		}
		return models.QRCodeChallenge{
			Token: token,
			Data:  s.qrBaseURL + "/" + token,
		}, nil
	case domain.MethodOCR, domain.MethodFaceScan, domain.MethodReverification:
		return models.NoAction{}, nil
	default:
		return nil, fmt.Errorf("no selector for method %q", method)
	}
}
