package models

import (
	"slices"
	"time"

	"passprove/pkg/domain"
)

// ShopStatus gates whether a shop may open verification sessions.
type ShopStatus string

const (
	ShopStatusActive   ShopStatus = "active"
	ShopStatusInactive ShopStatus = "inactive"
)

// Shop is a merchant embedding the widget. The core only ever reads it.
//
// Invariants:
//   - APIKey is unique across shops and never serialized
//   - Methods holds only valid domain.Method values
type Shop struct {
	ID        domain.ShopID
	APIKey    string `json:"-"`
	Name      string
	Domain    string
	Status    ShopStatus
	Methods   []domain.Method
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Shop) IsActive() bool {
	return s.Status == ShopStatusActive
}

// Allows reports whether the shop's own allow list contains m. Globally
// always-allowed methods are the service's concern, not the model's.
func (s *Shop) Allows(m domain.Method) bool {
	return slices.Contains(s.Methods, m)
}

// Branding carries presentation colors attached to every projection.
type Branding struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
}

// Projection is the public view of a shop returned by API key lookup.
type Projection struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Domain              string     `json:"domain"`
	VerificationMethods []string   `json:"verification_methods"`
	Status              ShopStatus `json:"status"`
	LogoURL             string     `json:"logo_url"`
	Branding            *Branding  `json:"branding,omitempty"`
}

// Project builds the public view. Methods are never nil so the JSON is [].
func (s *Shop) Project(branding *Branding) Projection {
	methods := make([]string, 0, len(s.Methods))
	for _, m := range s.Methods {
		methods = append(methods, m.String())
	}
	return Projection{
		ID:                  s.ID.String(),
		Name:                s.Name,
		Domain:              s.Domain,
		VerificationMethods: methods,
		Status:              s.Status,
		LogoURL:             s.LogoURL,
		Branding:            branding,
	}
}
