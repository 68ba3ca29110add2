package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"passprove/internal/shop/metrics"
	"passprove/internal/shop/models"
	"passprove/pkg/domain"
	dErrors "passprove/pkg/domain-errors"
	"passprove/pkg/platform/sentinel"
)

// Store is the read side of the shop directory.
type Store interface {
	FindActiveByAPIKey(ctx context.Context, apiKey string) (*models.Shop, error)
	FindByID(ctx context.Context, id domain.ShopID) (*models.Shop, error)
}

// Service resolves shops and answers method policy questions.
type Service struct {
	store         Store
	alwaysAllowed map[domain.Method]bool
	branding      *models.Branding
	logger        *slog.Logger
	metrics       *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAlwaysAllowed replaces the methods every shop accepts regardless of
// its own allow list.
func WithAlwaysAllowed(methods ...domain.Method) Option {
	return func(s *Service) {
		s.alwaysAllowed = make(map[domain.Method]bool, len(methods))
		for _, m := range methods {
			s.alwaysAllowed[m] = true
		}
	}
}

// WithBranding attaches colors to every projection.
func WithBranding(b models.Branding) Option {
	return func(s *Service) {
		s.branding = &b
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		alwaysAllowed: map[domain.Method]bool{
			domain.MethodQRCode:         true,
			domain.MethodReverification: true,
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindActiveShop returns the active shop owning apiKey.
func (s *Service) FindActiveShop(ctx context.Context, apiKey string) (*models.Shop, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "Missing API key")
	}
	if s.metrics != nil {
		defer s.metrics.ObserveLookup(time.Now())
	}

	shop, err := s.store.FindActiveByAPIKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Shop not found or inactive")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load shop")
	}
	return shop, nil
}

// FindActiveShopByAPIKey returns the public projection of the active shop owning apiKey.
func (s *Service) FindActiveShopByAPIKey(ctx context.Context, apiKey string) (*models.Projection, error) {
	shop, err := s.FindActiveShop(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	p := shop.Project(s.branding)
	return &p, nil
}

// IsMethodAllowed never errors: a missing shop or a failing lookup denies.
func (s *Service) IsMethodAllowed(ctx context.Context, method domain.Method, shopID domain.ShopID) bool {
	if s.alwaysAllowed[method] {
		return true
	}

	shop, err := s.store.FindByID(ctx, shopID)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.ErrorContext(ctx, "method policy lookup failed",
				"shop_id", shopID.String(),
				"method", method.String(),
				"error", err,
			)
		}
		s.denied(method)
		return false
	}
	if !shop.Allows(method) {
		s.denied(method)
		return false
	}
	return true
}

func (s *Service) denied(method domain.Method) {
	if s.metrics != nil {
		s.metrics.IncMethodDenied(method.String())
	}
}
