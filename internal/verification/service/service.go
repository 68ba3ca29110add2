package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	shopmodels "passprove/internal/shop/models"
	"passprove/internal/verification/metrics"
	"passprove/internal/verification/models"
	"passprove/pkg/domain"
	"passprove/pkg/platform/audit"
)

// unknown stands in for client metadata the request did not carry.
const unknown = "unknown"

// SessionStore persists verification sessions.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id domain.SessionID) (*models.Session, error)
	Execute(ctx context.Context, id domain.SessionID, validate func(*models.Session) error, mutate func(*models.Session)) (*models.Session, error)
}

// SavedStore persists saved verifications.
type SavedStore interface {
	Save(ctx context.Context, v *models.SavedVerification) error
	FindByHash(ctx context.Context, hash string) (*models.SavedVerification, error)
}

// ResultStore persists verification results.
type ResultStore interface {
	Save(ctx context.Context, r *models.VerificationResult) error
	FindByVerificationID(ctx context.Context, id domain.SessionID) (*models.VerificationResult, error)
}

// ShopDirectory resolves shops and answers method policy questions.
type ShopDirectory interface {
	FindActiveShop(ctx context.Context, apiKey string) (*shopmodels.Shop, error)
	IsMethodAllowed(ctx context.Context, method domain.Method, shopID domain.ShopID) bool
}

// MethodSelector produces method details for a selection.
type MethodSelector interface {
	Prepare(sessionID domain.SessionID, method domain.Method) (models.MethodDetails, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service runs the verification session lifecycle.
type Service struct {
	sessions         SessionStore
	saved            SavedStore
	results          ResultStore
	shops            ShopDirectory
	selector         MethodSelector
	tokens           TokenSource
	defaultValidDays int
	logger           *slog.Logger
	metrics          *metrics.Metrics
	auditPublisher   AuditPublisher
	tracer           trace.Tracer
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

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithTokenSource replaces crypto/rand tokens, for deterministic tests.
func WithTokenSource(tokens TokenSource) Option {
	return func(s *Service) {
		s.tokens = tokens
	}
}

// WithDefaultValidDays sets the lifetime of saved verifications when the
// completion does not specify one.
func WithDefaultValidDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.defaultValidDays = days
		}
	}
}

func New(sessions SessionStore, saved SavedStore, results ResultStore, shops ShopDirectory, selector MethodSelector, opts ...Option) *Service {
	s := &Service{
		sessions:         sessions,
		saved:            saved,
		results:          results,
		shops:            shops,
		selector:         selector,
		tokens:           RandomToken,
		defaultValidDays: models.DefaultValidDays,
		logger:           slog.Default(),
		tracer:           otel.Tracer("passprove/internal/verification"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InitiateRequest carries the inputs of Initiate. Empty IPAddress or
// UserAgent fall back to the request context, then to "unknown".
type InitiateRequest struct {
	APIKey    string
	IPAddress string
	UserAgent string
}

// SelectMethodResult is returned by SelectMethod.
type SelectMethodResult struct {
	Status  models.Status
	Method  domain.Method
	Details models.MethodDetails
}

// CompleteRequest carries the inputs of Complete. ValidDays zero means the default.
type CompleteRequest struct {
	SessionID  string
	Success    bool
	SaveMethod models.SaveMethod
	Identifier string
	ValidDays  int
	Metadata   map[string]any
}

// CompleteResult is returned by Complete. VerificationID is set only on
// success; VerificationHash and ValidUntil only when the saved verification
// was actually persisted.
type CompleteResult struct {
	Status           models.Status
	VerificationID   *domain.SessionID
	VerificationHash string
	ValidUntil       *time.Time
}

// ValidateResult is returned by Validate. Method, ValidUntil and Metadata are
// populated only when IsValid.
type ValidateResult struct {
	IsValid    bool
	Method     domain.Method
	ValidUntil *time.Time
	Metadata   map[string]any
}

// StatusResult is the read-only view returned by Status.
type StatusResult struct {
	Status      models.Status
	Method      domain.Method
	CompletedAt *time.Time
	Details     models.MethodDetails
}

func (s *Service) observe(operation string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, start)
	}
}

// emitAudit never fails the caller; audit delivery is best-effort.
func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"session_id", event.SessionID,
			"error", err,
		)
	}
}
