package models

import "time"

// EndpointClass groups routes that share a request budget.
type EndpointClass string

const (
	// ClassSession covers session creation and mutation from the widget.
	ClassSession EndpointClass = "session"
	// ClassValidate covers saved verification checks from shop backends.
	ClassValidate EndpointClass = "validate"
)

// Limit is a request budget per sliding window.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// NewIPKey builds the bucket key for a client address within a class.
func NewIPKey(class EndpointClass, ip string) string {
	return "rl:" + string(class) + ":ip:" + ip
}

// RateLimitExceededResponse is the body written with 429.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	RetryAfter int    `json:"retry_after"`
}
