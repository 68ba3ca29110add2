// Package logging stores audit events as structured log lines. It is the
// sink used when no broker is configured; the log pipeline owns retention.
package logging

import (
	"context"
	"log/slog"

	audit "passprove/pkg/platform/audit"
)

type Store struct {
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	attrs := []slog.Attr{
		slog.String("action", string(event.Action)),
		slog.Time("timestamp", event.Timestamp),
	}
	for _, kv := range [][2]string{
		{"session_id", event.SessionID},
		{"shop_id", event.ShopID},
		{"method", event.Method},
		{"status", event.Status},
		{"outcome", event.Outcome},
		{"request_id", event.RequestID},
		{"client_ip", event.ClientIP},
		{"browser", event.Browser},
		{"os", event.OS},
	} {
		if kv[1] != "" {
			attrs = append(attrs, slog.String(kv[0], kv[1]))
		}
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event", attrs...)
	return nil
}

// ListBySession always returns nothing: logged events are not queryable here.
func (s *Store) ListBySession(context.Context, string) ([]audit.Event, error) {
	return nil, nil
}
