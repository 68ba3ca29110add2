package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"passprove/internal/platform/config"
	"passprove/internal/platform/httpserver"
	"passprove/internal/platform/logger"
	"passprove/internal/platform/metrics"
	"passprove/internal/platform/postgres"
	platformredis "passprove/internal/platform/redis"
	ratelimitmetrics "passprove/internal/ratelimit/metrics"
	ratelimitmw "passprove/internal/ratelimit/middleware"
	ratelimitmodels "passprove/internal/ratelimit/models"
	"passprove/internal/ratelimit/store/bucket"
	shophandler "passprove/internal/shop/handler"
	shopmetrics "passprove/internal/shop/metrics"
	shopmodels "passprove/internal/shop/models"
	shopservice "passprove/internal/shop/service"
	shopstore "passprove/internal/shop/store"
	httptransport "passprove/internal/transport/http"
	verificationhandler "passprove/internal/verification/handler"
	verificationmetrics "passprove/internal/verification/metrics"
	verificationservice "passprove/internal/verification/service"
	resultstore "passprove/internal/verification/store/result"
	savedstore "passprove/internal/verification/store/saved"
	sessionstore "passprove/internal/verification/store/session"
	"passprove/pkg/domain"
	"passprove/pkg/platform/audit/publisher"
	kafkapublisher "passprove/pkg/platform/audit/publishers/kafka"
	auditlogging "passprove/pkg/platform/audit/store/logging"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the verification API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.New(cfg.Log.Level, cfg.Log.Format)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, cfg, log)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply database migrations before serving")
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrateOnStart {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
	}

	checks := map[string]httptransport.HealthCheck{
		"postgres": func(ctx context.Context) error { return db.PingContext(ctx) },
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient.Health
	} else {
		log.Info("redis not configured, shop cache and shared rate limits disabled")
	}

	shopMetrics := shopmetrics.New()
	shops := buildShopStore(cfg, db, redisClient, log, shopMetrics)

	alwaysAllowed, err := domain.ParseMethods(cfg.Verification.AlwaysAllowedMethods)
	if err != nil {
		return fmt.Errorf("verification always_allowed_methods: %w", err)
	}
	shopService := shopservice.New(shops,
		shopservice.WithLogger(log),
		shopservice.WithMetrics(shopMetrics),
		shopservice.WithAlwaysAllowed(alwaysAllowed...),
		shopservice.WithBranding(shopmodels.Branding{
			PrimaryColor:   cfg.Verification.Branding.PrimaryColor,
			SecondaryColor: cfg.Verification.Branding.SecondaryColor,
		}),
	)

	auditPublisher, closeAudit, err := buildAuditPublisher(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeAudit()

	verificationService := verificationservice.New(
		sessionstore.NewPostgres(db),
		savedstore.NewPostgres(db),
		resultstore.NewPostgres(db),
		shopService,
		verificationservice.NewSelector(cfg.Verification.ProviderBaseURL, cfg.Verification.QRBaseURL, verificationservice.RandomToken),
		verificationservice.WithLogger(log),
		verificationservice.WithMetrics(verificationmetrics.New()),
		verificationservice.WithAuditPublisher(auditPublisher),
		verificationservice.WithDefaultValidDays(cfg.Verification.DefaultValidDays),
	)

	router := httptransport.NewRouter(httptransport.Options{
		Logger:         log,
		Metrics:        metrics.New(),
		Gatherer:       prometheus.DefaultGatherer,
		Checks:         checks,
		TrustedProxies: cfg.Server.TrustedProxies,
	},
		shophandler.New(shopService, log),
		verificationhandler.New(verificationService, log, buildRateLimits(cfg, redisClient, log)),
	)

	srv := httpserver.New(cfg.Server, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting passprove", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// buildShopStore returns the Postgres shop store, fronted by the Redis cache
// when one is configured.
func buildShopStore(cfg *config.Config, db *sql.DB, client *platformredis.Client, log *slog.Logger, m *shopmetrics.Metrics) shopservice.Store {
	source := shopstore.NewPostgres(db)
	if client == nil {
		return source
	}
	return shopstore.NewCached(source, client.Client, cfg.Redis.ShopCacheTTL,
		shopstore.WithCacheLogger(log),
		shopstore.WithCacheMetrics(m),
	)
}

// buildRateLimits keeps budgets in Redis when available so replicas share them.
func buildRateLimits(cfg *config.Config, client *platformredis.Client, log *slog.Logger) verificationhandler.Option {
	var buckets ratelimitmw.BucketStore = bucket.NewInMemoryBucketStore()
	if client != nil {
		buckets = bucket.NewRedisBucketStore(client.Client)
	}
	limiter := ratelimitmw.New(buckets, map[ratelimitmodels.EndpointClass]ratelimitmodels.Limit{
		ratelimitmodels.ClassSession:  {RequestsPerWindow: cfg.RateLimit.SessionPerMinute, Window: time.Minute},
		ratelimitmodels.ClassValidate: {RequestsPerWindow: cfg.RateLimit.ValidatePerMinute, Window: time.Minute},
	}, log,
		ratelimitmw.WithDisabled(!cfg.RateLimit.Enabled),
		ratelimitmw.WithMetrics(ratelimitmetrics.New()),
	)
	return verificationhandler.WithRateLimits(
		limiter.RateLimit(ratelimitmodels.ClassSession),
		limiter.RateLimit(ratelimitmodels.ClassValidate),
	)
}

// buildAuditPublisher returns the Kafka producer when brokers are configured,
// otherwise audit events go to the log.
func buildAuditPublisher(ctx context.Context, cfg *config.Config, log *slog.Logger) (verificationservice.AuditPublisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		log.InfoContext(ctx, "no kafka brokers configured, audit events are logged")
		p := publisher.NewPublisher(auditlogging.NewStore(log),
			publisher.WithAsyncBuffer(1024),
			publisher.WithLogger(log),
		)
		return p, p.Close, nil
	}

	p, err := kafkapublisher.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic,
		kafkapublisher.WithLogger(log),
		kafkapublisher.WithMetrics(kafkapublisher.NewMetrics(prometheus.DefaultRegisterer)),
	)
	if err != nil {
		return nil, nil, err
	}
	if err := p.EnsureTopic(ctx, 3, 1); err != nil {
		log.WarnContext(ctx, "audit topic not ensured", "topic", cfg.Kafka.AuditTopic, "error", err)
	}
	return p, func() {
		if err := p.Close(context.Background()); err != nil {
			log.Warn("audit producer close failed", "error", err)
		}
	}, nil
}
