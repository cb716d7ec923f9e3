package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/catalog"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/config"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/event"
	handler "github.com/Taqinou/enzo-gazzoli-portfolio/internal/handler/http"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository/memory"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository/postgres"
	redisrepo "github.com/Taqinou/enzo-gazzoli-portfolio/internal/repository/redis"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender/logsender"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender/resend"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/sender/smtp"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/service"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/database"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/health"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/httpclient"
	pkgkafka "github.com/Taqinou/enzo-gazzoli-portfolio/pkg/kafka"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/middleware"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/tracing"
)

// ServiceName identifies the API in logs, metrics, traces and events.
const ServiceName = "portfolio-api"

// App wires together all dependencies and runs the portfolio API.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	redis          *goredis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	httpServer     *http.Server
	tracerShutdown tracing.Shutdown
	stopBackground context.CancelFunc
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.Init(ctx, tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTELEndpoint,
		Insecure:       cfg.OTELInsecure,
		SampleRate:     cfg.OTELSampleRate,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown

	healthHandler := health.NewHandler()

	sessions, err := a.openSessionStore(ctx, healthHandler)
	if err != nil {
		a.closeResources()
		return nil, err
	}

	submissions, err := a.openSubmissionStore(ctx, healthHandler)
	if err != nil {
		a.closeResources()
		return nil, err
	}

	// Kafka is optional; without brokers events are dropped.
	var publisher event.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		publisher = a.producer
		healthHandler.RegisterOptional("kafka", a.producer.Ping)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	} else {
		logger.Info("kafka disabled, domain events will not be published")
	}
	eventProducer := event.NewProducer(publisher, logger)

	mailSender, err := newSender(cfg, logger)
	if err != nil {
		a.closeResources()
		return nil, err
	}

	// Build the dependency graph.
	quoteService := service.NewQuoteService(sessions, catalog.Default(), eventProducer, logger)
	contactService := service.NewContactService(submissions, quoteService, mailSender, eventProducer, service.ContactConfig{
		From:        cfg.MailFrom,
		To:          cfg.MailTo,
		EmailLocale: i18n.ParseOrDefault(cfg.MailLocale),
		MaxAttempts: cfg.MailMaxAttempts,
	}, logger)

	prefs, err := newPreferencesStore(cfg, logger)
	if err != nil {
		a.closeResources()
		return nil, err
	}

	if cfg.AdminToken == "" && cfg.AdminJWTSecret == "" {
		logger.Warn("neither ADMIN_TOKEN nor ADMIN_JWT_SECRET is set, admin endpoints will reject every request")
	}

	// HTTP router. The background context outlives NewApp and stops with Shutdown.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	a.stopBackground = stopBackground

	router := handler.NewRouter(bgCtx, handler.Services{
		Quotes:      quoteService,
		Contact:     contactService,
		Preferences: prefs,
		Health:      healthHandler,
	}, handler.RouterConfig{
		ServiceName: ServiceName,
		CORS: middleware.CORSConfig{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowCredentials: cfg.CORSAllowCredentials,
		},
		ContactRateLimit: middleware.RateLimitConfig{
			Every:      cfg.ContactRateEvery,
			Burst:      cfg.ContactRateBurst,
			TrustProxy: cfg.TrustProxy,
		},
		AdminToken:     cfg.AdminToken,
		AdminJWTSecret: cfg.AdminJWTSecret,
		CatalogMaxAge:  cfg.CatalogMaxAge,
		EnablePprof:   cfg.PprofEnabled,
		PprofCIDRs:    cfg.PprofAllowedCIDRs,
	}, logger)

	a.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return a, nil
}

// openSessionStore returns the quote session repository selected by
// SESSION_STORE.
func (a *App) openSessionStore(ctx context.Context, h *health.Handler) (repository.QuoteSessionRepository, error) {
	if a.cfg.SessionStore != config.StoreRedis {
		a.logger.Info("using in-memory quote session store", slog.Duration("ttl", a.cfg.SessionTTL))
		return memory.NewSessionRepository(a.cfg.SessionTTL), nil
	}

	client, err := database.NewRedisClient(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	a.redis = client
	a.logger.Info("connected to Redis", slog.String("addr", client.Options().Addr))

	repo := redisrepo.NewSessionRepository(client, a.cfg.SessionTTL)
	h.Register("redis", repo.Ping)
	return repo, nil
}

// openSubmissionStore returns the contact submission repository selected by
// SUBMISSION_STORE, running migrations for postgres.
func (a *App) openSubmissionStore(ctx context.Context, h *health.Handler) (repository.SubmissionRepository, error) {
	if a.cfg.SubmissionStore != config.StorePostgres {
		a.logger.Warn("using in-memory contact submission store, submissions are lost on restart")
		return memory.NewSubmissionRepository(), nil
	}

	pgCfg := database.DefaultPostgresConfig(a.cfg.DatabaseURL)
	pgCfg.MaxConns = a.cfg.DBMaxConns
	pgCfg.MinConns = a.cfg.DBMinConns

	pool, err := database.NewPostgresPool(ctx, pgCfg, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool
	a.logger.Info("connected to PostgreSQL")

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, ServiceName); err != nil {
		a.logger.Warn("register pool metrics", slog.String("error", err.Error()))
	}

	// Run database migrations.
	if err := database.RunMigrations(ctx, pool, postgres.Migrations(), a.logger); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.logger.Info("database migrations completed")

	// Configure slow query logging.
	if a.cfg.SlowQueryThresholdMs > 0 {
		database.SetSlowQueryLogging(time.Duration(a.cfg.SlowQueryThresholdMs)*time.Millisecond, a.logger)
	}

	repo := postgres.NewSubmissionRepository(pool)
	h.Register("postgres", repo.Ping)
	return repo, nil
}

// newSender builds the mail provider selected by MAIL_PROVIDER. "none"
// yields a nil sender: contact requests then fail as not configured.
func newSender(cfg *config.Config, logger *slog.Logger) (sender.Sender, error) {
	switch cfg.MailProvider {
	case config.MailResend:
		if cfg.ResendAPIKey == "" {
			logger.Warn("RESEND_API_KEY is not set, contact requests will fail")
		}
		cbCfg := httpclient.DefaultCircuitBreakerConfig("resend")
		cbCfg.FailureRatio = cfg.CBFailureRatio
		cbCfg.Timeout = time.Duration(cfg.CBTimeoutSeconds) * time.Second
		client := httpclient.NewCircuitBreakerClient(httpclient.New(httpclient.DefaultConfig()), cbCfg, logger)
		return resend.NewSender(resend.Config{APIKey: cfg.ResendAPIKey, BaseURL: cfg.ResendBaseURL}, client, logger), nil
	case config.MailSMTP:
		return smtp.NewSender(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		}, logger), nil
	case config.MailLog:
		logger.Warn("MAIL_PROVIDER=log, contact emails are only logged")
		return logsender.NewSender(logger), nil
	case config.MailNone:
		logger.Warn("MAIL_PROVIDER=none, contact requests will fail")
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}

// newPreferencesStore builds the signed cookie codec. Without a configured
// hash key a random one is generated, so cookies do not survive restarts.
func newPreferencesStore(cfg *config.Config, logger *slog.Logger) (*handler.PreferencesStore, error) {
	hashKey, blockKey, err := cfg.CookieKeys()
	if err != nil {
		return nil, err
	}
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil {
			return nil, errors.New("generate cookie hash key")
		}
		logger.Warn("COOKIE_HASH_KEY is not set, using a random key")
	}
	return handler.NewPreferencesStore(hashKey, blockKey, cfg.CookieSecure), nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("mail_provider", a.cfg.MailProvider),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		_ = a.Shutdown()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components in order: HTTP server, tracer,
// Kafka producer, then the stores.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}
	if a.stopBackground != nil {
		a.stopBackground()
	}

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(shutdownCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.closeResources()

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}

// closeResources releases the broker and store connections opened so far.
func (a *App) closeResources() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.redis = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}
