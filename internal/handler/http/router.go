package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/i18n"
	"github.com/Taqinou/enzo-gazzoli-portfolio/internal/service"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/health"
	"github.com/Taqinou/enzo-gazzoli-portfolio/pkg/middleware"
)

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	ServiceName      string
	CORS             middleware.CORSConfig
	ContactRateLimit middleware.RateLimitConfig
	AdminToken       string
	// AdminJWTSecret additionally admits HS256 admin tokens when set.
	AdminJWTSecret string
	// CatalogMaxAge is the public cache lifetime of the catalog in seconds.
	CatalogMaxAge int
	EnablePprof   bool
	PprofCIDRs    []string
}

// Services bundles what the router serves.
type Services struct {
	Quotes      *service.QuoteService
	Contact     *service.ContactService
	Preferences *PreferencesStore
	Health      *health.Handler
}

// NewRouter creates a chi router with all portfolio API routes registered.
// ctx bounds background work owned by the router, such as rate limiter
// eviction.
func NewRouter(ctx context.Context, svcs Services, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(Locale(svcs.Preferences))

	// Health check endpoints
	r.Get("/health/live", svcs.Health.LivenessHandler())
	r.Get("/health/ready", svcs.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if cfg.EnablePprof {
		middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)
	}

	catalogHandler := NewCatalogHandler(svcs.Quotes.Catalog(), logger)
	quoteHandler := NewQuoteHandler(svcs.Quotes, logger)
	contactHandler := NewContactHandler(svcs.Contact, logger)
	preferencesHandler := NewPreferencesHandler(svcs.Preferences, logger)
	adminHandler := NewAdminHandler(svcs.Contact, logger)

	rateLimit := cfg.ContactRateLimit
	if rateLimit.Message == nil {
		rateLimit.Message = func(r *http.Request) string {
			return i18n.T(LocaleFromContext(r.Context()), i18n.KeyContactRateLimited)
		}
	}

	adminValidator := middleware.StaticTokenValidator(cfg.AdminToken)
	if cfg.AdminJWTSecret != "" {
		adminValidator = middleware.AnyValidator(adminValidator, middleware.JWTValidator(cfg.AdminJWTSecret))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.CacheControl(cfg.CatalogMaxAge)).Get("/catalog", catalogHandler.GetCatalog)

		r.Route("/quotes", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Post("/", quoteHandler.CreateSession)
			r.Post("/estimate", quoteHandler.Estimate)
			r.Get("/{id}", quoteHandler.GetSession)
			r.Delete("/{id}", quoteHandler.DeleteSession)
			r.Put("/{id}/project-type", quoteHandler.SelectProjectType)
			r.Post("/{id}/project-type/toggle", quoteHandler.ToggleProjectType)
			r.Put("/{id}/sub-type", quoteHandler.SetSubType)
			r.Post("/{id}/options/{optionId}/toggle", quoteHandler.ToggleOption)
			r.Post("/{id}/reset", quoteHandler.Reset)
			r.Get("/{id}/summary", quoteHandler.Summary)
		})

		r.With(middleware.RateLimit(ctx, rateLimit, logger)).Post("/contact", contactHandler.Submit)

		r.Route("/preferences", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/", preferencesHandler.GetPreferences)
			r.Put("/", preferencesHandler.UpdatePreferences)
		})

		r.Route("/admin/contact-submissions", func(r chi.Router) {
			r.Use(middleware.Auth(adminValidator))
			r.Use(middleware.RequireRole(middleware.RoleAdmin))
			r.Use(middleware.NoStore)

			r.Get("/", adminHandler.ListSubmissions)
			r.Get("/{id}", adminHandler.GetSubmission)
			r.Post("/{id}/retry", adminHandler.RetrySubmission)
		})
	})

	return r
}
