package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	validator "github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/goldshop-api/internal/config"
	"github.com/noah-isme/goldshop-api/internal/health"
	"github.com/noah-isme/goldshop-api/internal/history"
	"github.com/noah-isme/goldshop-api/internal/invoice"
	"github.com/noah-isme/goldshop-api/internal/ledger"
	"github.com/noah-isme/goldshop-api/internal/obs"
	"github.com/noah-isme/goldshop-api/internal/pricing"
	"github.com/noah-isme/goldshop-api/internal/ratelimit"
	"github.com/noah-isme/goldshop-api/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsEnabled {
		obs.MustRegisterDomainMetrics(cfg.MetricsNamespace, nil)
	}

	tracingEnabled := cfg.TracingEnabled
	if tracingEnabled {
		shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
			ServiceName:   "goldshop-api",
			Endpoint:      cfg.TracingEndpoint,
			SamplingRatio: cfg.TracingSamplingRatio,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessions := session.NewStore(cfg.SessionTTL)
	go sessions.Janitor(ctx, cfg.SessionSweepInterval, logger)

	pricingHandler := &pricing.Handler{
		Validate:       validate,
		DefaultRate24K: cfg.DefaultRate24K,
	}
	ledgerHandler := &ledger.Handler{
		FromRequest: func(r *http.Request) *ledger.Ledger {
			if sess, ok := session.FromContext(r.Context()); ok {
				return sess.Ledger
			}
			return nil
		},
		Validate:       validate,
		DefaultRate24K: cfg.DefaultRate24K,
		Currency:       cfg.CurrencyCode,
		ShopName:       cfg.ShopName,
		Invoices:       invoice.PDF{Enabled: cfg.InvoicePDFEnabled},
		DefaultPerPage: 50,
	}
	historyHandler := &history.Handler{
		Sim:               history.NewSimulator(nil, nil),
		DefaultRate24K:    cfg.DefaultRate24K,
		DefaultDays:       cfg.HistoryDays,
		DefaultVolatility: cfg.HistoryVolatility,
	}
	sessionHandler := session.Handler{}
	healthHandler := health.Handler{Sessions: sessions}

	var httpMetrics *obs.HTTPMetrics
	if cfg.MetricsEnabled {
		httpMetrics = obs.NewHTTPMetrics(cfg.MetricsNamespace, nil)
	}
	limit := ratelimit.Handler{
		Limiter: ratelimit.NewMemoryLimiter(cfg.RateLimitPerMinute),
		OnError: func(err error) { logger.Error().Err(err).Msg("rate limiter") },
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger, SessionHeader: session.HeaderName}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", session.HeaderName},
		ExposedHeaders:   []string{session.HeaderName, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.ReadyHandler)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(limit.Middleware)
		v.Use(sessions.Middleware)

		v.Post("/quotes", pricingHandler.Quote)
		v.Get("/rates/{karat}", pricingHandler.Rate)
		v.Get("/history", historyHandler.Get)
		v.Get("/session", sessionHandler.Get)

		v.Route("/transactions", func(t chi.Router) {
			t.Post("/", ledgerHandler.Create)
			t.Get("/", ledgerHandler.List)
			t.Get("/export.csv", ledgerHandler.ExportCSV)
			t.Get("/{invoiceNo}/invoice.pdf", ledgerHandler.InvoicePDF)
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()
	health.SetReady(true)

	select {
	case <-ctx.Done():
		health.SetReady(false)
		logger.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}
