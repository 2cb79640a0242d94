package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/swiftfood/checkout-gateway/internal/backend"
	"github.com/swiftfood/checkout-gateway/internal/domain/account"
	"github.com/swiftfood/checkout-gateway/internal/domain/checkout"
	"github.com/swiftfood/checkout-gateway/internal/geocode"
	"github.com/swiftfood/checkout-gateway/internal/handler"
	"github.com/swiftfood/checkout-gateway/internal/promo"
	"github.com/swiftfood/checkout-gateway/pkg/health"
	"github.com/swiftfood/checkout-gateway/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the HTTP server, and handles
// graceful shutdown. It is the single wiring point for the gateway.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr), zap.String("backend", cfg.BackendURL))

	// Outbound HTTP: instrumented transport shared by backend and geocode
	// clients.
	outbound := &http.Client{
		Timeout: 30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	api, err := backend.NewClient(backend.Config{
		BaseURL:     cfg.BackendURL,
		Token:       cfg.BackendToken,
		ZoneMarkers: cfg.ZoneMarkers,
		HTTPClient:  outbound,
	})
	if err != nil {
		return errors.Wrap(err, "create backend client")
	}

	var geocoder handler.Geocoder
	if cfg.GoogleAPIKey != "" {
		geocoder = geocode.New(cfg.GoogleAPIKey, geocode.WithHTTPClient(outbound))
	} else {
		lg.Info("Geocoding disabled: no Google API key configured")
	}

	// Promo pre-screen is best effort: the gateway works without it, every
	// code just goes to remote validation.
	var screener checkout.PromoScreener
	if cfg.PromoPackPath != "" {
		screen, err := promo.Load(cfg.PromoPackPath)
		if err != nil {
			lg.Warn("Promo pack unavailable, pre-screen disabled",
				zap.String("path", cfg.PromoPackPath), zap.Error(err))
		} else {
			screener = screen
			lg.Info("Promo pre-screen loaded", zap.Uint32("approx_codes", screen.ApproxSize()))
		}
	}

	// Checkout pipeline.
	resolver := account.NewResolver(api)
	checkoutSvc := checkout.NewService(resolver, api, api, api, screener)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("backend", 5*time.Second, health.PingCheck(api.Ping))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Mux: health endpoints + API routes on one server.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	handler.New(checkoutSvc, geocoder, api).Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins:     cfg.CORS.Origins,
				AllowHeaders:     []string{"Content-Type", "Authorization"},
				AllowCredentials: cfg.CORS.AllowCredentials,
				MaxAge:           86400,
			}),
			httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.LogRequests(),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
