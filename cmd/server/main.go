package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"edenstone/internal/browse"
	"edenstone/internal/config"
	"edenstone/internal/decor"
	"edenstone/internal/handler"
	"edenstone/internal/lead"
	"edenstone/internal/logger"
	"edenstone/internal/middleware"
	"edenstone/internal/notify"
	"edenstone/internal/storefront"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

// startServerFunc serves handler on addr until ctx is done, then shuts the
// server down gracefully. Tests replace it.
var startServerFunc = func(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, cfg)
}

type app struct {
	router   http.Handler
	sessions *browse.Store
	limiter  *middleware.RateLimiter
}

// serve runs the HTTP server with its background sweepers. Everything stops
// once the server returns.
func serve(ctx context.Context, cfg *config.Config) error {
	a, err := newServer(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.sessions.Run(gctx) })
	g.Go(func() error { return a.limiter.Run(gctx) })
	g.Go(func() error {
		defer cancel()
		logger.L().Info("storefront server running", zap.String("port", cfg.AppPort), zap.String("api", cfg.APIBaseURL))
		return startServerFunc(gctx, ":"+cfg.AppPort, a.router)
	})

	return g.Wait()
}

func newServer(cfg *config.Config) (*app, error) {
	client := decor.NewAPIClient(cfg.APIBaseURL, cfg.UpstreamTimeout)
	sessions := browse.NewStore(func() *decor.Controller {
		return decor.NewController(client)
	}, cfg.SessionTTL)
	detail := decor.NewDetailFetcher(client, cfg.DetailTimeout)

	var notifier lead.Notifier
	if cfg.LeadNotificationsEnabled() {
		mailer, err := notify.NewMailer(cfg.SendGridAPIKey, cfg.LeadNotifyFrom, cfg.LeadNotifyTo)
		if err != nil {
			return nil, err
		}
		notifier = mailer
	} else {
		logger.L().Info("lead notifications disabled")
	}
	leads := lead.NewService(lead.NewCallbackGateway(cfg.APIBaseURL, cfg.UpstreamTimeout), notifier)

	catalog, err := storefront.Default()
	if err != nil {
		return nil, err
	}

	h := handler.New(sessions, detail, leads, catalog)
	h.SecureCookies = cfg.AppEnv == "production"
	h.SessionTTL = cfg.SessionTTL

	limiter := middleware.NewRateLimiter(cfg.InternalSecretKey)

	return &app{
		router:   setupRouter(h, limiter, cfg.AllowedOrigins),
		sessions: sessions,
		limiter:  limiter,
	}, nil
}

func setupRouter(h *handler.Handler, limiter *middleware.RateLimiter, origins []string) http.Handler {
	r := chi.NewRouter()
	// If deployed behind a trusted reverse proxy, RealIP takes the client
	// address from X-Forwarded-For / X-Real-IP.
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(origins))
	r.Use(limiter.Middleware)
	r.Use(chimw.Timeout(requestTimeout))

	h.Routes(r)
	return r
}
