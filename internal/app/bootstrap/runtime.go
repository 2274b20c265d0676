package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viralforge/courierdesk/internal/adapters/drive"
	"github.com/viralforge/courierdesk/internal/adapters/extract"
	"github.com/viralforge/courierdesk/internal/adapters/hoorin"
	httpadapter "github.com/viralforge/courierdesk/internal/adapters/http"
	"github.com/viralforge/courierdesk/internal/adapters/localstore"
	"github.com/viralforge/courierdesk/internal/adapters/steadfast"
	"github.com/viralforge/courierdesk/internal/application"
)

type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	httpServer *http.Server
}

func NewRuntime(ctx context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("bootstrapping courierdesk", "http_port", cfg.HTTPPort, "store_path", cfg.StorePath)

	store, err := localstore.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	repos := localstore.NewRepositories(store)

	upstreamClient := &http.Client{Timeout: cfg.UpstreamTimeout}
	deps := application.Dependencies{
		Config:  application.Config{ServiceName: cfg.ServiceName},
		Logger:  logger,
		Entries: repos.Entries,
		Creds:   repos.Creds,
		Tokens:  repos.Tokens,
		Aggregator: hoorin.NewClient(hoorin.Config{
			BaseURL:    cfg.HoorinBaseURL,
			APIKey:     cfg.HoorinAPIKey,
			HTTPClient: upstreamClient,
		}),
		Gateway: steadfast.NewClient(steadfast.Config{
			BaseURL:    cfg.SteadfastBaseURL,
			HTTPClient: upstreamClient,
		}),
	}
	if cfg.GoogleClientID != "" && cfg.GoogleClientSecret != "" {
		deps.Drive = drive.NewClient(drive.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURI:  cfg.GoogleRedirectURI,
		})
	} else {
		logger.Warn("google oauth not configured, drive backup disabled")
	}
	if cfg.GeminiAPIKey != "" {
		extractor, err := extract.NewGeminiExtractor(ctx, extract.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, fmt.Errorf("init extractor: %w", err)
		}
		deps.Extractor = extractor
	} else {
		logger.Warn("gemini api key not configured, ai extraction disabled")
	}

	service := application.NewService(deps)
	router := httpadapter.NewRouter(httpadapter.NewHandler(service), logger)

	return &Runtime{
		cfg:    cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// RunAPI serves HTTP until the context is cancelled or an interrupt arrives,
// then drains in-flight requests.
func (r *Runtime) RunAPI(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("http server listening", "addr", r.httpServer.Addr)
		if err := r.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return r.httpServer.Shutdown(shutdownCtx)
}
