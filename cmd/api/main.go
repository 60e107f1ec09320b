package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dreamforge/assetgen/internal/adapter/repo"
	"github.com/dreamforge/assetgen/internal/backend"
	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/generation"
	"github.com/dreamforge/assetgen/internal/http/handlers"
	"github.com/dreamforge/assetgen/internal/http/httpapi"
	"github.com/dreamforge/assetgen/internal/infra"
	"github.com/dreamforge/assetgen/internal/infra/geoip"
	"github.com/dreamforge/assetgen/internal/middleware"
	"github.com/dreamforge/assetgen/internal/storage"
	"github.com/dreamforge/assetgen/internal/styles"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assetRepo, cleanup, err := buildAssetRepository(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: failed to configure persistence")
	}
	defer cleanup()

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("api: geoip disabled")
	} else if resolver != nil {
		defer resolver.Close()
		countryLookup = resolver.CountryCode
	}

	client := backend.NewHTTPClient(backend.Options{
		BaseURL: cfg.BackendBaseURL,
		APIKey:  cfg.BackendAPIKey,
		Timeout: 60 * time.Second,
	})

	catalog := styles.Default()

	service := generation.NewService(generation.Options{
		Backend:  client,
		Styles:   catalog,
		Repo:     assetRepo,
		Logger:   logger,
		Provider: cfg.BackendProvider,
		Policy: generation.Policy{
			Interval: cfg.PollInterval,
			MaxTicks: cfg.PollMaxTicks,
		},
		Retention: cfg.ResultRetention,
		Notify: func(asset domain.GeneratedAsset) {
			logger.Info().
				Str("asset_id", asset.ID).
				Str("job_id", asset.JobID).
				Str("filename", asset.Filename).
				Msg("asset ready")
		},
	})

	app := handlers.NewApp(service, assetRepo, catalog, logger, cfg.RecentAssetLimit)
	router := httpapi.NewRouter(app, httpapi.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		DefaultLocale:  cfg.DefaultLocale,
		CountryLookup:  countryLookup,
	})

	server := infra.NewHTTPServer(infra.ServerOptions{
		Addr:         ":" + cfg.Port,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}, router)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("api: listening")
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("api: http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("api: failed to shutdown server")
	}
	service.Shutdown()
	logger.Info().Msg("api: stopped")
}

// buildAssetRepository picks Postgres when DATABASE_URL is configured and
// falls back to filesystem persistence otherwise.
func buildAssetRepository(ctx context.Context, cfg *infra.Config, logger infra.Logger) (domain.AssetRepository, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Msg("api: using postgres persistence")
		return repo.NewAssetRepository(pool), pool.Close, nil
	}

	store, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		return nil, nil, err
	}
	logger.Warn().Str("path", store.BasePath()).Msg("api: DATABASE_URL unset, using filesystem persistence")
	return repo.NewAssetFileRepository(store), func() {}, nil
}
