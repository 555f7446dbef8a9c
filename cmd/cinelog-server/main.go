// Package main is the entry point for the cinelog server, a movie
// catalog web service backed by JSON flat files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/handler"
	"github.com/cinelog/cinelog/internal/lock"
	"github.com/cinelog/cinelog/internal/repository/jsonfile"
	"github.com/cinelog/cinelog/internal/service"
	"github.com/cinelog/cinelog/internal/session"
	"github.com/cinelog/cinelog/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting cinelog server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}

	logger.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	locker, err := setupLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}

	posters, err := setupStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}

	userRepo := jsonfile.NewUserRepository(cfg.Store.UsersFile, locker, logger)
	movieRepo := jsonfile.NewMovieRepository(cfg.Store.MoviesFile, locker, logger)

	sessions := session.NewManager(cfg.Session.TTL, cfg.Session.Secure)

	userService := service.NewUserService(userRepo, logger)
	movieService := service.NewMovieService(movieRepo, posters, logger)
	statsService := service.NewStatsService(movieRepo, logger)

	router := handler.NewRouter(handler.RouterConfig{
		AuthHandler: handler.NewAuthHandler(userService, sessions, logger),
		MovieHandler: handler.NewMovieHandler(handler.MovieHandlerConfig{
			MovieService:  movieService,
			StatsService:  statsService,
			Posters:       posters,
			MaxUploadSize: cfg.Server.MaxUploadSize,
			Logger:        logger,
		}),
		Sessions: sessions,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.Handler())
		metricsSrv = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			logger.Info().Str("addr", metricsSrv.Addr).Msg("metrics server listening")
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	return nil
}

// setupLogger builds the root logger from configuration.
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// setupLocker builds the document locker from configuration.
func setupLocker(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (lock.Locker, error) {
	switch cfg.Lock.Backend {
	case "memory":
		logger.Info().Msg("using in-memory document locking")
		return lock.NewMemoryLocker(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr(),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: cfg.Redis.DialTimeout,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using redis document locking")
		return lock.NewRedisLocker(client), nil
	case "noop":
		logger.Warn().Msg("document locking disabled, concurrent writers may lose updates")
		return lock.NewNoOpLocker(), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}
}

// setupStorage builds the poster storage backend from configuration.
func setupStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Backend, error) {
	switch cfg.Storage.Backend {
	case "filesystem":
		logger.Info().Str("dir", cfg.Storage.UploadDir).Msg("using filesystem poster storage")
		return storage.NewFilesystemBackend(cfg.Storage.UploadDir)
	case "s3":
		logger.Info().
			Str("bucket", cfg.Storage.S3.Bucket).
			Str("endpoint", cfg.Storage.S3.Endpoint).
			Msg("using s3 poster storage")
		return storage.NewS3Backend(ctx, storage.S3Options{
			Endpoint:        cfg.Storage.S3.Endpoint,
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			KeyPrefix:       cfg.Storage.S3.KeyPrefix,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
