package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/geocheckin/internal/server"
	"github.com/iudanet/geocheckin/internal/server/cache"
	"github.com/iudanet/geocheckin/internal/server/config"
	"github.com/iudanet/geocheckin/internal/server/handlers"
	"github.com/iudanet/geocheckin/internal/server/metrics"
	"github.com/iudanet/geocheckin/internal/server/storage"
	"github.com/iudanet/geocheckin/internal/server/storage/minio"
	"github.com/iudanet/geocheckin/internal/server/storage/sqlite"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	issueToken := flag.String("issue-token", "", "Print an access token for the given shipper ID and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(cfg.JWTSecret),
		AccessTokenTTL: cfg.AccessTokenTTL,
	}

	if *issueToken != "" {
		token, expiresAt, err := handlers.GenerateAccessToken(jwtConfig, *issueToken)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		if !expiresAt.IsZero() {
			fmt.Fprintf(os.Stderr, "Expires at %s\n", expiresAt.Format(time.RFC3339))
		}
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, jwtConfig, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, jwtConfig handlers.JWTConfig, logger *slog.Logger) error {
	logger.Info("Starting geocheckin server", "version", Version, "commit", GitCommit)

	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	var photos storage.PhotoStore = store.Photos()
	if cfg.PhotoStore == config.PhotoStoreMinio {
		photos, err = minio.New(ctx, minio.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to init photo storage: %w", err)
		}
	}
	logger.Info("Photo storage selected", "store", cfg.PhotoStore)

	var markerCache cache.MarkerCache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer func() {
			_ = rdb.Close()
		}()
		markerCache = cache.NewRedis(rdb, cfg.MarkerCacheTTL, logger)
		logger.Info("Marker cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.MarkerCacheTTL)
	}

	srv := server.New(server.Options{
		Addr:            cfg.HTTPAddr,
		JWT:             jwtConfig,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		SubmitRateLimit: cfg.SubmitRateLimit,
	}, server.Deps{
		Logger:  logger,
		Store:   store,
		Photos:  photos,
		Cache:   markerCache,
		Metrics: metrics.New(),
	})

	return srv.Run(ctx)
}

func printVersion() {
	fmt.Printf("Geocheckin Server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
