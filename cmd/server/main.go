// Command server runs the Knowtasks HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	fiberadapter "github.com/knowtasks/knowtasks/adapters/fiber"
	pgxadapter "github.com/knowtasks/knowtasks/adapters/pgx"
	redisadapter "github.com/knowtasks/knowtasks/adapters/redis"
	s3adapter "github.com/knowtasks/knowtasks/adapters/s3"
	"github.com/knowtasks/knowtasks/config"
	"github.com/knowtasks/knowtasks/core"
	"github.com/knowtasks/knowtasks/crypto"
	"github.com/knowtasks/knowtasks/logging"
	"github.com/knowtasks/knowtasks/migrations"
	"github.com/knowtasks/knowtasks/services"
	"github.com/knowtasks/knowtasks/token"
)

const shutdownGrace = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.NewJSON()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrations.Run(ctx, cfg.DatabaseDSN); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	store := pgxadapter.New(pool)

	var throttle core.LoginThrottle
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
		defer client.Close()
		throttle = redisadapter.NewThrottle(client, cfg.LoginMaxAttempts, cfg.LoginWindow)
		log.Info(ctx, "using redis login throttle", "addr", cfg.RedisAddr)
	} else {
		throttle = services.NewMemoryThrottle(cfg.LoginMaxAttempts, cfg.LoginWindow)
	}

	tokens := token.NewIssuer([]byte(cfg.AuthSecret), cfg.TokenTTL)

	auth, err := services.NewAuthService(store, crypto.NewBcrypt(), tokens, throttle, log)
	if err != nil {
		return fmt.Errorf("initializing auth service: %w", err)
	}

	var uploads core.UploadStore
	if cfg.S3Enabled() {
		s3store, err := s3adapter.New(ctx, s3adapter.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
		})
		if err != nil {
			return fmt.Errorf("initializing object storage: %w", err)
		}
		uploads = s3store
		log.Info(ctx, "object storage enabled", "bucket", cfg.S3Bucket)
	}

	content := services.NewContentService(store, uploads, log)

	app := fiber.New()
	adapter := fiberadapter.New(auth, content, tokens, log)
	if cfg.DevPrincipalID != "" {
		adapter.EnableDevBypass(&core.Claims{
			PrincipalID: cfg.DevPrincipalID,
			Role:        core.Role(cfg.DevPrincipalRole),
		})
		log.Warn(ctx, "authentication bypass enabled", "principal", cfg.DevPrincipalID)
	}
	adapter.RegisterRoutes(app)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", cfg.Addr)
		errCh <- app.Listen(cfg.Addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
