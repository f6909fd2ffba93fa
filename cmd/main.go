package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"estateportal/internal/config"
	"estateportal/internal/handlers"
	"estateportal/internal/middleware"
	"estateportal/internal/migrations"
	"estateportal/internal/notify"
	"estateportal/internal/repositories"
	"estateportal/internal/services"
	"estateportal/pkg/database"
	"estateportal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log, err := logger.New(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Auth.GeneratedSecret {
		log.Warn("JWT_SECRET is not set; using a generated secret, issued tokens will not survive a restart")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := database.Migrate(ctx, pool, migrations.Migrations, log); err != nil {
			return err
		}
	}

	probes := map[string]handlers.Probe{"database": pool.Ping}

	var dispatcher notify.Dispatcher
	switch cfg.Mail.Transport {
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		dispatcher = notify.NewRedisMailer(rdb, cfg.Mail.OutboxKey)
		probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("Mail delivery through redis outbox", zap.String("addr", cfg.Redis.Addr), zap.String("key", cfg.Mail.OutboxKey))
	default:
		dispatcher = notify.NewLogMailer(log)
		log.Info("Mail delivery to log only", zap.String("transport", cfg.Mail.Transport))
	}
	mailer := notify.NewMailer(dispatcher, cfg.Mail.From, cfg.Mail.ManagerEmail)

	store, err := services.NewMinioDocumentStore(services.MinioStoreConfig{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
	})
	if err != nil {
		return fmt.Errorf("document store: %w", err)
	}
	probes["storage"] = store.Ping

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	applicationRepo := repositories.NewApplicationRepo(pool)
	auditLogsRepo := repositories.NewAuditLogsRepo(pool)
	documentRepo := repositories.NewDocumentRepo(pool)

	// Services
	hasher := services.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokenService := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := services.NewAuthService(userRepo, tokenService, hasher, log)
	auditLogsService := services.NewAuditLogsService(auditLogsRepo)
	applicationService := services.NewApplicationService(applicationRepo, userRepo, auditLogsService, hasher, mailer, log,
		services.ApplicationServiceConfig{EmailTempPasswords: cfg.Mail.EmailTempPasswords})
	userService := services.NewUserService(userRepo, auditLogsService, hasher, log)
	documentService := services.NewDocumentService(documentRepo, store, cfg.Storage.URLTTL)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(log)

	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLogger(log))
	e.Use(echoMiddleware.RemoveTrailingSlash())
	if len(cfg.CORSOrigins) > 0 {
		e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	} else {
		e.Use(echoMiddleware.CORS())
	}

	handlers.RegisterRoutes(e, &handlers.Handlers{
		Auth:         handlers.NewAuthHandlers(authService),
		Applications: handlers.NewApplicationHandlers(applicationService),
		Users:        handlers.NewUserHandlers(userService, documentService),
		Documents:    handlers.NewDocumentHandlers(documentService),
		AuditLogs:    handlers.NewAuditLogsHandlers(auditLogsService),
		Health:       handlers.NewHealthHandlers(probes),
	}, authService)

	errCh := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Info("Starting server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
