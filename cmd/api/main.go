package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/config"
	"github.com/campaignforge/backend/internal/db"
	"github.com/campaignforge/backend/internal/events"
	"github.com/campaignforge/backend/internal/extract"
	"github.com/campaignforge/backend/internal/gen"
	apphttp "github.com/campaignforge/backend/internal/http"
	"github.com/campaignforge/backend/internal/http/handlers"
	"github.com/campaignforge/backend/internal/repositories"
	"github.com/campaignforge/backend/internal/services"
	"github.com/campaignforge/backend/internal/workflow"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	campaignRepo := repositories.NewCampaignRepo(pool)
	resultRepo := repositories.NewResultRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)

	// Pipeline
	generator := gen.NewClient(gen.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		BaseURL:     cfg.GeminiBaseURL,
		Model:       cfg.GeminiModel,
		ImageModel:  cfg.GeminiImageModel,
		Timeout:     time.Duration(cfg.GeminiTimeoutMS) * time.Millisecond,
		Temperature: cfg.GeminiTemperature,
		MaxTokens:   cfg.GeminiMaxTokens,
	}, log)
	extractor := extract.NewExtractor(cfg.ExtractTimeoutMS, cfg.ExtractMaxRetries, cfg.ExtractMaxBodySize, cfg.ExtractUserAgent, log)
	locker := workflow.NewRedisLocker(rdb, cfg.RunLockTTL)
	runStore := services.NewRunStore(campaignRepo, resultRepo, auditRepo, publisher, log)
	orchestrator := workflow.NewOrchestrator(generator, extractor, runStore, locker, cfg.RunTimeout, cfg.AssumedOrderCents, log)

	// Services
	campaignService := services.NewCampaignService(campaignRepo, resultRepo, orchestrator, log)

	// Handlers
	campaignHandler := handlers.NewCampaignHandler(campaignService, auditRepo, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, campaignHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
