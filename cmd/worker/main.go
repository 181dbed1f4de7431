package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/campaignforge/backend/internal/config"
	"github.com/campaignforge/backend/internal/db"
	"github.com/campaignforge/backend/internal/events"
	"github.com/campaignforge/backend/internal/repositories"
	"github.com/campaignforge/backend/internal/services"
)

// The worker is a janitor: it fails campaigns whose runs died mid-flight
// (api crash, lost worker) so polling clients see a terminal state instead
// of a status frozen forever.
func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	campaignRepo := repositories.NewCampaignRepo(pool)
	resultRepo := repositories.NewResultRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)
	runStore := services.NewRunStore(campaignRepo, resultRepo, auditRepo, publisher, log)

	// Mirror campaign lifecycle events into the worker log for operations.
	subscriber := events.NewRedisSubscriber(rdb, log)
	err = subscriber.Subscribe(ctx, events.StreamCampaign, func(e events.Event) {
		log.Info("campaign event", zap.String("type", e.Type), zap.Any("payload", e.Payload))
	})
	if err != nil {
		log.Warn("event subscription failed", zap.Error(err))
	}

	// Liveness endpoint so the deployment can probe the worker.
	health := fiber.New(fiber.Config{DisableStartupMessage: true})
	health.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	go func() {
		if err := health.Listen(":" + cfg.WorkerPort); err != nil {
			log.Error("health server stopped", zap.Error(err))
		}
	}()

	log.Info("worker started", zap.Duration("interval", cfg.JanitorInterval))

	ticker := time.NewTicker(cfg.JanitorInterval)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-ticker.C:
			failStuckCampaigns(ctx, campaignRepo, runStore, cfg, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			_ = health.Shutdown()
			return
		case <-ctx.Done():
			return
		}
	}
}

func failStuckCampaigns(ctx context.Context, repo *repositories.CampaignRepo, store *services.RunStore, cfg *config.Config, log *zap.Logger) {
	campaigns, err := repo.ListStuck(ctx, cfg.StuckRunAge, 50)
	if err != nil {
		log.Error("failed to list stuck campaigns", zap.Error(err))
		return
	}

	for _, c := range campaigns {
		log.Info("failing abandoned campaign",
			zap.String("campaign_id", c.ID.String()),
			zap.String("status", c.Status),
			zap.Time("updated_at", c.UpdatedAt),
		)
		if err := store.SetFailed(ctx, c.ID, c.Status, "run abandoned"); err != nil {
			log.Error("failed to mark campaign failed",
				zap.String("campaign_id", c.ID.String()),
				zap.Error(err))
		}
	}
}
