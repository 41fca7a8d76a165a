package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/aluna-health/aluna/internal/api"
	"github.com/aluna-health/aluna/internal/config"
	"github.com/aluna-health/aluna/internal/db"
	"github.com/aluna-health/aluna/internal/notify"
	"github.com/aluna-health/aluna/internal/security"
	"github.com/aluna-health/aluna/internal/services"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("tz", cfg.Server.Timezone))
		location = time.UTC
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		generated, err := security.RandomString(48, security.SecretAlphabet)
		if err != nil {
			logger.Fatal("secret generation failed", zap.Error(err))
		}
		secret = generated
		logger.Warn("no auth secret configured, using an ephemeral one; sessions will not survive restarts")
	}

	database, err := db.OpenSQLite(cfg.Database.Path)
	if err != nil {
		logger.Fatal("database init failed", zap.Error(err))
	}
	repos := db.NewRepositories(database)

	tuning := services.DefaultCycleTuning()
	if len(cfg.Cycle.DetectionKeywords) > 0 {
		tuning.DetectionKeywords = cfg.Cycle.DetectionKeywords
	}

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()

	var delivery services.Delivery
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		telegram := notify.NewTelegramDelivery(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		telegram.Start(lifecycleCtx)
		delivery = telegram
	} else {
		delivery = notify.NewMemoryDelivery()
		logger.Info("telegram not configured, reminders stay in memory")
	}

	forecasts := services.NewForecastService(repos.Users, repos.DailyLogs, logger, location, tuning)
	delays := services.NewDelayService(repos.Users, repos.DailyLogs, repos.DelayRecords, logger, location)
	reminders := services.NewReminderService(delivery, logger, location, tuning)

	handler := api.NewHandler(repos, forecasts, delays, reminders, secret, location, logger)

	go runReminderRefreshLoop(lifecycleCtx, repos, forecasts, reminders, logger)

	app := fiber.New(fiber.Config{
		AppName:               "Aluna",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("aluna listening",
		zap.String("port", cfg.Server.Port),
		zap.String("db", cfg.Database.Path),
		zap.String("tz", location.String()),
	)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// runReminderRefreshLoop re-plans every user's reminders periodically so a
// newly logged period start shifts the scheduled set without waiting for an
// explicit refresh request.
func runReminderRefreshLoop(
	ctx context.Context,
	repos *db.Repositories,
	forecasts *services.ForecastService,
	reminders *services.ReminderService,
	logger *zap.Logger,
) {
	ticker := time.NewTicker(6 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshAllReminders(ctx, repos, forecasts, reminders, logger)
		}
	}
}

func refreshAllReminders(
	ctx context.Context,
	repos *db.Repositories,
	forecasts *services.ForecastService,
	reminders *services.ReminderService,
	logger *zap.Logger,
) {
	ids, err := repos.Users.ListIDs()
	if err != nil {
		logger.Error("reminder refresh user listing failed", zap.Error(err))
		return
	}

	for _, userID := range ids {
		profile, logs, err := forecasts.Plan(userID)
		if err != nil {
			logger.Warn("reminder refresh inputs failed", zap.Uint("user_id", userID), zap.Error(err))
			continue
		}
		if _, err := reminders.Refresh(ctx, userID, profile, logs, time.Now()); err != nil {
			logger.Warn("reminder refresh failed", zap.Uint("user_id", userID), zap.Error(err))
		}
	}
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}
