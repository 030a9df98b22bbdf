package main

import (
	"context"

	"pronostico/internal/delivery/discord"
	"pronostico/internal/delivery/telegram"
	"pronostico/internal/wiring"
	"pronostico/pkg/config"
	"pronostico/pkg/logger"
	service "pronostico/pkg/services"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Config{}
	if err := config.ReadEnvConfig(&cfg); err != nil {
		panic(err)
	}

	log := logger.NewLogger(&logger.Config{Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services, err := wiring.NewServices(ctx, &cfg, log)
	if err != nil {
		log.Error("failed to init services: %s", err.Error())
		return
	}
	defer services.Close()

	manager := service.NewManager(log)

	if cfg.TelegramToken != "" {
		if cfg.TelegramOwnerID == 0 {
			log.Warn("TELEGRAM_OWNER_ID is not set, the telegram bot will answer nobody")
		}
		manager.AddService(telegram.NewBot(cfg.TelegramToken, cfg.TelegramOwnerID, cfg.AnalysisTimeout, services.Service, log.With("bot", "telegram")))
	}

	if cfg.DiscordToken != "" {
		manager.AddService(discord.NewBot(discord.Config{
			Token:    cfg.DiscordToken,
			GuildID:  cfg.DiscordGuildID,
			AdminIDs: cfg.AdminUserIDs,
			Timeout:  cfg.AnalysisTimeout,
		}, services.Service, log.With("bot", "discord")))
	}

	if err := manager.Run(ctx); err != nil {
		log.Error("failed to run services: %s", err.Error())
		return
	}
	log.Info("Bots Stopped")
}
