package discord

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"pronostico/internal/application"
)

type Config struct {
	Token    string
	GuildID  string
	AdminIDs []string
	Timeout  time.Duration
}

// Bot exposes the analysis commands to a guild's admins. The admins share one
// analysis session.
type Bot struct {
	cfg      Config
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminIDs map[string]struct{}
	analysis *application.Session
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewBot(cfg Config, services *application.Service, logger application.Logger) *Bot {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultAnalyzeLimit
	}

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bot{
		cfg:      cfg,
		services: services,
		logger:   logger,
		adminIDs: admins,
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (b *Bot) Init() error {
	s, err := discordgo.New("Bot " + b.cfg.Token)
	if err != nil {
		return fmt.Errorf("failed to create discord session: %w", err)
	}
	b.session = s

	key, err := b.services.KeyService.GetAPIKey()
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}
	b.analysis = application.NewSession(key != "")

	b.session.AddHandler(b.onInteraction)
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Discord Bot Started. Registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.cfg.GuildID, commands)
	if err != nil {
		b.logger.Error("Failed to register commands: %v", err)
	} else {
		b.logger.Info("Slash commands registered successfully")
	}

	<-ctx.Done()
	b.cancel()
}

func (b *Bot) Stop() {
	b.cancel()
	if b.session != nil {
		if err := b.session.Close(); err != nil {
			b.logger.Error("failed to close discord session: %v", err)
		}
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	if !b.isAdmin(interactionUserID(i.Interaction)) {
		b.respondMessage(s, i.Interaction, "No tienes permisos.", true)
		return
	}

	switch i.ApplicationCommandData().Name {
	case "analyze":
		b.handleAnalyze(s, i.Interaction)
	case "history":
		b.handleHistory(s, i.Interaction)
	case "detail":
		b.handleDetail(s, i.Interaction)
	case "export":
		b.handleExportJSON(s, i.Interaction)
	case "excel":
		b.handleExportExcel(s, i.Interaction)
	case "sync_sheet":
		b.handleSyncSheet(s, i.Interaction)
	}
}
