package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

const (
	defaultAnalysisTimeout = 3 * time.Minute
	maxTranscriptBytes     = 1 << 20
)

// Bot serves a single owner. Every other sender is turned away.
type Bot struct {
	token   string
	ownerID int64
	timeout time.Duration

	bot        *tgbotapi.BotAPI
	service    *application.Service
	session    *application.Session
	logger     application.Logger
	httpClient *http.Client
}

func NewBot(token string, ownerID int64, timeout time.Duration, service *application.Service, logger application.Logger) *Bot {
	if timeout <= 0 {
		timeout = defaultAnalysisTimeout
	}
	return &Bot{
		token:      token,
		ownerID:    ownerID,
		timeout:    timeout,
		service:    service,
		logger:     logger,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *Bot) Init() error {
	bot, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("failed to create telegram bot: %w", err)
	}
	b.bot = bot

	key, err := b.service.KeyService.GetAPIKey()
	if err != nil {
		return fmt.Errorf("failed to read api key: %w", err)
	}
	b.session = application.NewSession(key != "")

	b.logger.Info("Telegram bot authorized on account %s", bot.Self.UserName)
	return nil
}

func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() {
	if b.bot != nil {
		b.bot.StopReceivingUpdates()
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	chatID := msg.Chat.ID
	if !b.isOwner(msg.From) {
		b.sendMessage(chatID, msgPrivateBot)
		return
	}

	switch {
	case msg.Document != nil:
		b.handleDocument(ctx, chatID, msg)
	case msg.IsCommand():
		b.handleCommand(ctx, chatID, msg)
	default:
		urls, transcript := ParseInput(msg.Text)
		b.startAnalysis(ctx, chatID, urls, transcript)
	}
}

// startAnalysis runs one analysis in the background. The session rejects a
// second one while the first is loading.
func (b *Bot) startAnalysis(ctx context.Context, chatID int64, urls []string, transcript string) {
	key, err := b.service.KeyService.GetAPIKey()
	if err != nil {
		b.logger.Error("failed to read api key: %v", err)
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}
	b.session.SyncKey(key != "")

	req := models.AnalysisRequest{URLs: urls, APIKey: key, Transcript: transcript}
	if err := application.ValidateRequest(req); err != nil {
		if key == "" {
			b.sendMessage(chatID, msgKeyRequired)
			return
		}
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}

	if err := b.session.Submit(); err != nil {
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}

	b.sendMessage(chatID, fmt.Sprintf(msgAnalyzing, len(req.CleanURLs()), req.HasTranscript()))
	_, _ = b.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))

	go func() {
		ctx, cancel := context.WithTimeout(ctx, b.timeout)
		defer cancel()

		results, err := b.service.AnalysisService.Analyze(ctx, req)
		if err != nil {
			_ = b.session.Fail(err)
			b.sendMessage(chatID, "❌ "+application.UserMessage(err))
			return
		}

		_ = b.session.Succeed(results)
		b.sendMessage(chatID, RenderResults(results))
	}()
}

func (b *Bot) isOwner(user *tgbotapi.User) bool {
	return user != nil && b.ownerID != 0 && user.ID == b.ownerID
}
