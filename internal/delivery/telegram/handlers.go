package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

func (b *Bot) handleCommand(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	args := strings.TrimSpace(msg.CommandArguments())

	switch msg.Command() {
	case "start", "help":
		b.sendMessage(chatID, msgHelp)

	case "key":
		b.handleKey(chatID, msg.MessageID, args)

	case "history":
		items, err := b.service.HistoryService.List()
		if err != nil {
			b.logger.Error("failed to list history: %v", err)
			b.sendMessage(chatID, application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, RenderHistory(items))

	case "show":
		b.handleShow(chatID, args)

	case "detail":
		n, err := strconv.Atoi(args)
		if err != nil {
			b.sendMessage(chatID, "Usa: /detail <número>")
			return
		}
		m, err := b.session.OpenDetail(n - 1)
		if err != nil {
			b.sendMessage(chatID, application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, RenderDetail(m))

	case "back":
		if err := b.session.CloseDetail(); err != nil {
			b.sendMessage(chatID, application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, RenderResults(b.session.Results()))

	case "export", "excel":
		name, data, err := buildExport(b.service.ExportService, msg.Command(), b.session.Results())
		if errors.Is(err, errNoResults) {
			b.sendMessage(chatID, msgNoResults)
			return
		}
		b.sendExport(chatID, name, data, err)

	case "sync_sheet":
		results := b.session.Results()
		if len(results) == 0 {
			b.sendMessage(chatID, msgNoResults)
			return
		}
		url, err := b.service.SheetsService.SyncResults(ctx, results)
		if err != nil {
			b.logger.Error("failed to sync sheet: %v", err)
			b.sendMessage(chatID, "❌ "+application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, "📊 Hoja actualizada: "+url)

	case "clear_history":
		if err := b.service.HistoryService.Clear(); err != nil {
			b.logger.Error("failed to clear history: %v", err)
			b.sendMessage(chatID, application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, "🗑 Historial borrado.")

	case "reset":
		if err := b.session.Reset(); err != nil {
			b.sendMessage(chatID, application.UserMessage(err))
			return
		}
		b.sendMessage(chatID, "Sesión reiniciada.")

	default:
		b.sendMessage(chatID, "Comando desconocido. Usa /help.")
	}
}

func (b *Bot) handleKey(chatID int64, messageID int, key string) {
	if err := b.service.KeyService.SetAPIKey(key); err != nil {
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}
	_ = b.session.Fire(models.EventKeySaved)

	// the key should not stay in the chat log
	if _, err := b.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.logger.Warn("failed to delete key message: %v", err)
	}
	b.sendMessage(chatID, "🔑 API key guardada.")
}

func (b *Bot) handleShow(chatID int64, args string) {
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 {
		b.sendMessage(chatID, "Usa: /show <número>")
		return
	}

	items, err := b.service.HistoryService.List()
	if err != nil {
		b.logger.Error("failed to list history: %v", err)
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}
	if n > len(items) {
		b.sendMessage(chatID, fmt.Sprintf("No existe el análisis número %d.", n))
		return
	}

	if err := b.session.ShowHistory(items[n-1].Results); err != nil {
		b.sendMessage(chatID, application.UserMessage(err))
		return
	}
	b.sendMessage(chatID, RenderResults(items[n-1].Results))
}

// handleDocument reads an uploaded .txt as the transcript. URLs may come in the
// caption.
func (b *Bot) handleDocument(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	doc := msg.Document
	if !isTextDocument(doc.FileName, doc.MimeType) {
		b.sendMessage(chatID, "Solo se aceptan archivos .txt como transcripción.")
		return
	}
	if doc.FileSize > maxTranscriptBytes {
		b.sendMessage(chatID, "El archivo es demasiado grande (máximo 1 MB).")
		return
	}

	transcript, err := b.downloadText(ctx, doc.FileID)
	if err != nil {
		b.logger.Error("failed to download transcript: %v", err)
		b.sendMessage(chatID, "No se pudo leer el archivo.")
		return
	}

	urls, captionTranscript := ParseInput(msg.Caption)
	if captionTranscript != "" {
		transcript = captionTranscript + "\n" + transcript
	}
	b.startAnalysis(ctx, chatID, urls, transcript)
}

func (b *Bot) downloadText(ctx context.Context, fileID string) (string, error) {
	fileURL, err := b.bot.GetFileDirectURL(fileID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTranscriptBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

func (b *Bot) sendExport(chatID int64, name string, data []byte, err error) {
	if err != nil {
		b.logger.Error("failed to export %s: %v", name, err)
		b.sendMessage(chatID, "❌ No se pudo generar el archivo.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	if _, err := b.bot.Send(doc); err != nil {
		b.logger.Error("failed to send %s: %v", name, err)
	}
}

func isTextDocument(name, mimeType string) bool {
	return strings.EqualFold(path.Ext(name), ".txt") || strings.HasPrefix(mimeType, "text/plain")
}
