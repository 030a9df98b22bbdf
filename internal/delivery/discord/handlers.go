package discord

import (
	"bytes"
	"context"

	"github.com/bwmarrin/discordgo"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

func (b *Bot) handleAnalyze(s *discordgo.Session, i *discordgo.Interaction) {
	var urlsArg, transcript string
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "urls":
			urlsArg = opt.StringValue()
		case "transcript":
			transcript = opt.StringValue()
		}
	}

	key, err := b.services.KeyService.GetAPIKey()
	if err != nil {
		b.logger.Error("failed to read api key: %v", err)
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}
	b.analysis.SyncKey(key != "")

	req := models.AnalysisRequest{URLs: SplitURLs(urlsArg), APIKey: key, Transcript: transcript}
	if err := application.ValidateRequest(req); err != nil {
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}

	if err := b.analysis.Submit(); err != nil {
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}

	if !b.deferResponse(s, i) {
		_ = b.analysis.Fail(context.Canceled)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(b.ctx, b.cfg.Timeout)
		defer cancel()

		results, err := b.services.AnalysisService.Analyze(ctx, req)
		if err != nil {
			_ = b.analysis.Fail(err)
			b.editContent(s, i, "❌ "+application.UserMessage(err))
			return
		}

		_ = b.analysis.Succeed(results)
		b.sendResults(s, i, results)
	}()
}

func (b *Bot) handleHistory(s *discordgo.Session, i *discordgo.Interaction) {
	items, err := b.services.HistoryService.List()
	if err != nil {
		b.logger.Error("failed to list history: %v", err)
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		embed := &discordgo.MessageEmbed{
			Title:       "🕘 Historial",
			Description: HistoryDescription(items),
			Color:       colorBlue,
		}
		if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
		}); err != nil {
			b.logger.Error("failed to respond to interaction: %v", err)
		}
		return
	}

	n := int(options[0].IntValue())
	if n < 1 || n > len(items) {
		b.respondMessage(s, i, "No existe ese análisis en el historial.", true)
		return
	}

	results := items[n-1].Results
	if err := b.analysis.ShowHistory(results); err != nil {
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}
	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: resultsContent(results),
			Embeds:  ResultEmbeds(results),
		},
	}); err != nil {
		b.logger.Error("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) handleDetail(s *discordgo.Session, i *discordgo.Interaction) {
	n := int(i.ApplicationCommandData().Options[0].IntValue())

	m, err := b.analysis.OpenDetail(n - 1)
	if err != nil {
		b.respondMessage(s, i, application.UserMessage(err), true)
		return
	}
	// a Discord detail is a one-off reply, not a view to navigate back from
	_ = b.analysis.CloseDetail()

	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{DetailEmbed(m)}},
	}); err != nil {
		b.logger.Error("failed to respond to interaction: %v", err)
	}
}

func (b *Bot) handleExportJSON(s *discordgo.Session, i *discordgo.Interaction) {
	results := b.analysis.Results()
	if len(results) == 0 {
		b.respondMessage(s, i, msgNoResults, true)
		return
	}
	data, err := b.services.ExportService.ExportJSON(results)
	b.sendFile(s, i, application.ExportJSONFileName, data, err)
}

func (b *Bot) handleExportExcel(s *discordgo.Session, i *discordgo.Interaction) {
	results := b.analysis.Results()
	if len(results) == 0 {
		b.respondMessage(s, i, msgNoResults, true)
		return
	}
	data, err := b.services.ExportService.ExportExcel(results)
	b.sendFile(s, i, application.ExportExcelFileName, data, err)
}

func (b *Bot) sendFile(s *discordgo.Session, i *discordgo.Interaction, name string, data []byte, err error) {
	if err != nil {
		b.logger.Error("failed to export %s: %v", name, err)
		b.respondMessage(s, i, "❌ No se pudo generar el archivo.", true)
		return
	}

	if err := s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "📁 Archivo listo.",
			Files:   []*discordgo.File{{Name: name, Reader: bytes.NewReader(data)}},
		},
	}); err != nil {
		b.logger.Error("failed to send %s: %v", name, err)
	}
}

func (b *Bot) handleSyncSheet(s *discordgo.Session, i *discordgo.Interaction) {
	results := b.analysis.Results()
	if len(results) == 0 {
		b.respondMessage(s, i, msgNoResults, true)
		return
	}
	if !b.deferResponse(s, i) {
		return
	}

	ctx, cancel := context.WithTimeout(b.ctx, b.cfg.Timeout)
	defer cancel()

	url, err := b.services.SheetsService.SyncResults(ctx, results)
	if err != nil {
		b.logger.Error("failed to sync sheet: %v", err)
		b.editContent(s, i, "❌ "+application.UserMessage(err))
		return
	}
	b.editContent(s, i, "📊 Hoja actualizada: "+url)
}

func (b *Bot) sendResults(s *discordgo.Session, i *discordgo.Interaction, results []models.MatchAnalysis) {
	content := resultsContent(results)
	embeds := ResultEmbeds(results)
	b.editResponse(s, i, &discordgo.WebhookEdit{Content: &content, Embeds: &embeds})
}
