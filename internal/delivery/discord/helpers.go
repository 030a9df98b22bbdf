package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

const msgNoResults = "No hay resultados. Usa /analyze o /history primero."

// SplitURLs accepts URLs separated by whitespace or commas.
func SplitURLs(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}

func levelColor(level application.Level) int {
	switch level {
	case application.LevelHigh:
		return colorGreen
	case application.LevelMedium:
		return colorYellow
	case application.LevelLow:
		return colorRed
	default:
		return colorGray
	}
}

func resultsContent(results []models.MatchAnalysis) string {
	if len(results) == 0 {
		return "El modelo no encontró partidos en las fuentes."
	}
	content := fmt.Sprintf("📊 %d partido(s) analizado(s). Usa /detail n para ver el detalle.", len(results))
	if len(results) > maxEmbeds {
		content += fmt.Sprintf("\nSe muestran los primeros %d.", maxEmbeds)
	}
	return content
}

// ResultEmbeds renders one summary embed per match, colored by consensus.
func ResultEmbeds(results []models.MatchAnalysis) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, 0, min(len(results), maxEmbeds))
	for idx := range results {
		if idx == maxEmbeds {
			break
		}
		m := &results[idx]
		p := m.Predictions()
		embeds = append(embeds, &discordgo.MessageEmbed{
			Title:       truncate(fmt.Sprintf("%d. %s", idx+1, orNA(m.Match)), 256),
			Description: fmt.Sprintf("%s · %s · %s", orNA(m.Sport), orNA(m.Date), orNA(m.Venue)),
			Color:       levelColor(application.ParseLevel(m.ConsensusLevel())),
			Fields: []*discordgo.MessageEmbedField{
				{Name: "Ganador", Value: field(fmt.Sprintf("%s %s", orNA(p.Winner.Team), application.Badge(p.Winner.Confidence))), Inline: true},
				{Name: "Spread", Value: field(orNA(p.Spread.Pick)), Inline: true},
				{Name: "Over/Under", Value: field(fmt.Sprintf("%s %s", orNA(p.OverUnder.Pick), p.OverUnder.Line)), Inline: true},
				{Name: "Consenso", Value: field(application.Badge(models.Text(m.ConsensusLevel()))), Inline: true},
			},
		})
	}
	return embeds
}

// DetailEmbed renders every block of one match.
func DetailEmbed(m models.MatchAnalysis) *discordgo.MessageEmbed {
	p := m.Predictions()
	fields := make([]*discordgo.MessageEmbedField, 0, 10)

	if m.KeyStats != nil {
		a, b := m.Teams()
		fields = append(fields,
			&discordgo.MessageEmbedField{Name: "Equipo A", Value: field(teamLine(a)), Inline: true},
			&discordgo.MessageEmbedField{Name: "Equipo B", Value: field(teamLine(b)), Inline: true},
		)
	}

	if len(m.ExpertAnalyses) > 0 {
		var sb strings.Builder
		for _, e := range m.ExpertAnalyses {
			fmt.Fprintf(&sb, "**%s** (%s): %s %s\n", orNA(e.AnalystName), orNA(e.Source), orNA(e.Prediction), application.Badge(e.Confidence))
		}
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Expertos", Value: field(sb.String())})
	}

	if c := m.Convergence; c != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Convergencia",
			Value: field(fmt.Sprintf("Acuerdo: %s\nRespaldo: %s\nConsenso: %s", orNA(c.ExpertAgreement), orNA(c.StatisticalSupport), application.Badge(c.ConsensusLevel))),
		})
	}

	fields = append(fields,
		&discordgo.MessageEmbedField{Name: "Ganador", Value: field(fmt.Sprintf("%s %s\n%s", orNA(p.Winner.Team), application.Badge(p.Winner.Confidence), p.Winner.Reason)), Inline: true},
		&discordgo.MessageEmbedField{Name: "Moneyline", Value: field(fmt.Sprintf("%s (%s)\nValor: %s", orNA(p.Moneyline.Pick), orNA(p.Moneyline.Odds), orNA(p.Moneyline.Value))), Inline: true},
		&discordgo.MessageEmbedField{Name: "Spread", Value: field(fmt.Sprintf("%s\nATS: %s", orNA(p.Spread.Pick), orNA(p.Spread.ATSTrend))), Inline: true},
		&discordgo.MessageEmbedField{Name: "Over/Under", Value: field(fmt.Sprintf("%s %s\nProyección: %s", orNA(p.OverUnder.Pick), orNA(p.OverUnder.Line), orNA(p.OverUnder.Projection))), Inline: true},
	)

	if len(m.RiskFactors) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "⚠️ Factores de riesgo", Value: field("• " + m.RiskFactors.Join("\n• "))})
	}

	embed := &discordgo.MessageEmbed{
		Title:       truncate(orNA(m.Match), 256),
		Description: fmt.Sprintf("%s · %s · %s", orNA(m.Sport), orNA(m.Date), orNA(m.Venue)),
		Color:       levelColor(application.ParseLevel(m.ConsensusLevel())),
		Fields:      fields,
	}
	if len(m.ProcessedURLs) > 0 {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: truncate(m.ProcessedURLs.Join(" "), 2048)}
	}
	return embed
}

func HistoryDescription(items []models.HistoryItem) string {
	if len(items) == 0 {
		return "El historial está vacío."
	}

	var sb strings.Builder
	for idx, item := range items {
		names := make([]string, 0, len(item.Results))
		for _, m := range item.Results {
			names = append(names, orNA(m.Match))
		}
		fmt.Fprintf(&sb, "`%d.` %s · %d partido(s)\n%s\n",
			idx+1, item.CreatedAt().Format(time.DateTime), len(item.Results), strings.Join(names, ", "))
	}
	sb.WriteString("\nUsa /history n para abrir uno.")
	return truncate(sb.String(), maxDescriptionLen)
}

func teamLine(t models.TeamStats) string {
	return fmt.Sprintf("Récord: %s\nPPG: %s / %s\nÚlt. 5: %s\nATS: %s",
		orNA(t.Record), orNA(t.OffensivePPG), orNA(t.DefensivePPG), orNA(t.LastFive), orNA(t.ATS))
}

// field keeps an embed field value within Discord's limits. Empty values are
// rejected by the API.
func field(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "N/D"
	}
	return truncate(s, maxFieldLength)
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}

func orNA(t models.Text) string {
	if strings.TrimSpace(t.String()) == "" {
		return "N/D"
	}
	return t.String()
}
