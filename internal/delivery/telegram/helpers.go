package telegram

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

const maxMessageLen = 4000

var errNoResults = errors.New("no results to export")

const (
	msgPrivateBot  = "Este bot es privado."
	msgKeyRequired = "🔑 Primero configura tu API key de Gemini: /key <clave>"
	msgNoResults   = "No hay resultados. Envía URLs o una transcripción primero."
	msgAnalyzing   = "⏳ Analizando %d URL(s), transcripción: %t..."

	msgHelp = "⚽ Pronóstico - análisis deportivo con Gemini\n\n" +
		"Envía las URLs (una por línea). Para añadir una transcripción escribe una línea\n" +
		"transcript: y pega el texto debajo, o sube un archivo .txt.\n\n" +
		"/key <clave> - Guardar API key\n" +
		"/history - Últimos análisis\n" +
		"/show <n> - Abrir análisis del historial\n" +
		"/detail <n> - Detalle de un partido\n" +
		"/back - Volver a la lista\n" +
		"/export - Descargar JSON\n" +
		"/excel - Descargar Excel\n" +
		"/sync_sheet - Sincronizar Google Sheet\n" +
		"/clear_history - Borrar historial\n" +
		"/reset - Reiniciar sesión"
)

var transcriptMarkers = []string{"transcript:", "transcripción:", "transcripcion:"}

func (b *Bot) sendMessage(chatID int64, text string) {
	if text == "" {
		return
	}
	for _, chunk := range splitMessage(text, maxMessageLen) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.DisableWebPagePreview = true
		if _, err := b.bot.Send(msg); err != nil {
			b.logger.Error("failed to send message: %v", err)
			return
		}
	}
}

// ParseInput splits a chat message into URLs and transcript. Lines before a
// "transcript:" marker contribute URLs; everything after it is the transcript.
func ParseInput(text string) ([]string, string) {
	var urls []string
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if rest, ok := cutMarker(trimmed); ok {
			transcript := strings.Join(append([]string{rest}, lines[i+1:]...), "\n")
			return urls, strings.TrimSpace(transcript)
		}
		for _, field := range strings.Fields(trimmed) {
			if isURL(field) {
				urls = append(urls, field)
			}
		}
	}
	return urls, ""
}

func cutMarker(line string) (string, bool) {
	lower := strings.ToLower(line)
	for _, marker := range transcriptMarkers {
		if strings.HasPrefix(lower, marker) {
			return line[len(marker):], true
		}
	}
	return "", false
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// RenderResults is the compact list shown after an analysis.
func RenderResults(results []models.MatchAnalysis) string {
	if len(results) == 0 {
		return "El modelo no encontró partidos en las fuentes."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %d partido(s) analizado(s)\n\n", len(results))
	for i := range results {
		m := &results[i]
		p := m.Predictions()
		fmt.Fprintf(&sb, "%d. %s\n", i+1, orNA(m.Match))
		fmt.Fprintf(&sb, "   🏟 %s · %s · %s\n", orNA(m.Sport), orNA(m.Date), orNA(m.Venue))
		fmt.Fprintf(&sb, "   🏆 %s %s\n", orNA(p.Winner.Team), application.Badge(p.Winner.Confidence))
		if m.Convergence != nil {
			fmt.Fprintf(&sb, "   🤝 Consenso: %s\n", application.Badge(m.Convergence.ConsensusLevel))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Usa /detail <n> para ver el detalle.")
	return sb.String()
}

// RenderDetail is the full card of one match.
func RenderDetail(m models.MatchAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏅 %s\n%s · %s · %s\n", orNA(m.Match), orNA(m.Sport), orNA(m.Date), orNA(m.Venue))

	if m.KeyStats != nil {
		a, b := m.Teams()
		sb.WriteString("\n📈 Estadísticas clave\n")
		writeTeam(&sb, "Equipo A", a)
		writeTeam(&sb, "Equipo B", b)
	}

	if len(m.ExpertAnalyses) > 0 {
		sb.WriteString("\n🎙 Expertos\n")
		for _, e := range m.ExpertAnalyses {
			fmt.Fprintf(&sb, "• %s (%s): %s %s\n", orNA(e.AnalystName), orNA(e.Source), orNA(e.Prediction), application.Badge(e.Confidence))
			if e.Reasoning != "" {
				fmt.Fprintf(&sb, "  %s\n", e.Reasoning)
			}
			if len(e.CitedStats) > 0 {
				fmt.Fprintf(&sb, "  Stats: %s\n", e.CitedStats.Join(", "))
			}
		}
	}

	if c := m.Convergence; c != nil {
		sb.WriteString("\n🤝 Convergencia\n")
		fmt.Fprintf(&sb, "Acuerdo: %s\nRespaldo estadístico: %s\nConsenso: %s\n",
			orNA(c.ExpertAgreement), orNA(c.StatisticalSupport), application.Badge(c.ConsensusLevel))
	}

	p := m.Predictions()
	sb.WriteString("\n🎯 Predicciones finales\n")
	fmt.Fprintf(&sb, "Ganador: %s %s\n", orNA(p.Winner.Team), application.Badge(p.Winner.Confidence))
	if p.Winner.Reason != "" {
		fmt.Fprintf(&sb, "  %s\n", p.Winner.Reason)
	}
	fmt.Fprintf(&sb, "Moneyline: %s (%s) valor %s\n", orNA(p.Moneyline.Pick), orNA(p.Moneyline.Odds), orNA(p.Moneyline.Value))
	fmt.Fprintf(&sb, "Spread: %s, ATS %s\n", orNA(p.Spread.Pick), orNA(p.Spread.ATSTrend))
	fmt.Fprintf(&sb, "Over/Under: %s %s, proyección %s\n", orNA(p.OverUnder.Pick), orNA(p.OverUnder.Line), orNA(p.OverUnder.Projection))

	if len(m.RiskFactors) > 0 {
		sb.WriteString("\n⚠️ Factores de riesgo\n")
		for _, r := range m.RiskFactors {
			fmt.Fprintf(&sb, "• %s\n", r)
		}
	}

	if len(m.ProcessedURLs) > 0 {
		sb.WriteString("\n🔗 Fuentes\n")
		for _, u := range m.ProcessedURLs {
			fmt.Fprintf(&sb, "%s\n", u)
		}
	}

	sb.WriteString("\n/back para volver")
	return sb.String()
}

func writeTeam(sb *strings.Builder, label string, t models.TeamStats) {
	fmt.Fprintf(sb, "%s: %s | PPG %s/%s | Últ. 5 %s | Casa %s | ATS %s\n",
		label, orNA(t.Record), orNA(t.OffensivePPG), orNA(t.DefensivePPG), orNA(t.LastFive), orNA(t.HomeRecord), orNA(t.ATS))
}

func RenderHistory(items []models.HistoryItem) string {
	if len(items) == 0 {
		return "El historial está vacío."
	}

	var sb strings.Builder
	sb.WriteString("🕘 Historial\n\n")
	for i, item := range items {
		names := make([]string, 0, len(item.Results))
		for _, m := range item.Results {
			names = append(names, orNA(m.Match))
		}
		fmt.Fprintf(&sb, "%d. %s · %d partido(s)\n   %s\n",
			i+1, item.CreatedAt().Format(time.DateTime), len(item.Results), strings.Join(names, ", "))
	}
	sb.WriteString("\nUsa /show <n> para abrirlo.")
	return sb.String()
}

// splitMessage cuts text into chunks of at most limit bytes, on line breaks
// when possible.
func splitMessage(text string, limit int) []string {
	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndex(text[:limit], "\n")
		if cut <= 0 {
			cut = limit
			for cut > 0 && !isRuneStart(text[cut]) {
				cut--
			}
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func orNA(t models.Text) string {
	if strings.TrimSpace(t.String()) == "" {
		return "N/D"
	}
	return t.String()
}

// buildExport renders the visible results for /export (JSON) or /excel. Nothing
// is rendered when there are no results.
func buildExport(exports application.ExportService, format string, results []models.MatchAnalysis) (string, []byte, error) {
	if len(results) == 0 {
		return "", nil, errNoResults
	}
	if format == "excel" {
		data, err := exports.ExportExcel(results)
		return application.ExportExcelFileName, data, err
	}
	data, err := exports.ExportJSON(results)
	return application.ExportJSONFileName, data, err
}
