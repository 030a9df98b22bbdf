package discord

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

func TestSplitURLs(t *testing.T) {
	got := SplitURLs(" https://a.com, https://b.com\nhttps://c.com  ")
	assert.Equal(t, []string{"https://a.com", "https://b.com", "https://c.com"}, got)
	assert.Empty(t, SplitURLs("  "))
}

func TestResultEmbeds(t *testing.T) {
	results := []models.MatchAnalysis{
		{Match: "Lakers vs Celtics", Convergence: &models.Convergence{ConsensusLevel: "Alto"}},
		{Match: "Bulls vs Heat", Convergence: &models.Convergence{ConsensusLevel: "Bajo"}},
		{Match: "Nets vs Knicks"},
	}

	embeds := ResultEmbeds(results)
	require.Len(t, embeds, 3)
	assert.Equal(t, "1. Lakers vs Celtics", embeds[0].Title)
	assert.Equal(t, colorGreen, embeds[0].Color)
	assert.Equal(t, colorRed, embeds[1].Color)
	assert.Equal(t, colorGray, embeds[2].Color)
	for _, e := range embeds {
		for _, f := range e.Fields {
			assert.NotEmpty(t, f.Value, f.Name)
		}
	}
}

func TestResultEmbeds_Capped(t *testing.T) {
	results := make([]models.MatchAnalysis, 12)
	for i := range results {
		results[i].Match = models.Text(fmt.Sprintf("match %d", i))
	}

	assert.Len(t, ResultEmbeds(results), maxEmbeds)
	assert.Contains(t, resultsContent(results), "primeros 10")
}

func TestDetailEmbed(t *testing.T) {
	m := models.MatchAnalysis{
		Match:         "Lakers vs Celtics",
		KeyStats:      &models.MatchStats{TeamA: &models.TeamStats{Record: "30-12"}},
		RiskFactors:   models.TextList{"Lesión", "Viaje"},
		ProcessedURLs: models.TextList{"https://espn.com"},
		Convergence:   &models.Convergence{ConsensusLevel: "Media"},
	}

	embed := DetailEmbed(m)
	assert.Equal(t, colorYellow, embed.Color)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "https://espn.com", embed.Footer.Text)

	names := make([]string, len(embed.Fields))
	for i, f := range embed.Fields {
		names[i] = f.Name
	}
	assert.Contains(t, names, "Equipo A")
	assert.Contains(t, names, "⚠️ Factores de riesgo")
	assert.Contains(t, embed.Fields[0].Value, "30-12")
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, colorGreen, levelColor(application.LevelHigh))
	assert.Equal(t, colorYellow, levelColor(application.LevelMedium))
	assert.Equal(t, colorGray, levelColor(application.LevelUnknown))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ñ…", truncate("ñññ", 2))
	assert.Equal(t, "N/D", field("  "))
	assert.Len(t, []rune(field(strings.Repeat("x", 2000))), maxFieldLength)
}

func TestHistoryDescription(t *testing.T) {
	assert.Equal(t, "El historial está vacío.", HistoryDescription(nil))

	out := HistoryDescription([]models.HistoryItem{{ID: "x", Timestamp: 1737331200000, Results: []models.MatchAnalysis{{Match: "A vs B"}}}})
	assert.Contains(t, out, "`1.`")
	assert.Contains(t, out, "A vs B")
}
