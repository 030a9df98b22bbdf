package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pronostico/internal/models"
)

func TestBuildPrompt_URLsOnly(t *testing.T) {
	urls := []string{"https://a.example/nfl", "  ", "https://b.example/nba  ", ""}

	prompt := BuildPrompt(urls, "")

	assert.Contains(t, prompt, "\n1. https://a.example/nfl\n")
	assert.Contains(t, prompt, "\n2. https://b.example/nba\n")
	assert.NotContains(t, prompt, "3. ")
	assert.NotContains(t, prompt, "TRANSCRIPCIÓN")
	assert.NotContains(t, prompt, transcriptDelimiter)
}

func TestBuildPrompt_TranscriptOnly(t *testing.T) {
	transcript := "  Nick Wright: los Chiefs ganan por 10.\nShannon: no lo creo.  "

	prompt := BuildPrompt(nil, transcript)

	assert.Contains(t, prompt, transcript)
	assert.Contains(t, prompt, "TRANSCRIPCIÓN DE VIDEO")
	assert.NotContains(t, prompt, promptURLsLabel)
	assert.NotContains(t, prompt, "1. ")
}

func TestBuildPrompt_BlankTranscriptIgnored(t *testing.T) {
	prompt := BuildPrompt([]string{"https://a.example"}, " \n ")

	assert.NotContains(t, prompt, "TRANSCRIPCIÓN")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	urls := []string{"https://a.example", "https://b.example"}

	assert.Equal(t, BuildPrompt(urls, "texto"), BuildPrompt(urls, "texto"))
}

func TestBuildPrompt_Excerpts(t *testing.T) {
	excerpts := []models.SourceExcerpt{
		{URL: "https://a.example", Title: "Preview", Text: "Chiefs favored by 3"},
		{URL: "https://b.example", Text: "Bills injury report"},
	}

	prompt := BuildPrompt([]string{"https://a.example", "https://b.example"}, "", excerpts...)

	assert.Contains(t, prompt, promptExcerpts)
	assert.Contains(t, prompt, "[1] Preview (https://a.example)\nChiefs favored by 3")
	assert.Contains(t, prompt, "[2] https://b.example (https://b.example)")
	assert.True(t, strings.HasSuffix(prompt, promptInstructions+"\n"))
}
