package application

import (
	"strings"

	"pronostico/internal/models"
)

// Level is a confidence or consensus grade as written by the model.
type Level int

const (
	LevelUnknown Level = iota
	LevelLow
	LevelMedium
	LevelHigh
)

// ParseLevel reads "Alta", "Alto", "media", "High", "BAJO"... into a Level.
func ParseLevel(s string) Level {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "alt"), strings.HasPrefix(s, "high"):
		return LevelHigh
	case strings.HasPrefix(s, "med"), strings.HasPrefix(s, "mid"):
		return LevelMedium
	case strings.HasPrefix(s, "baj"), strings.HasPrefix(s, "low"):
		return LevelLow
	default:
		return LevelUnknown
	}
}

func (l Level) Badge() string {
	switch l {
	case LevelHigh:
		return "🟢"
	case LevelMedium:
		return "🟡"
	case LevelLow:
		return "🔴"
	default:
		return "⚪"
	}
}

// Badge prefixes a level text with its color marker.
func Badge(text models.Text) string {
	if text == "" {
		return ParseLevel("").Badge() + " N/D"
	}
	return ParseLevel(text.String()).Badge() + " " + text.String()
}

func valueOrDefault(value models.Text, defaultValue string) string {
	if strings.TrimSpace(value.String()) == "" {
		return defaultValue
	}
	return value.String()
}
