package discord

import "time"

const (
	// Discord limits
	maxEmbeds           = 10
	maxFieldLength      = 1024
	maxDescriptionLen   = 4096
	defaultAnalyzeLimit = 3 * time.Minute

	// Embed colors by consensus level
	colorGreen  = 0x2ECC71 // High
	colorYellow = 0xF1C40F // Medium
	colorRed    = 0xE74C3C // Low
	colorGray   = 0x95A5A6 // Unknown
	colorBlue   = 0x3498DB // Info/history
)
