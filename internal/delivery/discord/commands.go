package discord

import "github.com/bwmarrin/discordgo"

var (
	minIndex = 1.0
	commands = []*discordgo.ApplicationCommand{
		{
			Name:        "analyze",
			Description: "Analizar partidos a partir de URLs y/o una transcripción",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "urls", Description: "URLs separadas por espacios o comas", Required: false},
				{Type: discordgo.ApplicationCommandOptionString, Name: "transcript", Description: "Transcripción del video", Required: false},
			},
		},
		{
			Name:        "history",
			Description: "Últimos análisis",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "n", Description: "Abrir el análisis número n", Required: false, MinValue: &minIndex},
			},
		},
		{
			Name:        "detail",
			Description: "Detalle de un partido del último resultado",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "n", Description: "Número de partido", Required: true, MinValue: &minIndex},
			},
		},
		{Name: "export", Description: "Descargar los resultados en JSON"},
		{Name: "excel", Description: "Descargar los resultados en Excel"},
		{Name: "sync_sheet", Description: "Sincronizar los resultados con Google Sheets"},
	}
)
