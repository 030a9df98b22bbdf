package ai

import (
	"fmt"
	"strings"

	"pronostico/internal/models"
)

const (
	// AI Model configuration
	defaultGeminiModel     = "gemini-2.5-flash"
	defaultTemperature     = 0.4
	defaultMaxOutputTokens = 8192
	responseMIMEType       = "application/json"
)

// SystemInstruction describes the analyst role and the exact output schema.
const SystemInstruction = `
# ROLE
Eres un analista experto en apuestas deportivas de nivel profesional.

# CONTEXT
Tu tarea es:
1. Recibir múltiples URLs y, cuando estén disponibles, extractos del contenido de esas URLs.
2. Si se proporciona una transcripción de texto (YouTube), analizarla como fuente adicional.
3. Identificar partidos, deportes y fechas.
4. Generar análisis completos en formato JSON.

# PROCESSING RULES
1. Extrae información de las URLs y de los extractos proporcionados.
2. Si hay TRANSCRIPCIÓN provista, extrae las opiniones de los analistas de ahí y marca la fuente como "YOUTUBE".
3. Cita directamente a analistas y números específicos.
4. Indica la fuente de cada dato.
5. Integra datos cuantitativos + opiniones cualitativas.
6. Señala convergencias Y divergencias entre expertos.
7. Usa números exactos de las páginas web.

# OUTPUT FORMAT
Debes devolver ÚNICAMENTE un array de objetos JSON, sin texto adicional. Todos los valores son texto.

Estructura requerida para cada partido:
{
  "deporte": "NFL/NBA/MLB/Soccer",
  "partido": "EQUIPO A vs EQUIPO B",
  "fecha": "DD/MM/YYYY HH:MM",
  "arena": "nombre del lugar",
  "estadisticas_clave": {
    "equipo_a": {
      "record": "W-L",
      "ppg_ofensivo": "X.X",
      "ppg_defensivo": "X.X",
      "ultimas_5": "W-L",
      "en_casa": "record",
      "ats": "record",
      "ranking_ofensiva": "posición",
      "ranking_defensiva": "posición"
    },
    "equipo_b": { ... }
  },
  "analisis_expertos": [
    {
      "nombre_analista": "nombre",
      "fuente": "FOX SPORTS/YOUTUBE",
      "prediccion": "EQUIPO / Spread / Moneyline",
      "razonamiento": "texto con cita o resumen",
      "stats_citadas": ["stat1", "stat2"],
      "confianza": "Alta/Media/Baja"
    }
  ],
  "convergencia_fuentes": {
    "acuerdo_expertos": "descripción",
    "respaldo_estadistico": "descripción",
    "nivel_consenso": "Alto/Medio/Bajo"
  },
  "predicciones_finales": {
    "ganador_estimado": {
      "equipo": "EQUIPO",
      "confianza": "Alta/Media/Baja",
      "razon": "texto"
    },
    "moneyline": {
      "prediccion": "EQUIPO",
      "odds": "-XXX/+XXX",
      "valor": "descripción"
    },
    "spread": {
      "prediccion": "EQUIPO cubre X.5",
      "razon": "texto",
      "tendencia_ats": "descripción"
    },
    "over_under": {
      "prediccion": "OVER/UNDER",
      "numero": "XXX.5",
      "razon": "texto",
      "proyeccion": "puntos totales estimados"
    }
  },
  "factores_riesgo": ["factor1", "factor2"],
  "urls_procesadas": ["url1"]
}
`

const (
	promptHeader       = "Analiza la siguiente información de deportes."
	promptURLsLabel    = "URLs A INVESTIGAR:"
	promptTranscript   = "TRANSCRIPCIÓN DE VIDEO (YouTube):\nUsa el siguiente texto como fuente directa para las opiniones de expertos de YouTube. Extrae nombres de analistas y argumentos de aquí:"
	promptExcerpts     = "EXTRACTOS DE LAS FUENTES:"
	promptInstructions = "Genera el JSON con el análisis detallado de cada partido identificado en las fuentes anteriores.\n" +
		"Si no encuentras información en las URLs, indícalo en el campo \"factores_riesgo\" o \"razonamiento\"."
	transcriptDelimiter = `"""`
)

// BuildPrompt assembles the user message. URLs are trimmed and blank entries
// dropped; the transcript section only appears when the transcript has
// non-blank content and is then copied verbatim.
func BuildPrompt(urls []string, transcript string, excerpts ...models.SourceExcerpt) string {
	var sb strings.Builder
	sb.WriteString(promptHeader)
	sb.WriteString("\n")

	if clean := models.CleanURLs(urls); len(clean) > 0 {
		sb.WriteString("\n")
		sb.WriteString(promptURLsLabel)
		sb.WriteString("\n")
		for i, u := range clean {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, u))
		}
	}

	if strings.TrimSpace(transcript) != "" {
		sb.WriteString("\n")
		sb.WriteString(promptTranscript)
		sb.WriteString("\n")
		sb.WriteString(transcriptDelimiter)
		sb.WriteString("\n")
		sb.WriteString(transcript)
		sb.WriteString("\n")
		sb.WriteString(transcriptDelimiter)
		sb.WriteString("\n")
	}

	if len(excerpts) > 0 {
		sb.WriteString("\n")
		sb.WriteString(promptExcerpts)
		sb.WriteString("\n")
		for i, ex := range excerpts {
			title := ex.Title
			if title == "" {
				title = ex.URL
			}
			sb.WriteString(fmt.Sprintf("[%d] %s (%s)\n%s\n\n", i+1, title, ex.URL, strings.TrimSpace(ex.Text)))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(promptInstructions)
	sb.WriteString("\n")
	return sb.String()
}
