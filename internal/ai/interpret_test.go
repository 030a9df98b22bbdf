package ai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pronostico/internal/models"
)

const nflMatch = `{
  "deporte": "NFL",
  "partido": "Chiefs vs Bills",
  "fecha": "19/10/2026 20:20",
  "arena": "Arrowhead Stadium",
  "estadisticas_clave": {
    "equipo_a": {"record": "5-1", "ppg_ofensivo": "27.3", "ppg_defensivo": "18.1", "ultimas_5": "4-1", "en_casa": "3-0", "ats": "4-2", "ranking_ofensiva": "3", "ranking_defensiva": "6"},
    "equipo_b": {"record": "4-2", "ppg_ofensivo": "25.0", "ppg_defensivo": "21.4", "ultimas_5": "3-2", "en_casa": "2-1", "ats": "3-3", "ranking_ofensiva": "7", "ranking_defensiva": "14"}
  },
  "analisis_expertos": [
    {"nombre_analista": "Colin Cowherd", "fuente": "FOX SPORTS", "prediccion": "Chiefs -2.5", "razonamiento": "Mahomes en casa", "stats_citadas": ["3-0 en casa"], "confianza": "Alta"}
  ],
  "convergencia_fuentes": {"acuerdo_expertos": "3 de 4 con Chiefs", "respaldo_estadistico": "defensa top 6", "nivel_consenso": "Alto"},
  "predicciones_finales": {
    "ganador_estimado": {"equipo": "Chiefs", "confianza": "Alta", "razon": "localía"},
    "moneyline": {"prediccion": "Chiefs", "odds": "-140", "valor": "moderado"},
    "spread": {"prediccion": "Chiefs cubre 2.5", "razon": "ATS en casa", "tendencia_ats": "4-2"},
    "over_under": {"prediccion": "OVER", "numero": "47.5", "razon": "ofensivas top 10", "proyeccion": "52"}
  },
  "factores_riesgo": ["lesión de Kelce"],
  "urls_procesadas": ["https://example.com/nfl"]
}`

const nbaMatch = `{"deporte": "NBA", "partido": "Lakers vs Celtics", "fecha": "20/10/2026 19:30", "arena": "Crypto.com Arena"}`

func TestInterpretResponse_SingleObject(t *testing.T) {
	results, err := InterpretResponse(nflMatch)
	require.NoError(t, err)
	require.Len(t, results, 1)

	m := results[0]
	assert.Equal(t, "NFL", m.Sport.String())
	assert.Equal(t, "Chiefs vs Bills", m.Match.String())
	teamA, teamB := m.Teams()
	assert.Equal(t, "5-1", teamA.Record.String())
	assert.Equal(t, "14", teamB.DefensiveRank.String())
	require.Len(t, m.ExpertAnalyses, 1)
	assert.Equal(t, []string{"3-0 en casa"}, m.ExpertAnalyses[0].CitedStats.Strings())
	assert.Equal(t, "Alto", m.ConsensusLevel())
	assert.Equal(t, "47.5", m.Predictions().OverUnder.Line.String())

	// The record is returned unchanged.
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, nflMatch, string(out))
}

func TestInterpretResponse_ArrayKeepsOrder(t *testing.T) {
	results, err := InterpretResponse("[" + nflMatch + "," + nbaMatch + "]")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "NFL", results[0].Sport.String())
	assert.Equal(t, "NBA", results[1].Sport.String())
}

func TestInterpretResponse_FencedMatchesBare(t *testing.T) {
	inputs := []string{
		nflMatch,
		"[" + nflMatch + "," + nbaMatch + "]",
		`[]`,
		`{"partidos": [` + nbaMatch + `]}`,
	}

	for _, text := range inputs {
		bare, err := InterpretResponse(text)
		require.NoError(t, err)

		fenced, err := InterpretResponse("```json\n" + text + "\n```")
		require.NoError(t, err)
		assert.Equal(t, bare, fenced)

		untagged, err := InterpretResponse("```\n" + text + "\n```")
		require.NoError(t, err)
		assert.Equal(t, bare, untagged)
	}
}

func TestInterpretResponse_FenceWithPreamble(t *testing.T) {
	input := "Aquí está el análisis:\n```json\n[" + nbaMatch + "]\n```\nSuerte."

	results, err := InterpretResponse(input)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Lakers vs Celtics", results[0].Match.String())
}

func TestInterpretResponse_UnterminatedFence(t *testing.T) {
	results, err := InterpretResponse("```json\n[" + nbaMatch + "]")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestInterpretResponse_ProseAroundJSON(t *testing.T) {
	results, err := InterpretResponse("Resultado: [" + nbaMatch + "] fin")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestInterpretResponse_Empty(t *testing.T) {
	for _, in := range []string{"", "   \n\t"} {
		_, err := InterpretResponse(in)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	}
}

func TestInterpretResponse_NotJSON(t *testing.T) {
	_, err := InterpretResponse("not json")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "not json", perr.Candidate)
}

func TestInterpretResponse_BrokenFencedJSON(t *testing.T) {
	_, err := InterpretResponse("```json\n{\"deporte\": \"NFL\",\n```")

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, `{"deporte": "NFL",`, perr.Candidate)
}

func TestInterpretResponse_ScalarIsParseError(t *testing.T) {
	_, err := InterpretResponse(`"just a string"`)

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestInterpretResponse_NumericFieldsReadAsText(t *testing.T) {
	input := `{"deporte": "NBA", "estadisticas_clave": {"equipo_a": {"ppg_ofensivo": 118.4}}, "factores_riesgo": "back-to-back"}`

	results, err := InterpretResponse(input)
	require.NoError(t, err)
	require.Len(t, results, 1)
	teamA, _ := results[0].Teams()
	assert.Equal(t, "118.4", teamA.OffensivePPG.String())
	assert.Equal(t, []string{"back-to-back"}, results[0].RiskFactors.Strings())
}

func TestNormalizeAnalyses_Container(t *testing.T) {
	results, err := NormalizeAnalyses(json.RawMessage(`{"partidos": [` + nflMatch + `,` + nbaMatch + `]}`))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "NBA", results[1].Sport.String())
}

func TestNormalizeAnalyses_SingleUnknownKeyContainer(t *testing.T) {
	results, err := NormalizeAnalyses(json.RawMessage(`{"juegos": [` + nbaMatch + `]}`))
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestNormalizeAnalyses_MatchWithListFieldIsNotContainer(t *testing.T) {
	results, err := NormalizeAnalyses(json.RawMessage(`{"deporte": "MLB", "data": [1, 2]}`))
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "MLB", results[0].Sport.String())
}

func TestNormalizeAnalyses_EmptyArray(t *testing.T) {
	results, err := NormalizeAnalyses(json.RawMessage(`[]`))
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestInterpretResponse_ShapeDriftIsKept(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
		check func(t *testing.T, results []models.MatchAnalysis)
	}{
		{
			name:  "expert list as string",
			input: `[{"deporte":"NFL","analisis_expertos":"ninguno encontrado"}]`,
			want:  1,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				assert.Equal(t, "NFL", results[0].Sport.String())
				assert.Empty(t, results[0].ExpertAnalyses)
			},
		},
		{
			name:  "convergence as string",
			input: `{"deporte":"NFL","convergencia_fuentes":"Alto"}`,
			want:  1,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				assert.Nil(t, results[0].Convergence)
				assert.Equal(t, "", results[0].ConsensusLevel())
			},
		},
		{
			name:  "non-object element",
			input: `[{"deporte":"NFL"}, "nota del modelo"]`,
			want:  2,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				assert.Equal(t, "NFL", results[0].Sport.String())
				assert.Equal(t, `"nota del modelo"`, string(results[1].Raw()))
				assert.Equal(t, "", results[1].Sport.String())
			},
		},
		{
			name:  "risk factors only",
			input: `{"factores_riesgo":["sin datos"]}`,
			want:  1,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				assert.Equal(t, []string{"sin datos"}, results[0].RiskFactors.Strings())
			},
		},
		{
			name:  "experts only is a partial record",
			input: `{"analisis_expertos":[{"nombre_analista":"X","fuente":"ESPN"}]}`,
			want:  1,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				require.Len(t, results[0].ExpertAnalyses, 1)
				assert.Equal(t, "X", results[0].ExpertAnalyses[0].AnalystName.String())
			},
		},
		{
			name:  "mixed expert entries and picks",
			input: `{"deporte":"NBA","analisis_expertos":[{"nombre_analista":"A"}, "B", 3],"predicciones_finales":{"ganador_estimado":"Lakers","spread":{"prediccion":"-3.5"}},"estadisticas_clave":{"equipo_a":"n/d","equipo_b":{"record":"2-1"}}}`,
			want:  1,
			check: func(t *testing.T, results []models.MatchAnalysis) {
				m := results[0]
				require.Len(t, m.ExpertAnalyses, 1)
				require.NotNil(t, m.FinalPredictions)
				assert.Nil(t, m.FinalPredictions.Winner)
				assert.Equal(t, "-3.5", m.Predictions().Spread.Pick.String())
				teamA, teamB := m.Teams()
				assert.Equal(t, "", teamA.Record.String())
				assert.Equal(t, "2-1", teamB.Record.String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := InterpretResponse(tt.input)
			require.NoError(t, err)
			require.Len(t, results, tt.want)
			tt.check(t, results)

			out, err := json.Marshal(results)
			require.NoError(t, err)
			if tt.input[0] == '[' {
				assert.JSONEq(t, tt.input, string(out))
			} else {
				assert.JSONEq(t, "["+tt.input+"]", string(out))
			}
		})
	}
}
