package application

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pronostico/internal/ai"
	"pronostico/internal/models"
)

func sampleResults(t *testing.T) []models.MatchAnalysis {
	t.Helper()
	results, err := ai.InterpretResponse(sampleMatch)
	require.NoError(t, err)
	return results
}

func TestExportJSON_IndentedRoundTrip(t *testing.T) {
	svc := NewExportServiceImpl()
	results := sampleResults(t)

	data, err := svc.ExportJSON(results)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("[\n  {\n    \"deporte\"")), string(data))

	var decoded []models.MatchAnalysis
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, results[0].Match, decoded[0].Match)

	var want, got interface{}
	require.NoError(t, json.Unmarshal([]byte("["+sampleMatch+"]"), &want))
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}

func TestExportJSON_Empty(t *testing.T) {
	data, err := NewExportServiceImpl().ExportJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestExportExcel(t *testing.T) {
	data, err := NewExportServiceImpl().ExportExcel(sampleResults(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{excelMatchesSheet, excelExpertsSheet}, f.GetSheetList())

	rows, err := f.GetRows(excelMatchesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, matchHeaders, rows[0])
	assert.Equal(t, "NBA", rows[1][0])
	assert.Equal(t, "Lakers vs Celtics", rows[1][1])
	assert.Equal(t, "Lakers", rows[1][4])
	assert.Equal(t, "Alto", rows[1][12])
	assert.Equal(t, "Lesión de LeBron; Back-to-back", rows[1][13])

	experts, err := f.GetRows(excelExpertsSheet)
	require.NoError(t, err)
	require.Len(t, experts, 2)
	assert.Equal(t, []string{"Lakers vs Celtics", "Ana", "ESPN", "Lakers -3.5", "Alta", "Mejor defensa", "112.4 PPG"}, experts[1])
}

func TestMatchRows_MissingBlocks(t *testing.T) {
	rows := matchRows([]models.MatchAnalysis{{Match: "A vs B"}})
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(matchHeaders))
	assert.Equal(t, "A vs B", rows[0][1])
	assert.Equal(t, "", rows[0][4])
}
