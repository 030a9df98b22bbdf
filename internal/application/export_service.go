package application

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"pronostico/internal/models"
)

var matchHeaders = []string{
	"Deporte", "Partido", "Fecha", "Arena",
	"Ganador", "Confianza", "Moneyline", "Odds",
	"Spread", "Over/Under", "Línea", "Proyección",
	"Consenso", "Factores de riesgo",
}

var expertHeaders = []string{
	"Partido", "Analista", "Fuente", "Predicción", "Confianza", "Razonamiento", "Stats citadas",
}

type ExportServiceImpl struct{}

func NewExportServiceImpl() *ExportServiceImpl {
	return &ExportServiceImpl{}
}

// ExportJSON serializes the results as-is, indented with two spaces.
func (s *ExportServiceImpl) ExportJSON(results []models.MatchAnalysis) ([]byte, error) {
	if results == nil {
		results = []models.MatchAnalysis{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode results: %w", err)
	}
	return data, nil
}

// ExportExcel builds a workbook with a match summary sheet and an expert sheet.
func (s *ExportServiceImpl) ExportExcel(results []models.MatchAnalysis) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(excelMatchesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(excelExpertsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{excelHeaderColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSheet(f, excelMatchesSheet, matchHeaders, matchRows(results), headerStyle); err != nil {
		return nil, err
	}
	if err := writeSheet(f, excelExpertsSheet, expertHeaders, expertRows(results), headerStyle); err != nil {
		return nil, err
	}

	f.SetColWidth(excelMatchesSheet, "A", "A", 10)
	f.SetColWidth(excelMatchesSheet, "B", "B", 30)
	f.SetColWidth(excelMatchesSheet, "C", "N", 18)
	f.SetColWidth(excelExpertsSheet, "A", "E", 20)
	f.SetColWidth(excelExpertsSheet, "F", "G", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, headerStyle int) error {
	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func matchRows(results []models.MatchAnalysis) [][]interface{} {
	rows := make([][]interface{}, 0, len(results))
	for i := range results {
		m := &results[i]
		p := m.Predictions()
		consensus := ""
		if m.Convergence != nil {
			consensus = m.Convergence.ConsensusLevel.String()
		}
		rows = append(rows, []interface{}{
			m.Sport.String(),
			m.Match.String(),
			m.Date.String(),
			m.Venue.String(),
			p.Winner.Team.String(),
			p.Winner.Confidence.String(),
			p.Moneyline.Pick.String(),
			p.Moneyline.Odds.String(),
			p.Spread.Pick.String(),
			p.OverUnder.Pick.String(),
			p.OverUnder.Line.String(),
			p.OverUnder.Projection.String(),
			consensus,
			m.RiskFactors.Join("; "),
		})
	}
	return rows
}

func expertRows(results []models.MatchAnalysis) [][]interface{} {
	var rows [][]interface{}
	for i := range results {
		m := &results[i]
		for _, e := range m.ExpertAnalyses {
			rows = append(rows, []interface{}{
				valueOrDefault(m.Match, "N/D"),
				e.AnalystName.String(),
				e.Source.String(),
				e.Prediction.String(),
				e.Confidence.String(),
				e.Reasoning.String(),
				e.CitedStats.Join("; "),
			})
		}
	}
	return rows
}
