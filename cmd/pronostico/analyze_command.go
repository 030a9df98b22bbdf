package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"pronostico/internal/application"
	"pronostico/internal/models"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		urls           []string
		transcriptFile string
		jsonOutput     bool
		outFile        string
		excelFile      string
	)

	cmd := &cobra.Command{
		Use:   "analyze [url...]",
		Short: "Analizar partidos a partir de URLs y/o una transcripción",
		RunE: func(cmd *cobra.Command, args []string) error {
			services, cfg, err := ctx.ensureServices(cmd.Context())
			if err != nil {
				return err
			}

			transcript, err := readTranscript(cmd, transcriptFile)
			if err != nil {
				return err
			}

			key, err := services.KeyService.GetAPIKey()
			if err != nil {
				return err
			}

			req := models.AnalysisRequest{
				URLs:       append(append([]string(nil), urls...), args...),
				APIKey:     key,
				Transcript: transcript,
			}

			runCtx, cancel := context.WithTimeout(cmd.Context(), cfg.AnalysisTimeout)
			defer cancel()

			results, err := services.AnalysisService.Analyze(runCtx, req)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				return errors.New(application.UserMessage(err))
			}

			if outFile != "" {
				data, err := services.ExportService.ExportJSON(results)
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outFile, err)
				}
			}
			if excelFile != "" {
				data, err := services.ExportService.ExportExcel(results)
				if err != nil {
					return err
				}
				if err := os.WriteFile(excelFile, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", excelFile, err)
				}
			}

			if jsonOutput {
				return writeJSON(cmd, results)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderResults(results))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&urls, "url", "u", nil, "Source URL (repeatable)")
	cmd.Flags().StringVarP(&transcriptFile, "transcript-file", "t", "", "Video transcript file (- for stdin)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the results as JSON")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write the JSON export to this file")
	cmd.Flags().StringVar(&excelFile, "excel", "", "Write the Excel export to this file")

	return cmd
}

func readTranscript(cmd *cobra.Command, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read transcript: %w", err)
		}
		return string(data), nil
	}
}

func renderResults(results []models.MatchAnalysis) string {
	if len(results) == 0 {
		return "El modelo no encontró partidos en las fuentes."
	}

	rows := make([][]string, 0, len(results))
	for i := range results {
		m := &results[i]
		p := m.Predictions()
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			m.Sport.String(),
			m.Match.String(),
			m.Date.String(),
			p.Winner.Team.String(),
			application.Badge(p.Winner.Confidence),
			p.Spread.Pick.String(),
			(p.OverUnder.Pick + " " + p.OverUnder.Line).String(),
			application.Badge(models.Text(m.ConsensusLevel())),
		})
	}

	return renderTable(
		[]string{"#", "Deporte", "Partido", "Fecha", "Ganador", "Confianza", "Spread", "Over/Under", "Consenso"},
		rows,
		[]columnAlignment{alignRight},
	)
}
