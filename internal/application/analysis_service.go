package application

import (
	"context"
	"errors"
	"strings"

	"pronostico/internal/ai"
	"pronostico/internal/models"
)

type AnalysisServiceImpl struct {
	generator Generator
	fetcher   SourceFetcher
	history   HistoryService
	logger    Logger
}

func NewAnalysisServiceImpl(gen Generator, fetcher SourceFetcher, history HistoryService, logger Logger) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{
		generator: gen,
		fetcher:   fetcher,
		history:   history,
		logger:    logger,
	}
}

// Analyze validates the request, issues a single generation call and
// interprets the reply. Nothing is retried. A successful result is recorded in
// the history; a failure to record is logged and does not fail the analysis.
func (s *AnalysisServiceImpl) Analyze(ctx context.Context, req models.AnalysisRequest) ([]models.MatchAnalysis, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	urls := req.CleanURLs()

	var excerpts []models.SourceExcerpt
	if s.fetcher != nil && len(urls) > 0 {
		var errs []error
		excerpts, errs = s.fetcher.FetchAll(ctx, urls)
		for _, err := range errs {
			s.logger.Warn("source skipped: %v", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	prompt := ai.BuildPrompt(urls, req.Transcript, excerpts...)
	s.logger.Info("requesting analysis: %d urls, %d excerpts, transcript=%t", len(urls), len(excerpts), req.HasTranscript())

	text, err := s.generator.Generate(ctx, req.APIKey, prompt)
	if err != nil {
		s.logger.Error("gemini api error: %v", err)
		return nil, err
	}

	results, err := ai.InterpretResponse(text)
	if err != nil {
		var perr *ai.ParseError
		if errors.As(err, &perr) {
			s.logger.Error("failed to parse JSON: %v | candidate: %.500s", perr.Err, perr.Candidate)
		} else {
			s.logger.Error("failed to interpret response: %v", err)
		}
		return nil, err
	}

	s.logger.Info("analysis complete: %d matches", len(results))

	if s.history != nil {
		if _, err := s.history.Record(results); err != nil {
			s.logger.Error("failed to save history: %v", err)
		}
	}

	return results, nil
}

// ValidateRequest checks the request invariant: a key, and at least one
// non-blank URL or a non-blank transcript.
func ValidateRequest(req models.AnalysisRequest) error {
	if strings.TrimSpace(req.APIKey) == "" {
		return &ValidationError{Field: "api_key", Message: "Se requiere una API key de Gemini."}
	}
	if len(req.CleanURLs()) == 0 && !req.HasTranscript() {
		return &ValidationError{Field: "input", Message: "Agrega al menos una URL o una transcripción."}
	}
	return nil
}
