// Package wiring builds the application services from configuration. It is
// shared by the bot server and the command line tool.
package wiring

import (
	"context"
	"fmt"

	"pronostico/internal/ai"
	"pronostico/internal/application"
	"pronostico/internal/integration"
	"pronostico/internal/repository"
	"pronostico/pkg/config"
	"pronostico/pkg/sheets"
)

// Services holds the built service set and the resources to release.
type Services struct {
	*application.Service
	repos *repository.Repository
}

func (s *Services) Close() error {
	return s.repos.Close()
}

func NewServices(ctx context.Context, cfg *config.Config, log application.Logger) (*Services, error) {
	repos, err := repository.Open(&cfg.Repo)
	if err != nil {
		return nil, err
	}
	if cfg.Repo.Enabled() {
		log.Info("Migrations applied successfully, schema version %d", repos.SchemaVersion)
	} else {
		log.Warn("no database configured, history and key are kept in memory")
	}

	opts := application.Options{
		SpreadsheetID: cfg.SpreadsheetID,
		OwnerEmail:    cfg.GoogleOwnerEmail,
		DefaultAPIKey: cfg.GeminiKey,
		HistoryLimit:  cfg.HistoryLimit,
	}

	if cfg.Fetch.Enabled {
		opts.Fetcher = integration.NewSourceFetcher(cfg.Fetch)
	}

	if cfg.GoogleCredentials != "" {
		client, err := sheets.NewGoogleSheetsClient(ctx, cfg.GoogleCredentials)
		if err != nil {
			repos.Close()
			return nil, fmt.Errorf("failed to init google sheets: %w", err)
		}
		opts.Sheets = client
	}

	gemini := ai.NewGeminiClient(cfg.Gemini)
	log.Info("using gemini model %s", gemini.Model())

	return &Services{
		Service: application.NewService(repos, gemini, opts, log),
		repos:   repos,
	}, nil
}
