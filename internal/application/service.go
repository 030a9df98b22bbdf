package application

import (
	"context"

	"pronostico/internal/models"
	"pronostico/internal/repository"
	"pronostico/pkg/sheets"
)

// Generator sends one prompt to the model and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// SourceFetcher pulls readable text for source URLs. Failures are per URL.
type SourceFetcher interface {
	FetchAll(ctx context.Context, urls []string) ([]models.SourceExcerpt, []error)
}

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type AnalysisService interface {
	Analyze(ctx context.Context, req models.AnalysisRequest) ([]models.MatchAnalysis, error)
}

type HistoryService interface {
	Record(results []models.MatchAnalysis) (models.HistoryItem, error)
	List() ([]models.HistoryItem, error)
	Get(id string) (*models.HistoryItem, error)
	Clear() error
}

type KeyService interface {
	GetAPIKey() (string, error)
	SetAPIKey(key string) error
}

type ExportService interface {
	ExportJSON(results []models.MatchAnalysis) ([]byte, error)
	ExportExcel(results []models.MatchAnalysis) ([]byte, error)
}

type SheetsService interface {
	SyncResults(ctx context.Context, results []models.MatchAnalysis) (string, error)
}

type Service struct {
	AnalysisService AnalysisService
	HistoryService  HistoryService
	KeyService      KeyService
	ExportService   ExportService
	SheetsService   SheetsService
}

type Options struct {
	// Fetcher is optional; without it only the URLs reach the model.
	Fetcher SourceFetcher
	// Sheets is optional; without it SyncResults reports the service as not configured.
	Sheets        sheets.Client
	SpreadsheetID string
	OwnerEmail    string
	// DefaultAPIKey is used until a key has been saved.
	DefaultAPIKey string
	HistoryLimit  int
}

func NewService(repos *repository.Repository, gen Generator, opts Options, logger Logger) *Service {
	history := NewHistoryServiceImpl(repos.History, opts.HistoryLimit)
	return &Service{
		AnalysisService: NewAnalysisServiceImpl(gen, opts.Fetcher, history, logger),
		HistoryService:  history,
		KeyService:      NewKeyServiceImpl(repos.Settings, opts.DefaultAPIKey),
		ExportService:   NewExportServiceImpl(),
		SheetsService:   NewSheetsServiceImpl(opts.Sheets, opts.SpreadsheetID, opts.OwnerEmail, logger),
	}
}
