package application

import (
	"context"
	"fmt"
	"sync"

	"pronostico/internal/models"
	"pronostico/pkg/sheets"
)

type SheetsServiceImpl struct {
	client     sheets.Client
	ownerEmail string
	logger     Logger

	mu            sync.Mutex
	spreadsheetID string
}

// NewSheetsServiceImpl accepts a nil client; SyncResults then returns
// ErrSheetsNotConfigured.
func NewSheetsServiceImpl(client sheets.Client, spreadsheetID, ownerEmail string, logger Logger) *SheetsServiceImpl {
	return &SheetsServiceImpl{
		client:        client,
		ownerEmail:    ownerEmail,
		logger:        logger,
		spreadsheetID: spreadsheetID,
	}
}

// SyncResults writes the match summary to the spreadsheet, creating and
// sharing it on first use, and returns its URL.
func (s *SheetsServiceImpl) SyncResults(ctx context.Context, results []models.MatchAnalysis) (string, error) {
	if s.client == nil {
		return "", ErrSheetsNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureSpreadsheet(ctx); err != nil {
		return "", err
	}

	rows := make([][]interface{}, 0, len(results)+1)
	header := make([]interface{}, len(matchHeaders))
	for i, h := range matchHeaders {
		header[i] = h
	}
	rows = append(rows, header)
	rows = append(rows, matchRows(results)...)

	if err := s.client.ReplaceValues(ctx, s.spreadsheetID, sheetsClearRange, sheetsStartCell, rows); err != nil {
		return "", fmt.Errorf("failed to update spreadsheet: %w", err)
	}

	return spreadsheetURL(s.spreadsheetID), nil
}

func (s *SheetsServiceImpl) ensureSpreadsheet(ctx context.Context) error {
	if s.spreadsheetID != "" {
		return nil
	}

	id, _, err := s.client.CreateSpreadsheet(ctx, sheetsDefaultTitle)
	if err != nil {
		return fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	s.spreadsheetID = id
	s.logger.Info("created spreadsheet %s", id)

	if s.ownerEmail != "" {
		if err := s.client.AddPermission(ctx, id, s.ownerEmail, sheetsPermissionRole); err != nil {
			return fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	if err := s.client.MakePublic(ctx, id); err != nil {
		return fmt.Errorf("failed to make spreadsheet public: %w", err)
	}
	return nil
}

func spreadsheetURL(id string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}
