package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"pronostico/internal/models"
	"pronostico/internal/repository"
)

type HistoryServiceImpl struct {
	repo  repository.History
	limit int
	now   func() time.Time
	newID func() string
}

func NewHistoryServiceImpl(repo repository.History, limit int) *HistoryServiceImpl {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &HistoryServiceImpl{
		repo:  repo,
		limit: limit,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Record stores a new item and evicts the oldest ones beyond the limit.
func (s *HistoryServiceImpl) Record(results []models.MatchAnalysis) (models.HistoryItem, error) {
	item := models.HistoryItem{
		ID:        s.newID(),
		Timestamp: s.now().UnixMilli(),
		Results:   results,
	}

	if err := s.repo.Save(item); err != nil {
		return models.HistoryItem{}, err
	}
	if err := s.repo.Trim(s.limit); err != nil {
		return item, fmt.Errorf("history saved but not trimmed: %w", err)
	}
	return item, nil
}

// List returns the retained items, newest first.
func (s *HistoryServiceImpl) List() ([]models.HistoryItem, error) {
	return s.repo.List(s.limit)
}

func (s *HistoryServiceImpl) Get(id string) (*models.HistoryItem, error) {
	return s.repo.Get(id)
}

func (s *HistoryServiceImpl) Clear() error {
	return s.repo.Clear()
}

// PushHistory returns items with item prepended, capped at limit.
func PushHistory(items []models.HistoryItem, item models.HistoryItem, limit int) []models.HistoryItem {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	out := make([]models.HistoryItem, 0, min(len(items)+1, limit))
	out = append(out, item)
	for _, it := range items {
		if len(out) == limit {
			break
		}
		out = append(out, it)
	}
	return out
}
