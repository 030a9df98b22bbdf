package repository

import (
	"sync"

	"pronostico/internal/models"
)

// SettingsMemory is a thread-safe in-memory settings store.
type SettingsMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewSettingsMemory() *SettingsMemory {
	return &SettingsMemory{
		values: make(map[string]string),
	}
}

func (s *SettingsMemory) GetSetting(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *SettingsMemory) SetSetting(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// HistoryMemory keeps history items newest first.
type HistoryMemory struct {
	mu    sync.RWMutex
	items []models.HistoryItem
}

func NewHistoryMemory() *HistoryMemory {
	return &HistoryMemory{}
}

func (h *HistoryMemory) Save(item models.HistoryItem) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = append([]models.HistoryItem{item}, h.items...)
	return nil
}

func (h *HistoryMemory) List(limit int) ([]models.HistoryItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := len(h.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]models.HistoryItem, n)
	copy(out, h.items[:n])
	return out, nil
}

func (h *HistoryMemory) Get(id string) (*models.HistoryItem, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i := range h.items {
		if h.items[i].ID == id {
			item := h.items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (h *HistoryMemory) Trim(keep int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(h.items) > keep {
		h.items = h.items[:keep]
	}
	return nil
}

func (h *HistoryMemory) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	return nil
}
