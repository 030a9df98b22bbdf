package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"pronostico/internal/models"
)

var ErrNotFound = errors.New("not found")

type Settings interface {
	// GetSetting returns "" when the key has never been set.
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

type History interface {
	Save(item models.HistoryItem) error
	// List returns up to limit items, newest first. limit <= 0 means all.
	List(limit int) ([]models.HistoryItem, error)
	Get(id string) (*models.HistoryItem, error)
	// Trim keeps the keep newest items and drops the rest.
	Trim(keep int) error
	Clear() error
}

type Repository struct {
	Settings
	History
	// SchemaVersion is the applied migration version, 0 for memory storage.
	SchemaVersion uint
	db            *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Settings: NewSettingsPostgres(db),
		History:  NewHistoryPostgres(db),
		db:       db,
	}
}

// NewMemoryRepository keeps everything in process memory. Used when no
// database is configured.
func NewMemoryRepository() *Repository {
	return &Repository{
		Settings: NewSettingsMemory(),
		History:  NewHistoryMemory(),
	}
}

func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Open connects to Postgres and applies migrations when a database is
// configured, and falls back to process memory otherwise.
func Open(cfg *Config) (*Repository, error) {
	if !cfg.Enabled() {
		return NewMemoryRepository(), nil
	}

	db, err := NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init db: %w", err)
	}
	version, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	repo := NewRepository(db)
	repo.SchemaVersion = version
	return repo, nil
}
