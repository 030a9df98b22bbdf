package repository

import (
	"database/sql"
	"errors"
	"fmt"
)

type SettingsPostgres struct {
	db *sql.DB
}

func NewSettingsPostgres(db *sql.DB) *SettingsPostgres {
	return &SettingsPostgres{db: db}
}

func (r *SettingsPostgres) GetSetting(key string) (string, error) {
	var val string
	err := r.db.QueryRow("SELECT value FROM app_settings WHERE key = $1", key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return val, nil
}

func (r *SettingsPostgres) SetSetting(key, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO app_settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
