package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"pronostico/internal/models"
)

type HistoryPostgres struct {
	db *sql.DB
}

func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

func (r *HistoryPostgres) Save(item models.HistoryItem) error {
	results, err := json.Marshal(item.Results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	_, err = r.db.Exec(
		"INSERT INTO analysis_history (id, created_at, results) VALUES ($1, $2, $3)",
		item.ID, item.Timestamp, string(results),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history item: %w", err)
	}
	return nil
}

func (r *HistoryPostgres) List(limit int) ([]models.HistoryItem, error) {
	query := "SELECT id, created_at, results FROM analysis_history ORDER BY seq DESC"
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var items []models.HistoryItem
	for rows.Next() {
		item, err := scanHistoryItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return items, nil
}

func (r *HistoryPostgres) Get(id string) (*models.HistoryItem, error) {
	row := r.db.QueryRow("SELECT id, created_at, results FROM analysis_history WHERE id = $1", id)
	item, err := scanHistoryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return item, err
}

func (r *HistoryPostgres) Trim(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.Exec(`
		DELETE FROM analysis_history
		WHERE seq NOT IN (SELECT seq FROM analysis_history ORDER BY seq DESC LIMIT $1)
	`, keep)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return nil
}

func (r *HistoryPostgres) Clear() error {
	if _, err := r.db.Exec("DELETE FROM analysis_history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoryItem(row rowScanner) (*models.HistoryItem, error) {
	var item models.HistoryItem
	var results []byte
	if err := row.Scan(&item.ID, &item.Timestamp, &results); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan history item: %w", err)
	}
	if err := json.Unmarshal(results, &item.Results); err != nil {
		return nil, fmt.Errorf("failed to decode results of %s: %w", item.ID, err)
	}
	return &item, nil
}
