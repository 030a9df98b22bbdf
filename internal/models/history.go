package models

import "time"

// HistoryItem is one completed analysis. Items are written once and never
// updated.
type HistoryItem struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Results   []MatchAnalysis `json:"results"`
}

func (h HistoryItem) CreatedAt() time.Time {
	return time.UnixMilli(h.Timestamp)
}
