package store

import (
	"fmt"
	"time"

	"pricewatch/internal/models"
)

// Price sources recorded in the history store.
const (
	SourceElectricity = "electricity"
	SourceGas         = "gas"
)

// RecordPoints inserts price points for a source, ignoring points already
// recorded for the same timestamp. Returns the number of new rows.
func (s *Store) RecordPoints(source string, points []models.PricePoint) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO price_points (source, time, price) VALUES (?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, p := range points {
		res, err := stmt.Exec(source, p.Time.UTC().Format(time.RFC3339), p.Price)
		if err != nil {
			return 0, fmt.Errorf("inserting price point: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// CountPoints returns the number of recorded points for a source.
func (s *Store) CountPoints(source string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM price_points WHERE source = ?", source).Scan(&n)
	return n, err
}
