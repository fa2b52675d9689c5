package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"pricewatch/internal/models"
)

type priceFeed struct {
	LastUpdated string              `json:"last_updated"`
	Prices      []models.PriceEntry `json:"prices"`
}

type cbsFeed struct {
	LastUpdated string           `json:"last_updated"`
	Rates       []models.CBSRate `json:"rates"`
}

// WritePriceFeed writes a JSON price feed with its fetch timestamp.
func WritePriceFeed(path string, entries []models.PriceEntry, fetchedAt time.Time) error {
	return writeJSON(path, priceFeed{
		LastUpdated: fetchedAt.Format(time.RFC3339),
		Prices:      entries,
	})
}

// WriteCBSRates writes the raw CBS tariff feed.
func WriteCBSRates(path string, rates []models.CBSRate, fetchedAt time.Time) error {
	return writeJSON(path, cbsFeed{
		LastUpdated: fetchedAt.Format(time.RFC3339),
		Rates:       rates,
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
