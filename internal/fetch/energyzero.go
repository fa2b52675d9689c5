package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"pricewatch/internal/models"
)

const (
	// EnergyZero interval/usage codes.
	intervalHourly       = 4
	intervalDaily        = 5
	usageTypeElectricity = 1
	usageTypeGas         = 3
)

// FetchElectricityPrices retrieves hourly day-ahead electricity prices from
// startDate until tomorrow, normalized to UTC.
func (c *Client) FetchElectricityPrices(ctx context.Context, startDate time.Time) ([]models.PricePoint, error) {
	end := c.now().Add(24 * time.Hour)
	points, err := c.fetchEnergyZero(ctx, startDate, end, intervalHourly, usageTypeElectricity)
	if err != nil {
		return nil, err
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	return points, nil
}

// FetchGasPrices retrieves daily gas prices from startDate until now. Gas
// quotes repeat within a day; only the first price per calendar day is kept.
func (c *Client) FetchGasPrices(ctx context.Context, startDate time.Time) ([]models.PricePoint, error) {
	points, err := c.fetchEnergyZero(ctx, startDate, c.now(), intervalDaily, usageTypeGas)
	if err != nil {
		return nil, err
	}

	daily := make(map[string]models.PricePoint)
	for _, p := range points {
		key := p.Time.Format("2006-01-02")
		if _, seen := daily[key]; !seen {
			daily[key] = p
		}
	}

	out := make([]models.PricePoint, 0, len(daily))
	for _, p := range daily {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (c *Client) fetchEnergyZero(ctx context.Context, start, end time.Time, interval, usageType int) ([]models.PricePoint, error) {
	url := fmt.Sprintf("%s/v1/energyprices?fromDate=%s&tillDate=%s&interval=%d&usageType=%d&inclBtw=true",
		c.energyZeroBaseURL,
		start.UTC().Format("2006-01-02T15:04:05.000Z"),
		end.UTC().Format("2006-01-02T15:04:05.999Z"),
		interval, usageType)

	body, err := c.getJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	raw, err := extractPrices(body)
	if err != nil {
		return nil, err
	}

	points := make([]models.PricePoint, 0, len(raw))
	for _, item := range raw {
		p, ok := parsePricePoint(item)
		if !ok {
			slog.Debug("skipping malformed price point", "item", item)
			continue
		}
		points = append(points, p)
	}

	if len(points) == 0 {
		return nil, fmt.Errorf("no usable price points in response")
	}
	return points, nil
}

// extractPrices locates the price array in an EnergyZero response. The
// response shape has changed between API revisions, so several known
// locations are tried before falling back to any array whose elements look
// like price objects.
func extractPrices(body []byte) ([]map[string]any, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	if arr, ok := doc.([]any); ok {
		return toObjects(arr), nil
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is neither an object nor an array")
	}

	if data, ok := obj["data"].(map[string]any); ok {
		if arr, ok := data["Prices"].([]any); ok {
			return toObjects(arr), nil
		}
	}
	for _, key := range []string{"Prices", "prices", "result"} {
		if arr, ok := obj[key].([]any); ok {
			return toObjects(arr), nil
		}
	}

	for _, v := range obj {
		arr, ok := v.([]any)
		if !ok || len(arr) == 0 {
			continue
		}
		if first, ok := arr[0].(map[string]any); ok {
			if _, hasPrice := first["price"]; hasPrice {
				return toObjects(arr), nil
			}
			if _, hasDate := first["readingDate"]; hasDate {
				return toObjects(arr), nil
			}
		}
	}

	return nil, fmt.Errorf("response does not contain price data in a known shape")
}

func toObjects(arr []any) []map[string]any {
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if m, ok := v.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

var (
	timestampFields = []string{"readingDate", "timestamp", "datetime", "date", "time"}
	priceFields     = []string{"price", "Price", "value", "Value"}
)

// parsePricePoint extracts a timestamp and price from one raw price object,
// tolerating the field name variants seen across API revisions. A zero
// price is valid.
func parsePricePoint(item map[string]any) (models.PricePoint, bool) {
	var ts time.Time
	var found bool
	for _, field := range timestampFields {
		s, ok := item[field].(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			continue
		}
		ts = t.UTC()
		found = true
		break
	}
	if !found {
		return models.PricePoint{}, false
	}

	for _, field := range priceFields {
		if v, ok := item[field].(float64); ok {
			return models.PricePoint{Time: ts, Price: v}, true
		}
	}
	return models.PricePoint{}, false
}
