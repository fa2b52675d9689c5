// Package prices turns raw market prices into consumer price tables:
// monthly averages combined with official tariffs, hourly all-in price
// breakdowns, and a comparison against the CBS reference.
package prices

import (
	"log/slog"
	"math"
	"sort"

	"pricewatch/internal/models"
)

// Fuel selects which tariff columns of a CBS rate apply.
type Fuel string

const (
	Electricity Fuel = "electricity"
	Gas         Fuel = "gas"
)

// MonthAvg is the mean market price for one month.
type MonthAvg struct {
	Month string // "YYYY-MM"
	Price float64
}

// MonthlyAverages groups price points by month and returns the mean price
// per month, sorted.
func MonthlyAverages(points []models.PricePoint) []MonthAvg {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, p := range points {
		m := p.Time.UTC().Format("2006-01")
		sums[m] += p.Price
		counts[m]++
	}

	out := make([]MonthAvg, 0, len(sums))
	for m, sum := range sums {
		out = append(out, MonthAvg{Month: m, Price: sum / float64(counts[m])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// BuildMonthlyTable combines monthly market averages with the CBS energy tax
// for the same month and fixed procurement costs. Months without CBS data or
// without the relevant tax column are skipped.
func BuildMonthlyTable(monthly []MonthAvg, cbs []models.CBSRate, procurementCosts float64, fuel Fuel) []models.MonthlyPrice {
	byPeriod := make(map[string]models.CBSRate, len(cbs))
	for _, r := range cbs {
		byPeriod[r.Period] = r
	}

	var rows []models.MonthlyPrice
	for _, avg := range monthly {
		rate, ok := byPeriod[avg.Month]
		if !ok {
			slog.Warn("no CBS data for month, skipping", "month", avg.Month, "fuel", fuel)
			continue
		}

		var tax *float64
		if fuel == Electricity {
			tax = rate.EnergyTax
		} else {
			tax = rate.GasEnergyTax
		}
		if tax == nil {
			slog.Warn("no energy tax for month, skipping", "month", avg.Month, "fuel", fuel)
			continue
		}

		rows = append(rows, models.MonthlyPrice{
			Month:            avg.Month,
			BasePrice:        Round5(avg.Price),
			EnergyTax:        Round5(*tax),
			ProcurementCosts: Round5(procurementCosts),
			TotalPrice:       Round5(avg.Price + *tax + procurementCosts),
		})
	}
	return rows
}

// Round5 rounds to five decimal places, the resolution of the published
// tables.
func Round5(v float64) float64 {
	return math.Round(v*1e5) / 1e5
}
