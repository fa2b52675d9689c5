package prices

import (
	"time"

	"pricewatch/internal/models"
)

// amsterdam is the consumer-facing timezone of the electricity feed. The
// gas feed stays in UTC.
var amsterdam = loadAmsterdam()

func loadAmsterdam() *time.Location {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return time.UTC
	}
	return loc
}

// ElectricityEntries builds the hourly all-in electricity price feed: base
// price plus that year's energy tax plus procurement costs, with VAT levied
// on the sum. Timestamps are rendered in Amsterdam local time; the tax year
// follows the local wall clock.
func ElectricityEntries(points []models.PricePoint, tariffs models.Tariffs) []models.PriceEntry {
	entries := make([]models.PriceEntry, 0, len(points))
	for _, p := range points {
		local := p.Time.In(amsterdam)
		tax := tariffs.Electricity.TaxFor(local.Year())
		procurement := tariffs.Electricity.ProcurementCosts
		vat := (p.Price + tax + procurement) * tariffs.VAT
		entries = append(entries, models.PriceEntry{
			Time:  local.Format(time.RFC3339),
			Price: p.Price + tax + procurement + vat,
			Breakdown: models.Breakdown{
				BasePrice:        p.Price,
				EnergyTax:        tax,
				ProcurementCosts: procurement,
				VAT:              vat,
			},
		})
	}
	return entries
}

// GasEntries builds the daily all-in gas price feed. Gas market prices and
// the gas tax table already include VAT, so there is no separate VAT
// component.
func GasEntries(points []models.PricePoint, tariffs models.Tariffs) []models.PriceEntry {
	entries := make([]models.PriceEntry, 0, len(points))
	for _, p := range points {
		tax := tariffs.Gas.TaxFor(p.Time.Year())
		procurement := tariffs.Gas.ProcurementCosts
		entries = append(entries, models.PriceEntry{
			Time:  p.Time.Format(time.RFC3339),
			Price: p.Price + tax + procurement,
			Breakdown: models.Breakdown{
				BasePrice:        p.Price,
				EnergyTax:        tax,
				ProcurementCosts: procurement,
			},
		})
	}
	return entries
}
