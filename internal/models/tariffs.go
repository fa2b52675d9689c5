package models

import "strconv"

// Tariffs represents the parsed tariffs.toml manifest. All rates include VAT
// unless noted otherwise; procurement costs are ex-VAT and grossed up where
// the monthly tables need them.
type Tariffs struct {
	VAT         float64    `toml:"vat"`
	Electricity FuelTariff `toml:"electricity"`
	Gas         FuelTariff `toml:"gas"`
}

// FuelTariff holds the per-fuel cost components.
type FuelTariff struct {
	ProcurementCosts float64 `toml:"procurement_costs"`
	// EnergyTax maps a four-digit year to the tax rate for that year.
	EnergyTax map[string]float64 `toml:"energy_tax"`
}

// TaxFor returns the energy tax rate for the given year. Years outside the
// table fall back to the most recent year present.
func (f FuelTariff) TaxFor(year int) float64 {
	if rate, ok := f.EnergyTax[strconv.Itoa(year)]; ok {
		return rate
	}
	latest := -1
	var rate float64
	for k, v := range f.EnergyTax {
		y, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		if y > latest {
			latest = y
			rate = v
		}
	}
	return rate
}
