package config

import (
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"pricewatch/internal/models"
)

// DefaultTariffs returns the built-in tariff tables. Rates include VAT;
// procurement costs are ex-VAT.
func DefaultTariffs() models.Tariffs {
	return models.Tariffs{
		VAT: 0.21,
		Electricity: models.FuelTariff{
			ProcurementCosts: 0.04,
			EnergyTax: map[string]float64{
				"2023": 0.12599,
				"2024": 0.10880,
				"2025": 0.10154,
				"2026": 0.10154,
			},
		},
		Gas: models.FuelTariff{
			ProcurementCosts: 0.05911,
			EnergyTax: map[string]float64{
				"2024": 0.70544,
				"2025": 0.69957,
			},
		},
	}
}

// LoadTariffs loads and parses a tariffs.toml file from the given
// filesystem, overlaying the built-in tables.
func LoadTariffs(fsys fs.FS) (models.Tariffs, error) {
	t := DefaultTariffs()

	data, err := fs.ReadFile(fsys, "tariffs.toml")
	if err != nil {
		return t, fmt.Errorf("reading tariffs.toml: %w", err)
	}

	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return t, fmt.Errorf("parsing tariffs.toml: %w", err)
	}

	// A manifest without a vat key keeps the default rather than zeroing it.
	if !md.IsDefined("vat") {
		t.VAT = DefaultTariffs().VAT
	}

	if err := validateTariffs(t); err != nil {
		return t, err
	}

	return t, nil
}

func validateTariffs(t models.Tariffs) error {
	if t.VAT < 0 || t.VAT >= 1 {
		return fmt.Errorf("vat rate %v out of range [0, 1)", t.VAT)
	}
	if len(t.Electricity.EnergyTax) == 0 {
		return fmt.Errorf("electricity energy_tax table is empty")
	}
	if len(t.Gas.EnergyTax) == 0 {
		return fmt.Errorf("gas energy_tax table is empty")
	}
	return nil
}
