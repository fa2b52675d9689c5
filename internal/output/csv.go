// Package output writes the published artifacts under the output
// directory: monthly CSV tables, the comparison table, and JSON price
// feeds. These files are what the publish step stages and commits.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"pricewatch/internal/models"
)

// Published file names.
const (
	MonthlyElectricityCSV = "monthly_electricity_prices.csv"
	MonthlyGasCSV         = "monthly_gas_prices.csv"
	CompareCSV            = "compare_prices.csv"
	ElectricityFeedJSON   = "energy_prices.json"
	GasFeedJSON           = "ez_gas_prices.json"
	CBSRatesJSON          = "cbs_rates.json"
)

// WriteMonthlyCSV writes a monthly price table.
func WriteMonthlyCSV(path string, rows []models.MonthlyPrice) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"month", "base_price", "energy_tax", "procurement_costs", "total_price"}); err != nil {
			return err
		}
		for _, r := range rows {
			record := []string{
				r.Month,
				formatFloat(r.BasePrice),
				formatFloat(r.EnergyTax),
				formatFloat(r.ProcurementCosts),
				formatFloat(r.TotalPrice),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteCompareCSV writes the CBS-versus-computed comparison table. Floats
// use four decimals; absent values are empty cells.
func WriteCompareCSV(path string, rows []models.CompareRow) error {
	return writeCSV(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"DATE", "CBS stroom", "CBS gas", "ANWB stroom", "ANWB gas"}); err != nil {
			return err
		}
		for _, r := range rows {
			record := []string{
				r.Date,
				formatCell(r.CBSElectricity),
				formatCell(r.CBSGas),
				formatCell(r.Electricity),
				formatCell(r.Gas),
			}
			if err := w.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCSV(path string, write func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}
