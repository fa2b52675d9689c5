package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"pricewatch/internal/models"
)

// cbsDatasetPath is the OData TypedDataSet for the CBS consumer energy
// tariffs dataset (85592NED).
const cbsDatasetPath = "/ODataApi/odata/85592NED/TypedDataSet"

// cbsBtwInclusive marks rows whose tariffs include VAT.
const cbsBtwInclusive = "A048944"

type cbsRow struct {
	Btw      string `json:"Btw"`
	Perioden string `json:"Perioden"`

	ElecTariff *float64 `json:"VariabelLeveringstariefContractprijs_9"`
	ElecTax    *float64 `json:"Energiebelasting_12"`
	GasTariff  *float64 `json:"VariabelLeveringstariefContractprijs_3"`
	GasTax     *float64 `json:"Energiebelasting_6"`
}

// FetchCBSRates retrieves the official monthly electricity and gas consumer
// tariffs (including VAT). Rows without either electricity or gas data are
// dropped; the result is sorted by period.
func (c *Client) FetchCBSRates(ctx context.Context) ([]models.CBSRate, error) {
	body, err := c.getJSON(ctx, c.cbsBaseURL+cbsDatasetPath)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Value []cbsRow `json:"value"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("parsing CBS response: %w", err)
	}

	var rates []models.CBSRate
	for _, row := range doc.Value {
		// Monthly rows carry "MM" in the period code, e.g. "2023MM01".
		if row.Btw != cbsBtwInclusive || !strings.Contains(row.Perioden, "MM") {
			continue
		}
		period, ok := parseCBSPeriod(row.Perioden)
		if !ok {
			continue
		}

		rate := models.CBSRate{Period: period}

		if row.ElecTariff != nil && row.ElecTax != nil {
			total := *row.ElecTariff + *row.ElecTax
			rate.BaseRate = row.ElecTariff
			rate.EnergyTax = row.ElecTax
			rate.Total = &total
		}
		if row.GasTariff != nil && row.GasTax != nil {
			total := *row.GasTariff + *row.GasTax
			rate.GasBaseRate = row.GasTariff
			rate.GasEnergyTax = row.GasTax
			rate.GasTotal = &total
		}

		if rate.BaseRate != nil || rate.GasBaseRate != nil {
			rates = append(rates, rate)
		}
	}

	sort.Slice(rates, func(i, j int) bool { return rates[i].Period < rates[j].Period })
	return rates, nil
}

// parseCBSPeriod converts a CBS period code like "2023MM01" to "2023-01".
func parseCBSPeriod(p string) (string, bool) {
	if len(p) < 6 {
		return "", false
	}
	year, err := strconv.Atoi(p[:4])
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(p[len(p)-2:])
	if err != nil || month < 1 || month > 12 {
		return "", false
	}
	return fmt.Sprintf("%d-%02d", year, month), true
}
