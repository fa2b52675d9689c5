package models

import "time"

// PricePoint is one raw market price: an hourly electricity price or a
// daily gas price, always in UTC.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
}

// Breakdown splits a consumer price into its cost components.
type Breakdown struct {
	BasePrice        float64 `json:"base_price"`
	EnergyTax        float64 `json:"energy_tax"`
	ProcurementCosts float64 `json:"procurement_costs"`
	VAT              float64 `json:"vat,omitempty"`
}

// PriceEntry is one entry of a published price feed: the all-in price plus
// its breakdown.
type PriceEntry struct {
	Time      string    `json:"time"`
	Price     float64   `json:"price"`
	Breakdown Breakdown `json:"breakdown"`
}

// CBSRate holds the official CBS consumer tariffs for one month. Either the
// electricity or the gas fields may be absent for a given month.
type CBSRate struct {
	Period string `json:"period"` // "YYYY-MM"

	BaseRate  *float64 `json:"base_rate,omitempty"`
	EnergyTax *float64 `json:"energy_tax,omitempty"`
	Total     *float64 `json:"total,omitempty"`

	GasBaseRate  *float64 `json:"gas_base_rate,omitempty"`
	GasEnergyTax *float64 `json:"gas_energy_tax,omitempty"`
	GasTotal     *float64 `json:"gas_total,omitempty"`
}

// MonthlyPrice is one row of a monthly price table: the mean market price
// for a month combined with that month's tax and procurement costs.
type MonthlyPrice struct {
	Month            string  `json:"month"` // "YYYY-MM"
	BasePrice        float64 `json:"base_price"`
	EnergyTax        float64 `json:"energy_tax"`
	ProcurementCosts float64 `json:"procurement_costs"`
	TotalPrice       float64 `json:"total_price"`
}

// CompareRow is one row of the CBS-versus-computed comparison table.
// Nil fields render as empty cells.
type CompareRow struct {
	Date           string   `json:"date"` // "jan-06" notation
	CBSElectricity *float64 `json:"cbs_electricity"`
	CBSGas         *float64 `json:"cbs_gas"`
	Electricity    *float64 `json:"electricity"`
	Gas            *float64 `json:"gas"`
}
