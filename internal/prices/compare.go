package prices

import (
	"sort"
	"strings"
	"time"

	"pricewatch/internal/models"
)

// BuildCompareTable outer-joins the CBS reference totals and the computed
// monthly totals per month. Months appearing on either side get a row;
// absent values stay nil and render as empty cells.
func BuildCompareTable(cbs []models.CBSRate, elec, gas []models.MonthlyPrice) []models.CompareRow {
	rows := make(map[string]*models.CompareRow)

	row := func(month string) *models.CompareRow {
		if r, ok := rows[month]; ok {
			return r
		}
		r := &models.CompareRow{Date: month}
		rows[month] = r
		return r
	}

	for _, r := range cbs {
		cr := row(r.Period)
		cr.CBSElectricity = r.Total
		cr.CBSGas = r.GasTotal
	}
	for _, m := range elec {
		v := m.TotalPrice
		row(m.Month).Electricity = &v
	}
	for _, m := range gas {
		v := m.TotalPrice
		row(m.Month).Gas = &v
	}

	months := make([]string, 0, len(rows))
	for m := range rows {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]models.CompareRow, 0, len(months))
	for _, m := range months {
		r := *rows[m]
		r.Date = displayMonth(m)
		out = append(out, r)
	}
	return out
}

// displayMonth renders "2021-01" as "jan-21". Unparseable input passes
// through unchanged.
func displayMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return strings.ToLower(t.Format("Jan-06"))
}
