package prices_test

import (
	"testing"
	"time"

	"pricewatch/internal/models"
	"pricewatch/internal/prices"
)

func pt(t time.Time, price float64) models.PricePoint {
	return models.PricePoint{Time: t, Price: price}
}

func f64(v float64) *float64 { return &v }

func TestMonthlyAverages(t *testing.T) {
	jan := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)

	avgs := prices.MonthlyAverages([]models.PricePoint{
		pt(feb, 0.30),
		pt(jan, 0.10),
		pt(jan.Add(time.Hour), 0.20),
	})

	if len(avgs) != 2 {
		t.Fatalf("expected 2 months, got %d", len(avgs))
	}
	if avgs[0].Month != "2024-01" || avgs[1].Month != "2024-02" {
		t.Errorf("unexpected month order: %v", avgs)
	}
	if avgs[0].Price != 0.15 {
		t.Errorf("expected January mean 0.15, got %f", avgs[0].Price)
	}
	if avgs[1].Price != 0.30 {
		t.Errorf("expected February mean 0.30, got %f", avgs[1].Price)
	}
}

func TestBuildMonthlyTable(t *testing.T) {
	monthly := []prices.MonthAvg{
		{Month: "2024-01", Price: 0.1},
		{Month: "2024-02", Price: 0.2}, // no CBS data for this month
		{Month: "2024-03", Price: 0.3}, // CBS month without electricity tax
	}
	cbs := []models.CBSRate{
		{Period: "2024-01", EnergyTax: f64(0.1088)},
		{Period: "2024-03", GasEnergyTax: f64(0.70544)},
	}

	rows := prices.BuildMonthlyTable(monthly, cbs, 0.0484, prices.Electricity)

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Month != "2024-01" {
		t.Errorf("unexpected month %s", row.Month)
	}
	if row.BasePrice != 0.1 || row.EnergyTax != 0.1088 || row.ProcurementCosts != 0.0484 {
		t.Errorf("unexpected components: %+v", row)
	}
	if row.TotalPrice != prices.Round5(0.1+0.1088+0.0484) {
		t.Errorf("unexpected total %f", row.TotalPrice)
	}
}

func TestBuildMonthlyTableGasUsesGasTax(t *testing.T) {
	monthly := []prices.MonthAvg{{Month: "2024-01", Price: 1.0}}
	cbs := []models.CBSRate{
		{Period: "2024-01", EnergyTax: f64(0.1088), GasEnergyTax: f64(0.70544)},
	}

	rows := prices.BuildMonthlyTable(monthly, cbs, 0.07152, prices.Gas)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].EnergyTax != 0.70544 {
		t.Errorf("expected gas tax column, got %f", rows[0].EnergyTax)
	}
}

func TestRound5(t *testing.T) {
	if got := prices.Round5(0.123456789); got != 0.12346 {
		t.Errorf("expected 0.12346, got %v", got)
	}
	if got := prices.Round5(1.0); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
}
