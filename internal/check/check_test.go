package check_test

import (
	"os"
	"path/filepath"
	"testing"

	"pricewatch/internal/check"
)

func TestMonthsConsistent(t *testing.T) {
	elec := []string{"2024-01", "2024-02", "2024-03"}
	gas := []string{"2024-01", "2024-02", "2024-03"}

	r := check.Months(elec, gas)
	if !r.OK() {
		t.Errorf("expected clean report, got findings %v", r.Findings())
	}
}

func TestMonthsFindings(t *testing.T) {
	elec := []string{"2024-02", "2024-01", "2024-01", "2024-04"}
	gas := []string{"2024-01", "2024-02", "24-03"}

	r := check.Months(elec, gas)
	if r.OK() {
		t.Fatal("expected findings")
	}

	if len(r.Duplicates) != 1 || r.Duplicates[0] != "2024-01" {
		t.Errorf("unexpected duplicates %v", r.Duplicates)
	}
	if len(r.OnlyInElectricity) != 1 || r.OnlyInElectricity[0] != "2024-04" {
		t.Errorf("unexpected electricity-only months %v", r.OnlyInElectricity)
	}
	if len(r.OnlyInGas) != 1 || r.OnlyInGas[0] != "24-03" {
		t.Errorf("unexpected gas-only months %v", r.OnlyInGas)
	}
	if len(r.BadNotation) != 1 || r.BadNotation[0] != "24-03" {
		t.Errorf("unexpected notation findings %v", r.BadNotation)
	}
	if !r.ElectricityUnsorted {
		t.Error("expected electricity table flagged as unsorted")
	}
	if r.GasUnsorted {
		t.Error("gas table is sorted, should not be flagged")
	}
}

func TestFindings(t *testing.T) {
	r := check.Months([]string{"2024-02", "2024-01"}, []string{"2024-01", "2024-02"})
	lines := r.Findings()
	if len(lines) != 1 {
		t.Fatalf("expected one finding, got %v", lines)
	}
	if lines[0] != "electricity table is not sorted by month" {
		t.Errorf("unexpected finding %q", lines[0])
	}
}

func TestMonthsDuplicateReportedOncePerTable(t *testing.T) {
	elec := []string{"2024-01", "2024-02", "2024-02"}
	gas := []string{"2024-01"}

	r := check.Months(elec, gas)
	if len(r.OnlyInElectricity) != 1 || r.OnlyInElectricity[0] != "2024-02" {
		t.Errorf("duplicated absent month should appear once, got %v", r.OnlyInElectricity)
	}
	if len(r.Duplicates) != 1 || r.Duplicates[0] != "2024-02" {
		t.Errorf("unexpected duplicates %v", r.Duplicates)
	}
}

func TestCompareDates(t *testing.T) {
	bad := check.CompareDates([]string{"jan-21", "feb-21", "Mar-21", "2021-04"})
	if len(bad) != 2 {
		t.Fatalf("expected 2 findings, got %v", bad)
	}
	if bad[0] != "Mar-21" || bad[1] != "2021-04" {
		t.Errorf("unexpected findings %v", bad)
	}
}

func TestLoadMonths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monthly.csv")
	csv := "month,base_price,energy_tax,procurement_costs,total_price\n" +
		"2024-01,0.1,0.1088,0.0484,0.2572\n" +
		"2024-02,0.09,0.1088,0.0484,0.2472\n"
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	months, err := check.LoadMonths(path)
	if err != nil {
		t.Fatalf("LoadMonths failed: %v", err)
	}
	want := []string{"2024-01", "2024-02"}
	if len(months) != len(want) {
		t.Fatalf("got %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("month %d: got %s, want %s", i, months[i], want[i])
		}
	}
}

func TestLoadMonthsMissingFile(t *testing.T) {
	if _, err := check.LoadMonths(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
