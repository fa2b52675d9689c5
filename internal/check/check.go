// Package check validates the published monthly tables for month-list
// consistency: duplicates, months present for only one fuel, notation
// mismatches, and sort-order violations.
package check

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
)

var (
	monthNotation   = regexp.MustCompile(`^\d{4}-\d{2}$`)
	displayNotation = regexp.MustCompile(`^[a-z]{3}-\d{2}$`)
)

// Report lists every consistency finding over the published tables.
type Report struct {
	Duplicates          []string
	OnlyInElectricity   []string
	OnlyInGas           []string
	BadNotation         []string
	BadDisplayNotation  []string
	ElectricityUnsorted bool
	GasUnsorted         bool
}

// OK reports whether no findings were recorded.
func (r Report) OK() bool {
	return len(r.Duplicates) == 0 &&
		len(r.OnlyInElectricity) == 0 &&
		len(r.OnlyInGas) == 0 &&
		len(r.BadNotation) == 0 &&
		len(r.BadDisplayNotation) == 0 &&
		!r.ElectricityUnsorted && !r.GasUnsorted
}

// Findings renders the report as human-readable lines.
func (r Report) Findings() []string {
	var out []string
	for _, m := range r.Duplicates {
		out = append(out, fmt.Sprintf("duplicate month: %s", m))
	}
	for _, m := range r.OnlyInElectricity {
		out = append(out, fmt.Sprintf("month only in electricity table: %s", m))
	}
	for _, m := range r.OnlyInGas {
		out = append(out, fmt.Sprintf("month only in gas table: %s", m))
	}
	for _, m := range r.BadNotation {
		out = append(out, fmt.Sprintf("bad month notation: %s", m))
	}
	for _, m := range r.BadDisplayNotation {
		out = append(out, fmt.Sprintf("bad comparison date notation: %s", m))
	}
	if r.ElectricityUnsorted {
		out = append(out, "electricity table is not sorted by month")
	}
	if r.GasUnsorted {
		out = append(out, "gas table is not sorted by month")
	}
	return out
}

// Months compares the month columns of the electricity and gas tables.
func Months(elec, gas []string) Report {
	var r Report

	r.Duplicates = append(duplicates(elec), duplicates(gas)...)
	r.OnlyInElectricity = difference(elec, gas)
	r.OnlyInGas = difference(gas, elec)

	for _, m := range append(append([]string{}, elec...), gas...) {
		if !monthNotation.MatchString(m) {
			r.BadNotation = append(r.BadNotation, m)
		}
	}

	r.ElectricityUnsorted = !sort.StringsAreSorted(elec)
	r.GasUnsorted = !sort.StringsAreSorted(gas)

	return r
}

// CompareDates validates the comparison table's date column against the
// "jan-06" display notation. The column is not lexicographically sortable,
// so only the notation is checked.
func CompareDates(dates []string) []string {
	var bad []string
	for _, d := range dates {
		if !displayNotation.MatchString(d) {
			bad = append(bad, d)
		}
	}
	return bad
}

// LoadMonths reads the month column (first field) of a monthly CSV table,
// skipping the header.
func LoadMonths(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var months []string
	for i, rec := range records {
		if i == 0 || len(rec) == 0 {
			continue
		}
		months = append(months, rec[0])
	}
	return months, nil
}

func duplicates(months []string) []string {
	seen := make(map[string]int)
	for _, m := range months {
		seen[m]++
	}
	var dups []string
	for m, n := range seen {
		if n > 1 {
			dups = append(dups, m)
		}
	}
	sort.Strings(dups)
	return dups
}

// difference returns the distinct months in a that are absent from b,
// sorted. Duplicates in a are reported once; the Duplicates check covers
// repetition.
func difference(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, m := range b {
		inB[m] = true
	}
	seen := make(map[string]bool, len(a))
	var out []string
	for _, m := range a {
		if !inB[m] && !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}
