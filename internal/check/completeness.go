package check

import (
	"sort"
	"time"

	"pricewatch/internal/models"
)

// Completeness reports gaps and duplicates in an hourly price series.
// Findings are diagnostic; gaps are never filled.
type Completeness struct {
	MissingHours   []time.Time
	MissingByMonth map[string]int // "YYYY-MM" -> missing hour count
	Duplicates     []time.Time
	// DSTTransitions lists the Amsterdam clock changes inside the series
	// range. An hour missing at a transition is expected, not a data gap.
	DSTTransitions []time.Time
}

// OK reports whether the series has no missing hours and no duplicates.
func (c Completeness) OK() bool {
	return len(c.MissingHours) == 0 && len(c.Duplicates) == 0
}

// HourlySeries checks an hourly price series for missing and duplicated
// timestamps between its first and last point. Times are compared on the
// UTC hour.
func HourlySeries(points []models.PricePoint) Completeness {
	c := Completeness{MissingByMonth: make(map[string]int)}
	if len(points) == 0 {
		return c
	}

	seen := make(map[time.Time]int, len(points))
	first := points[0].Time.UTC().Truncate(time.Hour)
	last := first
	for _, p := range points {
		h := p.Time.UTC().Truncate(time.Hour)
		seen[h]++
		if h.Before(first) {
			first = h
		}
		if h.After(last) {
			last = h
		}
	}

	for h := first; !h.After(last); h = h.Add(time.Hour) {
		if seen[h] == 0 {
			c.MissingHours = append(c.MissingHours, h)
			c.MissingByMonth[h.Format("2006-01")]++
		}
	}

	for h, n := range seen {
		if n > 1 {
			c.Duplicates = append(c.Duplicates, h)
		}
	}
	sort.Slice(c.Duplicates, func(i, j int) bool { return c.Duplicates[i].Before(c.Duplicates[j]) })

	c.DSTTransitions = dstTransitions(first, last)
	return c
}

// dstTransitions returns the Amsterdam DST changes for every year the
// series touches: clocks jump at 02:00 on the last Sunday of March and fall
// back at 03:00 on the last Sunday of October.
func dstTransitions(first, last time.Time) []time.Time {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return nil
	}
	var out []time.Time
	for year := first.Year(); year <= last.Year(); year++ {
		out = append(out,
			lastSunday(year, time.March, 2, loc),
			lastSunday(year, time.October, 3, loc))
	}
	return out
}

func lastSunday(year int, month time.Month, hour int, loc *time.Location) time.Time {
	t := time.Date(year, month, 31, hour, 0, 0, 0, loc)
	for t.Weekday() != time.Sunday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}
