package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFetchElectricityPricesNestedShape(t *testing.T) {
	body := `{"data":{"Prices":[
		{"readingDate":"2024-01-01T01:00:00Z","price":0.101},
		{"readingDate":"2024-01-01T00:00:00Z","price":0.095}
	]}}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("interval") != "4" || q.Get("usageType") != "1" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("inclBtw") != "true" {
			t.Errorf("expected inclBtw=true, got %s", q.Get("inclBtw"))
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).FetchElectricityPrices(context.Background(), start)
	if err != nil {
		t.Fatalf("FetchElectricityPrices failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// Sorted by time
	if !points[0].Time.Before(points[1].Time) {
		t.Error("points not sorted by time")
	}
	if points[0].Price != 0.095 {
		t.Errorf("unexpected first price %f", points[0].Price)
	}
}

func TestFetchElectricityPricesFlatShape(t *testing.T) {
	// Older API revision: top-level Prices with alternate field names
	body := `{"Prices":[
		{"timestamp":"2024-01-01T00:00:00Z","value":0.0},
		{"timestamp":"2024-01-01T01:00:00Z","value":0.12}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).FetchElectricityPrices(context.Background(), start)
	if err != nil {
		t.Fatalf("FetchElectricityPrices failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	// A zero price is a valid price
	if points[0].Price != 0.0 {
		t.Errorf("unexpected price %f", points[0].Price)
	}
}

func TestFetchElectricityPricesUnknownShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchElectricityPrices(context.Background(), start); err == nil {
		t.Fatal("expected error for response without prices")
	}
}

func TestFetchGasPricesDailyDedupe(t *testing.T) {
	body := `{"Prices":[
		{"readingDate":"2024-01-01T06:00:00Z","price":1.10},
		{"readingDate":"2024-01-01T05:00:00Z","price":1.15},
		{"readingDate":"2024-01-02T06:00:00Z","price":1.20}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("interval") != "5" || q.Get("usageType") != "3" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		w.Write([]byte(body))
	}))
	defer srv.Close()

	points, err := newTestClient(srv.URL).FetchGasPrices(context.Background(), start)
	if err != nil {
		t.Fatalf("FetchGasPrices failed: %v", err)
	}

	if len(points) != 2 {
		t.Fatalf("expected 2 daily points, got %d", len(points))
	}
	// The first price seen per day wins
	if points[0].Price != 1.10 {
		t.Errorf("expected first seen price 1.10, got %f", points[0].Price)
	}
	if points[1].Price != 1.20 {
		t.Errorf("expected 1.20 for second day, got %f", points[1].Price)
	}
}

func TestFetchAll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ODataApi/odata/85592NED/TypedDataSet":
			w.Write([]byte(cbsSample))
		case r.URL.Query().Get("usageType") == "1":
			w.Write([]byte(`{"Prices":[{"readingDate":"2024-01-01T00:00:00Z","price":0.1}]}`))
		default:
			w.Write([]byte(`{"Prices":[{"readingDate":"2024-01-01T06:00:00Z","price":1.1}]}`))
		}
	}))
	defer srv.Close()

	snap, err := newTestClient(srv.URL).FetchAll(context.Background(), start)
	if err != nil {
		t.Fatalf("FetchAll failed: %v", err)
	}
	if len(snap.CBS) == 0 || len(snap.Electricity) == 0 || len(snap.Gas) == 0 {
		t.Errorf("incomplete snapshot: cbs=%d elec=%d gas=%d", len(snap.CBS), len(snap.Electricity), len(snap.Gas))
	}
	if snap.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestFetchAllFailsWhenOneSourceFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ODataApi/odata/85592NED/TypedDataSet" {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"Prices":[{"readingDate":"2024-01-01T00:00:00Z","price":0.1}]}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchAll(context.Background(), start); err == nil {
		t.Fatal("expected error when a source fails")
	}
}
