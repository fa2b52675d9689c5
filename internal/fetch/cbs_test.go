package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"pricewatch/internal/fetch"
	"pricewatch/internal/models"
)

const cbsSample = `{
  "value": [
    {
      "Btw": "A048944",
      "Perioden": "2024MM02",
      "VariabelLeveringstariefContractprijs_9": 0.25,
      "Energiebelasting_12": 0.1088,
      "VariabelLeveringstariefContractprijs_3": 0.45,
      "Energiebelasting_6": 0.70544
    },
    {
      "Btw": "A048944",
      "Perioden": "2024MM01",
      "VariabelLeveringstariefContractprijs_9": 0.28,
      "Energiebelasting_12": 0.1088
    },
    {
      "Btw": "A048944",
      "Perioden": "2024JJ00",
      "VariabelLeveringstariefContractprijs_9": 0.26,
      "Energiebelasting_12": 0.1088
    },
    {
      "Btw": "A048945",
      "Perioden": "2024MM03",
      "VariabelLeveringstariefContractprijs_9": 0.22,
      "Energiebelasting_12": 0.09
    },
    {
      "Btw": "A048944",
      "Perioden": "2024MM04"
    }
  ]
}`

func newTestClient(url string) *fetch.Client {
	return fetch.NewClient(models.SourcesConfig{
		CBSBaseURL:        url,
		EnergyZeroBaseURL: url,
		TimeoutSec:        5,
	})
}

func TestFetchCBSRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ODataApi/odata/85592NED/TypedDataSet" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(cbsSample))
	}))
	defer srv.Close()

	rates, err := newTestClient(srv.URL).FetchCBSRates(context.Background())
	if err != nil {
		t.Fatalf("FetchCBSRates failed: %v", err)
	}

	// Yearly rows, other VAT codes, and rows without data are dropped
	if len(rates) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(rates))
	}

	// Sorted by period
	if rates[0].Period != "2024-01" || rates[1].Period != "2024-02" {
		t.Errorf("unexpected period order: %s, %s", rates[0].Period, rates[1].Period)
	}

	jan := rates[0]
	if jan.BaseRate == nil || *jan.BaseRate != 0.28 {
		t.Errorf("unexpected January base rate %v", jan.BaseRate)
	}
	if jan.Total == nil || *jan.Total != 0.28+0.1088 {
		t.Errorf("unexpected January total %v", jan.Total)
	}
	if jan.GasBaseRate != nil {
		t.Error("January should have no gas data")
	}

	feb := rates[1]
	if feb.GasTotal == nil || *feb.GasTotal != 0.45+0.70544 {
		t.Errorf("unexpected February gas total %v", feb.GasTotal)
	}
}

func TestFetchCBSRatesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).FetchCBSRates(context.Background()); err == nil {
		t.Fatal("expected error for HTTP 500")
	}
}
