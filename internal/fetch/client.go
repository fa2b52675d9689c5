// Package fetch retrieves raw price data from the upstream sources: the
// CBS open data service for official monthly consumer tariffs and the
// EnergyZero API for day-ahead market prices.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"pricewatch/internal/models"
)

// Client fetches price data from the configured upstream endpoints.
type Client struct {
	http              *http.Client
	cbsBaseURL        string
	energyZeroBaseURL string
	now               func() time.Time
}

// NewClient creates a fetch client from source configuration.
func NewClient(cfg models.SourcesConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec * float64(time.Second))
	return &Client{
		http:              &http.Client{Timeout: timeout},
		cbsBaseURL:        cfg.CBSBaseURL,
		energyZeroBaseURL: cfg.EnergyZeroBaseURL,
		now:               time.Now,
	}
}

// Snapshot holds everything one run fetches.
type Snapshot struct {
	CBS         []models.CBSRate
	Electricity []models.PricePoint
	Gas         []models.PricePoint
	FetchedAt   time.Time
}

// FetchAll retrieves CBS rates and both price series concurrently. Any
// source failing fails the whole fetch.
func (c *Client) FetchAll(ctx context.Context, startDate time.Time) (*Snapshot, error) {
	snap := &Snapshot{FetchedAt: c.now()}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rates, err := c.FetchCBSRates(ctx)
		if err != nil {
			return fmt.Errorf("cbs rates: %w", err)
		}
		snap.CBS = rates
		return nil
	})

	g.Go(func() error {
		points, err := c.FetchElectricityPrices(ctx, startDate)
		if err != nil {
			return fmt.Errorf("electricity prices: %w", err)
		}
		snap.Electricity = points
		return nil
	})

	g.Go(func() error {
		points, err := c.FetchGasPrices(ctx, startDate)
		if err != nil {
			return fmt.Errorf("gas prices: %w", err)
		}
		snap.Gas = points
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slog.Info("fetched price data",
		"cbs_months", len(snap.CBS),
		"electricity_points", len(snap.Electricity),
		"gas_points", len(snap.Gas))

	return snap, nil
}

// getJSON performs a GET request and returns the response body.
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return data, nil
}
