// Package pipeline runs the daily price pipeline: provision, execute,
// publish. Steps are strictly sequential and fail-fast; the first failing
// step aborts the run with a typed error and later steps never execute.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"time"

	"pricewatch/internal/check"
	"pricewatch/internal/config"
	"pricewatch/internal/fetch"
	"pricewatch/internal/models"
	"pricewatch/internal/output"
	"pricewatch/internal/prices"
	"pricewatch/internal/store"
)

// Fetcher retrieves one snapshot of all upstream price data.
type Fetcher interface {
	FetchAll(ctx context.Context, startDate time.Time) (*fetch.Snapshot, error)
}

// Runner executes pipeline runs.
type Runner struct {
	cfg         models.Config
	tariffs     models.Tariffs
	fetcher     Fetcher
	publisher   Publisher
	skipPublish bool
}

// Option customizes a Runner.
type Option func(*Runner)

// WithFetcher replaces the default fetch client.
func WithFetcher(f Fetcher) Option { return func(r *Runner) { r.fetcher = f } }

// WithPublisher replaces the default git publisher.
func WithPublisher(p Publisher) Option { return func(r *Runner) { r.publisher = p } }

// SkipPublish disables the publish step entirely (fetch-only runs).
func SkipPublish() Option { return func(r *Runner) { r.skipPublish = true } }

// NewRunner creates a runner for the given configuration.
func NewRunner(cfg models.Config, tariffs models.Tariffs, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		tariffs:   tariffs,
		fetcher:   fetch.NewClient(cfg.Sources),
		publisher: &GitPublisher{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes one pipeline run. Step failures are reported in the result's
// Error field; the returned error is reserved for failures of the run
// bookkeeping itself.
func (r *Runner) Run(ctx context.Context, trigger models.Trigger) (*models.RunResult, error) {
	runName := time.Now().UTC().Format("2006-01-02__15-04-05")
	if r.cfg.Name != nil {
		runName = fmt.Sprintf("%s__%s", *r.cfg.Name, runName)
	}

	result := &models.RunResult{
		RunName: runName,
		Trigger: trigger,
		Timestamps: models.Timestamps{
			StartedAt: time.Now(),
		},
	}

	// Phase 1: Provision
	result.Timestamps.ProvisionStartedAt = time.Now()
	history, err := r.provision()
	result.Timestamps.ProvisionEndedAt = time.Now()
	provisionDur := result.Timestamps.ProvisionEndedAt.Sub(result.Timestamps.ProvisionStartedAt).Seconds()
	result.Durations.ProvisionSec = &provisionDur

	if err != nil {
		result.Error = classify(err, models.ErrProvisionFailed)
		return r.finish(result, history, 0)
	}

	var runID int64
	if history != nil {
		defer history.Close()
		if runID, err = history.BeginRun(trigger, result.Timestamps.StartedAt); err != nil {
			slog.Warn("recording run start failed", "error", err)
		}
	}

	// Phase 2: Execute
	start := time.Now()
	result.Timestamps.ExecuteStartedAt = &start
	err = r.execute(ctx, history)
	end := time.Now()
	result.Timestamps.ExecuteEndedAt = &end
	execDur := end.Sub(start).Seconds()
	result.Durations.ExecuteSec = &execDur

	if err != nil {
		result.Error = classify(err, models.ErrScriptFailed)
		return r.finish(result, history, runID)
	}

	// Phase 3: Publish
	if !r.skipPublish {
		start = time.Now()
		result.Timestamps.PublishStartedAt = &start
		rev, err := r.publisher.Publish(ctx, PublishOptions{
			Dir:         r.cfg.OutputDir,
			Remote:      r.cfg.Git.Remote,
			Branch:      r.cfg.Git.Branch,
			AuthorName:  r.cfg.Git.AuthorName,
			AuthorEmail: r.cfg.Git.AuthorEmail,
			Message:     r.cfg.Git.Message,
			Push:        !r.cfg.Git.DisablePush,
		})
		end = time.Now()
		result.Timestamps.PublishEndedAt = &end
		publishDur := end.Sub(*result.Timestamps.PublishStartedAt).Seconds()
		result.Durations.PublishSec = &publishDur

		if err != nil {
			// A rejected push still created a local commit; keep its SHA.
			result.Revision = rev.SHA
			result.Error = classify(err, models.ErrPublishFailed)
			return r.finish(result, history, runID)
		}
		result.Published = rev.Published
		result.Revision = rev.SHA
	}

	return r.finish(result, history, runID)
}

// provision prepares the run: output directory, git availability, and the
// optional history store.
func (r *Runner) provision() (*store.Store, error) {
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if !r.skipPublish {
		if _, err := exec.LookPath("git"); err != nil {
			return nil, &stepError{typ: models.ErrGitNotFound, err: fmt.Errorf("git binary not found: %w", err)}
		}
	}

	if r.cfg.HistoryDB == "" {
		return nil, nil
	}
	history, err := store.Open(r.cfg.HistoryDB)
	if err != nil {
		return nil, fmt.Errorf("opening history store: %w", err)
	}
	return history, nil
}

// execute runs the configured external script, or the built-in fetch tasks
// when none is configured.
func (r *Runner) execute(ctx context.Context, history *store.Store) error {
	if r.cfg.Script.Command != "" {
		return r.runScript(ctx)
	}
	return r.runBuiltin(ctx, history)
}

// runScript executes the external command to completion. Zero exit status
// is success; anything else fails the run before publishing.
func (r *Runner) runScript(ctx context.Context) error {
	timeout := time.Duration(r.cfg.Script.TimeoutSec * float64(time.Second))
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slog.Info("running external script", "command", r.cfg.Script.Command)

	cmd := exec.CommandContext(ctx, "sh", "-c", r.cfg.Script.Command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()
	for k, v := range r.cfg.Script.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return &stepError{typ: models.ErrScriptTimeout, err: fmt.Errorf("script timed out after %s", timeout)}
		}
		return &stepError{typ: models.ErrScriptFailed, err: fmt.Errorf("script: %w", err)}
	}
	return nil
}

// runBuiltin fetches all sources, records history, computes the price
// tables, and writes the output files.
func (r *Runner) runBuiltin(ctx context.Context, history *store.Store) error {
	snap, err := r.fetcher.FetchAll(ctx, config.StartDate(r.cfg))
	if err != nil {
		return &stepError{typ: models.ErrFetchFailed, err: err}
	}

	reportCompleteness(check.HourlySeries(snap.Electricity))

	if history != nil {
		if n, err := history.RecordPoints(store.SourceElectricity, snap.Electricity); err != nil {
			slog.Warn("recording electricity history failed", "error", err)
		} else if n > 0 {
			slog.Debug("recorded electricity history", "new_points", n)
		}
		if n, err := history.RecordPoints(store.SourceGas, snap.Gas); err != nil {
			slog.Warn("recording gas history failed", "error", err)
		} else if n > 0 {
			slog.Debug("recorded gas history", "new_points", n)
		}
	}

	if err := r.writeOutputs(snap); err != nil {
		return &stepError{typ: models.ErrWriteFailed, err: err}
	}
	return nil
}

// reportCompleteness logs gaps and duplicates in the hourly electricity
// series. Findings are diagnostic and never fail the run; an hour missing
// at a DST transition is expected.
func reportCompleteness(c check.Completeness) {
	if c.OK() {
		slog.Debug("hourly electricity series is complete")
		return
	}
	if len(c.MissingHours) > 0 {
		slog.Warn("hourly electricity series has gaps", "missing_hours", len(c.MissingHours))
		months := make([]string, 0, len(c.MissingByMonth))
		for m := range c.MissingByMonth {
			months = append(months, m)
		}
		sort.Strings(months)
		for _, m := range months {
			slog.Warn("missing hours in month", "month", m, "count", c.MissingByMonth[m])
		}
		for _, t := range c.DSTTransitions {
			slog.Info("DST transition in range", "at", t.Format(time.RFC3339))
		}
	}
	if len(c.Duplicates) > 0 {
		slog.Warn("hourly electricity series has duplicate timestamps", "count", len(c.Duplicates))
	}
}

func (r *Runner) writeOutputs(snap *fetch.Snapshot) error {
	vatFactor := 1 + r.tariffs.VAT
	elecMonthly := prices.BuildMonthlyTable(
		prices.MonthlyAverages(snap.Electricity), snap.CBS,
		r.tariffs.Electricity.ProcurementCosts*vatFactor, prices.Electricity)
	gasMonthly := prices.BuildMonthlyTable(
		prices.MonthlyAverages(snap.Gas), snap.CBS,
		r.tariffs.Gas.ProcurementCosts*vatFactor, prices.Gas)
	compare := prices.BuildCompareTable(snap.CBS, elecMonthly, gasMonthly)

	dir := r.cfg.OutputDir
	writers := []struct {
		name  string
		write func() error
	}{
		{output.MonthlyElectricityCSV, func() error {
			return output.WriteMonthlyCSV(filepath.Join(dir, output.MonthlyElectricityCSV), elecMonthly)
		}},
		{output.MonthlyGasCSV, func() error {
			return output.WriteMonthlyCSV(filepath.Join(dir, output.MonthlyGasCSV), gasMonthly)
		}},
		{output.CompareCSV, func() error {
			return output.WriteCompareCSV(filepath.Join(dir, output.CompareCSV), compare)
		}},
		{output.ElectricityFeedJSON, func() error {
			return output.WritePriceFeed(filepath.Join(dir, output.ElectricityFeedJSON),
				prices.ElectricityEntries(snap.Electricity, r.tariffs), snap.FetchedAt)
		}},
		{output.GasFeedJSON, func() error {
			return output.WritePriceFeed(filepath.Join(dir, output.GasFeedJSON),
				prices.GasEntries(snap.Gas, r.tariffs), snap.FetchedAt)
		}},
		{output.CBSRatesJSON, func() error {
			return output.WriteCBSRates(filepath.Join(dir, output.CBSRatesJSON), snap.CBS, snap.FetchedAt)
		}},
	}
	for _, w := range writers {
		if err := w.write(); err != nil {
			return err
		}
		slog.Debug("wrote output file", "file", w.name)
	}
	return nil
}

// finish saves the run result and closes out history bookkeeping.
func (r *Runner) finish(result *models.RunResult, history *store.Store, runID int64) (*models.RunResult, error) {
	result.Timestamps.EndedAt = time.Now()
	result.Durations.TotalSec = result.Timestamps.EndedAt.Sub(result.Timestamps.StartedAt).Seconds()

	if history != nil && runID != 0 {
		if err := history.FinishRun(runID, result); err != nil {
			slog.Warn("recording run outcome failed", "error", err)
		}
	}

	runDir := filepath.Join(r.cfg.RunsDir, result.RunName)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return result, fmt.Errorf("creating run directory: %w", err)
	}
	data, _ := json.MarshalIndent(result, "", "  ")
	if err := os.WriteFile(filepath.Join(runDir, "result.json"), data, 0644); err != nil {
		return result, fmt.Errorf("writing run result: %w", err)
	}

	return result, nil
}

// stepError carries the error taxonomy type alongside the cause.
type stepError struct {
	typ models.ErrorType
	err error
}

func (e *stepError) Error() string { return e.err.Error() }
func (e *stepError) Unwrap() error { return e.err }

// classify maps an error to its RunError, preferring the step's own typed
// error, then push rejections, then the given default.
func classify(err error, fallback models.ErrorType) *models.RunError {
	var se *stepError
	if errors.As(err, &se) {
		return &models.RunError{Type: se.typ, Message: se.err.Error()}
	}
	var pre *PushRejectedError
	if errors.As(err, &pre) {
		return &models.RunError{Type: models.ErrPushRejected, Message: pre.Error()}
	}
	return &models.RunError{Type: fallback, Message: err.Error()}
}
