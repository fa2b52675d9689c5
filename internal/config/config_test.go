package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"pricewatch/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file failed: %v", err)
	}

	if cfg.OutputDir != "output" {
		t.Errorf("expected output_dir output, got %s", cfg.OutputDir)
	}
	if cfg.ScheduleAt != "06:00" {
		t.Errorf("expected schedule_at 06:00, got %s", cfg.ScheduleAt)
	}
	if cfg.Git.Remote != "origin" || cfg.Git.Branch != "main" {
		t.Errorf("expected origin/main, got %s/%s", cfg.Git.Remote, cfg.Git.Branch)
	}
	if cfg.Git.AuthorName != "price-bot" {
		t.Errorf("expected author price-bot, got %s", cfg.Git.AuthorName)
	}
	if cfg.Git.Message != "Update price data [skip ci]" {
		t.Errorf("unexpected commit message %q", cfg.Git.Message)
	}
	if cfg.Sources.TimeoutSec != 30.0 {
		t.Errorf("expected source timeout 30, got %f", cfg.Sources.TimeoutSec)
	}
}

func TestLoadConfig(t *testing.T) {
	configYaml := `name: daily-prices
output_dir: data
runs_dir: run-results
start_date: 2023-12-01
schedule_at: "04:30"
history_db: prices.db
log_level: debug
sources:
  cbs_url: http://localhost:8081
  energyzero_url: http://localhost:8082
  timeout_sec: 5
git:
  branch: master
  author_name: robot
  author_email: robot@example.com
  disable_push: true
`

	tmpFile := filepath.Join(t.TempDir(), "pricewatch.yaml")
	if err := os.WriteFile(tmpFile, []byte(configYaml), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	cfg, err := config.Load(tmpFile)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *cfg.Name != "daily-prices" {
		t.Errorf("expected name daily-prices, got %s", *cfg.Name)
	}
	if cfg.OutputDir != "data" {
		t.Errorf("expected output_dir data, got %s", cfg.OutputDir)
	}
	if cfg.RunsDir != "run-results" {
		t.Errorf("expected runs_dir run-results, got %s", cfg.RunsDir)
	}
	if cfg.ScheduleAt != "04:30" {
		t.Errorf("expected schedule_at 04:30, got %s", cfg.ScheduleAt)
	}
	if cfg.HistoryDB != "prices.db" {
		t.Errorf("expected history_db prices.db, got %s", cfg.HistoryDB)
	}
	if cfg.Sources.CBSBaseURL != "http://localhost:8081" {
		t.Errorf("unexpected cbs_url %s", cfg.Sources.CBSBaseURL)
	}
	if cfg.Sources.TimeoutSec != 5 {
		t.Errorf("expected timeout_sec 5, got %f", cfg.Sources.TimeoutSec)
	}
	if cfg.Git.Branch != "master" {
		t.Errorf("expected branch master, got %s", cfg.Git.Branch)
	}
	// Remote not set in the file keeps its default
	if cfg.Git.Remote != "origin" {
		t.Errorf("expected remote origin, got %s", cfg.Git.Remote)
	}
	if !cfg.Git.DisablePush {
		t.Error("expected disable_push true")
	}

	if start := config.StartDate(cfg); start.Format("2006-01-02") != "2023-12-01" {
		t.Errorf("unexpected start date %v", start)
	}
}

func TestLoadRejectsBadScheduleAt(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "pricewatch.yaml")
	if err := os.WriteFile(tmpFile, []byte("schedule_at: \"25:99\"\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	if _, err := config.Load(tmpFile); err == nil {
		t.Fatal("expected error for invalid schedule_at")
	}
}

func TestLoadRejectsBadStartDate(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "pricewatch.yaml")
	if err := os.WriteFile(tmpFile, []byte("start_date: 01-01-2021\n"), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}

	if _, err := config.Load(tmpFile); err == nil {
		t.Fatal("expected error for invalid start_date")
	}
}

func TestParseScheduleAt(t *testing.T) {
	hour, minute, err := config.ParseScheduleAt("06:15")
	if err != nil {
		t.Fatalf("ParseScheduleAt failed: %v", err)
	}
	if hour != 6 || minute != 15 {
		t.Errorf("expected 6:15, got %d:%d", hour, minute)
	}

	if _, _, err := config.ParseScheduleAt("noon"); err == nil {
		t.Error("expected error for non-time input")
	}
}
