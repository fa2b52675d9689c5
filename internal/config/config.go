package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"pricewatch/internal/models"
)

const (
	DefaultOutputDir  = "output"
	DefaultRunsDir    = "runs"
	DefaultStartDate  = "2021-01-01"
	DefaultScheduleAt = "06:00"
	DefaultLogLevel   = "info"

	DefaultCBSBaseURL        = "https://opendata.cbs.nl"
	DefaultEnergyZeroBaseURL = "https://api.energyzero.nl"
	DefaultSourceTimeoutSec  = 30.0

	DefaultGitRemote        = "origin"
	DefaultGitBranch        = "main"
	DefaultAuthorName       = "price-bot"
	DefaultAuthorEmail      = "price-bot@users.noreply.github.com"
	DefaultCommitMessage    = "Update price data [skip ci]"
	DefaultScriptTimeoutSec = 3600.0
)

// Default returns a Config with default values.
func Default() models.Config {
	return models.Config{
		OutputDir:  DefaultOutputDir,
		RunsDir:    DefaultRunsDir,
		StartDate:  DefaultStartDate,
		ScheduleAt: DefaultScheduleAt,
		LogLevel:   DefaultLogLevel,
		Script: models.ScriptConfig{
			TimeoutSec: DefaultScriptTimeoutSec,
		},
		Sources: models.SourcesConfig{
			CBSBaseURL:        DefaultCBSBaseURL,
			EnergyZeroBaseURL: DefaultEnergyZeroBaseURL,
			TimeoutSec:        DefaultSourceTimeoutSec,
		},
		Git: models.GitConfig{
			Remote:      DefaultGitRemote,
			Branch:      DefaultGitBranch,
			AuthorName:  DefaultAuthorName,
			AuthorEmail: DefaultAuthorEmail,
			Message:     DefaultCommitMessage,
		},
	}
}

// Load loads and parses a pricewatch.yaml file. A missing file yields the
// defaults so the tool works out of the box in a checkout.
func Load(path string) (models.Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults for missing values
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.RunsDir == "" {
		cfg.RunsDir = DefaultRunsDir
	}
	if cfg.StartDate == "" {
		cfg.StartDate = DefaultStartDate
	}
	if cfg.ScheduleAt == "" {
		cfg.ScheduleAt = DefaultScheduleAt
	}
	if cfg.Script.TimeoutSec == 0 {
		cfg.Script.TimeoutSec = DefaultScriptTimeoutSec
	}
	if cfg.Sources.CBSBaseURL == "" {
		cfg.Sources.CBSBaseURL = DefaultCBSBaseURL
	}
	if cfg.Sources.EnergyZeroBaseURL == "" {
		cfg.Sources.EnergyZeroBaseURL = DefaultEnergyZeroBaseURL
	}
	if cfg.Sources.TimeoutSec == 0 {
		cfg.Sources.TimeoutSec = DefaultSourceTimeoutSec
	}
	if cfg.Git.Remote == "" {
		cfg.Git.Remote = DefaultGitRemote
	}
	if cfg.Git.Branch == "" {
		cfg.Git.Branch = DefaultGitBranch
	}
	if cfg.Git.AuthorName == "" {
		cfg.Git.AuthorName = DefaultAuthorName
	}
	if cfg.Git.AuthorEmail == "" {
		cfg.Git.AuthorEmail = DefaultAuthorEmail
	}
	if cfg.Git.Message == "" {
		cfg.Git.Message = DefaultCommitMessage
	}

	if err := validate(cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func validate(cfg models.Config) error {
	if _, err := time.Parse("2006-01-02", cfg.StartDate); err != nil {
		return fmt.Errorf("invalid start_date %q: want YYYY-MM-DD", cfg.StartDate)
	}
	if _, _, err := ParseScheduleAt(cfg.ScheduleAt); err != nil {
		return err
	}
	return nil
}

// ParseScheduleAt parses a "HH:MM" daily UTC trigger time.
func ParseScheduleAt(at string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid schedule_at %q: want HH:MM (UTC)", at)
	}
	return t.Hour(), t.Minute(), nil
}

// StartDate returns the configured start date as a UTC time.
func StartDate(cfg models.Config) time.Time {
	t, err := time.Parse("2006-01-02", cfg.StartDate)
	if err != nil {
		// validate rejects unparseable dates at load time
		t, _ = time.Parse("2006-01-02", DefaultStartDate)
	}
	return t.UTC()
}
