package models

// Config represents the parsed pricewatch.yaml run configuration.
type Config struct {
	Name       *string       `yaml:"name,omitempty" json:"name,omitempty"`
	OutputDir  string        `yaml:"output_dir" json:"output_dir"`
	RunsDir    string        `yaml:"runs_dir" json:"runs_dir"`
	StartDate  string        `yaml:"start_date" json:"start_date"`
	ScheduleAt string        `yaml:"schedule_at" json:"schedule_at"`
	HistoryDB  string        `yaml:"history_db,omitempty" json:"history_db,omitempty"`
	TariffPath string        `yaml:"tariff_path,omitempty" json:"tariff_path,omitempty"`
	LogLevel   string        `yaml:"log_level,omitempty" json:"log_level,omitempty"`
	Script     ScriptConfig  `yaml:"script,omitempty" json:"script,omitempty"`
	Sources    SourcesConfig `yaml:"sources" json:"sources"`
	Git        GitConfig     `yaml:"git" json:"git"`
}

// ScriptConfig optionally replaces the built-in fetch tasks with one
// external command. The command runs to completion with no arguments;
// any non-zero exit fails the run before publishing.
type ScriptConfig struct {
	Command    string            `yaml:"command,omitempty" json:"command,omitempty"`
	TimeoutSec float64           `yaml:"timeout_sec,omitempty" json:"timeout_sec,omitempty"`
	Env        map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// SourcesConfig holds the upstream API endpoints for the built-in fetchers.
type SourcesConfig struct {
	CBSBaseURL        string  `yaml:"cbs_url" json:"cbs_url"`
	EnergyZeroBaseURL string  `yaml:"energyzero_url" json:"energyzero_url"`
	TimeoutSec        float64 `yaml:"timeout_sec" json:"timeout_sec"`
}

// GitConfig describes how revisions are published. The committer identity
// is fixed configuration handed to the publish step per run, never global
// git state.
type GitConfig struct {
	Remote      string `yaml:"remote" json:"remote"`
	Branch      string `yaml:"branch" json:"branch"`
	AuthorName  string `yaml:"author_name" json:"author_name"`
	AuthorEmail string `yaml:"author_email" json:"author_email"`
	Message     string `yaml:"message" json:"message"`
	DisablePush bool   `yaml:"disable_push" json:"disable_push"`
}
