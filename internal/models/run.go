package models

import "time"

// Trigger identifies what started a run.
type Trigger string

const (
	TriggerManual   Trigger = "manual"
	TriggerSchedule Trigger = "schedule"
)

// RunResult contains the outcome of one pipeline run.
type RunResult struct {
	RunName    string     `json:"run_name"`
	Trigger    Trigger    `json:"trigger"`
	Published  bool       `json:"published"`
	Revision   string     `json:"revision,omitempty"`
	Error      *RunError  `json:"error"`
	Durations  Durations  `json:"durations"`
	Timestamps Timestamps `json:"timestamps"`
}

type RunError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
}

type Durations struct {
	TotalSec     float64  `json:"total_sec"`
	ProvisionSec *float64 `json:"provision_sec"`
	ExecuteSec   *float64 `json:"execute_sec"`
	PublishSec   *float64 `json:"publish_sec"`
}

type Timestamps struct {
	StartedAt          time.Time  `json:"started_at"`
	ProvisionStartedAt time.Time  `json:"provision_started_at"`
	ProvisionEndedAt   time.Time  `json:"provision_ended_at"`
	ExecuteStartedAt   *time.Time `json:"execute_started_at"`
	ExecuteEndedAt     *time.Time `json:"execute_ended_at"`
	PublishStartedAt   *time.Time `json:"publish_started_at"`
	PublishEndedAt     *time.Time `json:"publish_ended_at"`
	EndedAt            time.Time  `json:"ended_at"`
}
